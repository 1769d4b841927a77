// Package session holds the per-UI-session vault lifecycle controller: it
// orchestrates repository calls and exposes the in-memory list, loading flag
// and error surface that presentation renders from.
package session

import (
	"context"
	"sync"

	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/repository"
)

// State is a point-in-time copy of the controller's presentation state.
type State struct {
	Vaults    []domain.TimeVault
	IsLoading bool
	Err       error
}

// Controller serializes its own state transitions; it does not serialize
// calls from independent callers. Create is not idempotent: two overlapping
// calls create two vaults, so callers must disable re-submission while a
// create is in flight.
type Controller struct {
	repo   *repository.Repository
	userID string

	mu      sync.Mutex
	vaults  []domain.TimeVault
	loading bool
	err     error
}

// New builds a controller for one user session and runs the initial load.
func New(ctx context.Context, repo *repository.Repository, userID string) *Controller {
	c := &Controller{repo: repo, userID: userID}
	_ = c.Load(ctx)
	return c
}

// Load refreshes the vault list. On failure the previous list is kept
// (stale-but-available) and the error is recorded for presentation.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	vaults, err := c.repo.List(ctx, c.userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	c.vaults = vaults
	return nil
}

// Create makes a new vault and then reloads the full list, so the exposed
// state reflects the authoritative re-sorted, re-locked result rather than a
// locally guessed insertion. Failures are propagated verbatim and leave the
// list untouched.
func (c *Controller) Create(ctx context.Context, input domain.VaultInput) (*domain.TimeVault, error) {
	v, err := c.repo.Create(ctx, c.userID, input)
	if err != nil {
		return nil, err
	}

	// The vault is durably created at this point; a failed reload only shows
	// up on the error surface, it does not fail the create.
	_ = c.Load(ctx)
	return v, nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	vaults := make([]domain.TimeVault, len(c.vaults))
	copy(vaults, c.vaults)

	return State{
		Vaults:    vaults,
		IsLoading: c.loading,
		Err:       c.err,
	}
}
