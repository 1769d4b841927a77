package session

import (
	"sync"

	"github.com/Bhagesh4604/TimeVault1/internal/vaults/repository"
)

// Registry hands out one lifecycle controller per user scope, so every
// request from the same user observes the same presentation state.
type Registry struct {
	repo *repository.Repository

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewRegistry(repo *repository.Repository) *Registry {
	return &Registry{
		repo:     repo,
		sessions: make(map[string]*Controller),
	}
}

// For returns the controller bound to the user's scope, creating an empty one
// on first use. Callers refresh it with Load before reading the snapshot.
func (r *Registry) For(userID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctl, ok := r.sessions[userID]
	if !ok {
		ctl = &Controller{repo: r.repo, userID: userID}
		r.sessions[userID] = ctl
	}
	return ctl
}
