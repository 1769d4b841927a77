// Package repository implements the vault lifecycle core: it translates
// between stored records and domain objects, derives lock state from the
// clock, and mediates every list/create operation.
package repository

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Bhagesh4604/TimeVault1/internal/clock"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/media"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/store"
)

// Repository mediates create/list access to the vault store.
type Repository struct {
	store store.VaultStore
	media media.Materializer
	clock clock.Clock

	// seeding guard: a user scope is seeded at most once per process, and
	// only when its collection is genuinely empty.
	mu     sync.Mutex
	seeded map[string]bool
}

func New(st store.VaultStore, mat media.Materializer, clk clock.Clock) *Repository {
	return &Repository{
		store:  st,
		media:  mat,
		clock:  clk,
		seeded: make(map[string]bool),
	}
}

// List returns the user's vaults sorted ascending by unlock instant. Lock
// state is derived for the whole batch against one clock reading, so two
// vaults in the same response are never compared against different instants.
// Corrupt records are excluded with a logged diagnostic instead of failing
// the entire list.
func (r *Repository) List(ctx context.Context, userID string) ([]domain.TimeVault, error) {
	recs, err := r.store.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(recs) == 0 {
		recs, err = r.seedIfEmpty(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	now := r.clock.Now()
	vaults := make([]domain.TimeVault, 0, len(recs))
	for i, rec := range recs {
		v, derr := decodeRecord(rec)
		if derr != nil {
			cerr := &domain.CorruptRecordError{Index: i, Err: derr}
			log.Printf("[warn] operation=list_vaults user=%s %v", userID, cerr)
			continue
		}
		v.IsLocked = v.UnlockAt.After(now)
		vaults = append(vaults, v)
	}

	// Stable: equal unlock instants keep their stored relative order.
	sort.SliceStable(vaults, func(i, j int) bool {
		return vaults[i].UnlockAt.Before(vaults[j].UnlockAt)
	})

	return vaults, nil
}

// Create materializes the input's media, assigns a fresh id and appends the
// record. Creation is all-or-nothing: if any media item fails its durable
// conversion, nothing is appended.
func (r *Repository) Create(ctx context.Context, userID string, input domain.VaultInput) (*domain.TimeVault, error) {
	if err := input.Validate(); err != nil {
		closeUploads(input.Media)
		return nil, err
	}

	items, err := r.materializeAll(ctx, input.Media)
	if err != nil {
		return nil, err
	}

	v := domain.TimeVault{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		UnlockAt:    input.UnlockAt.UTC(),
		Media:       items,
		// Informational only; List re-derives it on every read.
		IsLocked: input.UnlockAt.After(r.clock.Now()),
	}

	rec, err := encodeRecord(v)
	if err != nil {
		return nil, err
	}
	if err := r.store.Append(ctx, userID, rec); err != nil {
		return nil, err
	}

	return &v, nil
}

// materializeAll converts every pending upload to a durable URL. Uploads run
// concurrently but the returned sequence matches the input order. The first
// failure cancels the rest and aborts the create. Every transient handle is
// released here, whether its upload succeeded or not.
func (r *Repository) materializeAll(ctx context.Context, uploads []domain.MediaUpload) ([]domain.MediaItem, error) {
	items := make([]domain.MediaItem, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		g.Go(func() error {
			defer up.Close()

			url := up.URL
			if up.Body != nil {
				u, err := r.media.Materialize(gctx, up)
				if err != nil {
					return &domain.MaterializationError{MediaID: up.ID, Err: err}
				}
				url = u
			} else if url == "" {
				return &domain.MaterializationError{MediaID: up.ID, Err: errors.New("no upload body and no durable url")}
			}

			items[i] = domain.MediaItem{ID: up.ID, Kind: domain.MediaKindImage, URL: url}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}

// closeUploads releases transient handles on inputs rejected before
// materialization ran.
func closeUploads(uploads []domain.MediaUpload) {
	for _, up := range uploads {
		_ = up.Close()
	}
}

// seedIfEmpty writes the demo vaults when the user's collection is empty on
// first use. The store is re-read under the lock so concurrent first lists
// cannot double-seed, and re-listing never reseeds.
func (r *Repository) seedIfEmpty(ctx context.Context, userID string) ([]store.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seeded[userID] {
		return nil, nil
	}

	recs, err := r.store.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		r.seeded[userID] = true
		return recs, nil
	}

	for _, v := range seedVaults(r.clock.Now()) {
		rec, err := encodeRecord(v)
		if err != nil {
			return nil, err
		}
		if err := r.store.Append(ctx, userID, rec); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	log.Printf("[info] operation=seed_vaults user=%s count=%d", userID, len(recs))
	r.seeded[userID] = true
	return recs, nil
}
