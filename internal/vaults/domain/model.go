package domain

import (
	"io"
	"strings"
	"time"
)

// MediaKindImage is the only media kind the backend currently accepts.
const MediaKindImage = "image"

// MediaItem is a persisted media entry. It only ever carries a durable URL;
// transient upload handles live on MediaUpload and cannot reach this type.
type MediaItem struct {
	ID   string `json:"id"`
	Kind string `json:"type"`
	URL  string `json:"url"`
}

// MediaUpload is one media entry of a creation payload. When Body is nil the
// URL is already durable (e.g. a remote image) and no materialization runs.
// Body is a transient handle scoped to the create call; it is consumed by
// materialization and never stored.
type MediaUpload struct {
	ID          string
	FileName    string
	ContentType string
	Size        int64
	URL         string
	Body        io.Reader
}

// Close releases the transient Body when it wraps a closable handle. Uploads
// that only carry a durable URL have nothing to release.
func (u MediaUpload) Close() error {
	if c, ok := u.Body.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// VaultInput is the creation payload. It is consumed once by the repository
// and discarded.
type VaultInput struct {
	Title       string
	Description string
	UnlockAt    time.Time
	Media       []MediaUpload
}

// Validate checks the caller-side constraints. The unlock instant is allowed
// to be in the past; the repository simply derives the lock state from it.
func (in *VaultInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if in.UnlockAt.IsZero() {
		return ErrMissingUnlockDate
	}
	return nil
}

// TimeVault is the domain entity returned to callers. IsLocked is derived
// from the clock on every read and is never persisted authoritatively.
type TimeVault struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	UnlockAt    time.Time   `json:"unlock_date"`
	Media       []MediaItem `json:"media"`
	IsLocked    bool        `json:"is_locked"`
}
