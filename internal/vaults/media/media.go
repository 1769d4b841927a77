// Package media converts transient upload handles into durable, independently
// retrievable URLs.
package media

import (
	"context"

	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
)

// Materializer turns one pending upload into a durable URL. It reads from the
// upload's Body but does not own it; the caller releases the handle once the
// call returns, success or failure.
type Materializer interface {
	Materialize(ctx context.Context, up domain.MediaUpload) (string, error)
}
