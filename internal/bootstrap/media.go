package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/Bhagesh4604/TimeVault1/config"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/media"
)

// OpenMedia connects to MinIO. If the object store is unreachable the server
// still starts; creates that carry raw uploads then fail with a
// materialization error until the store comes back.
func OpenMedia(ctx context.Context, cfg config.MediaConfig) media.Materializer {
	mat, err := media.NewMinio(ctx, cfg)
	if err != nil {
		log.Printf("[warn] operation=open_media error=%v (media uploads disabled)", err)
		return unavailableMaterializer{err: err}
	}
	return mat
}

type unavailableMaterializer struct {
	err error
}

func (u unavailableMaterializer) Materialize(_ context.Context, up domain.MediaUpload) (string, error) {
	return "", fmt.Errorf("media storage unavailable: %w", u.err)
}
