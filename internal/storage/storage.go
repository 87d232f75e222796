package storage

import (
	"context"
	"io"

	"github.com/open-academy/academy-back/internal/config"
)

// Storage stores and fetches syllabus blobs. The backend never inspects the
// content, it only keeps the key on the classroom record.
type Storage interface {
	Upload(ctx context.Context, key string, r io.Reader) (string, error)
	Download(ctx context.Context, key string, w io.Writer) error
}

// New picks B2 when credentials are configured, local disk otherwise.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	if cfg.B2KeyID != "" && cfg.B2AppKey != "" && cfg.B2Bucket != "" {
		return InitB2(ctx, cfg.B2KeyID, cfg.B2AppKey, cfg.B2Bucket)
	}
	return NewLocal(cfg.SyllabusDir)
}
