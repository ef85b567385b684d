package out

import (
	"context"

	"zenstreak/internal/modules/preferences/domain"
)

// Store returns apperrors.ErrNotFound from Load when nothing was saved.
type Store interface {
	Load(ctx context.Context) (domain.Audio, error)
	Save(ctx context.Context, audio domain.Audio) error
	Delete(ctx context.Context) error
}
