package out

import (
	"context"

	"zenstreak/internal/modules/streak/domain"
)

// RecordStore returns apperrors.ErrNotFound from Load when nothing is
// persisted yet.
type RecordStore interface {
	Load(ctx context.Context) (domain.Record, error)
	Save(ctx context.Context, record domain.Record) error
	Delete(ctx context.Context) error
}

type MilestoneStore interface {
	LastCelebrated(ctx context.Context) (int, error)
	SetCelebrated(ctx context.Context, days int) error
	Clear(ctx context.Context) error
}

type Journal interface {
	Write(ctx context.Context, entry domain.JournalEntry) (string, error)
}
