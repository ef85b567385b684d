package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zenstreak/internal/modules/practice/domain"
	practiceout "zenstreak/internal/modules/practice/port/out"
	apperrors "zenstreak/internal/platform/errors"
)

type PracticeService struct {
	source practiceout.CatalogSource

	mu      sync.Mutex
	catalog *domain.Catalog
}

func NewPracticeService(source practiceout.CatalogSource) *PracticeService {
	return &PracticeService{source: source}
}

// Catalog loads the catalog on first use and keeps it for the life of the
// service. A failed load is retried on the next call.
func (s *PracticeService) Catalog(ctx context.Context) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return *s.catalog, nil
	}
	c, err := s.source.Load(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load practice catalog: %w", err)
	}
	s.catalog = &c
	return c, nil
}

func (s *PracticeService) Meditation(ctx context.Context, id string) (domain.Meditation, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return domain.Meditation{}, err
	}
	m, ok := c.Meditation(id)
	if !ok {
		return domain.Meditation{}, fmt.Errorf("meditation %q: %w", id, apperrors.ErrNotFound)
	}
	return m, nil
}

func (s *PracticeService) Position(ctx context.Context, id string, elapsed time.Duration) (domain.Meditation, domain.Position, error) {
	m, err := s.Meditation(ctx, id)
	if err != nil {
		return domain.Meditation{}, domain.Position{}, err
	}
	return m, domain.PhaseAt(m, elapsed), nil
}

func (s *PracticeService) QuoteOfDay(ctx context.Context, day time.Time) (domain.Quote, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	return c.QuoteOfDay(day), nil
}
