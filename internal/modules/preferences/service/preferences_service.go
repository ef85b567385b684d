package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"zenstreak/internal/modules/preferences/domain"
	prefout "zenstreak/internal/modules/preferences/port/out"
	apperrors "zenstreak/internal/platform/errors"
)

type PreferencesService struct {
	mu    sync.Mutex
	store prefout.Store
	log   *zap.Logger
}

func NewPreferencesService(store prefout.Store, log *zap.Logger) *PreferencesService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PreferencesService{store: store, log: log}
}

func (s *PreferencesService) Get(ctx context.Context) domain.Audio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx)
}

func (s *PreferencesService) get(ctx context.Context) domain.Audio {
	audio, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.log.Warn("preferences unreadable, using defaults", zap.Error(err))
		}
		return domain.Defaults()
	}
	return audio
}

// Update validates the merged result before saving. Unlike check-ins, a
// failed save is reported to the caller.
func (s *PreferencesService) Update(ctx context.Context, patch domain.Patch) (domain.Audio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.get(ctx).Apply(patch)
	if err := next.Validate(); err != nil {
		return domain.Audio{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error("persist preferences", zap.Error(err))
		return domain.Audio{}, err
	}
	s.log.Info("preferences updated", zap.String("sound", string(next.Sound)), zap.Float64("volume", next.Volume))
	return next, nil
}

func (s *PreferencesService) Reset(ctx context.Context) (domain.Audio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx); err != nil {
		s.log.Error("reset preferences", zap.Error(err))
		return domain.Audio{}, err
	}
	return domain.Defaults(), nil
}
