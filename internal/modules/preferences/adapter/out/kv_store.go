package out

import (
	"context"
	"errors"
	"fmt"

	"zenstreak/internal/modules/preferences/domain"
	prefout "zenstreak/internal/modules/preferences/port/out"
	apperrors "zenstreak/internal/platform/errors"
	"zenstreak/internal/platform/kv"
)

type KVStore struct {
	store kv.Store
}

func NewKVStore(store kv.Store) prefout.Store {
	return &KVStore{store: store}
}

func (s *KVStore) Load(ctx context.Context) (domain.Audio, error) {
	raw, err := s.store.Get(ctx, domain.Key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domain.Audio{}, apperrors.ErrNotFound
		}
		return domain.Audio{}, fmt.Errorf("load preferences: %w", err)
	}
	return domain.Decode(raw)
}

func (s *KVStore) Save(ctx context.Context, audio domain.Audio) error {
	raw, err := domain.Encode(audio)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, domain.Key, raw); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.Key); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
