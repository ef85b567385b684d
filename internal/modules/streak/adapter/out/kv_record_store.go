package out

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"zenstreak/internal/modules/streak/domain"
	streakout "zenstreak/internal/modules/streak/port/out"
	apperrors "zenstreak/internal/platform/errors"
	"zenstreak/internal/platform/kv"
)

type KVRecordStore struct {
	store kv.Store
}

func NewKVRecordStore(store kv.Store) streakout.RecordStore {
	return &KVRecordStore{store: store}
}

func (s *KVRecordStore) Load(ctx context.Context) (domain.Record, error) {
	raw, err := s.store.Get(ctx, domain.RecordKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domain.Record{}, apperrors.ErrNotFound
		}
		return domain.Record{}, fmt.Errorf("load streak record: %w", err)
	}
	return domain.Decode(raw)
}

func (s *KVRecordStore) Save(ctx context.Context, record domain.Record) error {
	raw, err := domain.Encode(record)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, domain.RecordKey, raw); err != nil {
		return fmt.Errorf("save streak record: %w", err)
	}
	return nil
}

func (s *KVRecordStore) Delete(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.RecordKey); err != nil {
		return fmt.Errorf("delete streak record: %w", err)
	}
	return nil
}

// KVMilestoneStore keeps the last celebrated milestone as a bare integer.
type KVMilestoneStore struct {
	store kv.Store
}

func NewKVMilestoneStore(store kv.Store) streakout.MilestoneStore {
	return &KVMilestoneStore{store: store}
}

func (s *KVMilestoneStore) LastCelebrated(ctx context.Context) (int, error) {
	raw, err := s.store.Get(ctx, domain.MilestoneKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load milestone: %w", err)
	}
	days, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("decode milestone %q: %w", string(raw), err)
	}
	return days, nil
}

func (s *KVMilestoneStore) SetCelebrated(ctx context.Context, days int) error {
	if err := s.store.Set(ctx, domain.MilestoneKey, []byte(strconv.Itoa(days))); err != nil {
		return fmt.Errorf("save milestone: %w", err)
	}
	return nil
}

func (s *KVMilestoneStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.MilestoneKey); err != nil {
		return fmt.Errorf("clear milestone: %w", err)
	}
	return nil
}
