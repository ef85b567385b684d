package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"zenstreak/internal/modules/streak/domain"
	streakout "zenstreak/internal/modules/streak/port/out"
	"zenstreak/internal/platform/clock"
	apperrors "zenstreak/internal/platform/errors"
)

// StreakService owns the load-modify-save cycle of the streak record. Storage
// failures never reach the caller: reads fall back to an empty record and
// writes are logged while the in-memory result is still returned.
type StreakService struct {
	mu         sync.Mutex
	clock      clock.Clock
	records    streakout.RecordStore
	milestones streakout.MilestoneStore
	log        *zap.Logger
}

func NewStreakService(clock clock.Clock, records streakout.RecordStore, milestones streakout.MilestoneStore, log *zap.Logger) *StreakService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StreakService{clock: clock, records: records, milestones: milestones, log: log}
}

func (s *StreakService) Now() time.Time {
	return s.clock.Now()
}

func (s *StreakService) Load(ctx context.Context) domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, s.clock.Now())
}

func (s *StreakService) load(ctx context.Context, now time.Time) domain.Record {
	record, err := s.records.Load(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.log.Warn("streak record unreadable, starting fresh", zap.Error(err))
		}
		return domain.NewRecord()
	}
	return domain.Migrate(record, now)
}

func (s *StreakService) HasCheckedInToday(record domain.Record) bool {
	return record.CheckedInToday(s.clock.Now())
}

// RecordCheckin stores today's check-in unless one exists already. The
// outcome carries a milestone only the first time the streak lands on it.
func (s *StreakService) RecordCheckin(ctx context.Context, kind string, minutes float64) domain.CheckinOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	record := s.load(ctx, now)
	if !record.Checkin(now, kind, minutes) {
		s.log.Debug("already checked in today", zap.String("date", domain.DateKey(now)))
		return domain.CheckinOutcome{Record: record}
	}
	if err := s.records.Save(ctx, record); err != nil {
		s.log.Error("persist streak record", zap.Error(err))
	}
	s.log.Info("check-in recorded",
		zap.String("date", record.LastCheckIn),
		zap.String("type", kind),
		zap.Int("current_streak", record.CurrentStreak),
		zap.Int("total_sessions", record.TotalSessions),
	)
	return domain.CheckinOutcome{Record: record, Recorded: true, Milestone: s.celebrate(ctx, record.CurrentStreak)}
}

func (s *StreakService) celebrate(ctx context.Context, streak int) *domain.Milestone {
	milestone, ok := domain.MilestoneAt(streak)
	if !ok {
		return nil
	}
	if s.milestones == nil {
		return &milestone
	}
	last, err := s.milestones.LastCelebrated(ctx)
	if err != nil {
		s.log.Warn("milestone marker unreadable", zap.Error(err))
	}
	if last == milestone.Days {
		return nil
	}
	if err := s.milestones.SetCelebrated(ctx, milestone.Days); err != nil {
		s.log.Error("persist milestone marker", zap.Error(err))
	}
	return &milestone
}

// ResetAll deletes the record and the milestone marker. A later Load yields
// the zero record.
func (s *StreakService) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.records.Delete(ctx); err != nil {
		s.log.Error("reset streak record", zap.Error(err))
		return err
	}
	if s.milestones != nil {
		if err := s.milestones.Clear(ctx); err != nil {
			s.log.Error("reset milestone marker", zap.Error(err))
			return err
		}
	}
	s.log.Info("streak data reset")
	return nil
}

func (s *StreakService) Summary(ctx context.Context) domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	return domain.Summarize(s.load(ctx, now), now)
}
