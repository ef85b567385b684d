package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	hookdto "zenstreak/internal/modules/hook/dto"
	hookin "zenstreak/internal/modules/hook/port/in"
	"zenstreak/internal/modules/streak/domain"
	streakdto "zenstreak/internal/modules/streak/dto"
	streakin "zenstreak/internal/modules/streak/port/in"
	streakout "zenstreak/internal/modules/streak/port/out"
	"zenstreak/internal/modules/streak/service"
	apperrors "zenstreak/internal/platform/errors"
	"zenstreak/internal/platform/id"
)

type Defaults struct {
	Type    string
	Minutes float64
}

type Interactor struct {
	svc      *service.StreakService
	journal  streakout.Journal
	hooks    hookin.Usecase
	idGen    id.Generator
	defaults Defaults
	log      *zap.Logger
}

// NewInteractor wires the streak service with its optional side effects.
// journal and hooks may be nil.
func NewInteractor(svc *service.StreakService, journal streakout.Journal, hooks hookin.Usecase, idGen id.Generator, defaults Defaults, log *zap.Logger) streakin.Usecase {
	if defaults.Type == "" {
		defaults.Type = domain.DefaultType
	}
	if defaults.Minutes <= 0 {
		defaults.Minutes = domain.DefaultDuration
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{svc: svc, journal: journal, hooks: hooks, idGen: idGen, defaults: defaults, log: log}
}

func (i *Interactor) Status(ctx context.Context) (streakdto.StatusOutput, error) {
	summary := i.svc.Summary(ctx)
	out := streakdto.StatusOutput{
		Record:         toRecordOutput(summary.Record),
		CheckedInToday: summary.CheckedInToday,
		ThisMonth:      summary.ThisMonth,
		Today:          domain.DateKey(i.svc.Now()),
	}
	for _, day := range summary.Week {
		out.Week = append(out.Week, streakdto.DayOutput{
			Date:      day.Date,
			Weekday:   day.Weekday,
			Day:       day.Day,
			Meditated: day.Meditated,
			Type:      day.Type,
			IsToday:   day.IsToday,
		})
	}
	if tier, ok := domain.Tier(summary.Record.CurrentStreak); ok {
		t := toMilestoneOutput(tier)
		out.Tier = &t
	}
	if summary.HasNext {
		next := toMilestoneOutput(summary.Next)
		out.Next = &next
		out.DaysToNext = summary.DaysToNext
	}
	return out, nil
}

func (i *Interactor) Checkin(ctx context.Context, input streakdto.CheckinInput) (streakdto.CheckinOutput, error) {
	kind := strings.TrimSpace(input.Type)
	if kind == "" {
		kind = i.defaults.Type
	}
	minutes := input.Minutes
	if minutes == 0 {
		minutes = i.defaults.Minutes
	}
	if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return streakdto.CheckinOutput{}, fmt.Errorf("%w: minutes must be positive, got %v", apperrors.ErrInvalidInput, input.Minutes)
	}

	outcome := i.svc.RecordCheckin(ctx, kind, minutes)
	out := streakdto.CheckinOutput{Recorded: outcome.Recorded, Record: toRecordOutput(outcome.Record)}
	if !outcome.Recorded {
		return out, nil
	}
	if outcome.Milestone != nil {
		m := toMilestoneOutput(*outcome.Milestone)
		out.Milestone = &m
	}

	if i.journal != nil {
		if entry, ok := domain.NewJournalEntry(outcome.Record, outcome.Record.LastCheckIn); ok {
			path, err := i.journal.Write(ctx, entry)
			if err != nil {
				i.log.Warn("write journal note", zap.Error(err))
			} else {
				out.JournalPath = path
			}
		}
	}
	out.Hooks = i.dispatch(ctx, outcome)
	return out, nil
}

func (i *Interactor) dispatch(ctx context.Context, outcome domain.CheckinOutcome) []hookdto.HookResult {
	if i.hooks == nil {
		return nil
	}
	record := outcome.Record
	entry := record.Checkins[record.LastCheckIn]
	event := hookdto.Event{
		Kind:          hookdto.EventCheckin,
		Date:          record.LastCheckIn,
		Type:          entry.Type,
		Duration:      entry.Duration,
		CurrentStreak: record.CurrentStreak,
		LongestStreak: record.LongestStreak,
		TotalSessions: record.TotalSessions,
	}
	events := []hookdto.Event{event}
	if outcome.Milestone != nil {
		milestone := event
		milestone.Kind = hookdto.EventMilestone
		milestone.Milestone = outcome.Milestone.Days
		milestone.MilestoneTitle = outcome.Milestone.Title
		events = append(events, milestone)
	}

	var results []hookdto.HookResult
	for _, ev := range events {
		if i.idGen != nil {
			ev.ID = i.idGen.New()
		}
		res, err := i.hooks.Dispatch(ctx, ev)
		if err != nil {
			if !errors.Is(err, apperrors.ErrHooksDisabled) {
				i.log.Warn("dispatch hooks", zap.String("event", ev.Kind), zap.Error(err))
			}
			continue
		}
		results = append(results, res.Results...)
	}
	return results
}

func (i *Interactor) Reset(ctx context.Context, input streakdto.ResetInput) error {
	if !input.Confirm {
		return apperrors.ErrNotConfirmed
	}
	if err := i.svc.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset streak data: %w", err)
	}
	return nil
}

func toRecordOutput(r domain.Record) streakdto.RecordOutput {
	out := streakdto.RecordOutput{
		CurrentStreak: r.CurrentStreak,
		LongestStreak: r.LongestStreak,
		TotalSessions: r.TotalSessions,
		LastCheckIn:   r.LastCheckIn,
	}
	for _, date := range r.Dates() {
		entry := r.Checkins[date]
		out.Checkins = append(out.Checkins, streakdto.CheckinEntry{
			Date:      date,
			Type:      entry.Type,
			Duration:  entry.Duration,
			Timestamp: entry.Timestamp,
		})
	}
	return out
}

func toMilestoneOutput(m domain.Milestone) streakdto.MilestoneOutput {
	return streakdto.MilestoneOutput{
		Days:        m.Days,
		Title:       m.Title,
		Subtitle:    m.Subtitle,
		Achievement: m.Achievement,
		Message:     m.Message,
	}
}
