package usecase

import (
	"context"

	"zenstreak/internal/modules/hook/domain"
	hookdto "zenstreak/internal/modules/hook/dto"
	hookin "zenstreak/internal/modules/hook/port/in"
	"zenstreak/internal/modules/hook/service"
	apperrors "zenstreak/internal/platform/errors"
)

type Interactor struct {
	svc     *service.HookService
	enabled bool
}

// NewInteractor returns a usecase whose Dispatch is a no-op reporting
// ErrHooksDisabled when enabled is false. List and Doctor always work.
func NewInteractor(svc *service.HookService, enabled bool) hookin.Usecase {
	return &Interactor{svc: svc, enabled: enabled}
}

func (i *Interactor) List(ctx context.Context) ([]hookdto.HookInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]hookdto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Dispatch(ctx context.Context, event hookdto.Event) (hookdto.DispatchOutput, error) {
	if !i.enabled {
		return hookdto.DispatchOutput{}, apperrors.ErrHooksDisabled
	}
	outcomes, err := i.svc.Dispatch(ctx, domain.Event{
		ID:             event.ID,
		Kind:           domain.EventKind(event.Kind),
		Date:           event.Date,
		Type:           event.Type,
		Duration:       event.Duration,
		CurrentStreak:  event.CurrentStreak,
		LongestStreak:  event.LongestStreak,
		TotalSessions:  event.TotalSessions,
		Milestone:      event.Milestone,
		MilestoneTitle: event.MilestoneTitle,
	})
	if err != nil {
		return hookdto.DispatchOutput{}, err
	}
	out := hookdto.DispatchOutput{Results: make([]hookdto.HookResult, 0, len(outcomes))}
	for _, o := range outcomes {
		res := hookdto.HookResult{Name: o.Name, Message: o.Message}
		if o.Err != nil {
			res.Error = o.Err.Error()
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
