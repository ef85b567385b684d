package usecase

import (
	"context"
	"strings"

	"zenstreak/internal/modules/practice/domain"
	practicedto "zenstreak/internal/modules/practice/dto"
	practicein "zenstreak/internal/modules/practice/port/in"
	"zenstreak/internal/modules/practice/service"
	"zenstreak/internal/platform/clock"
)

type Interactor struct {
	svc   *service.PracticeService
	clock clock.Clock
}

func NewInteractor(svc *service.PracticeService, clock clock.Clock) practicein.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) ListTypes(ctx context.Context) ([]practicedto.TypeOutput, error) {
	c, err := i.svc.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]practicedto.TypeOutput, 0, len(c.Types))
	for _, t := range c.Types {
		out = append(out, practicedto.TypeOutput{ID: t.ID, Name: t.Name, Description: t.Description})
	}
	return out, nil
}

// CheckType reports whether id names a catalog type. Unknown tags are still
// valid check-in types.
func (i *Interactor) CheckType(ctx context.Context, id string) (practicedto.TypeCheckOutput, error) {
	c, err := i.svc.Catalog(ctx)
	if err != nil {
		return practicedto.TypeCheckOutput{}, err
	}
	id = strings.TrimSpace(id)
	t, ok := c.Type(id)
	return practicedto.TypeCheckOutput{ID: id, Known: ok, Name: t.Name}, nil
}

func (i *Interactor) ListMeditations(ctx context.Context) ([]practicedto.MeditationOutput, error) {
	c, err := i.svc.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]practicedto.MeditationOutput, 0, len(c.Meditations))
	for _, m := range c.Meditations {
		item := toMeditationOutput(m)
		item.Phases = nil
		item.Script = ""
		out = append(out, item)
	}
	return out, nil
}

func (i *Interactor) GetMeditation(ctx context.Context, id string) (practicedto.MeditationOutput, error) {
	m, err := i.svc.Meditation(ctx, id)
	if err != nil {
		return practicedto.MeditationOutput{}, err
	}
	return toMeditationOutput(m), nil
}

func (i *Interactor) Position(ctx context.Context, input practicedto.PositionInput) (practicedto.PositionOutput, error) {
	m, pos, err := i.svc.Position(ctx, input.MeditationID, input.Elapsed)
	if err != nil {
		return practicedto.PositionOutput{}, err
	}
	remaining := m.Duration() - input.Elapsed
	if remaining < 0 {
		remaining = 0
	}
	return practicedto.PositionOutput{
		PhaseIndex:    pos.Index,
		PhaseTitle:    pos.Phase.Title,
		PhaseCount:    len(m.Phases),
		PhaseElapsed:  pos.PhaseElapsed,
		PhaseProgress: pos.Progress,
		Progress:      domain.Progress(m, input.Elapsed),
		Guidance:      domain.GuidanceAt(pos.Phase, pos.PhaseElapsed),
		Remaining:     remaining,
		Complete:      pos.Complete,
	}, nil
}

func (i *Interactor) QuoteOfDay(ctx context.Context) (practicedto.QuoteOutput, error) {
	now := i.clock.Now()
	q, err := i.svc.QuoteOfDay(ctx, now)
	if err != nil {
		return practicedto.QuoteOutput{}, err
	}
	return practicedto.QuoteOutput{Text: q.Text, Author: q.Author, Theme: q.Theme, Date: now.Format("2006-01-02")}, nil
}

func toMeditationOutput(m domain.Meditation) practicedto.MeditationOutput {
	out := practicedto.MeditationOutput{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        m.Type,
		Seconds:     m.Seconds,
		Minutes:     m.Minutes(),
		Script:      domain.Script(m),
	}
	for _, p := range m.Phases {
		out.Phases = append(out.Phases, practicedto.PhaseOutput{
			Title:    p.Title,
			Seconds:  p.Seconds,
			Guidance: append([]string(nil), p.Guidance...),
		})
	}
	return out
}
