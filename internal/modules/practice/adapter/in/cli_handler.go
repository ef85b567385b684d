package in

import (
	"context"
	"time"

	practicedto "zenstreak/internal/modules/practice/dto"
	practicein "zenstreak/internal/modules/practice/port/in"
)

type CLIHandler struct {
	usecase practicein.Usecase
}

func NewCLIHandler(usecase practicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListTypes(ctx context.Context) ([]practicedto.TypeOutput, error) {
	return h.usecase.ListTypes(ctx)
}

func (h CLIHandler) CheckType(ctx context.Context, id string) (practicedto.TypeCheckOutput, error) {
	return h.usecase.CheckType(ctx, id)
}

func (h CLIHandler) ListMeditations(ctx context.Context) ([]practicedto.MeditationOutput, error) {
	return h.usecase.ListMeditations(ctx)
}

func (h CLIHandler) GetMeditation(ctx context.Context, id string) (practicedto.MeditationOutput, error) {
	return h.usecase.GetMeditation(ctx, id)
}

func (h CLIHandler) Position(ctx context.Context, id string, elapsed time.Duration) (practicedto.PositionOutput, error) {
	return h.usecase.Position(ctx, practicedto.PositionInput{MeditationID: id, Elapsed: elapsed})
}

func (h CLIHandler) QuoteOfDay(ctx context.Context) (practicedto.QuoteOutput, error) {
	return h.usecase.QuoteOfDay(ctx)
}
