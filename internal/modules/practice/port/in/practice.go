package in

import (
	"context"

	"zenstreak/internal/modules/practice/dto"
)

type Usecase interface {
	ListTypes(ctx context.Context) ([]dto.TypeOutput, error)
	CheckType(ctx context.Context, id string) (dto.TypeCheckOutput, error)
	ListMeditations(ctx context.Context) ([]dto.MeditationOutput, error)
	GetMeditation(ctx context.Context, id string) (dto.MeditationOutput, error)
	Position(ctx context.Context, input dto.PositionInput) (dto.PositionOutput, error)
	QuoteOfDay(ctx context.Context) (dto.QuoteOutput, error)
}
