package in

import (
	"context"

	"zenstreak/internal/modules/preferences/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.AudioOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.AudioOutput, error)
	Reset(ctx context.Context) (dto.AudioOutput, error)
}
