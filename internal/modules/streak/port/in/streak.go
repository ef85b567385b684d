package in

import (
	"context"

	"zenstreak/internal/modules/streak/dto"
)

type Usecase interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	Checkin(ctx context.Context, input dto.CheckinInput) (dto.CheckinOutput, error)
	Reset(ctx context.Context, input dto.ResetInput) error
}
