package in

import (
	"context"

	"zenstreak/internal/modules/hook/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.HookInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Dispatch(ctx context.Context, event dto.Event) (dto.DispatchOutput, error)
}
