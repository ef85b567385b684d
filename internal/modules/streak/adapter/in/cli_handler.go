package in

import (
	"context"

	streakdto "zenstreak/internal/modules/streak/dto"
	streakin "zenstreak/internal/modules/streak/port/in"
)

type CLIHandler struct {
	usecase streakin.Usecase
}

func NewCLIHandler(usecase streakin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (streakdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Checkin(ctx context.Context, kind string, minutes float64) (streakdto.CheckinOutput, error) {
	return h.usecase.Checkin(ctx, streakdto.CheckinInput{Type: kind, Minutes: minutes})
}

func (h CLIHandler) Reset(ctx context.Context, confirm bool) error {
	return h.usecase.Reset(ctx, streakdto.ResetInput{Confirm: confirm})
}
