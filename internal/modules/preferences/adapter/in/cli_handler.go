package in

import (
	"context"

	prefdto "zenstreak/internal/modules/preferences/dto"
	prefin "zenstreak/internal/modules/preferences/port/in"
)

type CLIHandler struct {
	usecase prefin.Usecase
}

func NewCLIHandler(usecase prefin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) (prefdto.AudioOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Update(ctx context.Context, input prefdto.UpdateInput) (prefdto.AudioOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) SetSound(ctx context.Context, sound string) (prefdto.AudioOutput, error) {
	return h.usecase.Update(ctx, prefdto.UpdateInput{Sound: &sound})
}

func (h CLIHandler) SetVolume(ctx context.Context, volume float64) (prefdto.AudioOutput, error) {
	return h.usecase.Update(ctx, prefdto.UpdateInput{Volume: &volume})
}

func (h CLIHandler) Reset(ctx context.Context) (prefdto.AudioOutput, error) {
	return h.usecase.Reset(ctx)
}
