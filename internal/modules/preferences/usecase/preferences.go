package usecase

import (
	"context"
	"fmt"
	"strings"

	"zenstreak/internal/modules/preferences/domain"
	prefdto "zenstreak/internal/modules/preferences/dto"
	prefin "zenstreak/internal/modules/preferences/port/in"
	"zenstreak/internal/modules/preferences/service"
	apperrors "zenstreak/internal/platform/errors"
)

type Interactor struct {
	svc *service.PreferencesService
}

func NewInteractor(svc *service.PreferencesService) prefin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (prefdto.AudioOutput, error) {
	return toOutput(i.svc.Get(ctx)), nil
}

func (i *Interactor) Update(ctx context.Context, input prefdto.UpdateInput) (prefdto.AudioOutput, error) {
	patch := domain.Patch{
		Volume:          input.Volume,
		AutoStart:       input.AutoStart,
		FadeInDuration:  input.FadeInDuration,
		FadeOutDuration: input.FadeOutDuration,
	}
	if input.Sound != nil {
		sound := domain.Sound(strings.ToLower(strings.TrimSpace(*input.Sound)))
		patch.Sound = &sound
	}
	if patch.Empty() {
		return prefdto.AudioOutput{}, fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidInput)
	}
	audio, err := i.svc.Update(ctx, patch)
	if err != nil {
		return prefdto.AudioOutput{}, err
	}
	return toOutput(audio), nil
}

func (i *Interactor) Reset(ctx context.Context) (prefdto.AudioOutput, error) {
	audio, err := i.svc.Reset(ctx)
	if err != nil {
		return prefdto.AudioOutput{}, fmt.Errorf("reset preferences: %w", err)
	}
	return toOutput(audio), nil
}

func toOutput(a domain.Audio) prefdto.AudioOutput {
	sounds := make([]string, 0, len(domain.Sounds))
	for _, s := range domain.Sounds {
		sounds = append(sounds, string(s))
	}
	return prefdto.AudioOutput{
		Sound:           string(a.Sound),
		Volume:          a.Volume,
		AutoStart:       a.AutoStart,
		FadeInDuration:  a.FadeInDuration,
		FadeOutDuration: a.FadeOutDuration,
		Sounds:          sounds,
	}
}
