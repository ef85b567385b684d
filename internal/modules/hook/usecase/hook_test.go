package usecase_test

import (
	"context"
	"errors"
	"testing"

	hookout "zenstreak/internal/modules/hook/adapter/out"
	hookdto "zenstreak/internal/modules/hook/dto"
	"zenstreak/internal/modules/hook/service"
	"zenstreak/internal/modules/hook/usecase"
	apperrors "zenstreak/internal/platform/errors"
)

func TestDisabledHooksDoNotDispatch(t *testing.T) {
	t.Parallel()
	svc := service.NewHookService(hookout.NewFileManifestStore(t.TempDir()), nil, nil)
	uc := usecase.NewInteractor(svc, false)
	if _, err := uc.Dispatch(context.Background(), hookdto.Event{Kind: hookdto.EventCheckin, Date: "2026-03-10"}); !errors.Is(err, apperrors.ErrHooksDisabled) {
		t.Fatalf("expected hooks disabled, got %v", err)
	}
	list, err := uc.List(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %+v %v", list, err)
	}
}

func TestEnabledDispatchWithoutManifests(t *testing.T) {
	t.Parallel()
	svc := service.NewHookService(hookout.NewFileManifestStore(t.TempDir()), nil, nil)
	out, err := usecase.NewInteractor(svc, true).Dispatch(context.Background(), hookdto.Event{Kind: hookdto.EventMilestone, Date: "2026-03-10", Milestone: 7})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(out.Results) != 0 {
		t.Fatalf("expected no results, got %+v", out.Results)
	}
}
