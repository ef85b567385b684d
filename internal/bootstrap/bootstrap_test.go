package bootstrap

import (
	"context"
	"testing"
	"time"

	"zenstreak/internal/platform/clock"
	"zenstreak/internal/platform/config"
	"zenstreak/internal/platform/kv"
)

func TestWireOverMemoryStore(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Storage = config.StorageMemory
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	app := Wire(cfg, kv.NewMemoryStore(), clock.Fixed{At: at}, nil, "")
	defer func() {
		if err := app.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}()

	ctx := context.Background()
	out, err := app.StreakCLI.Checkin(ctx, "", 0)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if !out.Recorded || out.Record.TotalSessions != 1 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if got := out.Record.Checkins[0]; got.Type != "mindfulness" || got.Duration != 5 || got.Date != "2026-03-10" {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if out.JournalPath != "" {
		t.Fatalf("journal must stay off for memory storage, got %q", out.JournalPath)
	}

	prefs, err := app.PrefsCLI.SetSound(ctx, "ocean")
	if err != nil {
		t.Fatalf("set sound: %v", err)
	}
	if prefs.Sound != "ocean" {
		t.Fatalf("sound = %q", prefs.Sound)
	}

	hooks, err := app.HookCLI.List(ctx)
	if err != nil {
		t.Fatalf("list hooks: %v", err)
	}
	if len(hooks) != 0 {
		t.Fatalf("expected no hooks, got %d", len(hooks))
	}
}
