package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, home string, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--home", home}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("zenstreak %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCheckinThenStatus(t *testing.T) {
	t.Setenv("ZENSTREAK_HOME", "")
	home := filepath.Join(t.TempDir(), "zen")

	out := run(t, home, "checkin", "--type", "breathing", "--minutes", "10")
	if !strings.Contains(out, "breathing for 10 min") {
		t.Fatalf("unexpected checkin output: %q", out)
	}
	if !strings.Contains(out, "streak 1, longest 1, total 1") {
		t.Fatalf("unexpected counters: %q", out)
	}

	again := run(t, home, "checkin")
	if !strings.Contains(again, "already checked in today") {
		t.Fatalf("expected same-day no-op, got %q", again)
	}

	status := run(t, home, "status")
	if !strings.Contains(status, "today: done") {
		t.Fatalf("unexpected status: %q", status)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	t.Setenv("ZENSTREAK_HOME", "")
	home := t.TempDir()
	run(t, home, "checkin")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--home", home, "reset"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected reset without --yes to fail")
	}

	run(t, home, "reset", "--yes")
	stats := run(t, home, "stats")
	if !strings.Contains(stats, "total sessions: 0") {
		t.Fatalf("expected empty stats after reset, got %q", stats)
	}
}

func TestUnknownTypeIsRecordedWithNote(t *testing.T) {
	t.Setenv("ZENSTREAK_HOME", "")
	out := run(t, t.TempDir(), "--ephemeral", "checkin", "--type", "sitting-under-a-tree")
	if !strings.Contains(out, "not a catalog type") {
		t.Fatalf("expected unknown type note, got %q", out)
	}
	if !strings.Contains(out, "checked in") {
		t.Fatalf("expected check-in to be recorded, got %q", out)
	}
}

func TestPrefsSetOnlyChangesGivenFlags(t *testing.T) {
	t.Setenv("ZENSTREAK_HOME", "")
	home := t.TempDir()
	out := run(t, home, "prefs", "set", "--sound", "rain")
	if !strings.Contains(out, "sound=rain volume=0.30") {
		t.Fatalf("unexpected prefs: %q", out)
	}
	out = run(t, home, "prefs", "reset")
	if !strings.Contains(out, "sound=silent") {
		t.Fatalf("expected defaults after reset, got %q", out)
	}
}

func TestPracticeListAndWisdom(t *testing.T) {
	t.Setenv("ZENSTREAK_HOME", "")
	home := t.TempDir()
	if out := run(t, home, "practice", "list"); !strings.Contains(out, "breathing-5min") {
		t.Fatalf("expected meditations, got %q", out)
	}
	if out := run(t, home, "wisdom"); strings.TrimSpace(out) == "" {
		t.Fatalf("expected a quote")
	}
	if out := run(t, home, "hooks", "list"); !strings.Contains(out, "no hooks configured") {
		t.Fatalf("unexpected hooks output: %q", out)
	}
}
