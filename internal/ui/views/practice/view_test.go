package practice

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	practicedto "zenstreak/internal/modules/practice/dto"
)

type fakePort struct {
	seconds int
}

func (f fakePort) ListMeditations(context.Context) ([]practicedto.MeditationOutput, error) {
	return []practicedto.MeditationOutput{
		{ID: "short", Title: "Short sit", Type: "mindfulness", Seconds: f.seconds, Minutes: float64(f.seconds) / 60},
	}, nil
}

func (f fakePort) GetMeditation(_ context.Context, id string) (practicedto.MeditationOutput, error) {
	return practicedto.MeditationOutput{
		ID: id, Title: "Short sit", Type: "mindfulness", Seconds: f.seconds, Minutes: float64(f.seconds) / 60,
		Phases: []practicedto.PhaseOutput{{Title: "Sit", Seconds: f.seconds, Guidance: []string{"Breathe."}}},
		Script: "# Short sit",
	}, nil
}

func (f fakePort) Position(_ context.Context, _ string, elapsed time.Duration) (practicedto.PositionOutput, error) {
	total := time.Duration(f.seconds) * time.Second
	return practicedto.PositionOutput{
		PhaseCount: 1,
		PhaseTitle: "Sit",
		Remaining:  total - elapsed,
		Complete:   elapsed >= total,
	}, nil
}

func started(t *testing.T, seconds int) Model {
	t.Helper()
	m := New(fakePort{seconds: seconds})
	m, _ = m.Update(m.Init()())

	cmd, ok := m.Start("short")
	if !ok {
		t.Fatal("expected meditation to be found")
	}
	m, _ = m.Update(cmd())
	if !m.Running() {
		t.Fatal("expected a running session")
	}
	return m
}

func TestSessionCompletesAndReportsTypeAndMinutes(t *testing.T) {
	t.Parallel()
	m := started(t, 2)

	var done tea.Cmd
	for i := 0; i < 3 && m.Running(); i++ {
		m, _ = m.Update(tickMsg{run: m.run})
		m, done = m.Update(m.positionCmd()())
	}
	if m.Running() {
		t.Fatal("session should end after completion")
	}
	completed, ok := done().(CompletedMsg)
	if !ok {
		t.Fatal("expected CompletedMsg")
	}
	if completed.Type != "mindfulness" || completed.Minutes != float64(2)/60 {
		t.Fatalf("unexpected completion: %+v", completed)
	}
}

func TestStaleTicksAreIgnoredAfterStop(t *testing.T) {
	t.Parallel()
	m := started(t, 60)
	stale := m.run

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Running() {
		t.Fatal("esc should stop the session")
	}
	m, _ = m.Update(tickMsg{run: stale})
	if m.elapsed != 0 {
		t.Fatalf("stale tick advanced the clock to %v", m.elapsed)
	}
}

func TestPauseHoldsTheClock(t *testing.T) {
	t.Parallel()
	m := started(t, 60)
	m, _ = m.Update(tickMsg{run: m.run})
	if m.elapsed != time.Second {
		t.Fatalf("elapsed = %v", m.elapsed)
	}

	beforePause := m.run
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = m.Update(tickMsg{run: beforePause})
	m, _ = m.Update(tickMsg{run: m.run})
	if m.elapsed != time.Second {
		t.Fatalf("paused session advanced to %v", m.elapsed)
	}
}
