package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	prefdto "zenstreak/internal/modules/preferences/dto"
	"zenstreak/internal/ui/theme"
)

type Port interface {
	Get(ctx context.Context) (prefdto.AudioOutput, error)
	Update(ctx context.Context, input prefdto.UpdateInput) (prefdto.AudioOutput, error)
	Reset(ctx context.Context) (prefdto.AudioOutput, error)
}

// PrefsMsg carries preferences after a read or a write.
type PrefsMsg struct {
	Prefs prefdto.AudioOutput
	Err   error
}

// ResetStreakMsg asks the root model to delete streak data. It is only sent
// after the user confirmed.
type ResetStreakMsg struct{}

type row int

const (
	rowSound row = iota
	rowVolume
	rowAutoStart
	rowFadeIn
	rowFadeOut
	rowDefaults
	rowResetStreak
	rowCount
)

const (
	volumeStep = 0.05
	fadeStep   = 0.5
)

type Model struct {
	port       Port
	prefs      prefdto.AudioOutput
	loaded     bool
	cursor     row
	confirming row
	note       string
	width      int
}

func New(port Port) Model {
	return Model{port: port, confirming: -1}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := m.port.Get(context.Background())
		return PrefsMsg{Prefs: p, Err: err}
	}
}

func (m Model) SetSound(sound string) tea.Cmd {
	return m.update(prefdto.UpdateInput{Sound: &sound})
}

func (m Model) SetVolume(v float64) tea.Cmd {
	return m.update(prefdto.UpdateInput{Volume: &v})
}

// Confirming reports whether a y/n prompt owns the keyboard.
func (m Model) Confirming() bool { return m.confirming >= 0 }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case PrefsMsg:
		if msg.Err != nil {
			m.note = theme.Hot.Render(msg.Err.Error())
			return m, nil
		}
		m.prefs = msg.Prefs
		m.loaded = true
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirming >= 0 {
		target := m.confirming
		m.confirming = -1
		if msg.String() != "y" {
			m.note = theme.Muted.Render("cancelled")
			return m, nil
		}
		m.note = ""
		if target == rowResetStreak {
			return m, func() tea.Msg { return ResetStreakMsg{} }
		}
		return m, m.resetPrefs()
	}
	if !m.loaded {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < rowCount-1 {
			m.cursor++
		}
	case "left", "h":
		return m, m.adjust(-1)
	case "right", "l":
		return m, m.adjust(1)
	case "enter", " ":
		switch m.cursor {
		case rowAutoStart:
			v := !m.prefs.AutoStart
			return m, m.update(prefdto.UpdateInput{AutoStart: &v})
		case rowDefaults:
			m.confirming = rowDefaults
			m.note = theme.Hot.Render("Restore default sound settings? y/n")
		case rowResetStreak:
			m.AskResetStreak()
		default:
			return m, m.adjust(1)
		}
	}
	return m, nil
}

func (m Model) adjust(dir int) tea.Cmd {
	p := m.prefs
	switch m.cursor {
	case rowSound:
		next := cycle(p.Sounds, p.Sound, dir)
		if next == "" {
			return nil
		}
		return m.update(prefdto.UpdateInput{Sound: &next})
	case rowVolume:
		v := clamp(p.Volume+float64(dir)*volumeStep, 0, 1)
		return m.update(prefdto.UpdateInput{Volume: &v})
	case rowAutoStart:
		v := !p.AutoStart
		return m.update(prefdto.UpdateInput{AutoStart: &v})
	case rowFadeIn:
		v := max(p.FadeInDuration+float64(dir)*fadeStep, 0)
		return m.update(prefdto.UpdateInput{FadeInDuration: &v})
	case rowFadeOut:
		v := max(p.FadeOutDuration+float64(dir)*fadeStep, 0)
		return m.update(prefdto.UpdateInput{FadeOutDuration: &v})
	}
	return nil
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("Loading preferences…") + "\n" + m.note
	}
	p := m.prefs
	rows := [rowCount]string{
		rowSound:       fmt.Sprintf("Sound        ‹ %s ›", p.Sound),
		rowVolume:      fmt.Sprintf("Volume       %s %3.0f%%", volumeBar(p.Volume), p.Volume*100),
		rowAutoStart:   fmt.Sprintf("Auto-start   %s", onOff(p.AutoStart)),
		rowFadeIn:      fmt.Sprintf("Fade in      %gs", p.FadeInDuration),
		rowFadeOut:     fmt.Sprintf("Fade out     %gs", p.FadeOutDuration),
		rowDefaults:    "Restore default sound settings",
		rowResetStreak: "Reset all streak data",
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n\n")
	for i, r := range rows {
		line := "  " + r
		if row(i) == m.cursor {
			line = theme.Hot.Render("› " + r)
		}
		if row(i) == rowDefaults {
			sb.WriteString("\n")
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓ select  ←/→ change  enter toggle"))
	if m.note != "" {
		sb.WriteString("\n\n" + m.note)
	}
	return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
}

func (m Model) update(input prefdto.UpdateInput) tea.Cmd {
	return func() tea.Msg {
		p, err := m.port.Update(context.Background(), input)
		return PrefsMsg{Prefs: p, Err: err}
	}
}

func (m Model) resetPrefs() tea.Cmd {
	return func() tea.Msg {
		p, err := m.port.Reset(context.Background())
		return PrefsMsg{Prefs: p, Err: err}
	}
}

func cycle(options []string, current string, dir int) string {
	if len(options) == 0 {
		return ""
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+dir)%n+n)%n]
}

func volumeBar(v float64) string {
	const slots = 10
	filled := int(v*slots + 0.5)
	return theme.Good.Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", slots-filled))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// AskResetStreak moves to the reset row and opens its confirmation prompt.
func (m *Model) AskResetStreak() {
	m.cursor = rowResetStreak
	m.confirming = rowResetStreak
	m.note = theme.Hot.Render("Delete all streak data? y/n")
}
