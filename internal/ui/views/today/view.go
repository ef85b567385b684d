package today

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	practicedto "zenstreak/internal/modules/practice/dto"
	streakdto "zenstreak/internal/modules/streak/dto"
	"zenstreak/internal/ui/theme"
)

// Port is what the Today tab reads.
type Port interface {
	Status(ctx context.Context) (streakdto.StatusOutput, error)
	QuoteOfDay(ctx context.Context) (practicedto.QuoteOutput, error)
}

type StatusLoadedMsg struct {
	Status streakdto.StatusOutput
	Err    error
}

type QuoteLoadedMsg struct {
	Quote practicedto.QuoteOutput
	Err   error
}

type Model struct {
	port    Port
	spinner spinner.Model
	status  streakdto.StatusOutput
	quote   practicedto.QuoteOutput
	banner  string
	err     error
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Sage)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.loadQuoteCmd(), m.spinner.Tick)
}

// Reload re-reads the streak record.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background())
		return StatusLoadedMsg{Status: status, Err: err}
	}
}

// CheckedIn shows the outcome of a check-in above the stats until the next one.
func (m *Model) CheckedIn(out streakdto.CheckinOutput) {
	switch {
	case !out.Recorded:
		m.banner = theme.Muted.Render("Already checked in today.")
	case out.Milestone != nil:
		ms := out.Milestone
		m.banner = theme.Hot.Render(fmt.Sprintf("%s  %s", ms.Title, ms.Achievement)) + "\n" +
			theme.Muted.Render(ms.Message)
	default:
		m.banner = theme.Good.Render(fmt.Sprintf("Checked in. Day %d.", out.Record.CurrentStreak))
	}
	for _, h := range out.Hooks {
		if h.Message != "" {
			m.banner += "\n" + theme.Muted.Render(h.Name+": "+h.Message)
		}
	}
}

func (m Model) CheckedInToday() bool { return m.status.CheckedInToday }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.status = msg.Status
		}
	case QuoteLoadedMsg:
		if msg.Err == nil {
			m.quote = msg.Quote
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading…")
	}
	if m.err != nil {
		return theme.Hot.Render("Error: " + m.err.Error())
	}

	r := m.status.Record
	var sb strings.Builder
	sb.WriteString(theme.Big.Render(fmt.Sprintf("%d", r.CurrentStreak)))
	sb.WriteString(theme.Title.Render(dayWord(r.CurrentStreak) + " streak"))
	sb.WriteString("\n\n")
	if m.status.CheckedInToday {
		sb.WriteString(theme.Good.Render("✓ Meditated today"))
	} else {
		sb.WriteString(theme.Muted.Render("Not yet today. Press c to check in."))
	}
	sb.WriteString("\n")
	if m.banner != "" {
		sb.WriteString("\n" + m.banner + "\n")
	}
	sb.WriteString("\n" + renderWeek(m.status.Week) + "\n\n")
	sb.WriteString(m.renderStats())
	if m.quote.Text != "" {
		sb.WriteString("\n\n" + theme.Muted.Render(fmt.Sprintf("%q  %s", m.quote.Text, m.quote.Author)))
	}
	return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
}

func (m Model) renderStats() string {
	r := m.status.Record
	rows := []string{
		fmt.Sprintf("longest   %d", r.LongestStreak),
		fmt.Sprintf("sessions  %d", r.TotalSessions),
		fmt.Sprintf("month     %d", m.status.ThisMonth),
	}
	if next := m.status.Next; next != nil {
		rows = append(rows, fmt.Sprintf("next      %s in %d %s", next.Title, m.status.DaysToNext, dayWord(m.status.DaysToNext)))
	}
	return theme.Muted.Render(strings.Join(rows, "\n"))
}

func renderWeek(days []streakdto.DayOutput) string {
	cells := make([]string, 0, len(days))
	for _, d := range days {
		mark := theme.Muted.Render("·")
		if d.Meditated {
			mark = theme.Good.Render("●")
		}
		label := d.Weekday
		if d.IsToday {
			label = theme.Hot.Render(label)
		}
		cells = append(cells, lipgloss.JoinVertical(lipgloss.Center, label, fmt.Sprintf("%2d", d.Day), mark))
	}
	gap := "  "
	out := make([]string, 0, 2*len(cells))
	for i, c := range cells {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) loadQuoteCmd() tea.Cmd {
	return func() tea.Msg {
		q, err := m.port.QuoteOfDay(context.Background())
		return QuoteLoadedMsg{Quote: q, Err: err}
	}
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
