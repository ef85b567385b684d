package practice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	practicedto "zenstreak/internal/modules/practice/dto"
	"zenstreak/internal/ui/theme"
)

// Port is the minimal interface this view needs from the practice use-case.
type Port interface {
	ListMeditations(ctx context.Context) ([]practicedto.MeditationOutput, error)
	GetMeditation(ctx context.Context, id string) (practicedto.MeditationOutput, error)
	Position(ctx context.Context, id string, elapsed time.Duration) (practicedto.PositionOutput, error)
}

type MeditationsLoadedMsg struct {
	Meditations []practicedto.MeditationOutput
	Err         error
}

// DetailLoadedMsg carries the full meditation, phases and script included.
// Begin starts the session as soon as it arrives.
type DetailLoadedMsg struct {
	Meditation practicedto.MeditationOutput
	Begin      bool
	Err        error
}

// CompletedMsg is emitted once when a guided session runs to the end. The
// root model turns it into a check-in.
type CompletedMsg struct {
	Type    string
	Minutes float64
	Title   string
}

type tickMsg struct{ run int }

type positionMsg struct {
	run int
	pos practicedto.PositionOutput
	err error
}

type meditationItem struct {
	m practicedto.MeditationOutput
}

func (i meditationItem) Title() string { return i.m.Title }
func (i meditationItem) Description() string {
	return fmt.Sprintf("%s  %gm", i.m.Type, i.m.Minutes)
}
func (i meditationItem) FilterValue() string { return i.m.Title + " " + i.m.Type }

type Model struct {
	port     Port
	list     list.Model
	script   viewport.Model
	bar      progress.Model
	phaseBar progress.Model
	renderer *glamour.TermRenderer
	details  map[string]practicedto.MeditationOutput

	// run changes on start, pause and resume so stale ticks are dropped.
	run     int
	active  *practicedto.MeditationOutput
	elapsed time.Duration
	paused  bool
	pos     practicedto.PositionOutput
	err     error

	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Sage).BorderForeground(theme.Sage)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sky).BorderForeground(theme.Sage)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Guided meditations"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	bar := progress.New(progress.WithScaledGradient(string(theme.Moss), string(theme.Sky)))
	phaseBar := progress.New(progress.WithSolidFill(string(theme.Sage)), progress.WithoutPercentage())

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{
		port:     port,
		list:     l,
		script:   viewport.New(0, 0),
		bar:      bar,
		phaseBar: phaseBar,
		renderer: r,
		details:  map[string]practicedto.MeditationOutput{},
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		meds, err := m.port.ListMeditations(context.Background())
		return MeditationsLoadedMsg{Meditations: meds, Err: err}
	}
}

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

// Running reports whether a session is on screen, paused or not.
func (m Model) Running() bool { return m.active != nil }

// Start begins the meditation with the given id, if it is in the list.
func (m *Model) Start(id string) (tea.Cmd, bool) {
	for i, item := range m.list.Items() {
		mi, ok := item.(meditationItem)
		if !ok || mi.m.ID != id {
			continue
		}
		m.list.Select(i)
		return m.open(mi.m.ID, true), true
	}
	return nil, false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshScript()
		return m, nil

	case MeditationsLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		items := make([]list.Item, len(msg.Meditations))
		for i, med := range msg.Meditations {
			items[i] = meditationItem{m: med}
		}
		cmd := m.list.SetItems(items)
		m.refreshScript()
		return m, tea.Batch(cmd, m.loadSelected())

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.script.SetContent(theme.Hot.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.details[msg.Meditation.ID] = msg.Meditation
		m.refreshScript()
		if msg.Begin && m.active == nil {
			return m, m.begin(msg.Meditation)
		}
		return m, nil

	case tickMsg:
		if m.active == nil || msg.run != m.run || m.paused {
			return m, nil
		}
		m.elapsed += time.Second
		return m, tea.Batch(m.positionCmd(), tick(m.run))

	case positionMsg:
		if m.active == nil || msg.run != m.run {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.active = nil
			return m, nil
		}
		m.pos = msg.pos
		if msg.pos.Complete {
			done := *m.active
			m.active = nil
			m.run++
			return m, func() tea.Msg {
				return CompletedMsg{Type: done.Type, Minutes: done.Minutes, Title: done.Title}
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.active != nil {
			switch msg.String() {
			case " ", "p":
				m.paused = !m.paused
				m.run++
				if !m.paused {
					return m, tick(m.run)
				}
			case "esc", "x":
				m.active = nil
				m.run++
			}
			return m, nil
		}
		if msg.String() == "enter" && !m.Filtering() {
			if it, ok := m.list.SelectedItem().(meditationItem); ok {
				return m, m.open(it.m.ID, true)
			}
		}
	}

	if m.active != nil {
		return m, nil
	}
	prev := m.list.Index()
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.list.Index() != prev {
		m.refreshScript()
		cmds = append(cmds, m.loadSelected())
	}
	m.script, cmd = m.script.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil && m.active == nil && len(m.list.Items()) == 0 {
		return theme.Hot.Render("Error: " + m.err.Error())
	}
	if m.active != nil {
		return m.timerView()
	}
	left := theme.Pane.Width(m.listWidth()).Render(m.list.View())
	right := theme.Pane.Width(m.scriptWidth()).Render(m.script.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) begin(med practicedto.MeditationOutput) tea.Cmd {
	m.run++
	m.active = &med
	m.elapsed = 0
	m.paused = false
	m.err = nil
	m.pos = practicedto.PositionOutput{PhaseCount: len(med.Phases)}
	return tea.Batch(m.positionCmd(), tick(m.run))
}

func (m Model) timerView() string {
	med := m.active
	pos := m.pos
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(med.Title) + "  " + theme.Muted.Render(med.Type) + "\n\n")
	sb.WriteString(theme.Big.Render(clock(pos.Remaining)) + theme.Muted.Render("remaining") + "\n\n")
	sb.WriteString(m.bar.ViewAs(pos.Progress) + "\n\n")
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("%d/%d  %s", pos.PhaseIndex+1, pos.PhaseCount, pos.PhaseTitle)) + "\n")
	sb.WriteString(m.phaseBar.ViewAs(pos.PhaseProgress) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(max(m.width-8, 20)).Render(pos.Guidance) + "\n\n")
	hint := "space: pause  esc: stop"
	if m.paused {
		hint = theme.Hot.Render("paused") + "  " + theme.Muted.Render("space: resume  esc: stop")
	} else {
		hint = theme.Muted.Render(hint)
	}
	sb.WriteString(hint)
	return theme.PaneActive.Width(max(m.width-2, 20)).Render(sb.String())
}

func (m *Model) resize() {
	lw := m.listWidth()
	h := max(m.height-2, 1)
	m.list.SetSize(lw, h)
	m.script.Width = m.scriptWidth() - 2
	m.script.Height = h
	barW := max(m.width-10, 10)
	m.bar.Width = barW
	m.phaseBar.Width = barW
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.script.Width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) listWidth() int   { return max(m.width*2/5, 24) }
func (m Model) scriptWidth() int { return max(m.width-m.listWidth()-4, 20) }

func (m *Model) refreshScript() {
	it, ok := m.list.SelectedItem().(meditationItem)
	if !ok {
		m.script.SetContent(theme.Muted.Render("(no meditations)"))
		return
	}
	detail, ok := m.details[it.m.ID]
	if !ok {
		m.script.SetContent(theme.Title.Render(it.m.Title) + "\n\n" + theme.Muted.Render(it.m.Description))
		return
	}
	content := detail.Script
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = rendered
		}
	}
	m.script.SetContent(content + "\n" + theme.Muted.Render("enter: begin"))
	m.script.GotoTop()
}

// open begins or previews id, fetching the full meditation when it is not cached.
func (m *Model) open(id string, begin bool) tea.Cmd {
	if med, ok := m.details[id]; ok {
		if begin {
			return m.begin(med)
		}
		return nil
	}
	port := m.port
	return func() tea.Msg {
		med, err := port.GetMeditation(context.Background(), id)
		return DetailLoadedMsg{Meditation: med, Begin: begin, Err: err}
	}
}

func (m *Model) loadSelected() tea.Cmd {
	it, ok := m.list.SelectedItem().(meditationItem)
	if !ok {
		return nil
	}
	return m.open(it.m.ID, false)
}

func (m Model) positionCmd() tea.Cmd {
	id := m.active.ID
	elapsed := m.elapsed
	run := m.run
	return func() tea.Msg {
		pos, err := m.port.Position(context.Background(), id, elapsed)
		return positionMsg{run: run, pos: pos, err: err}
	}
}

func tick(run int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{run: run} })
}

func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
