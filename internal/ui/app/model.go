package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	practicedto "zenstreak/internal/modules/practice/dto"
	streakdto "zenstreak/internal/modules/streak/dto"
	"zenstreak/internal/ui/components"
	"zenstreak/internal/ui/theme"
	practiceview "zenstreak/internal/ui/views/practice"
	settingsview "zenstreak/internal/ui/views/settings"
	todayview "zenstreak/internal/ui/views/today"
	"zenstreak/internal/ui/watch"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type StreakPort interface {
	Status(ctx context.Context) (streakdto.StatusOutput, error)
	Checkin(ctx context.Context, kind string, minutes float64) (streakdto.CheckinOutput, error)
	Reset(ctx context.Context, confirm bool) error
}

type PracticePort interface {
	ListMeditations(ctx context.Context) ([]practicedto.MeditationOutput, error)
	GetMeditation(ctx context.Context, id string) (practicedto.MeditationOutput, error)
	Position(ctx context.Context, id string, elapsed time.Duration) (practicedto.PositionOutput, error)
	QuoteOfDay(ctx context.Context) (practicedto.QuoteOutput, error)
}

type Deps struct {
	Streak   StreakPort
	Practice PracticePort
	Prefs    settingsview.Port

	// WatchPath, when set, is reloaded whenever another process writes it.
	WatchPath string
	Logger    *zap.Logger
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabPractice
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Practice", "Settings"}

// ─── async messages ──────────────────────────────────────────────────────────

type checkedInMsg struct {
	out streakdto.CheckinOutput
	err error
}

type resetDoneMsg struct{ err error }

type storeChangedMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Checkin key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Begin   key.Binding
	Pause   key.Binding
	Stop    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Checkin: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check in")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Begin:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "begin meditation")),
		Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Stop:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Checkin, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Checkin},
		{k.Begin, k.Pause, k.Stop},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, owns check-in and
// reset, and reloads the Today tab when the store changes on disk.
type Model struct {
	streak  StreakPort
	log     *zap.Logger
	watcher *watch.Watcher
	done    chan struct{}

	todayView    todayview.Model
	practiceView practiceview.Model
	settingsView settingsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(deps Deps) Model {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		streak:       deps.Streak,
		log:          log,
		done:         make(chan struct{}),
		todayView:    todayview.New(todayPortBridge{streak: deps.Streak, practice: deps.Practice}),
		practiceView: practiceview.New(deps.Practice),
		settingsView: settingsview.New(deps.Prefs),
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
	if deps.WatchPath != "" {
		w, err := watch.New(deps.WatchPath, log.Named("watch"))
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.Warn("store watcher disabled", zap.String("path", deps.WatchPath), zap.Error(err))
		} else {
			m.watcher = w
		}
	}
	return m
}

// Close stops the store watcher. Call it after the program exits.
func (m Model) Close() error {
	close(m.done)
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Stop()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.practiceView.Init(),
		m.settingsView.Init(),
		m.waitForChangeCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case todayview.StatusLoadedMsg, todayview.QuoteLoadedMsg:
		var cmd tea.Cmd
		m.todayView, cmd = m.todayView.Update(msg)
		return m, cmd

	case practiceview.MeditationsLoadedMsg, practiceview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.practiceView, cmd = m.practiceView.Update(msg)
		return m, cmd

	case settingsview.PrefsMsg:
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		if msg.Err != nil {
			m.status = "preferences: " + msg.Err.Error()
		}
		return m, cmd

	case practiceview.CompletedMsg:
		m.activeTab = tabToday
		m.status = "completed " + msg.Title
		return m, m.checkinCmd(msg.Type, msg.Minutes)

	case checkedInMsg:
		if msg.err != nil {
			m.status = "check-in failed: " + msg.err.Error()
			m.log.Warn("tui check-in", zap.Error(msg.err))
			return m, nil
		}
		m.todayView.CheckedIn(msg.out)
		if msg.out.Recorded {
			m.status = fmt.Sprintf("checked in, streak %d", msg.out.Record.CurrentStreak)
		} else {
			m.status = "already checked in today"
		}
		return m, m.todayView.Reload()

	case settingsview.ResetStreakMsg:
		return m, m.resetCmd()

	case resetDoneMsg:
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "streak data reset"
		m.activeTab = tabToday
		return m, m.todayView.Reload()

	case storeChangedMsg:
		return m, tea.Batch(m.todayView.Reload(), m.waitForChangeCmd())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.subViewOwnsKeys() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				m.activeTab = (m.activeTab + 1) % tabCount
				return m, nil
			case "shift+tab":
				m.activeTab = (m.activeTab + tabCount - 1) % tabCount
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				return m, m.palette.Open()
			case "c":
				if m.activeTab == tabToday {
					return m, m.checkinCmd("", 0)
				}
			}
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, cmd = m.todayView.Update(msg)
	case tabPractice:
		m.practiceView, cmd = m.practiceView.Update(msg)
	case tabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	// The session timer keeps running while another tab is shown.
	if m.activeTab != tabPractice && m.practiceView.Running() {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			var pcmd tea.Cmd
			m.practiceView, pcmd = m.practiceView.Update(msg)
			cmd = tea.Batch(cmd, pcmd)
		}
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabPractice:
		return m.practiceView.View()
	case tabSettings:
		return m.settingsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == tabPractice && m.practiceView.Running() {
			label += " ●"
		}
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := theme.Good.Render("zenstreak") + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  ::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "checkin":
		kind := ""
		minutes := 0.0
		if len(parts) >= 2 {
			kind = parts[1]
		}
		if len(parts) >= 3 {
			v, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				m.status = "invalid minutes: " + parts[2]
				return m, nil
			}
			minutes = v
		}
		m.activeTab = tabToday
		return m, m.checkinCmd(kind, minutes)

	case "reset":
		m.activeTab = tabSettings
		m.settingsView.AskResetStreak()
		return m, nil

	case "sound":
		if len(parts) < 2 {
			m.status = "usage: sound <name>"
			return m, nil
		}
		m.activeTab = tabSettings
		return m, m.settingsView.SetSound(parts[1])

	case "volume":
		if len(parts) < 2 {
			m.status = "usage: volume <0..1>"
			return m, nil
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid volume: " + parts[1]
			return m, nil
		}
		m.activeTab = tabSettings
		return m, m.settingsView.SetVolume(v)

	case "practice":
		if len(parts) < 2 {
			m.activeTab = tabPractice
			return m, nil
		}
		cmd, ok := m.practiceView.Start(parts[1])
		if !ok {
			m.status = "unknown meditation: " + parts[1]
			return m, nil
		}
		m.activeTab = tabPractice
		return m, cmd

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewOwnsKeys reports whether the active tab is taking free-form input,
// in which case global key bindings yield.
func (m Model) subViewOwnsKeys() bool {
	switch m.activeTab {
	case tabPractice:
		return m.practiceView.Filtering()
	case tabSettings:
		return m.settingsView.Confirming()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.practiceView, _ = m.practiceView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) checkinCmd(kind string, minutes float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.streak.Checkin(context.Background(), kind, minutes)
		return checkedInMsg{out: out, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		return resetDoneMsg{err: m.streak.Reset(context.Background(), true)}
	}
}

func (m Model) waitForChangeCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	done := m.done
	return func() tea.Msg {
		select {
		case <-changes:
			return storeChangedMsg{}
		case <-done:
			return nil
		}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type todayPortBridge struct {
	streak   StreakPort
	practice PracticePort
}

func (b todayPortBridge) Status(ctx context.Context) (streakdto.StatusOutput, error) {
	return b.streak.Status(ctx)
}

func (b todayPortBridge) QuoteOfDay(ctx context.Context) (practicedto.QuoteOutput, error) {
	return b.practice.QuoteOfDay(ctx)
}
