package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const maxScores = 100

// clearTickRate converts clear ticks to seconds at the default 60 fps.
const clearTickRate = 60

var (
	boardTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardFrame   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardTab     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	boardTabOn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")).Padding(0, 1)
	boardCleared = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Scroll, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next level")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreTab filters runs by the level they ended on.
type scoreTab struct {
	LevelID string // empty for every run
	Title   string
}

// ScoreboardModel lists the best runs per level.
type ScoreboardModel struct {
	store     *storage.Store
	tabs      []scoreTab
	tabCursor int
	scores    []storage.ScoreEntry
	clears    map[string]storage.LevelClear
	table     table.Model
	help      help.Model
	keys      scoreboardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the all-levels tab.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	tabs := []scoreTab{{Title: "All levels"}}
	if lv, err := platformer.PlayableLevels(); err == nil {
		for _, l := range lv {
			tabs = append(tabs, scoreTab{LevelID: l.ID, Title: l.Name})
		}
	}

	m := ScoreboardModel{
		store:  store,
		tabs:   tabs,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	if store != nil {
		m.clears, _ = store.ClearedLevels(platformer.GameID)
	}
	m.table = m.newTable()
	m.loadScores()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	when := 18
	if m.width < 60 {
		when = 12
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Ended on", Width: 9},
			{Title: "When", Width: when},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")).Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) loadScores() {
	m.scores = nil
	if m.store != nil {
		if scores, err := m.store.TopScores(platformer.GameID, m.tabs[m.tabCursor].LevelID, maxScores); err == nil {
			m.scores = scores
		}
	}

	layout := "Jan 02 15:04"
	if m.width < 60 {
		layout = "01/02 15:04"
	}
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{strconv.Itoa(i + 1), strconv.Itoa(s.Score), s.LevelID, s.CreatedAt.Format(layout)}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) moveTab(delta int) {
	n := len(m.tabs)
	m.tabCursor = ((m.tabCursor+delta)%n + n) % n
	m.loadScores()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveTab(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.loadScores()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := m.table.View()
	if len(m.scores) == 0 {
		body = boardDim.Italic(true).Padding(1, 2).Render("No runs yet.\nReach a flag to get on the board.")
	}

	center := func(s string) string { return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s) }
	return lipgloss.JoinVertical(lipgloss.Left,
		center(boardTitle.Render("HIGH SCORES")),
		"",
		center(m.tabStrip()),
		center(m.levelSummary()),
		center(boardFrame.Render(body)),
		boardDim.Render(m.help.View(m.keys)),
	)
}

// tabStrip renders the level tabs, scrolled so the selected one is visible.
func (m ScoreboardModel) tabStrip() string {
	labels := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		label := tab.LevelID
		if label == "" {
			label = "All"
		} else if _, ok := m.clears[tab.LevelID]; ok {
			label += " ✓"
		}
		if i == m.tabCursor {
			labels[i] = boardTabOn.Render(label)
		} else {
			labels[i] = boardTab.Render(label)
		}
	}

	lo, hi := 0, len(labels)
	for lo < m.tabCursor && lipgloss.Width(strings.Join(labels[lo:hi], "")) > m.width-4 {
		lo++
	}
	for hi > m.tabCursor+1 && lipgloss.Width(strings.Join(labels[lo:hi], "")) > m.width-4 {
		hi--
	}

	strip := strings.Join(labels[lo:hi], "")
	if lo > 0 {
		strip = "‹" + strip
	}
	if hi < len(labels) {
		strip += "›"
	}
	return strip
}

// levelSummary describes the selected tab: its name and best clear.
func (m ScoreboardModel) levelSummary() string {
	tab := m.tabs[m.tabCursor]
	if tab.LevelID == "" {
		return boardDim.Render(fmt.Sprintf("%d of %d levels cleared", len(m.clears), len(m.tabs)-1))
	}
	c, ok := m.clears[tab.LevelID]
	if !ok {
		return boardDim.Render(tab.Title + "  not cleared")
	}
	secs := float64(c.BestTicks) / clearTickRate
	return tab.Title + "  " + boardCleared.Render(fmt.Sprintf("best %.1fs, cleared %dx", secs, c.Clears))
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard and reports whether to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.goingBack, nil
}
