package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Main menu entries.
const (
	menuWorldMap = iota
	menuSelectLevel
	menuScoreboard
	menuQuit
	menuEntries
)

var menuLabels = [menuEntries]string{
	menuWorldMap:    "Adventure (world map)",
	menuSelectLevel: "Select Level...",
	menuScoreboard:  "High Scores",
	menuQuit:        "Quit",
}

// LevelItem is one playable level in the level picker.
type LevelItem struct {
	ID      string
	Name    string
	Cleared bool
	Best    int // best score that ended on this level
}

// MenuModel is the Bubble Tea model for the main menu and level picker.
type MenuModel struct {
	levels         []LevelItem
	loadErr        error
	cursor         int
	levelCursor    int
	inLevelSelect  bool
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	chosen         bool
	levelID        string // empty starts on the world map
	openScoreboard bool
}

// NewMenuModel creates a new menu model. Cleared marks and best scores
// come from store when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.levels, m.loadErr = loadLevelItems(store)
	return m
}

func loadLevelItems(store *storage.Store) ([]LevelItem, error) {
	lv, err := platformer.PlayableLevels()
	if err != nil {
		return nil, err
	}

	var cleared map[string]storage.LevelClear
	if store != nil {
		//nolint:errcheck // Missing progress only hides the cleared marks
		cleared, _ = store.ClearedLevels(platformer.GameID)
	}

	items := make([]LevelItem, 0, len(lv))
	for _, l := range lv {
		item := LevelItem{ID: l.ID, Name: l.Name}
		if _, ok := cleared[l.ID]; ok {
			item.Cleared = true
		}
		if store != nil {
			//nolint:errcheck // Best score is informational
			item.Best, _ = store.HighScore(platformer.GameID, l.ID)
		}
		items = append(items, item)
	}
	return items, nil
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleMainKey(action)
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuEntries-1 {
			m.cursor++
		}

	case MenuActionSelect:
		switch m.cursor {
		case menuWorldMap:
			m.chosen = true
			m.levelID = ""
			return m, tea.Quit
		case menuSelectLevel:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case menuScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.chosen = true
		m.levelID = m.levels[m.levelCursor].ID
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  P L A T F O R M E R  ", m.width))
	b.WriteString("\n\n")

	cleared := 0
	for _, l := range m.levels {
		if l.Cleared {
			cleared++
		}
	}
	subtitle := fmt.Sprintf("%d of %d levels cleared", cleared, len(m.levels))
	if m.loadErr != nil {
		subtitle = "Could not load levels: " + m.loadErr.Error()
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, label := range menuLabels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		mark := " "
		if l.Cleared {
			mark = "*"
		}
		line := fmt.Sprintf("%s%s %-6s %-20s", cursor, mark, l.ID, l.Name)
		if l.Best > 0 {
			line += fmt.Sprintf(" best %d", l.Best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("* cleared  |  Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selection returns the chosen start level and whether a choice was made.
// An empty level ID means the world map.
func (m MenuModel) Selection() (levelID string, ok bool) {
	return m.levelID, m.chosen
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string // empty starts on the world map
	Play            bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if id, chosen := m.Selection(); chosen {
		result.LevelID = id
		result.Play = true
		return result, nil
	}

	result.Quit = true
	return result, nil
}
