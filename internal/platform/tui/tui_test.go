package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"d", core.ActionRight, false},
		{"up", core.ActionUp, false},
		{"down", core.ActionDown, false},
		{" ", core.ActionJump, false},
		{"z", core.ActionJump, false},
		{"enter", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"k":     MenuActionUp,
		"down":  MenuActionDown,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"esc":   MenuActionBack,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	for key, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(key)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawText(0, 0, "ab")
	scr.DrawColoredText(2, 0, "cd", core.ColorBrown)
	scr.SetColored(0, 1, '@', core.ColorBrightRed)

	out := RenderScreen(scr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("row 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "@") {
		t.Errorf("row 1 = %q", lines[1])
	}
}

// stubGame records what the model does with it.
type stubGame struct {
	resets   int
	resized  [2]int
	steps    int
	state    core.GameState
	clears   []registry.LevelClear
	cleared  []string
	lastSeen core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastSeen = in.Clone()
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState   { return g.state }

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) TakeClears() []registry.LevelClear {
	c := g.clears
	g.clears = nil
	return c
}

func (g *stubGame) SetCleared(ids []string) { g.cleared = ids }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelSendsKeysForOneTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.Init()

	m = update(t, m, keyMsg("right"))
	m = update(t, m, keyMsg(" "))
	m = update(t, m, TickMsg{})
	if !g.lastSeen.Has(core.ActionRight) || !g.lastSeen.Has(core.ActionJump) {
		t.Errorf("first tick missed keys")
	}
	m = update(t, m, TickMsg{})
	if g.lastSeen.Has(core.ActionRight) {
		t.Error("keys should be cleared after a tick")
	}
	if g.steps != 2 {
		t.Errorf("steps = %d", g.steps)
	}
}

func TestModelResizeDoesNotReset(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 1 {
		t.Errorf("resets = %d, want only the initial one", g.resets)
	}
	if g.resized != [2]int{120, 40} {
		t.Errorf("resized = %v", g.resized)
	}
}

func TestModelSavesProgress(t *testing.T) {
	store := openStore(t)
	if err := store.RecordClear("stub", "0-1", 50); err != nil {
		t.Fatal(err)
	}

	g := &stubGame{}
	m := NewModel(g, store, core.DefaultConfig())
	m.Init()
	if len(g.cleared) != 1 || g.cleared[0] != "0-1" {
		t.Errorf("cleared handed to game = %v", g.cleared)
	}

	g.clears = []registry.LevelClear{{LevelID: "1-1", Ticks: 300}}
	m = update(t, m, TickMsg{})

	g.state = core.GameState{Score: 1200, GameOver: true, Stage: "1-2"}
	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	clears, err := store.ClearedLevels("stub")
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := clears["1-1"]; !ok || c.BestTicks != 300 {
		t.Errorf("clears = %+v", clears)
	}

	scores, err := store.TopScores("stub", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 1200 || scores[0].LevelID != "1-2" {
		t.Errorf("scores = %+v", scores)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.allowBack = true
	m.Init()

	m = update(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Fatal("back while playing should stay in game")
	}

	g.state.GameOver = true
	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("back after game over should leave")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, core.DefaultConfig())
	m = update(t, m, keyMsg("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	if len(m.levels) == 0 {
		t.Fatal("built-in levels missing from menu")
	}
	if !strings.Contains(m.View(), "P L A T F O R M E R") {
		t.Error("title missing")
	}

	step := func(key string) {
		next, _ := m.Update(keyMsg(key))
		m = next.(MenuModel)
	}

	step("enter")
	if id, ok := m.Selection(); !ok || id != "" {
		t.Errorf("world map selection = %q, %v", id, ok)
	}

	m = NewMenuModel(nil, core.DefaultConfig())
	step("down")
	step("enter")
	if !m.inLevelSelect {
		t.Fatal("expected level picker")
	}
	if !strings.Contains(m.View(), "SELECT LEVEL") {
		t.Error("picker title missing")
	}
	step("down")
	step("enter")
	if id, ok := m.Selection(); !ok || id != m.levels[1].ID {
		t.Errorf("selection = %q, %v", id, ok)
	}

	m = NewMenuModel(nil, core.DefaultConfig())
	step("tab")
	if !m.WantsScoreboard() {
		t.Error("tab should open scores")
	}
}

func TestMenuShowsProgress(t *testing.T) {
	store := openStore(t)
	if err := store.RecordClear("platformer", "1-1", 100); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("platformer", "1-1", 4200); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	if !strings.Contains(m.View(), "1 of 3 levels cleared") {
		t.Errorf("view = %q", m.View())
	}
	if l := m.levels[0]; l.ID != "1-1" || !l.Cleared || l.Best != 4200 {
		t.Errorf("level item = %+v", l)
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openStore(t)
	for _, s := range []struct {
		level string
		score int
	}{{"1-1", 500}, {"1-2", 900}, {"1-1", 700}} {
		if _, err := store.SaveScore("platformer", s.level, s.score); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 3 {
		t.Fatalf("all tab scores = %d", len(m.scores))
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.tabs[m.tabCursor].LevelID != "1-1" || len(m.scores) != 2 || m.scores[0].Score != 700 {
		t.Errorf("1-1 tab = %+v", m.scores)
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardShowsClears(t *testing.T) {
	store := openStore(t)
	if err := store.RecordClear("platformer", "1-2", 1500); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 100, 30)
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "1-2 ✓", "1 of 3 levels cleared", "No runs yet."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// shift+tab wraps to the last level
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if got := m.tabs[m.tabCursor].LevelID; got != "1-3" {
		t.Fatalf("tab after wrap = %q, want 1-3", got)
	}
	next, _ = m.Update(keyMsg("left"))
	m = next.(ScoreboardModel)
	if !strings.Contains(m.View(), "best 25.0s, cleared 1x") {
		t.Errorf("1-2 summary missing best time:\n%s", m.View())
	}
}
