package platformer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// setup isolates the package settings and the config search path.
func setup(t *testing.T, dir, start string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetLevelsDir(dir)
	SetStartLevel(start)
	t.Cleanup(func() {
		SetLevelsDir("")
		SetStartLevel("")
		SetWatch(false)
	})
}

func writeLevel(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// run steps the game n times with the same frame.
func run(g *Game, n int, actions ...core.Action) {
	for i := 0; i < n; i++ {
		g.Step(frame(actions...))
	}
}

const mapLevel = `id: map
name: Test Map
special: [world]
tiles: |
  .....
  .@L..
  ggggg
options:
  - {x: 2, y: 1, opts: {level: a}}
`

const flagLevel = `id: a
name: Flag Run
tiles: |
  ..........
  .@...F....
  ==========
`

func TestRegistered(t *testing.T) {
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.ID() != GameID || g.Title() != "Platformer" {
		t.Errorf("got %s %q", g.ID(), g.Title())
	}
}

func TestStartsOnBuiltinWorldMap(t *testing.T) {
	setup(t, "", "")
	g := newGame(t)

	st := g.State()
	if st.Stage != levels.WorldMapID {
		t.Fatalf("stage = %q, want %q", st.Stage, levels.WorldMapID)
	}
	if st.GameOver || !g.world.IsWorldMap() {
		t.Errorf("game over = %v, world map = %v", st.GameOver, g.world.IsWorldMap())
	}
}

func TestStartLevelSkipsMap(t *testing.T) {
	setup(t, "", "1-1")
	g := newGame(t)

	if st := g.State(); st.Stage != "1-1" || st.GameOver {
		t.Fatalf("state = %+v", st)
	}
	if g.worldMap != nil {
		t.Error("no map expected when starting on a level")
	}
	run(g, 30)
	if g.State().GameOver {
		t.Error("idle player should survive")
	}
}

func TestMissingStartLevel(t *testing.T) {
	setup(t, "", "9-9")
	g := newGame(t)

	if !g.State().GameOver || g.failure == "" {
		t.Errorf("expected failure, state = %+v failure = %q", g.State(), g.failure)
	}
}

func TestEmptyLevelsDir(t *testing.T) {
	setup(t, t.TempDir(), "")
	g := newGame(t)

	if g.failure != "No levels found" {
		t.Errorf("failure = %q", g.failure)
	}
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "No levels found") {
		t.Error("failure overlay not rendered")
	}
}

func TestCoinScores(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "c.yaml", "id: c\ntiles: |\n  .@0..\n  =====\n")
	setup(t, dir, "")
	g := newGame(t)

	run(g, 20, core.ActionRight)
	if g.coins != 1 {
		t.Errorf("coins = %d", g.coins)
	}
	if got := g.State().Score; got != g.cfg.Scoring.Coin {
		t.Errorf("score = %d, want %d", got, g.cfg.Scoring.Coin)
	}
}

func TestFallingEndsRun(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "pit.yaml", "id: pit\ntiles: |\n  .....\n  ..@..\n  .....\n")
	setup(t, dir, "")
	g := newGame(t)

	run(g, 120)
	if !g.State().GameOver {
		t.Fatal("falling out of the level should end the run")
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("game over overlay not rendered")
	}

	g.Step(frame(core.ActionRestart))
	if st := g.State(); st.GameOver || st.Stage != "pit" {
		t.Errorf("after restart state = %+v", st)
	}
}

func TestFlagClearWithoutMapWinsRun(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a.yaml", flagLevel)
	setup(t, dir, "")
	g := newGame(t)

	for i := 0; i < 200 && g.exitIn == 0; i++ {
		g.Step(frame(core.ActionRight))
	}
	if g.exitIn == 0 {
		t.Fatal("flag not reached")
	}
	clears := g.TakeClears()
	if len(clears) != 1 || clears[0].LevelID != "a" || clears[0].Ticks <= 0 {
		t.Fatalf("clears = %+v", clears)
	}
	if again := g.TakeClears(); len(again) != 0 {
		t.Errorf("clears should be drained, got %+v", again)
	}
	if got := g.State().Score; got != g.cfg.Scoring.Clear {
		t.Errorf("score = %d, want %d", got, g.cfg.Scoring.Clear)
	}

	run(g, clearDelay)
	if !g.won || !g.State().GameOver {
		t.Errorf("won = %v, state = %+v", g.won, g.State())
	}
}

// walkOntoLevel moves the map player right until it stands on a marker.
func walkOntoLevel(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 60; i++ {
		if tile := g.world.TileUnder(g.world.Player()); tile.Kind == engine.TileLevel {
			return
		}
		g.Step(frame(core.ActionRight))
	}
	t.Fatal("level marker not reached")
}

func TestMapEnterClearAndReturn(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "map.yaml", mapLevel)
	writeLevel(t, dir, "a.yaml", flagLevel)
	setup(t, dir, "")
	g := newGame(t)

	if g.State().Stage != "map" {
		t.Fatalf("stage = %q", g.State().Stage)
	}
	walkOntoLevel(t, g)
	if hint := g.mapHint(); hint != "Level a - Enter" {
		t.Errorf("hint = %q", hint)
	}
	g.Step(frame(core.ActionConfirm))
	if g.State().Stage != "a" {
		t.Fatalf("stage after confirm = %q", g.State().Stage)
	}

	for i := 0; i < 200 && g.exitIn == 0; i++ {
		g.Step(frame(core.ActionRight))
	}
	run(g, clearDelay)
	if g.State().Stage != "map" || g.State().GameOver {
		t.Fatalf("state after clear = %+v", g.State())
	}
	pl := g.world.Player()
	if pl.X != g.mapX || pl.Y != g.mapY {
		t.Errorf("map position = (%v,%v), want (%v,%v)", pl.X, pl.Y, g.mapX, g.mapY)
	}
	if tile := g.world.TileUnder(pl); tile.Kind != engine.TileLevel {
		t.Errorf("returned onto %v, want the level marker", tile.Kind)
	}
	if !g.cleared["a"] || g.mapHint() != "Level a (cleared) - Enter" {
		t.Errorf("cleared = %v, hint = %q", g.cleared, g.mapHint())
	}
}

func TestBackLeavesLevel(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "map.yaml", mapLevel)
	writeLevel(t, dir, "a.yaml", flagLevel)
	setup(t, dir, "")
	g := newGame(t)

	walkOntoLevel(t, g)
	g.Step(frame(core.ActionJump))
	if g.State().Stage != "a" {
		t.Fatalf("jump on a marker should enter, stage = %q", g.State().Stage)
	}
	g.Step(frame(core.ActionBack))
	if g.State().Stage != "map" {
		t.Errorf("stage after back = %q", g.State().Stage)
	}
	if len(g.TakeClears()) != 0 {
		t.Error("leaving a level is not a clear")
	}
}

func TestSetClearedMarksMap(t *testing.T) {
	setup(t, "", "")
	g := newGame(t)
	g.SetCleared([]string{"1-1"})

	if tile, _ := tileGlyph(engine.NewTileWithOpts(engine.TileLevel, map[string]string{"level": "1-1"}), g.cleared); tile != "◖◗" {
		t.Errorf("glyph = %q", tile)
	}
	_, c := tileGlyph(engine.NewTileWithOpts(engine.TileLevel, map[string]string{"level": "1-1"}), g.cleared)
	if c != core.ColorBrightGreen {
		t.Errorf("cleared marker color = %v", c)
	}
	_, c = tileGlyph(engine.NewTileWithOpts(engine.TileLevel, map[string]string{"level": "1-2"}), g.cleared)
	if c != core.ColorBrightRed {
		t.Errorf("open marker color = %v", c)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	setup(t, "", "1-1")
	g := newGame(t)
	run(g, 5)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	tick := g.world.Tick()
	run(g, 10, core.ActionRight)
	if g.world.Tick() != tick {
		t.Error("world advanced while paused")
	}
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	setup(t, "", "1-1")
	g := newGame(t)
	run(g, 20, core.ActionRight)
	tick := g.world.Tick()

	g.Resize(100, 31)
	ts := g.world.Params().TileSize
	view := g.world.View()
	if view.W != 100*ts/tileCols || view.H != 30*ts {
		t.Errorf("view = %+v", view)
	}
	if g.world.Tick() != tick || g.State().Stage != "1-1" {
		t.Error("resize restarted the level")
	}
}

func TestRenderHUDAndWorld(t *testing.T) {
	setup(t, "", "")
	g := newGame(t)
	run(g, 2)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	hud := scr.Row(0)
	if !strings.Contains(hud, "Meadow World") || !strings.Contains(hud, "Score 000000") {
		t.Errorf("hud = %q", hud)
	}
	body := scr.String()
	if !strings.Contains(body, "░░") {
		t.Error("map ground not drawn")
	}
	if !strings.Contains(body, "@") {
		t.Error("map player not drawn")
	}
}

func TestRenderSmallPlayer(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a.yaml", flagLevel)
	setup(t, dir, "")
	g := newGame(t)
	run(g, 2)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	body := scr.String()
	for _, want := range []string{"█", "▓▓", "║", "▶"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in\n%s", want, body)
		}
	}
}

func TestPlayableLevelsSkipsMaps(t *testing.T) {
	setup(t, "", "")
	lv, err := PlayableLevels()
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, l := range lv {
		ids = append(ids, l.ID)
	}
	if strings.Join(ids, ",") != "1-1,1-2,1-3" {
		t.Errorf("ids = %v", ids)
	}
}

func TestWatchReloadsCurrentLevel(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a.yaml", flagLevel)
	setup(t, dir, "")
	g := newGame(t)

	g.reloadFile(filepath.Join(dir, "a.yaml"))
	if g.message != "Reloaded a" {
		t.Errorf("message = %q", g.message)
	}
	g.reloadFile(filepath.Join(dir, "other.yaml"))
	if g.message != "Reloaded a" {
		t.Errorf("unrelated file changed message to %q", g.message)
	}
	if err := g.Close(); err != nil {
		t.Error(err)
	}
}

func TestSelectLevelOverridesStart(t *testing.T) {
	setup(t, "", "1-1")
	g := New()
	g.SelectLevel("1-2")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if got := g.State().Stage; got != "1-2" {
		t.Errorf("stage = %q, want 1-2", got)
	}

	g.SelectLevel("")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if got := g.State().Stage; got != levels.WorldMapID {
		t.Errorf("stage = %q, want the world map", got)
	}
}
