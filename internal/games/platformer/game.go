// Package platformer runs the tile platformer engine as a game: a world
// map leading to levels, scoring, and terminal rendering.
package platformer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// GameID is the registry and score storage identifier.
const GameID = "platformer"

const (
	hudHeight    = 1   // rows above the play area
	tileCols     = 2   // terminal columns per tile
	messageTicks = 180 // how long HUD messages stay up
	clearDelay   = 90  // ticks between touching the flag and leaving the level
)

// Actions that stay held between key repeats.
var heldActions = [...]core.Action{
	core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump,
}

// Package-level settings, set from the CLI before the game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       string
	levelsDir        string
	watchLevels      bool
	logger           = log.New(io.Discard)
	sounder          engine.Sounder
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config file's difficulty.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel skips the world map and starts at the given level ID.
// An empty ID starts on the world map.
func SetStartLevel(id string) {
	startLevel = id
}

// StartLevel returns the level selected with SetStartLevel.
func StartLevel() string {
	return startLevel
}

// SetLevelsDir loads levels from dir instead of the built-in set.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetWatch enables reloading level files from the levels directory when
// they change on disk.
func SetWatch(enabled bool) {
	watchLevels = enabled
}

// SetLogger sets the logger for level loads and transitions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetSounder routes engine sound triggers to s. Nil disables sound.
func SetSounder(s engine.Sounder) {
	sounder = s
}

// Loader returns the level loader for the current settings.
func Loader() *levels.Loader {
	if levelsDir != "" {
		return levels.NewLoader(levelsDir)
	}
	return levels.Builtin()
}

// PlayableLevels returns every level except world maps, sorted by ID.
func PlayableLevels() ([]levels.Level, error) {
	all, err := Loader().LoadAll()
	if err != nil {
		return nil, err
	}
	playable := all[:0]
	for _, lvl := range all {
		if !lvl.Has(engine.SpecialWorld) {
			playable = append(playable, lvl)
		}
	}
	return playable, nil
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game on top of engine.World.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.PlatformerConfig
	difficulty *config.DifficultyManager
	loader     *levels.Loader
	held       *core.HeldInput
	watcher    *levels.Watcher

	// Per-instance start level, set by SelectLevel. Overrides SetStartLevel.
	startAt  string
	startSet bool

	world    *engine.World
	level    levels.Level
	worldMap *levels.Level // nil when the run started on a level

	// Player position on the map, restored when coming back from a level.
	mapX, mapY float64
	hasMapPos  bool

	next   string // level requested during the current tick
	exitIn int    // ticks left before leaving a cleared level

	tick       uint64
	levelTicks int
	score      int
	coins      int
	powered    bool
	gameOver   bool
	won        bool
	paused     bool
	failure    string

	message     string
	messageLeft int

	cleared map[string]bool
	clears  []registry.LevelClear
}

// New creates a new platformer game. Levels are loaded on Reset.
func New() *Game {
	return &Game{cleared: make(map[string]bool)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset loads the configuration and starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc

	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.held = core.NewHeldInput(cfg.Input.HoldTicks)
	g.loader = Loader()
	g.startWatcher()

	g.world = nil
	g.level = levels.Level{}
	g.worldMap = nil
	g.hasMapPos = false
	g.next = ""
	g.exitIn = 0
	g.tick = 0
	g.levelTicks = 0
	g.score = 0
	g.coins = 0
	g.powered = cfg.Player.StartPowered
	g.gameOver = false
	g.won = false
	g.paused = false
	g.failure = ""
	g.message = ""
	g.messageLeft = 0

	g.start()
}

// start enters the selected level, or the world map when none is selected.
func (g *Game) start() {
	id := startLevel
	if g.startSet {
		id = g.startAt
	}
	if id != "" {
		lvl, err := g.loader.LoadByID(id)
		if err != nil {
			g.fail("Level "+id+" not found", err)
			return
		}
		if err := g.enter(lvl); err != nil {
			g.fail("Level "+lvl.ID+" is broken", err)
		}
		return
	}

	all, err := g.loader.LoadAll()
	if err != nil || len(all) == 0 {
		g.fail("No levels found", err)
		return
	}

	first := all[0]
	for _, lvl := range all {
		if lvl.ID == levels.WorldMapID || (lvl.Has(engine.SpecialWorld) && !first.Has(engine.SpecialWorld)) {
			first = lvl
		}
		if lvl.ID == levels.WorldMapID {
			break
		}
	}
	if first.Has(engine.SpecialWorld) {
		m := first
		g.worldMap = &m
	}
	if err := g.enter(first); err != nil {
		g.fail("Level "+first.ID+" is broken", err)
	}
}

// fail ends the run with a message that explains why nothing can be played.
func (g *Game) fail(msg string, err error) {
	logger.Error(msg, "error", err)
	g.failure = msg
	g.gameOver = true
}

// enter builds lvl and makes it the current world.
func (g *Game) enter(lvl levels.Level) error {
	w, err := g.build(lvl)
	if err != nil {
		return err
	}
	g.world, g.level = w, lvl
	g.levelTicks = 0
	g.exitIn = 0
	if w.IsWorldMap() && g.hasMapPos {
		pl := w.Player()
		pl.X, pl.Y = g.mapX, g.mapY
	}
	logger.Info("entered level", "level", lvl.ID, "name", lvl.Name, "file", lvl.FilePath)
	return nil
}

// build creates a world for lvl using the current config and difficulty.
func (g *Game) build(lvl levels.Level) (*engine.World, error) {
	p := g.cfg.Params()
	p.WalkerSpeed = g.difficulty.Speed(p.WalkerSpeed, g.score, 0)
	p.JumpGrace = g.difficulty.JumpGrace(p.JumpGrace, g.score, 0)

	opts := []engine.Option{engine.WithView(g.viewSize(p.TileSize))}
	if sounder != nil {
		opts = append(opts, engine.WithSounder(sounder))
	}
	w, err := engine.NewWorld(lvl.LevelDef, p, opts...)
	if err != nil {
		return nil, fmt.Errorf("platformer: building %s: %w", lvl.ID, err)
	}
	if pl := w.Player(); pl != nil && !w.IsWorldMap() && g.powered {
		pl.SetPowered(true)
	}
	g.subscribe(w)
	logger.Debug("built world", "level", lvl.ID, "walker_speed", p.WalkerSpeed, "jump_grace", p.JumpGrace)
	return w, nil
}

// viewSize converts the play area below the HUD into level pixels.
func (g *Game) viewSize(tileSize int) (int, int) {
	cols := max(g.runtime.ScreenW, 0)
	rows := max(g.runtime.ScreenH-hudHeight, 0)
	return cols * tileSize / tileCols, rows * tileSize
}

func (g *Game) subscribe(w *engine.World) {
	w.On(engine.EventCoinCollected, func(engine.Event) {
		g.coins++
		g.score += g.cfg.Scoring.Coin
	})
	w.On(engine.EventEnemyStomped, func(engine.Event) {
		g.score += g.cfg.Scoring.Stomp
	})
	w.On(engine.EventPowerupCollected, func(engine.Event) {
		g.powered = true
		g.score += g.cfg.Scoring.Powerup
	})
	w.On(engine.EventPlayerHurt, func(engine.Event) {
		g.powered = false
		g.say("Ouch!")
	})
	w.On(engine.EventPlayerDied, func(ev engine.Event) {
		g.gameOver = true
		logger.Info("player died", "level", ev.Level, "score", g.score)
	})
	w.On(engine.EventSignRead, func(ev engine.Event) {
		g.say(ev.Text)
	})
	w.On(engine.EventLevelComplete, func(ev engine.Event) {
		g.score += g.cfg.Scoring.Clear
		g.cleared[ev.Level] = true
		g.clears = append(g.clears, registry.LevelClear{LevelID: ev.Level, Ticks: g.levelTicks})
		g.exitIn = clearDelay
		g.say("Course clear!")
		logger.Info("level complete", "level", ev.Level, "ticks", g.levelTicks, "score", g.score)
	})
	w.On(engine.EventEnterLevel, func(ev engine.Event) {
		if ev.Level != "" && ev.Level != g.level.ID {
			g.next = ev.Level
		}
	})
}

// say shows msg in the HUD for a while.
func (g *Game) say(msg string) {
	g.message = msg
	g.messageLeft = messageTicks
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	g.pollWatcher()

	if g.gameOver || g.paused || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	for _, a := range heldActions {
		if in.Has(a) {
			g.held.Press(a, g.tick)
		}
	}
	held := g.held.Frame(g.tick)

	onMap := g.world.IsWorldMap()
	if in.Has(core.ActionBack) && !onMap && g.worldMap != nil && g.exitIn == 0 {
		g.say("Left " + g.level.Name)
		g.returnToMap()
		return core.StepResult{State: g.State()}
	}

	var input engine.Input
	if g.exitIn == 0 {
		input = engine.Input{
			Left:    held.Has(core.ActionLeft),
			Right:   held.Has(core.ActionRight),
			Up:      held.Has(core.ActionUp),
			Down:    held.Has(core.ActionDown),
			Jump:    held.Has(core.ActionJump) || (!onMap && held.Has(core.ActionUp)),
			Confirm: in.Has(core.ActionConfirm) || (onMap && in.Has(core.ActionJump)),
		}
	}
	g.world.Step(input)
	g.levelTicks++

	if g.messageLeft > 0 {
		g.messageLeft--
		if g.messageLeft == 0 {
			g.message = ""
		}
	}

	switch {
	case g.gameOver:
	case g.next != "":
		id := g.next
		g.next = ""
		g.enterByID(id)
	case g.exitIn > 0:
		g.exitIn--
		if g.exitIn == 0 {
			g.finishLevel()
		}
	}

	return core.StepResult{State: g.State()}
}

// enterByID leaves the map for the level with the given ID.
func (g *Game) enterByID(id string) {
	lvl, err := g.loader.LoadByID(id)
	if err != nil {
		logger.Warn("level not found", "level", id, "error", err)
		g.say("Level " + id + " is missing")
		return
	}
	g.saveMapPos()
	if err := g.enter(lvl); err != nil {
		logger.Warn("level is broken", "level", id, "error", err)
		g.say("Level " + id + " is broken")
	}
}

func (g *Game) saveMapPos() {
	if g.world == nil || !g.world.IsWorldMap() {
		return
	}
	if pl := g.world.Player(); pl != nil {
		g.mapX, g.mapY, g.hasMapPos = pl.X, pl.Y, true
	}
}

// finishLevel leaves a cleared level: back to the map, or the run is won.
func (g *Game) finishLevel() {
	if g.worldMap == nil {
		g.won = true
		g.gameOver = true
		return
	}
	g.returnToMap()
}

func (g *Game) returnToMap() {
	if err := g.enter(*g.worldMap); err != nil {
		g.fail("World map is broken", err)
	}
}

// startWatcher watches the levels directory when reloading is enabled.
func (g *Game) startWatcher() {
	if !watchLevels || levelsDir == "" || g.watcher != nil {
		return
	}
	w, err := levels.NewWatcher(levelsDir)
	if err != nil {
		logger.Warn("could not watch levels", "dir", levelsDir, "error", err)
		return
	}
	g.watcher = w
	logger.Info("watching levels", "dir", levelsDir)
}

// pollWatcher applies pending file changes without blocking.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadFile(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Warn("level watcher", "error", err)
		default:
			return
		}
	}
}

// reloadFile rebuilds the current level (or the stored map) from path.
func (g *Game) reloadFile(path string) {
	isCurrent := samePath(path, g.level.FilePath)
	isMap := g.worldMap != nil && samePath(path, g.worldMap.FilePath)
	if !isCurrent && !isMap {
		logger.Debug("ignoring level change", "file", path)
		return
	}

	lvl, err := g.loader.LoadFile(path)
	if err != nil {
		logger.Warn("reload failed", "file", path, "error", err)
		g.say("Reload failed: " + filepath.Base(path))
		return
	}
	if isMap {
		m := lvl
		g.worldMap = &m
	}
	if !isCurrent {
		return
	}

	g.saveMapPos()
	if err := g.enter(lvl); err != nil {
		logger.Warn("reload failed", "file", path, "error", err)
		g.say("Reload failed: " + filepath.Base(path))
		return
	}
	logger.Info("reloaded level", "level", lvl.ID, "file", path)
	g.say("Reloaded " + lvl.ID)
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Resize adapts the camera to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	if g.world != nil {
		g.world.SetView(g.viewSize(g.world.Params().TileSize))
	}
}

// SelectLevel makes the next Reset start at levelID. An empty ID starts
// on the world map.
func (g *Game) SelectLevel(levelID string) {
	g.startAt, g.startSet = levelID, true
}

// TakeClears returns the levels cleared since the last call.
func (g *Game) TakeClears() []registry.LevelClear {
	c := g.clears
	g.clears = nil
	return c
}

// SetCleared marks levels cleared in earlier runs on the world map.
func (g *Game) SetCleared(levelIDs []string) {
	for _, id := range levelIDs {
		g.cleared[id] = true
	}
}

// Close stops the level watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	g.watcher = nil
	return err
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Stage:    g.level.ID,
	}
}

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Progress  = (*Game)(nil)
	_ registry.Resizable = (*Game)(nil)
	_ registry.Selector  = (*Game)(nil)
	_ io.Closer          = (*Game)(nil)
)
