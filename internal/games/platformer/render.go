package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
)

// Render draws the HUD, the visible part of the level and any overlay.
func (g *Game) Render(dst *core.Screen) {
	if g.world != nil {
		view := g.world.View()
		d := &screenDrawer{
			dst:     dst,
			view:    view,
			ts:      float64(g.world.Params().TileSize),
			tick:    g.tick,
			cleared: g.cleared,
		}
		d.background(g.level.Background)
		g.world.Draw(d, view)
	}

	g.renderHUD(dst)

	switch {
	case g.failure != "":
		drawOverlay(dst, g.failure, "Check the levels directory")
	case g.won:
		drawOverlay(dst, "YOU WIN!", fmt.Sprintf("Score: %d  -  Press R to play again", g.score))
	case g.gameOver:
		drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d  -  Press R to restart", g.score))
	case g.paused:
		drawOverlay(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ')

	name := g.level.Name
	if name == "" {
		name = g.level.ID
	}
	dst.DrawColoredText(0, 0, name, core.ColorBrightWhite)

	x := len([]rune(name)) + 2
	stats := fmt.Sprintf("Score %06d  $%d", g.score, g.coins)
	dst.DrawColoredText(x, 0, stats, core.ColorBrightYellow)
	x += len([]rune(stats)) + 2
	if g.powered {
		dst.SetColored(x, 0, '♥', core.ColorBrightRed)
	}
	x += 3

	msg := g.message
	if msg == "" && g.world != nil && g.world.IsWorldMap() {
		msg = g.mapHint()
	}
	dst.DrawColoredText(x, 0, msg, core.ColorCyan)
}

// mapHint names the level marker the player stands on.
func (g *Game) mapHint() string {
	pl := g.world.Player()
	if pl == nil {
		return ""
	}
	t := g.world.TileUnder(pl)
	if t == nil || t.Kind != engine.TileLevel {
		return ""
	}
	id := t.Opt("level", "")
	if id == "" {
		return ""
	}
	if g.cleared[id] {
		return "Level " + id + " (cleared) - Enter"
	}
	return "Level " + id + " - Enter"
}

func drawOverlay(dst *core.Screen, title, detail string) {
	w := max(len([]rune(title)), len([]rune(detail))) + 4
	h := 4
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawTextCentered(r.Y+1, title)
	dst.DrawTextCentered(r.Y+2, detail)
}

// screenDrawer maps level pixels to terminal cells: each tile is tileCols
// columns wide and one row tall, below the HUD.
type screenDrawer struct {
	dst     *core.Screen
	view    core.Rect
	ts      float64
	tick    uint64
	cleared map[string]bool
}

func (d *screenDrawer) cell(px, py float64) (int, int) {
	col := int(math.Floor((px - float64(d.view.X)) * tileCols / d.ts))
	row := hudHeight + int(math.Floor((py-float64(d.view.Y))/d.ts))
	return col, row
}

func (d *screenDrawer) set(col, row int, r rune, c core.Color) {
	if row < hudHeight {
		return
	}
	d.dst.SetColored(col, row, r, c)
}

func (d *screenDrawer) pair(col, row int, s string, c core.Color) {
	i := 0
	for _, r := range s {
		d.set(col+i, row, r, c)
		i++
	}
}

// DrawTile draws a tile as two glyphs.
func (d *screenDrawer) DrawTile(t *engine.Tile, px, py float64) {
	glyph, color := tileGlyph(t, d.cleared)
	if glyph == "" {
		return
	}
	col, row := d.cell(px, py)
	d.pair(col, row, glyph, color)
}

func tileGlyph(t *engine.Tile, cleared map[string]bool) (string, core.Color) {
	switch t.Kind {
	case engine.TileGround:
		if t.Tex&engine.NeighborN == 0 {
			return "▓▓", core.ColorGreen
		}
		return "▒▒", core.ColorBrown
	case engine.TileQuestionBlock:
		if t.Tex%2 == 0 {
			return "??", core.ColorYellow
		}
		return "??", core.ColorBrightYellow
	case engine.TileUsedBlock:
		return "■■", core.ColorBrown
	case engine.TileDonut:
		return "◘◘", core.ColorOrange
	case engine.TilePlatform:
		return "▔▔", core.ColorWhite
	case engine.TileCoin:
		if t.Tex%2 == 0 {
			return "()", core.ColorBrightYellow
		}
		return "||", core.ColorYellow
	case engine.TilePipe:
		left := t.Tex&engine.NeighborW == 0
		if t.Tex&engine.NeighborN == 0 {
			if left {
				return "╔═", core.ColorGreen
			}
			return "═╗", core.ColorGreen
		}
		if left {
			return "║ ", core.ColorGreen
		}
		return " ║", core.ColorGreen
	case engine.TileMapGround:
		return "░░", core.ColorGreen
	case engine.TilePath:
		return "··", core.ColorYellow
	case engine.TileLevel:
		if cleared[t.Opt("level", "")] {
			return "◖◗", core.ColorBrightGreen
		}
		return "◖◗", core.ColorBrightRed
	case engine.TileHouse:
		return "⌂⌂", core.ColorWhite
	case engine.TileMapPipe:
		return "╓╖", core.ColorGreen
	case engine.TileFence:
		return "╫╫", core.ColorBrown
	case engine.TileWater:
		if t.Tex%2 == 0 {
			return "≈≈", core.ColorBlue
		}
		return "~~", core.ColorBlue
	case engine.TileFlower:
		return "**", core.ColorMagenta
	}
	return "", core.ColorDefault
}

// DrawEntity fills every cell whose centre lies inside the entity box.
// Boxes smaller than a cell still get the cell at their top-left corner.
func (d *screenDrawer) DrawEntity(e *engine.Entity) {
	if e.Kind == engine.EntityPlayer && e.Invulnerable() && (d.tick/4)%2 == 1 {
		return
	}

	cw := d.ts / tileCols
	left, top := float64(e.Left()), float64(e.Top())
	right, bottom := left+float64(e.W)+1, top+float64(e.H)+1

	c0, r0 := d.cell(left, top)
	c1, r1 := d.cell(right-1, bottom-1)
	var cols, rows []int
	for col := c0; col <= c1; col++ {
		cx := float64(d.view.X) + (float64(col)+0.5)*cw
		if cx >= left && cx < right {
			cols = append(cols, col)
		}
	}
	for row := r0; row <= r1; row++ {
		cy := float64(d.view.Y) + (float64(row-hudHeight)+0.5)*d.ts
		if cy >= top && cy < bottom {
			rows = append(rows, row)
		}
	}
	if len(cols) == 0 {
		cols = []int{c0}
	}
	if len(rows) == 0 {
		rows = []int{r0}
	}

	for j, row := range rows {
		for i, col := range cols {
			d.entityCell(e, col, row, i, j, len(rows))
		}
	}
}

// entityCell draws the part of an entity sprite at column i, row j.
func (d *screenDrawer) entityCell(e *engine.Entity, col, row, i, j, rows int) {
	switch e.Kind {
	case engine.EntityPlayer:
		color := core.ColorRed
		if e.Powered() {
			color = core.ColorBrightRed
		}
		switch {
		case rows == 1:
			d.set(col, row, '@', color)
		case j == 0:
			d.set(col, row, 'o', color)
		default:
			d.set(col, row, '█', color)
		}
	case engine.EntityWalker:
		if i%2 == 0 {
			d.set(col, row, '◢', core.ColorBrown)
		} else {
			d.set(col, row, '◣', core.ColorBrown)
		}
	case engine.EntityPowerup:
		d.set(col, row, '♥', core.ColorBrightRed)
	case engine.EntityCollectible:
		d.set(col, row, '$', core.ColorBrightYellow)
	case engine.EntitySign:
		d.set(col, row, '▤', core.ColorBrown)
	case engine.EntityFlag:
		switch {
		case i == 0:
			d.set(col, row, '║', core.ColorGray)
		case j == 0:
			d.set(col, row, '▶', core.ColorBrightGreen)
		}
	}
}

// background paints parallax scenery behind the level.
func (d *screenDrawer) background(kind string) {
	w, h := d.dst.Width(), d.dst.Height()
	switch kind {
	case "clouds":
		// clouds scroll at a quarter of the camera speed
		shift := int(math.Floor(float64(d.view.X) * tileCols / d.ts / 4))
		for row := hudHeight + 1; row < h/2; row += 4 {
			for col := 0; col < w; col++ {
				x := col + shift + row*7
				if ((x%23)+23)%23 < 5 {
					d.set(col, row, '░', core.ColorWhite)
				}
			}
		}
	case "hills":
		shift := float64(d.view.X) * tileCols / d.ts / 2
		for col := 0; col < w; col++ {
			height := 2 + int(math.Round(2*math.Sin((float64(col)+shift)/9)))
			for row := h - height; row < h; row++ {
				d.set(col, row, '▒', core.ColorGreen)
			}
		}
	}
}
