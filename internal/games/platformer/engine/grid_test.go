package engine

import (
	"errors"
	"testing"
)

func buildWorld(t *testing.T, p Params, rows ...string) *World {
	t.Helper()
	w, err := NewWorld(LevelDef{ID: "test", Rows: rows}, p)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func TestTileAtFallbackIsIdempotent(t *testing.T) {
	g := NewGrid(4, 4, 16)
	for _, c := range [][2]int{{-5, 99}, {2, 2}, {1000, -1000}} {
		a := g.TileAt(c[0], c[1], 0)
		a.Solid = true
		b := g.TileAt(c[0], c[1], 0)
		if b.Kind != TileAir || b.Solid || b.SolidTop {
			t.Errorf("TileAt(%d,%d) = %+v, want non-solid air", c[0], c[1], b)
		}
		if b.Exists {
			t.Errorf("fallback tile should not exist")
		}
		if b.X != c[0] || b.Y != c[1] {
			t.Errorf("fallback coordinates = %d,%d", b.X, b.Y)
		}
	}
	if g.Len() != 0 {
		t.Errorf("lookups must not store tiles, Len() = %d", g.Len())
	}
}

func TestTileAtPointFloors(t *testing.T) {
	g := NewGrid(4, 4, 16)
	tile := NewTile(TileGround)
	tile.X, tile.Y = 1, 2
	g.put(tile)

	if got := g.TileAtPoint(1.9, 2.01, 0); got != tile {
		t.Errorf("TileAtPoint(1.9, 2.01) = %v", got.Kind)
	}
	if got := g.TileAtPoint(-0.5, 0, 0); got.X != -1 {
		t.Errorf("negative coordinates should floor, got x=%d", got.X)
	}
}

func TestTilesAtAndOrder(t *testing.T) {
	w, err := NewWorld(LevelDef{
		ID:     "layers",
		Rows:   []string{"=0=", "=@="},
		Layers: [][]string{{"-?-", "---"}},
	}, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	g := w.Grid()

	at := g.TilesAt(1, 0)
	if len(at) != 2 || at[0].Kind != TileCoin || at[1].Kind != TileQuestionBlock {
		t.Fatalf("TilesAt(1,0) = %v", at)
	}
	if at[1].Layer != 1 {
		t.Errorf("overlay layer = %d", at[1].Layer)
	}

	prev := [3]int{-1, -1, -1}
	for _, tile := range g.Tiles() {
		cur := [3]int{tile.Y, tile.X, tile.Layer}
		if cur[0] < prev[0] || (cur[0] == prev[0] && (cur[1] < prev[1] || (cur[1] == prev[1] && cur[2] <= prev[2]))) {
			t.Fatalf("tiles out of order: %v after %v", cur, prev)
		}
		prev = cur
	}
}

func TestAbsolutePosition(t *testing.T) {
	g := NewGrid(10, 10, 16)
	if x, y := g.AbsolutePosition(3, -2); x != 48 || y != -32 {
		t.Errorf("AbsolutePosition(3,-2) = %d,%d", x, y)
	}
}

func TestNewWorldErrors(t *testing.T) {
	tests := []struct {
		name string
		def  LevelDef
		want error
	}{
		{"empty", LevelDef{ID: "e"}, ErrEmptyLevel},
		{"unknown symbol", LevelDef{ID: "u", Rows: []string{"=@=", "=Z="}}, ErrUnknownTile},
		{"unknown overlay symbol", LevelDef{ID: "o", Rows: []string{"=@="}, Layers: [][]string{{"-%-"}}}, ErrUnknownTile},
		{"no player", LevelDef{ID: "n", Rows: []string{"---", "==="}}, ErrNoPlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(tt.def, DefaultParams())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSpawnersBecomeEntities(t *testing.T) {
	w, err := NewWorld(LevelDef{
		ID:      "spawn",
		Rows:    []string{"-S-G-F-@-", "========="},
		Options: []TileOptions{{X: 1, Y: 0, Values: map[string]string{"text": "hello"}}},
	}, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	kinds := map[EntityKind]*Entity{}
	for _, e := range w.Entities() {
		kinds[e.Kind] = e
	}
	for _, k := range []EntityKind{EntityPlayer, EntitySign, EntityWalker, EntityFlag} {
		if kinds[k] == nil {
			t.Errorf("missing %v entity", k)
		}
	}
	if s := kinds[EntitySign]; s != nil && s.Text != "hello" {
		t.Errorf("sign text = %q", s.Text)
	}

	for x := 0; x < 9; x++ {
		if k := w.TileAt(x, 0, 0).Kind; k != TileAir {
			t.Errorf("spawner at %d left %v behind", x, k)
		}
	}

	p := w.Player()
	if p.X != 7*16 || p.Bottom() != 15 {
		t.Errorf("player placed at x=%v bottom=%d", p.X, p.Bottom())
	}
	if !w.grounded(p) {
		t.Error("spawned player should stand on the floor")
	}
}

func TestGroundAutotile(t *testing.T) {
	w := buildWorld(t, DefaultParams(),
		"-----",
		"-===-",
		"-=@=-",
		"-===-",
	)
	// the spawner became air, so the ring tiles see a hole in the middle
	top := w.TileAt(2, 1, 0)
	if top.Tex&NeighborS != 0 {
		t.Errorf("tile above the hole should not see ground below, mask %08b", top.Tex)
	}
	if top.Tex&(NeighborE|NeighborW) != NeighborE|NeighborW {
		t.Errorf("tile should see both side neighbours, mask %08b", top.Tex)
	}

	w.ReplaceTile(2, 2, NewTile(TileGround), 0)
	if top.Tex&NeighborS == 0 {
		t.Errorf("neighbour should recompute after replacement, mask %08b", top.Tex)
	}
}
