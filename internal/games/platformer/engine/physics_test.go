package engine

import (
	"testing"
)

// corridor is a one-tile-high tunnel with a wall at column 8.
var corridor = []string{
	"==========",
	"--------=-",
	"==========",
	"@---------",
	"==========",
}

func testBox(w *World, x, y float64) *Entity {
	e := newEntity(EntityWalker, 15, 15)
	e.X, e.Y = x, y
	return e
}

func TestStopOnContact(t *testing.T) {
	w := buildWorld(t, DefaultParams(), corridor...)
	wallLeft := 8 * 16

	e := testBox(w, float64(wallLeft-1-15-3), 16)
	e.XV = 5
	if !w.sweepX(e) {
		t.Fatal("sweep should report the wall")
	}
	if e.Right()+1 != wallLeft {
		t.Errorf("right edge = %d, want touching wall at %d", e.Right(), wallLeft)
	}
	if e.XV != 0 {
		t.Errorf("xv = %v, want 0", e.XV)
	}
	if e.Y != 16 {
		t.Errorf("y changed to %v", e.Y)
	}
}

func TestStopOnContactMovingLeft(t *testing.T) {
	w := buildWorld(t, DefaultParams(), corridor...)
	wallRight := 9*16 - 1

	e := testBox(w, float64(wallRight+1+2), 16)
	e.XV = -5
	w.sweepX(e)
	if e.Left()-1 != wallRight {
		t.Errorf("left edge = %d, want touching wall at %d", e.Left(), wallRight)
	}
}

func TestAxisSeparation(t *testing.T) {
	w := buildWorld(t, DefaultParams(),
		"----------",
		"----------",
		"----------",
		"----------",
		"@---------",
		"==========",
	)

	h := testBox(w, 16, 16)
	h.XV = 2.6
	w.sweepX(h)
	w.sweepY(h)
	if h.Y != 16 || h.X != 19 {
		t.Errorf("horizontal move: got (%v,%v), want (19,16)", h.X, h.Y)
	}

	v := testBox(w, 32, 0)
	v.YV = 3.9
	w.sweepX(v)
	w.sweepY(v)
	if v.X != 32 || v.Y != 3 {
		t.Errorf("vertical move: got (%v,%v), want (32,3)", v.X, v.Y)
	}
}

func TestOneWayPlatform(t *testing.T) {
	rows := []string{
		"-------",
		"-------",
		"---_---",
		"-------",
		"-------",
		"-@-----",
		"=======",
	}

	t.Run("up passes through", func(t *testing.T) {
		w := buildWorld(t, DefaultParams(), rows...)
		e := testBox(w, 48, 48)
		e.YV = -20
		if w.sweepY(e) {
			t.Fatal("rising entity should not be stopped by a platform")
		}
		if e.Y != 28 || e.YV != -20 {
			t.Errorf("got y=%v yv=%v, want y=28 yv=-20", e.Y, e.YV)
		}
	})

	t.Run("down lands on top", func(t *testing.T) {
		w := buildWorld(t, DefaultParams(), rows...)
		e := testBox(w, 48, 11)
		e.YV = 10
		if !w.sweepY(e) {
			t.Fatal("falling entity should land")
		}
		if e.Bottom() != 31 || e.YV != 0 {
			t.Errorf("got bottom=%d yv=%v, want bottom=31 yv=0", e.Bottom(), e.YV)
		}
		if !w.grounded(e) {
			t.Error("entity should be grounded on the platform")
		}
	})

	t.Run("inside platform does not hold", func(t *testing.T) {
		w := buildWorld(t, DefaultParams(), rows...)
		e := testBox(w, 48, 20)
		if w.grounded(e) {
			t.Error("an entity overlapping a platform is not standing on it")
		}
	})
}

func TestSolidBlocksFromBelow(t *testing.T) {
	w := buildWorld(t, DefaultParams(),
		"-------",
		"---=---",
		"-------",
		"-------",
		"-@-----",
		"=======",
	)
	e := testBox(w, 48, 40)
	e.YV = -12
	if !w.sweepY(e) {
		t.Fatal("rising entity should hit the block")
	}
	if e.Top() != 32 || e.YV != 0 {
		t.Errorf("got top=%d yv=%v, want top=32 yv=0", e.Top(), e.YV)
	}
}

func TestLandingDropsFraction(t *testing.T) {
	w := buildWorld(t, DefaultParams(),
		"-------",
		"-------",
		"-------",
		"-------",
		"-------",
		"-@-----",
		"=======",
	)
	for _, y := range []float64{60.5, 60.25, 61.9} {
		e := testBox(w, 48, y)
		e.YV = 30
		if !w.sweepY(e) {
			t.Fatalf("y=%v: falling entity should land", y)
		}
		if e.Y != 80 || e.YV != 0 {
			t.Errorf("y=%v: landed at y=%v yv=%v, want y=80 yv=0", y, e.Y, e.YV)
		}
		if e.Bottom() != 95 || !w.grounded(e) || w.collides(e) {
			t.Errorf("y=%v: bottom=%d grounded=%v collides=%v", y, e.Bottom(), w.grounded(e), w.collides(e))
		}
	}
}

func TestGroundedUsesBothFeet(t *testing.T) {
	w := buildWorld(t, DefaultParams(),
		"------",
		"--@---",
		"--=---",
	)
	p := w.Player()
	for _, tt := range []struct {
		x    float64
		want bool
	}{
		{32, true},
		{20, true},  // right foot on the block
		{44, true},  // left foot on the block
		{16, false}, // entirely left of it
		{48, false}, // entirely right of it
	} {
		p.X = tt.x
		if got := w.grounded(p); got != tt.want {
			t.Errorf("x=%v grounded = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestBoundaryDeath(t *testing.T) {
	p := DefaultParams()

	w := buildWorld(t, p, "-@-", "---")
	var died int
	w.On(EventPlayerDied, func(Event) { died++ })

	pl := w.Player()
	pl.Y = float64(w.Grid().PixelHeight()) + 1
	w.Step(Input{})

	if !pl.Dead || died != 1 {
		t.Fatalf("dead=%v died events=%d", pl.Dead, died)
	}
	for _, e := range w.Entities() {
		if e == pl {
			t.Fatal("dead player still in the entity collection")
		}
	}

	m, err := NewWorld(LevelDef{ID: "map", Rows: []string{"-@-", "---"}, Special: []string{SpecialWorld}}, p)
	if err != nil {
		t.Fatal(err)
	}
	mp := m.Player()
	mp.Y = float64(m.Grid().PixelHeight()) + 10
	m.Step(Input{})
	if mp.Dead {
		t.Error("world maps never kill at the boundary")
	}
}

func TestDeathZone(t *testing.T) {
	w := buildWorld(t, DefaultParams(),
		"-@#-",
		"====",
	)
	died := false
	w.On(EventPlayerDied, func(Event) { died = true })
	for i := 0; i < 60 && !died; i++ {
		w.Step(Input{Right: true})
	}
	if !died {
		t.Fatal("walking into a death zone should kill the player")
	}
}
