package cursor

import "testing"

func TestCursorMoveSnapsDot(t *testing.T) {
	c := New(DefaultConfig(60))
	c.Move(100, 40)

	if c.X != 100 || c.Y != 40 {
		t.Errorf("dot at (%f,%f), want (100,40)", c.X, c.Y)
	}
	if c.Trailer.X != 80 || c.Trailer.Y != 20 {
		t.Errorf("first move should place trailer at offset, got (%f,%f)", c.Trailer.X, c.Trailer.Y)
	}
}

func TestTrailerSettlesOnTarget(t *testing.T) {
	c := New(DefaultConfig(60))
	c.Move(0, 0)
	c.Move(200, 100)

	if c.Trailer.Settled(0.5) {
		t.Fatal("trailer should lag a fresh move")
	}

	for i := 0; i < 600; i++ {
		c.Tick()
	}

	if !c.Trailer.Settled(0.5) {
		t.Errorf("trailer did not settle, at (%f,%f)", c.Trailer.X, c.Trailer.Y)
	}
}

func TestCursorHover(t *testing.T) {
	c := New(DefaultConfig(60))
	c.SetHover(true)
	if !c.Hovering() {
		t.Error("expected hovering")
	}
	c.SetHover(false)
	if c.Hovering() {
		t.Error("expected not hovering")
	}
}

func TestTrailerZeroFPSFallsBack(t *testing.T) {
	c := New(DefaultConfig(0))
	c.Move(0, 0)
	c.Move(50, 50)

	for i := 0; i < 600; i++ {
		c.Tick()
	}
	if !c.Trailer.Settled(0.5) {
		t.Errorf("trailer did not settle, at (%f,%f)", c.Trailer.X, c.Trailer.Y)
	}
}
