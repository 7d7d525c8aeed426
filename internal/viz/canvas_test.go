package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetDots(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, LayerPoint)
	c.Set(1, 3, LayerPoint)

	if got, want := c.Grid[0][0], rune(0x2800|0x1|0x80); got != want {
		t.Errorf("cell = %U, want %U", got, want)
	}
	if c.Layers[0][0] != LayerPoint {
		t.Errorf("layer = %d, want LayerPoint", c.Layers[0][0])
	}

	// Out of range is ignored.
	c.Set(-1, 0, LayerPoint)
	c.Set(8, 0, LayerPoint)
	c.Set(0, 8, LayerPoint)
	for _, row := range c.Grid[1:] {
		for _, r := range row {
			if r != blank {
				t.Fatalf("unexpected dot %U", r)
			}
		}
	}
}

func TestCanvasLayerPriority(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, LayerLine)
	c.Set(1, 0, LayerPoint)
	c.Set(0, 1, LayerLine)

	if c.Layers[0][0] != LayerPoint {
		t.Errorf("higher layer should win, got %d", c.Layers[0][0])
	}
}

func TestCanvasTextBlocksDots(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Text(0, 0, "ab", LayerText)
	c.Set(0, 0, LayerPoint)
	c.Set(2, 0, LayerCursor)

	if c.Grid[0][0] != 'a' || c.Grid[0][1] != 'b' {
		t.Errorf("text overwritten: %q", string(c.Grid[0]))
	}
	if c.Layers[0][1] != LayerText {
		t.Errorf("layer = %d, want LayerText", c.Layers[0][1])
	}
}

func TestCanvasTextClips(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Text(-1, 0, "wxyz", LayerMuted)
	if got := string(c.Grid[0]); got != "xyz" {
		t.Errorf("got %q, want xyz", got)
	}
	c.Text(0, 5, "nope", LayerText)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(2, 1)
	c.DrawLine(0, 0, 3, 0, LayerLine)

	for col := 0; col < 2; col++ {
		if got, want := c.Grid[0][col], rune(0x2800|0x1|0x8); got != want {
			t.Errorf("col %d = %U, want %U", col, got, want)
		}
	}
}

func TestCanvasUnsetAndClear(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, LayerPoint)
	c.Unset(0, 0)
	if c.Grid[0][0] != blank || c.Layers[0][0] != LayerNone {
		t.Errorf("unset left %U layer %d", c.Grid[0][0], c.Layers[0][0])
	}

	c.Text(0, 0, "x", LayerText)
	c.Clear()
	if c.Grid[0][0] != blank || c.Layers[0][0] != LayerNone {
		t.Error("clear should reset text cells")
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Text(0, 1, "hi", LayerText)
	c.Set(10, 0, LayerPoint)

	plain := c.String()
	if strings.Count(plain, "\n") != 3 {
		t.Errorf("String() should end every row with a newline: %q", plain)
	}
	out := c.Render(ThemeNeon)
	if !strings.Contains(out, "hi") {
		t.Error("rendered canvas lost its text")
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("Render() should join 3 rows with 2 newlines")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("GetTheme(ocean)")
	}
	if GetTheme("nope").Name != ThemeNeon.Name {
		t.Error("unknown theme should fall back to neon")
	}
	names := ThemeNames()
	last := names[len(names)-1]
	if NextTheme(last).Name != names[0] {
		t.Error("NextTheme should wrap around")
	}
	if NextTheme("neon").Name != "retro" {
		t.Errorf("NextTheme(neon) = %s", NextTheme("neon").Name)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	got := []rune(SparklineChart([]float64{0, 1, 2, 3, 4, 5}, 3))
	if len(got) != 3 {
		t.Fatalf("want last 3 values, got %q", string(got))
	}
	if got[0] != '▁' || got[2] != '█' {
		t.Errorf("got %q", string(got))
	}
}
