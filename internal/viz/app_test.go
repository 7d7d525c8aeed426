package viz

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/neonfield/internal/config"
)

func newTestApp(t *testing.T, opts Options) App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	a, err := NewApp(cfg, opts)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	_ = a.View()
	return a
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

func press(t *testing.T, a App, r rune) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return m.(App), cmd
}

func mouse(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func TestAppLayout(t *testing.T) {
	a := newTestApp(t, Options{})
	if a.canvas.Width != 120 || a.canvas.Height != 38 {
		t.Errorf("canvas %dx%d, want 120x38", a.canvas.Width, a.canvas.Height)
	}
	if a.listCol() != 80 {
		t.Errorf("list column = %d, want 80", a.listCol())
	}

	short := a.canvas.Height
	a, _ = press(t, a, '?')
	if a.canvas.Height >= short {
		t.Errorf("full help should shrink the canvas, still %d rows", a.canvas.Height)
	}
}

func TestAppTickStepsScene(t *testing.T) {
	a := newTestApp(t, Options{})
	for i := 0; i < 3; i++ {
		a = update(t, a, TickMsg{})
	}
	if a.sched.Frames() != 3 {
		t.Errorf("frames = %d, want 3", a.sched.Frames())
	}
	if len(a.edges) != 3 {
		t.Errorf("edge history = %d, want 3", len(a.edges))
	}
	if len(a.surface.points) != 3*a.scene.Field().Len() {
		t.Errorf("surface got %d coords", len(a.surface.points))
	}
}

func TestAppPause(t *testing.T) {
	a := newTestApp(t, Options{})
	a, _ = press(t, a, ' ')
	if !a.paused {
		t.Fatal("space should pause")
	}
	a = update(t, a, TickMsg{})
	if a.sched.Frames() != 0 {
		t.Error("paused app should not step the scheduler")
	}
}

func TestAppHoverShowsPreview(t *testing.T) {
	a := newTestApp(t, Options{})

	// row 0 of the list is the first category header, row 1 its first project
	a = update(t, a, mouse(85, listTop+1))
	if a.hover != "RAGBOT.png" {
		t.Fatalf("hover = %q, want RAGBOT.png", a.hover)
	}
	if !a.scene.Preview().Active() || !a.scene.Cursor().Hovering() {
		t.Error("hovering a project should activate the preview and bloom the cursor")
	}
	if a.surface.Label != "RAG Based Medical Assistant Chatbot" {
		t.Errorf("label = %q", a.surface.Label)
	}

	a = update(t, a, TickMsg{})
	if !a.surface.Visible() {
		t.Fatal("preview should be visible after a frame")
	}
	// pointer (684, 40): enters at +(0,60), eases 10% toward +(30,70)
	tr := a.surface.Transform()
	if math.Abs(tr.X-687) > 1e-9 || math.Abs(tr.Y-101) > 1e-9 {
		t.Errorf("preview at (%f,%f), want (687,101)", tr.X, tr.Y)
	}

	a = update(t, a, mouse(5, 5))
	if a.hover != "" || a.scene.Preview().Active() || a.surface.Visible() {
		t.Error("leaving the list should hide the preview")
	}
}

func TestAppHoverIgnoresHeaders(t *testing.T) {
	a := newTestApp(t, Options{})
	a = update(t, a, mouse(85, listTop))
	if a.hover != "" {
		t.Errorf("header row should not preview, got %q", a.hover)
	}
}

func TestAppScroll(t *testing.T) {
	a := newTestApp(t, Options{})
	a, _ = press(t, a, 'j')
	if a.scroll != 1 {
		t.Errorf("scroll = %d, want 1", a.scroll)
	}
	a, _ = press(t, a, 'k')
	a, _ = press(t, a, 'k')
	if a.scroll != 0 {
		t.Errorf("scroll = %d, want 0", a.scroll)
	}
}

func TestAppThemeAndGraph(t *testing.T) {
	a := newTestApp(t, Options{})
	a, _ = press(t, a, 't')
	if a.theme.Name != "retro" {
		t.Errorf("theme = %s, want retro", a.theme.Name)
	}

	a, _ = press(t, a, 'g')
	for i := 0; i < 5; i++ {
		a = update(t, a, TickMsg{})
	}
	if !a.showGraph || a.View() == "" {
		t.Error("graph view should render")
	}
}

func TestAppReseed(t *testing.T) {
	a := newTestApp(t, Options{})
	old := a.scene
	a, _ = press(t, a, 'r')

	if !old.TornDown() {
		t.Error("reseed should tear the old scene down")
	}
	if a.scene == old || a.seed != 2 {
		t.Errorf("reseed should build a new scene with the next seed, seed = %d", a.seed)
	}
	if a.src.Subscribers() != 2 {
		t.Errorf("subscribers = %d, want 2", a.src.Subscribers())
	}
}

func TestAppSnapshot(t *testing.T) {
	a := newTestApp(t, Options{})
	a, _ = press(t, a, 's')
	if a.status != "snapshots disabled" {
		t.Errorf("status = %q", a.status)
	}

	calls := 0
	a = newTestApp(t, Options{Snapshot: func(c *Canvas, th Theme) (string, error) {
		calls++
		return "snap.svg", nil
	}})
	a, _ = press(t, a, 's')
	if calls != 1 || a.status != "saved snap.svg" {
		t.Errorf("calls = %d, status = %q", calls, a.status)
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t, Options{})
	_, cmd := press(t, a, 'q')
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestAppClose(t *testing.T) {
	a := newTestApp(t, Options{})
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if !a.scene.TornDown() || !a.surface.Closed() {
		t.Error("Close should tear down the scene and close the surface")
	}
}
