package viz

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/neonfield/internal/config"
	"github.com/san-kum/neonfield/internal/content"
	"github.com/san-kum/neonfield/internal/frame"
	"github.com/san-kum/neonfield/internal/pointer"
	"github.com/san-kum/neonfield/internal/scene"
)

const (
	listWidth       = 40
	listTop         = 1
	historyCapacity = 600
	graphPoints     = 60

	// DebugEnv enables logging to DebugLog when set.
	DebugEnv = "NEONFIELD_DEBUG"
	DebugLog = "neonfield-debug.log"
)

type TickMsg time.Time

// Options are the parts of the app the caller may supply.
type Options struct {
	Portfolio *content.Portfolio
	// Snapshot saves the current canvas and returns where it went.
	Snapshot func(c *Canvas, t Theme) (string, error)
}

type listRow struct {
	text    string
	image   string
	section string
	layer   Layer
}

type section struct {
	top, height int
}

// App is the Bubble Tea model: the particle field fills the terminal and the
// project list sits on top of it. Hovering a project shows its preview.
type App struct {
	cfg  *config.Config
	opts Options

	sched   *frame.Scheduler
	src     *pointer.Source
	scene   *scene.Scene
	surface *Surface
	canvas  *Canvas

	theme  Theme
	styles Styles
	keys   KeyMap
	help   help.Model

	reveal   *content.Reveal
	rows     []listRow
	sections map[string]section
	scroll   int
	hover    string

	width, height      int
	mouseCol, mouseRow int
	seed               int64
	paused             bool
	showGraph          bool
	edges              []float64
	status             string
}

func NewApp(cfg *config.Config, opts Options) (App, error) {
	if opts.Portfolio == nil {
		opts.Portfolio = content.Default()
	}
	a := App{
		cfg:      cfg,
		opts:     opts,
		src:      pointer.NewSource(),
		theme:    GetTheme(cfg.Theme),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		reveal:   content.NewReveal(content.DefaultRevealThreshold),
		mouseCol: -1,
		mouseRow: -1,
		seed:     cfg.Seed,
		edges:    make([]float64, 0, historyCapacity),
	}
	a.styles = NewStyles(a.theme)
	a.rows, a.sections = buildRows(opts.Portfolio)
	a.resize(80, 24)
	if err := a.build(); err != nil {
		return App{}, err
	}
	return a, nil
}

func buildRows(p *content.Portfolio) ([]listRow, map[string]section) {
	var rows []listRow
	sections := make(map[string]section)
	add := func(id, text, image string, l Layer) {
		rows = append(rows, listRow{text: truncate(text, listWidth-1), image: image, section: id, layer: l})
	}

	for _, c := range p.Categories {
		top := len(rows)
		add(c.Name, "▌ "+strings.ToUpper(c.Name), "", LayerHighlight)
		for _, pr := range c.Projects {
			add(c.Name, "  "+pr.Title, pr.Image, LayerText)
			add(c.Name, "    "+strings.Join(pr.Tech, " · "), pr.Image, LayerMuted)
		}
		add(c.Name, "", "", LayerText)
		sections[c.Name] = section{top: top, height: len(rows) - top}
	}

	top := len(rows)
	add("skills", "▌ SKILLS", "", LayerHighlight)
	for _, g := range p.Skills {
		add("skills", "  "+g.Category, "", LayerText)
		add("skills", "    "+strings.Join(g.Skills, ", "), "", LayerMuted)
	}
	sections["skills"] = section{top: top, height: len(rows) - top}
	return rows, sections
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// build sets up a fresh scene on a fresh scheduler. The pointer source
// survives rebuilds.
func (a *App) build() error {
	cfg := *a.cfg
	cfg.Seed = a.seed
	a.sched = frame.NewScheduler(cfg.FPS)
	a.surface = NewSurface()
	a.scene = scene.New(&cfg)
	if err := a.scene.Setup(a.sched, a.src, a.surface, a.surface); err != nil {
		if terr := a.scene.Teardown(); terr != nil {
			log.Printf("teardown after failed setup: %v", terr)
		}
		return err
	}
	a.scene.SetViewport(float64(a.width*CellWidth), float64(a.height*CellHeight))
	a.hover = ""
	a.edges = a.edges[:0]
	return nil
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.help.Width = w
	footer := 1 + lipgloss.Height(a.help.View(a.keys))
	a.canvas = NewCanvas(w, max(1, h-footer))
	if a.scene != nil {
		a.scene.SetViewport(float64(w*CellWidth), float64(h*CellHeight))
	}
}

// Close tears the scene down.
func (a App) Close() error {
	if a.scene == nil {
		return nil
	}
	return a.scene.Teardown()
}

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a App) Init() tea.Cmd {
	return tick(a.sched.FPS())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			a.scrollBy(1)
		}
		a.mouseCol, a.mouseRow = msg.X, msg.Y
		a.src.Publish(CellToPixel(msg.X, msg.Y))
		a.updateHover()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Pause):
			a.paused = !a.paused
		case key.Matches(msg, a.keys.Reset):
			a.reseed()
		case key.Matches(msg, a.keys.Theme):
			a.theme = NextTheme(a.theme.Name)
			a.styles = NewStyles(a.theme)
		case key.Matches(msg, a.keys.Up):
			a.scrollBy(-1)
		case key.Matches(msg, a.keys.Down):
			a.scrollBy(1)
		case key.Matches(msg, a.keys.Graph):
			a.showGraph = !a.showGraph
		case key.Matches(msg, a.keys.Snapshot):
			a.snapshot()
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.resize(a.width, a.height)
		}

	case TickMsg:
		if !a.paused {
			a.sched.Step()
			a.recordEdges()
		}
		return a, tick(a.sched.FPS())
	}
	return a, nil
}

func (a *App) recordEdges() {
	n := float64(len(a.scene.LastFrame().Edges))
	if len(a.edges) == historyCapacity {
		copy(a.edges, a.edges[1:])
		a.edges = a.edges[:len(a.edges)-1]
	}
	a.edges = append(a.edges, n)
}

func (a *App) reseed() {
	if err := a.scene.Teardown(); err != nil {
		log.Printf("teardown: %v", err)
	}
	if a.seed != 0 {
		a.seed++
	}
	if err := a.build(); err != nil {
		a.status = "reseed failed: " + err.Error()
		log.Printf("reseed: %v", err)
		return
	}
	a.status = ""
	a.updateHover()
}

func (a *App) scrollBy(d int) {
	a.scroll = max(0, min(a.scroll+d, len(a.rows)-1))
	a.updateHover()
}

// rowAt returns the list row under a terminal cell.
func (a *App) rowAt(col, row int) (listRow, bool) {
	if col < a.listCol() || row < listTop || row >= a.canvas.Height {
		return listRow{}, false
	}
	i := row - listTop + a.scroll
	if i < 0 || i >= len(a.rows) {
		return listRow{}, false
	}
	r := a.rows[i]
	return r, a.reveal.Revealed(r.section)
}

func (a *App) listCol() int { return max(0, a.canvas.Width-listWidth) }

func (a *App) updateHover() {
	image := ""
	if r, ok := a.rowAt(a.mouseCol, a.mouseRow); ok {
		image = r.image
	}
	if image == a.hover {
		return
	}
	a.hover = image
	if image == "" {
		a.scene.HidePreview()
		log.Printf("preview hidden")
		return
	}
	a.surface.Label = a.opts.Portfolio.PreviewLabel(image)
	if err := a.scene.ShowPreview(image); err != nil {
		log.Printf("show preview %q: %v", image, err)
		return
	}
	log.Printf("preview %q", image)
}

func (a *App) snapshot() {
	if a.opts.Snapshot == nil {
		a.status = "snapshots disabled"
		return
	}
	path, err := a.opts.Snapshot(a.canvas, a.theme)
	if err != nil {
		a.status = "snapshot failed: " + err.Error()
		log.Printf("snapshot: %v", err)
		return
	}
	a.status = "saved " + path
}

func (a App) View() string {
	a.canvas.Clear()
	a.surface.Draw(a.canvas, a.scene.Cursor())
	a.drawList()
	if a.showGraph {
		a.drawGraph()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.canvas.Render(a.theme),
		a.statusLine(),
		a.help.View(a.keys),
	)
}

func (a *App) drawList() {
	view := a.canvas.Height - listTop
	for id, s := range a.sections {
		a.reveal.Observe(id, s.top, s.height, a.scroll, view)
	}

	col := a.listCol()
	for i := a.scroll; i < len(a.rows) && i-a.scroll < view; i++ {
		r := a.rows[i]
		if !a.reveal.Revealed(r.section) || r.text == "" {
			continue
		}
		l := r.layer
		if r.image != "" && r.image == a.hover {
			l = LayerHighlight
		}
		a.canvas.Text(col, listTop+i-a.scroll, r.text, l)
	}
}

func (a *App) drawGraph() {
	if len(a.edges) < 2 {
		return
	}
	data := a.edges
	if len(data) > graphPoints {
		data = data[len(data)-graphPoints:]
	}
	chart := asciigraph.Plot(data, asciigraph.Height(5), asciigraph.Width(graphPoints), asciigraph.Caption("edges/frame"))
	for i, line := range strings.Split(chart, "\n") {
		a.canvas.Text(1, listTop+i, line, LayerMuted)
	}
}

func (a App) statusLine() string {
	state := a.styles.Status.Render("● live")
	if a.paused {
		state = a.styles.Label.Render("❚❚ paused")
	}

	particles := 0
	if f := a.scene.Field(); f != nil {
		particles = f.Len()
	}
	parts := []string{
		GradientText("neonfield", a.theme.Points, a.theme.Lines),
		state,
		a.styles.Label.Render("theme ") + a.styles.Value.Render(a.theme.Name),
		a.styles.Label.Render("particles ") + a.styles.Value.Render(fmt.Sprint(particles)),
		a.styles.Label.Render("edges ") + a.styles.Value.Render(fmt.Sprint(len(a.scene.LastFrame().Edges))),
		a.styles.Label.Render("frame ") + a.styles.Value.Render(fmt.Sprint(a.sched.Frames())),
		SparklineChart(a.edges, 16),
	}
	if a.hover != "" {
		parts = append(parts, a.styles.Selected.Render(a.surface.Label))
	}
	if a.status != "" {
		parts = append(parts, a.styles.Tech.Render(a.status))
	}
	return strings.Join(parts, "  ")
}

// Run starts the interactive field. Logging goes to DebugLog when DebugEnv
// is set and is discarded otherwise, since the terminal belongs to the TUI.
func Run(cfg *config.Config, opts Options) error {
	if os.Getenv(DebugEnv) != "" {
		f, err := tea.LogToFile(DebugLog, "neonfield")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	app, err := NewApp(cfg, opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if a, ok := final.(App); ok {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	} else if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}
