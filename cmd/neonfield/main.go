package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/neonfield/internal/automation"
	"github.com/san-kum/neonfield/internal/config"
	"github.com/san-kum/neonfield/internal/content"
	"github.com/san-kum/neonfield/internal/export"
	"github.com/san-kum/neonfield/internal/frame"
	"github.com/san-kum/neonfield/internal/metrics"
	"github.com/san-kum/neonfield/internal/pointer"
	"github.com/san-kum/neonfield/internal/scene"
	"github.com/san-kum/neonfield/internal/storage"
	"github.com/san-kum/neonfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	contentFile string
	theme       string
	seed        int64
	fps         int
	count       int
	speed       float64
	distance    float64
	// Headless runs
	frames     int
	scriptName string
	image      string
	width      float64
	height     float64
	period     int
	// Output
	outFile string
	scale   float64
	runs    int
	// Scenarios and sweeps
	scenarioFrames int
	sweepParam     string
	sweepMin       float64
	sweepMax       float64
	sweepSteps     int
)

// main registers the commands and flags. With no subcommand the interactive
// field starts.
func main() {
	rootCmd := &cobra.Command{
		Use:   "neonfield",
		Short: "particle field with a pointer-following preview",
		RunE:  runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".neonfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&contentFile, "content", "", "portfolio yaml (defaults to the built-in one)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.IntVar(&count, "count", 150, "particle count")
	pf.Float64Var(&speed, "speed", 0.05, "max initial speed per axis")
	pf.Float64Var(&distance, "distance", 15, "connect distance")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless scripted session and save it",
		RunE:  runHeadless,
	}
	addScriptFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the preview path of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a scripted session to an SVG frame",
		RunE:  snapshot,
	}
	addScriptFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "svg units per braille dot")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run seeds in parallel and report frame cost",
		RunE:  bench,
	}
	addScriptFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml pointer scenario and save it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&scenarioFrames, "frames", 0, "frames to run (default: one pass)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one tuning parameter and compare metrics",
		RunE:  runSweep,
	}
	addScriptFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "max_tilt", fmt.Sprintf("parameter to sweep %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 45, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				c := config.GetPreset(p)
				fmt.Printf("  %-8s count=%d speed=%.3f distance=%.1f\n", p, c.Field.Count, c.Field.Speed, c.Field.ConnectDistance)
			}
			return nil
		},
	}

	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "print the portfolio",
		RunE:  printProjects,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, snapshotCmd, benchCmd, scenarioCmd, sweepCmd, presetsCmd, projectsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to run")
	cmd.Flags().StringVar(&scriptName, "script", "orbit", "pointer script: orbit, sweep, teleport")
	cmd.Flags().StringVar(&image, "image", "", "project image to preview (default: first project)")
	cmd.Flags().Float64Var(&width, "width", 1280, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 720, "viewport height in pixels")
	cmd.Flags().IntVar(&period, "period", 240, "script period in frames")
}

// loadConfig resolves preset, then config file, then any flag the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Config file overrides preset
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
		cfg.Cursor.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("count") {
		cfg.Field.Count = count
	}
	if flags.Changed("speed") {
		cfg.Field.Speed = speed
	}
	if flags.Changed("distance") {
		cfg.Field.ConnectDistance = distance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadPortfolio() (*content.Portfolio, error) {
	if contentFile == "" {
		return content.Default(), nil
	}
	return content.Load(contentFile)
}

func resolveScript(p *content.Portfolio) (scene.Script, error) {
	img := image
	if img == "" {
		if projects := p.Projects(); len(projects) > 0 {
			img = projects[0].Image
		}
	}
	switch scriptName {
	case "orbit":
		return scene.Orbit(width, height, period, img), nil
	case "sweep":
		return scene.Sweep(width, height, period, img), nil
	case "teleport":
		return scene.Teleport(width, height, img), nil
	default:
		return nil, fmt.Errorf("unknown script: %s (available: orbit, sweep, teleport)", scriptName)
	}
}

func writeOutput(data string) error {
	if outFile == "" {
		_, err := fmt.Println(data)
		return err
	}
	if err := os.WriteFile(outFile, []byte(data), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	return viz.Run(cfg, viz.Options{
		Portfolio: p,
		Snapshot: func(c *viz.Canvas, t viz.Theme) (string, error) {
			path := fmt.Sprintf("neonfield_%d.svg", time.Now().Unix())
			return path, os.WriteFile(path, []byte(export.CanvasToSVG(c, t, 4)), 0644)
		},
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	script, err := resolveScript(p)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %d frames...\n", scriptName, frames)
	start := time.Now()

	result, err := scene.Run(context.Background(), cfg, frames, width, height, script)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(scriptName, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scn, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	name := scn.Name
	if name == "" {
		name = "scenario"
	}
	fmt.Printf("running scenario %s (%d waypoints)...\n", name, len(scn.Waypoints))
	start := time.Now()

	result, err := automation.RunScenario(context.Background(), scn, cfg, scenarioFrames)
	if err != nil {
		return err
	}

	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	script, err := resolveScript(p)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Frames:   frames,
		Width:    width,
		Height:   height,
		Script:   script,
	}

	fmt.Printf("sweeping %s over [%g, %g] in %d steps...\n", sweepParam, sweepMin, sweepMax, sweepSteps)
	results, err := automation.RunSweep(context.Background(), sweep, cfg)
	if err != nil {
		return err
	}

	ms := metrics.Defaults()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(sweepParam)}
	for _, m := range ms {
		header = append(header, strings.ToUpper(m.Name()))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range results {
		row := []string{fmt.Sprintf("%.4g", r.ParamValue)}
		for _, m := range ms {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[m.Name()]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func printMetrics(m map[string]float64) {
	for _, metric := range metrics.Defaults() {
		if v, ok := m[metric.Name()]; ok {
			fmt.Printf("  %s: %.6f\n", metric.Name(), v)
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tTIME\tFRAMES\tPARTICLES\tSEED\tEDGES/FRAME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f\n",
			run.ID,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Particles,
			run.Seed,
			run.Metrics["edge_density"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("script: %s\n", meta.Script)
	fmt.Printf("frames: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(metrics.Sample) float64
	}{
		{"edges per frame", func(s metrics.Sample) float64 { return float64(s.Edges) }},
		{"group rotation y (rad)", func(s metrics.Sample) float64 { return s.SwayY }},
		{"preview lag (px)", func(s metrics.Sample) float64 { return s.Lag }},
		{"preview tilt x (deg, clamped)", func(s metrics.Sample) float64 { return s.RotX }},
		{"preview tilt y (deg, clamped)", func(s metrics.Sample) float64 { return s.RotY }},
	}

	for _, ser := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = ser.value(s)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ser.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(samples, 800, 450, string(viz.ThemeNeon.Points))
	if svg == "" {
		return fmt.Errorf("run %s never showed the preview", args[0])
	}
	return writeOutput(svg)
}

// snapshot renders a scripted session through the terminal surface and
// writes the final frame.
func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	script, err := resolveScript(p)
	if err != nil {
		return err
	}

	sched := frame.NewScheduler(cfg.FPS)
	src := pointer.NewSource()
	surface := viz.NewSurface()
	s := scene.New(cfg)
	defer s.Teardown()

	if err := s.Setup(sched, src, surface, surface); err != nil {
		return err
	}
	s.SetViewport(width, height)

	for i := 0; i < frames; i++ {
		st := script(i)
		src.Publish(st.X, st.Y)
		switch {
		case st.Image == "" && s.Image() != "":
			s.HidePreview()
		case st.Image != "" && st.Image != s.Image():
			surface.Label = p.PreviewLabel(st.Image)
			if err := s.ShowPreview(st.Image); err != nil {
				return err
			}
		}
		sched.Step()
	}

	cols := int(width) / viz.CellWidth
	rows := int(height) / viz.CellHeight
	canvas := viz.NewCanvas(cols, rows)
	surface.Draw(canvas, s.Cursor())
	return writeOutput(export.CanvasToSVG(canvas, viz.GetTheme(cfg.Theme), scale))
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	script, err := resolveScript(p)
	if err != nil {
		return err
	}

	start := cfg.Seed
	if start == 0 {
		start = time.Now().UnixNano()
	}

	fmt.Printf("benchmarking %d seeds x %d frames, %d particles...\n", runs, frames, cfg.Field.Count)
	t0 := time.Now()

	results, err := scene.RunEnsemble(context.Background(), cfg, runs, start, frames, width, height, script)
	if err != nil {
		return err
	}

	elapsed := time.Since(t0)
	total := 0
	mean := make(map[string]float64)
	for _, r := range results {
		total += r.Frames
		for k, v := range r.Metrics {
			mean[k] += v / float64(len(results))
		}
	}

	fmt.Printf("wall time: %v\n", elapsed)
	fmt.Printf("frames: %d\n", total)
	if total > 0 {
		fmt.Printf("per frame: %v\n", elapsed/time.Duration(total))
		fmt.Printf("frames/sec: %.0f\n", float64(total)/elapsed.Seconds())
	}
	fmt.Println("\nmean metrics:")
	printMetrics(mean)
	return nil
}

func printProjects(cmd *cobra.Command, args []string) error {
	p, err := loadPortfolio()
	if err != nil {
		return err
	}
	styles := viz.NewStyles(viz.GetTheme(theme))

	var b strings.Builder
	for _, c := range p.Categories {
		b.WriteString(styles.Category.Render(strings.ToUpper(c.Name)) + "\n")
		for _, pr := range c.Projects {
			b.WriteString("  " + styles.Item.Render(pr.Title) + "\n")
			b.WriteString("    " + styles.Tech.Render(strings.Join(pr.Tech, " · ")) + "\n")
			if pr.Links.Live != "" {
				b.WriteString("    " + styles.Label.Render("live   ") + pr.Links.Live + "\n")
			}
			if pr.Links.GitHub != "" {
				b.WriteString("    " + styles.Label.Render("github ") + pr.Links.GitHub + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.Category.Render("SKILLS") + "\n")
	for _, g := range p.Skills {
		b.WriteString("  " + styles.Item.Render(g.Category) + ": " + styles.Tech.Render(strings.Join(g.Skills, ", ")) + "\n")
	}

	fmt.Println(styles.Panel.Render(strings.TrimRight(b.String(), "\n")))
	return nil
}
