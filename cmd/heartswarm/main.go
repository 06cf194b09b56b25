package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heartswarm/internal/analysis"
	"github.com/san-kum/heartswarm/internal/automation"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/control"
	"github.com/san-kum/heartswarm/internal/experiment"
	"github.com/san-kum/heartswarm/internal/export"
	"github.com/san-kum/heartswarm/internal/gui"
	"github.com/san-kum/heartswarm/internal/logx"
	"github.com/san-kum/heartswarm/internal/metrics"
	"github.com/san-kum/heartswarm/internal/optim"
	"github.com/san-kum/heartswarm/internal/render"
	"github.com/san-kum/heartswarm/internal/sim"
	"github.com/san-kum/heartswarm/internal/storage"
	"github.com/san-kum/heartswarm/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	// Config file and preset
	configFile string
	preset     string
	// Config overrides
	particles int
	size      int
	speed     float64
	scheme    string
	influence int
	outline   bool
	width     int
	height    int
	seed      int64
	// Per-command frame counts and outputs
	runFrames      int
	recordFrames   int
	snapshotFrames int
	benchFrames    int
	tuneFrames     int
	numRuns        int
	exportOut      string
	recordOut      string
	snapshotOut    string
	// Host selection
	backend string
	// Recording
	gifWidth  int
	gifEvery  int
	gifDelay  int
	gifFrames int
	// Tuning
	metricName string
)

// main opens the windowed host when no subcommand is given and exits with
// status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the heartswarm commands and flags. Every command owns
// its flag variables so per-command defaults do not overwrite each other.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "heartswarm",
		Short:        "particle trails chasing a heart curve",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".heartswarm", "data directory")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&particles, "particles", config.DefaultParticleCount, "particle count (10-100)")
	pf.IntVar(&size, "size", config.DefaultParticleSize, "particle size")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "global speed multiplier")
	pf.StringVar(&scheme, "scheme", config.DefaultColorScheme, "color scheme (rainbow|red|blue|green|monochrome)")
	pf.IntVar(&influence, "influence", config.DefaultMouseInfluence, "pointer influence strength (0 disables)")
	pf.BoolVar(&outline, "outline", false, "draw the heart outline")
	pf.IntVar(&width, "width", config.DefaultWidth, "canvas width")
	pf.IntVar(&height, "height", config.DefaultHeight, "canvas height")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = unseeded)")

	rootCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend (raylib|ebiten)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the windowed host",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend (raylib|ebiten)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to simulate")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "independent runs (seed, seed+1, ...)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbit frequency analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples as json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record a headless gif",
		RunE:  recordGIF,
	}
	recordCmd.Flags().IntVar(&recordFrames, "frames", 240, "frames to simulate")
	recordCmd.Flags().StringVarP(&recordOut, "output", "o", "heartswarm.gif", "output file")
	recordCmd.Flags().IntVar(&gifWidth, "gif-width", 480, "gif width in pixels (0 keeps canvas size)")
	recordCmd.Flags().IntVar(&gifEvery, "every", 4, "capture every n-th frame")
	recordCmd.Flags().IntVar(&gifDelay, "delay", 6, "frame delay in 1/100 s")
	recordCmd.Flags().IntVar(&gifFrames, "max-frames", 120, "maximum gif frames")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write an svg of the swarm after n frames",
		RunE:  snapshotSVG,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "frames to simulate")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "heartswarm.svg", "output file")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a scripted scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "frames per second across particle counts",
		RunE:  benchSwarm,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per point")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search particle count and speed for the lowest metric",
		RunE:  tuneSwarm,
	}
	tuneCmd.Flags().IntVar(&tuneFrames, "frames", 300, "frames per grid point")
	tuneCmd.Flags().StringVar(&metricName, "metric", "target_distance", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd)
	rootCmd.AddCommand(recordCmd, snapshotCmd, scenarioCmd, benchCmd, tuneCmd, presetsCmd, configCmd)

	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return config.Config{}, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.ParticleCount = particles
	}
	if flags.Changed("size") {
		cfg.ParticleSize = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("scheme") {
		cfg.ColorScheme = scheme
	}
	if flags.Changed("influence") {
		cfg.MouseInfluence = influence
	}
	if flags.Changed("outline") {
		cfg.ShowHeartOutline = outline
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}

	out := cfg.Normalize()
	if err := out.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return out, nil
}

func newMetrics() []sim.Metric {
	return experiment.NewRegistry().DefaultMetrics()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// resolveRunID returns args[0] or the most recent run.
func resolveRunID(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	id, err := st.Latest()
	if err != nil {
		return "", fmt.Errorf("no run id given: %w", err)
	}
	return id, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)

	switch backend {
	case "raylib":
		return gui.RunRaylib(cfg, logger)
	case "ebiten":
		return gui.RunEbiten(cfg, logger)
	default:
		return fmt.Errorf("unknown backend %q (raylib|ebiten)", backend)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "heartswarm.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	logger := logx.New(f, cfg.LogLevel)

	raster := render.NewRaster(1, 1, 1)
	loop := sim.New(cfg, raster, sim.WithLogger(logger))
	sched := &sim.FrameScheduler{}
	if err := loop.Start(sched); err != nil {
		return err
	}
	defer loop.Stop()

	panel := control.NewPanel(loop, logger)
	return viz.Run(viz.NewModel(loop, sched, raster, panel, cfg.FPS))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	ctx, cancel := signalContext()
	defer cancel()

	if numRuns > 1 {
		return runEnsemble(ctx, cfg, logger)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	series := metrics.NewSeries()
	exp := experiment.New(cfg, runFrames)
	exp.SetLogger(logger)
	exp.Setup(nil, newMetrics(), series)
	res, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	runID, err := st.Save(res.State.Config, res.Frames, res.Metrics, series.Samples())
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	logger.Info("run saved", "id", runID, "frames", res.Frames, "skipped", res.Stats.Skipped, "faulted", res.Stats.Faulted)
	fmt.Println(runID)
	return nil
}

func runEnsemble(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	ens := sim.NewEnsemble(cfg, numRuns, cfg.Seed, newMetrics)
	ens.SetLogger(logger)
	results, err := ens.Run(ctx, runFrames)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tTARGET_DIST\tLEADER_SPEED\tSKIP_RATE\tFAULTED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%.3f\t%.4f\t%d\n",
			r.Seed,
			r.Frames,
			r.Metrics["target_distance"],
			r.Metrics["leader_speed"],
			r.Metrics["skip_rate"],
			r.Stats.Faulted,
		)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tFRAMES\tPARTICLES\tSIZE\tSPEED\tSCHEME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Config.ParticleCount,
			run.Config.ParticleSize,
			run.Config.Speed,
			run.Config.ColorScheme,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRunID(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d  scheme: %s\n", meta.Config.ParticleCount, meta.Config.ColorScheme)
	fmt.Printf("samples: %d\n\n", len(samples))

	plots := []struct {
		caption string
		get     func(metrics.Sample) float64
	}{
		{"leader x", func(s metrics.Sample) float64 { return s.LeaderX }},
		{"leader y", func(s metrics.Sample) float64 { return s.LeaderY }},
		{"distance to target", func(s metrics.Sample) float64 { return s.TargetDistance }},
		{"leader speed", func(s metrics.Sample) float64 { return s.LeaderSpeed }},
	}
	for _, p := range plots {
		data := column(samples, p.get)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func column(samples []metrics.Sample, get func(metrics.Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRunID(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("frames: %d  particles: %d\n\n", meta.Frames, meta.Config.ParticleCount)

	xs := column(samples, func(s metrics.Sample) float64 { return s.LeaderX })
	ps, err := analysis.PowerSpectrum(xs)
	if err != nil {
		return err
	}
	plotData := ps
	if len(plotData) > 4 {
		plotData = plotData[:len(plotData)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (leader x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tPERIOD\tMIN\tMAX\tMEAN\tSTDDEV")
	for _, c := range []struct {
		name string
		get  func(metrics.Sample) float64
	}{
		{"leader_x", func(s metrics.Sample) float64 { return s.LeaderX }},
		{"leader_y", func(s metrics.Sample) float64 { return s.LeaderY }},
		{"target_distance", func(s metrics.Sample) float64 { return s.TargetDistance }},
		{"leader_speed", func(s metrics.Sample) float64 { return s.LeaderSpeed }},
	} {
		data := column(samples, c.get)
		period, _, err := analysis.DominantPeriod(data)
		if err != nil {
			return err
		}
		sum, err := analysis.Summarize(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			c.name, period, sum.Min, sum.Max, sum.Mean, sum.StdDev)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := resolveRunID(st, args)
	if err != nil {
		return err
	}
	if exportOut == "" {
		return st.ExportJSON(os.Stdout, runID)
	}
	if err := st.ExportJSONFile(exportOut, runID); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, exportOut)
	return nil
}

func recordGIF(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	ctx, cancel := signalContext()
	defer cancel()

	raster := render.NewRaster(cfg.Width, cfg.Height, 1)
	rec := export.NewGIFRecorder(raster, gifWidth, gifEvery, gifDelay, gifFrames)
	exp := experiment.New(cfg, recordFrames)
	exp.SetLogger(logger)
	exp.Setup(raster, nil, rec)
	res, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := rec.Save(recordOut); err != nil {
		return err
	}
	logger.Info("gif written", "path", recordOut, "frames", res.Frames, "images", rec.Len())
	return nil
}

func snapshotSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	ctx, cancel := signalContext()
	defer cancel()

	exp := experiment.New(cfg, snapshotFrames)
	exp.SetLogger(logger)
	res, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if err := os.WriteFile(snapshotOut, []byte(export.TrailsToSVG(res.State)), 0o644); err != nil {
		return err
	}
	logger.Info("svg written", "path", snapshotOut, "frames", res.Frames)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	ctx, cancel := signalContext()
	defer cancel()

	ms := newMetrics()
	loop := sim.New(cfg, render.Discard{}, sim.WithLogger(logger))
	for _, m := range ms {
		loop.AddObserver(m)
	}
	sched := &sim.FrameScheduler{}
	if err := loop.Start(sched); err != nil {
		return err
	}
	defer loop.Stop()

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(ctx, scenario, loop, sched, ms, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tTARGET_DIST\tLEADER_SPEED\tSKIPPED\tFAULTED")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.3f\t%d\t%d\n",
			r.Name,
			r.Frames,
			r.Metrics["target_distance"],
			r.Metrics["leader_speed"],
			r.Stats.Skipped,
			r.Stats.Faulted,
		)
	}
	return w.Flush()
}

func benchSwarm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: "particle_count",
		Values:    []float64{10, 25, 50, 75, 100},
		Frames:    benchFrames,
	}

	fmt.Printf("benchmarking %d frames per point\n\n", benchFrames)
	results, err := automation.RunSweep(ctx, sweep, newMetrics, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tTIME\tFRAMES/SEC\tTARGET_DIST")
	for _, r := range results {
		fmt.Fprintf(w, "%.0f\t%v\t%.0f\t%.2f\n",
			r.ParamValue, r.Elapsed, r.FPS, r.Metrics["target_distance"])
	}
	return w.Flush()
}

func tuneSwarm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := experiment.NewRegistry().GetMetric(metricName); err != nil {
		return err
	}
	logger := logx.New(os.Stderr, cfg.LogLevel)
	ctx, cancel := signalContext()
	defer cancel()

	grid := optim.NewGridSearch(
		[]string{"particle_count", "speed"},
		[][]float64{{10, 32, 64, 100}, {0.5, 1, 2, 3}},
	)
	best, val, err := grid.Search(ctx, optim.MetricObjective(cfg, tuneFrames, metricName, logger))
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.4f\n", metricName, val)
	fmt.Printf("particle_count: %.0f\n", best["particle_count"])
	fmt.Printf("speed: %.2f\n", best["speed"])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tSIZE\tSPEED\tSCHEME\tINFLUENCE\tOUTLINE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%s\t%d\t%v\n",
			name,
			p.ParticleCount,
			p.ParticleSize,
			p.Speed,
			p.ColorScheme,
			p.MouseInfluence,
			p.ShowHeartOutline,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "heartswarm.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, &cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("config written to %s\n", path)
	return nil
}
