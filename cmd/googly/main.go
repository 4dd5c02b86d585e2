package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/googly/internal/analysis"
	"github.com/san-kum/googly/internal/automation"
	"github.com/san-kum/googly/internal/config"
	"github.com/san-kum/googly/internal/optim"
	"github.com/san-kum/googly/internal/sim"
	"github.com/san-kum/googly/internal/storage"
	"github.com/san-kum/googly/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	dt       float64
	duration float64
	seed     int64
	gravity  float64
	damping  float64

	motion    string
	amplitude float64
	frequency float64

	eyeRadius  float64
	eyeSpacing float64
	irisRadius float64
	inward     float64

	gifPath    string
	snapPath   string
	svgPath    string
	outPath    string
	sweepParam string
	sweepVals  []float64

	trials     int
	tuneGrid   []string
	tuneMetric string
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	nameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "googly",
		Short:         "verlet googly eyes for 3d models",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu(setupLogger(cmd, config.DefaultLogLevel))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".googly", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the eyes wobble in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&gifPath, "gif", "googly.gif", "where the g key saves recordings")
	liveCmd.Flags().StringVar(&snapPath, "svg", "googly.svg", "where the s key saves snapshots")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one simulation per parameter value in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gravity", "parameter to sweep (see config params)")
	sweepCmd.Flags().Float64SliceVar(&sweepVals, "values", []float64{0.25, 0.5, 1, 2}, "values to try")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot iris offsets of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the iris paths as svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	addSimFlags(configCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search rig parameters for the lowest metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addSimFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&tuneGrid, "grid", []string{"damping=0.005,0.01,0.02,0.05"}, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "settle_time", "metric to minimise")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and record every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat a run from many scattered starts",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCmd)
	monteCmd.Flags().IntVar(&trials, "trials", 20, "number of seeds to try")

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, tuneCmd, scenarioCmd, monteCmd,
		listCmd, plotCmd, exportCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep in seconds")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	f.Int64Var(&seed, "seed", 0, "scatter the irises from this seed (0 starts centred)")
	f.Float64Var(&gravity, "gravity", 0, "downward acceleration")
	f.Float64Var(&damping, "damping", 0, "fraction of velocity lost per step")
	f.StringVar(&motion, "motion", config.DefaultMotion, "host motion ("+strings.Join(sim.Motions(), ", ")+")")
	f.Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "host motion amplitude")
	f.Float64Var(&frequency, "frequency", config.DefaultFrequency, "host motion frequency in hz")
	f.Float64Var(&eyeRadius, "eye-radius", 0, "socket radius")
	f.Float64Var(&eyeSpacing, "eye-spacing", 0, "distance between socket centres")
	f.Float64Var(&irisRadius, "iris-radius", 0, "iris radius (default half the socket)")
	f.Float64Var(&inward, "inward", 0, "inward rotation of each socket in radians")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.LogLevel)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := automation.NewSimulator(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %.1fs...\n", cfg.Host.Motion, cfg.Run.Duration)
	start := time.Now()

	result, err := s.Run(ctx, sim.RunConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.NewRunInfo(runName(), cfg, s.Rig().Options()), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	printMetrics(result.Metrics)
	for _, e := range result.Errors {
		fmt.Println(errStyle.Render("  " + e.Error()))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.FromConfig(cfg, setupLogger(cmd, cfg.LogLevel))
	if err != nil {
		return err
	}
	return viz.RunLive(viz.NewModel(s, runName(), cfg.Run.Dt).WithGIFPath(gifPath).WithSVGPath(snapPath))
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.LogLevel)

	check := *cfg
	if err := check.Set(sweepParam, 0); err != nil {
		return fmt.Errorf("%w (want one of %s)", err, strings.Join(config.Params(), ", "))
	}

	build := func(v float64) (*sim.Simulator, error) {
		c := *cfg
		if err := c.Set(sweepParam, v); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return automation.NewSimulator(&c, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sim.Sweep(ctx, sweepVals, build, sim.RunConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("%s sweep over %d values (%v)\n\n", sweepParam, len(sweepVals), time.Since(start).Round(time.Millisecond))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\tMAX_EXCURSION\tPATH_LENGTH\tSETTLE_TIME\tWOBBLE\tSTEPS")
	for i, r := range results {
		fmt.Fprintf(w, "%g\t%.5f\t%.5f\t%.3fs\t%.2fhz\t%d\n",
			sweepVals[i],
			r.Metrics["max_excursion"],
			r.Metrics["path_length"],
			r.Metrics["settle_time"],
			r.Metrics["wobble_hz"],
			r.StepsTaken,
		)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.LogLevel)

	names, ranges, err := parseGrid(tuneGrid)
	if err != nil {
		return err
	}
	g, err := optim.NewGridSearch(names, ranges, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	best, err := g.Search(ctx, cfg, tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("searched %d points in %v\n", best.Evaluated, time.Since(start).Round(time.Millisecond))
	fmt.Println(titleStyle.Render(fmt.Sprintf("best %s: %.6f", tuneMetric, best.Value)))
	for _, name := range names {
		fmt.Printf("  %s = %g\n", nameStyle.Render(name), best.Params[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, config.DefaultLogLevel)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println(titleStyle.Render("scenario: " + sc.Name))
	if sc.Description != "" {
		fmt.Println(dimStyle.Render(sc.Description))
	}
	results, err := automation.RunScenario(ctx, sc, st, logger)
	for _, r := range results {
		fmt.Printf("  %s %s settle=%.3fs wobble=%.2fhz\n",
			nameStyle.Render(fmt.Sprintf("%-12s", r.Step)), r.RunID,
			r.Result.Metrics["settle_time"], r.Result.Metrics["wobble_hz"])
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, cfg, trials, cfg.Run.Seed, logger)
	if err != nil {
		return err
	}
	sum := automation.Summarize(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d\n", len(results), sum.Stable, sum.Unstable)
	fmt.Printf("settle time: mean %.3fs  worst %.3fs\n", sum.MeanSettle, sum.WorstSettle)
	return nil
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
	fmt.Fprintln(w, "ID\tMOTION\tTIME\tDURATION\tDT\tGRAVITY\tDAMPING\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%.3f\t%.3f\t%d\n",
			run.ID,
			run.Motion,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Gravity,
			run.Damping,
			run.Steps,
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
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	r := &sim.Result{Samples: samples}
	fmt.Println(titleStyle.Render("run: " + meta.ID))
	fmt.Printf("motion: %s  gravity: %.3f  damping: %.3f\n", meta.Motion, meta.Gravity, meta.Damping)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, axis := range []struct {
		caption     string
		left, right int
	}{
		{"iris x (left, right)", 0, 2},
		{"iris y (left, right)", 1, 3},
	} {
		graph := asciigraph.PlotMany([][]float64{r.Column(axis.left), r.Column(axis.right)},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(axis.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println(asciigraph.Plot(r.Column(4),
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("head x"),
	))

	fmt.Println()
	fmt.Println(dimStyle.Render("left iris path in socket"))
	fmt.Print(analysis.IrisPath(samples, true).ASCII(41, 21, meta.EyeRadius-meta.IrisRadius))
	fmt.Printf("dominant wobble: %.2fhz\n", analysis.DominantFrequency(r.Column(1), meta.Dt))

	if svgPath != "" {
		paths := []*analysis.Portrait{analysis.IrisPath(samples, true), analysis.IrisPath(samples, false)}
		if err := viz.WriteSVG(svgPath, viz.PathSVG(paths, meta.EyeRadius-meta.IrisRadius, 400, viz.CurrentTheme)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
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
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	result := &sim.Result{Samples: samples, Metrics: meta.Metrics, StepsTaken: meta.Steps}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return storage.ExportJSON(out, meta.RunInfo, result)
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("presets:"))
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Printf("  %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-10s", name)),
			dimStyle.Render(fmt.Sprintf("%s amp=%.2f f=%.2fhz g=%.3f d=%.3f r=%.3f",
				cfg.Host.Motion, cfg.Host.Amplitude, cfg.Host.Frequency,
				cfg.Physics.Gravity, cfg.Physics.Damping, cfg.Rig.EyeRadius)))
	}
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := "googly.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func runName() string {
	if preset != "" {
		return preset
	}
	return "custom"
}

func setupLogger(cmd *cobra.Command, fallback string) *slog.Logger {
	level := fallback
	if cmd.Flags().Changed("log-level") || level == "" {
		level = logLevel
	}
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}
