package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/space"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
)

const maxDivergenceSteps = 600

func quietLogger() *log.Logger { return log.New(io.Discard) }

func simConfig(cfg *config.Config) sim.Config {
	sc := sim.DefaultConfig()
	sc.Dt = cfg.Dt
	sc.Duration = cfg.Duration
	sc.SnapshotEvery = cfg.SnapshotEvery
	return sc
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{Frames: frames, Metrics: meta.Metrics, StepsTaken: meta.Steps}, nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	reg := scenario.NewRegistry()
	names := config.ListPresets()
	notes := make(map[string]string, len(names))
	for _, name := range names {
		p := config.Presets[name]
		notes[name] = fmt.Sprintf("%s, %d bodies, theta %.1f", p.Scenario, p.Bodies.Count, p.Physics.Theta)
	}

	app := viz.NewApp(names, notes, func(name string) (viz.Model, error) {
		cfg := config.GetPreset(name)
		build := func() (*space.Space, error) {
			return cfg.NewSpace(reg, space.WithLogger(quietLogger()))
		}
		return viz.NewModel(build, cfg.Dt, name)
	})

	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := cfg.NewSpace(scenario.NewRegistry(), space.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	simulator := sim.New(s)
	for _, m := range metrics.Defaults(cfg.SpeedThreshold) {
		simulator.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Info("running simulation", "scenario", cfg.Scenario, "bodies", len(s.Bodies()), "theta", cfg.Physics.Theta, "workers", cfg.Physics.Workers)
	start := time.Now()

	result, err := simulator.Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, simErr := range result.Errors {
		log.Warn("simulation stopped early", "err", simErr)
	}

	runID, err := st.Save(storage.InfoFromConfig(cfg), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("frames: %d\n", len(result.Frames))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	reg := scenario.NewRegistry()
	build := func() (*space.Space, error) {
		return cfg.NewSpace(reg, space.WithLogger(quietLogger()))
	}

	model, err := viz.NewModel(build, cfg.Dt, cfg.Scenario)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tDURATION\tDT\tTHETA\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%.2f\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies.Count,
			run.Duration,
			run.Dt,
			run.Params.Theta,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(result.Frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(result.Frames))

	meanSpeed := make([]float64, len(result.Frames))
	for i, f := range result.Frames {
		for _, b := range f.Bodies {
			meanSpeed[i] += math.Hypot(b.VX, b.VY)
		}
		if len(f.Bodies) > 0 {
			meanSpeed[i] /= float64(len(f.Bodies))
		}
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"kinetic energy", result.KineticSeries()},
		{"mean speed", meanSpeed},
	} {
		fmt.Println(asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.ExportJSONStdout(meta.RunInfo, result)
	}
	if err := storage.ExportJSON(outPath, meta.RunInfo, result); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = args[0] + ".csv"
	}
	if err := storage.ExportCSV(path, result); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(result.Frames), path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(result.Frames) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	viewport := geom.Vec(meta.Width, meta.Height)
	opts := export.DefaultOptions()
	opts.ShowTree = showTree
	opts.ShowLinks = showLinks

	var doc string
	if trails {
		doc = export.TrailsToSVG(result.Frames, viewport, opts)
	} else {
		last := result.Frames[len(result.Frames)-1]
		s, err := space.New(len(last.Bodies), viewport, meta.Params, space.WithLogger(quietLogger()))
		if err != nil {
			return err
		}
		for _, st := range last.Bodies {
			b := body.New(meta.Bodies.Mass, meta.Bodies.Radius, geom.Vec(st.X, st.Y))
			b.Velocity = geom.Vec(st.VX, st.VY)
			s.AddBody(b)
		}
		doc = export.SpaceToSVG(s, opts)
	}

	path := outPath
	if path == "" {
		path = args[0] + ".svg"
	}
	if err := export.WriteFile(path, doc); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if benchStep < 1 {
		return fmt.Errorf("steps must be positive, got %d", benchStep)
	}
	reg := scenario.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tTREE/STEP\tDIRECT/PASS\tSPEEDUP\tHEIGHT")

	for _, n := range benchN {
		run := cfg.Clone()
		run.Bodies.Count = n
		s, err := run.NewSpace(reg, space.WithLogger(quietLogger()))
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < benchStep; i++ {
			s.Update(run.Dt)
		}
		tree := time.Since(start) / time.Duration(benchStep)

		start = time.Now()
		for _, b := range s.Bodies() {
			s.DirectForce(b)
		}
		direct := time.Since(start)

		speedup := 0.0
		if tree > 0 {
			speedup = float64(direct) / float64(tree)
		}
		fmt.Fprintf(w, "%d\t%v\t%v\t%.1fx\t%d\n", n, tree, direct, speedup, s.Tree().Stats().Height)
	}
	return w.Flush()
}

func compareThetas(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	thetas := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid theta %q: %w", arg, err)
		}
		thetas = append(thetas, v)
	}

	reg := scenario.NewRegistry()
	build := func(theta float64) (*space.Space, error) {
		run := cfg.Clone()
		run.Physics.Theta = theta
		return run.NewSpace(reg, space.WithLogger(quietLogger()))
	}

	log.Debug("comparing opening angles", "scenario", cfg.Scenario, "thetas", thetas, "jobs", sweepJobs)
	points, err := analysis.ThetaSweep(cmd.Context(), build, thetas, sweepJobs)
	if err != nil {
		return err
	}

	fmt.Printf("%s, %d bodies\n\n", cfg.Scenario, cfg.Bodies.Count)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THETA\tMEAN ERR\tMAX ERR\tFORCE PASS")
	for _, p := range points {
		fmt.Fprintf(w, "%.2f\t%.2e\t%.2e\t%v\n", p.Theta, p.MeanError, p.MaxError, p.Elapsed)
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	reg := scenario.NewRegistry()
	factory := func(seed int64) (*sim.Simulator, error) {
		run := cfg.Clone()
		run.Seed = seed
		s, err := run.NewSpace(reg, space.WithLogger(quietLogger()))
		if err != nil {
			return nil, err
		}
		simulator := sim.New(s)
		for _, m := range metrics.Defaults(cfg.SpeedThreshold) {
			simulator.AddMetric(m)
		}
		return simulator, nil
	}

	ensemble := sim.NewEnsemble(factory, runs, cfg.Seed)
	ensemble.SetWorkers(sweepJobs)

	log.Info("running ensemble", "scenario", cfg.Scenario, "runs", runs, "first_seed", cfg.Seed)
	start := time.Now()
	results, err := ensemble.Run(cmd.Context(), simConfig(cfg))
	if err != nil {
		return err
	}
	fmt.Printf("%d runs completed in %v\n\n", len(results), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, st := range sim.Aggregate(results) {
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%.6g\t%.6g\n", st.Name, st.Mean, st.StdDev, st.Min, st.Max)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(result.Frames) < 4 {
		return fmt.Errorf("need at least 4 frames, got %d", len(result.Frames))
	}

	series := result.KineticSeries()
	sample := result.Frames[1].Time - result.Frames[0].Time
	spectrum := analysis.PowerSpectrum(series)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d every %.4fs\n\n", len(series), sample)
	if len(spectrum) > 1 {
		fmt.Println(asciigraph.Plot(spectrum[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy power spectrum"),
		))
		fmt.Println()
	}
	fmt.Printf("dominant frequency: %.4f Hz\n", analysis.DominantFrequency(series, sample))

	cfg := meta.RunInfo.Config()
	reg := scenario.NewRegistry()
	build := func() (*space.Space, error) {
		return cfg.NewSpace(reg, space.WithLogger(quietLogger()))
	}
	steps := min(meta.Steps, maxDivergenceSteps)
	rate, err := analysis.Divergence(build, 1e-3, cfg.Dt, steps)
	if err != nil {
		return err
	}
	fmt.Printf("divergence rate over %d steps: %.4f /s\n", steps, rate)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := automation.NewRunner(storage.New(dataDir), scenario.NewRegistry(), log.Default())
	outcomes, err := runner.Run(ctx, batch)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tSTEPS\tENERGY DRIFT")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3g\n", o.Name, o.RunID, o.Steps, o.Metrics["energy_drift"])
	}
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCENARIO\tBODIES\tTHETA\tWORKERS")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%d\n", name, p.Scenario, p.Bodies.Count, p.Physics.Theta, p.Physics.Workers)
	}
	return w.Flush()
}

func listScenarios(cmd *cobra.Command, args []string) error {
	for _, name := range scenario.NewRegistry().List() {
		fmt.Println(name)
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
