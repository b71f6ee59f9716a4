package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	dt            float64
	duration      float64
	seed          int64
	numBodies     int
	theta         float64
	epsilon       float64
	gravity       float64
	capacity      int
	maxDepth      int
	workers       int
	snapshotEvery int

	outPath   string
	showTree  bool
	showLinks bool
	trails    bool
	benchN    []int
	benchStep int
	sweepJobs int
	runs      int
)

// main registers every command, opens the interactive preset menu when no
// subcommand is given and exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "barnes-hut gravity simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: runMenu,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.GetEnv(config.DataDirEnv, ".gravsim"), "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a simulation with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy and body speeds of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.csv)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final frame of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().BoolVar(&showTree, "tree", true, "draw quadtree leaf cells")
	exportSVGCmd.Flags().BoolVar(&showLinks, "links", false, "draw body to leaf links")
	exportSVGCmd.Flags().BoolVar(&trails, "trails", false, "draw body paths across all frames instead")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "time tree force passes against direct summation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntSliceVar(&benchN, "n", []int{100, 500, 1000, 2000}, "body counts to benchmark")
	benchCmd.Flags().IntVar(&benchStep, "steps", 20, "steps per body count")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [theta1] [theta2] ...",
		Short: "compare force accuracy and cost across opening angles",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareThetas,
	}
	addSimFlags(compareCmd)
	compareCmd.Flags().IntVar(&sweepJobs, "jobs", 4, "thetas evaluated concurrently")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run the same setup over consecutive seeds and summarise metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&sweepJobs, "jobs", 4, "runs executed concurrently")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and sensitivity analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list initial-condition generators",
		RunE:  listScenarios,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a yaml-scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the defaults or a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		benchCmd, compareCmd, ensembleCmd, analyzeCmd, batchCmd, presetsCmd, scenariosCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&dt, "dt", defaults.Dt, "timestep")
	f.Float64Var(&duration, "time", defaults.Duration, "duration")
	f.Int64Var(&seed, "seed", defaults.Seed, "random seed")
	f.IntVar(&numBodies, "bodies", defaults.Bodies.Count, "number of bodies")
	f.Float64Var(&theta, "theta", defaults.Physics.Theta, "barnes-hut opening angle")
	f.Float64Var(&epsilon, "epsilon", defaults.Physics.Epsilon, "softening length")
	f.Float64Var(&gravity, "g", defaults.Physics.G, "gravitational constant")
	f.IntVar(&capacity, "capacity", defaults.Physics.NodeCapacity, "bodies per quadtree leaf")
	f.IntVar(&maxDepth, "depth", defaults.Physics.MaxDepth, "maximum quadtree depth")
	f.IntVar(&workers, "workers", defaults.Physics.Workers, "force pass workers")
	f.IntVar(&snapshotEvery, "snapshot", defaults.SnapshotEvery, "record every nth step")
}

// resolveConfig layers the preset, the config file, the scenario argument and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Scenario = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("bodies") {
		cfg.Bodies.Count = numBodies
	}
	if flags.Changed("theta") {
		cfg.Physics.Theta = theta
	}
	if flags.Changed("epsilon") {
		cfg.Physics.Epsilon = epsilon
	}
	if flags.Changed("g") {
		cfg.Physics.G = gravity
	}
	if flags.Changed("capacity") {
		cfg.Physics.NodeCapacity = capacity
	}
	if flags.Changed("depth") {
		cfg.Physics.MaxDepth = maxDepth
	}
	if flags.Changed("workers") {
		cfg.Physics.Workers = workers
	}
	if flags.Changed("snapshot") {
		cfg.SnapshotEvery = snapshotEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetReportTimestamp(true)
	return nil
}
