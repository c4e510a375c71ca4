package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/linalg"
	"github.com/san-kum/numlab/internal/metrics"
	"github.com/san-kum/numlab/internal/models"
	"github.com/san-kum/numlab/internal/storage"
	"github.com/san-kum/numlab/internal/viz"
)

const stabilityThreshold = 1e6

var (
	dataDir  string
	logLevel string
	// singular
	rowsFlag   string
	matrixName string
	trace      bool
	// euler
	y0Values   []float64
	t0         float64
	tf         float64
	steps      int
	params     map[string]string
	preset     string
	configFile string
	validate   bool
	showPlot   bool
	noSave     bool
	// converge
	levels []int
	// export-json
	outFile string
)

func main() {
	envCfg, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(envCfg)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(envCfg config.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "numlab",
		Short: "gaussian elimination and euler integration lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envCfg.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envCfg.LogLevel, "log level (debug, info, warn, error)")

	singularCmd := &cobra.Command{
		Use:   "singular",
		Short: "test whether a square matrix is singular",
		Args:  cobra.NoArgs,
		RunE:  runSingular,
	}
	singularCmd.Flags().StringVar(&rowsFlag, "rows", "", `matrix rows, e.g. "1,2;3,4"`)
	singularCmd.Flags().StringVar(&matrixName, "preset", "", "use a built-in matrix")
	singularCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	singularCmd.Flags().BoolVar(&trace, "trace", envCfg.Trace, "print the matrix after each row")

	eulerCmd := &cobra.Command{
		Use:   "euler [model]",
		Short: "integrate a model with the explicit euler method",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEuler,
	}
	eulerCmd.Flags().Float64SliceVar(&y0Values, "y0", nil, "initial phase vector (default: model default)")
	eulerCmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "start time")
	eulerCmd.Flags().Float64Var(&tf, "tf", config.DefaultTf, "end time")
	eulerCmd.Flags().IntVar(&steps, "steps", envCfg.Steps, "number of grid points (>= 2)")
	eulerCmd.Flags().StringToStringVar(&params, "param", nil, "model parameter, e.g. --param k=0.5")
	eulerCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	eulerCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	eulerCmd.Flags().BoolVar(&validate, "validate", false, "stop on NaN or Inf state")
	eulerCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the trajectory")
	eulerCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	convergeCmd := &cobra.Command{
		Use:   "converge [model]",
		Short: "compare euler results across step counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConverge,
	}
	convergeCmd.Flags().IntSliceVar(&levels, "levels", []int{11, 101, 1001, 10001}, "step counts to compare")
	convergeCmd.Flags().Float64SliceVar(&y0Values, "y0", nil, "initial phase vector (default: model default)")
	convergeCmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "start time")
	convergeCmd.Flags().Float64Var(&tf, "tf", config.DefaultTf, "end time")
	convergeCmd.Flags().StringToStringVar(&params, "param", nil, "model parameter, e.g. --param k=0.5")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "write to file instead of stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets [model|matrix]",
		Short: "list available presets",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			out := cmd.OutOrStdout()
			for _, name := range registry.ListModels() {
				m, err := registry.GetModel(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s order %d  params %s\n", name, m.Order(), formatParams(m.GetParams()))
			}
			return nil
		},
	}

	rootCmd.AddCommand(singularCmd, eulerCmd, convergeCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, modelsCmd)
	return rootCmd
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func runSingular(cmd *cobra.Command, args []string) error {
	mc := config.MatrixConfig{Trace: trace}

	switch {
	case rowsFlag != "":
		parsed, err := parseRows(rowsFlag)
		if err != nil {
			return err
		}
		mc.Rows = parsed
	case matrixName != "":
		mc.Rows = config.GetMatrixPreset(matrixName)
		if mc.Rows == nil {
			return fmt.Errorf("unknown matrix preset: %s (available: %v)", matrixName, config.ListMatrixPresets())
		}
	case configFile != "":
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		mc.Rows = cfg.Matrix.Rows
		if !cmd.Flags().Changed("trace") {
			mc.Trace = cfg.Matrix.Trace
		}
	default:
		return fmt.Errorf("no matrix given: use --rows, --preset or --config")
	}

	m, err := mc.Dense()
	if err != nil {
		return err
	}

	var opts []linalg.Option
	if mc.Trace {
		opts = append(opts, linalg.WithTrace(cmd.ErrOrStderr()))
	}

	start := time.Now()
	singular, err := linalg.IsSingular(m, opts...)
	if err != nil {
		return err
	}
	slog.Debug("singularity test finished", "size", len(mc.Rows), "singular", singular, "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Matrix(m))
	fmt.Fprintln(out, viz.Verdict(singular))
	return nil
}

func runEuler(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig().ODE
	cfg.Steps = steps
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	// Load preset if specified
	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		cfg = *p
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg.ODE
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	// CLI flags override config
	flags := cmd.Flags()
	if flags.Changed("y0") {
		cfg.Y0 = y0Values
	}
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	if flags.Changed("tf") {
		cfg.Tf = tf
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("validate") {
		cfg.ValidateState = validate
	}
	if len(params) > 0 {
		parsed, err := parseParams(params)
		if err != nil {
			return err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(parsed))
		}
		for k, v := range parsed {
			cfg.Params[k] = v
		}
	}

	registry := experiment.NewRegistry()
	model, err := registry.GetModel(cfg.Model)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Model:         cfg.Model,
		InitState:     cfg.Y0,
		T0:            cfg.T0,
		Tf:            cfg.Tf,
		Steps:         cfg.Steps,
		Params:        cfg.Params,
		ValidateState: cfg.ValidateState,
	})
	if err := exp.Setup(model, integrators.NewEuler()); err != nil {
		return err
	}
	expCfg := exp.Config()

	slog.Debug("integrating", "model", cfg.Model, "y0", expCfg.InitState, "t0", cfg.T0, "tf", cfg.Tf, "steps", cfg.Steps)
	start := time.Now()

	traj, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("euler: %s", cfg.Model)))
	fmt.Fprintln(out, viz.Field("completed in", elapsed.String()))
	fmt.Fprintln(out, viz.Field("points", strconv.Itoa(traj.Len())))
	fmt.Fprintln(out, viz.Field("h", strconv.FormatFloat((cfg.Tf-cfg.T0)/float64(cfg.Steps-1), 'g', 6, 64)))
	fmt.Fprintln(out, viz.Field("final", fmt.Sprintf("t=%.6g y=%v", traj.Times[traj.Len()-1], formatState(traj.Final()))))

	for i := 0; i < traj.Dim(); i++ {
		fmt.Fprintf(out, "  y%d %s\n", i, viz.SparklineChart(traj.Component(i), 40))
	}

	fmt.Fprintln(out, viz.Separator(48))
	ms := []metrics.Metric{metrics.NewStability(stabilityThreshold), metrics.NewPeakNorm()}
	if h, ok := model.(models.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergyDrift(h))
	}
	values := metrics.Evaluate(traj, ms...)
	for _, m := range ms {
		fmt.Fprintln(out, viz.Field(m.Name(), strconv.FormatFloat(values[m.Name()], 'g', 6, 64)))
	}

	if showPlot {
		fmt.Fprintln(out, viz.Separator(48))
		fmt.Fprint(out, viz.PlotSeries(viz.Columns(toRows(traj.States())), captions(cfg.Model)))
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Model:      cfg.Model,
		Integrator: "euler",
		T0:         cfg.T0,
		Tf:         cfg.Tf,
		Y0:         expCfg.InitState,
		Params:     model.GetParams(),
	}, traj)
	if err != nil {
		return err
	}
	slog.Debug("run saved", "id", runID, "dir", dataDir)

	fmt.Fprintln(out, viz.Field("run id", runID))
	return nil
}

func runConverge(cmd *cobra.Command, args []string) error {
	model := config.DefaultModel
	if len(args) > 0 {
		model = args[0]
	}
	p, err := parseParams(params)
	if err != nil {
		return err
	}

	c := experiment.NewConvergence(experiment.Config{
		Model:     model,
		InitState: y0Values,
		T0:        t0,
		Tf:        tf,
		Params:    p,
	}, experiment.NewRegistry())

	start := time.Now()
	results, err := c.Run(cmd.Context(), levels)
	if err != nil {
		return err
	}
	slog.Debug("convergence study finished", "model", model, "levels", len(results), "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("convergence: %s on [%g, %g]", model, t0, tf)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tH\tFINAL\tDIFF")
	for _, l := range results {
		fmt.Fprintf(w, "%d\t%g\t%s\t%.3e\n", l.Steps, l.H, formatState(l.Final), l.Diff)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSPAN\tSTEPS\tFINAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.T0,
			run.Tf,
			run.Steps,
			formatState(run.Final),
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

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "model: %s\n", meta.Model)
	fmt.Fprintf(out, "samples: %d\n\n", len(states))
	fmt.Fprint(out, viz.PlotSeries(viz.Columns(states), captions(meta.Model)))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(cmd.OutOrStdout())

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile != "" {
		return st.ExportJSONFile(outFile, args[0])
	}
	return st.ExportJSON(cmd.OutOrStdout(), args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var names []string
	if args[0] == "matrix" {
		names = config.ListMatrixPresets()
	} else {
		names = config.ListPresets(args[0])
	}

	if len(names) == 0 {
		fmt.Fprintf(out, "no presets for: %s\n", args[0])
		return nil
	}
	fmt.Fprintf(out, "presets for %s:\n", args[0])
	for _, p := range names {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}

func captions(model string) []string {
	switch model {
	case "pendulum":
		return []string{"theta (angle)", "omega (angular velocity)"}
	case "harmonic", "vanderpol", "duffing":
		return []string{"x (position)", "v (velocity)"}
	default:
		return []string{"y"}
	}
}

func formatParams(p map[string]float64) string {
	if len(p) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(p))
	for _, k := range sortedKeys(p) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, p[k]))
	}
	return strings.Join(parts, ",")
}
