package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planar/internal/config"
	"github.com/san-kum/planar/internal/export"
	"github.com/san-kum/planar/internal/metrics"
	"github.com/san-kum/planar/internal/sim"
	"github.com/san-kum/planar/internal/storage"
	"github.com/san-kum/planar/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	keepForces bool
	save       bool
	numRuns    int
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planar",
		Short: "rigid body sleep-island lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".planar", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scene config file (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().BoolVar(&keepForces, "keep-forces", false, "do not clear forces between steps")
	runCmd.Flags().BoolVar(&save, "save", false, "persist the run")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scene config file (yaml)")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	liveCmd.Flags().BoolVar(&keepForces, "keep-forces", false, "do not clear forces between steps")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scene]",
		Short: "run a scene several times in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().StringVar(&configFile, "config", "", "scene config file (yaml)")
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark stepping throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	benchCmd.Flags().StringVar(&configFile, "config", "", "scene config file (yaml)")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		RunE:  listScenes,
	}

	initCmd := &cobra.Command{
		Use:   "init [scene] [file]",
		Short: "write a scene config to a yaml file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetPreset(args[0])
			if cfg == nil {
				return fmt.Errorf("unknown scene: %s", args[0])
			}
			return config.Save(args[1], cfg)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the energy series as an svg plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "energy.svg", "output file")

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, benchCmd, scenesCmd, initCmd, listCmd, plotCmd, exportCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sceneArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "stack"
}

// resolveRunConfig folds flag overrides into the scene's own dt/duration.
func resolveRunConfig(cfg *config.Config) sim.Config {
	rc := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, KeepForces: keepForces}
	if dt > 0 {
		rc.Dt = dt
	}
	if duration > 0 {
		rc.Duration = duration
	}
	return rc
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(configFile, sceneArg(args))
	if err != nil {
		return err
	}

	runner, err := buildScene(cfg)
	if err != nil {
		return err
	}
	runner.AddMetric(metrics.NewEnergy())
	runner.AddMetric(metrics.NewPeakEnergy())
	runner.AddMetric(metrics.NewSleepRatio())

	rc := resolveRunConfig(cfg)

	fmt.Printf("running %s...\n", cfg.Scene)
	start := time.Now()
	result, err := runner.Run(context.Background(), rc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s := runner.Space()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("awake at end: %d, sleeping: %d\n", s.ActiveCount(), s.SleepingCount())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nMETRIC\tVALUE")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(result.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total kinetic energy"),
		))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Scene, rc.Dt, rc.Duration, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(configFile, sceneArg(args))
	if err != nil {
		return err
	}

	// Build once before entering the alt screen; resets rebuild from the
	// same config.
	runner, err := buildScene(cfg)
	if err != nil {
		return err
	}
	rebuild := func() (*sim.Runner, error) { return buildScene(cfg) }

	rc := resolveRunConfig(cfg)
	model := viz.NewModel(runner, rebuild, rc, cfg.Scene, cfg.Floor.Y)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(configFile, sceneArg(args))
	if err != nil {
		return err
	}

	factory := func() (*sim.Runner, error) {
		runner, err := buildScene(cfg)
		if err != nil {
			return nil, err
		}
		runner.AddMetric(metrics.NewSleepRatio())
		return runner, nil
	}

	e := sim.NewEnsemble(factory, numRuns)
	start := time.Now()
	results, err := e.Run(context.Background(), resolveRunConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("%d runs of %s in %v\n\n", len(results), cfg.Scene, time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tFINAL ENERGY\tSLEEP RATIO")
	for i, res := range results {
		final := 0.0
		if len(res.Energy) > 0 {
			final = res.Energy[len(res.Energy)-1]
		}
		fmt.Fprintf(w, "%d\t%d\t%.6f\t%.3f\n", i, res.StepsTaken, final, res.Metrics["sleep_ratio"])
	}
	return w.Flush()
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(configFile, sceneArg(args))
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 1.0 / 60}

	fmt.Printf("benchmarking %s\n\n", cfg.Scene)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			runner, err := buildScene(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := runner.Run(context.Background(), sim.Config{Dt: step, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}

func listScenes(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tBODIES\tDURATION\tSLEEP THRESHOLD")
	for _, name := range names {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.1fs\t%v\n", name, len(cfg.Bodies), cfg.Duration, cfg.SleepTimeThreshold)
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, energy, awake, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(energy) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nscene: %s\nsamples: %d\n\n", meta.ID, meta.Scene, len(energy))

	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total kinetic energy"),
	))
	fmt.Println()

	awakeF := make([]float64, len(awake))
	for i, a := range awake {
		awakeF[i] = float64(a)
	}
	fmt.Println(asciigraph.Plot(awakeF,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("awake bodies"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, energy, _, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	svg := export.SeriesToSVG(times, energy, 800, 400, "#00ff88")
	if svg == "" {
		return fmt.Errorf("not enough samples to plot")
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}
