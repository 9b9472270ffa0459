package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lruiz/demonsim/internal/config"
	"github.com/lruiz/demonsim/internal/demon"
	"github.com/lruiz/demonsim/internal/sim"
	"github.com/lruiz/demonsim/internal/storage"
	"github.com/lruiz/demonsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	particles int
	dims      int
	dt        float64
	steps     int
	seed      int64
	threshold float64
	epsilon   float64
	fastPass  string
	slowPass  string

	frameRate     int
	stepsPerFrame int
	runs          int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "demonsim",
		Short: "maxwell's demon simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".demonsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save the results",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the demon sort particles in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 2, "simulation steps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the Landauer energy staircase for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-step data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and ledger history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same setup under consecutive seeds",
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of runs")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "particle count")
	cmd.Flags().IntVar(&dims, "dims", 2, "dimensionality (1 or 2)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "fast/slow speed cutoff")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "barrier half-width")
	cmd.Flags().StringVar(&fastPass, "fast-pass", "toward-a", "permitted direction for fast particles")
	cmd.Flags().StringVar(&slowPass, "slow-pass", "toward-b", "permitted direction for slow particles")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("dims") {
		cfg.Dims = dims
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = threshold
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Barrier.HalfWidth = epsilon
	}
	if cmd.Flags().Changed("fast-pass") {
		cfg.Policy.FastPass = fastPass
	}
	if cmd.Flags().Changed("slow-pass") {
		cfg.Policy.SlowPass = slowPass
	}

	return cfg, cfg.Validate()
}

func newClock(cfg *config.Config) (*sim.Clock, error) {
	clock, err := sim.NewClock(cfg)
	if err != nil {
		return nil, err
	}

	fastSide, _ := demon.ParseDirection(cfg.Policy.FastPass)
	clock.AddMetric(sim.NewGateActivity())
	clock.AddMetric(sim.NewSeparation(cfg.Barrier.Center, fastSide))
	return clock, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	clock, err := newClock(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d particles for %d steps...\n", cfg.Particles, cfg.Steps)
	start := time.Now()

	result, err := clock.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	final := result.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("bits: %d\n", final.Bits)
	fmt.Printf("energy: %.4f kT\n", final.Energy)
	fmt.Printf("chamber A/B: %d/%d\n", final.CountA, final.CountB)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	clock, err := sim.NewClock(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(clock, frameRate, stepsPerFrame)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runList, err := st.List()
	if err != nil {
		return err
	}

	if len(runList) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tSTEPS\tBITS\tENERGY")
	for _, run := range runList {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Steps,
			run.Bits,
			run.Energy,
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

	history, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return fmt.Errorf("no committed bits to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bits: %d, energy: %.4f kT\n\n", meta.Bits, meta.Energy)

	data := make([]float64, len(history))
	for i, s := range history {
		data[i] = s.Energy
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("cumulative energy cost (kT ln2 per bit)"),
	)
	fmt.Println(graph)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	records, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "gate_open", "bits_step", "count_a", "count_b", "bits", "energy"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Step),
			strconv.FormatFloat(r.Time, 'f', 6, 64),
			strconv.FormatBool(r.GateOpen),
			strconv.Itoa(r.BitsStep),
			strconv.Itoa(r.CountA),
			strconv.Itoa(r.CountB),
			strconv.Itoa(r.Bits),
			strconv.FormatFloat(r.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	history, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	out := struct {
		Meta    *storage.RunMetadata `json:"meta"`
		History any                  `json:"history"`
	}{meta, history}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(cfg, runs, cfg.Seed)
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBITS\tENERGY\tGATE_ACTIVITY")

	totalBits := 0
	for i, r := range results {
		final := r.Final()
		totalBits += final.Bits
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.4f\n",
			cfg.Seed+int64(i), final.Bits, final.Energy, r.Metrics["gate_activity"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean bits: %.1f\n", float64(totalBits)/float64(len(results)))
	return nil
}
