package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fluxsim/internal/analysis"
	"github.com/san-kum/fluxsim/internal/config"
	"github.com/san-kum/fluxsim/internal/experiment"
	"github.com/san-kum/fluxsim/internal/export"
	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/storage"
	"github.com/san-kum/fluxsim/internal/viz"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logger := experiment.DefaultLogger()
	if quiet {
		logger = kitlog.NewNopLogger()
	}

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(nil); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Scenario)
	result, runErr := exp.Run(context.Background())
	if result == nil {
		return runErr
	}

	runID, err := st.Save(result, runErr)
	if err != nil {
		return err
	}

	if renderPNG {
		path := filepath.Join(dataDir, runID, "field.png")
		if err := export.Render(path, result.Grid, result.Field, export.DefaultOptions()); err != nil {
			return err
		}
		fmt.Printf("rendered: %s\n", path)
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (t=%.3f)\n", result.StepsTaken, result.Time)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return runErr
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, m[name])
	}
	w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tGRID\tDT\tSTEPS\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%d/%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			shapeLabel(run.Points),
			run.Dt,
			run.StepsTaken,
			run.Steps,
			status,
		)
	}

	return w.Flush()
}

func shapeLabel(pts []int) string {
	parts := make([]string, len(pts))
	for i, n := range pts {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, "x")
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, g, phi, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("t: %.3f\n\n", meta.Time)

	_, values := analysis.Profile(g, phi)
	caption := "φ(x)"
	if g.Dim() > 1 {
		caption = "φ along x through the grid centre"
	}
	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()

	s := analysis.Summarize(g, phi)
	fmt.Printf("min: %.4f  max: %.4f  rms: %.4f\n", s.Min, s.Max, s.RMS)
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, g, phi, err := st.LoadField(runID)
	if err != nil {
		return err
	}

	path := outPath
	if svg {
		if path == "" {
			path = runID + ".svg"
		}
		xs, values := analysis.Profile(g, phi)
		doc := export.ProfileSVG(xs, values, 800, 400, "#0077be")
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	}

	if path == "" {
		path = runID + ".png"
	}
	opts := export.DefaultOptions()
	opts.Title = fmt.Sprintf("%s  t=%.2f", meta.Scenario, meta.Time)
	opts.Threshold = threshold

	if slice {
		err = export.RenderSlice(path, g, phi, opts)
	} else {
		err = export.Render(path, g, phi, opts)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, g, phi, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.WriteFieldCSV(os.Stdout, g, phi)
	}
	if err := storage.ExportCSV(outPath, g, phi); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, g, phi, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	data := storage.NewExportData(meta, g, phi)
	if outPath == "" {
		return storage.ExportJSONStdout(data)
	}
	if err := storage.ExportJSON(outPath, data); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, g, phi, err := st.LoadField(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("spatial analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	_, values := analysis.Profile(g, phi)
	ps := analysis.PowerSpectrum(values)
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum of the x profile"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	s := analysis.Summarize(g, phi)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "dominant wavenumber\t%.4f\n", analysis.DominantWavenumber(g, phi))
	fmt.Fprintf(w, "min / max\t%.4f / %.4f\n", s.Min, s.Max)
	fmt.Fprintf(w, "mean\t%.4f\n", s.Mean)
	fmt.Fprintf(w, "rms\t%.4f\n", s.RMS)
	fmt.Fprintf(w, "peak at\t%v\n", formatPos(s.Peak))
	fmt.Fprintf(w, "odd defect\t%.4f\n", analysis.OddDefect(g, phi))
	if g.Dim() == 1 {
		right := analysis.MeanWhere(g, phi, func(x []float64) bool { return x[0] > 0 })
		left := analysis.MeanWhere(g, phi, func(x []float64) bool { return x[0] < 0 })
		fmt.Fprintf(w, "mean x<0 / x>0\t%.4f / %.4f\n", left, right)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if g.Dim() > 1 {
		centers, means := analysis.RadialProfile(g, phi, 40)
		clean := make([]float64, 0, len(means))
		for _, v := range means {
			if !math.IsNaN(v) {
				clean = append(clean, v)
			}
		}
		if len(clean) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(clean,
				asciigraph.Height(8),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("radial mean, r in [0, %.2f]", centers[len(centers)-1])),
			))
		}
	}

	return nil
}

func formatPos(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// benchResolutions lists grid sizes per dimension for the bench command.
var benchResolutions = map[int][]int{
	1: {100, 200, 400, 800},
	2: {50, 100, 150, 200},
	3: {16, 24, 32, 50},
}

func benchScenario(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0], "default")
	if base == nil {
		return fmt.Errorf("unknown scenario: %s (available: %v)", args[0], config.ListScenarios())
	}

	fmt.Printf("benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPOINTS\tSTEPS\tTIME\tSTEPS/SEC\tPOINT-STEPS/SEC")

	for _, n := range benchResolutions[len(base.Points)] {
		cfg := base.Clone()
		cfg.Resize(n)
		cfg.Steps = benchN
		cfg.LogEvery = 0

		exp := experiment.New(cfg, nil)
		if err := exp.Setup([]field.Metric{}); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		var simErr *field.SimulationError
		if err != nil && !errors.As(err, &simErr) {
			return err
		}
		elapsed := time.Since(start)

		size := result.Grid.Size()
		rate := float64(result.StepsTaken) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.3g\n",
			shapeLabel(result.Grid.Shape()), size, result.StepsTaken, elapsed.Round(time.Microsecond), rate, rate*float64(size))
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && configFile == "" {
		return viz.RunMenu()
	}
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for scenario: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, p := range presets {
		cfg := config.GetPreset(args[0], p)
		fmt.Printf("  %-8s %s, %d steps\n", p, shapeLabel(cfg.Points), cfg.Steps)
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tGRID\tL\tDT\tSTEPS\tINITIAL\tTERMS")

	for _, name := range config.ListScenarios() {
		cfg := config.GetPreset(name, "default")
		terms := make([]string, len(cfg.Terms))
		for i, t := range cfg.Terms {
			terms[i] = fmt.Sprintf("%s(%g)", t.Name, t.Strength)
		}
		if len(terms) == 0 {
			terms = []string{"-"}
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\t%s\t%s\n",
			name, shapeLabel(cfg.Points), cfg.Length, cfg.Dt, cfg.Steps, cfg.Initial, strings.Join(terms, " "))
	}

	return w.Flush()
}
