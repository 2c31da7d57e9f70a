package main

import (
	"os"

	"github.com/san-kum/fluxsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	length     float64
	points     int
	mass       float64
	coupling   float64
	initName   string
	velocity   float64
	logEvery   int
	quiet      bool
	renderPNG  bool
	// output path for render and export commands
	outPath   string
	slice     bool
	svg       bool
	threshold float64
	benchN    int
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "default", "scenario preset")
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "time step")
	cmd.Flags().IntVar(&steps, "steps", 500, "number of steps")
	cmd.Flags().Float64Var(&length, "length", 20, "domain length L")
	cmd.Flags().IntVar(&points, "points", 200, "grid points per axis")
	cmd.Flags().Float64Var(&mass, "mass", 1, "mass m")
	cmd.Flags().Float64Var(&coupling, "coupling", 1, "cubic coupling g")
	cmd.Flags().StringVar(&initName, "initial", "kink", "initial condition")
	cmd.Flags().Float64Var(&velocity, "velocity", 0.3, "initial velocity (kink, uniform)")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluxsim",
		Short: "nonlinear field integrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluxsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario and store the final field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().IntVar(&logEvery, "log-every", 100, "progress log interval in steps (0 disables)")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "disable structured logging")
	runCmd.Flags().BoolVar(&renderPNG, "render", false, "also render field.png into the run directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the x profile of a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render the final field of a run to PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <run_id>.png)")
	renderCmd.Flags().BoolVar(&slice, "slice", false, "render the z midplane of a 3D run")
	renderCmd.Flags().BoolVar(&svg, "svg", false, "write the x profile as SVG instead")
	renderCmd.Flags().Float64Var(&threshold, "threshold", 0.2, "3D scatter cut as a fraction of the peak")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the final field to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the final field to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spatial spectrum and symmetry analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark a scenario at several resolutions",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&benchN, "steps", 50, "steps per resolution")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE:  listScenarios,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, renderCmd, exportCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, benchCmd, liveCmd, presetsCmd, scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
