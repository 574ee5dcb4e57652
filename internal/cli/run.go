/*
PURPOSE:
  Defines the 'run' subcommand.
  Measures one algorithm over a size range and plots the result.

REQUIREMENTS:
  User-specified:
  - Run the measurement sweep.
  - Specific flags for overrides.
  - Show progress, clamp and halt notices, and the chart.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config (only flags the user actually set).
  - CSV/JSONL sinks and metrics hang off the runner as observers.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Runner.Run()
  - Uses: internal/config, internal/chart, internal/metrics, internal/output

ERROR HANDLING:
  - Returns error if config load, validation or the run itself fails.
  - Halts are reported to the user, not returned.
  - Chart and metrics failures are logged and suppressed.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Validate -> Engine.Run -> Report.

USAGE:
  complexity-runner run --algorithm quick-sort --order descending --min 100 --max 5000 --step 100

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go
  - internal/cli/analyze.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/chart"
	"github.com/daryltucker/complexity-runner/internal/config"
	"github.com/daryltucker/complexity-runner/internal/engine"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/daryltucker/complexity-runner/internal/metrics"
	"github.com/daryltucker/complexity-runner/internal/model"
	"github.com/daryltucker/complexity-runner/internal/output"
)

var runFlags = struct {
	algorithm, order                string
	min, max, step                  int
	seed                            uint64
	maxElements, maxDepth           int
	outputDir, csv, json, chartFile string
	metricsFile                     string
	width, height                   int
}{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure an algorithm over a range of input sizes",
	Long: `Times the selected algorithm for every input size from --min to --max,
stepping by --step. Each size gets freshly generated input in the chosen order.

A run stops early (keeping what was measured) when input generation runs out
of memory or the recursion limit is reached. Fibonacci Recursive runs are
limited to a max size of 40.

Samples are written to CSV and JSON Lines files and the time/size chart is
saved as an image (PNG, JPG, SVG or PDF by file extension).`,
	Example: `  # Run with defaults (uses complexity.yaml if present)
  complexity-runner run

  # Quick sort on reversed input
  complexity-runner run -a "Quick Sort" --order descending --min 100 --max 5000 --step 100

  # Reproducible input and an SVG chart
  complexity-runner run -a merge-sort --seed 42 --chart merge.svg

  # Export prometheus metrics
  complexity-runner run -a bubble-sort --max 3000 --metrics run.prom`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRunFlags(cmd, cfg)

		p, err := cfg.RunParameters()
		if err != nil {
			return err
		}
		_, err = executeRun(cmd.OutOrStdout(), cfg, p)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runFlags.algorithm, "algorithm", "a", "", "Algorithm name or slug (see list-algorithms)")
	f.StringVar(&runFlags.order, "order", "", "Input order: random, ascending, descending, almost-sorted")
	f.IntVar(&runFlags.min, "min", 0, "Minimum input size")
	f.IntVar(&runFlags.max, "max", 0, "Maximum input size")
	f.IntVar(&runFlags.step, "step", 0, "Step between input sizes")
	f.Uint64Var(&runFlags.seed, "seed", 0, "Random seed for input generation (0 = random)")
	f.IntVar(&runFlags.maxElements, "max-elements", 0, "Largest array the generator may allocate")
	f.IntVar(&runFlags.maxDepth, "max-depth", 0, "Recursion limit for recursive algorithms")
	f.StringVarP(&runFlags.outputDir, "output-dir", "o", "", "Output directory for results")
	f.StringVar(&runFlags.csv, "csv", "", "CSV results file name (empty in config disables)")
	f.StringVar(&runFlags.json, "json", "", "JSON Lines results file name")
	f.StringVar(&runFlags.chartFile, "chart", "", "Chart image file name")
	f.StringVar(&runFlags.metricsFile, "metrics", "", "Prometheus text metrics file name")
	f.IntVar(&runFlags.width, "width", 0, "Chart width in pixels")
	f.IntVar(&runFlags.height, "height", 0, "Chart height in pixels")
}

// applyRunFlags copies explicitly set flags over cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("algorithm", func() { cfg.Algorithm = runFlags.algorithm })
	set("order", func() { cfg.Order = runFlags.order })
	set("min", func() { cfg.MinSize = runFlags.min })
	set("max", func() { cfg.MaxSize = runFlags.max })
	set("step", func() { cfg.Step = runFlags.step })
	set("seed", func() { cfg.Seed = runFlags.seed })
	set("max-elements", func() { cfg.MaxElements = runFlags.maxElements })
	set("max-depth", func() { cfg.MaxRecursionDepth = runFlags.maxDepth })
	set("output-dir", func() { cfg.OutputDir = runFlags.outputDir })
	set("csv", func() { cfg.CSVFile = runFlags.csv })
	set("json", func() { cfg.JSONFile = runFlags.json })
	set("chart", func() { cfg.ChartFile = runFlags.chartFile })
	set("metrics", func() { cfg.MetricsFile = runFlags.metricsFile })
	set("width", func() { cfg.ChartWidth = runFlags.width })
	set("height", func() { cfg.ChartHeight = runFlags.height })
}

// executeRun performs one run with cfg's outputs and reports it on out.
func executeRun(out io.Writer, cfg *config.Config, p model.RunParameters) (*model.RunResult, error) {
	console := output.NewConsole(out)

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if desc, err := algo.NewRegistry(0).Describe(p.Algorithm); err == nil {
		console.Box(desc)
	}

	recorder := metrics.NewRecorder()
	opts := []engine.Option{
		engine.WithProgress(console),
		engine.WithObserver(recorder),
	}

	if path := cfg.OutputPath(cfg.CSVFile); path != "" {
		cw, err := output.NewCSVWriter(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open csv output: %w", err)
		}
		defer cw.Close()
		opts = append(opts, engine.WithObserver(engine.NewSinkObserver(cw)))
	}

	var jw *output.JSONWriter
	if path := cfg.OutputPath(cfg.JSONFile); path != "" {
		var err error
		jw, err = output.NewJSONWriter(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open json output: %w", err)
		}
		defer jw.Close()
		opts = append(opts, engine.WithObserver(engine.NewSinkObserver(jw)))
	}

	gen := input.New(input.WithSeed(cfg.Seed), input.WithMaxElements(cfg.MaxElements))
	runner := engine.New(algo.NewRegistry(cfg.MaxRecursionDepth), gen, opts...)

	res, err := runner.Run(p)
	if err != nil {
		return nil, err
	}

	report(console, cfg, res)

	if jw != nil {
		if err := jw.WriteResult(res); err != nil {
			output.Logger.Error("Failed to write run summary", "error", err)
		}
	}
	if path := cfg.OutputPath(cfg.MetricsFile); path != "" {
		if err := recorder.WriteFile(path); err != nil {
			output.Logger.Error("Failed to write metrics", "error", err)
		} else {
			console.Info("Metrics written to " + path)
		}
	}
	return res, nil
}

// report prints the outcome of res and draws the chart.
func report(console *output.Console, cfg *config.Config, res *model.RunResult) {
	fmt.Fprintln(console)
	if res.Adjustment != nil {
		console.Warning(res.Adjustment.Reason)
	}
	if res.Halt != nil {
		console.Error(haltMessage(*res.Halt))
	} else {
		console.Success(fmt.Sprintf("Measured %d sizes", len(res.Samples)))
	}

	if !res.Chartable() {
		console.Warning("Not enough data points to draw chart")
		return
	}
	path := cfg.OutputPath(cfg.ChartFile)
	if path == "" {
		return
	}
	if err := chart.SaveFile(path, res.Samples, res.Params.Algorithm.String(), cfg.ChartWidth, cfg.ChartHeight); err != nil {
		output.Logger.Error("Failed to render chart", "path", path, "error", err)
		return
	}
	console.Success("Chart saved to " + path)
}

func haltMessage(h model.Halt) string {
	switch h.Reason {
	case model.HaltOutOfMemory:
		return fmt.Sprintf("Out of memory at size %d. Analysis stopped.", h.Size)
	case model.HaltStackExhausted:
		return fmt.Sprintf("Stack overflow at size %d. Analysis stopped.", h.Size)
	default:
		return fmt.Sprintf("Analysis stopped at size %d: %s", h.Size, h.Reason)
	}
}
