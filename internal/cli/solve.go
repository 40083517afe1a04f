package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/pipeline"
	"github.com/matzehuels/slideshow/pkg/store"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	seed         uint64 // shuffle seed (config or DefaultSeed when unset)
	workers      int    // candidate search parallelism
	output       string // output file path, "-" for stdout
	format       string // txt, json, dot or svg
	dropUnpaired bool   // drop the last vertical photo instead of failing
	noCache      bool   // skip the result cache entirely
	refresh      bool   // recompute and overwrite the cached result
	save         bool   // record the run in the run store
	showTags     bool   // tag labels in json, dot and svg output
	maxSlides    int    // slide limit for dot and svg output
	dataset      string // dataset name (defaults to the input file name)
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{format: pipeline.FormatTxt}

	cmd := &cobra.Command{
		Use:   "solve [input.txt]",
		Short: "Order photos into a slideshow",
		Long: `Order the photos of an input file into a slideshow and write it out.

Photos are shuffled with the seed, then placed greedily: each step appends the
remaining photo most similar to the last one placed. Vertical photos are
paired into shared slides as they are placed.

Without an input file, an interactive picker lists the *.txt datasets in the
configured data directory.

Results are cached by input content and seed, so re-solving the same input is
instant. Use --refresh to recompute.

Examples:
  slideshow solve a_example.txt
  slideshow solve c_memorable_moments.txt --seed 7 -f json -o moments.json
  slideshow solve b_lovely_landscapes.txt --save`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDatasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			} else {
				d, err := pickDataset(c.dataDir())
				if err != nil {
					return err
				}
				if d == nil {
					printInfo("No dataset selected")
					return nil
				}
				input = d.Path
			}
			return c.runSolve(cmd.Context(), cmd, input, opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "shuffle seed (default from config, then 42)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel search workers (default GOMAXPROCS)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, "-" for stdout (default derived from input)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: txt, json, dot, svg")
	cmd.Flags().BoolVar(&opts.dropUnpaired, "drop-unpaired", false, "drop the last vertical photo when the vertical count is odd")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the run to the run history")
	cmd.Flags().BoolVar(&opts.showTags, "tags", false, "include tag labels in json, dot and svg output")
	cmd.Flags().IntVar(&opts.maxSlides, "max-slides", 0, "slides drawn in dot and svg output (default 200)")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset name for json output and saved runs")

	return cmd
}

// runSolve loads the input, solves it and writes the result.
func (c *CLI) runSolve(ctx context.Context, cmd *cobra.Command, input string, opts solveOpts) error {
	prog := newProgress(c.Logger)

	in, err := sio.ImportInput(input)
	if err != nil {
		return err
	}
	st := in.Stats()
	c.Logger.Debug("loaded input",
		"photos", st.Photos,
		"horizontal", st.Horizontal,
		"vertical", st.Vertical,
		"tags", st.Tags)

	dataset := opts.dataset
	if dataset == "" {
		dataset = datasetName(input)
	}

	popts := c.pipelineOptions()
	if cmd.Flags().Changed("seed") {
		popts.Seed = opts.seed
	}
	if cmd.Flags().Changed("workers") {
		popts.Workers = opts.workers
	}
	popts.DropUnpaired = opts.dropUnpaired
	popts.Refresh = opts.refresh

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %d photos...", st.Photos))
	popts.Reporter = newProgressReporter(c.Logger, spinner)
	spinner.Start()

	result, err := runner.Execute(ctx, in, popts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		if errs.Is(err, errs.ErrCodeUnpairedVertical) {
			printDetail("Use --drop-unpaired to leave one vertical photo out")
		}
		return fmt.Errorf("solve: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := pipeline.Render(ctx, result, opts.format, pipeline.RenderOptions{
		Dataset:   dataset,
		MaxSlides: opts.maxSlides,
		ShowTags:  opts.showTags,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = defaultOutputPath(input, opts.format)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	prog.done(fmt.Sprintf("Solved %d photos", len(result.Input.Photos)))
	printSuccess("Slideshow for %s", StyleHighlight.Render(dataset))
	printFile(outputPath)
	printStats(len(result.Input.Photos), len(result.Slides), result.Score, result.CacheInfo.ResultHit)
	if result.Dropped >= 0 {
		printWarning("Dropped unpaired vertical photo %d", result.Dropped)
	}

	if opts.save {
		if err := c.saveRun(ctx, dataset, result); err != nil {
			return err
		}
	}

	if opts.format == pipeline.FormatTxt {
		printNewline()
		check := fmt.Sprintf("%s score %s %s", appName, input, outputPath)
		if result.Dropped >= 0 {
			check += " --drop-unpaired"
		}
		printNextStep("Check the score", check)
	}
	return nil
}

// saveRun records result in the configured run store.
func (c *CLI) saveRun(ctx context.Context, dataset string, result *pipeline.Result) error {
	if err := errs.ValidateDatasetName(dataset); err != nil {
		return err
	}
	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	run := store.NewRun(dataset, result)
	if err := st.Save(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	printDetail("Saved run %s", run.ID)
	return nil
}

// datasetName derives a dataset name from an input path ("a_example.txt" -> "a_example").
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// defaultOutputPath places the output next to the input. Submissions get the
// ".out" extension so they never overwrite a .txt input.
func defaultOutputPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if format == pipeline.FormatTxt {
		return base + ".out"
	}
	return base + "." + format
}
