package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/slideshow/pkg/errors"
	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/pipeline"
	"github.com/matzehuels/slideshow/pkg/slides"
	"github.com/matzehuels/slideshow/pkg/slides/score"
)

// scoreCommand creates the score command for checking a submission.
func (c *CLI) scoreCommand() *cobra.Command {
	var (
		transitions  bool
		dropUnpaired bool
	)

	cmd := &cobra.Command{
		Use:   "score <input.txt> <submission>",
		Short: "Validate and score a submission",
		Long: `Validate a submission against its input and print its score.

The submission must use every photo of the input exactly once, with
horizontal photos alone on a slide and vertical photos in pairs. The first
broken rule is reported with the offending photo.

With --drop-unpaired the last vertical photo is left out of the expected set
when the vertical count is odd, matching "solve --drop-unpaired".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScore(cmd.Context(), args[0], args[1], transitions, dropUnpaired)
		},
	}

	cmd.Flags().BoolVar(&transitions, "transitions", false, "print the score of every transition")
	cmd.Flags().BoolVar(&dropUnpaired, "drop-unpaired", false, "expect the last vertical photo to be missing when the vertical count is odd")

	return cmd
}

func (c *CLI) runScore(ctx context.Context, inputPath, submissionPath string, transitions, dropUnpaired bool) error {
	in, err := sio.ImportInput(inputPath)
	if err != nil {
		return err
	}
	order, err := sio.ImportSubmission(submissionPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	total, show, err := runner.Score(ctx, in, order, pipeline.Options{
		DropUnpaired: dropUnpaired,
		Logger:       c.Logger,
	})
	if err != nil {
		if v, ok := errs.AsViolation(err); ok {
			printError("Invalid submission: %s", v)
			return fmt.Errorf("score %s: %w", submissionPath, err)
		}
		return err
	}

	printSuccess("Score %s", StyleNumber.Render(fmt.Sprint(total)))
	printKeyValue("Photos", fmt.Sprint(countPhotos(show)))
	printKeyValue("Slides", fmt.Sprint(len(show)))
	if transitions {
		for i, t := range score.Transitions(show) {
			printDetail("%d -> %d: %d", i, i+1, t)
		}
	}
	return nil
}

func countPhotos(show []slides.Slide) int {
	n := 0
	for _, s := range show {
		n += len(s.IDs())
	}
	return n
}
