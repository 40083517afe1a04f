package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/store"
)

// runsCommand creates the run history command.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse saved runs",
		Long: `Browse the runs saved with 'solve --save' or through the HTTP API.

Runs live in ~/.config/slideshow/runs/ unless the config selects the mongo
store.`,
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsDeleteCommand())

	return cmd
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				runs, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No saved runs")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), runsTable(runs))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 for all)")
	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show a saved run",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeRunIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				run, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output != "-" {
					printRun(run)
				}
				if output == "" {
					return nil
				}
				return writeRunOrder(cmd.OutOrStdout(), output, run)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `write the slide order as a submission ("-" for stdout)`)
	return cmd
}

func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <id>",
		Short:             "Delete a saved run",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeRunIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted run %s", args[0])
				return nil
			})
		},
	}
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

// runsTable renders runs as a bordered table.
func runsTable(runs []*store.Run) string {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID[:min(8, len(r.ID))],
			r.Dataset,
			fmt.Sprint(r.Seed),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Photos),
			r.Duration.Round(time.Millisecond).String(),
			formatRelativeTime(r.CreatedAt),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Dataset", "Seed", "Score", "Photos", "Time", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 3:
				return StyleNumber
			case col == 0 || col >= 5:
				return StyleDim
			default:
				return StyleValue
			}
		})
	return t.Render()
}

func printRun(r *store.Run) {
	printKeyValue("ID", r.ID)
	printKeyValue("Dataset", r.Dataset)
	printKeyValue("Score", StyleNumber.Render(fmt.Sprint(r.Score)))
	printKeyValue("Seed", fmt.Sprint(r.Seed))
	printKeyValue("Photos", fmt.Sprint(r.Photos))
	printKeyValue("Slides", fmt.Sprint(len(r.Slides)))
	printKeyValue("Time", r.Duration.String())
	printKeyValue("Created", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue("Input", r.InputHash[:min(12, len(r.InputHash))])
}

func writeRunOrder(stdout io.Writer, output string, r *store.Run) error {
	if output == "-" {
		return sio.WriteOrder(stdout, r.Slides)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := sio.WriteOrder(f, r.Slides); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(output)
	return nil
}
