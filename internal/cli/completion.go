package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slideshow/pkg/store"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for slideshow.

To load completions:

Bash:
  $ source <(slideshow completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ slideshow completion bash > /etc/bash_completion.d/slideshow
  # macOS:
  $ slideshow completion bash > $(brew --prefix)/etc/bash_completion.d/slideshow

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ slideshow completion zsh > "${fpath[1]}/_slideshow"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ slideshow completion fish | source

  # To load completions for each session, execute once:
  $ slideshow completion fish > ~/.config/fish/completions/slideshow.fish

PowerShell:
  PS> slideshow completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> slideshow completion powershell > slideshow.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeDatasets completes input files for solve.
func completeDatasets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"txt", "in"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeRunIDs completes saved run IDs, annotated with their dataset and
// score. Store errors yield no suggestions.
func (c *CLI) completeRunIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := c.loadConfig(); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	_ = c.withStore(cmd.Context(), func(st store.Store) error {
		runs, err := st.List(cmd.Context(), 0)
		if err != nil {
			return err
		}
		for _, r := range runs {
			if strings.HasPrefix(r.ID, toComplete) {
				out = append(out, fmt.Sprintf("%s\t%s (score %d)", r.ID, r.Dataset, r.Score))
			}
		}
		return nil
	})
	return out, cobra.ShellCompDirectiveNoFileComp
}
