package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for tasklist.

To load completions:

Bash:
  $ source <(tasklist completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ tasklist completion bash > /etc/bash_completion.d/tasklist
  # macOS:
  $ tasklist completion bash > $(brew --prefix)/etc/bash_completion.d/tasklist

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ tasklist completion zsh > "${fpath[1]}/_tasklist"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tasklist completion fish | source
  # To load completions for each session, execute once:
  $ tasklist completion fish > ~/.config/fish/completions/tasklist.fish
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Long:  "Generate the autocompletion script for bash.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletionV2(os.Stdout, true)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Long:  "Generate the autocompletion script for zsh.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Long:  "Generate the autocompletion script for fish.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTaskIDs completes the first argument with task ids from the API.
// Each candidate carries the task name as its description.
func completeTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	// Completion output goes to the shell, so logs are dropped.
	logger, err := newLogger(io.Discard, cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := openStore(cfg, logger)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer s.Close()

	res := s.Load(commandContext(cmd))
	if !res.OK() {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, t := range res.Tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), toCompleteLower) {
			completions = append(completions, t.ID+"\t"+t.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
