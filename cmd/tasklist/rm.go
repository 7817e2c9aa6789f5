package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/tasklist/internal/cli"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long: `Delete a task. The id may be any unique prefix of a task id.

Examples:
  tasklist rm 3f2a`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRm,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := cliStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := commandContext(cmd)
	id, err := resolveID(ctx, s, args[0])
	if err != nil {
		return err
	}

	res := s.Delete(ctx, id)
	if !res.OK() {
		return res.Err
	}

	fmt.Printf("%s deleted.\n", cli.Red(id))
	return nil
}
