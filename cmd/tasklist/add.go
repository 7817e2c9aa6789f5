package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/tasklist/internal/cli"
)

var addCmd = &cobra.Command{
	Use:   "add <name...>",
	Short: "Add a new task",
	Long: `Add a new task. The words of the name are joined with single spaces.

Examples:
  tasklist add "Buy milk"
  tasklist add Buy milk`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	s, err := cliStore()
	if err != nil {
		return err
	}
	defer s.Close()

	res := s.Add(commandContext(cmd), name)
	if !res.OK() {
		return res.Err
	}

	fmt.Printf("%s %s\n", cli.Green(res.Task.ID), res.Task.Name)
	return nil
}
