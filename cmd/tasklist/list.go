package main

import (
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"

	"github.com/jacksmith/tasklist/internal/cli"
	"github.com/jacksmith/tasklist/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List the tasks held by the API, in server order.

Examples:
  tasklist list
  tasklist list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the list as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := cliStore()
	if err != nil {
		return err
	}
	defer s.Close()

	res := s.Load(commandContext(cmd))
	if !res.OK() {
		return res.Err
	}

	if listJSON {
		out := struct {
			Tasks model.Collection `json:"tasks"`
		}{Tasks: res.Tasks}
		if out.Tasks == nil {
			out.Tasks = model.Collection{}
		}
		if err := json.MarshalWrite(os.Stdout, out, jsontext.WithIndent("  ")); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	if len(res.Tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	table := cli.NewTable()
	table.SetMaxWidth(1, cli.DefaultMaxNameWidth)
	for _, t := range res.Tasks {
		table.AddRow(cli.Gray(t.ID), t.Name)
	}
	table.Render(os.Stdout)
	return nil
}
