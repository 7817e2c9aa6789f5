package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/tasklist/internal/cli"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> [name...]",
	Short: "Rename a task",
	Long: `Rename a task. The id may be any unique prefix of a task id.

With -i the current name is opened in $VISUAL or $EDITOR and the first
line of the saved file becomes the new name.

Examples:
  tasklist rename 3f2a "Buy oat milk"
  tasklist rename 3f2a -i`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runRename,
	ValidArgsFunction: completeTaskIDs,
}

var renameInteractive bool

func init() {
	renameCmd.Flags().BoolVarP(&renameInteractive, "interactive", "i", false, "edit the name in $EDITOR")
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	name := strings.Join(args[1:], " ")
	switch {
	case renameInteractive && len(args) > 1:
		return &cli.ValidationError{Message: "cannot combine -i with a new name"}
	case !renameInteractive && len(args) == 1:
		return &cli.ValidationError{Field: "name", Message: "new name is required (or use -i)"}
	}

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

	if renameInteractive {
		current, _ := s.Tasks().Find(id)
		name, err = cli.EditName(current.Name)
		if err != nil {
			return err
		}
		if name == current.Name {
			fmt.Println("No changes made.")
			return nil
		}
	}

	res := s.Update(ctx, id, name)
	if !res.OK() {
		return res.Err
	}

	fmt.Printf("%s renamed to %s\n", id, name)
	return nil
}
