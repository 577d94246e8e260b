package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/view"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a time entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		fail(1, err)
	}

	d := view.Deleter{Entries: api}
	if !deleteYes && !confirm(stdin, os.Stdout, fmt.Sprintf("Delete time entry %d?", id)) {
		fmt.Printf("Time entry %d not deleted (%s).\n", id, d.Cancel())
		return nil
	}

	outcome, err := d.Confirm(cmd.Context(), id)
	if err != nil {
		failAPI(err)
	}
	fmt.Printf("Time entry %d %s.\n", id, outcome)
	return nil
}
