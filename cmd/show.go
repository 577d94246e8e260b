package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/timecalc"
	"github.com/Tiliavir/icicle-admin/internal/view"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one time entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	entry := resolveEntry(cmd, args[0])
	printEntry(os.Stdout, *entry)
	return nil
}

// resolveEntry loads the entry idArg names, exiting with status 1 when it
// does not exist.
func resolveEntry(cmd *cobra.Command, idArg string) *model.TimeEntry {
	if _, err := parseID(idArg); err != nil {
		fail(1, err)
	}
	entry, err := view.Resolver{Entries: api}.Resolve(cmd.Context(), idArg)
	if errors.Is(err, view.ErrNotFound) {
		fail(1, err)
	}
	if err != nil {
		failAPI(err)
	}
	return entry
}

func printEntry(w io.Writer, e model.TimeEntry) {
	fmt.Fprintf(w, "Time entry %d\n", e.ID)
	if e.Date != nil {
		fmt.Fprintf(w, "  Date: %s\n", timecalc.FormatDate(*e.Date))
	}
	if e.MinutesWorked != nil {
		fmt.Fprintf(w, "  Worked: %s (%d min)\n", timecalc.FormatMinutes(*e.MinutesWorked), *e.MinutesWorked)
	}
	if e.TaskName != nil {
		fmt.Fprintf(w, "  Task: %s\n", *e.TaskName)
	}
	if e.User != nil {
		fmt.Fprintf(w, "  User: %d\n", e.User.ID)
	}
}
