package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/auth"
	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/view"
)

// api is set by requireLogin before any entries subcommand runs.
var api *client.Client

var entriesCmd = &cobra.Command{
	Use:               "entries",
	Aliases:           []string{"entry", "e"},
	Short:             "Manage time entries",
	PersistentPreRunE: requireLogin,
}

func init() {
	entriesCmd.AddCommand(listCmd)
	entriesCmd.AddCommand(showCmd)
	entriesCmd.AddCommand(createCmd)
	entriesCmd.AddCommand(editCmd)
	entriesCmd.AddCommand(patchCmd)
	entriesCmd.AddCommand(deleteCmd)
	entriesCmd.AddCommand(reportCmd)
}

// requireLogin admits the command only with a stored, unexpired token and
// builds the API client around it.
func requireLogin(cmd *cobra.Command, args []string) error {
	tok, err := view.Gate{LoadToken: auth.LoadToken}.Check()
	if errors.Is(err, view.ErrUnauthenticated) {
		fail(1, err)
	}
	if err != nil {
		fail(2, err)
	}
	hc := auth.HTTPClient(cmd.Context(), tok, cfg.API.Timeout())
	api = client.New(cfg.API.BaseURL, client.WithHTTPClient(hc), client.WithLogger(logger))
	return nil
}

// parseID parses a positive entry id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
