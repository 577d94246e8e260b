package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/auth"
	"github.com/Tiliavir/icicle-admin/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend and login status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()

	fmt.Printf("Backend: %s\n", cfg.API.BaseURL)

	tok, err := auth.LoadToken()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if tok == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	if sub := auth.Subject(tok); sub != "" {
		fmt.Printf("Logged in as: %s\n", sub)
	}
	switch {
	case tok.Expiry.IsZero():
		fmt.Println("Token expiry: unknown")
	case !tok.Valid():
		fmt.Printf("Token expired %s ago. Run `icicle login`.\n", now.Sub(tok.Expiry).Round(time.Minute))
		return nil
	default:
		fmt.Printf("Token expires in: %s\n", tok.Expiry.Sub(now).Round(time.Minute))
	}

	// One cheap request tells whether the backend is reachable and accepts the token.
	c := client.New(cfg.API.BaseURL,
		client.WithHTTPClient(auth.HTTPClient(cmd.Context(), tok, cfg.API.Timeout())),
		client.WithLogger(logger))
	size := 1
	res, err := c.Query(cmd.Context(), client.QueryOptions{Size: &size})
	if err != nil {
		fmt.Printf("Backend check failed: %v\n", err)
		return nil
	}
	if total, ok := res.TotalCount(); ok {
		fmt.Printf("Time entries: %d\n", total)
	} else {
		fmt.Println("Backend reachable.")
	}
	return nil
}
