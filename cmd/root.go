package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/client"
	"github.com/Tiliavir/icicle-admin/internal/config"
	"github.com/Tiliavir/icicle-admin/internal/logging"
)

var (
	flagAPI     string
	flagVerbose bool

	cfg    config.Config
	logger logging.Logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "icicle",
	Short: "icicle – administer time entries on a REST backend",
	Long: `icicle lists, shows, creates, edits and deletes time entries held by a
REST backend. Settings live in ~/.icicle/config.json; the login token in
~/.icicle/auth/token.json.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.EnableTraverseRunHooks = true

	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Backend base URL (overrides config and "+config.EnvBaseURL+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log each request to stderr")

	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		// Load still returns usable defaults.
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	if flagAPI != "" {
		c.API.BaseURL = strings.TrimRight(flagAPI, "/")
	}
	cfg = c
	logger = logging.NewText(os.Stderr, flagVerbose)
	return nil
}

// fail prints err and exits: 1 for user or backend errors, 2 for local
// storage or config errors.
func fail(code int, err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(code)
}

// failAPI reports a backend error in terms the user can act on.
func failAPI(err error) {
	var se *client.StatusError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		fail(1, errors.New("the backend rejected the login token (run `icicle login`)"))
	case errors.As(err, &se):
		fail(1, fmt.Errorf("backend answered %d: %s", se.StatusCode, se.Body))
	default:
		fail(1, err)
	}
}
