package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/auth"
)

var (
	loginUsername   string
	loginRememberMe bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend and store the token",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Login name (prompted when empty)")
	loginCmd.Flags().BoolVar(&loginRememberMe, "remember-me", false, "Ask for a long-lived token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := loginUsername
	if username == "" {
		u, err := promptLine(stdin, os.Stderr, "Username: ")
		if err != nil {
			fail(1, fmt.Errorf("reading username: %w", err))
		}
		username = u
	}
	password, err := promptPassword(os.Stderr)
	if err != nil {
		fail(1, fmt.Errorf("reading password: %w", err))
	}

	hc := &http.Client{Timeout: cfg.API.Timeout()}
	tok, err := auth.Authenticate(cmd.Context(), hc, cfg.API.BaseURL, auth.Credentials{
		Username:   username,
		Password:   password,
		RememberMe: loginRememberMe,
	})
	if errors.Is(err, auth.ErrBadCredentials) {
		fail(1, err)
	}
	if err != nil {
		fail(1, fmt.Errorf("logging in to %s: %w", cfg.API.BaseURL, err))
	}

	if err := auth.SaveToken(tok); err != nil {
		fail(2, fmt.Errorf("saving token: %w", err))
	}

	fmt.Printf("Logged in to %s as %s.\n", cfg.API.BaseURL, username)
	if !tok.Expiry.IsZero() {
		fmt.Printf("Token valid until %s.\n", tok.Expiry.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := auth.ClearToken(); err != nil {
		fail(2, fmt.Errorf("removing token: %w", err))
	}
	fmt.Println("Logged out.")
	return nil
}
