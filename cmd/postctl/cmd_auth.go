package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arturoeanton/postpilot/internal/app"
)

// authURLCmd prints the consent URL
var authURLCmd = &cobra.Command{
	Use:   "auth-url",
	Short: "Print the LinkedIn authorization URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.Auth.AuthorizationURL())
			return nil
		})
	},
}

// exchangeCmd completes the login with a code copied from the callback URL
var exchangeCmd = &cobra.Command{
	Use:   "exchange <code>",
	Short: "Exchange an authorization code and store the token",
	Long: `Exchange an authorization code for an access token.

The code is the "code" query parameter LinkedIn appends to the redirect URI.
The token is stored only when the member identity could be resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			tok, err := a.Auth.ExchangeCode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "authenticated as %s\n", tok.UserID)
			return nil
		})
	},
}

// statusCmd reports whether the stored token still works
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the stored token is valid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			return printJSON(cmd, map[string]bool{"authenticated": a.Auth.Validate(cmd.Context())})
		})
	},
}
