package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return errors.New("serve is not configured")
			}
			return app.Serve(cmd.Context())
		},
	}
}

func newTokenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IssueToken == nil {
				return errors.New("token issuing is not configured")
			}
			tok, err := app.IssueToken(app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}
