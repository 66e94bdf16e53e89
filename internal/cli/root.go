package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wander/internal/service"
)

const defaultUser = "local"

// App holds the services and hooks the CLI commands run against.
type App struct {
	Plan       service.PlanService
	Locations  service.LocationService
	Profiles   service.ProfileService
	Sessions   service.SessionService
	Excursions service.ExcursionService

	// UserID is set from the persistent --user flag before any command runs.
	UserID string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context) error
	// IssueToken mints a bearer token for the API.
	IssueToken func(userID string) (string, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "wander" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "wander",
		Short:         "Find nearby nature and get guided through it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.UserID == "" {
				app.UserID = defaultUser
			}
		},
	}

	root.PersistentFlags().StringVar(&app.UserID, "user", envOr("WANDER_USER", defaultUser), "User to act as")

	root.AddCommand(
		newPlanCmd(app),
		newLocationCmd(app),
		newProfileCmd(app),
		newSessionCmd(app),
		newExcursionCmd(app),
		newServeCmd(app),
		newTokenCmd(app),
	)

	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
