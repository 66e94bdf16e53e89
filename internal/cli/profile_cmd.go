package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wander/internal/cli/formatter"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/repository"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the profile plans fall back on",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(cmd.Context(), app.UserID)
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Create one with: wander profile set")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	cmd.AddCommand(newProfileSetCmd(app))
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		mobility, fitness, risk, activities string
		age                                 int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Profiles.Get(ctx, app.UserID)
			if errors.Is(err, repository.ErrNotFound) {
				p = &domain.UserProfile{UserID: app.UserID}
			} else if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("mobility") {
				p.MobilityLevel = domain.MobilityLevel(mobility)
			}
			if flags.Changed("fitness") {
				p.FitnessLevel = domain.FitnessLevel(fitness)
			}
			if flags.Changed("risk") {
				p.RiskTolerance = risk
			}
			if flags.Changed("activities") {
				p.PreferredActivities = splitList(activities)
			}
			if flags.Changed("age") {
				a := age
				p.Age = &a
			}

			if err := app.Profiles.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&mobility, "mobility", "", "full, limited or assisted")
	cmd.Flags().StringVar(&fitness, "fitness", "", "beginner, intermediate or advanced")
	cmd.Flags().StringVar(&risk, "risk", "", "Risk tolerance, free text")
	cmd.Flags().StringVar(&activities, "activities", "", "Comma-separated preferred activities")
	cmd.Flags().IntVar(&age, "age", 0, "Age in years")

	return cmd
}
