package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wander/internal/cli/formatter"
	"github.com/alexanderramin/wander/internal/domain"
)

func newExcursionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "excursion",
		Aliases: []string{"ex"},
		Short:   "Browse saved excursions",
	}

	cmd.AddCommand(
		newExcursionListCmd(app),
		newExcursionFavoriteCmd(app),
	)

	return cmd
}

func newExcursionListCmd(app *App) *cobra.Command {
	var favorites bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your excursions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				list []*domain.Excursion
				err  error
			)
			if favorites {
				list, err = app.Excursions.ListFavorites(cmd.Context(), app.UserID)
			} else {
				list, err = app.Excursions.List(cmd.Context(), app.UserID)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExcursions(list))
			return nil
		},
	}

	cmd.Flags().BoolVar(&favorites, "favorites", false, "Only favorites")
	return cmd
}

func newExcursionFavoriteCmd(app *App) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "favorite EXCURSION",
		Short: "Mark an excursion as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Excursions.SetFavorite(cmd.Context(), app.UserID, args[0], !remove); err != nil {
				return err
			}
			msg := "Added %s to favorites\n"
			if remove {
				msg = "Removed %s from favorites\n"
			}
			fmt.Fprintf(cmd.OutOrStdout(), msg, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove from favorites instead")
	return cmd
}
