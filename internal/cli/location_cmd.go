package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wander/internal/cli/formatter"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/service"
)

func newLocationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "location",
		Aliases: []string{"loc"},
		Short:   "Share and browse community nature spots",
	}

	cmd.AddCommand(
		newLocationAddCmd(app),
		newLocationListCmd(app),
	)

	return cmd
}

func newLocationAddCmd(app *App) *cobra.Command {
	var in service.LocationInput
	var tags string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a nature spot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.Tags = splitList(tags)
			loc, err := app.Locations.Add(cmd.Context(), app.UserID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) with tags %s\n",
				loc.Name, loc.ID, strings.Join(loc.Tags, ", "))
			return nil
		},
	}

	cmd.Flags().Float64Var(&in.Latitude, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&in.Longitude, "lon", 0, "Longitude")
	cmd.Flags().StringVar(&in.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags, e.g. water,quiet,trees")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func newLocationListCmd(app *App) *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List community nature spots",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				locs []*domain.CustomLocation
				err  error
			)
			if mine {
				locs, err = app.Locations.ListMine(cmd.Context(), app.UserID)
			} else {
				locs, err = app.Locations.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLocations(locs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Only spots you added")

	return cmd
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
