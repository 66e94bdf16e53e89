package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wander/internal/cli/formatter"
	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/domain"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Walk through a chosen excursion",
	}

	cmd.AddCommand(
		newSessionShowCmd(app),
		newSessionStartCmd(app),
		newSessionGuideCmd(app),
		newSessionReflectCmd(app),
		newSessionFinishCmd(app),
	)

	return cmd
}

// ownSession loads a session and hides ones that belong to another user.
func ownSession(ctx context.Context, app *App, id string) (*domain.ExcursionSession, error) {
	sess, err := app.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.UserID != app.UserID {
		return nil, &contract.SessionError{Code: contract.ErrSessionNotFound, Message: "session " + id + " not found"}
	}
	return sess, nil
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show SESSION",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ownSession(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(sess))
			return nil
		},
	}
}

func newSessionStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start SESSION",
		Short: "Begin the guided part of an excursion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ownSession(ctx, app, args[0]); err != nil {
				return err
			}
			sess, err := app.Sessions.Start(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(sess))
			return nil
		},
	}
}

func newSessionGuideCmd(app *App) *cobra.Command {
	var (
		zone   string
		inputs checkInFlags
	)

	cmd := &cobra.Command{
		Use:   "guide SESSION",
		Short: "Record check-ins and get guidance for the next stretch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ownSession(ctx, app, args[0]); err != nil {
				return err
			}
			checkIns, err := inputs.toInputs(zone)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			g, err := withProgress(app, out, "listening to the trail", func() (*composer.Guidance, error) {
				return app.Sessions.Guide(ctx, contract.GuideRequest{
					SessionID: args[0],
					ZoneID:    zone,
					CheckIns:  checkIns,
				})
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatGuidance(g))
			if g.NextAction == composer.NextEndExcursion {
				fmt.Fprintf(out, "\nWhen you are ready: wander session reflect %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&zone, "zone", "", "Zone the check-ins belong to (default current zone)")
	inputs.register(cmd)

	return cmd
}

func newSessionReflectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reflect SESSION",
		Short: "Show reflection questions for a finished excursion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ownSession(ctx, app, args[0]); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r, err := withProgress(app, out, "gathering questions", func() (*composer.Reflection, error) {
				return app.Sessions.Reflect(ctx, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatReflection(r))
			fmt.Fprintf(out, "\nAnswer with: wander session finish %s --scale ID=VALUE --note ID=TEXT\n", args[0])
			return nil
		},
	}
}

func newSessionFinishCmd(app *App) *cobra.Command {
	var inputs checkInFlags

	cmd := &cobra.Command{
		Use:   "finish SESSION",
		Short: "Submit reflection answers and complete the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := ownSession(ctx, app, args[0]); err != nil {
				return err
			}
			answers, err := inputs.toInputs(domain.ReflectionZoneID)
			if err != nil {
				return err
			}
			sess, err := app.Sessions.SubmitReflection(ctx, args[0], answers)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(sess))
			return nil
		},
	}

	inputs.register(cmd)
	return cmd
}

// checkInFlags collects repeated --scale id=value and --note id=text flags.
type checkInFlags struct {
	scales map[string]string
	notes  map[string]string
}

func (f *checkInFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringToStringVar(&f.scales, "scale", nil, "Scale answer as ID=NUMBER, repeatable")
	cmd.Flags().StringToStringVar(&f.notes, "note", nil, "Text answer as ID=TEXT, repeatable")
}

func (f *checkInFlags) toInputs(zone string) ([]contract.CheckInInput, error) {
	out := make([]contract.CheckInInput, 0, len(f.scales)+len(f.notes))
	for _, id := range sortedKeys(f.scales) {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.scales[id]), 64)
		if err != nil {
			return nil, fmt.Errorf("--scale %s: %q is not a number", id, f.scales[id])
		}
		out = append(out, contract.CheckInInput{
			ZoneID: zone, CheckInID: id, Type: string(domain.CheckInScale), Number: &v,
		})
	}
	for _, id := range sortedKeys(f.notes) {
		out = append(out, contract.CheckInInput{
			ZoneID: zone, CheckInID: id, Type: string(domain.CheckInText), Text: f.notes[id],
		})
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
