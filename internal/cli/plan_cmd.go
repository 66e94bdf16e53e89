package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/wander/internal/cli/formatter"
	"github.com/alexanderramin/wander/internal/contract"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		ctxFlags   contextFlags
		topN       int
		noCompose  bool
		asJSON     bool
		chooseFlag int
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Rank nearby nature spots and compose excursion plans",
		Example: `  wander plan --lat 52.52 --lon 13.405 -m 60 --energy medium --mood stressed --goal relax
  wander plan -m 30 --energy low --mood tired --goal recharge --lat 52.52 --lon 13.405 --choose 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if missing := ctxFlags.missing(cmd.Flags()); len(missing) > 0 {
				if !app.interactive() {
					return missingFlagsError(missing)
				}
				if err := newContextWizard(&ctxFlags, missing).run(); err != nil {
					return err
				}
			}

			req := contract.PlanRequest{
				UserID:      app.UserID,
				Context:     ctxFlags.userContext(),
				TopN:        topN,
				SkipCompose: noCompose,
			}

			resp, err := withProgress(app, out, "looking for nature nearby", func() (*contract.PlanResponse, error) {
				return app.Plan.Plan(ctx, req)
			})
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(out, resp); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, formatter.FormatPlan(resp))
			}

			if chooseFlag == 0 {
				return nil
			}
			if chooseFlag < 1 || chooseFlag > len(resp.PlanOptions) {
				return fmt.Errorf("--choose %d: plan has %d option(s)", chooseFlag, len(resp.PlanOptions))
			}
			sess, err := app.Sessions.Choose(ctx, contract.ChooseRequest{
				UserID: app.UserID,
				Plan:   resp.PlanOptions[chooseFlag-1],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nSession %s created. Start it with: wander session start %s\n", sess.ID, sess.ID)
			return nil
		},
	}

	ctxFlags.register(cmd.Flags())
	cmd.Flags().IntVar(&topN, "top", 0, "Number of ranked spots to return (default from WANDER_TOP_N)")
	cmd.Flags().BoolVar(&noCompose, "no-compose", false, "Only rank spots, do not compose plans")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	cmd.Flags().IntVar(&chooseFlag, "choose", 0, "Save plan option N and open a session for it")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
