package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/warp/asn-monitor/schedule"
)

func newNextDateCmd(cctx *cliContext) *cobra.Command {
	var (
		anchor string
		kind   string
	)

	cmd := &cobra.Command{
		Use:   "next-date",
		Short: "Compute the next KGB or rank promotion date",
		Long:  "Adds the milestone cadence (2 years for kgb, 4 for pangkat) to the last TMT date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := schedule.ParseMilestoneKind(kind)
			if err != nil {
				return err
			}
			last, ok := schedule.ParseDate(anchor)
			if !ok {
				return fmt.Errorf("invalid --anchor date %q (use YYYY-MM-DD)", anchor)
			}

			next := schedule.ComputeNextDate(last, k.Cadence())
			days := schedule.DaysBetween(schedule.Today(cctx.Clock), next)

			out := cmd.OutOrStdout()
			if cctx.Output == "json" {
				return json.NewEncoder(out).Encode(map[string]any{
					"kind":           k,
					"anchor":         last,
					"next":           next,
					"days_remaining": days,
				})
			}
			fmt.Fprintln(out, next)
			return nil
		},
	}

	cmd.Flags().StringVar(&anchor, "anchor", "", "Last TMT date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&kind, "kind", "kgb", "Milestone kind: kgb or pangkat")
	_ = cmd.MarkFlagRequired("anchor")

	return cmd
}
