package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/schedule"
)

// notifyReport is the json output of notify.
type notifyReport struct {
	AsOf        string                  `json:"as_of"`
	HorizonDays int                     `json:"horizon_days"`
	Records     int                     `json:"records"`
	Soon        []schedule.Notification `json:"soon"`
	Overdue     []schedule.Notification `json:"overdue"`
}

func newNotifyCmd(cctx *cliContext) *cobra.Command {
	var (
		file      string
		horizon   int
		asOf      string
		recompute bool
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "List soon and overdue milestones of an export file",
		Long: `Reads a data-asn.json export and prints the milestones due within the
horizon (soon) and those already passed (overdue), each sorted by date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if horizon < 0 {
				return fmt.Errorf("horizon must not be negative, got %d", horizon)
			}

			today := schedule.Today(cctx.Clock)
			if asOf != "" {
				d, ok := schedule.ParseDate(asOf)
				if !ok {
					return fmt.Errorf("invalid --as-of date %q (use YYYY-MM-DD)", asOf)
				}
				today = d
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			records, err := personnel.DecodeRecords(data)
			if err != nil {
				return err
			}
			if recompute {
				for i := range records {
					records[i].Refresh()
				}
			}
			cctx.Log.Debug("Records loaded", "file", file, "count", len(records))

			res := schedule.Classify(records, today, horizon)
			report := notifyReport{
				AsOf:        today.String(),
				HorizonDays: horizon,
				Records:     len(records),
				Soon:        res.Soon,
				Overdue:     res.Overdue,
			}
			if report.HorizonDays <= 0 {
				report.HorizonDays = schedule.DefaultHorizonDays
			}

			out := cmd.OutOrStdout()
			if cctx.Output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return writeNotifyText(out, report)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Export document to read (required)")
	cmd.Flags().IntVar(&horizon, "horizon", schedule.DefaultHorizonDays, "Soon window in days")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluate as if today were this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&recompute, "recompute", false, "Recompute derived dates instead of trusting the file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func writeNotifyText(w io.Writer, r notifyReport) error {
	fmt.Fprintf(w, "As of %s, horizon %d days, %d records\n", r.AsOf, r.HorizonDays, r.Records)

	sections := []struct {
		title string
		items []schedule.Notification
	}{
		{"OVERDUE", r.Overdue},
		{"SOON", r.Soon},
	}
	for _, s := range sections {
		fmt.Fprintf(w, "\n%s (%d)\n", s.title, len(s.items))
		if len(s.items) == 0 {
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tDAYS\tKIND\tNAME\tNIP")
		for _, n := range s.items {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", n.Date, n.DaysRemaining, n.Kind, n.Name, n.EmployeeNumber)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
