package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warp/asn-monitor/pkg/logger"
	"github.com/warp/asn-monitor/schedule"
)

// rootOptions holds global flags.
type rootOptions struct {
	LogLevel string
	Output   string
}

// cliContext carries what every subcommand needs.
type cliContext struct {
	Log    logger.Logger
	Clock  schedule.Clock
	Output string
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithClock(schedule.SystemClock{})
}

// newRootCommandWithClock builds the command tree against clock, so tests
// can pin "today".
func newRootCommandWithClock(clock schedule.Clock) *cobra.Command {
	opts := &rootOptions{}
	cctx := &cliContext{Clock: clock}

	cmd := &cobra.Command{
		Use:     "asnctl",
		Short:   "KGB and rank promotion schedules for ASN records",
		Long:    "asnctl computes salary increment (KGB) and rank promotion dates and lists\nupcoming or overdue milestones from an exported data-asn.json document.",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Output {
			case "text", "json":
			default:
				return fmt.Errorf("invalid output format %q (use text or json)", opts.Output)
			}
			cctx.Output = opts.Output
			cctx.Log = logger.NewLogger(opts.LogLevel)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.Output, "output", "o", "text", "output format (text, json)")

	cmd.AddCommand(newNotifyCmd(cctx))
	cmd.AddCommand(newNextDateCmd(cctx))

	return cmd
}
