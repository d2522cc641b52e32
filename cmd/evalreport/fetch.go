package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datar-psa/evalreport/reporting"
)

func (a *app) fetchCmd() *cobra.Command {
	var (
		wait     bool
		attempts int
		interval time.Duration
	)
	c := &cobra.Command{
		Use:   "fetch <report-id>",
		Short: "evalreport fetch <report-id> [--wait]",
		Long: `
Print the report computed for a submission. With --wait the report is polled
until it becomes available or the attempts run out.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireCredentials(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("attempts") {
				attempts = a.cfg.WaitAttempts
			}
			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.WaitInterval()
			}

			client := a.reportingClient()
			var report reporting.Report
			if wait {
				var err error
				report, err = client.Wait(cmd.Context(), args[0], a.cfg.Credentials(), attempts, interval)
				if err != nil {
					return err
				}
			} else {
				var (
					status int
					err    error
				)
				report, status, err = client.Fetch(cmd.Context(), args[0], a.cfg.Credentials())
				if err != nil {
					return err
				}
				if report == nil {
					return fmt.Errorf("report %s is not available (HTTP %d)", args[0], status)
				}
			}

			_, err := fmt.Fprintln(a.out, string(report))
			return err
		},
	}
	c.Flags().BoolVarP(&wait, "wait", "w", false, "poll until the report is available")
	c.Flags().IntVar(&attempts, "attempts", 0, "polling attempts (default from config)")
	c.Flags().DurationVar(&interval, "interval", 0, "delay between polls (default from config)")

	return c
}
