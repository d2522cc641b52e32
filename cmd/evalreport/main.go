// Command evalreport scores model outputs and reports the metrics to the
// CognitiveView metrics API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/logger"
	"github.com/spf13/cobra"

	"github.com/datar-psa/evalreport/collector"
	"github.com/datar-psa/evalreport/config"
	"github.com/datar-psa/evalreport/reporting"
)

type app struct {
	cfgFile string
	verbose bool

	out    io.Writer
	errOut io.Writer
	log    *logger.Logger
	cfg    *config.Config

	// connect replaces the Google backends, mainly in tests
	connect func(context.Context) (backends, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{out: os.Stdout, errOut: os.Stderr}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "evalreport",
		Short: "Score LLM outputs and report metrics to CognitiveView",
		Long: `
evalreport runs evaluation scorers against a model output and submits the
resulting metrics to the CognitiveView metrics API.

Credentials are read from the config file or from CV_AUTH_TOKEN and CV_USER_ID.
`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "HCL config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(a.evaluateCmd())
	root.AddCommand(a.submitCmd())
	root.AddCommand(a.fetchCmd())

	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.log = logger.Init("evalreport", false, false, a.errOut)

	cfg, err := config.LoadConfig(a.cfgFile, a.log)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.verbose || cfg.Debug {
		a.log.SetLevel(10)
	} else {
		a.log.SetLevel(0)
	}
	return nil
}

func (a *app) reportingClient() *reporting.Client {
	return reporting.NewClient(
		reporting.WithBaseURL(a.cfg.ApiURL),
		reporting.WithTimeout(a.cfg.Timeout()),
		reporting.WithLogger(a.log),
	)
}

func (a *app) collector() *collector.Collector {
	return collector.New(collector.WithLogger(a.log))
}

func (a *app) requireCredentials() error {
	if a.cfg.AuthToken == "" || a.cfg.UserID == "" {
		return fmt.Errorf("auth_token and user_id are required (set CV_AUTH_TOKEN and CV_USER_ID)")
	}
	return nil
}
