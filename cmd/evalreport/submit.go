package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/datar-psa/evalreport"
	"github.com/datar-psa/evalreport/reporting"
)

func (a *app) submitCmd() *cobra.Command {
	var metricsFile string
	c := &cobra.Command{
		Use:   "submit",
		Short: "evalreport submit --metrics metrics.json",
		Long: `
Submit previously collected metrics. The file holds a JSON object mapping
metric names to scores, as printed by "evalreport evaluate", or a complete
metrics payload whose scores are resubmitted with the configured metadata.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireCredentials(); err != nil {
				return err
			}
			results, err := readMetrics(metricsFile)
			if err != nil {
				return err
			}
			return a.submitResults(cmd.Context(), results)
		},
	}
	c.Flags().StringVarP(&metricsFile, "metrics", "m", "", "JSON file with metric scores")
	_ = c.MarkFlagRequired("metrics")

	return c
}

func readMetrics(filename string) (evalreport.MetricResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read metrics %s", filename)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrapf(err, "parse metrics %s", filename)
	}
	if _, ok := fields["metric_data"]; ok {
		var payload reporting.Payload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, errors.Wrapf(err, "parse payload %s", filename)
		}
		return payload.Scores, nil
	}

	var results evalreport.MetricResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errors.Wrapf(err, "parse metrics %s", filename)
	}
	return results, nil
}
