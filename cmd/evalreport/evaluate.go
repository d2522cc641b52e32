package main

import (
	"context"
	"encoding/json"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/datar-psa/evalreport"
	"github.com/datar-psa/evalreport/api"
	"github.com/datar-psa/evalreport/gemini"
)

type evaluateFlags struct {
	output           string
	expected         string
	input            string
	context          []string
	retrievalContext []string
	pattern          string
	expectJSON       bool
	heuristicOnly    bool
	submit           bool
}

func (a *app) evaluateCmd() *cobra.Command {
	f := &evaluateFlags{}
	c := &cobra.Command{
		Use:   "evaluate",
		Short: "evalreport evaluate --output text [--expected text] [--input text] [--submit]",
		Long: `
Run the scorers of the configured provider against a model output and print
the collected metrics as JSON. With --submit the metrics are also sent to the
metrics API and the raw response is printed.

LLM and embedding scorers use Gemini on Vertex AI and run only when
google_project (or GOOGLE_PROJECT_ID) is set.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.evaluate(cmd.Context(), f)
		},
	}

	c.Flags().StringVar(&f.output, "output", "", "model output to score")
	c.Flags().StringVar(&f.expected, "expected", "", "reference output")
	c.Flags().StringVar(&f.input, "input", "", "prompt the model answered")
	c.Flags().StringArrayVar(&f.context, "context", nil, "ground truth passage (repeatable)")
	c.Flags().StringArrayVar(&f.retrievalContext, "retrieval-context", nil, "retrieved passage (repeatable)")
	c.Flags().StringVar(&f.pattern, "pattern", "", "regular expression the output must match")
	c.Flags().BoolVar(&f.expectJSON, "expect-json", false, "check that the output is valid JSON")
	c.Flags().BoolVar(&f.heuristicOnly, "heuristic-only", false, "skip scorers that call Google services")
	c.Flags().BoolVar(&f.submit, "submit", false, "submit the metrics after scoring")
	_ = c.MarkFlagRequired("output")

	return c
}

func (a *app) evaluate(ctx context.Context, f *evaluateFlags) error {
	if f.submit {
		if err := a.requireCredentials(); err != nil {
			return err
		}
		if err := a.cfg.Metadata.Validate(); err != nil {
			return err
		}
	}

	in := api.ScoreInputs{
		Output:           f.output,
		Expected:         f.expected,
		Input:            f.input,
		Context:          f.context,
		RetrievalContext: f.retrievalContext,
	}

	var b backends
	if !f.heuristicOnly {
		var (
			closeBackends func()
			err           error
		)
		b, closeBackends, err = a.newBackends(ctx)
		if err != nil {
			return err
		}
		defer closeBackends()
	}

	scorers, err := providerScorers(a.cfg.Metadata.Provider, b, in, scorerOptions{
		moderationThreshold: a.cfg.ModerationThreshold,
		pattern:             f.pattern,
		expectJSON:          f.expectJSON,
	})
	if err != nil {
		return err
	}
	a.log.V(1).Infof("running %d %s scorers", len(scorers), a.cfg.Metadata.Provider)

	results, err := a.collector().Collect(ctx, scorers, in)
	if err != nil {
		return err
	}
	if err := a.printJSON(results); err != nil {
		return err
	}

	if !f.submit {
		return nil
	}
	return a.submitResults(ctx, results)
}

// newBackends connects Gemini and the Natural Language API when a Google
// project is configured. Without one only heuristic scorers run.
// The returned func releases the connections and is never nil.
func (a *app) newBackends(ctx context.Context) (backends, func(), error) {
	noop := func() {}
	if a.connect != nil {
		b, err := a.connect(ctx)
		return b, noop, err
	}
	if a.cfg.GoogleProject == "" {
		a.log.Warning("google_project is not set, running heuristic scorers only")
		return backends{}, noop, nil
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  a.cfg.GoogleProject,
		Location: a.cfg.GoogleRegion,
	})
	if err != nil {
		return backends{}, noop, errors.Wrap(err, "create genai client")
	}
	langClient, err := language.NewClient(ctx)
	if err != nil {
		return backends{}, noop, errors.Wrap(err, "create language client")
	}
	closeClients := func() {
		if err := langClient.Close(); err != nil {
			a.log.Warningf("close language client: %v", err)
		}
	}

	return backends{
		llm:        gemini.NewGenerator(genaiClient, a.cfg.JudgeModel),
		embedder:   gemini.NewEmbedder(genaiClient, a.cfg.EmbeddingModel),
		moderation: gemini.NewGoogleLanguageProvider(langClient),
	}, closeClients, nil
}

func (a *app) submitResults(ctx context.Context, results evalreport.MetricResult) error {
	resp, err := a.reportingClient().Submit(ctx, a.cfg.Metadata, a.cfg.ResourceID, a.cfg.ResourceName, results, a.cfg.Credentials())
	if resp != nil {
		fmt.Fprintln(a.out, resp.Text())
	}
	return err
}

func (a *app) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	_, err = fmt.Fprintln(a.out, string(out))
	return err
}
