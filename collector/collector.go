// Package collector runs a fixed list of scorers against one input and gathers
// their results into an api.MetricResult.
package collector

import (
	"context"
	"io"
	"math"

	"github.com/google/logger"
	"github.com/pkg/errors"

	"github.com/datar-psa/evalreport/api"
)

// Collector evaluates scorers in order and collects their scores by name.
type Collector struct {
	logger *logger.Logger
}

// Option configures a Collector
type Option func(*Collector)

// WithLogger sets the logger used to report collected scores
func WithLogger(l *logger.Logger) Option {
	return func(c *Collector) {
		c.logger = l
	}
}

// New creates a Collector. Without WithLogger nothing is logged.
func New(opts ...Option) *Collector {
	c := &Collector{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Init("collector", false, false, io.Discard)
	}
	return c
}

// Collect invokes every scorer once, in order, and stores each score under the
// scorer's reported name. A later scorer reporting an already collected name
// overwrites the earlier value.
//
// The first scorer that fails stops collection: Collect returns a nil result and an
// *api.EvaluationError. Scores that are NaN or infinite count as failures.
func (c *Collector) Collect(ctx context.Context, scorers []api.Scorer, in api.ScoreInputs) (api.MetricResult, error) {
	results := make(api.MetricResult, len(scorers))

	for i, scorer := range scorers {
		if err := ctx.Err(); err != nil {
			return nil, &api.EvaluationError{Err: errors.Wrapf(err, "before scorer %d", i)}
		}
		if scorer == nil {
			return nil, &api.EvaluationError{Err: errors.Errorf("scorer %d is nil", i)}
		}

		score := scorer.Score(ctx, in)
		if score.Error != nil {
			return nil, &api.EvaluationError{Metric: score.Name, Err: score.Error}
		}
		if score.Name == "" {
			return nil, &api.EvaluationError{Err: errors.Errorf("scorer %d reported no metric name", i)}
		}
		if math.IsNaN(score.Score) || math.IsInf(score.Score, 0) {
			return nil, &api.EvaluationError{Metric: score.Name, Err: errors.Errorf("invalid score %v", score.Score)}
		}

		if prev, ok := results[score.Name]; ok {
			c.logger.Warningf("metric %s collected twice, replacing %v with %v", score.Name, prev, score.Score)
		}
		results[score.Name] = score.Score
		c.logger.V(1).Infof("metric %s = %v", score.Name, score.Score)
	}

	return results, nil
}

// Collect runs scorers with a Collector that does not log.
func Collect(ctx context.Context, scorers []api.Scorer, in api.ScoreInputs) (api.MetricResult, error) {
	return New().Collect(ctx, scorers, in)
}
