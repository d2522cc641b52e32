package heuristic

import (
	"context"
	"fmt"
	"regexp"

	"github.com/datar-psa/evalreport/api"
)

// RegexMatchOptions configures the RegexMatch scorer
type RegexMatchOptions struct {
	// Pattern is a regular expression in RE2 syntax
	Pattern string
}

// RegexMatch returns a scorer that checks whether the output matches a regular expression.
// An invalid pattern is reported on every Score call.
func RegexMatch(opts RegexMatchOptions) api.Scorer {
	re, err := regexp.Compile(opts.Pattern)
	return &regexMatchScorer{opts: opts, re: re, err: err}
}

type regexMatchScorer struct {
	opts RegexMatchOptions
	re   *regexp.Regexp
	err  error
}

func (s *regexMatchScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "RegexMatch",
		Metadata: make(map[string]any),
	}

	if s.err != nil {
		result.Error = fmt.Errorf("invalid pattern %q: %w", s.opts.Pattern, s.err)
		return result
	}

	if s.re.MatchString(in.Output) {
		result.Score = 1.0
	}
	result.Metadata["pattern"] = s.opts.Pattern

	return result
}
