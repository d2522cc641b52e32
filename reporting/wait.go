package reporting

import (
	"context"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/pkg/errors"
)

// Wait polls Fetch until the report is available. It makes at most attempts
// requests, interval apart. Transport and decode errors stop polling immediately.
// If the report never becomes available Wait returns an error wrapping ErrReportNotReady.
func (c *Client) Wait(ctx context.Context, reportID string, creds Credentials, attempts int, interval time.Duration) (Report, error) {
	if attempts < 1 {
		attempts = 1
	}

	var (
		report     Report
		lastStatus int
	)
	r := retrier.New(retrier.ConstantBackoff(attempts-1, interval), retrier.WhitelistClassifier{ErrReportNotReady})
	err := r.RunCtx(ctx, func(ctx context.Context) error {
		rep, status, err := c.Fetch(ctx, reportID, creds)
		if err != nil {
			return err
		}
		if rep == nil {
			lastStatus = status
			return ErrReportNotReady
		}
		report = rep
		return nil
	})

	switch {
	case err == nil:
		return report, nil
	case errors.Is(err, ErrReportNotReady):
		return nil, errors.Wrapf(ErrReportNotReady, "report %s after %d attempts, last status %d", reportID, attempts, lastStatus)
	default:
		return nil, err
	}
}
