// Package reporting submits collected metrics to the CognitiveView metrics API
// and fetches the reports it computes from them.
package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/logger"
	"github.com/pkg/errors"

	"github.com/datar-psa/evalreport/api"
)

const (
	// DefaultBaseURL is the production metrics API
	DefaultBaseURL = "https://api.cognitiveview.com"
	// DefaultTimeout bounds a single request when no HTTP client is supplied
	DefaultTimeout = 30 * time.Second

	metricsPath = "/cv/v1/metrics"
)

// Credentials authenticate a single call. They are never stored by the Client.
type Credentials struct {
	// AuthToken is sent verbatim as the Authorization header
	AuthToken string
	// UserID is sent as the X-User-Id header
	UserID string
}

// Report is a report document exactly as returned by the API.
type Report = json.RawMessage

// RawResponse is the unprocessed result of a submission.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// JSON holds Body when it is valid JSON and is nil otherwise
	JSON json.RawMessage
}

// Text returns the body as a string.
func (r *RawResponse) Text() string {
	return string(r.Body)
}

// Decode unmarshals the JSON body into v.
func (r *RawResponse) Decode(v any) error {
	if r.JSON == nil {
		return &DecodeError{Text: r.Text()}
	}
	if err := json.Unmarshal(r.JSON, v); err != nil {
		return &DecodeError{Text: r.Text(), Err: err}
	}
	return nil
}

// Client talks to the metrics API. It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL, e.g. for a staging deployment
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests. Its own timeout applies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger. Request bodies are logged at verbosity 5.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a metrics API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Init("reporting", false, false, io.Discard)
	}
	return c
}

// Submit posts results for a resource to the metrics API.
//
// The response is returned whenever the server answered. A status other than 200
// additionally yields a *RemoteError. A body that is not JSON is not an error;
// RawResponse.JSON is nil in that case.
func (c *Client) Submit(ctx context.Context, metadata Metadata, resourceID, resourceName string, results api.MetricResult, creds Credentials) (*RawResponse, error) {
	payload, err := NewPayload(metadata, resourceID, resourceName, results)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode metrics payload")
	}
	c.logger.V(5).Info("Result Send data: ", string(body))

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+metricsPath, body, creds)
	if err != nil {
		return nil, err
	}

	raw := &RawResponse{
		StatusCode: resp.status,
		Header:     resp.header,
		Body:       resp.body,
	}
	if json.Valid(resp.body) {
		raw.JSON = json.RawMessage(resp.body)
	}

	if resp.status != http.StatusOK {
		return raw, &RemoteError{StatusCode: resp.status, Body: resp.body}
	}
	return raw, nil
}

// Fetch retrieves a previously computed report.
//
// On 200 the body is returned unmodified. Any other status means the report is
// not available (not generated yet, unknown ID): Fetch then returns a nil report,
// the status code and a nil error. Fetch makes a single attempt; see Wait for polling.
func (c *Client) Fetch(ctx context.Context, reportID string, creds Credentials) (Report, int, error) {
	if reportID == "" {
		return nil, 0, errors.New("report id is required")
	}

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+metricsPath+"/"+url.PathEscape(reportID), nil, creds)
	if err != nil {
		return nil, 0, err
	}

	if resp.status != http.StatusOK {
		c.logger.Warningf("report %s not available: status %d", reportID, resp.status)
		return nil, resp.status, nil
	}

	if !json.Valid(resp.body) {
		return nil, resp.status, &DecodeError{Text: string(resp.body)}
	}
	return Report(resp.body), resp.status, nil
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, creds Credentials) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: errors.Wrap(err, "could not create request")}
	}
	req.Header.Set("Authorization", creds.AuthToken)
	req.Header.Set("X-User-Id", creds.UserID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("%s %s: error making http request: %v", method, target, err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer res.Body.Close()

	c.logger.V(1).Infof("%s %s: status code %d", method, target, res.StatusCode)

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: errors.Wrap(err, "error reading response body")}
	}
	c.logger.V(5).Info("Response: body:\n", string(resBody))

	return &response{status: res.StatusCode, header: res.Header, body: resBody}, nil
}
