package slideapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"slidedeck/internal/logging"
	"slidedeck/internal/services"
)

const (
	// DefaultTimeout bounds every request issued by the client.
	DefaultTimeout = 30 * time.Second

	// FileField is the multipart field carrying the presentation.
	FileField = "file"

	// RequestIDHeader carries the correlation identifier to the server.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 1 << 20
)

// HTTPDoer describes the HTTP client used to reach the service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config captures the endpoint locations.
type Config struct {
	ExtractURL  string
	FeedbackURL string
	Timeout     time.Duration
}

// Client talks to the title extraction and feedback endpoints.
type Client struct {
	cfg    Config
	http   HTTPDoer
	logger *slog.Logger
	newID  func() string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the logger used for request/response events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDs overrides how correlation identifiers are generated (useful for tests).
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &Client{
		cfg: Config{
			ExtractURL:  strings.TrimSpace(cfg.ExtractURL),
			FeedbackURL: strings.TrimSpace(cfg.FeedbackURL),
			Timeout:     timeout,
		},
		http:   &http.Client{Timeout: timeout},
		logger: logging.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "slideapi")
	return client
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.cfg.Timeout
}

type titlesResponse struct {
	Titles string `json:"titles"`
}

type feedbackRequest struct {
	Titles         string `json:"titles"`
	TargetAudience string `json:"targetAudience"`
}

type feedbackResponse struct {
	Feedback string `json:"feedback"`
}

// ExtractTitles uploads the presentation as the multipart field "file" and
// returns the newline-delimited titles exactly as the server produced them.
func (c *Client) ExtractTitles(ctx context.Context, filename string, content []byte) Result[string] {
	body, contentType, err := encodeUpload(filename, content)
	if err != nil {
		return failed[string](&Failure{Kind: services.KindServer, TransportMessage: err.Error(), Cause: err})
	}
	outcome := c.post(ctx, "extract", c.cfg.ExtractURL, contentType, body)
	if outcome.Failure != nil {
		return failed[string](outcome.Failure)
	}
	var parsed titlesResponse
	if failure := decodeBody(outcome.Body, &parsed); failure != nil {
		return failed[string](failure)
	}
	return ok(parsed.Titles)
}

// GetFeedback posts the titles and audience as JSON and returns the prose feedback.
func (c *Client) GetFeedback(ctx context.Context, titles, audience string) Result[string] {
	payload, err := json.Marshal(feedbackRequest{Titles: titles, TargetAudience: audience})
	if err != nil {
		return failed[string](&Failure{Kind: services.KindServer, TransportMessage: err.Error(), Cause: err})
	}
	outcome := c.post(ctx, "feedback", c.cfg.FeedbackURL, "application/json", payload)
	if outcome.Failure != nil {
		return failed[string](outcome.Failure)
	}
	var parsed feedbackResponse
	if failure := decodeBody(outcome.Body, &parsed); failure != nil {
		return failed[string](failure)
	}
	return ok(parsed.Feedback)
}

// post issues one request and classifies the result. It never retries.
func (c *Client) post(ctx context.Context, op, url, contentType string, body []byte) Outcome {
	reqID := c.newID()
	ctx = services.WithRequestID(ctx, reqID)
	logger := logging.WithContext(ctx, c.logger)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Error("build request failed", logging.String("op", op), logging.Error(err))
		return Outcome{Failure: &Failure{
			Kind:             services.KindServer,
			TransportMessage: err.Error(),
			Cause:            services.Wrap(services.ErrConfiguration, "slideapi", op, "build request", err),
		}}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	logger.Info("request sent",
		logging.String("op", op),
		logging.String("url", url),
		logging.Int("content_length", len(body)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("no response received",
			logging.String("op", op),
			logging.Error(err),
			logging.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		return Outcome{Failure: &Failure{Kind: services.KindNetwork, TransportMessage: err.Error(), Cause: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		failure := c.readFailure(resp)
		logger.Warn("request failed",
			logging.String("op", op),
			logging.Int("status", resp.StatusCode),
			logging.String("detail", failure.Detail),
			logging.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		return Outcome{Status: resp.StatusCode, Failure: failure}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("response body truncated",
			logging.String("op", op),
			logging.Error(err),
			logging.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		return Outcome{Status: resp.StatusCode, Failure: &Failure{Kind: services.KindNetwork, TransportMessage: err.Error(), Cause: err}}
	}

	logger.Info("response received",
		logging.String("op", op),
		logging.Int("status", resp.StatusCode),
		logging.Int("bytes", len(raw)),
		logging.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return Outcome{Status: resp.StatusCode, Body: raw}
}

func (c *Client) readFailure(resp *http.Response) *Failure {
	failure := &Failure{
		Kind:   services.KindServer,
		Status: resp.StatusCode,
		Cause:  fmt.Errorf("http %d", resp.StatusCode),
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		failure.TransportMessage = err.Error()
		return failure
	}
	failure.Detail = parseDetail(raw)
	return failure
}

func encodeUpload(filename string, content []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(FileField, filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

func decodeBody(raw []byte, target any) *Failure {
	if err := json.Unmarshal(raw, target); err != nil {
		return &Failure{
			Kind:             services.KindServer,
			TransportMessage: fmt.Sprintf("decode response: %v", err),
			Cause:            err,
		}
	}
	return nil
}
