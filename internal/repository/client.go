// Package repository talks to the onboarding backend: it fetches the
// onboarding screen and reports conversions.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"onborder/internal/screen"
)

// DefaultEndpoint is the backend base URL used when none is configured.
const DefaultEndpoint = "http://localhost:3000"

// RequestIDHeader carries a per-request id so client and server logs line up.
const RequestIDHeader = "X-Request-ID"

// MaxBodySize is the largest response body the client accepts.
const MaxBodySize = 1 << 20

var (
	// ErrUnexpectedStatus is returned when the backend answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrResponseTooLarge is returned when a response body exceeds MaxBodySize.
	ErrResponseTooLarge = errors.New("response too large")
)

// Client is the HTTP repository.
type Client struct {
	endpoint *url.URL
	http     *http.Client
	log      zerolog.Logger
	tracer   oteltrace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// NewClient creates a client for the backend at endpoint, an absolute
// http(s) URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute http(s) URL", endpoint)
	}

	c := &Client{
		endpoint: u,
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      zerolog.Nop(),
		tracer:   noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// OnboardingScreen fetches and decodes the onboarding screen.
func (c *Client) OnboardingScreen(ctx context.Context) (screen.Screen, error) {
	ctx, span := c.tracer.Start(ctx, "repository.fetch_screen")
	defer span.End()

	body, err := c.do(ctx, span, http.MethodGet, c.endpoint.JoinPath("onboarding_screen"))
	if err != nil {
		return screen.Screen{}, fmt.Errorf("fetch onboarding screen: %w", err)
	}

	s, err := screen.Decode(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return screen.Screen{}, fmt.Errorf("decode onboarding screen: %w", err)
	}
	span.SetAttributes(attribute.Int("onborder.screen.id", s.ID))
	return s, nil
}

// LogConversion reports that the user converted on the given screen.
func (c *Client) LogConversion(ctx context.Context, screenID int) error {
	ctx, span := c.tracer.Start(ctx, "repository.log_conversion",
		oteltrace.WithAttributes(attribute.Int("onborder.screen.id", screenID)),
	)
	defer span.End()

	u := c.endpoint.JoinPath("screens", strconv.Itoa(screenID), "log_conversion")
	if _, err := c.do(ctx, span, http.MethodPost, u); err != nil {
		return fmt.Errorf("log conversion for screen %d: %w", screenID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, span oteltrace.Span, method string, u *url.URL) ([]byte, error) {
	requestID := uuid.NewString()
	span.SetAttributes(attribute.String("onborder.request.id", requestID))

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	log := c.log.With().Str("method", method).Str("url", u.String()).Str("request_id", requestID).Logger()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		log.Debug().Err(err).Msg("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > MaxBodySize {
		err := fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, MaxBodySize)
		span.RecordError(err)
		span.SetStatus(codes.Error, "response too large")
		log.Warn().Int("status", resp.StatusCode).Msg("response body over limit")
		return nil, err
	}

	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
		span.SetStatus(codes.Error, resp.Status)
		return nil, err
	}
	return body, nil
}
