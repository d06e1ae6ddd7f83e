package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/logging"
)

// Client is the single entry point feature modules use to talk to the API.
// Build it once at start-up and pass it explicitly; it lives as long as the
// process and needs no teardown beyond Close.
type Client struct {
	transport  Transport
	decorator  *RequestDecorator
	classifier *ResponseClassifier
	session    *SessionController
	navigation *NavigationSideEffects
	loading    LoadingIndicator
	reporter   ErrorReporter
	log        logging.Logger
	now        func() time.Time
}

// Option customises a Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoints *EndpointClassifier
	loading   LoadingIndicator
	reporter  ErrorReporter
	log       logging.Logger
}

// WithExemptEndpoints replaces DefaultExemptEndpoints.
func WithExemptEndpoints(endpoints ...string) Option {
	return func(o *clientOptions) {
		o.endpoints = NewEndpointClassifier(endpoints...)
	}
}

func WithLoadingIndicator(l LoadingIndicator) Option {
	return func(o *clientOptions) {
		o.loading = l
	}
}

func WithErrorReporter(r ErrorReporter) Option {
	return func(o *clientOptions) {
		o.reporter = r
	}
}

func WithLogger(l logging.Logger) Option {
	return func(o *clientOptions) {
		o.log = l
	}
}

// NewClient wires the pipeline around transport. store is read for every
// request and cleared on Unauthorized; nav receives the redirects.
func NewClient(transport Transport, store TokenStore, nav Navigator, opts ...Option) *Client {
	o := clientOptions{
		loading:  nopLoading{},
		reporter: nopReporter{},
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log.With("component", "api")
	return &Client{
		transport:  transport,
		decorator:  NewRequestDecorator(store, o.endpoints),
		classifier: NewResponseClassifier(),
		session:    NewSessionController(store, nav, log),
		navigation: NewNavigationSideEffects(nav, log),
		loading:    o.loading,
		reporter:   o.reporter,
		log:        log,
		now:        time.Now,
	}
}

// Session exposes the session state machine.
func (c *Client) Session() *SessionController {
	return c.session
}

// Close detaches the client from its token store.
func (c *Client) Close() {
	c.session.Close()
}

// Request runs req through the pipeline and returns the unwrapped envelope
// data. On failure the matching side effect runs first (sign-out for
// Unauthorized, an error page for Forbidden/NotFound/ServerError) and the
// *Error is returned; nothing is swallowed.
//
// With Options.SkipInterceptors the raw body is returned for any status and
// only a transport failure is an error.
func (c *Client) Request(ctx context.Context, req *RequestDescriptor) (json.RawMessage, error) {
	if req.Options.SkipInterceptors {
		resp, err := c.Raw(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	}

	if req.Options.ShowLoading {
		c.loading.Start()
		defer c.loading.Stop()
	}

	out := c.decorator.Decorate(req)
	log := c.log.With(
		"method", out.Method,
		"url", out.URL,
		"request_id", out.Header.Get(common.RequestIDHeaderName),
	)

	start := c.now()
	resp, sendErr := c.transport.Send(ctx, out)
	outcome := c.classifier.Classify(Exchange{Response: resp, Err: sendErr})

	log.Debug(ctx, "api call finished",
		"outcome", outcome.Kind.String(),
		"status", outcome.Status,
		"duration", c.now().Sub(start),
	)

	if outcome.Kind == OutcomeSuccess {
		return outcome.Data, nil
	}

	err := outcome.Err()
	switch outcome.Kind {
	case OutcomeUnauthorized:
		c.session.OnUnauthorized(ctx)
	case OutcomeForbidden, OutcomeNotFound, OutcomeServerError:
		c.navigation.OnOutcome(ctx, outcome)
	default:
		if req.Options.ShowError {
			c.reporter.Report(ctx, err)
		}
	}
	if outcome.Kind == OutcomeNetworkError {
		log.Warn(ctx, "api call failed", "error", err)
	}
	return nil, err
}

// Raw sends req without decoration, classification or side effects. Only a
// transport failure is an error; it is reported as ErrNetwork.
func (c *Client) Raw(ctx context.Context, req *RequestDescriptor) (*Response, error) {
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		return nil, Outcome{Kind: OutcomeNetworkError, Cause: err}.Err()
	}
	return resp, nil
}

// Do runs req through c and decodes the unwrapped data into T.
func Do[T any](ctx context.Context, c *Client, req *RequestDescriptor) (T, error) {
	var out T

	data, err := c.Request(ctx, req)
	if err != nil {
		return out, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s %s: %w", req.Method, req.URL, err)
	}
	return out, nil
}
