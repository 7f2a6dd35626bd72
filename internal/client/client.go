// Package client talks to the heartchat backend: it sends one chat turn and
// exposes the response as an ordered sequence of typed stream events,
// regardless of whether the server answered with a single JSON document or an
// incrementally delivered event stream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/nuanxinlab/heartchat-go/internal/model/chat"
	"github.com/nuanxinlab/heartchat-go/internal/normalize"
)

const turnPath = "/api/chat/turn"

// StatusError reports a non-success HTTP status from the backend. The event
// sequence never starts when this is returned.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat turn request failed with status %d", e.Code)
}

// Client issues chat turns against a backend base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	locale     string
	streaming  bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The default carries no
// timeout so that long streams are bounded by the caller's context instead.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocale sets the locale applied to requests that carry none.
func WithLocale(locale string) Option {
	return func(c *Client) { c.locale = locale }
}

// WithStreaming controls whether turns ask the backend for an incremental
// event stream (the default) or a single document response. Either way the
// caller consumes the same event sequence.
func WithStreaming(enabled bool) Option {
	return func(c *Client) { c.streaming = enabled }
}

// New creates a client for the backend at baseURL (e.g. http://localhost:8080).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		locale:     chat.DefaultLocale,
		streaming:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StreamTurn sends one chat turn and returns its event stream. By default
// the request asks for a streamed response (see WithStreaming); a backend
// that answers with a plain JSON document instead yields a stream of exactly
// one complete event. The returned Stream owns the response body; callers
// must drain it with Next until io.EOF or release it early with Close.
//
// Cancelling ctx aborts the underlying read and surfaces the context error
// from Next, distinct from transport failures.
func (c *Client) StreamTurn(ctx context.Context, req chat.TurnRequest) (*Stream, error) {
	if req.Locale == "" {
		req.Locale = c.locale
	}
	req.EnableStreaming = c.streaming

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode turn request: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+turnPath, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to build turn request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream, application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		cancel()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("turn request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		closeBody(resp.Body)
		cancel()
		return nil, &StatusError{Code: resp.StatusCode}
	}

	if isEventStream(resp.Header.Get("Content-Type")) {
		return newStream(ctx, cancel, resp.Body), nil
	}

	// Document mode: the whole turn arrives as one structured body. It goes
	// through the same normalizer as a streamed complete event.
	defer closeBody(resp.Body)
	defer cancel()
	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to read turn response: %w", err)
	}
	turn := normalize.TurnResponse(normalize.Payload(string(doc)))
	return newDocumentStream(turn), nil
}

// SendTurn runs one full turn and assembles the result, for callers that do
// not need the intermediate events.
func (c *Client) SendTurn(ctx context.Context, req chat.TurnRequest) (*chat.TurnResponse, error) {
	stream, err := c.StreamTurn(ctx, req)
	if err != nil {
		return nil, err
	}
	return Assemble(stream)
}

func isEventStream(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/event-stream"
}

// closeBody releases a response body, tolerating (and only logging) failures.
func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		log.Printf("[client] failed to close response body: %v", err)
	}
}
