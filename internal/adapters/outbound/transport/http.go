package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rqpush/rqpush/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// UserAgent is sent with every delivery.
var UserAgent = "rqpush/dev"

// HTTPTransport implements domain.Transport by POSTing the envelope as JSON.
type HTTPTransport struct {
	client *http.Client
}

// New creates an HTTPTransport with the given request timeout.
// A non-positive timeout uses the 10 second default.
func New(timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPTransport{client: &http.Client{Timeout: timeout}}
}

// NewWithClient creates an HTTPTransport around an existing client.
func NewWithClient(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPTransport{client: client}
}

// Deliver POSTs msg to endpoint. Any status is returned as a Response;
// errors from the HTTP client are returned as is.
func (t *HTTPTransport) Deliver(ctx context.Context, endpoint string, msg domain.Message) (*domain.Response, error) {
	encoded, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return &domain.Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}
