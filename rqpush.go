// Package rqpush builds notifications, renders their fields from mustache
// templates and posts them, optionally salted with a shared secret, to an
// rqueue-compatible intake endpoint.
//
//	n := rqpush.Init("Example", "An example", "This is an example notification.").
//		SetShortTextTemplate("[{{app}}]: {{notification}} ({{integer}})").
//		AddValue("integer", 3)
//	resp, err := rqpush.Send(ctx, n, "http://localhost:8000", 55, 0, "")
//
// The envelope digest is hex(sha256(contents + secret)). It is not a MAC
// and offers no protection against a party that can observe a message.
package rqpush

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rqpush/rqpush/internal/adapters/outbound/config"
	"github.com/rqpush/rqpush/internal/adapters/outbound/history"
	"github.com/rqpush/rqpush/internal/adapters/outbound/render"
	"github.com/rqpush/rqpush/internal/adapters/outbound/transport"
	"github.com/rqpush/rqpush/internal/application"
	"github.com/rqpush/rqpush/internal/domain"
	"github.com/rqpush/rqpush/internal/logging"
)

type (
	// Notification is a notification under construction. Setters chain.
	Notification = domain.Notification
	// OutboundNotification is a fully resolved notification.
	OutboundNotification = domain.OutboundNotification
	// Message is the envelope posted to the intake.
	Message = domain.Message
	// Prepared pairs a resolved notification with its envelope.
	Prepared = domain.Prepared
	// Response is the intake's answer.
	Response = domain.Response
	// Value is a substitution value available to templates.
	Value = domain.Value
	// SendRecord is one recorded delivery attempt.
	SendRecord = domain.SendRecord
)

// ErrEmptyEndpoint is returned by Send when no endpoint is given.
var ErrEmptyEndpoint = domain.ErrEmptyEndpoint

// Option configures a Client.
type Option func(*options)

type options struct {
	log         zerolog.Logger
	httpClient  *http.Client
	timeout     time.Duration
	historyPath string
	project     *domain.ProjectConfig
}

// WithLogger sets the logger used for template and delivery warnings.
// The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithHTTPClient sets the HTTP client used for delivery.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout bounds each delivery. Ignored when WithHTTPClient is given.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHistory records every delivery attempt under projectPath.
func WithHistory(projectPath string) Option {
	return func(o *options) { o.historyPath = projectPath }
}

// WithProjectConfig loads .rqpush.yaml from projectPath and applies its
// templates and values to every notification the client creates.
func WithProjectConfig(projectPath string) (Option, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, err
	}
	return func(o *options) { o.project = &cfg }, nil
}

// Client creates, prepares and sends notifications.
type Client struct {
	svc *application.SendService
}

// New creates a Client.
func New(opts ...Option) *Client {
	o := options{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	var tr *transport.HTTPTransport
	if o.httpClient != nil {
		tr = transport.NewWithClient(o.httpClient)
	} else {
		tr = transport.New(o.timeout)
	}

	var hist domain.SendHistory
	if o.historyPath != "" {
		hist = history.New(o.historyPath)
	}

	svc := application.NewSendService(config.New(), render.New(), tr, hist, o.log)
	if o.project != nil {
		svc.UseProjectConfig(*o.project)
	}
	return &Client{svc: svc}
}

// Init creates a notification with the required fields.
func (c *Client) Init(app, title, shortText string) *Notification {
	return c.svc.NewNotification(app, title, shortText)
}

// Prepare resolves every field of n and builds the envelope without
// sending it. Default templates chosen during resolution are stored on n.
func (c *Client) Prepare(n *Notification, priority uint8, ttl uint32, secret string) (Prepared, error) {
	return c.svc.Prepare(n, priority, ttl, secret)
}

// Send resolves n, builds the envelope and posts it to endpoint. An empty
// secret sends an unsalted digest. Transport errors are returned as is;
// non-2xx statuses are returned as a Response.
func (c *Client) Send(ctx context.Context, n *Notification, endpoint string, priority uint8, ttl uint32, secret string) (*Response, error) {
	return c.svc.Send(ctx, n, domain.SendRequest{
		Endpoint:     endpoint,
		Priority:     priority,
		TTL:          ttl,
		SharedSecret: secret,
	})
}

// History returns the deliveries recorded through WithHistory, oldest
// first. It is empty when the client records nothing.
func (c *Client) History() ([]SendRecord, error) {
	return c.svc.History()
}

var defaultClient = sync.OnceValue(func() *Client { return New() })

// Init creates a notification using the default client.
func Init(app, title, shortText string) *Notification {
	return defaultClient().Init(app, title, shortText)
}

// Send sends n using the default client.
func Send(ctx context.Context, n *Notification, endpoint string, priority uint8, ttl uint32, secret string) (*Response, error) {
	return defaultClient().Send(ctx, n, endpoint, priority, ttl, secret)
}

// Digest returns hex(sha256(contents + secret)).
func Digest(contents, secret string) string {
	return domain.Digest(contents, secret)
}
