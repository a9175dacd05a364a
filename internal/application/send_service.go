package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rqpush/rqpush/internal/domain"
)

// SendService orchestrates the notification pipeline:
// defaults → build → resolve → envelope → deliver → record.
type SendService struct {
	defaults  domain.DefaultsLoader
	renderer  domain.Renderer
	transport domain.Transport
	history   domain.SendHistory
	project   domain.ProjectConfig
	log       zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewSendService wires the pipeline. history may be nil, in which case
// sends are not recorded.
func NewSendService(
	defaults domain.DefaultsLoader,
	renderer domain.Renderer,
	transport domain.Transport,
	history domain.SendHistory,
	log zerolog.Logger,
) *SendService {
	return &SendService{
		defaults:  defaults,
		renderer:  renderer,
		transport: transport,
		history:   history,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// UseProjectConfig overlays the project's templates and values on the
// defaults of every notification created afterwards.
func (s *SendService) UseProjectConfig(cfg domain.ProjectConfig) *SendService {
	s.project = cfg
	return s
}

// Defaults returns the effective defaults. A malformed default
// configuration is logged and the built-in templates are used instead.
func (s *SendService) Defaults() domain.Defaults {
	d, err := s.defaults.LoadDefaults()
	if err != nil {
		var loadErr *domain.ConfigLoadError
		if errors.As(err, &loadErr) {
			s.log.Error().Err(err).Str("source", loadErr.Source).Msg("default configuration unusable, using built-in templates")
		} else {
			s.log.Error().Err(err).Msg("loading default configuration")
			d = domain.BuiltinDefaults()
		}
	}
	return d.Merge(s.project)
}

// NewNotification creates a notification from the effective defaults.
func (s *SendService) NewNotification(app, title, shortText string) *domain.Notification {
	return domain.NewNotification(app, title, shortText, s.Defaults())
}

// Prepare resolves every field of n and builds the envelope. Template
// failures are logged and leave the field empty.
func (s *SendService) Prepare(n *domain.Notification, priority uint8, ttl uint32, secret string) (domain.Prepared, error) {
	res := domain.Resolve(n, s.renderer, priority, ttl)
	for _, f := range res.Failures {
		s.log.Warn().Err(f.Err).Str("field", string(f.Field)).Str("app", n.App()).Msg("template render failed")
	}

	msg, err := domain.BuildEnvelope(res.Outbound, secret)
	if err != nil {
		return domain.Prepared{}, fmt.Errorf("building envelope: %w", err)
	}
	s.log.Debug().
		Str("app", res.Outbound.App).
		Int("contents_bytes", len(msg.Contents)).
		Bool("salted", secret != "").
		Msg("envelope built")

	return domain.Prepared{Outbound: res.Outbound, Message: msg}, nil
}

// Deliver posts a prepared envelope to endpoint. The transport's error is
// returned as is; non-2xx answers are a Response.
func (s *SendService) Deliver(ctx context.Context, p domain.Prepared, endpoint string) (*domain.Response, error) {
	if endpoint == "" {
		return nil, domain.ErrEmptyEndpoint
	}

	resp, err := s.transport.Deliver(ctx, endpoint, p.Message)
	s.record(endpoint, p, resp, err)

	if err != nil {
		s.log.Warn().Err(err).Str("endpoint", endpoint).Msg("delivery failed")
		return nil, err
	}
	s.log.Info().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("notification delivered")
	return resp, nil
}

// Send prepares n and delivers it in one step.
func (s *SendService) Send(ctx context.Context, n *domain.Notification, req domain.SendRequest) (*domain.Response, error) {
	if req.Endpoint == "" {
		return nil, domain.ErrEmptyEndpoint
	}
	p, err := s.Prepare(n, req.Priority, req.TTL, req.SharedSecret)
	if err != nil {
		return nil, err
	}
	return s.Deliver(ctx, p, req.Endpoint)
}

// History returns recorded sends, oldest first.
func (s *SendService) History() ([]domain.SendRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	records, err := s.history.Load()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return records, nil
}

func (s *SendService) record(endpoint string, p domain.Prepared, resp *domain.Response, sendErr error) {
	if s.history == nil {
		return
	}
	rec := domain.SendRecord{
		ID:        s.newID(),
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Endpoint:  endpoint,
		App:       p.Outbound.App,
		Title:     p.Outbound.Title,
		Priority:  p.Outbound.Priority,
		TTL:       p.Outbound.TTL,
	}
	if p.Message.SHA256 != nil {
		rec.SHA256 = *p.Message.SHA256
	}
	if resp != nil {
		rec.StatusCode = resp.StatusCode
	}
	if sendErr != nil {
		rec.Error = sendErr.Error()
	}
	if err := s.history.Save(rec); err != nil {
		s.log.Warn().Err(err).Msg("recording send history")
	}
}
