package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rqpush/rqpush/internal/adapters/outbound/config"
	"github.com/rqpush/rqpush/internal/adapters/outbound/gitinfo"
	"github.com/rqpush/rqpush/internal/adapters/outbound/history"
	"github.com/rqpush/rqpush/internal/adapters/outbound/render"
	"github.com/rqpush/rqpush/internal/adapters/outbound/transport"
	"github.com/rqpush/rqpush/internal/application"
	"github.com/rqpush/rqpush/internal/domain"
)

// notificationFlags are shared by send and preview.
type notificationFlags struct {
	app, title, text string
	vars             []string
	priority         uint8
	ttl              uint32
	secret           string
	git              bool
	path             string
	jsonOutput       bool

	// optional fields, applied only when the flag was given
	optional map[string]*string
}

// optionalFlags maps flag names to the input field they set.
var optionalFlags = []struct {
	name  string
	usage string
	field func(in *application.NotificationInput) **string
}{
	{"url", "Link attached to the notification", func(in *application.NotificationInput) **string { return &in.URL }},
	{"tagline", "Tagline (defaults to the app name)", func(in *application.NotificationInput) **string { return &in.Tagline }},
	{"category", "Category", func(in *application.NotificationInput) **string { return &in.Category }},
	{"lang", "Language code (defaults to en)", func(in *application.NotificationInput) **string { return &in.Lang }},
	{"short-html", "HTML short message", func(in *application.NotificationInput) **string { return &in.ShortHTML }},
	{"long-text", "Long text message", func(in *application.NotificationInput) **string { return &in.LongText }},
	{"long-html", "Long HTML message", func(in *application.NotificationInput) **string { return &in.LongHTML }},
	{"title-template", "Template for the title", func(in *application.NotificationInput) **string { return &in.TitleTemplate }},
	{"text-template", "Template for the short text", func(in *application.NotificationInput) **string { return &in.ShortTextTemplate }},
	{"html-template", "Template for the short HTML", func(in *application.NotificationInput) **string { return &in.ShortHTMLTemplate }},
	{"long-text-template", "Template for the long text", func(in *application.NotificationInput) **string { return &in.LongTextTemplate }},
	{"long-html-template", "Template for the long HTML", func(in *application.NotificationInput) **string { return &in.LongHTMLTemplate }},
}

func (f *notificationFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.app, "app", "", "Application name (required)")
	fl.StringVar(&f.title, "title", "", "Notification title (required)")
	fl.StringVar(&f.text, "text", "", "Short text message (required)")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("text")

	f.optional = make(map[string]*string, len(optionalFlags))
	for _, o := range optionalFlags {
		f.optional[o.name] = fl.String(o.name, "", o.usage)
	}

	fl.StringArrayVar(&f.vars, "var", nil, "Substitution value as key=value; JSON values are decoded (repeatable)")
	fl.Uint8Var(&f.priority, "priority", 0, "Priority 0-255 (overrides .rqpush.yaml)")
	fl.Uint32Var(&f.ttl, "ttl", 0, "Time to live in seconds (overrides .rqpush.yaml)")
	fl.StringVar(&f.secret, "secret", "", "Shared secret appended before hashing (overrides .rqpush.yaml)")
	fl.BoolVar(&f.git, "git", false, "Add commit and branch substitution values from the project repository")
	fl.StringVar(&f.path, "path", ".", "Project directory holding .rqpush.yaml")
	fl.BoolVar(&f.jsonOutput, "json", false, "Output as JSON")
}

// input converts the parsed flags into a NotificationInput.
func (f *notificationFlags) input(cmd *cobra.Command, projectPath string) (application.NotificationInput, error) {
	in := application.NotificationInput{App: f.app, Title: f.title, Text: f.text}
	for _, o := range optionalFlags {
		if cmd.Flags().Changed(o.name) {
			v := *f.optional[o.name]
			*o.field(&in) = &v
		}
	}

	values, err := parseVars(f.vars)
	if err != nil {
		return in, err
	}
	if f.git {
		gitValues, err := application.GitValues(gitinfo.New(), projectPath)
		if err != nil {
			return in, fmt.Errorf("--git: %w", err)
		}
		for k, v := range gitValues {
			if _, set := values[k]; !set {
				values[k] = v
			}
		}
	}
	if len(values) > 0 {
		in.Values = values
	}
	return in, nil
}

// envelopeParams picks priority, ttl and secret from flags, falling back to
// the project configuration.
func (f *notificationFlags) envelopeParams(cmd *cobra.Command, cfg domain.ProjectConfig) (uint8, uint32, string) {
	priority, ttl, secret := f.priority, f.ttl, f.secret
	if !cmd.Flags().Changed("priority") && cfg.Priority != nil {
		priority = *cfg.Priority
	}
	if !cmd.Flags().Changed("ttl") && cfg.TTL != nil {
		ttl = *cfg.TTL
	}
	if !cmd.Flags().Changed("secret") {
		secret = cfg.SharedSecret
	}
	return priority, ttl, secret
}

// parseVars decodes key=value pairs. Values that parse as JSON keep their
// type; anything else is a string.
func parseVars(vars []string) (map[string]any, error) {
	values := make(map[string]any, len(vars))
	for _, kv := range vars {
		key, raw, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", kv)
		}
		v, ok := decodeVar(raw)
		if !ok {
			v = raw
		}
		values[key] = v
	}
	return values, nil
}

// decodeVar decodes a single JSON value, keeping integers exact.
func decodeVar(raw string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}

// project resolves path and loads its configuration.
func project(path string) (string, domain.ProjectConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", domain.ProjectConfig{}, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.New().Load(absPath)
	if err != nil {
		return "", domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return absPath, cfg, nil
}

func newSendService(cmd *cobra.Command, projectPath string, cfg domain.ProjectConfig) *application.SendService {
	var hist domain.SendHistory
	if cfg.HistoryEnabled() {
		hist = history.New(projectPath)
	}
	return application.NewSendService(
		config.New(),
		render.New(),
		transport.New(time.Duration(cfg.Timeout())*time.Second),
		hist,
		logger(cmd),
	).UseProjectConfig(cfg)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
