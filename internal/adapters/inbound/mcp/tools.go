package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/rqpush/rqpush/internal/adapters/outbound/config"
	"github.com/rqpush/rqpush/internal/adapters/outbound/gitinfo"
	"github.com/rqpush/rqpush/internal/adapters/outbound/history"
	"github.com/rqpush/rqpush/internal/adapters/outbound/render"
	"github.com/rqpush/rqpush/internal/adapters/outbound/transport"
	"github.com/rqpush/rqpush/internal/application"
	"github.com/rqpush/rqpush/internal/domain"
)

type handlers struct {
	projectPath string
	log         zerolog.Logger
}

// notificationOptions are the tool arguments shared by preview and send.
func notificationOptions() []mcplib.ToolOption {
	return []mcplib.ToolOption{
		mcplib.WithString("app", mcplib.Required(), mcplib.Description("Application name")),
		mcplib.WithString("title", mcplib.Required(), mcplib.Description("Notification title")),
		mcplib.WithString("text", mcplib.Required(), mcplib.Description("Short text message")),
		mcplib.WithString("url", mcplib.Description("Link attached to the notification")),
		mcplib.WithString("tagline", mcplib.Description("Tagline (defaults to the app name)")),
		mcplib.WithString("category", mcplib.Description("Category")),
		mcplib.WithString("lang", mcplib.Description("Language code")),
		mcplib.WithString("short_html", mcplib.Description("HTML short message")),
		mcplib.WithString("long_text", mcplib.Description("Long text message")),
		mcplib.WithString("long_html", mcplib.Description("Long HTML message")),
		mcplib.WithString("title_template", mcplib.Description("Mustache template for the title")),
		mcplib.WithString("short_text_template", mcplib.Description("Mustache template for the short text")),
		mcplib.WithString("short_html_template", mcplib.Description("Mustache template for the short HTML")),
		mcplib.WithString("long_text_template", mcplib.Description("Mustache template for the long text")),
		mcplib.WithString("long_html_template", mcplib.Description("Mustache template for the long HTML")),
		mcplib.WithObject("values", mcplib.Description("Extra substitution values available to templates")),
		mcplib.WithBoolean("git", mcplib.Description("Add commit and branch values from the project repository")),
		mcplib.WithNumber("priority", mcplib.Description("Priority 0-255 (defaults to .rqpush.yaml)")),
		mcplib.WithNumber("ttl", mcplib.Description("Time to live in seconds (defaults to .rqpush.yaml)")),
		mcplib.WithString("secret", mcplib.Description("Shared secret (defaults to .rqpush.yaml)")),
	}
}

// registerTools registers all rqpush MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	// 1. rqpush_preview
	s.AddTool(
		mcplib.NewTool("rqpush_preview",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Resolve a notification's fields and return the envelope as JSON without sending it"),
			}, notificationOptions()...)...,
		),
		h.handlePreview,
	)

	// 2. rqpush_digest
	s.AddTool(
		mcplib.NewTool("rqpush_digest",
			mcplib.WithDescription("Return hex(sha256(contents + secret)) for an envelope's contents"),
			mcplib.WithString("contents", mcplib.Required(), mcplib.Description("Serialized notification contents")),
			mcplib.WithString("secret", mcplib.Description("Shared secret appended before hashing")),
		),
		h.handleDigest,
	)

	// 3. rqpush_send
	s.AddTool(
		mcplib.NewTool("rqpush_send",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Build a notification and POST its envelope to the intake endpoint"),
				mcplib.WithString("endpoint", mcplib.Description("Intake URL (defaults to .rqpush.yaml)")),
			}, notificationOptions()...)...,
		),
		h.handleSend,
	)
}

// service loads the project configuration and wires a SendService.
func (h *handlers) service() (*application.SendService, domain.ProjectConfig, error) {
	cfg, err := config.New().Load(h.projectPath)
	if err != nil {
		return nil, domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	var hist domain.SendHistory
	if cfg.HistoryEnabled() {
		hist = history.New(h.projectPath)
	}
	svc := application.NewSendService(
		config.New(),
		render.New(),
		transport.New(time.Duration(cfg.Timeout())*time.Second),
		hist,
		h.log,
	).UseProjectConfig(cfg)
	return svc, cfg, nil
}

// prepare builds and resolves the notification described by the request.
func (h *handlers) prepare(request mcplib.CallToolRequest) (*application.SendService, domain.ProjectConfig, domain.Prepared, error) {
	svc, cfg, err := h.service()
	if err != nil {
		return nil, cfg, domain.Prepared{}, err
	}

	in, err := h.input(request)
	if err != nil {
		return nil, cfg, domain.Prepared{}, err
	}

	args := request.GetArguments()
	priority, ttl, secret, err := envelopeParams(args, cfg)
	if err != nil {
		return nil, cfg, domain.Prepared{}, err
	}

	prepared, err := svc.Prepare(svc.Build(in), priority, ttl, secret)
	if err != nil {
		return nil, cfg, domain.Prepared{}, err
	}
	return svc, cfg, prepared, nil
}

func (h *handlers) input(request mcplib.CallToolRequest) (application.NotificationInput, error) {
	var in application.NotificationInput
	var err error
	if in.App, err = request.RequireString("app"); err != nil {
		return in, err
	}
	if in.Title, err = request.RequireString("title"); err != nil {
		return in, err
	}
	if in.Text, err = request.RequireString("text"); err != nil {
		return in, err
	}

	args := request.GetArguments()
	optional := func(key string) *string {
		if v, ok := args[key].(string); ok {
			return &v
		}
		return nil
	}
	in.URL = optional("url")
	in.Tagline = optional("tagline")
	in.Category = optional("category")
	in.Lang = optional("lang")
	in.ShortHTML = optional("short_html")
	in.LongText = optional("long_text")
	in.LongHTML = optional("long_html")
	in.TitleTemplate = optional("title_template")
	in.ShortTextTemplate = optional("short_text_template")
	in.ShortHTMLTemplate = optional("short_html_template")
	in.LongTextTemplate = optional("long_text_template")
	in.LongHTMLTemplate = optional("long_html_template")

	values := map[string]any{}
	if v, ok := args["values"].(map[string]any); ok {
		for k, val := range v {
			values[k] = val
		}
	}
	if useGit, _ := args["git"].(bool); useGit {
		gitValues, err := application.GitValues(gitinfo.New(), h.projectPath)
		if err != nil {
			return in, err
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

// envelopeParams reads priority, ttl and secret from the arguments,
// falling back to the project configuration.
func envelopeParams(args map[string]any, cfg domain.ProjectConfig) (uint8, uint32, string, error) {
	var (
		priority uint8
		ttl      uint32
		secret   = cfg.SharedSecret
	)
	if cfg.Priority != nil {
		priority = *cfg.Priority
	}
	if cfg.TTL != nil {
		ttl = *cfg.TTL
	}

	if v, ok := args["priority"].(float64); ok {
		if v < 0 || v > math.MaxUint8 || v != math.Trunc(v) {
			return 0, 0, "", fmt.Errorf("%w, got %v", domain.ErrInvalidPriority, v)
		}
		priority = uint8(v)
	}
	if v, ok := args["ttl"].(float64); ok {
		if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
			return 0, 0, "", fmt.Errorf("ttl must be between 0 and %d, got %v", uint32(math.MaxUint32), v)
		}
		ttl = uint32(v)
	}
	if v, ok := args["secret"].(string); ok {
		secret = v
	}
	return priority, ttl, secret, nil
}

func (h *handlers) handlePreview(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	_, _, prepared, err := h.prepare(request)
	if err != nil {
		return errorResult(fmt.Sprintf("preview failed: %v", err)), nil
	}
	return jsonResult(prepared)
}

func (h *handlers) handleDigest(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	contents, err := request.RequireString("contents")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	secret, _ := request.GetArguments()["secret"].(string)
	return textResult(domain.Digest(contents, secret)), nil
}

type sendResult struct {
	Endpoint   string `json:"endpoint"`
	SHA256     string `json:"sha256,omitempty"`
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Body       string `json:"body,omitempty"`
}

func (h *handlers) handleSend(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	svc, cfg, prepared, err := h.prepare(request)
	if err != nil {
		return errorResult(fmt.Sprintf("send failed: %v", err)), nil
	}

	endpoint, _ := request.GetArguments()["endpoint"].(string)
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}

	resp, err := svc.Deliver(ctx, prepared, endpoint)
	if err != nil {
		return errorResult(fmt.Sprintf("send failed: %v", err)), nil
	}

	res := sendResult{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(resp.Body),
	}
	if prepared.Message.SHA256 != nil {
		res.SHA256 = *prepared.Message.SHA256
	}
	result, err := jsonResult(res)
	if err != nil {
		return nil, err
	}
	result.IsError = !resp.OK()
	return result, nil
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
