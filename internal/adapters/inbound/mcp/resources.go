package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rqpush/rqpush/internal/adapters/outbound/history"
	"github.com/rqpush/rqpush/internal/domain"
)

// registerResources registers all rqpush MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	// 1. rqpush://defaults - effective templates and default values
	s.AddResource(
		mcplib.NewResource(
			"rqpush://defaults",
			"Defaults",
			mcplib.WithResourceDescription("Default templates and substitution values after applying .rqpush.yaml"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleDefaultsResource,
	)

	// 2. rqpush://history - recorded sends
	s.AddResource(
		mcplib.NewResource(
			"rqpush://history",
			"Send History",
			mcplib.WithResourceDescription("Recorded send attempts, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleHistoryResource,
	)
}

func (h *handlers) handleDefaultsResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	svc, _, err := h.service()
	if err != nil {
		return nil, err
	}
	return jsonResource("rqpush://defaults", svc.Defaults())
}

func (h *handlers) handleHistoryResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	records, err := history.New(h.projectPath).Load()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if records == nil {
		records = []domain.SendRecord{}
	}
	return jsonResource("rqpush://history", records)
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
