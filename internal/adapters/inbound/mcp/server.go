package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// NewRqpushMCPServer creates a new MCP server with all rqpush tools and
// resources registered. projectPath is the directory holding .rqpush.yaml
// and the send history.
func NewRqpushMCPServer(projectPath string, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"rqpush",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, log: log}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
