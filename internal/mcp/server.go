// Package mcp exposes the production dashboard as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"prodstats/internal/config"
	"prodstats/internal/session"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server holds the state for the MCP server.
type Server struct {
	cfg     *config.AppConfig
	session *session.Session
	mcp     *mcp.Server
}

// NewServer creates a new MCP server with every tool registered.
func NewServer(cfg *config.AppConfig, sess *session.Session, version string) *Server {
	s := &Server{
		cfg:     cfg,
		session: sess,
		mcp:     mcp.NewServer(&mcp.Implementation{Name: "prodstats", Version: version}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP requests on stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Msg("MCP Server starting Stdio loop")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session on t.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

// textResult renders data as indented JSON, followed by any extra blocks such as
// Mermaid charts.
func textResult(data any, extra ...string) *mcp.CallToolResult {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	parts := []string{string(out)}
	for _, e := range extra {
		if e != "" {
			parts = append(parts, e)
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.Join(parts, "\n\n")}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
