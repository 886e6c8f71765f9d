package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/solo.space/internal/content"
	"github.com/louisbranch/solo.space/internal/services/mcp/domain"
	"github.com/louisbranch/solo.space/internal/tables"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName = "solo-space-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the solo play tools.
type Server struct {
	mcpServer *mcp.Server
}

// Option configures a Server.
type Option func(*options)

type options struct {
	seeds domain.SeedSource
}

// WithSeedSource overrides how seeds are drawn for calls that omit one.
func WithSeedSource(seeds domain.SeedSource) Option {
	return func(o *options) {
		o.seeds = seeds
	}
}

// New builds a server whose table tools execute the tables of pack.
func New(pack content.Pack, opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, tables.FromPack(pack), pack, o.seeds)
	return &Server{mcpServer: mcpServer}
}

func registerTools(server *mcp.Server, engine *tables.Engine, pack content.Pack, seeds domain.SeedSource) {
	mcp.AddTool(server, domain.RollTableTool(), domain.RollTableHandler(engine, seeds))
	mcp.AddTool(server, domain.ListTablesTool(), domain.ListTablesHandler(engine))
	mcp.AddTool(server, domain.RollDiceTool(), domain.RollDiceHandler(seeds))
	mcp.AddTool(server, domain.ClassifySceneTool(), domain.ClassifySceneHandler(pack.OracleLists(), seeds))
	mcp.AddTool(server, domain.UpdateTensionTool(), domain.UpdateTensionHandler())
	mcp.AddTool(server, domain.FateQuestionTool(), domain.FateQuestionHandler(seeds))
	mcp.AddTool(server, domain.EvaluateCheckTool(), domain.EvaluateCheckHandler(seeds))
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the server until the client disconnects or ctx ends.
// Cancellation is a clean exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
