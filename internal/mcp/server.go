// Package mcp exposes the window probe as an MCP tool over stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/wotw/pointerwin/internal/config"
	"github.com/wotw/pointerwin/internal/probe"
	"github.com/wotw/pointerwin/internal/x11"
)

const (
	ServerName    = "pointerwin"
	ServerVersion = "0.1.0"
)

// session is an open display connection as the tool handler uses it.
type session interface {
	probe.Session
	Describe(probe.WindowID) x11.Details
	Close()
}

// Server is the MCP server answering "what is under the pointer" queries.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	log       zerolog.Logger
	finder    *probe.Finder

	// openFn dials a display; replaced in tests.
	openFn func(display string) (session, error)
}

// NewServer creates an MCP server that opens one X connection per tool call.
func NewServer(cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{
		config: cfg,
		log:    log,
		finder: probe.NewFinder(log, cfg.StackingOrder()),
		openFn: openX11,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

func openX11(display string) (session, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_under_pointer",
		Description: "Find the X11 window currently under the mouse pointer and return its id and the more descriptive of its WM_NAME and WM_ICON_NAME. Fails rather than guessing when any window query fails.",
	}, s.handleWindowUnderPointer)
}

func (s *Server) handleWindowUnderPointer(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowUnderPointerInput) (*mcpsdk.CallToolResult, WindowUnderPointerOutput, error) {
	resolver := probe.NewResolver(s.finder, s.log)
	if root := strings.TrimSpace(args.Root); root != "" {
		id, err := probe.ParseWindowID(root)
		if err != nil {
			return nil, WindowUnderPointerOutput{}, err
		}
		resolver = resolver.WithRoot(id)
	}

	display := args.Display
	if display == "" {
		display = s.config.Display
	}
	conn, err := s.openFn(display)
	if err != nil {
		return nil, WindowUnderPointerOutput{}, fmt.Errorf("open display: %w", err)
	}
	defer conn.Close()

	ident, err := resolver.Resolve(conn)
	if err != nil {
		s.log.Error().Err(err).Msg("window_under_pointer failed")
		return nil, WindowUnderPointerOutput{}, err
	}

	out := WindowUnderPointerOutput{
		Window:   ident.Window.String(),
		WindowID: uint32(ident.Window),
		Root:     ident.Root.String(),
		Name:     ident.Name,
		WMName:   ident.WMName,
		IconName: ident.IconName,
	}
	if args.Details {
		d := conn.Describe(ident.Window)
		out.Details = &d
	}
	return nil, out, nil
}
