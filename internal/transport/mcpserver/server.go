package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/internal/service/chat"
	"github.com/sandevgo/memchat/pkg/log"
)

// Server exposes a chat session as MCP tools.
type Server struct {
	session *chat.Session
	mcp     *server.MCPServer
}

func New(session *chat.Session) *Server {
	s := &Server{
		session: session,
		mcp: server.NewMCPServer(
			core.AppName,
			core.AppVersion,
			server.WithToolCapabilities(false),
		),
	}

	s.mcp.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the assistant. In memory mode the message and the reply are stored and relevant memories are used as context."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The user message")),
		mcp.WithBoolean("include_context", mcp.Description("Append the retrieved memory context to the reply")),
	), s.handleChat)

	s.mcp.AddTool(mcp.NewTool("search_memory",
		mcp.WithDescription("Search the stored memories of the configured user"),
		mcp.WithString("query", mcp.Required(), mcp.Description("What to look for")),
	), s.handleSearch)

	s.mcp.AddTool(mcp.NewTool("forget_memories",
		mcp.WithDescription("Delete every stored memory of the configured user. This cannot be undone."),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true")),
	), s.handleForget)

	return s
}

// Serve answers MCP requests on in/out until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log.FromCtx(ctx).Info().Str("session_id", s.session.ID).Msg("serving MCP on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) handleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reply := s.session.Respond(ctx, message)

	var sb strings.Builder
	for _, w := range s.session.DrainWarnings() {
		sb.WriteString(w + "\n\n")
	}
	sb.WriteString(reply.Text)
	if req.GetBool("include_context", false) && reply.Context != "" {
		sb.WriteString("\n\n---\nMemory context:\n" + reply.Context)
	}

	if reply.Failed {
		return mcp.NewToolResultError(sb.String()), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	found, err := s.session.Recall(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if warnings := s.session.DrainWarnings(); len(warnings) > 0 {
		return mcp.NewToolResultError(strings.Join(warnings, "\n")), nil
	}
	if found == "" {
		return mcp.NewToolResultText("No relevant memories found."), nil
	}
	return mcp.NewToolResultText(found), nil
}

func (s *Server) handleForget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !req.GetBool("confirm", false) {
		return mcp.NewToolResultError("confirm must be true"), nil
	}

	if err := s.session.Forget(ctx); err != nil {
		s.session.DrainWarnings()
		if errors.Is(err, chat.ErrNoMemory) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete memories: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("All memories of %s deleted.", s.session.UserID)), nil
}
