// Package mcp_router 通过 Model Context Protocol 暴露笔记工具
package mcp_router

import (
	"context"
	"errors"
	"net/http"

	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/dto"
	pkgapp "github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

type uidKey struct{}

// withUID 把认证后的用户 ID 放入 context
func withUID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, uidKey{}, uid)
}

func uidFrom(ctx context.Context) int64 {
	uid, _ := ctx.Value(uidKey{}).(int64)
	return uid
}

// Server MCP 工具集
type Server struct {
	app  *app.App
	mcp  *server.MCPServer
	http *server.StreamableHTTPServer
}

// NewServer 注册笔记工具
func NewServer(a *app.App) *Server {
	s := &Server{app: a}
	s.mcp = server.NewMCPServer(app.Name, a.Version().Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List the caller's voice notes, pinned first then newest first"),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Case-insensitive substring search over the English text of the caller's notes"),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Text to look for")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note from English text"),
		mcp.WithString("text", mcp.Required(), mcp.Description("English note text")),
		mcp.WithString("original_text", mcp.Description("Text in the source language, defaults to text")),
		mcp.WithString("category", mcp.Description("Category, defaults to General")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("voice_command",
		mcp.WithDescription("Interpret and execute a command such as 'create buy milk', 'update note 3 call mom', 'delete note 3' or 'search milk'"),
		mcp.WithString("text", mcp.Required(), mcp.Description("English command text")),
	), s.voiceCommand)

	s.http = server.NewStreamableHTTPServer(s.mcp,
		server.WithStateLess(true),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return withUID(ctx, uidFrom(r.Context()))
		}),
	)
	return s
}

// Handler 挂在认证中间件之后
func (s *Server) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := withUID(c.Request.Context(), pkgapp.GetUID(c))
		s.http.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError 业务错误返回给模型，而不是协议错误
func (s *Server) toolError(tool string, err error) (*mcp.CallToolResult, error) {
	s.app.Logger().Info("mcp tool failed", zap.String("tool", tool), zap.Error(err))
	var c *code.Code
	if errors.As(err, &c) {
		if data := c.Data(); data != nil {
			b, _ := sonic.MarshalString(data)
			return mcp.NewToolResultError(c.Msg() + ": " + b), nil
		}
		return mcp.NewToolResultError(c.Msg()), nil
	}
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.app.NoteService.List(ctx, uidFrom(ctx))
	if err != nil {
		return s.toolError("list_notes", err)
	}
	return jsonResult(notes)
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes, err := s.app.NoteService.Search(ctx, uidFrom(ctx), keyword)
	if err != nil {
		return s.toolError("search_notes", err)
	}
	return jsonResult(notes)
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.app.NoteService.Create(ctx, uidFrom(ctx), &dto.NoteCreateRequest{
		OriginalText:   req.GetString("original_text", text),
		TranslatedText: text,
		Category:       req.GetString("category", ""),
	})
	if err != nil {
		return s.toolError("create_note", err)
	}
	return jsonResult(note)
}

func (s *Server) voiceCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.app.SpeechService.CommandText(ctx, uidFrom(ctx), text)
	if err != nil {
		return s.toolError("voice_command", err)
	}
	return jsonResult(result)
}
