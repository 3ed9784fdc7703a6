// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the ingestion pipeline and its history for LLM
// integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/ledger"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// IngestFunc runs one ingestion pass.
type IngestFunc func(ctx context.Context) (models.RunReport, error)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp    *server.MCPServer
	store  storage.Provider
	db     *ledger.DB
	ingest IngestFunc
}

// New creates a new MCP server with all Ansuz tools registered.
func New(store storage.Provider, db *ledger.DB, ingest IngestFunc) *Server {
	s := &Server{store: store, db: db, ingest: ingest}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("ingest_memos",
		mcp.WithDescription("Run one ingestion pass over the voice memo source directory: "+
			"new recordings are transcribed, summarized and written into the vault. "+
			"Returns per-memo outcomes."),
	), s.ingestMemos)

	s.mcp.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List recent ingestion runs with their ingested/skipped/failed counts."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return (default 10)")),
	), s.listRuns)

	s.mcp.AddTool(mcp.NewTool("recent_notes",
		mcp.WithDescription("List vault-relative paths of the most recently generated memo notes."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of notes to return (default 10)")),
	), s.recentNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a generated memo note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative path to the note (e.g. notes/memos/20240501_120000_Title.md)")),
	), s.readNote)

	// Resource: generated note format.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://note-format", "Generated Note Format",
			mcp.WithResourceDescription("Fixed layout of the notes Ansuz generates from voice memos."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) ingestMemos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.ingest(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ingested, skipped, failed := report.Counts()
	summary := struct {
		Ingested int                  `json:"ingested"`
		Skipped  int                  `json:"skipped"`
		Failed   int                  `json:"failed"`
		Outcomes []models.MemoOutcome `json:"outcomes"`
	}{ingested, skipped, failed, report.Outcomes}

	out, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRuns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	runs, err := s.db.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) recentNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	notes, err := s.db.RecentNotes(limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText("no notes generated yet"), nil
	}
	return mcp.NewToolResultText(strings.Join(notes, "\n")), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}
