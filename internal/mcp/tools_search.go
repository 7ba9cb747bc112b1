package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mrgrep/internal/grep"
	"mrgrep/internal/report"
)

// SearchArgument defines search parameters.
type SearchArgument struct {
	Target        string `json:"target" jsonschema_description:"Exact string to search for"`
	IgnoreCase    bool   `json:"ignore_case,omitempty" jsonschema_description:"Match case-insensitively"`
	ContextRadius int    `json:"context_radius,omitempty" jsonschema_description:"Bytes of context shown around each match"`
}

// SearchHandler handles the search_corpus MCP tool.
type SearchHandler struct {
	corpus        grep.Corpus
	workers       int
	defaultRadius int
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(cfg ServerConfig) *SearchHandler {
	return &SearchHandler{
		corpus:        cfg.Corpus,
		workers:       cfg.Workers,
		defaultRadius: cfg.ContextRadius,
	}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(args.Target) == "" {
		return errorResult("Target cannot be empty"), nil, nil
	}

	radius := args.ContextRadius
	if radius <= 0 {
		radius = h.defaultRadius
	}

	matches, stats, err := grep.Search(h.corpus, grep.Options{
		Target:        args.Target,
		CaseSensitive: !args.IgnoreCase,
		Workers:       h.workers,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	rows, err := report.Build(h.corpus, matches, len(args.Target), radius)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to extract context: %s", err)), nil, nil
	}

	return h.formatResults(args.Target, rows, stats), nil, nil
}

// formatResults formats search results for the MCP response.
func (h *SearchHandler) formatResults(target string, rows []report.Row, stats *grep.Stats) *mcp.CallToolResult {
	if len(rows) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("No matches found for '%s' (%d documents scanned)", target, stats.DocumentsScanned)},
			},
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matches for '%s' in %d of %d documents:\n\n",
		stats.TotalMatches, target, stats.DocumentsMatched, stats.DocumentsScanned))

	current := ""
	for _, row := range rows {
		if row.Document != current {
			if current != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("### %s\n", row.Document))
			current = row.Document
		}
		sb.WriteString(fmt.Sprintf("- %d:%d: %s\n", row.Line, row.Offset, row.Context))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_corpus",
		Description: "Find every exact occurrence of a string across the corpus, with line, offset and surrounding context",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, cfg ServerConfig) {
	handler := NewSearchHandler(cfg)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
