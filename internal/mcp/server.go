package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"mrgrep/internal/grep"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name          string
	Version       string
	Corpus        grep.Corpus
	Workers       int
	ContextRadius int
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	RegisterSearchTool(s, cfg)

	return s
}
