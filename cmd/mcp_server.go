package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/element-digitizer/element-digitizer/internal/capture"
	"github.com/element-digitizer/element-digitizer/internal/platform"
	"github.com/element-digitizer/element-digitizer/internal/repo"
	"github.com/element-digitizer/element-digitizer/internal/version"
)

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// mcpServer bundles the capture session, repository, and id index behind
// MCP tools. The session is the single gate on concurrent captures: a
// capture tool call while one is in flight is dropped.
type mcpServer struct {
	cfg         MCPConfig
	provider    *platform.Provider
	providerErr error
	session     *capture.Session
	repository  *repo.Repository
	index       *repo.Index
	mcp         *mcpserver.MCPServer
}

// newMCPServer creates and configures the MCP server with all tools.
func newMCPServer(mcfg MCPConfig) (*mcpServer, error) {
	repository := repo.New(cfg.DatabaseRoot)
	index := repo.NewIndex(repository)

	// Keep the index fresh while serving; a repository that does not
	// exist yet is watched lazily after the first save.
	if _, err := os.Stat(filepath.Join(cfg.DatabaseRoot, "ui_elements")); err == nil {
		_ = index.Watch(context.Background())
	}

	s := &mcpServer{
		cfg:        mcfg,
		repository: repository,
		index:      index,
	}

	// Screen capture is unavailable on some platforms; repository tools
	// still work there.
	s.provider, s.providerErr = platform.NewProvider()
	if s.provider != nil {
		s.session = capture.NewSession(s.provider.Grabber)
	}

	s.mcp = mcpserver.NewMCPServer("element-digitizer", version.Version)
	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve() error {
	switch s.cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("capture_region",
			mcp.WithDescription("Capture a screen region and persist it as a schema-v1.0 element record (JSON + PNG pair)"),
			mcp.WithString("bbox", mcp.Description("Selection rectangle as left,top,w,h"), mcp.Required()),
			mcp.WithString("id", mcp.Description("Element ID (lowercase letters, digits, underscores)"), mcp.Required()),
			mcp.WithString("type", mcp.Description("Element type (button, input_field, ...)")),
			mcp.WithString("action", mcp.Description("Default action (click, double_click, ...)")),
			mcp.WithString("module", mcp.Description("Module partition")),
			mcp.WithString("name", mcp.Description("Element display name")),
			mcp.WithString("parent", mcp.Description("Parent element ID (must already exist)")),
			mcp.WithString("anchor", mcp.Description("Anchor element ID (must already exist)")),
			mcp.WithString("tooltip", mcp.Description("Tooltip text")),
			mcp.WithString("outcome", mcp.Description("Expected outcome description")),
			mcp.WithString("software-version", mcp.Description("Software version under annotation")),
			mcp.WithString("author", mcp.Description("Annotator name")),
			mcp.WithBoolean("disabled", mcp.Description("Mark the element as disabled")),
			mcp.WithBoolean("invisible", mcp.Description("Mark the element as not visible")),
			mcp.WithBoolean("overwrite", mcp.Description("Replace an existing record with the same ID")),
			mcp.WithBoolean("dry-run", mcp.Description("Capture and validate without persisting")),
		),
		s.handleCaptureRegion,
	)

	s.mcp.AddTool(
		mcp.NewTool("grab_screen",
			mcp.WithDescription("Capture the full screen or a region as a lossless PNG, returned as base64"),
			mcp.WithString("bbox", mcp.Description("Capture only this region (left,top,w,h)")),
		),
		s.handleGrabScreen,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_elements",
			mcp.WithDescription("List persisted element records, optionally scoped to one module"),
			mcp.WithString("module", mcp.Description("Module to list (default: all modules)")),
		),
		s.handleListElements,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_element",
			mcp.WithDescription("Fetch one element record as YAML"),
			mcp.WithString("id", mcp.Description("Element ID"), mcp.Required()),
			mcp.WithString("module", mcp.Description("Module to look in (default: default)")),
		),
		s.handleGetElement,
	)

	s.mcp.AddTool(
		mcp.NewTool("check_records",
			mcp.WithDescription("Audit the repository for schema violations and unpaired artifacts"),
		),
		s.handleCheckRecords,
	)
}

// StringParam extracts a string MCP tool argument with a default.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// BoolParam extracts a boolean MCP tool argument with a default.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
