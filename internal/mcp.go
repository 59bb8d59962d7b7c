package internal

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	config    *Config
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, config *Config) *MCPServer {
	mcpServer := server.NewMCPServer(
		"vidbrief-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		config:    config,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	// analyze_video tool: full pipeline, structured report out
	s.mcpServer.AddTool(mcp.NewTool("analyze_video",
		mcp.WithDescription("Download a video, transcribe it, and generate a structured AI report (title, summary, chapters, key takeaways). Results are cached per URL, so repeated calls are cheap. Requires the API key for the selected provider."),
		mcp.WithString("url",
			mcp.Description("Video URL"),
			mcp.Required(),
		),
		mcp.WithString("lang",
			mcp.Description("Report language code (e.g. \"en\"). Defaults to the video's detected language."),
		),
		mcp.WithString("provider",
			mcp.Description("AI provider: grok, openai, or gemini. Defaults to the configured provider."),
		),
	), s.handleAnalyzeVideo)

	// get_video_transcript tool: pipeline through transcription only
	s.mcpServer.AddTool(mcp.NewTool("get_video_transcript",
		mcp.WithDescription("Download a video and return its transcript with timestamps. Uses cached artifacts when available; no AI provider or API key needed."),
		mcp.WithString("url",
			mcp.Description("Video URL"),
			mcp.Required(),
		),
	), s.handleGetTranscript)
}

// handleAnalyzeVideo implements the analyze_video tool
func (s *MCPServer) handleAnalyzeVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	providerName := request.GetString("provider", s.config.Provider)
	provider, err := ParseProvider(providerName)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid provider", err), nil
	}

	if _, err := provider.APIKey(); err != nil {
		return mcp.NewToolResultErrorFromErr("missing credential", err), nil
	}

	mcpLogf("INFO", "analyze_video url=%s provider=%s", url, provider)

	app := NewApp(s.config, provider)
	result, err := app.Analyze(ctx, url, RunOptions{
		Provider: provider,
		Lang:     request.GetString("lang", s.config.Lang),
	})
	if err != nil {
		mcpLogf("ERROR", "analyze_video failed: %v", err)
		return mcp.NewToolResultErrorFromErr("analysis failed", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(result.Report.Markdown())},
	}, nil
}

// handleGetTranscript implements the get_video_transcript tool
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	mcpLogf("INFO", "get_video_transcript url=%s", url)

	transcript, err := s.app.Transcript(ctx, url, false)
	if err != nil {
		mcpLogf("ERROR", "get_video_transcript failed: %v", err)
		return mcp.NewToolResultErrorFromErr("transcription failed", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript.FormatWithTimestamps())},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}
