package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/zed-charania/Meridian/internal/config"
	"github.com/zed-charania/Meridian/internal/descriptions"
	"github.com/zed-charania/Meridian/internal/intake"
	"github.com/zed-charania/Meridian/internal/pdf"
	"github.com/zed-charania/Meridian/internal/pdf/security"
)

const outputFilePerm = 0o644

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	paths      *security.PathValidator
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	paths, err := security.NewPathValidator(cfg.OutputDirectory)
	if err != nil {
		return nil, fmt.Errorf("invalid output directory: %w", err)
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		paths:      paths,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	mapFieldsTool := mcp.NewTool(
		"n400_map_fields",
		mcp.WithDescription(descriptions.GetToolDescription("n400_map_fields")),
		mcp.WithString("intake",
			mcp.Required(),
			mcp.Description("Intake record as a JSON object"),
		),
	)
	s.mcpServer.AddTool(mapFieldsTool, s.handleMapFields)

	generateTool := mcp.NewTool(
		"n400_generate_pdf",
		mcp.WithDescription(descriptions.GetToolDescription("n400_generate_pdf")),
		mcp.WithString("intake",
			mcp.Required(),
			mcp.Description("Intake record as a JSON object"),
		),
		mcp.WithString("filename",
			mcp.Description("Output file name inside the output directory (defaults to N-400_<last>_<first>.pdf)"),
		),
	)
	s.mcpServer.AddTool(generateTool, s.handleGeneratePDF)

	listFieldsTool := mcp.NewTool(
		"n400_list_template_fields",
		mcp.WithDescription(descriptions.GetToolDescription("n400_list_template_fields")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of fields to list (0 lists all)"),
		),
	)
	s.mcpServer.AddTool(listFieldsTool, s.handleListTemplateFields)

	healthTool := mcp.NewTool(
		"n400_health",
		mcp.WithDescription(descriptions.GetToolDescription("n400_health")),
	)
	s.mcpServer.AddTool(healthTool, s.handleHealth)
}

// Handler functions
func (s *Server) handleMapFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := intakeArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields := s.pdfService.Map(rec)
	data, err := json.MarshalIndent(fields.Strings(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode mapping: %v", err)), nil
	}

	text := fmt.Sprintf("Mapped %d intake fields to %d PDF fields\n\n", len(rec), len(fields))
	text += string(data)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleGeneratePDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := intakeArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.Generate(ctx, rec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := result.Filename
	if args := request.GetArguments(); args != nil {
		if fn := cast.ToString(args["filename"]); fn != "" {
			name = fn
		}
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}

	path, err := s.paths.SanitizePath(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.paths.EnsureOutputDirectory(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := os.WriteFile(path, result.Data, outputFilePerm); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write %s: %v", path, err)), nil
	}

	return mcp.NewToolResultText(s.formatGenerateResult(path, result)), nil
}

func (s *Server) handleListTemplateFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 0
	if args := request.GetArguments(); args != nil {
		limit = cast.ToInt(args["limit"])
	}

	result, err := s.pdfService.ListFields(limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Template defines %d fields", result.TotalFields)
	if len(result.Fields) < result.TotalFields {
		text += fmt.Sprintf(" (showing %d)", len(result.Fields))
	}
	text += ":\n"
	for i, name := range result.Fields {
		text += fmt.Sprintf("%d. %s\n", i+1, name)
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h := s.pdfService.Health()

	text := fmt.Sprintf("%s v%s\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Status: %s\n", h.Status)
	text += fmt.Sprintf("Template: %s\n", h.TemplateSource)
	if !h.TemplateExists {
		text += "Template file present: no\n"
	}
	if !h.TemplateLoaded {
		text += "Template loaded: no\n"
		return mcp.NewToolResultText(text), nil
	}
	text += "Template loaded: yes\n"
	text += fmt.Sprintf("Fields: %d\n", h.FieldCount)
	if h.PageCount > 0 {
		text += fmt.Sprintf("Pages: %d\n", h.PageCount)
	}
	text += fmt.Sprintf("Output directory: %s\n", s.paths.GetOutputDirectory())
	return mcp.NewToolResultText(text), nil
}

func intakeArgument(request mcp.CallToolRequest) (intake.Record, error) {
	raw, err := request.RequireString("intake")
	if err != nil {
		return nil, err
	}
	rec, err := intake.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	if rec.Empty() {
		return nil, fmt.Errorf("no data provided")
	}
	return rec, nil
}

func (s *Server) formatGenerateResult(path string, result *pdf.GenerateResult) string {
	text := fmt.Sprintf("Generated N-400: %s\n", path)
	text += fmt.Sprintf("Size: %d bytes\n", len(result.Data))
	text += fmt.Sprintf("Fields mapped: %d\n", result.Mapped)
	text += fmt.Sprintf("Fields filled: %d\n", result.Filled)
	if len(result.Missing) > 0 {
		text += fmt.Sprintf("Not in template (%d):\n", len(result.Missing))
		for _, name := range result.Missing {
			text += fmt.Sprintf("  - %s\n", name)
		}
	}
	return text
}

// Run serves MCP over the process's standard streams until ctx is
// cancelled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves MCP over the given streams.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.config.IsDebug() {
		log.Printf("Starting N-400 MCP server in stdio mode")
		log.Printf("Output directory: %s", s.paths.GetOutputDirectory())
	}

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.Default())
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, io.EOF) && ctx.Err() == nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
