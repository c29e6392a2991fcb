package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultMaxSteps bounds runs requested by agents when nothing else is configured.
const DefaultMaxSteps uint64 = 100_000_000

// RunResponse is the structured result of run_machine.
type RunResponse struct {
	Report *domain.Report `json:"report" jsonschema_description:"Outcome of the run"`
	Tape   domain.Cells   `json:"tape,omitempty" jsonschema_description:"Final tape, when requested"`
	Head   int            `json:"head" jsonschema_description:"Head index into the final tape"`
}

// DescribeResponse is the structured result of describe_table.
type DescribeResponse struct {
	Name         string            `json:"name" jsonschema_description:"Table name"`
	States       []string          `json:"states" jsonschema_description:"States in index order; the first is the initial state"`
	Instructions []string          `json:"instructions" jsonschema_description:"Instructions in declaration order"`
	Validation   *validator.Result `json:"validation" jsonschema_description:"Static analysis from the initial state"`
	Mermaid      string            `json:"mermaid" jsonschema_description:"Mermaid state diagram of the table"`
}

// Server exposes machines as MCP tools.
type Server struct {
	loader    ports.TableLoader
	store     ports.ReportStore
	maxSteps  uint64
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithStore persists every run report.
func WithStore(store ports.ReportStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithMaxSteps caps every run. Zero removes the cap.
func WithMaxSteps(n uint64) Option {
	return func(s *Server) {
		s.maxSteps = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server over loader. A nil loader serves the bundled catalog.
func NewServer(loader ports.TableLoader, opts ...Option) *Server {
	if loader == nil {
		loader = turing.Catalog()
	}
	s := &Server{
		loader:    loader,
		maxSteps:  DefaultMaxSteps,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("turing-mcp", turing.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a Turing machine until it halts, faults or reaches the step limit."),
		mcp.WithString("machine", mcp.Description("Name of a catalog table (see list_machines)")),
		mcp.WithString("table", mcp.Description("Inline table, one '<state> <read> -> <next|Halt> <write> <L|R>' per line")),
		mcp.WithNumber("max_steps", mcp.Description("Step limit; capped by the server")),
		mcp.WithBoolean("include_tape", mcp.Description("Return the final tape")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunMachine))

	describeTool := mcp.NewTool("describe_table",
		mcp.WithDescription("Describe a transition table: states, instructions, static checks and a diagram."),
		mcp.WithString("machine", mcp.Description("Name of a catalog table")),
		mcp.WithString("table", mcp.Description("Inline table text")),
		mcp.WithOutputSchema[DescribeResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribeTable))

	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the tables available by name."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.loader.ListTables()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) compile(args map[string]interface{}) (*turing.Machine, error) {
	name, _ := args["machine"].(string)
	text, _ := args["table"].(string)

	switch {
	case name != "" && text != "":
		return nil, errors.New("set either machine or table, not both")
	case text != "":
		return turing.Compile(bytes.NewReader([]byte(text)), "inline", turing.WithLogger(s.logger))
	case name != "":
		return turing.FromLoader(s.loader, name, turing.WithLogger(s.logger))
	default:
		return nil, errors.New("machine or table is required")
	}
}

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	m, err := s.compile(args)
	if err != nil {
		return RunResponse{}, err
	}

	limit := s.maxSteps
	if v, ok := args["max_steps"].(float64); ok && v >= 1 {
		requested := uint64(math.MaxUint64)
		if v < math.MaxUint64 {
			requested = uint64(v)
		}
		if limit == 0 || requested < limit {
			limit = requested
		}
	}

	opts := []runner.Option{runner.WithMaxSteps(limit)}
	if s.store != nil {
		opts = append(opts, runner.WithStore(s.store))
	}

	report, err := m.Run(ctx, opts...)
	if err != nil {
		// A halted run can only fail while saving its report.
		if report.Status == domain.StatusHalted {
			return RunResponse{}, err
		}
		// Faults and limits are outcomes, described by the report.
		s.logger.Debug("MCP run stopped", "machine", report.Machine, "err", err)
	}

	resp := RunResponse{Report: report}
	if include, _ := args["include_tape"].(bool); include {
		snap := m.Snapshot()
		resp.Tape = snap.Tape
		resp.Head = snap.Head
	}
	return resp, nil
}

func (s *Server) handleDescribeTable(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DescribeResponse, error) {
	m, err := s.compile(args)
	if err != nil {
		return DescribeResponse{}, err
	}

	tbl := m.Table()
	instructions := make([]string, 0, tbl.Len())
	for _, inst := range tbl.Instructions() {
		instructions = append(instructions, tbl.Format(inst))
	}

	return DescribeResponse{
		Name:         m.Name,
		States:       tbl.States(),
		Instructions: instructions,
		Validation:   validator.Validate(tbl, tbl.Initial(), domain.Blank),
		Mermaid:      graph.GenerateMermaid(tbl, nil),
	}, nil
}

func (s *Server) registerResources() {
	template := mcp.NewResourceTemplate("turing://machines/{name}", "Transition table",
		mcp.WithTemplateDescription("Source text of a named table"),
		mcp.WithTemplateMIMEType("text/plain"),
	)
	s.mcpServer.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name, err := machineFromURI(request.Params.URI)
		if err != nil {
			return nil, err
		}
		m, err := turing.FromLoader(s.loader, name)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     compiler.Format(m.Table().Records()),
			},
		}, nil
	})
}

func machineFromURI(uri string) (string, error) {
	const prefix = "turing://machines/"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		return "", fmt.Errorf("invalid machine uri %q", uri)
	}
	return uri[len(prefix):], nil
}
