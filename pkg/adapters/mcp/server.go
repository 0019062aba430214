package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
	"github.com/aretw0/normsuite/pkg/scenario"
)

// PlansResponse lists the plans achieving a goal.
type PlansResponse struct {
	Goal  domain.Goal   `json:"goal" jsonschema_description:"The goal the plans achieve"`
	Plans []domain.Path `json:"plans" jsonschema_description:"Every acyclic plan, linearized into a node path"`
}

// ScenariosResponse lists the scenarios of the configured repository.
type ScenariosResponse struct {
	Scenarios []string `json:"scenarios" jsonschema_description:"Scenario IDs"`
}

// Server exposes norm inference as an MCP Server.
type Server struct {
	scenarios ports.ScenarioRepository
	options   []normsuite.Option
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithScenarios registers the scenario tools backed by repo.
func WithScenarios(repo ports.ScenarioRepository) Option {
	return func(s *Server) {
		s.scenarios = repo
	}
}

// WithSuiteOptions sets the options applied to every suite the server builds.
func WithSuiteOptions(opts ...normsuite.Option) Option {
	return func(s *Server) {
		s.options = append(s.options, opts...)
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("normsuite-mcp", strings.TrimSpace(normsuite.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	if s.scenarios != nil {
		s.registerScenarioTools()
	}
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

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

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

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func goalParam() mcp.ToolOption {
	return mcp.WithObject("goal",
		mcp.Required(),
		mcp.Description("Goal with the start and target nodes"),
		mcp.Properties(map[string]any{
			"start":  map[string]any{"type": "string"},
			"target": map[string]any{"type": "string"},
		}),
	)
}

func actionsParam() mcp.ToolOption {
	return mcp.WithArray("actions",
		mcp.Required(),
		mcp.Description(`Available actions, each written as "a->b" or "a->c->e"`),
		mcp.WithStringItems(),
	)
}

func (s *Server) registerTools() {
	// TOOL: infer_norms
	inferTool := mcp.NewTool("infer_norms",
		mcp.WithDescription("Infer which norms best explain the observed traces. Traces list visited nodes separated by spaces; \"!\" after a node marks a sanction."),
		goalParam(),
		actionsParam(),
		mcp.WithArray("traces", mcp.Description(`Observed traces such as "a c ! e d"`), mcp.WithStringItems()),
		mcp.WithArray("hypotheses", mcp.Description(`Candidate norms such as "never c" or "a next b"`), mcp.WithStringItems()),
		mcp.WithBoolean("enumerate", mcp.Description("Enumerate every norm the action graph admits")),
		mcp.WithNumber("top", mcp.Description("Number of norms to report (ties extend the list)")),
		mcp.WithObject("params", mcp.Description("Probabilities p_non_compliance, p_detect, p_sanction and p_random")),
		mcp.WithOutputSchema[normsuite.Report](),
	)
	s.mcpServer.AddTool(inferTool, mcp.NewStructuredToolHandler(s.handleInferNorms))

	// TOOL: list_plans
	plansTool := mcp.NewTool("list_plans",
		mcp.WithDescription("List every acyclic plan that reaches the goal with the given actions."),
		goalParam(),
		actionsParam(),
		mcp.WithOutputSchema[PlansResponse](),
	)
	s.mcpServer.AddTool(plansTool, mcp.NewStructuredToolHandler(s.handleListPlans))
}

func (s *Server) registerScenarioTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_scenarios",
		mcp.WithDescription("List the stored scenarios."),
		mcp.WithOutputSchema[ScenariosResponse](),
	), mcp.NewStructuredToolHandler(s.handleListScenarios))

	s.mcpServer.AddTool(mcp.NewTool("infer_scenario",
		mcp.WithDescription("Run a stored scenario and report the most probable norms."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Scenario ID")),
		mcp.WithNumber("top", mcp.Description("Number of norms to report")),
		mcp.WithOutputSchema[normsuite.Report](),
	), mcp.NewStructuredToolHandler(s.handleInferScenario))
}

// Handler methods for structured tools

func (s *Server) handleInferNorms(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (normsuite.Report, error) {
	sc, err := scenario.Decode(args)
	if err != nil {
		return normsuite.Report{}, err
	}
	if err := sc.Validate(); err != nil {
		return normsuite.Report{}, fmt.Errorf("invalid scenario: %w", err)
	}
	return s.infer(ctx, sc)
}

func (s *Server) handleListPlans(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (PlansResponse, error) {
	sc, err := scenario.Decode(args)
	if err != nil {
		return PlansResponse{}, err
	}
	model, err := sc.Model()
	if err != nil {
		return PlansResponse{}, fmt.Errorf("invalid scenario: %w", err)
	}
	suite, err := normsuite.FromModel(model, s.options...)
	if err != nil {
		return PlansResponse{}, err
	}
	return PlansResponse{Goal: suite.Goal(), Plans: suite.Paths()}, nil
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ScenariosResponse, error) {
	ids, err := s.scenarios.List(ctx)
	if err != nil {
		return ScenariosResponse{}, err
	}
	return ScenariosResponse{Scenarios: ids}, nil
}

func (s *Server) handleInferScenario(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (normsuite.Report, error) {
	id, _ := args["id"].(string)
	sc, err := s.scenarios.Get(ctx, id)
	if err != nil {
		return normsuite.Report{}, err
	}
	if top, ok := args["top"].(float64); ok {
		sc.Top = int(top)
	}
	return s.infer(ctx, sc)
}

func (s *Server) infer(ctx context.Context, sc *scenario.Scenario) (normsuite.Report, error) {
	report, err := normsuite.Infer(ctx, sc, s.options...)
	if err != nil {
		s.logger.Warn("MCP inference failed", "scenario", sc.Name, "error", err)
		return normsuite.Report{}, fmt.Errorf("inference failed: %w", err)
	}
	s.logger.Debug("MCP inference done", "scenario", sc.Name, "observations", report.Observations, "effective", report.Effective)
	return *report, nil
}
