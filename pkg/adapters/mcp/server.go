package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/glossa"
	"github.com/aretw0/glossa/internal/presentation/graph"
	"github.com/aretw0/glossa/internal/runtime"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Trainer is the surface of glossa.Trainer exposed as MCP tools.
type Trainer interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	Compile(ctx context.Context, lang string) ([]domain.Record, error)
	CompileResolvers(ctx context.Context, lang string) ([]domain.Record, error)
	Expand(template string) ([]string, error)
	Train(ctx context.Context) (*runtime.Report, error)
}

// ExpandResponse is the structured output of expand_pattern.
type ExpandResponse struct {
	Template     string   `json:"template" jsonschema_description:"The template that was expanded"`
	Alternatives []string `json:"alternatives" jsonschema_description:"Every concrete utterance, in combination order"`
	Truncated    bool     `json:"truncated" jsonschema_description:"Set when the expansion limit was reached"`
}

// CompileResponse is the structured output of compile_language.
type CompileResponse struct {
	Lang    string          `json:"lang" jsonschema_description:"The compiled language"`
	Pass    string          `json:"pass" jsonschema_description:"main or resolvers"`
	Records []domain.Record `json:"records" jsonschema_description:"Training records in emission order"`
}

// ModelSummary is one model of a TrainResponse.
type ModelSummary struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// TrainResponse is the structured output of train_models.
type TrainResponse struct {
	Languages []string       `json:"languages" jsonschema_description:"Languages that were compiled"`
	Models    []ModelSummary `json:"models" jsonschema_description:"Outcome of each persisted model"`
}

// GraphResponse is the structured output of domain_graph.
type GraphResponse struct {
	Lang    string `json:"lang"`
	Mermaid string `json:"mermaid" jsonschema_description:"Mermaid flowchart source"`
}

// Server wraps a Trainer and exposes it as an MCP Server.
type Server struct {
	trainer   Trainer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(trainer Trainer) *Server {
	s := &Server{
		trainer:   trainer,
		mcpServer: server.NewMCPServer("glossa-mcp", strings.TrimSpace(glossa.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	expandTool := mcp.NewTool("expand_pattern",
		mcp.WithDescription("Expand an utterance template with {a|b} or [a|b] groups into every concrete utterance."),
		mcp.WithString("template", mcp.Required(), mcp.Description("Utterance template")),
		mcp.WithOutputSchema[ExpandResponse](),
	)
	s.mcpServer.AddTool(expandTool, mcp.NewStructuredToolHandler(s.handleExpand))

	compileTool := mcp.NewTool("compile_language",
		mcp.WithDescription("Compile the training corpus of one language without training."),
		mcp.WithString("lang", mcp.Required(), mcp.Description("Language code, e.g. en")),
		mcp.WithString("pass", mcp.Description("main (default) or resolvers")),
		mcp.WithOutputSchema[CompileResponse](),
	)
	s.mcpServer.AddTool(compileTool, mcp.NewStructuredToolHandler(s.handleCompile))

	trainTool := mcp.NewTool("train_models",
		mcp.WithDescription("Compile every language and persist the resolvers and main models."),
		mcp.WithOutputSchema[TrainResponse](),
	)
	s.mcpServer.AddTool(trainTool, mcp.NewStructuredToolHandler(s.handleTrain))

	s.mcpServer.AddTool(mcp.NewTool("list_domains",
		mcp.WithDescription("Get the domains, skills and languages of the project."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := s.trainer.Snapshot(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(snap.Domains)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	graphTool := mcp.NewTool("domain_graph",
		mcp.WithDescription("Render the domain/skill/intent tree of a language as a Mermaid diagram."),
		mcp.WithString("lang", mcp.Required(), mcp.Description("Language code")),
		mcp.WithOutputSchema[GraphResponse](),
	)
	s.mcpServer.AddTool(graphTool, mcp.NewStructuredToolHandler(s.handleGraph))
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	template, _ := args["template"].(string)
	alts, err := s.trainer.Expand(template)
	resp := ExpandResponse{Template: template, Alternatives: alts}
	if err != nil {
		if !errors.Is(err, domain.ErrExpansionLimit) {
			return ExpandResponse{}, fmt.Errorf("expand failed: %w", err)
		}
		resp.Truncated = true
	}
	return resp, nil
}

func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CompileResponse, error) {
	lang, _ := args["lang"].(string)
	if lang == "" {
		return CompileResponse{}, fmt.Errorf("lang is required")
	}
	pass, _ := args["pass"].(string)
	if pass == "" {
		pass = domain.ModelMain
	}

	compile := s.trainer.Compile
	switch pass {
	case domain.ModelMain:
	case domain.ModelResolvers:
		compile = s.trainer.CompileResolvers
	default:
		return CompileResponse{}, fmt.Errorf("unknown pass %q", pass)
	}

	records, err := compile(ctx, lang)
	if err != nil {
		slog.Warn("MCP compile failed", "lang", lang, "err", err)
		return CompileResponse{}, fmt.Errorf("compile failed: %w", err)
	}
	return CompileResponse{Lang: lang, Pass: pass, Records: records}, nil
}

func (s *Server) handleTrain(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TrainResponse, error) {
	report, err := s.trainer.Train(ctx)
	if report == nil {
		return TrainResponse{}, fmt.Errorf("train failed: %w", err)
	}

	resp := TrainResponse{Languages: report.Languages}
	for _, m := range report.Models {
		summary := ModelSummary{Name: m.Name, Records: m.Records}
		if m.Err != nil {
			summary.Error = m.Err.Error()
		}
		resp.Models = append(resp.Models, summary)
	}
	if err != nil && len(report.Models) == 0 {
		return TrainResponse{}, fmt.Errorf("train failed: %w", err)
	}
	return resp, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GraphResponse, error) {
	lang, _ := args["lang"].(string)
	snap, err := s.trainer.Snapshot(ctx)
	if err != nil {
		return GraphResponse{}, fmt.Errorf("load failed: %w", err)
	}
	return GraphResponse{Lang: lang, Mermaid: graph.GenerateMermaid(snap, lang)}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("glossa://domains", "Project Domains",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := s.trainer.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load project: %w", err)
		}
		jsonBytes, _ := json.Marshal(snap)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "glossa://domains",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
