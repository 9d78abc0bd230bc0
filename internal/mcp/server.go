package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/executor"
	"github.com/DevSymphony/sym-checkstyle/internal/logging"
	"github.com/DevSymphony/sym-checkstyle/internal/output"
	"github.com/DevSymphony/sym-checkstyle/internal/project"
	"github.com/DevSymphony/sym-checkstyle/internal/report"
	"github.com/DevSymphony/sym-checkstyle/internal/results"
)

// DefaultLimit caps the violations listed by run_checkstyle.
const DefaultLimit = 50

// Server is a MCP (Model Context Protocol) server.
// It communicates via JSON-RPC over stdio.
type Server struct {
	project *project.Project
	exec    *executor.Executor
	log     *zap.SugaredLogger

	// Version is announced to clients.
	Version string
}

// NewServer creates a new MCP server for the project.
func NewServer(p *project.Project, exec *executor.Executor, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{project: p, exec: exec, log: log, Version: "dev"}
}

// Start serves tools over stdio until ctx is done or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.log.Infof("sym-checkstyle MCP server started (stdio mode) for %s", s.project.BaseDir)
	s.log.Info("Available tools: run_checkstyle, list_rule_violations")
	return s.runStdioWithSDK(ctx)
}

// RPCError is an error type used for internal error handling.
type RPCError struct {
	Code    int
	Message string
}

// RunCheckstyleInput represents the input schema for the run_checkstyle tool.
type RunCheckstyleInput struct {
	Aggregate bool   `json:"aggregate,omitempty" jsonschema:"Audit every module of the project together (optional)"`
	Severity  string `json:"severity,omitempty" jsonschema:"Only report violations of this severity: info, warning or error (optional)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of violations to list (optional, default 50)"`
}

// ListRuleViolationsInput represents the input schema for the list_rule_violations tool.
type ListRuleViolationsInput struct {
	Aggregate bool `json:"aggregate,omitempty" jsonschema:"Audit every module of the project together (optional)"`
}

// runStdioWithSDK runs an MCP server over stdio using the official go-sdk.
func (s *Server) runStdioWithSDK(ctx context.Context) error {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "sym-checkstyle",
		Version: s.Version,
	}, nil)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "run_checkstyle",
		Description: "Run Checkstyle over the project and return the severity summary followed by the first violations.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input RunCheckstyleInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		result, rpcErr := s.handleRunCheckstyle(ctx, input)
		if rpcErr != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, fmt.Errorf("%s", rpcErr.Message)
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_rule_violations",
		Description: "Run Checkstyle over the project and return the violation count of every configured rule.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListRuleViolationsInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		result, rpcErr := s.handleListRuleViolations(ctx, input)
		if rpcErr != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, fmt.Errorf("%s", rpcErr.Message)
		}
		return nil, result, nil
	})

	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

// audit runs the executor without console output.
func (s *Server) audit(ctx context.Context, aggregate bool, severity string) (*results.Results, *RPCError) {
	req := executor.NewRequest(s.project)
	req.ConsoleOutput = false
	req.Aggregate = aggregate
	req.Reactor = s.project.Reactor()

	if severity != "" {
		sev, err := audit.ParseSeverity(severity)
		if err != nil || sev == audit.SeverityIgnore {
			return nil, &RPCError{Code: -32602, Message: fmt.Sprintf("invalid severity %q: must be info, warning or error", severity)}
		}
		req.SeverityFilter = &sev
	}

	res, err := s.exec.Execute(ctx, req)
	if err != nil {
		return nil, &RPCError{Code: -32000, Message: err.Error()}
	}
	return res, nil
}

func (s *Server) handleRunCheckstyle(ctx context.Context, input RunCheckstyleInput) (map[string]any, *RPCError) {
	res, rpcErr := s.audit(ctx, input.Aggregate, input.Severity)
	if rpcErr != nil {
		return nil, rpcErr
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Checkstyle %s audited %d files: %d errors, %d warnings, %d infos.\n",
		s.exec.EngineVersion(), res.FileCount(),
		res.SeverityCount(audit.SeverityError),
		res.SeverityCount(audit.SeverityWarning),
		res.SeverityCount(audit.SeverityInfo))

	total := 0
	for _, file := range res.SortedFiles() {
		for _, e := range res.FileViolations(file) {
			total++
			if total > limit {
				continue
			}
			if total == 1 {
				b.WriteString("\n")
			}
			e.File = file
			b.WriteString(output.FormatEvent(e))
			b.WriteString("\n")
		}
	}
	if total > limit {
		fmt.Fprintf(&b, "\n... and %d more violations.\n", total-limit)
	}
	if total == 0 {
		b.WriteString("\nNo violations found.\n")
	}

	return textResult(b.String()), nil
}

func (s *Server) handleListRuleViolations(ctx context.Context, input ListRuleViolationsInput) (map[string]any, *RPCError) {
	res, rpcErr := s.audit(ctx, input.Aggregate, "")
	if rpcErr != nil {
		return nil, rpcErr
	}

	if !report.IsChecker(res.Configuration()) {
		return textResult("The configuration has no Checker root module, no rules to summarize."), nil
	}

	walkers := s.project.Config.Report.TreeWalkerNames
	if len(walkers) == 0 {
		walkers = []string{config.DefaultTreeWalker}
	}
	rules := report.SummarizeRules(res, walkers)
	if len(rules) == 0 {
		return textResult("No rule reported violations."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rules with violations (%d):\n\n", len(rules))
	for _, r := range rules {
		fmt.Fprintf(&b, "• %s/%s: %d violation%s (%s)\n", r.Category, r.Rule(), r.Violations, plural(r.Violations), r.Severity())
	}
	return textResult(b.String()), nil
}

func textResult(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
