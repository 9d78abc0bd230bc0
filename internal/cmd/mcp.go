package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-checkstyle/internal/logging"
	"github.com/DevSymphony/sym-checkstyle/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server to integrate with LLM tools",
	Long: `Start Model Context Protocol (MCP) server.
LLM-based coding tools can run Checkstyle on the project through stdio.

Tools provided by MCP server:
- run_checkstyle: Audit the project and list violations
- list_rule_violations: Violation counts per configured rule

Communicates via stdio for integration with Claude Desktop, Cursor, and other MCP clients.`,
	Example: `  sym-checkstyle mcp
  sym-checkstyle mcp --basedir path/to/project`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol; logs go to stderr.
	log := logging.New(cmd.ErrOrStderr(), verbose)
	defer func() { _ = log.Sync() }()

	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	exec, err := newExecutor(cmd.Context(), p, log)
	if err != nil {
		return err
	}
	exec.ShowProgress = false

	server := mcp.NewServer(p, exec, log)
	server.Version = version
	return server.Start(cmd.Context())
}
