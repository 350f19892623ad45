// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nfi-health/assess/internal/contract"
)

// NewMCPServer initializes and configures the assessment MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Skills Assessment Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_checklists ---
	s.AddTool(mcp.NewTool("list_checklists",
		mcp.WithDescription("List the built-in skills assessment checklists with their sections and required fields."),
	), h.handleListChecklists)

	// --- 2. Tool: score_form ---
	s.AddTool(mcp.NewTool("score_form",
		mcp.WithDescription("Normalize a form payload against a checklist and return its per-section scorecard and completion state."),
		mcp.WithString("checklist", mcp.Description("Checklist ID (eenc, imnci). Defaults to the configured checklist.")),
		mcp.WithString("payload", mcp.Description("Form payload as JSON: {\"fields\":{},\"answers\":{},\"selections\":{}}."), mcp.Required()),
	), h.handleScoreForm)

	// --- 3. Tool: check_completion ---
	s.AddTool(mcp.NewTool("check_completion",
		mcp.WithDescription("Report whether a form payload may be finalized and which fields or sections are incomplete."),
		mcp.WithString("checklist", mcp.Description("Checklist ID (eenc, imnci). Defaults to the configured checklist.")),
		mcp.WithString("payload", mcp.Description("Form payload as JSON."), mcp.Required()),
	), h.handleCheckCompletion)

	// --- 4. Tool: list_records ---
	s.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List saved assessment records, most recently updated first."),
		mcp.WithString("checklist", mcp.Description("Only records of this checklist.")),
		mcp.WithString("course_id", mcp.Description("Only records of this course.")),
		mcp.WithString("participant_id", mcp.Description("Only records of this participant.")),
		mcp.WithString("status", mcp.Description("Only records with this status."), mcp.Enum("draft", "complete")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of records returned.")),
	), h.handleListRecords)

	// --- 5. Tool: get_record ---
	s.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Fetch one saved assessment record by ID."),
		mcp.WithString("id", mcp.Description("Record ID."), mcp.Required()),
	), h.handleGetRecord)

	return s
}

// StartMCPServer starts the assessment MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, version string) error {
	s := NewMCPServer(baseCfg, mgr, version)
	return server.ServeStdio(s)
}
