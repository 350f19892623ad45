package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nfi-health/assess/core"
	"github.com/nfi-health/assess/core/catalog"
	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/internal/outwriter"
	"github.com/nfi-health/assess/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// scoreFormResult is the JSON answer of score_form.
type scoreFormResult struct {
	Report   outwriter.ScoreReport `json:"report"`
	State    schema.Payload        `json:"state"`
	Relevant map[string][]string   `json:"relevant"`
	Warnings []string              `json:"warnings,omitempty"`
}

// completionResult is the JSON answer of check_completion.
type completionResult struct {
	schema.Completion
	Warnings []string `json:"warnings,omitempty"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// loadForm resolves the checklist and decodes the payload argument into a normalized state.
func (h *toolHandler) loadForm(request mcp.CallToolRequest) (*schema.Checklist, schema.FormState, []string, error) {
	id := request.GetString("checklist", "")
	file := ""
	if id == "" {
		id, file = h.baseCfg.ChecklistID, h.baseCfg.ChecklistFile
	}
	cl, err := core.ResolveChecklist(id, file)
	if err != nil {
		return nil, schema.FormState{}, nil, err
	}

	var payload schema.Payload
	switch raw := request.GetArguments()["payload"].(type) {
	case nil:
		return nil, schema.FormState{}, nil, errors.New("payload is required")
	case string:
		if strings.TrimSpace(raw) == "" {
			return nil, schema.FormState{}, nil, errors.New("payload is required")
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, schema.FormState{}, nil, fmt.Errorf("invalid payload JSON: %w", err)
		}
	default:
		// Clients may send the payload as an object instead of a string.
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, schema.FormState{}, nil, fmt.Errorf("invalid payload: %w", err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, schema.FormState{}, nil, fmt.Errorf("invalid payload: %w", err)
		}
	}

	state, warnings := core.FromPayload(cl, payload)
	return cl, state, warnings, nil
}

func (h *toolHandler) handleListChecklists(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := catalog.All()
	summaries := make([]outwriter.ChecklistSummary, len(all))
	for i, cl := range all {
		summaries[i] = outwriter.SummarizeChecklist(cl)
	}
	return jsonResult(summaries)
}

func (h *toolHandler) handleScoreForm(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cl, state, warnings, err := h.loadForm(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid form: %v", err)), nil
	}

	card := core.Score(cl, state)
	completion := core.CheckCompletion(cl, state)
	return jsonResult(scoreFormResult{
		Report:   outwriter.NewScoreReport(cl, card, completion, h.baseCfg.LabelThresholds),
		State:    core.ToPayload(state),
		Relevant: core.RelevantKeys(cl, state),
		Warnings: warnings,
	})
}

func (h *toolHandler) handleCheckCompletion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cl, state, warnings, err := h.loadForm(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid form: %v", err)), nil
	}
	return jsonResult(completionResult{Completion: core.CheckCompletion(cl, state), Warnings: warnings})
}

// recordStore returns the configured store or an error result when there is none.
func (h *toolHandler) recordStore() (contract.RecordStore, *mcp.CallToolResult) {
	if h.mgr == nil {
		return nil, mcp.NewToolResultError("record store is not configured")
	}
	store := h.mgr.GetRecordStore()
	if store == nil {
		return nil, mcp.NewToolResultError("record store is not configured")
	}
	return store, nil
}

func (h *toolHandler) handleListRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errResult := h.recordStore()
	if errResult != nil {
		return errResult, nil
	}

	filter := schema.RecordFilter{
		ChecklistID:   request.GetString("checklist", ""),
		CourseID:      request.GetString("course_id", h.baseCfg.Meta.CourseID),
		ParticipantID: request.GetString("participant_id", h.baseCfg.Meta.ParticipantID),
		Status:        schema.RecordStatus(request.GetString("status", "")),
		Limit:         h.baseCfg.ResultLimit,
	}
	if l := request.GetInt("limit", 0); l > 0 {
		filter.Limit = l
	}
	if filter.Limit > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit cannot exceed %d", contract.MaxResultLimit)), nil
	}
	if filter.Status != "" {
		if _, ok := schema.ValidRecordStatuses[filter.Status]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid status '%s'. must be draft or complete", filter.Status)), nil
		}
	}

	records, err := store.List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing records failed: %v", err)), nil
	}
	if records == nil {
		records = []schema.Record{}
	}
	return jsonResult(records)
}

func (h *toolHandler) handleGetRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errResult := h.recordStore()
	if errResult != nil {
		return errResult, nil
	}

	id := strings.TrimSpace(request.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	rec, err := store.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching record failed: %v", err)), nil
	}
	return jsonResult(rec)
}
