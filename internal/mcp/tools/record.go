package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// GetRecordInput is the input for casesearch_get_record.
type GetRecordInput struct {
	Type string `json:"type" jsonschema:"Result type: case, evidence, suspect, victim or investigation"`
	ID   string `json:"id" jsonschema:"Record ID from a search result"`
}

// GetRecordOutput is the output for casesearch_get_record.
type GetRecordOutput struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Record any    `json:"record"`
}

// ToolGetRecord fetches a full record by type and ID.
func ToolGetRecord(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetRecordInput) (*sdkmcp.CallToolResult, GetRecordOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetRecordInput) (*sdkmcp.CallToolResult, GetRecordOutput, error) {
		typ := types.ResultType(strings.ToLower(strings.TrimSpace(input.Type)))
		rec, err := LookupRecord(ctx, d.Entities, typ, strings.TrimSpace(input.ID))
		if err != nil {
			return nil, GetRecordOutput{}, err
		}
		v, err := types.ToAny(rec)
		if err != nil {
			return nil, GetRecordOutput{}, fmt.Errorf("converting record: %w", err)
		}
		return nil, GetRecordOutput{Type: string(typ), ID: input.ID, Record: v}, nil
	}
}

// LookupRecord fetches one record from the collection for typ.
func LookupRecord(ctx context.Context, e store.Entities, typ types.ResultType, id string) (any, error) {
	if id == "" {
		return nil, ErrInvalidInput("id is required")
	}
	switch typ {
	case types.ResultTypeCase:
		return get(ctx, e.Cases, typ, id)
	case types.ResultTypeEvidence:
		return get(ctx, e.Evidence, typ, id)
	case types.ResultTypeSuspect:
		return get(ctx, e.Suspects, typ, id)
	case types.ResultTypeVictim:
		return get(ctx, e.Victims, typ, id)
	case types.ResultTypeInvestigation:
		return get(ctx, e.Investigations, typ, id)
	default:
		return nil, ErrInvalidInput(fmt.Sprintf("unknown result type %q", typ))
	}
}

func get[T store.Record](ctx context.Context, s store.EntityStore[T], typ types.ResultType, id string) (any, error) {
	if s == nil {
		return nil, ErrNotFound(string(typ), id)
	}
	rec, ok, err := s.Get(ctx, id)
	if err != nil {
		return nil, WrapSearchError(fmt.Errorf("loading %s %s: %w", typ, id, err))
	}
	if !ok {
		return nil, ErrNotFound(string(typ), id)
	}
	return rec, nil
}
