// Package types provides shared types for casesearch.
// These types are used across multiple packages and are designed for external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResultType identifies the record collection a result came from.
type ResultType string

// Result types, in the order the aggregator merges them.
const (
	ResultTypeCase          ResultType = "case"
	ResultTypeEvidence      ResultType = "evidence"
	ResultTypeSuspect       ResultType = "suspect"
	ResultTypeVictim        ResultType = "victim"
	ResultTypeInvestigation ResultType = "investigation"
)

// AllResultTypes lists every searchable collection in merge order.
var AllResultTypes = []ResultType{
	ResultTypeCase,
	ResultTypeEvidence,
	ResultTypeSuspect,
	ResultTypeVictim,
	ResultTypeInvestigation,
}

// Valid reports whether t is a known result type.
func (t ResultType) Valid() bool {
	for _, known := range AllResultTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Priority is the urgency assigned to cases and investigations.
type Priority string

// Priority values accepted in filters.
const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// AllPriorities lists the priority enum from least to most urgent.
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Rank orders priorities for sorting. Unknown or empty priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 0
	}
}
