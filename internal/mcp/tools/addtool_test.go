package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutputSchema_NilSlice(t *testing.T) {
	type bare struct {
		Items []string `json:"items"`
	}
	type omitzero struct {
		Items []string `json:"items,omitzero"`
	}
	type omitempty struct {
		Items []string `json:"items,omitempty"`
	}
	type ptr struct {
		Items *[]string `json:"items"`
	}

	assert.Panics(t, func() { CheckOutputSchema[bare]("bare") })
	assert.NotPanics(t, func() { CheckOutputSchema[omitzero]("omitzero") })
	assert.NotPanics(t, func() { CheckOutputSchema[omitempty]("omitempty") })
	assert.NotPanics(t, func() { CheckOutputSchema[ptr]("ptr") })
	assert.NotPanics(t, func() { CheckOutputSchema[any]("any") })
}

func TestCheckOutputSchema_RawMessage(t *testing.T) {
	type direct struct {
		Data json.RawMessage `json:"data,omitempty"`
	}
	type slice struct {
		Items []json.RawMessage `json:"items,omitzero"`
	}
	type inner struct {
		Record json.RawMessage `json:"record,omitempty"`
	}
	type nested struct {
		Nested inner `json:"nested"`
	}
	type anySlice struct {
		Items []any `json:"items,omitzero"`
	}

	assert.Panics(t, func() { CheckOutputSchema[direct]("direct") })
	assert.Panics(t, func() { CheckOutputSchema[slice]("slice") })
	assert.Panics(t, func() { CheckOutputSchema[nested]("nested") })
	assert.NotPanics(t, func() { CheckOutputSchema[anySlice]("any_slice") })
}

func TestCheckOutputSchema_ToolOutputs(t *testing.T) {
	assert.NotPanics(t, func() { CheckOutputSchema[SearchOutput]("casesearch_search") })
	assert.NotPanics(t, func() { CheckOutputSchema[SuggestOutput]("casesearch_suggest") })
	assert.NotPanics(t, func() { CheckOutputSchema[AnalyticsOutput]("casesearch_analytics") })
	assert.NotPanics(t, func() { CheckOutputSchema[GetRecordOutput]("casesearch_get_record") })
}
