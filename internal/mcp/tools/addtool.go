package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool checks the output type with CheckOutputSchema and registers the
// tool. It panics on a schema mismatch so broken tools fail at startup.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics if the zero value of T does not satisfy the
// schema the SDK infers for T.
//
// A nil slice marshals to null while the inferred schema says "array", so
// every slice in an output type needs omitzero. json.RawMessage is rejected
// outright: it marshals as inline JSON but is inferred as []byte.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, map[reflect.Type]bool{}); len(paths) > 0 {
		panic(fmt.Sprintf("tool %q: output %s uses json.RawMessage at %s; use any and types.ToAny instead",
			toolName, rt, strings.Join(paths, ", ")))
	}

	// Inference errors are reported by sdkmcp.AddTool itself.
	s, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := s.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}
	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf("tool %q: zero value of %s fails its output schema: %v (json: %s); add omitzero to slice fields",
			toolName, rt, err, data))
	}
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

func rawMessagePaths(t reflect.Type, path []string, seen map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if seen[t] {
		return nil
	}
	seen[t] = true
	defer delete(seen, t)

	var out []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			p := append(append([]string(nil), path...), f.Name)
			out = append(out, rawMessagePaths(f.Type, p, seen)...)
		}
	case reflect.Slice, reflect.Array:
		out = append(out, rawMessagePaths(t.Elem(), append(append([]string(nil), path...), "[]"), seen)...)
	case reflect.Map:
		out = append(out, rawMessagePaths(t.Elem(), append(append([]string(nil), path...), "[value]"), seen)...)
	}
	return out
}
