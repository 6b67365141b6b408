package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/casesearch/internal/mcp/tools"
	"github.com/usestring/casesearch/pkg/types"
)

// Resource URI scheme: casesearch://
// Supported URIs:
//   casesearch://record/{type}/{id}
//   casesearch://schema/search-request

const (
	uriScheme        = "casesearch://"
	requestSchemaURI = uriScheme + "schema/search-request"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: uriScheme + "record/{type}/{id}",
		Name:        "Record",
		Description: "Full case, evidence, suspect, victim or investigation record. Same data as casesearch_get_record.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceRecord)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         requestSchemaURI,
		Name:        "Search Request Schema",
		Description: "JSON Schema that search requests are validated against.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceSchema)
}

func (s *Server) handleResourceRecord(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	rec, err := tools.LookupRecord(ctx, s.deps.Entities, types.ResultType(params["type"]), params["id"])
	if err != nil {
		var coded *tools.CodedError
		if errors.As(err, &coded) && coded.Code == tools.ErrCodeNotFound {
			return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, err
	}
	return toResourceResult(req.Params.URI, rec)
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return toResourceResult(req.Params.URI, s.deps.Search.Validator().Schema())
}

// parseResourceURI extracts parameters from a casesearch:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + uriScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, uriScheme), "/")
	switch parts[0] {
	case "record":
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return nil, tools.ErrInvalidInput("record URI requires type and id")
		}
		return map[string]string{"type": parts[1], "id": parts[2]}, nil
	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", parts[0]))
	}
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
