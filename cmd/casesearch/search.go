package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/usestring/casesearch/internal/query"
	"github.com/usestring/casesearch/pkg/types"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run one search and print the response as JSON",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "request",
				Usage: "Read a full JSON search request from a file (- for stdin) instead of flags",
			},
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "Result types to search (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "status",
				Usage: "Status values to keep (repeatable)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort field: relevance, date, priority, status",
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "Sort order: asc or desc",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "1-based page",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Results per page",
			},
			&cli.StringFlag{
				Name:  "jq",
				Usage: "jq expression applied to the response",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "User ID recorded in search history",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var proj *query.Projection
			if expr := c.String("jq"); expr != "" {
				p, err := query.Compile(expr)
				if err != nil {
					return err
				}
				proj = p
			}

			server, err := newServer(c)
			if err != nil {
				return err
			}
			defer server.Close()
			svc := server.Deps().Search

			var resp *types.SearchResponse
			if path := c.String("request"); path != "" {
				data, err := readRequest(path)
				if err != nil {
					return err
				}
				resp, err = svc.SearchJSON(ctx, data, c.String("user"))
				if err != nil {
					return err
				}
			} else {
				resp, err = svc.Search(ctx, requestFromFlags(c), c.String("user"))
				if err != nil {
					return err
				}
			}

			if proj == nil {
				return printJSON(c.Root().Writer, resp)
			}
			res, err := proj.Apply(ctx, resp, query.Options{})
			if err != nil {
				return err
			}
			for _, v := range res.Values {
				if err := printJSON(c.Root().Writer, v); err != nil {
					return err
				}
			}
			for _, e := range res.Errors {
				fmt.Fprintln(c.Root().ErrWriter, "jq:", e)
			}
			return nil
		},
	}
}

func requestFromFlags(c *cli.Command) *types.SearchRequest {
	req := &types.SearchRequest{Query: strings.Join(c.Args().Slice(), " ")}

	f := &types.Filters{Status: c.StringSlice("status")}
	for _, t := range c.StringSlice("type") {
		f.Types = append(f.Types, types.ResultType(strings.ToLower(t)))
	}
	req.Filters = f

	if c.IsSet("sort") || c.IsSet("order") {
		req.Sort = &types.Sort{
			Field: types.SortField(strings.ToLower(c.String("sort"))),
			Order: types.SortOrder(strings.ToLower(c.String("order"))),
		}
	}
	if c.IsSet("page") || c.IsSet("limit") {
		req.Pagination = &types.Pagination{Page: c.Int("page"), Limit: c.Int("limit")}
	}
	return req
}

func readRequest(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
