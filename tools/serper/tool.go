package serper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tailored-agentic-units/toolagents/core/protocol"
	"github.com/tailored-agentic-units/toolagents/tools"
)

// ToolName is the tool name offered to the model.
const ToolName = "NewsSearch"

// Tool returns the tool definition.
func Tool() protocol.Tool {
	return protocol.Tool{
		Name:        ToolName,
		Description: "Searches the internet for news articles using Serper.",
		Parameters: protocol.ObjectSchema(map[string]string{
			"search_query": "Mandatory search query you want to use to search the internet",
		}, "search_query"),
	}
}

// Handler returns a tool handler that searches with c.
func (c *Client) Handler() tools.Handler {
	return func(ctx context.Context, args json.RawMessage) (tools.Result, error) {
		if !gjson.ValidBytes(args) {
			return tools.Result{}, fmt.Errorf("invalid arguments: %s", args)
		}

		query := gjson.GetBytes(args, "search_query").String()
		if strings.TrimSpace(query) == "" {
			return tools.Result{Content: "search_query is required", IsError: true}, nil
		}

		results, err := c.Search(ctx, query)
		if err != nil {
			return tools.Result{}, err
		}
		return tools.Result{Content: FormatResults(query, results)}, nil
	}
}

// Register adds the NewsSearch tool backed by c to r.
func Register(r *tools.Registry, c *Client) error {
	return r.Register(Tool(), c.Handler())
}

// FormatResults renders results as a numbered list.
func FormatResults(query string, results []Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for %q:\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, r.Title)
		var meta []string
		if r.Source != "" {
			meta = append(meta, r.Source)
		}
		if r.Date != "" {
			meta = append(meta, r.Date)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(meta, ", "))
		}
		if r.Link != "" {
			fmt.Fprintf(&b, "   %s\n", r.Link)
		}
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
