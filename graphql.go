package wealthsimple

import (
	"fmt"
	"maps"
	"strings"
)

// expectShape is the shape the caller expects at the end of the result path.
type expectShape int

const (
	expectSequence expectShape = iota // a JSON array
	expectMapping                     // a JSON object
)

// queryOptions tune one execute call. filter keeps only sequence elements
// for which it returns true, applied per page before concatenation.
// loadAllPages follows pagination cursors, strictly sequentially, until the
// last page.
type queryOptions struct {
	filter       func(map[string]any) bool
	loadAllPages bool
}

// execute runs a named query from the catalog and extracts the value at
// resultPath (dot-separated) under the response's "data" field.
//
// A result path ending in "edges" is unwrapped to the node of each edge.
// Any missing "data" field, missing path segment, malformed edge, or shape
// mismatch yields an *APIError naming the query and carrying the full
// response. Two failures are caller programming errors rather than remote
// ones and come back as plain errors, before any network call: asking to
// load all pages of a mapping result, and naming a query absent from the
// catalog.
func (c *Client) execute(queryName string, variables map[string]any, resultPath string, shape expectShape, opt queryOptions) (any, error) {
	if opt.loadAllPages && shape == expectMapping {
		return nil, fmt.Errorf("query %s: cannot load all pages of a mapping result", queryName)
	}

	var all []any
	cursor := ""
	for {
		vars := maps.Clone(variables)
		if vars == nil {
			vars = make(map[string]any)
		}
		if cursor != "" {
			vars["cursor"] = cursor
		}

		page, nextCursor, err := c.executePage(queryName, vars, resultPath, shape, opt.filter)
		if err != nil {
			return nil, err
		}
		if shape == expectMapping {
			return page, nil
		}

		all = append(all, page.([]any)...)
		if !opt.loadAllPages || nextCursor == "" {
			if all == nil {
				all = []any{}
			}
			return all, nil
		}
		cursor = nextCursor
	}
}

// executePage runs one page of a query. It returns the extracted value and
// the pagination cursor observed during the result path walk, if any; when
// several pageInfo objects are encountered the most recently observed one
// wins.
func (c *Client) executePage(queryName string, variables map[string]any, resultPath string, shape expectShape, filter func(map[string]any) bool) (any, string, error) {
	query, ok := graphqlQueries[queryName]
	if !ok {
		return nil, "", fmt.Errorf("unknown GraphQL query %q", queryName)
	}

	headers := map[string]string{
		"x-ws-profile":     "trade",
		"x-ws-api-version": graphqlVersion,
		"x-ws-locale":      "en-CA",
		"x-platform-os":    "web",
	}
	response, err := c.send("POST", graphqlURL, map[string]any{
		"operationName": queryName,
		"query":         query,
		"variables":     variables,
	}, headers)
	if err != nil {
		return nil, "", err
	}

	fail := func() (any, string, error) {
		return nil, "", &APIError{Msg: "GraphQL query failed: " + queryName, Response: response}
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		return fail()
	}

	// Walk the dotted path, remembering the latest pagination cursor seen.
	var node any = data
	var cursor string
	segments := strings.Split(resultPath, ".")
	for _, segment := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return fail()
		}
		node, ok = m[segment]
		if !ok {
			return fail()
		}
		if m, ok := node.(map[string]any); ok {
			if next := nextPageCursor(m); next != "" {
				cursor = next
			}
		}
	}

	// An "edges" sequence is always projected to its nodes.
	if len(segments) > 0 && segments[len(segments)-1] == "edges" {
		edges, ok := node.([]any)
		if !ok {
			return fail()
		}
		nodes := make([]any, 0, len(edges))
		for _, e := range edges {
			edge, ok := e.(map[string]any)
			if !ok {
				return fail()
			}
			// A malformed edge fails here rather than panicking in a caller's
			// record assertion.
			n, ok := edge["node"].(map[string]any)
			if !ok {
				return fail()
			}
			nodes = append(nodes, n)
		}
		node = nodes
	}

	switch shape {
	case expectSequence:
		seq, ok := node.([]any)
		if !ok {
			return fail()
		}
		if filter != nil {
			kept := make([]any, 0, len(seq))
			for _, e := range seq {
				if m, ok := e.(map[string]any); ok && filter(m) {
					kept = append(kept, e)
				}
			}
			seq = kept
		}
		return seq, cursor, nil
	case expectMapping:
		if _, ok := node.(map[string]any); !ok {
			return fail()
		}
	}
	return node, cursor, nil
}

// nextPageCursor extracts the end cursor from a node's pageInfo sub-object,
// or "" when there is no further page.
func nextPageCursor(node map[string]any) string {
	pageInfo, ok := node["pageInfo"].(map[string]any)
	if !ok {
		return ""
	}
	if hasNext, _ := pageInfo["hasNextPage"].(bool); !hasNext {
		return ""
	}
	return str(pageInfo, "endCursor")
}
