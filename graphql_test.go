package wealthsimple

import (
	"errors"
	"net/http"
	"testing"
)

// feedPage builds a FetchActivityFeedItems-shaped response.
func feedPage(t *testing.T, hasNext bool, endCursor string, types ...string) string {
	t.Helper()
	edges := make([]any, 0, len(types))
	for _, typ := range types {
		edges = append(edges, map[string]any{"node": map[string]any{"type": typ}})
	}
	return jbody(t, map[string]any{
		"data": map[string]any{
			"activityFeedItems": map[string]any{
				"edges": edges,
				"pageInfo": map[string]any{
					"hasNextPage": hasNext,
					"endCursor":   endCursor,
				},
			},
		},
	})
}

func TestExecutePagination(t *testing.T) {
	var cursors []string
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		vars := body["variables"].(map[string]any)
		cursor, _ := vars["cursor"].(string)
		cursors = append(cursors, cursor)
		if cursor == "" {
			return jsonResponse(200, feedPage(t, true, "C1", "DIVIDEND", "INTEREST"))
		}
		return jsonResponse(200, feedPage(t, false, "", "FEE"))
	}}
	c := newTestClient(t, ft)

	result, err := c.execute("FetchActivityFeedItems", map[string]any{"first": 2},
		"activityFeedItems.edges", expectSequence, queryOptions{loadAllPages: true})
	if err != nil {
		t.Fatalf("execute() unexpected error = %v", err)
	}

	items := result.([]any)
	if len(items) != 3 {
		t.Fatalf("execute() returned %d items, want 3", len(items))
	}
	// Pages are fetched strictly in cursor order and concatenated in order.
	want := []string{"DIVIDEND", "INTEREST", "FEE"}
	for i, item := range items {
		if got := str(item.(map[string]any), "type"); got != want[i] {
			t.Errorf("item %d = %q, want %q", i, got, want[i])
		}
	}
	if len(cursors) != 2 || cursors[0] != "" || cursors[1] != "C1" {
		t.Errorf("cursors sent = %v, want [\"\" \"C1\"]", cursors)
	}
}

func TestExecuteEdgesUnwrapped(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		return jsonResponse(200, feedPage(t, false, "", "DIVIDEND"))
	}}
	c := newTestClient(t, ft)

	result, err := c.execute("FetchActivityFeedItems", nil,
		"activityFeedItems.edges", expectSequence, queryOptions{})
	if err != nil {
		t.Fatalf("execute() unexpected error = %v", err)
	}
	items := result.([]any)
	if len(items) != 1 {
		t.Fatalf("execute() returned %d items, want 1", len(items))
	}
	// The edge wrapper must be gone: the item is the node itself.
	if _, isEdge := items[0].(map[string]any)["node"]; isEdge {
		t.Error("execute() returned a raw edge wrapper instead of its node")
	}
	if got := str(items[0].(map[string]any), "type"); got != "DIVIDEND" {
		t.Errorf("node type = %q, want DIVIDEND", got)
	}
}

func TestExecuteFilterAppliedPerPage(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		vars := body["variables"].(map[string]any)
		if _, ok := vars["cursor"]; !ok {
			return jsonResponse(200, feedPage(t, true, "C1", "DIVIDEND", "SKIP"))
		}
		return jsonResponse(200, feedPage(t, false, "", "SKIP", "FEE"))
	}}
	c := newTestClient(t, ft)

	keep := func(m map[string]any) bool { return str(m, "type") != "SKIP" }
	result, err := c.execute("FetchActivityFeedItems", map[string]any{},
		"activityFeedItems.edges", expectSequence, queryOptions{filter: keep, loadAllPages: true})
	if err != nil {
		t.Fatalf("execute() unexpected error = %v", err)
	}
	items := result.([]any)
	if len(items) != 2 {
		t.Fatalf("execute() returned %d items, want 2", len(items))
	}
}

func TestExecuteAllPagesOfMappingRejected(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		t.Fatal("no network call expected")
		return nil
	}}
	c := newTestClient(t, ft)

	_, err := c.execute("FetchSecurityMarketData", map[string]any{"id": "sec1"},
		"security", expectMapping, queryOptions{loadAllPages: true})
	if err == nil {
		t.Fatal("execute() expected an error for loadAllPages on a mapping")
	}
	if ft.calls != 0 {
		t.Errorf("execute() performed %d network calls, want 0", ft.calls)
	}
}

func TestExecuteMissingData(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		return jsonResponse(200, `{"errors":[{"message":"boom"}]}`)
	}}
	c := newTestClient(t, ft)

	_, err := c.execute("FetchSecurityMarketData", map[string]any{"id": "sec1"},
		"security", expectMapping, queryOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("execute() error = %v, want *APIError", err)
	}
	if apiErr.Response == nil {
		t.Error("APIError does not carry the raw response")
	}
}

func TestExecuteMissingPathSegment(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		return jsonResponse(200, `{"data":{"security":{"id":"sec1"}}}`)
	}}
	c := newTestClient(t, ft)

	_, err := c.execute("FetchSecurityHistoricalQuotes", map[string]any{"id": "sec1"},
		"security.historicalQuotes", expectSequence, queryOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("execute() error = %v, want *APIError", err)
	}
}

func TestExecuteShapeMismatch(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		return jsonResponse(200, `{"data":{"security":["not","a","mapping"]}}`)
	}}
	c := newTestClient(t, ft)

	_, err := c.execute("FetchSecurityMarketData", map[string]any{"id": "sec1"},
		"security", expectMapping, queryOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("execute() error = %v, want *APIError", err)
	}
}

func TestExecuteUnknownQuery(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		t.Fatal("no network call expected")
		return nil
	}}
	c := newTestClient(t, ft)

	if _, err := c.execute("NoSuchQuery", nil, "x", expectMapping, queryOptions{}); err == nil {
		t.Error("execute() expected an error for an unknown query name")
	}
}

func TestExecuteCursorLastSeenWins(t *testing.T) {
	// Both identity and identity.accounts expose a pageInfo; the one observed
	// later in the walk must drive the continuation request.
	var cursors []string
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		vars := body["variables"].(map[string]any)
		cursor, _ := vars["cursor"].(string)
		cursors = append(cursors, cursor)
		hasNext := cursor == ""
		return jsonResponse(200, jbody(t, map[string]any{
			"data": map[string]any{
				"identity": map[string]any{
					"pageInfo": map[string]any{"hasNextPage": hasNext, "endCursor": "OUTER"},
					"accounts": map[string]any{
						"pageInfo": map[string]any{"hasNextPage": hasNext, "endCursor": "INNER"},
						"edges":    []any{map[string]any{"node": map[string]any{"id": "acct-" + cursor}}},
					},
				},
			},
		}))
	}}
	c := newTestClient(t, ft)

	result, err := c.execute("FetchAllAccountFinancials",
		map[string]any{"identityId": "identity-xyz"},
		"identity.accounts.edges", expectSequence, queryOptions{loadAllPages: true})
	if err != nil {
		t.Fatalf("execute() unexpected error = %v", err)
	}
	if got := len(result.([]any)); got != 2 {
		t.Errorf("execute() returned %d nodes, want 2", got)
	}
	if len(cursors) != 2 || cursors[0] != "" || cursors[1] != "INNER" {
		t.Errorf("continuation cursors = %q, want [\"\" \"INNER\"]", cursors)
	}
}

func TestExecuteMalformedEdge(t *testing.T) {
	ft := &fakeTransport{handler: func(r *http.Request, body map[string]any) *http.Response {
		return jsonResponse(200, jbody(t, map[string]any{
			"data": map[string]any{
				"activityFeedItems": map[string]any{
					"pageInfo": map[string]any{"hasNextPage": false, "endCursor": nil},
					"edges": []any{
						map[string]any{"node": map[string]any{"type": "INTEREST"}},
						map[string]any{"cursor": "orphan"}, // no node
					},
				},
			},
		}))
	}}
	c := newTestClient(t, ft)

	_, err := c.execute("FetchActivityFeedItems", nil,
		"activityFeedItems.edges", expectSequence, queryOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("execute() error = %v, want *APIError for an edge without a node", err)
	}
}
