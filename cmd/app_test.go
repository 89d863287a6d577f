package cmd

import "testing"

func TestNode(t *testing.T) {
	record := map[string]any{
		"financials": map[string]any{
			"currentCombined": map[string]any{
				"netLiquidationValue": map[string]any{"cents": float64(100), "currency": "CAD"},
			},
		},
	}

	if n := node(record, "financials", "currentCombined", "netLiquidationValue"); n == nil {
		t.Error("node() = nil for an existing path")
	} else if n["currency"] != "CAD" {
		t.Errorf("node() = %v", n)
	}
	if n := node(record, "financials", "missing", "netLiquidationValue"); n != nil {
		t.Errorf("node() = %v for a missing path, want nil", n)
	}
	if n := node(nil, "financials"); n != nil {
		t.Errorf("node(nil) = %v, want nil", n)
	}
}

func TestField(t *testing.T) {
	record := map[string]any{"symbol": "XEQT", "volume": float64(42), "status": nil}

	if got := field(record, "symbol"); got != "XEQT" {
		t.Errorf("field(symbol) = %q, want XEQT", got)
	}
	if got := field(record, "volume"); got != "42" {
		t.Errorf("field(volume) = %q, want 42", got)
	}
	if got := field(record, "status"); got != "" {
		t.Errorf("field(status) = %q, want empty for null", got)
	}
	if got := field(record, "absent"); got != "" {
		t.Errorf("field(absent) = %q, want empty", got)
	}
}
