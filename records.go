package wealthsimple

// The provider returns loosely structured records whose field set varies by
// account and activity type. They are kept as the decoded JSON mappings;
// aliases (rather than defined types) keep them compatible with jsonpath and
// plain map code.

// Account is a raw account record. Describe adds the computed "description"
// and "number" fields.
type Account = map[string]any

// Activity is a raw activity feed item. Describe adds the computed
// "description" field, and back-fills "currency" for subdivisions.
type Activity = map[string]any

// Security is a raw security market data record.
type Security = map[string]any

// Transfer is a raw funds-transfer or institutional-transfer record.
type Transfer = map[string]any

// str returns the record field as a string, or "" when absent or not a
// string.
func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
