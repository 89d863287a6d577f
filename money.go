package wealthsimple

import "github.com/Rhymond/go-money"

// Money is a monetary value as the API returns it: an amount in minor units
// plus an ISO currency code.
type Money struct {
	Cents    int64
	Currency string
}

// MoneyFromRecord extracts a Money from a raw {amount, cents, currency}
// node, such as an account's netLiquidationValue.
func MoneyFromRecord(node map[string]any) (Money, bool) {
	cents, ok := node["cents"].(float64)
	if !ok {
		return Money{}, false
	}
	cur := str(node, "currency")
	if cur == "" {
		return Money{}, false
	}
	return Money{Cents: int64(cents), Currency: cur}, true
}

// String formats the value with its currency's display conventions.
func (m Money) String() string {
	return money.New(m.Cents, m.Currency).Display()
}
