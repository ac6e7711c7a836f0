package model

import "strings"

// pricePer1K is USD per 1k total tokens, matched by name prefix.
var pricePer1K = []struct {
	prefix string
	price  float64
}{
	{"gpt-4-turbo", 0.02},
	{"gpt-4o", 0.01},
	{"gpt-4", 0.045},
	{"gpt-3.5-turbo", 0.001},
}

// Budget tracks spend against an optional USD limit.
type Budget struct {
	Limit *float64
	Spent float64
}

// CostOf estimates the price of a completion.
func CostOf(modelName string, usage Usage) float64 {
	name := strings.ToLower(WireModel(modelName))
	for _, p := range pricePer1K {
		if strings.HasPrefix(name, p.prefix) {
			return float64(usage.TotalTokens) / 1000 * p.price
		}
	}
	return 0
}

// Add records a completion and reports whether the limit is now exceeded.
func (b *Budget) Add(modelName string, usage Usage) bool {
	b.Spent += CostOf(modelName, usage)
	return b.Exceeded()
}

// Exceeded reports whether spend has reached the limit. A non-positive
// limit disables the check.
func (b *Budget) Exceeded() bool {
	return b.Limit != nil && *b.Limit > 0 && b.Spent >= *b.Limit
}
