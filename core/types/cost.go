// Package types - Cost line types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

// CurrencyUSD is the only currency the tariff is published in
const CurrencyUSD Currency = "USD"

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Resource identifies a metered product
type Resource string

const (
	ResourceBase            Resource = "base"
	ResourceAssistant       Resource = "assistant"
	ResourceCompute         Resource = "compute"
	ResourceArtifacts       Resource = "artifacts"
	ResourceLargeFiles      Resource = "large_files"
	ResourceDevEnvironments Resource = "dev_environments"
	ResourceSecurity        Resource = "security"
)

// String returns the string representation
func (r Resource) String() string {
	return string(r)
}

// CostLine is a single billable line item of a plan breakdown
type CostLine struct {
	// Resource is the metered product this line belongs to
	Resource Resource `json:"resource"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Measure is the billing unit (e.g. "minutes", "GB-month", "seats")
	Measure string `json:"measure"`

	// Quantity is the billable quantity (overage, seats, committers)
	Quantity decimal.Decimal `json:"quantity"`

	// Rate is the unit price
	Rate decimal.Decimal `json:"rate"`

	// Amount is the calculated cost
	Amount decimal.Decimal `json:"amount"`

	// Formula describes how the amount was calculated
	Formula string `json:"formula"`
}

// OverageOf returns max(0, used - included)
func OverageOf(used, included decimal.Decimal) decimal.Decimal {
	over := used.Sub(included)
	if over.IsNegative() {
		return decimal.Zero
	}
	return over
}
