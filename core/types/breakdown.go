// Package types - Plan breakdown types
package types

import "github.com/shopspring/decimal"

// FeatureStatus is the resolved availability of a selected feature on a plan
type FeatureStatus string

const (
	// FeatureIncluded - usable on this plan for the declared usage
	FeatureIncluded FeatureStatus = "included"
	// FeatureUnavailable - not offered by the plan; makes the plan ineligible
	FeatureUnavailable FeatureStatus = "unavailable"
	// FeaturePublicOnly - restricted to public repositories
	FeaturePublicOnly FeatureStatus = "public_only"
	// FeatureAddonRequired - needs a security add-on that is not enabled
	FeatureAddonRequired FeatureStatus = "addon_required"
	// FeatureRequiresServer - needs the self-hosted deployment
	FeatureRequiresServer FeatureStatus = "requires_server"
	// FeatureRequiresCloud - needs the cloud deployment
	FeatureRequiresCloud FeatureStatus = "requires_cloud"
)

// String returns the string representation
func (s FeatureStatus) String() string {
	return string(s)
}

// FeatureResolution is one selected feature resolved against one plan
type FeatureResolution struct {
	Key         string        `json:"key"`
	DisplayName string        `json:"display_name"`
	Status      FeatureStatus `json:"status"`

	// Addon is set when Status is FeatureAddonRequired, or when the feature
	// is included because its add-on is enabled
	Addon AddonKind `json:"addon,omitempty"`
}

// KindUsage is the monthly compute usage of one runner configuration
type KindUsage struct {
	Kind              string          `json:"kind"`
	RawMinutes        decimal.Decimal `json:"raw_minutes"`
	BillingMultiplier decimal.Decimal `json:"billing_multiplier"`
	BilledMinutes     decimal.Decimal `json:"billed_minutes"`
}

// MachineUsage is the monthly usage of one dev-environment profile
type MachineUsage struct {
	CoreCount      int             `json:"core_count"`
	Developers     int             `json:"developers"`
	HoursPerWeek   decimal.Decimal `json:"hours_per_week"`
	MonthlyHours   decimal.Decimal `json:"monthly_hours"`
	CoreMultiplier decimal.Decimal `json:"core_multiplier"`
	CoreHours      decimal.Decimal `json:"core_hours"`
}

// ComputeDetail reports compute minutes against the plan quota
type ComputeDetail struct {
	// Informational is true for public repositories: usage is shown but not billed
	Informational bool `json:"informational"`

	Included      decimal.Decimal `json:"included"`
	Used          decimal.Decimal `json:"used"`
	RawMinutes    decimal.Decimal `json:"raw_minutes"`
	Overage       decimal.Decimal `json:"overage"`
	Cost          decimal.Decimal `json:"cost"`
	QuotaExceeded bool            `json:"quota_exceeded"`
	KindBreakdown []KindUsage     `json:"kind_breakdown,omitempty"`
	OverageByKind []KindOverage   `json:"overage_by_kind,omitempty"`
}

// KindOverage is the share of the compute overage charged to one runner kind
type KindOverage struct {
	Kind          string          `json:"kind"`
	BilledMinutes decimal.Decimal `json:"billed_minutes"`
	RawMinutes    decimal.Decimal `json:"raw_minutes"`
	Rate          decimal.Decimal `json:"rate"`
	Cost          decimal.Decimal `json:"cost"`
}

// QuotaDetail reports one metered dimension against its included quota
type QuotaDetail struct {
	Included decimal.Decimal `json:"included"`
	Used     decimal.Decimal `json:"used"`
	Overage  decimal.Decimal `json:"overage"`
	Cost     decimal.Decimal `json:"cost"`
}

// StorageTransferDetail covers the storage + transfer shaped products
type StorageTransferDetail struct {
	Storage  QuotaDetail     `json:"storage"`
	Transfer QuotaDetail     `json:"transfer"`
	Cost     decimal.Decimal `json:"cost"`
}

// DevEnvironmentDetail covers remote development compute and storage
type DevEnvironmentDetail struct {
	Compute          QuotaDetail     `json:"compute"`
	Storage          QuotaDetail     `json:"storage"`
	MachineBreakdown []MachineUsage  `json:"machine_breakdown,omitempty"`
	Cost             decimal.Decimal `json:"cost"`
}

// AssistantDetail covers the AI-assistant subscription
type AssistantDetail struct {
	Tier            *AssistantTier  `json:"tier,omitempty"`
	Seats           int             `json:"seats"`
	SeatCost        decimal.Decimal `json:"seat_cost"`
	OverageRequests int             `json:"overage_requests"`
	OverageCost     decimal.Decimal `json:"overage_cost"`
	Cost            decimal.Decimal `json:"cost"`
}

// SecurityDetail covers the security add-ons
type SecurityDetail struct {
	Committers           int             `json:"committers"`
	CodeSecurityCost     decimal.Decimal `json:"code_security_cost"`
	SecretProtectionCost decimal.Decimal `json:"secret_protection_cost"`
	Cost                 decimal.Decimal `json:"cost"`
}

// ResourceCosts holds the per-resource cost components
type ResourceCosts struct {
	Assistant       decimal.Decimal `json:"assistant"`
	Compute         decimal.Decimal `json:"compute"`
	Artifacts       decimal.Decimal `json:"artifacts"`
	LargeFiles      decimal.Decimal `json:"large_files"`
	DevEnvironments decimal.Decimal `json:"dev_environments"`
	Security        decimal.Decimal `json:"security"`
}

// Sum returns the sum of all components
func (c ResourceCosts) Sum() decimal.Decimal {
	return c.Assistant.
		Add(c.Compute).
		Add(c.Artifacts).
		Add(c.LargeFiles).
		Add(c.DevEnvironments).
		Add(c.Security)
}

// PlanBreakdown is the priced evaluation of one plan for one usage declaration.
// It is a pure output; a new calculation produces new breakdowns.
type PlanBreakdown struct {
	PlanKey  string `json:"plan_key"`
	PlanName string `json:"plan_name"`

	BaseCost decimal.Decimal `json:"base_cost"`
	Costs    ResourceCosts   `json:"costs"`

	Assistant       AssistantDetail       `json:"assistant"`
	Compute         ComputeDetail         `json:"compute"`
	Artifacts       StorageTransferDetail `json:"artifacts"`
	LargeFiles      StorageTransferDetail `json:"large_files"`
	DevEnvironments DevEnvironmentDetail  `json:"dev_environments"`
	Security        SecurityDetail        `json:"security"`

	Features []FeatureResolution `json:"features,omitempty"`
	Lines    []CostLine          `json:"lines,omitempty"`

	CanSupport bool     `json:"can_support"`
	Reasons    []string `json:"reasons,omitempty"`

	// UserCapExceeded is set when the plan is ineligible because of its seat cap
	UserCapExceeded bool `json:"user_cap_exceeded"`

	TotalCost decimal.Decimal `json:"total_cost"`
	Currency  Currency        `json:"currency"`
}

// IncludedFeatureCount counts selected features resolved as exactly included
func (b *PlanBreakdown) IncludedFeatureCount() int {
	n := 0
	for _, f := range b.Features {
		if f.Status == FeatureIncluded {
			n++
		}
	}
	return n
}

// Fail marks the plan as unable to support the usage
func (b *PlanBreakdown) Fail(reason string) {
	b.CanSupport = false
	b.Reasons = append(b.Reasons, reason)
}
