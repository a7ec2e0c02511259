// Package catalog - Tariff catalog
// Static reference data: plans with their included quotas, per-resource
// overage rates, the feature availability matrix and add-on requirements.
// A Catalog is built once and never mutated.
package catalog

import (
	"github.com/shopspring/decimal"

	"ghcost/core/determinism"
	"ghcost/core/types"
)

// ComputeQuota is the CI minutes allowance of a plan
type ComputeQuota struct {
	IncludedMinutes decimal.Decimal `yaml:"included_minutes" json:"included_minutes"`
	CanExceed       bool            `yaml:"can_exceed" json:"can_exceed"`
}

// StorageQuota is a storage + transfer allowance in GB
type StorageQuota struct {
	StorageGB  decimal.Decimal `yaml:"storage_gb" json:"storage_gb"`
	TransferGB decimal.Decimal `yaml:"transfer_gb" json:"transfer_gb"`
}

// DevEnvironmentQuota is the remote development allowance of a plan
type DevEnvironmentQuota struct {
	CoreHours decimal.Decimal `yaml:"core_hours" json:"core_hours"`
	StorageGB decimal.Decimal `yaml:"storage_gb" json:"storage_gb"`
}

// Plan is a subscription plan
type Plan struct {
	Key         string          `yaml:"key" json:"key"`
	DisplayName string          `yaml:"name" json:"name"`
	BaseCost    decimal.Decimal `yaml:"base_cost" json:"base_cost"`
	PerUserCost decimal.Decimal `yaml:"per_user_cost" json:"per_user_cost"`

	// MaxUsers caps the team size; 0 means unlimited
	MaxUsers int `yaml:"max_users" json:"max_users"`

	// SecurityAddons reports whether the plan can buy security add-ons
	SecurityAddons bool `yaml:"security_addons" json:"security_addons"`

	Compute         ComputeQuota        `yaml:"compute" json:"compute"`
	Artifacts       StorageQuota        `yaml:"artifacts" json:"artifacts"`
	LargeFiles      StorageQuota        `yaml:"large_files" json:"large_files"`
	DevEnvironments DevEnvironmentQuota `yaml:"dev_environments" json:"dev_environments"`
}

// ComputeProfile prices one execution environment kind
type ComputeProfile struct {
	Kind              string          `yaml:"kind" json:"kind"`
	DisplayName       string          `yaml:"name" json:"name"`
	BillingMultiplier decimal.Decimal `yaml:"multiplier" json:"multiplier"`
	OverageRate       decimal.Decimal `yaml:"overage_rate" json:"overage_rate"`
}

// OverageRates prices storage + transfer overage
type OverageRates struct {
	StoragePerGBMonth decimal.Decimal `yaml:"storage" json:"storage"`
	TransferPerGB     decimal.Decimal `yaml:"transfer" json:"transfer"`
}

// DevEnvironmentRates prices remote development overage
type DevEnvironmentRates struct {
	BaseCoreRatePerHour decimal.Decimal         `yaml:"base_core_rate" json:"base_core_rate"`
	CoreMultipliers     map[int]decimal.Decimal `yaml:"core_multipliers" json:"core_multipliers"`
	StoragePerGBMonth   decimal.Decimal         `yaml:"storage_rate" json:"storage_rate"`
}

// SecurityAddonRates are per active committer per month
type SecurityAddonRates struct {
	CodeSecurity     decimal.Decimal `yaml:"code_security" json:"code_security"`
	SecretProtection decimal.Decimal `yaml:"secret_protection" json:"secret_protection"`
}

// Rate returns the per-committer rate of an add-on
func (r SecurityAddonRates) Rate(kind types.AddonKind) decimal.Decimal {
	if kind == types.AddonSecretProtection {
		return r.SecretProtection
	}
	return r.CodeSecurity
}

// AssistantRates prices the AI-assistant subscription
type AssistantRates struct {
	IndividualFree     decimal.Decimal `yaml:"individual_free" json:"individual_free"`
	IndividualStandard decimal.Decimal `yaml:"individual_standard" json:"individual_standard"`
	IndividualPremium  decimal.Decimal `yaml:"individual_premium" json:"individual_premium"`
	OrgStandard        decimal.Decimal `yaml:"org_standard" json:"org_standard"`
	OrgPremium         decimal.Decimal `yaml:"org_premium" json:"org_premium"`
	PerOverageRequest  decimal.Decimal `yaml:"overage_request" json:"overage_request"`
}

// SeatRate returns the monthly rate of a tier: flat for individual tiers,
// per seat for organizational ones
func (r AssistantRates) SeatRate(tier types.AssistantTier) decimal.Decimal {
	switch tier {
	case types.AssistantIndividualFree:
		return r.IndividualFree
	case types.AssistantIndividualStandard:
		return r.IndividualStandard
	case types.AssistantIndividualPremium:
		return r.IndividualPremium
	case types.AssistantOrgStandard:
		return r.OrgStandard
	case types.AssistantOrgPremium:
		return r.OrgPremium
	default:
		return decimal.Zero
	}
}

// Feature is a named capability gated by plan
type Feature struct {
	Key          string                  `yaml:"key" json:"key"`
	DisplayName  string                  `yaml:"name" json:"name"`
	Availability map[string]Availability `yaml:"availability" json:"availability"`
}

// On returns the availability of the feature on a plan. Plans missing from
// the matrix do not offer the feature.
func (f *Feature) On(planKey string) Availability {
	if a, ok := f.Availability[planKey]; ok {
		return a
	}
	return Of(Unavailable)
}

// Catalog is the immutable tariff catalog
type Catalog struct {
	currency    types.Currency
	fingerprint determinism.ContentHash

	plans     []*Plan
	planIndex map[string]*Plan

	profiles     []*ComputeProfile
	profileIndex map[string]*ComputeProfile

	artifactRates  OverageRates
	largeFileRates OverageRates
	devRates       DevEnvironmentRates
	securityRates  SecurityAddonRates
	assistantRates AssistantRates

	features          []*Feature
	featureIndex      map[string]*Feature
	addonRequirements map[string]types.AddonKind
}

// Fingerprint identifies the tariff content the catalog was built from
func (c *Catalog) Fingerprint() determinism.ContentHash {
	return c.fingerprint
}

// Currency returns the tariff currency
func (c *Catalog) Currency() types.Currency {
	return c.currency
}

// Plans returns plans in declaration order
func (c *Catalog) Plans() []*Plan {
	out := make([]*Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// Plan returns a plan by key
func (c *Catalog) Plan(key string) (*Plan, bool) {
	p, ok := c.planIndex[key]
	return p, ok
}

// ComputeProfiles returns compute profiles in declaration order
func (c *Catalog) ComputeProfiles() []*ComputeProfile {
	out := make([]*ComputeProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// ComputeProfile returns the profile of a runner kind
func (c *Catalog) ComputeProfile(kind string) (*ComputeProfile, bool) {
	p, ok := c.profileIndex[kind]
	return p, ok
}

// CoreMultiplier returns the core-hour multiplier of a machine size
func (c *Catalog) CoreMultiplier(cores int) (decimal.Decimal, bool) {
	m, ok := c.devRates.CoreMultipliers[cores]
	return m, ok
}

// CoreCounts returns the offered machine sizes in ascending order
func (c *Catalog) CoreCounts() []int {
	return determinism.SortedKeys(c.devRates.CoreMultipliers)
}

// ArtifactRates returns the artifact storage/transfer overage rates
func (c *Catalog) ArtifactRates() OverageRates { return c.artifactRates }

// LargeFileRates returns the large-file storage/bandwidth overage rates
func (c *Catalog) LargeFileRates() OverageRates { return c.largeFileRates }

// DevEnvironmentRates returns remote development rates
func (c *Catalog) DevEnvironmentRates() DevEnvironmentRates { return c.devRates }

// SecurityAddonRates returns add-on rates
func (c *Catalog) SecurityAddonRates() SecurityAddonRates { return c.securityRates }

// AssistantRates returns AI-assistant rates
func (c *Catalog) AssistantRates() AssistantRates { return c.assistantRates }

// Features returns features in declaration order
func (c *Catalog) Features() []*Feature {
	out := make([]*Feature, len(c.features))
	copy(out, c.features)
	return out
}

// Feature returns a feature by key
func (c *Catalog) Feature(key string) (*Feature, bool) {
	f, ok := c.featureIndex[key]
	return f, ok
}

// RequiredAddon returns the add-on that unlocks an addon_required feature
func (c *Catalog) RequiredAddon(featureKey string) (types.AddonKind, bool) {
	kind, ok := c.addonRequirements[featureKey]
	return kind, ok
}

// Stats returns catalog statistics
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		Plans:           len(c.plans),
		ComputeProfiles: len(c.profiles),
		Features:        len(c.features),
		ByAvailability:  make(map[string]int),
	}
	for _, f := range c.features {
		for _, p := range c.plans {
			stats.ByAvailability[f.On(p.Key).Kind.String()]++
		}
	}
	return stats
}

// CatalogStats holds catalog statistics
type CatalogStats struct {
	Plans           int
	ComputeProfiles int
	Features        int
	// ByAvailability counts plan×feature cells per availability kind
	ByAvailability map[string]int
}
