// Package types - Usage declaration types
package types

import (
	"math"
)

// AddonKind identifies a security add-on priced per active committer
type AddonKind string

const (
	AddonCodeSecurity     AddonKind = "code_security"
	AddonSecretProtection AddonKind = "secret_protection"
)

// String returns the string representation
func (k AddonKind) String() string {
	return string(k)
}

// DisplayName returns the product name of the add-on
func (k AddonKind) DisplayName() string {
	switch k {
	case AddonCodeSecurity:
		return "Code Security"
	case AddonSecretProtection:
		return "Secret Protection"
	default:
		return string(k)
	}
}

// Valid reports whether k is a known add-on
func (k AddonKind) Valid() bool {
	return k == AddonCodeSecurity || k == AddonSecretProtection
}

// AssistantTier identifies an AI-assistant subscription tier
type AssistantTier string

const (
	AssistantIndividualFree     AssistantTier = "individual_free"
	AssistantIndividualStandard AssistantTier = "individual_standard"
	AssistantIndividualPremium  AssistantTier = "individual_premium"
	AssistantOrgStandard        AssistantTier = "org_standard"
	AssistantOrgPremium         AssistantTier = "org_premium"
)

// AssistantTiers lists every tier in display order
var AssistantTiers = []AssistantTier{
	AssistantIndividualFree,
	AssistantIndividualStandard,
	AssistantIndividualPremium,
	AssistantOrgStandard,
	AssistantOrgPremium,
}

// String returns the string representation
func (t AssistantTier) String() string {
	return string(t)
}

// IsOrganizational reports whether the tier is billed per seat
func (t AssistantTier) IsOrganizational() bool {
	return t == AssistantOrgStandard || t == AssistantOrgPremium
}

// Valid reports whether t is a known tier
func (t AssistantTier) Valid() bool {
	for _, known := range AssistantTiers {
		if t == known {
			return true
		}
	}
	return false
}

// ComputeItem is one CI runner configuration
type ComputeItem struct {
	// Kind is the execution environment (e.g. linux, windows, macos)
	Kind string `json:"kind"`

	// JobsPerDay is the number of jobs started per day
	JobsPerDay float64 `json:"jobs_per_day"`

	// DurationMinutes is the average job duration
	DurationMinutes float64 `json:"duration_minutes"`
}

// DevEnvironmentItem is one remote development machine profile
type DevEnvironmentItem struct {
	// CoreCount is the machine size
	CoreCount int `json:"core_count"`

	// DeveloperCount is the number of developers using this profile
	DeveloperCount int `json:"developer_count"`

	// HoursPerWeekPerDeveloper is the active time per developer
	HoursPerWeekPerDeveloper float64 `json:"hours_per_week_per_developer"`
}

// UsageDeclaration is the fully resolved monthly usage of a team.
// Sections that are switched off in the input layer are simply zero.
type UsageDeclaration struct {
	TeamSize         int  `json:"team_size"`
	PublicRepository bool `json:"public_repository"`

	Compute         []ComputeItem        `json:"compute,omitempty"`
	DevEnvironments []DevEnvironmentItem `json:"dev_environments,omitempty"`

	ArtifactStorageGB    float64 `json:"artifact_storage_gb"`
	ArtifactTransferGB   float64 `json:"artifact_transfer_gb"`
	LargeFileStorageGB   float64 `json:"large_file_storage_gb"`
	LargeFileBandwidthGB float64 `json:"large_file_bandwidth_gb"`

	StoredDevEnvironments float64 `json:"stored_dev_environments"`
	AverageProjectSizeGB  float64 `json:"average_project_size_gb"`

	// SecurityCommitters defaults to TeamSize when zero
	SecurityCommitters int  `json:"security_committers"`
	CodeSecurity       bool `json:"code_security"`
	SecretProtection   bool `json:"secret_protection"`

	// AssistantPlan is nil when no assistant subscription is wanted
	AssistantPlan *AssistantTier `json:"assistant_plan,omitempty"`
	// AssistantSeats defaults to TeamSize when zero
	AssistantSeats           int `json:"assistant_seats"`
	AssistantOverageRequests int `json:"assistant_overage_requests"`

	// Features are the selected feature keys
	Features []string `json:"features,omitempty"`
}

// Normalize returns a copy safe to price: negative values are clamped to
// zero, non-finite values become zero, the team has at least one member and
// feature keys are de-duplicated keeping first-seen order.
func (d UsageDeclaration) Normalize() UsageDeclaration {
	out := d

	if out.TeamSize < 1 {
		out.TeamSize = 1
	}

	out.Compute = make([]ComputeItem, len(d.Compute))
	for i, item := range d.Compute {
		out.Compute[i] = ComputeItem{
			Kind:            item.Kind,
			JobsPerDay:      clampFloat(item.JobsPerDay),
			DurationMinutes: clampFloat(item.DurationMinutes),
		}
	}

	out.DevEnvironments = make([]DevEnvironmentItem, len(d.DevEnvironments))
	for i, item := range d.DevEnvironments {
		out.DevEnvironments[i] = DevEnvironmentItem{
			CoreCount:                item.CoreCount,
			DeveloperCount:           clampInt(item.DeveloperCount),
			HoursPerWeekPerDeveloper: clampFloat(item.HoursPerWeekPerDeveloper),
		}
	}

	out.ArtifactStorageGB = clampFloat(d.ArtifactStorageGB)
	out.ArtifactTransferGB = clampFloat(d.ArtifactTransferGB)
	out.LargeFileStorageGB = clampFloat(d.LargeFileStorageGB)
	out.LargeFileBandwidthGB = clampFloat(d.LargeFileBandwidthGB)
	out.StoredDevEnvironments = clampFloat(d.StoredDevEnvironments)
	out.AverageProjectSizeGB = clampFloat(d.AverageProjectSizeGB)

	out.SecurityCommitters = clampInt(d.SecurityCommitters)
	out.AssistantSeats = clampInt(d.AssistantSeats)
	out.AssistantOverageRequests = clampInt(d.AssistantOverageRequests)

	if d.AssistantPlan != nil {
		tier := *d.AssistantPlan
		out.AssistantPlan = &tier
	}

	out.Features = nil
	seen := make(map[string]bool, len(d.Features))
	for _, key := range d.Features {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Features = append(out.Features, key)
	}

	return out
}

// EffectiveCommitters returns the committer count used for add-on pricing
func (d UsageDeclaration) EffectiveCommitters() int {
	if d.SecurityCommitters > 0 {
		return d.SecurityCommitters
	}
	return d.TeamSize
}

// EffectiveAssistantSeats returns the seat count used for organizational tiers
func (d UsageDeclaration) EffectiveAssistantSeats() int {
	if d.AssistantSeats > 0 {
		return d.AssistantSeats
	}
	return d.TeamSize
}

// SecurityRequested reports whether any security add-on is asked for
func (d UsageDeclaration) SecurityRequested() bool {
	return d.EffectiveCommitters() > 0 && (d.CodeSecurity || d.SecretProtection)
}

// AddonEnabled reports whether the given add-on is switched on
func (d UsageDeclaration) AddonEnabled(kind AddonKind) bool {
	switch kind {
	case AddonCodeSecurity:
		return d.CodeSecurity
	case AddonSecretProtection:
		return d.SecretProtection
	default:
		return false
	}
}

func clampFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
