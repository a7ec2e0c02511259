// Package input is the collaborator layer in front of the engine.
// It decodes usage documents from files, API bodies and the interactive
// form, enforces the domain limits and resolves them into a
// types.UsageDeclaration. Absent sections mean the section is switched off.
package input

import (
	"math"

	"ghcost/core/types"
)

// Domain limits applied to declared usage
const (
	MaxJobsPerDay      = 1000
	MaxDurationMinutes = 360
	MaxHoursPerWeek    = 168
)

// Document is the serialized form of a usage declaration
type Document struct {
	TeamSize         int  `yaml:"team_size" json:"team_size" hcl:"team_size,optional" validate:"gte=1"`
	PublicRepository bool `yaml:"public_repository" json:"public_repository" hcl:"public_repository,optional"`

	Compute         []Runner  `yaml:"compute" json:"compute" hcl:"compute,block" validate:"dive"`
	DevEnvironments []Machine `yaml:"dev_environments" json:"dev_environments" hcl:"dev_environment,block" validate:"dive"`

	Artifacts  *Storage    `yaml:"artifacts" json:"artifacts" hcl:"artifacts,block"`
	LargeFiles *Storage    `yaml:"large_files" json:"large_files" hcl:"large_files,block"`
	DevStorage *DevStorage `yaml:"dev_storage" json:"dev_storage" hcl:"dev_storage,block"`
	Security   *Security   `yaml:"security" json:"security" hcl:"security,block"`
	Assistant  *Assistant  `yaml:"assistant" json:"assistant" hcl:"assistant,block"`

	Features []string `yaml:"features" json:"features" hcl:"features,optional" validate:"dive,required"`
}

// Runner is one CI runner configuration
type Runner struct {
	Kind            string  `yaml:"kind" json:"kind" hcl:"kind,label" validate:"required"`
	JobsPerDay      float64 `yaml:"jobs_per_day" json:"jobs_per_day" hcl:"jobs_per_day,optional" validate:"gte=0,lte=1000"`
	DurationMinutes float64 `yaml:"duration_minutes" json:"duration_minutes" hcl:"duration_minutes,optional" validate:"gte=0,lte=360"`
}

// Machine is one remote development machine profile
type Machine struct {
	Cores        int     `yaml:"cores" json:"cores" hcl:"cores" validate:"gt=0"`
	Developers   int     `yaml:"developers" json:"developers" hcl:"developers,optional" validate:"gte=0"`
	HoursPerWeek float64 `yaml:"hours_per_week" json:"hours_per_week" hcl:"hours_per_week,optional" validate:"gte=0,lte=168"`
}

// Storage is a storage + transfer usage pair in GB
type Storage struct {
	StorageGB  float64 `yaml:"storage_gb" json:"storage_gb" hcl:"storage_gb,optional" validate:"gte=0"`
	TransferGB float64 `yaml:"transfer_gb" json:"transfer_gb" hcl:"transfer_gb,optional" validate:"gte=0"`
}

// DevStorage is the stored dev environment footprint
type DevStorage struct {
	StoredEnvironments   float64 `yaml:"stored_environments" json:"stored_environments" hcl:"stored_environments,optional" validate:"gte=0"`
	AverageProjectSizeGB float64 `yaml:"average_project_size_gb" json:"average_project_size_gb" hcl:"average_project_size_gb,optional" validate:"gte=0"`
}

// Security selects the security add-ons
type Security struct {
	Committers       int  `yaml:"committers" json:"committers" hcl:"committers,optional" validate:"gte=0"`
	CodeSecurity     bool `yaml:"code_security" json:"code_security" hcl:"code_security,optional"`
	SecretProtection bool `yaml:"secret_protection" json:"secret_protection" hcl:"secret_protection,optional"`
}

// Assistant selects the AI-assistant subscription
type Assistant struct {
	Plan            string `yaml:"plan" json:"plan" hcl:"plan,optional" validate:"omitempty,oneof=individual_free individual_standard individual_premium org_standard org_premium"`
	Seats           int    `yaml:"seats" json:"seats" hcl:"seats,optional" validate:"gte=0"`
	OverageRequests int    `yaml:"overage_requests" json:"overage_requests" hcl:"overage_requests,optional" validate:"gte=0"`
}

// Declaration resolves the document into a declaration. Values are clamped
// to the domain limits; it never fails.
func (doc Document) Declaration() types.UsageDeclaration {
	d := types.UsageDeclaration{
		TeamSize:         doc.TeamSize,
		PublicRepository: doc.PublicRepository,
		Features:         doc.Features,
	}
	if d.TeamSize < 1 {
		d.TeamSize = 1
	}

	for _, r := range doc.Compute {
		d.Compute = append(d.Compute, types.ComputeItem{
			Kind:            r.Kind,
			JobsPerDay:      clamp(r.JobsPerDay, MaxJobsPerDay),
			DurationMinutes: clamp(r.DurationMinutes, MaxDurationMinutes),
		})
	}

	for _, m := range doc.DevEnvironments {
		d.DevEnvironments = append(d.DevEnvironments, types.DevEnvironmentItem{
			CoreCount:                m.Cores,
			DeveloperCount:           max(m.Developers, 0),
			HoursPerWeekPerDeveloper: clamp(m.HoursPerWeek, MaxHoursPerWeek),
		})
	}

	if doc.Artifacts != nil {
		d.ArtifactStorageGB = doc.Artifacts.StorageGB
		d.ArtifactTransferGB = doc.Artifacts.TransferGB
	}
	if doc.LargeFiles != nil {
		d.LargeFileStorageGB = doc.LargeFiles.StorageGB
		d.LargeFileBandwidthGB = doc.LargeFiles.TransferGB
	}
	if doc.DevStorage != nil {
		d.StoredDevEnvironments = doc.DevStorage.StoredEnvironments
		d.AverageProjectSizeGB = doc.DevStorage.AverageProjectSizeGB
	}
	if doc.Security != nil {
		d.SecurityCommitters = doc.Security.Committers
		d.CodeSecurity = doc.Security.CodeSecurity
		d.SecretProtection = doc.Security.SecretProtection
	}
	if doc.Assistant != nil {
		if tier := types.AssistantTier(doc.Assistant.Plan); tier.Valid() {
			d.AssistantPlan = &tier
		}
		d.AssistantSeats = doc.Assistant.Seats
		d.AssistantOverageRequests = doc.Assistant.OverageRequests
	}

	return d.Normalize()
}

// clamp bounds v to [0, limit]; NaN becomes zero
func clamp(v, limit float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
