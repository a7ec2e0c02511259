// Package input - Interactive form model
package input

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// DefaultRunnerKind and DefaultMachineCores seed new rows
const (
	DefaultRunnerKind   = "linux"
	DefaultMachineCores = 2
)

// RunnerRow is one runner row of the form, as typed
type RunnerRow struct {
	Kind            string `json:"kind"`
	JobsPerDay      string `json:"jobs_per_day"`
	DurationMinutes string `json:"duration_minutes"`
}

// MachineRow is one machine row of the form, as typed
type MachineRow struct {
	Cores        string `json:"cores"`
	Developers   string `json:"developers"`
	HoursPerWeek string `json:"hours_per_week"`
}

// Sections are the form toggles. A disabled section contributes no usage.
type Sections struct {
	Compute         bool `json:"compute"`
	Artifacts       bool `json:"artifacts"`
	LargeFiles      bool `json:"large_files"`
	DevEnvironments bool `json:"dev_environments"`
	Security        bool `json:"security"`
	Assistant       bool `json:"assistant"`
}

// Form holds the raw state of the interactive calculator. Numeric fields
// are kept as typed text and only coerced by Document. Row operations
// return a new Form and never touch the receiver.
type Form struct {
	TeamSize string   `json:"team_size"`
	Sections Sections `json:"sections"`

	PublicRepository bool         `json:"public_repository"`
	Runners          []RunnerRow  `json:"runners"`
	Machines         []MachineRow `json:"machines"`

	ArtifactStorageGB    string `json:"artifact_storage_gb"`
	ArtifactTransferGB   string `json:"artifact_transfer_gb"`
	LargeFileStorageGB   string `json:"large_file_storage_gb"`
	LargeFileBandwidthGB string `json:"large_file_bandwidth_gb"`

	StoredEnvironments   string `json:"stored_environments"`
	AverageProjectSizeGB string `json:"average_project_size_gb"`

	Committers       string `json:"committers"`
	CodeSecurity     bool   `json:"code_security"`
	SecretProtection bool   `json:"secret_protection"`

	AssistantPlan            string `json:"assistant_plan"`
	AssistantSeats           string `json:"assistant_seats"`
	AssistantOverageRequests string `json:"assistant_overage_requests"`

	Features []string `json:"features"`
}

// NewForm returns an empty form with one runner row and one machine row
func NewForm() Form {
	return Form{
		TeamSize: "1",
		Runners:  []RunnerRow{defaultRunner()},
		Machines: []MachineRow{defaultMachine()},
	}
}

func defaultRunner() RunnerRow {
	return RunnerRow{Kind: DefaultRunnerKind}
}

func defaultMachine() MachineRow {
	return MachineRow{Cores: strconv.Itoa(DefaultMachineCores)}
}

// AddRunner appends a default runner row
func (f Form) AddRunner() Form {
	f.Runners = append(slices.Clone(f.Runners), defaultRunner())
	return f
}

// RemoveRunner drops the row at index i. The form always keeps one row:
// removing the last one leaves a fresh default row.
func (f Form) RemoveRunner(i int) Form {
	if i < 0 || i >= len(f.Runners) {
		return f
	}
	f.Runners = slices.Delete(slices.Clone(f.Runners), i, i+1)
	if len(f.Runners) == 0 {
		f.Runners = []RunnerRow{defaultRunner()}
	}
	return f
}

// SetRunner replaces the row at index i
func (f Form) SetRunner(i int, row RunnerRow) Form {
	if i < 0 || i >= len(f.Runners) {
		return f
	}
	f.Runners = slices.Clone(f.Runners)
	f.Runners[i] = row
	return f
}

// AddMachine appends a default machine row
func (f Form) AddMachine() Form {
	f.Machines = append(slices.Clone(f.Machines), defaultMachine())
	return f
}

// RemoveMachine drops the row at index i, keeping at least one row
func (f Form) RemoveMachine(i int) Form {
	if i < 0 || i >= len(f.Machines) {
		return f
	}
	f.Machines = slices.Delete(slices.Clone(f.Machines), i, i+1)
	if len(f.Machines) == 0 {
		f.Machines = []MachineRow{defaultMachine()}
	}
	return f
}

// SetMachine replaces the row at index i
func (f Form) SetMachine(i int, row MachineRow) Form {
	if i < 0 || i >= len(f.Machines) {
		return f
	}
	f.Machines = slices.Clone(f.Machines)
	f.Machines[i] = row
	return f
}

// Document coerces the typed text into a usage document. Empty or invalid
// numbers read as zero, an invalid team size reads as one and disabled
// sections are left out.
func (f Form) Document() Document {
	doc := Document{
		TeamSize: parseCount(f.TeamSize),
		Features: slices.Clone(f.Features),
	}
	if doc.TeamSize < 1 {
		doc.TeamSize = 1
	}

	if f.Sections.Compute {
		doc.PublicRepository = f.PublicRepository
		for _, r := range f.Runners {
			doc.Compute = append(doc.Compute, Runner{
				Kind:            r.Kind,
				JobsPerDay:      float64(parseCount(r.JobsPerDay)),
				DurationMinutes: float64(parseCount(r.DurationMinutes)),
			})
		}
	}

	if f.Sections.Artifacts {
		doc.Artifacts = &Storage{
			StorageGB:  parseAmount(f.ArtifactStorageGB),
			TransferGB: parseAmount(f.ArtifactTransferGB),
		}
	}

	if f.Sections.LargeFiles {
		doc.LargeFiles = &Storage{
			StorageGB:  parseAmount(f.LargeFileStorageGB),
			TransferGB: parseAmount(f.LargeFileBandwidthGB),
		}
	}

	if f.Sections.DevEnvironments {
		for _, m := range f.Machines {
			cores := parseCount(m.Cores)
			if cores <= 0 {
				cores = DefaultMachineCores
			}
			doc.DevEnvironments = append(doc.DevEnvironments, Machine{
				Cores:        cores,
				Developers:   parseCount(m.Developers),
				HoursPerWeek: parseAmount(m.HoursPerWeek),
			})
		}
		doc.DevStorage = &DevStorage{
			StoredEnvironments:   parseAmount(f.StoredEnvironments),
			AverageProjectSizeGB: parseAmount(f.AverageProjectSizeGB),
		}
	}

	if f.Sections.Security {
		doc.Security = &Security{
			Committers:       parseCount(f.Committers),
			CodeSecurity:     f.CodeSecurity,
			SecretProtection: f.SecretProtection,
		}
	}

	if f.Sections.Assistant {
		doc.Assistant = &Assistant{
			Plan:            f.AssistantPlan,
			Seats:           parseCount(f.AssistantSeats),
			OverageRequests: parseCount(f.AssistantOverageRequests),
		}
	}

	return doc
}

// parseAmount reads a decimal quantity; anything unusable is zero
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// parseCount reads a whole quantity, truncating any fraction
func parseCount(s string) int {
	v := parseAmount(s)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
