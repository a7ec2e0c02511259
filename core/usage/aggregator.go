// Package usage reduces per-item usage configurations into monthly totals.
// Runner configurations become raw and billed compute minutes; machine
// profiles become core-hours.
package usage

import (
	"math"

	"github.com/shopspring/decimal"

	"ghcost/core/catalog"
	"ghcost/core/types"
	apperrors "ghcost/internal/errors"
)

var (
	// DaysPerMonth converts daily job volume into monthly minutes
	DaysPerMonth = decimal.NewFromInt(30)

	// WeeksPerMonth converts weekly hours into monthly hours
	WeeksPerMonth = decimal.RequireFromString("4.33")
)

// ComputeUsage is the monthly CI minutes usage
type ComputeUsage struct {
	TotalRawMinutes    decimal.Decimal   `json:"total_raw_minutes"`
	TotalBilledMinutes decimal.Decimal   `json:"total_billed_minutes"`
	Breakdown          []types.KindUsage `json:"breakdown,omitempty"`
}

// DevUsage is the monthly remote development compute usage
type DevUsage struct {
	TotalCoreHours decimal.Decimal      `json:"total_core_hours"`
	Breakdown      []types.MachineUsage `json:"breakdown,omitempty"`
}

// Snapshot is the normalized usage every plan is evaluated against
type Snapshot struct {
	Compute ComputeUsage `json:"compute"`
	Dev     DevUsage     `json:"dev_environments"`

	// DevStorageGB is stored environments × average project size × team size
	DevStorageGB decimal.Decimal `json:"dev_storage_gb"`
}

// Aggregate computes the usage snapshot of a declaration. The declaration is
// normalized first. Runner kinds and machine sizes must exist in the catalog.
func Aggregate(cat *catalog.Catalog, decl types.UsageDeclaration) (Snapshot, error) {
	d := decl.Normalize()

	compute, err := AggregateCompute(cat, d.Compute)
	if err != nil {
		return Snapshot{}, err
	}

	dev, err := AggregateDevEnvironments(cat, d.DevEnvironments)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Compute:      compute,
		Dev:          dev,
		DevStorageGB: DevStorageGB(d),
	}, nil
}

// AggregateCompute totals runner minutes. Items with zero raw minutes are
// left out of the breakdown.
func AggregateCompute(cat *catalog.Catalog, items []types.ComputeItem) (ComputeUsage, error) {
	out := ComputeUsage{
		TotalRawMinutes:    decimal.Zero,
		TotalBilledMinutes: decimal.Zero,
	}

	for i, item := range items {
		profile, ok := cat.ComputeProfile(item.Kind)
		if !ok {
			return ComputeUsage{}, apperrors.Inputf("compute item %d: unknown runner kind %q", i, item.Kind)
		}

		raw := decimal.NewFromFloat(nonNegative(item.JobsPerDay)).
			Mul(decimal.NewFromFloat(nonNegative(item.DurationMinutes))).
			Mul(DaysPerMonth)
		billed := raw.Mul(profile.BillingMultiplier)

		out.TotalRawMinutes = out.TotalRawMinutes.Add(raw)
		out.TotalBilledMinutes = out.TotalBilledMinutes.Add(billed)

		if raw.IsPositive() {
			out.Breakdown = append(out.Breakdown, types.KindUsage{
				Kind:              item.Kind,
				RawMinutes:        raw,
				BillingMultiplier: profile.BillingMultiplier,
				BilledMinutes:     billed,
			})
		}
	}

	return out, nil
}

// AggregateDevEnvironments totals core-hours. Items with zero monthly hours
// are left out of the breakdown.
func AggregateDevEnvironments(cat *catalog.Catalog, items []types.DevEnvironmentItem) (DevUsage, error) {
	out := DevUsage{TotalCoreHours: decimal.Zero}

	for i, item := range items {
		multiplier, ok := cat.CoreMultiplier(item.CoreCount)
		if !ok {
			return DevUsage{}, apperrors.Inputf("dev environment item %d: unknown machine size %d cores", i, item.CoreCount)
		}

		developers := item.DeveloperCount
		if developers < 0 {
			developers = 0
		}
		hoursPerWeek := decimal.NewFromFloat(nonNegative(item.HoursPerWeekPerDeveloper))

		monthlyHours := decimal.NewFromInt(int64(developers)).Mul(hoursPerWeek).Mul(WeeksPerMonth)
		coreHours := monthlyHours.Mul(multiplier)

		out.TotalCoreHours = out.TotalCoreHours.Add(coreHours)

		if monthlyHours.IsPositive() {
			out.Breakdown = append(out.Breakdown, types.MachineUsage{
				CoreCount:      item.CoreCount,
				Developers:     developers,
				HoursPerWeek:   hoursPerWeek,
				MonthlyHours:   monthlyHours,
				CoreMultiplier: multiplier,
				CoreHours:      coreHours,
			})
		}
	}

	return out, nil
}

// DevStorageGB is the prebuilt/stored environment footprint of the team
func DevStorageGB(d types.UsageDeclaration) decimal.Decimal {
	teamSize := d.TeamSize
	if teamSize < 1 {
		teamSize = 1
	}
	return decimal.NewFromFloat(nonNegative(d.StoredDevEnvironments)).
		Mul(decimal.NewFromFloat(nonNegative(d.AverageProjectSizeGB))).
		Mul(decimal.NewFromInt(int64(teamSize)))
}

// nonNegative guards decimal.NewFromFloat, which panics on NaN and Inf
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
