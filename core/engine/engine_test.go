package engine

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ghcost/core/catalog"
	"ghcost/core/types"
	apperrors "ghcost/internal/errors"
)

// tieTariff has two identically priced plans that differ only in how they
// offer the scanning feature
const tieTariff = `
plans:
  - key: addon
    name: Addon
    per_user_cost: 10
    security_addons: true
    compute: {included_minutes: 100, can_exceed: true}
  - key: bundled
    name: Bundled
    per_user_cost: 10
    security_addons: true
    compute: {included_minutes: 100, can_exceed: true}
  - key: twin
    name: Twin
    per_user_cost: 10
    security_addons: true
    compute: {included_minutes: 100, can_exceed: true}
compute_profiles:
  - {kind: linux, name: Linux, multiplier: 1, overage_rate: 0.01}
dev_environment_rates:
  core_multipliers: {2: 1}
addon_requirements:
  scanning: code_security
features:
  - key: scanning
    name: Scanning
    availability: {addon: addon_required, bundled: included, twin: included}
`

func newTestEngine(t *testing.T, cat *catalog.Catalog) *Engine {
	return New(cat, WithLogger(zaptest.NewLogger(t)))
}

func TestRunRecommendsFreeForLightUsage(t *testing.T) {
	result, err := newTestEngine(t, catalog.MustDefault()).Run(types.UsageDeclaration{
		TeamSize: 1,
		Compute:  []types.ComputeItem{{Kind: "linux", JobsPerDay: 10, DurationMinutes: 5}},
	})
	require.NoError(t, err)

	require.Len(t, result.Breakdowns, 4)
	assert.True(t, result.HasRecommendation)
	assert.Equal(t, "free", result.Recommended)
	assert.True(t, result.Usage.Compute.TotalBilledMinutes.Equal(decimal.NewFromInt(1500)))

	b, ok := result.RecommendedBreakdown()
	require.True(t, ok)
	assert.True(t, b.TotalCost.IsZero())
}

func TestRunRecommendsEnterpriseForHeavyCompute(t *testing.T) {
	result, err := newTestEngine(t, catalog.MustDefault()).Run(types.UsageDeclaration{
		TeamSize: 1,
		Compute:  []types.ComputeItem{{Kind: "linux", JobsPerDay: 100, DurationMinutes: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, "enterprise", result.Recommended)
	free, ok := result.Breakdown("free")
	require.True(t, ok)
	assert.False(t, free.CanSupport)
}

func TestRunRecommendsTeamForSecurityAddon(t *testing.T) {
	result, err := newTestEngine(t, catalog.MustDefault()).Run(types.UsageDeclaration{
		TeamSize:     5,
		CodeSecurity: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "team", result.Recommended)
	b, _ := result.RecommendedBreakdown()
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(170)))
}

func TestRunPriceTieGoesToMoreIncludedFeatures(t *testing.T) {
	cat, err := catalog.Load(strings.NewReader(tieTariff))
	require.NoError(t, err)

	result, err := newTestEngine(t, cat).Run(types.UsageDeclaration{
		TeamSize: 2,
		Features: []string{"scanning"},
	})
	require.NoError(t, err)

	addon, _ := result.Breakdown("addon")
	bundled, _ := result.Breakdown("bundled")
	assert.True(t, addon.CanSupport)
	assert.True(t, addon.TotalCost.Equal(bundled.TotalCost))
	assert.Equal(t, 0, addon.IncludedFeatureCount())
	assert.Equal(t, 1, bundled.IncludedFeatureCount())

	twin, _ := result.Breakdown("twin")
	assert.True(t, twin.TotalCost.Equal(bundled.TotalCost))
	assert.Equal(t, bundled.IncludedFeatureCount(), twin.IncludedFeatureCount())

	assert.Equal(t, "bundled", result.Recommended,
		"more included features beat addon; bundled precedes its full twin in catalog order")
}

func TestRunEnabledAddonCountsAsIncluded(t *testing.T) {
	cat, err := catalog.Load(strings.NewReader(tieTariff))
	require.NoError(t, err)

	result, err := newTestEngine(t, cat).Run(types.UsageDeclaration{
		TeamSize:     1,
		CodeSecurity: true,
		Features:     []string{"scanning"},
	})
	require.NoError(t, err)

	assert.Equal(t, "addon", result.Recommended)
}

func TestRunWithoutEligiblePlan(t *testing.T) {
	result, err := newTestEngine(t, catalog.MustDefault()).Run(types.UsageDeclaration{
		TeamSize: 1,
		Features: []string{"teleportation"},
	})
	require.NoError(t, err)

	assert.False(t, result.HasRecommendation)
	assert.Empty(t, result.Recommended)
	_, ok := result.RecommendedBreakdown()
	assert.False(t, ok)
	for _, b := range result.Breakdowns {
		assert.False(t, b.CanSupport, b.PlanKey)
		assert.NotEmpty(t, b.Reasons, b.PlanKey)
	}
}

func TestRunRejectsUnknownRunnerKind(t *testing.T) {
	_, err := newTestEngine(t, catalog.MustDefault()).Run(types.UsageDeclaration{
		Compute: []types.ComputeItem{{Kind: "amiga", JobsPerDay: 1, DurationMinutes: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))
}

func TestRunIsDeterministic(t *testing.T) {
	eng := New(catalog.MustDefault())
	decl := types.UsageDeclaration{
		TeamSize: 3,
		Compute: []types.ComputeItem{
			{Kind: "linux", JobsPerDay: 40, DurationMinutes: 7},
			{Kind: "macos", JobsPerDay: 3, DurationMinutes: 15},
		},
		ArtifactStorageGB: 4,
		SecretProtection:  true,
		Features:          []string{"code_owners", "push_protection", "code_owners"},
	}

	first, err := eng.Run(decl)
	require.NoError(t, err)
	second, err := eng.Run(decl)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	assert.Equal(t, []string{"code_owners", "push_protection"}, first.Declaration.Features)
	assert.Equal(t, first.UsageFingerprint, second.UsageFingerprint)
	assert.Equal(t, catalog.MustDefault().Fingerprint(), first.TariffFingerprint)

	decl.TeamSize = 4
	third, err := eng.Run(decl)
	require.NoError(t, err)
	assert.NotEqual(t, first.UsageFingerprint, third.UsageFingerprint)
}

func TestSelectBest(t *testing.T) {
	money := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	included := []types.FeatureResolution{{Key: "f", Status: types.FeatureIncluded}}

	tests := []struct {
		name       string
		breakdowns []types.PlanBreakdown
		want       string
		wantOK     bool
	}{
		{
			name:   "empty",
			wantOK: false,
		},
		{
			name: "cheapest eligible",
			breakdowns: []types.PlanBreakdown{
				{PlanKey: "a", CanSupport: false, TotalCost: money(1)},
				{PlanKey: "b", CanSupport: true, TotalCost: money(30)},
				{PlanKey: "c", CanSupport: true, TotalCost: money(20)},
			},
			want:   "c",
			wantOK: true,
		},
		{
			name: "tie broken by features",
			breakdowns: []types.PlanBreakdown{
				{PlanKey: "a", CanSupport: true, TotalCost: money(10)},
				{PlanKey: "b", CanSupport: true, TotalCost: money(10), Features: included},
			},
			want:   "b",
			wantOK: true,
		},
		{
			name: "full tie keeps order",
			breakdowns: []types.PlanBreakdown{
				{PlanKey: "a", CanSupport: true, TotalCost: money(10), Features: included},
				{PlanKey: "b", CanSupport: true, TotalCost: money(10), Features: included},
			},
			want:   "a",
			wantOK: true,
		},
		{
			name: "none eligible",
			breakdowns: []types.PlanBreakdown{
				{PlanKey: "a", CanSupport: false},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectBest(tt.breakdowns)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
