package pricing

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"ghcost/core/catalog"
	"ghcost/core/types"
	"ghcost/core/usage"
)

var epsilon = decimal.New(1, -9)

func genRunner() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("linux", "windows", "macos"),
		gen.Float64Range(0, 200),
		gen.Float64Range(0, 120),
	).Map(func(v []any) types.ComputeItem {
		return types.ComputeItem{
			Kind:            v[0].(string),
			JobsPerDay:      v[1].(float64),
			DurationMinutes: v[2].(float64),
		}
	})
}

func priceAll(decl types.UsageDeclaration) []types.PlanBreakdown {
	cat := catalog.MustDefault()
	snap, err := usage.Aggregate(cat, decl)
	if err != nil {
		panic(err)
	}
	e := NewEvaluator(cat)
	out := make([]types.PlanBreakdown, 0, len(cat.Plans()))
	for _, p := range cat.Plans() {
		out = append(out, e.Evaluate(p, decl, snap))
	}
	return out
}

// TestOverageAllocationMatchesDirectFormula checks that per-kind shares add
// up to the overage and each cost equals overage × share ÷ multiplier × rate.
func TestOverageAllocationMatchesDirectFormula(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	cat := catalog.MustDefault()
	rate := NewEvaluator(cat).rateOf

	properties.Property("shares sum to the overage", prop.ForAll(
		func(items []types.ComputeItem, included int64) bool {
			cu, err := usage.AggregateCompute(cat, items)
			if err != nil {
				return false
			}
			overage := types.OverageOf(cu.TotalBilledMinutes, decimal.NewFromInt(included))
			shares := AllocateComputeOverage(overage, cu, rate)
			if !overage.IsPositive() {
				return shares == nil
			}

			billed := decimal.Zero
			for i, s := range shares {
				k := cu.Breakdown[i]
				direct := overage.Mul(k.BilledMinutes).Div(cu.TotalBilledMinutes).
					Div(k.BillingMultiplier).Mul(rate(k.Kind))
				if s.Cost.Sub(direct).Abs().GreaterThan(epsilon) {
					return false
				}
				billed = billed.Add(s.BilledMinutes)
			}
			return billed.Sub(overage).Abs().LessThanOrEqual(epsilon)
		},
		gen.SliceOfN(4, genRunner()),
		gen.Int64Range(0, 50000),
	))

	properties.TestingRun(t)
}

func TestComputeCostIsMonotonicInJobs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("more jobs never cost less", prop.ForAll(
		func(kind string, jobs, extra, duration float64) bool {
			less := priceAll(types.UsageDeclaration{
				TeamSize: 1,
				Compute:  []types.ComputeItem{{Kind: kind, JobsPerDay: jobs, DurationMinutes: duration}},
			})
			more := priceAll(types.UsageDeclaration{
				TeamSize: 1,
				Compute:  []types.ComputeItem{{Kind: kind, JobsPerDay: jobs + extra, DurationMinutes: duration}},
			})
			for i := range less {
				if more[i].Costs.Compute.LessThan(less[i].Costs.Compute) {
					return false
				}
			}
			return true
		},
		gen.OneConstOf("linux", "windows", "macos"),
		gen.Float64Range(0, 500),
		gen.Float64Range(0, 500),
		gen.Float64Range(0, 60),
	))

	properties.TestingRun(t)
}

func TestTotalNeverBelowBase(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("total >= base and equals base plus components", prop.ForAll(
		func(teamSize int, runners []types.ComputeItem, storage, transfer float64, codeSecurity bool) bool {
			for _, b := range priceAll(types.UsageDeclaration{
				TeamSize:           teamSize,
				Compute:            runners,
				ArtifactStorageGB:  storage,
				ArtifactTransferGB: transfer,
				CodeSecurity:       codeSecurity,
			}) {
				if b.TotalCost.LessThan(b.BaseCost) {
					return false
				}
				if !b.TotalCost.Equal(b.BaseCost.Add(b.Costs.Sum())) {
					return false
				}
			}
			return true
		},
		gen.IntRange(-3, 50),
		gen.SliceOfN(3, genRunner()),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
		gen.Bool(),
	))

	properties.Property("within quota total equals base", prop.ForAll(
		func(teamSize int) bool {
			for _, b := range priceAll(types.UsageDeclaration{TeamSize: teamSize}) {
				if !b.TotalCost.Equal(b.BaseCost) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}

func TestPublicRepositoryNeverPaysForCompute(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("public compute is informational", prop.ForAll(
		func(runners []types.ComputeItem) bool {
			for _, b := range priceAll(types.UsageDeclaration{
				TeamSize:         1,
				PublicRepository: true,
				Compute:          runners,
			}) {
				if !b.Costs.Compute.IsZero() || b.Compute.QuotaExceeded || !b.Compute.Informational {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, genRunner()),
	))

	properties.TestingRun(t)
}
