// Package pricing - Plan evaluation
// Prices one plan against one usage snapshot. Every cost component is
// computed even when the plan turns out to be ineligible, so breakdowns can
// be compared side by side.
package pricing

import (
	"github.com/shopspring/decimal"

	"ghcost/core/catalog"
	"ghcost/core/types"
	"ghcost/core/usage"
)

// Evaluator prices plans from a tariff catalog
type Evaluator struct {
	catalog *catalog.Catalog
}

// NewEvaluator creates an evaluator for a catalog
func NewEvaluator(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{catalog: cat}
}

// Evaluate produces the breakdown of plan for the declaration. snap must be
// the aggregate of the same declaration.
func (e *Evaluator) Evaluate(plan *catalog.Plan, decl types.UsageDeclaration, snap usage.Snapshot) types.PlanBreakdown {
	d := decl.Normalize()

	b := types.PlanBreakdown{
		PlanKey:    plan.Key,
		PlanName:   plan.DisplayName,
		CanSupport: true,
		Currency:   e.catalog.Currency(),
	}

	teamSize := decimal.NewFromInt(int64(d.TeamSize))
	b.BaseCost = plan.PerUserCost.Mul(teamSize)
	b.Lines = append(b.Lines, types.CostLine{
		Resource: types.ResourceBase,
		Label:    plan.DisplayName + " seats",
		Measure:  "users",
		Quantity: teamSize,
		Rate:     plan.PerUserCost,
		Amount:   b.BaseCost,
		Formula:  "per_user_cost * team_size",
	})

	b.Features = e.resolveFeatures(plan, d)
	e.checkEligibility(&b, plan, d)

	e.priceAssistant(&b, d)
	e.priceCompute(&b, plan, d, snap.Compute)
	e.priceArtifacts(&b, plan, d)
	e.priceLargeFiles(&b, plan, d)
	e.priceDevEnvironments(&b, plan, snap)
	e.priceSecurity(&b, d)

	b.TotalCost = b.BaseCost.Add(b.Costs.Sum())
	return b
}

// addLine records a non-zero cost line
func addLine(b *types.PlanBreakdown, line types.CostLine) {
	if line.Amount.IsZero() {
		return
	}
	b.Lines = append(b.Lines, line)
}

// Evaluate prices a single plan with a throwaway evaluator
func Evaluate(cat *catalog.Catalog, plan *catalog.Plan, decl types.UsageDeclaration, snap usage.Snapshot) types.PlanBreakdown {
	return NewEvaluator(cat).Evaluate(plan, decl, snap)
}
