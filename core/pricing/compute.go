// Package pricing - Compute minutes pricing
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ghcost/core/catalog"
	"ghcost/core/types"
	"ghcost/core/usage"
)

// priceCompute prices CI minutes. Public repositories are never billed and
// never hit the hard cap; their usage is reported for information only.
func (e *Evaluator) priceCompute(b *types.PlanBreakdown, plan *catalog.Plan, d types.UsageDeclaration, cu usage.ComputeUsage) {
	detail := types.ComputeDetail{
		Included:      plan.Compute.IncludedMinutes,
		Used:          cu.TotalBilledMinutes,
		RawMinutes:    cu.TotalRawMinutes,
		Overage:       decimal.Zero,
		Cost:          decimal.Zero,
		KindBreakdown: cu.Breakdown,
	}
	b.Costs.Compute = decimal.Zero

	if d.PublicRepository {
		detail.Informational = true
		b.Compute = detail
		return
	}

	overage := types.OverageOf(cu.TotalBilledMinutes, plan.Compute.IncludedMinutes)
	detail.Overage = overage

	if overage.IsPositive() {
		if !plan.Compute.CanExceed {
			detail.QuotaExceeded = true
			b.Fail(fmt.Sprintf("Exceeds %s plan compute limit (need %s minutes, only %s allowed)",
				plan.DisplayName, cu.TotalBilledMinutes.Round(0).String(), plan.Compute.IncludedMinutes.String()))
		} else {
			detail.OverageByKind = AllocateComputeOverage(overage, cu, e.rateOf)
			for _, share := range detail.OverageByKind {
				detail.Cost = detail.Cost.Add(share.Cost)
				addLine(b, types.CostLine{
					Resource: types.ResourceCompute,
					Label:    share.Kind + " minutes overage",
					Measure:  "minutes",
					Quantity: share.RawMinutes,
					Rate:     share.Rate,
					Amount:   share.Cost,
					Formula:  "overage * billed_share / multiplier * rate",
				})
			}
		}
	}

	b.Compute = detail
	b.Costs.Compute = detail.Cost
}

// rateOf returns the per raw minute overage rate of a runner kind
func (e *Evaluator) rateOf(kind string) decimal.Decimal {
	if p, ok := e.catalog.ComputeProfile(kind); ok {
		return p.OverageRate
	}
	return decimal.Zero
}

// AllocateComputeOverage splits billed overage minutes across the runner
// configurations by their share of billed minutes. Each share is converted
// back to raw minutes and priced at the rate of its kind. Returns nil when no
// minutes were billed.
func AllocateComputeOverage(overage decimal.Decimal, cu usage.ComputeUsage, rate func(kind string) decimal.Decimal) []types.KindOverage {
	if !cu.TotalBilledMinutes.IsPositive() || !overage.IsPositive() {
		return nil
	}

	shares := make([]types.KindOverage, 0, len(cu.Breakdown))
	for _, k := range cu.Breakdown {
		billed := overage.Mul(k.BilledMinutes).Div(cu.TotalBilledMinutes)
		raw := billed
		if k.BillingMultiplier.IsPositive() {
			raw = billed.Div(k.BillingMultiplier)
		}
		r := rate(k.Kind)
		shares = append(shares, types.KindOverage{
			Kind:          k.Kind,
			BilledMinutes: billed,
			RawMinutes:    raw,
			Rate:          r,
			Cost:          raw.Mul(r),
		})
	}
	return shares
}
