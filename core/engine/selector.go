// Package engine - Plan selection
package engine

import "ghcost/core/types"

// SelectBest picks the cheapest plan that can support the usage. On an exact
// price tie the plan with more selected features resolved as included wins;
// remaining ties keep the earlier plan. breakdowns must be in catalog order.
func SelectBest(breakdowns []types.PlanBreakdown) (string, bool) {
	best := -1
	for i := range breakdowns {
		b := &breakdowns[i]
		if !b.CanSupport {
			continue
		}
		if best < 0 || better(b, &breakdowns[best]) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return breakdowns[best].PlanKey, true
}

// better reports whether candidate strictly beats current
func better(candidate, current *types.PlanBreakdown) bool {
	switch candidate.TotalCost.Cmp(current.TotalCost) {
	case -1:
		return true
	case 1:
		return false
	}
	return candidate.IncludedFeatureCount() > current.IncludedFeatureCount()
}
