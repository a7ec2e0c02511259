// Package pricing - Eligibility checks
package pricing

import (
	"fmt"
	"strings"

	"ghcost/core/catalog"
	"ghcost/core/types"
)

// maxListedFeatures bounds how many missing features a reason names
const maxListedFeatures = 3

// checkEligibility applies the seat cap, feature and add-on gates. It only
// records reasons; pricing continues regardless.
func (e *Evaluator) checkEligibility(b *types.PlanBreakdown, plan *catalog.Plan, d types.UsageDeclaration) {
	if plan.MaxUsers > 0 && d.TeamSize > plan.MaxUsers {
		b.UserCapExceeded = true
		b.Fail(userCapReason(plan, d.TeamSize))
	}

	var missing []string
	for _, f := range b.Features {
		if f.Status == types.FeatureUnavailable {
			missing = append(missing, f.DisplayName)
		}
	}
	if len(missing) > 0 {
		b.Fail(fmt.Sprintf("%s plan does not offer: %s", plan.DisplayName, listFeatures(missing)))
	}

	if d.SecurityRequested() && !plan.SecurityAddons {
		b.Fail(fmt.Sprintf("%s plan does not support security add-ons (%s requested)",
			plan.DisplayName, strings.Join(requestedAddons(d), " and ")))
	}
}

func userCapReason(plan *catalog.Plan, teamSize int) string {
	if plan.MaxUsers == 1 {
		return fmt.Sprintf("%s plan only supports 1 user (you have %d users)", plan.DisplayName, teamSize)
	}
	return fmt.Sprintf("%s plan only supports %d users (you have %d users)", plan.DisplayName, plan.MaxUsers, teamSize)
}

// listFeatures names up to three features and counts the rest
func listFeatures(names []string) string {
	if len(names) <= maxListedFeatures {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s and %d more",
		strings.Join(names[:maxListedFeatures], ", "), len(names)-maxListedFeatures)
}

func requestedAddons(d types.UsageDeclaration) []string {
	var names []string
	if d.CodeSecurity {
		names = append(names, types.AddonCodeSecurity.DisplayName())
	}
	if d.SecretProtection {
		names = append(names, types.AddonSecretProtection.DisplayName())
	}
	return names
}
