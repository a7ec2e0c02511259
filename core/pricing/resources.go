// Package pricing - Metered resource pricing
package pricing

import (
	"github.com/shopspring/decimal"

	"ghcost/core/catalog"
	"ghcost/core/types"
	"ghcost/core/usage"
)

func (e *Evaluator) priceAssistant(b *types.PlanBreakdown, d types.UsageDeclaration) {
	rates := e.catalog.AssistantRates()
	detail := types.AssistantDetail{
		SeatCost:    decimal.Zero,
		OverageCost: decimal.Zero,
	}

	if d.AssistantPlan != nil {
		tier := *d.AssistantPlan
		detail.Tier = &tier
		rate := rates.SeatRate(tier)
		if tier.IsOrganizational() {
			detail.Seats = d.EffectiveAssistantSeats()
			detail.SeatCost = rate.Mul(decimal.NewFromInt(int64(detail.Seats)))
		} else {
			detail.Seats = 1
			detail.SeatCost = rate
		}
		addLine(b, types.CostLine{
			Resource: types.ResourceAssistant,
			Label:    "Assistant " + tier.String(),
			Measure:  "seats",
			Quantity: decimal.NewFromInt(int64(detail.Seats)),
			Rate:     rate,
			Amount:   detail.SeatCost,
			Formula:  "seat_rate * seats",
		})
	}

	if d.AssistantOverageRequests > 0 {
		detail.OverageRequests = d.AssistantOverageRequests
		requests := decimal.NewFromInt(int64(d.AssistantOverageRequests))
		detail.OverageCost = requests.Mul(rates.PerOverageRequest)
		addLine(b, types.CostLine{
			Resource: types.ResourceAssistant,
			Label:    "Assistant premium requests",
			Measure:  "requests",
			Quantity: requests,
			Rate:     rates.PerOverageRequest,
			Amount:   detail.OverageCost,
			Formula:  "overage_requests * rate",
		})
	}

	detail.Cost = detail.SeatCost.Add(detail.OverageCost)
	b.Assistant = detail
	b.Costs.Assistant = detail.Cost
}

func (e *Evaluator) priceArtifacts(b *types.PlanBreakdown, plan *catalog.Plan, d types.UsageDeclaration) {
	detail := priceStorageTransfer(plan.Artifacts, e.catalog.ArtifactRates(),
		decimal.NewFromFloat(d.ArtifactStorageGB), decimal.NewFromFloat(d.ArtifactTransferGB))
	storageTransferLines(b, types.ResourceArtifacts, "Artifact", detail, e.catalog.ArtifactRates())
	b.Artifacts = detail
	b.Costs.Artifacts = detail.Cost
}

func (e *Evaluator) priceLargeFiles(b *types.PlanBreakdown, plan *catalog.Plan, d types.UsageDeclaration) {
	detail := priceStorageTransfer(plan.LargeFiles, e.catalog.LargeFileRates(),
		decimal.NewFromFloat(d.LargeFileStorageGB), decimal.NewFromFloat(d.LargeFileBandwidthGB))
	storageTransferLines(b, types.ResourceLargeFiles, "Large file", detail, e.catalog.LargeFileRates())
	b.LargeFiles = detail
	b.Costs.LargeFiles = detail.Cost
}

// priceStorageTransfer prices storage and transfer overage independently
func priceStorageTransfer(quota catalog.StorageQuota, rates catalog.OverageRates, storage, transfer decimal.Decimal) types.StorageTransferDetail {
	s := quotaDetail(quota.StorageGB, storage, rates.StoragePerGBMonth)
	t := quotaDetail(quota.TransferGB, transfer, rates.TransferPerGB)
	return types.StorageTransferDetail{
		Storage:  s,
		Transfer: t,
		Cost:     s.Cost.Add(t.Cost),
	}
}

func quotaDetail(included, used, rate decimal.Decimal) types.QuotaDetail {
	overage := types.OverageOf(used, included)
	return types.QuotaDetail{
		Included: included,
		Used:     used,
		Overage:  overage,
		Cost:     overage.Mul(rate),
	}
}

func storageTransferLines(b *types.PlanBreakdown, res types.Resource, label string, detail types.StorageTransferDetail, rates catalog.OverageRates) {
	addLine(b, types.CostLine{
		Resource: res,
		Label:    label + " storage overage",
		Measure:  "GB-month",
		Quantity: detail.Storage.Overage,
		Rate:     rates.StoragePerGBMonth,
		Amount:   detail.Storage.Cost,
		Formula:  "max(0, used - included) * rate",
	})
	addLine(b, types.CostLine{
		Resource: res,
		Label:    label + " transfer overage",
		Measure:  "GB",
		Quantity: detail.Transfer.Overage,
		Rate:     rates.TransferPerGB,
		Amount:   detail.Transfer.Cost,
		Formula:  "max(0, used - included) * rate",
	})
}

func (e *Evaluator) priceDevEnvironments(b *types.PlanBreakdown, plan *catalog.Plan, snap usage.Snapshot) {
	rates := e.catalog.DevEnvironmentRates()
	compute := quotaDetail(plan.DevEnvironments.CoreHours, snap.Dev.TotalCoreHours, rates.BaseCoreRatePerHour)
	storage := quotaDetail(plan.DevEnvironments.StorageGB, snap.DevStorageGB, rates.StoragePerGBMonth)

	addLine(b, types.CostLine{
		Resource: types.ResourceDevEnvironments,
		Label:    "Dev environment compute overage",
		Measure:  "core-hours",
		Quantity: compute.Overage,
		Rate:     rates.BaseCoreRatePerHour,
		Amount:   compute.Cost,
		Formula:  "max(0, core_hours - included) * base_core_rate",
	})
	addLine(b, types.CostLine{
		Resource: types.ResourceDevEnvironments,
		Label:    "Dev environment storage overage",
		Measure:  "GB-month",
		Quantity: storage.Overage,
		Rate:     rates.StoragePerGBMonth,
		Amount:   storage.Cost,
		Formula:  "max(0, stored * project_size * team_size - included) * rate",
	})

	b.DevEnvironments = types.DevEnvironmentDetail{
		Compute:          compute,
		Storage:          storage,
		MachineBreakdown: snap.Dev.Breakdown,
		Cost:             compute.Cost.Add(storage.Cost),
	}
	b.Costs.DevEnvironments = b.DevEnvironments.Cost
}

// priceSecurity charges every enabled add-on per committer. It does not look
// at plan support; that is an eligibility concern.
func (e *Evaluator) priceSecurity(b *types.PlanBreakdown, d types.UsageDeclaration) {
	rates := e.catalog.SecurityAddonRates()
	detail := types.SecurityDetail{
		CodeSecurityCost:     decimal.Zero,
		SecretProtectionCost: decimal.Zero,
	}

	committers := d.EffectiveCommitters()
	if committers > 0 {
		detail.Committers = committers
		n := decimal.NewFromInt(int64(committers))
		for _, addon := range []types.AddonKind{types.AddonCodeSecurity, types.AddonSecretProtection} {
			if !d.AddonEnabled(addon) {
				continue
			}
			cost := n.Mul(rates.Rate(addon))
			if addon == types.AddonCodeSecurity {
				detail.CodeSecurityCost = cost
			} else {
				detail.SecretProtectionCost = cost
			}
			addLine(b, types.CostLine{
				Resource: types.ResourceSecurity,
				Label:    addon.DisplayName(),
				Measure:  "committers",
				Quantity: n,
				Rate:     rates.Rate(addon),
				Amount:   cost,
				Formula:  "committers * rate",
			})
		}
	}

	detail.Cost = detail.CodeSecurityCost.Add(detail.SecretProtectionCost)
	b.Security = detail
	b.Costs.Security = detail.Cost
}
