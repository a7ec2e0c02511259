// Package cmd - plans and features commands
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ghcost/core/catalog"
	"ghcost/core/output"
	"ghcost/core/ui"
	"ghcost/internal/config"
)

// plansCmd lists the catalog plans
var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List plans with their prices and included quotas",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		w := ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
		w.Header("Plans")
		table := w.NewTable("Key", "Plan", "Per user", "Max users", "Compute min", "Overage", "Artifacts GB", "Large files GB", "Dev core-h", "Add-ons")
		for _, p := range cat.Plans() {
			maxUsers := "unlimited"
			if p.MaxUsers > 0 {
				maxUsers = fmt.Sprint(p.MaxUsers)
			}
			table.AddRow(
				p.Key,
				p.DisplayName,
				output.Money(p.PerUserCost),
				maxUsers,
				p.Compute.IncludedMinutes.String(),
				yesNo(p.Compute.CanExceed),
				p.Artifacts.StorageGB.String()+" / "+p.Artifacts.TransferGB.String(),
				p.LargeFiles.StorageGB.String()+" / "+p.LargeFiles.TransferGB.String(),
				p.DevEnvironments.CoreHours.String(),
				yesNo(p.SecurityAddons),
			)
		}
		table.Render()

		w.Header("Runner kinds")
		kinds := w.NewTable("Kind", "Name", "Multiplier", "Rate / min")
		for _, p := range cat.ComputeProfiles() {
			kinds.AddRow(p.Kind, p.DisplayName, p.BillingMultiplier.String()+"x", "$"+p.OverageRate.String())
		}
		kinds.Render()
		return nil
	},
}

// featuresCmd prints the feature availability matrix
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show which plans offer which features",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		plans := cat.Plans()
		headers := []string{"Key", "Feature"}
		for _, p := range plans {
			headers = append(headers, p.DisplayName)
		}

		w := ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
		w.Header("Features")
		table := w.NewTable(headers...)
		for _, f := range cat.Features() {
			row := []string{f.Key, f.DisplayName}
			for _, p := range plans {
				row = append(row, availabilityLabel(f.On(p.Key)))
			}
			table.AddRow(row...)
		}
		table.Render()
		return nil
	},
}

func availabilityLabel(a catalog.Availability) string {
	switch a.Kind {
	case catalog.Included:
		return "✓"
	case catalog.Unavailable:
		return "-"
	case catalog.AddonRequired:
		return "+ " + a.Addon.DisplayName()
	default:
		return strings.ReplaceAll(a.Kind.String(), "_", " ")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
