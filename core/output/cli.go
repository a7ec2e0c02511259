// Package output - CLI table formatter
package output

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"ghcost/core/engine"
	"ghcost/core/types"
	"ghcost/core/ui"
)

// CLIFormatter renders a colored plan comparison
type CLIFormatter struct {
	opts Options
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render prints the comparison table, the reasons of ineligible plans and
// the recommendation
func (f *CLIFormatter) Render(out io.Writer, result *engine.Result) error {
	w := ui.NewWriter(out, f.opts.NoColor)
	if f.opts.ShowDetails {
		w.SetVerbosity(2)
	}

	if w.Verbose() {
		renderUsage(w, result)
	}

	w.Header("Plan Comparison")
	table := w.NewTable("Plan", "Status", "Base", "Assistant", "Compute", "Artifacts", "Large files", "Dev envs", "Security", "Total")
	for i := range result.Breakdowns {
		b := &result.Breakdowns[i]
		table.AddRow(
			b.PlanName,
			statusLabel(b, result),
			Money(b.BaseCost),
			Money(b.Costs.Assistant),
			computeLabel(b),
			Money(b.Costs.Artifacts),
			Money(b.Costs.LargeFiles),
			Money(b.Costs.DevEnvironments),
			Money(b.Costs.Security),
			TotalLabel(b),
		)
	}
	table.Render()

	for i := range result.Breakdowns {
		b := &result.Breakdowns[i]
		if !b.CanSupport {
			w.Println("")
			w.Warning("%s: %s", b.PlanName, strings.Join(b.Reasons, "; "))
		}
		if w.Verbose() {
			renderPlanDetail(w, b)
		}
	}

	box := w.NewRecommendationBox()
	box.Message = Recommendation(result)
	if rec, ok := result.RecommendedBreakdown(); ok {
		box.Found = true
		box.Plan = rec.PlanName
		box.Total = Money(rec.TotalCost)
	}
	box.Render()
	return nil
}

func statusLabel(b *types.PlanBreakdown, result *engine.Result) string {
	switch {
	case result.HasRecommendation && b.PlanKey == result.Recommended:
		return "★ recommended"
	case b.CanSupport:
		return "available"
	default:
		return "not available"
	}
}

func computeLabel(b *types.PlanBreakdown) string {
	if b.Compute.Informational {
		return "free (public)"
	}
	return Money(b.Costs.Compute)
}

func renderUsage(w *ui.Writer, result *engine.Result) {
	w.Header("Monthly Usage")
	u := result.Usage

	w.SubHeader("Compute")
	w.Println("  %s raw minutes, %s billed minutes", qty(u.Compute.TotalRawMinutes), qty(u.Compute.TotalBilledMinutes))
	for _, k := range u.Compute.Breakdown {
		w.Debug("%-8s %s min × %s = %s billed", k.Kind, qty(k.RawMinutes), qty(k.BillingMultiplier), qty(k.BilledMinutes))
	}
	if result.Declaration.PublicRepository {
		w.Info("public repository: compute minutes are not billed")
	}

	w.SubHeader("Dev environments")
	w.Println("  %s core-hours, %s GB stored", qty(u.Dev.TotalCoreHours), qty(u.DevStorageGB))
	for _, m := range u.Dev.Breakdown {
		w.Debug("%d-core: %d dev × %s h/week = %s h × %s = %s core-hours",
			m.CoreCount, m.Developers, qty(m.HoursPerWeek), qty(m.MonthlyHours), qty(m.CoreMultiplier), qty(m.CoreHours))
	}
}

func renderPlanDetail(w *ui.Writer, b *types.PlanBreakdown) {
	w.Println("")
	w.SubHeader(b.PlanName)
	for _, line := range b.Lines {
		w.Debug("%-36s %s %s × %s = %s", line.Label, qty(line.Quantity), line.Measure, line.Rate.String(), Money(line.Amount))
	}
	for _, f := range b.Features {
		label := string(f.Status)
		if f.Status == types.FeatureAddonRequired {
			label += " (" + f.Addon.DisplayName() + ")"
		}
		w.Debug("%-36s %s", f.DisplayName, label)
	}
}

// qty renders a quantity without trailing zeros
func qty(d decimal.Decimal) string {
	return d.Round(2).String()
}
