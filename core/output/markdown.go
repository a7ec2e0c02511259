// Package output - Markdown formatter
package output

import (
	"fmt"
	"io"
	"strings"

	"ghcost/core/engine"
	"ghcost/core/types"
)

// MarkdownFormatter renders a plan comparison for PR comments and docs
type MarkdownFormatter struct {
	opts Options
}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the markdown report
func (f *MarkdownFormatter) Render(w io.Writer, result *engine.Result) error {
	var sb strings.Builder

	sb.WriteString("## Plan comparison\n\n")
	sb.WriteString("| Plan | Status | Base | Assistant | Compute | Artifacts | Large files | Dev envs | Security | Total |\n")
	sb.WriteString("|---|---|---:|---:|---:|---:|---:|---:|---:|---:|\n")
	for i := range result.Breakdowns {
		b := &result.Breakdowns[i]
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			b.PlanName, statusLabel(b, result), Money(b.BaseCost), Money(b.Costs.Assistant),
			computeLabel(b), Money(b.Costs.Artifacts), Money(b.Costs.LargeFiles),
			Money(b.Costs.DevEnvironments), Money(b.Costs.Security), TotalLabel(b))
	}

	var blocked []*types.PlanBreakdown
	for i := range result.Breakdowns {
		if !result.Breakdowns[i].CanSupport {
			blocked = append(blocked, &result.Breakdowns[i])
		}
	}
	if len(blocked) > 0 {
		sb.WriteString("\n### Not available\n\n")
		for _, b := range blocked {
			fmt.Fprintf(&sb, "- **%s**: %s\n", b.PlanName, strings.Join(b.Reasons, "; "))
		}
	}

	if f.opts.ShowDetails {
		for i := range result.Breakdowns {
			writeMarkdownDetail(&sb, &result.Breakdowns[i])
		}
	}

	fmt.Fprintf(&sb, "\n> %s\n", Recommendation(result))

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownDetail(sb *strings.Builder, b *types.PlanBreakdown) {
	if len(b.Lines) == 0 && len(b.Features) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n### %s\n\n", b.PlanName)
	for _, line := range b.Lines {
		fmt.Fprintf(sb, "- %s: %s %s × %s = %s\n", line.Label, qty(line.Quantity), line.Measure, line.Rate.String(), Money(line.Amount))
	}
	for _, f := range b.Features {
		fmt.Fprintf(sb, "- %s: `%s`\n", f.DisplayName, f.Status)
	}
}
