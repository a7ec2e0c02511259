// Package output provides output formatting.
// This package produces human and machine-readable plan comparisons.
package output

import (
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"

	"ghcost/core/engine"
	"ghcost/core/types"
	apperrors "ghcost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats
var Formats = []Format{FormatCLI, FormatJSON, FormatMarkdown}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *engine.Result) error
}

// Options tune the human-readable formatters
type Options struct {
	// ShowDetails adds usage totals, cost lines and feature statuses
	ShowDetails bool

	// NoColor disables ANSI colors
	NoColor bool
}

// New returns the formatter for a format
func New(format Format, opts Options) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &CLIFormatter{opts: opts}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{opts: opts}, nil
	default:
		return nil, apperrors.Inputf("unknown output format %q (supported: %v)", format, Formats)
	}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(Formats, f) {
		return "", apperrors.Inputf("unknown output format %q (supported: %v)", s, Formats)
	}
	return f, nil
}

// NoPlanMessage is shown when no plan can support the usage
const NoPlanMessage = "No plan can support the declared usage."

// Recommendation is the one-sentence verdict of a run
func Recommendation(result *engine.Result) string {
	b, ok := result.RecommendedBreakdown()
	if !ok {
		return NoPlanMessage
	}
	return fmt.Sprintf("Based on your usage, the %s plan is most cost-effective at %s/month.",
		b.PlanName, Money(b.TotalCost))
}

// Money renders an amount with a dollar sign and cents
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// TotalLabel renders a plan total. Plans blocked by their seat cap show N/A
// since their price is meaningless for the team.
func TotalLabel(b *types.PlanBreakdown) string {
	if !b.CanSupport && b.UserCapExceeded {
		return "N/A"
	}
	return Money(b.TotalCost)
}
