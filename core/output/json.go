// Package output - JSON formatter
package output

import (
	"io"

	"github.com/goccy/go-json"

	"ghcost/core/engine"
	"ghcost/core/types"
	"ghcost/core/usage"
)

// Report is the machine-readable result of a run
type Report struct {
	Recommended       string                 `json:"recommended,omitempty"`
	HasRecommendation bool                   `json:"has_recommendation"`
	Recommendation    string                 `json:"recommendation"`
	Usage             usage.Snapshot         `json:"usage"`
	Breakdowns        []types.PlanBreakdown  `json:"breakdowns"`
	Declaration       types.UsageDeclaration `json:"declaration"`
	TariffFingerprint string                 `json:"tariff_fingerprint"`
	UsageFingerprint  string                 `json:"usage_fingerprint"`
}

// NewReport builds the report of a run
func NewReport(result *engine.Result) Report {
	return Report{
		Recommended:       result.Recommended,
		HasRecommendation: result.HasRecommendation,
		Recommendation:    Recommendation(result),
		Usage:             result.Usage,
		Breakdowns:        result.Breakdowns,
		Declaration:       result.Declaration,
		TariffFingerprint: result.TariffFingerprint.Hex(),
		UsageFingerprint:  result.UsageFingerprint.Hex(),
	}
}

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the report
func (f *JSONFormatter) Render(w io.Writer, result *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(result))
}
