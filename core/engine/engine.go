// Package engine provides the API-primary estimation engine.
// CLI and HTTP server are thin wrappers around this engine.
package engine

import (
	"go.uber.org/zap"

	"ghcost/core/catalog"
	"ghcost/core/determinism"
	"ghcost/core/pricing"
	"ghcost/core/types"
	"ghcost/core/usage"
	apperrors "ghcost/internal/errors"
)

// Engine prices a usage declaration against every plan of a catalog.
// It keeps no state between runs other than the immutable catalog.
type Engine struct {
	catalog   *catalog.Catalog
	evaluator *pricing.Evaluator
	logger    *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine for a catalog
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:   cat,
		evaluator: pricing.NewEvaluator(cat),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine prices against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Result is the output of one estimation run
type Result struct {
	// Declaration is the normalized declaration that was priced
	Declaration types.UsageDeclaration `json:"declaration"`

	// Usage is the aggregated monthly usage
	Usage usage.Snapshot `json:"usage"`

	// Breakdowns holds one entry per plan, in catalog order
	Breakdowns []types.PlanBreakdown `json:"breakdowns"`

	// Recommended is the chosen plan key; empty when no plan can support the usage
	Recommended       string `json:"recommended,omitempty"`
	HasRecommendation bool   `json:"has_recommendation"`

	// TariffFingerprint and UsageFingerprint identify the inputs of the run
	TariffFingerprint determinism.ContentHash `json:"tariff_fingerprint"`
	UsageFingerprint  determinism.ContentHash `json:"usage_fingerprint"`
}

// Breakdown returns the breakdown of a plan
func (r *Result) Breakdown(planKey string) (*types.PlanBreakdown, bool) {
	for i := range r.Breakdowns {
		if r.Breakdowns[i].PlanKey == planKey {
			return &r.Breakdowns[i], true
		}
	}
	return nil, false
}

// RecommendedBreakdown returns the breakdown of the chosen plan
func (r *Result) RecommendedBreakdown() (*types.PlanBreakdown, bool) {
	if !r.HasRecommendation {
		return nil, false
	}
	return r.Breakdown(r.Recommended)
}

// Run aggregates the declaration, evaluates every plan and selects the best.
// Input errors come from a declaration referencing runner kinds or machine
// sizes the catalog does not know.
func (e *Engine) Run(decl types.UsageDeclaration) (*Result, error) {
	d := decl.Normalize()

	snap, err := usage.Aggregate(e.catalog, d)
	if err != nil {
		return nil, err
	}

	fp, err := determinism.Fingerprint(d)
	if err != nil {
		return nil, apperrors.Internal("fingerprinting usage", err)
	}

	plans := e.catalog.Plans()
	result := &Result{
		Declaration:       d,
		Usage:             snap,
		Breakdowns:        make([]types.PlanBreakdown, 0, len(plans)),
		TariffFingerprint: e.catalog.Fingerprint(),
		UsageFingerprint:  fp,
	}
	logger := e.logger.With(zap.Stringer("usage", fp), zap.Stringer("tariff", result.TariffFingerprint))

	for _, plan := range plans {
		b := e.evaluator.Evaluate(plan, d, snap)
		logger.Debug("plan evaluated",
			zap.String("plan", plan.Key),
			zap.Bool("can_support", b.CanSupport),
			zap.String("total", b.TotalCost.String()),
			zap.Strings("reasons", b.Reasons),
		)
		result.Breakdowns = append(result.Breakdowns, b)
	}

	result.Recommended, result.HasRecommendation = SelectBest(result.Breakdowns)
	if result.HasRecommendation {
		logger.Debug("plan selected", zap.String("plan", result.Recommended))
	} else {
		logger.Debug("no plan can support the usage")
	}

	return result, nil
}
