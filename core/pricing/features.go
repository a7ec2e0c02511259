// Package pricing - Feature availability resolution
package pricing

import (
	"ghcost/core/catalog"
	"ghcost/core/types"
)

// resolveFeatures resolves every selected feature against a plan, keeping
// selection order. Keys missing from the catalog resolve as unavailable.
func (e *Evaluator) resolveFeatures(plan *catalog.Plan, d types.UsageDeclaration) []types.FeatureResolution {
	if len(d.Features) == 0 {
		return nil
	}

	out := make([]types.FeatureResolution, 0, len(d.Features))
	for _, key := range d.Features {
		f, ok := e.catalog.Feature(key)
		if !ok {
			out = append(out, types.FeatureResolution{
				Key:         key,
				DisplayName: key,
				Status:      types.FeatureUnavailable,
			})
			continue
		}
		out = append(out, ResolveFeature(f, plan, d))
	}
	return out
}

// ResolveFeature resolves one feature on one plan for a declaration
func ResolveFeature(f *catalog.Feature, plan *catalog.Plan, d types.UsageDeclaration) types.FeatureResolution {
	r := types.FeatureResolution{
		Key:         f.Key,
		DisplayName: f.DisplayName,
	}

	a := f.On(plan.Key)
	switch a.Kind {
	case catalog.Included:
		r.Status = types.FeatureIncluded
	case catalog.PublicOnly:
		if d.PublicRepository {
			r.Status = types.FeatureIncluded
		} else {
			r.Status = types.FeaturePublicOnly
		}
	case catalog.AddonRequired:
		r.Addon = a.Addon
		if plan.SecurityAddons && d.AddonEnabled(a.Addon) {
			r.Status = types.FeatureIncluded
		} else {
			r.Status = types.FeatureAddonRequired
		}
	case catalog.ServerOnly:
		r.Status = types.FeatureRequiresServer
	case catalog.CloudOnly:
		r.Status = types.FeatureRequiresCloud
	default:
		r.Status = types.FeatureUnavailable
	}
	return r
}
