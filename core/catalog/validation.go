// Package catalog - Catalog validation
// Ensures catalog integrity and enforces invariants.
package catalog

import (
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "ghcost/internal/errors"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*Catalog) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateHasPlans,
		validatePlanQuotas,
		validateComputeProfiles,
		validateCoreMultipliers,
		validateRates,
		validateFeaturePlans,
		validateAddonRequirements,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(c)...)
	}
	return errs
}

func catalogError(errs []error) error {
	err := apperrors.Catalog(fmt.Sprintf("tariff has %d validation errors", len(errs)))
	err.Cause = stderrors.Join(errs...)
	return err
}

func validateHasPlans(c *Catalog) []error {
	if len(c.plans) == 0 {
		return []error{fmt.Errorf("at least one plan is required")}
	}
	return nil
}

func validatePlanQuotas(c *Catalog) []error {
	var errs []error
	for _, p := range c.plans {
		if p.Key == "" {
			errs = append(errs, fmt.Errorf("plan without key"))
			continue
		}
		if p.MaxUsers < 0 {
			errs = append(errs, fmt.Errorf("plan %s: max_users must not be negative", p.Key))
		}
		named := map[string]decimal.Decimal{
			"base_cost":                   p.BaseCost,
			"per_user_cost":               p.PerUserCost,
			"compute.included_minutes":    p.Compute.IncludedMinutes,
			"artifacts.storage_gb":        p.Artifacts.StorageGB,
			"artifacts.transfer_gb":       p.Artifacts.TransferGB,
			"large_files.storage_gb":      p.LargeFiles.StorageGB,
			"large_files.transfer_gb":     p.LargeFiles.TransferGB,
			"dev_environments.core_hours": p.DevEnvironments.CoreHours,
			"dev_environments.storage_gb": p.DevEnvironments.StorageGB,
		}
		for field, v := range named {
			if v.IsNegative() {
				errs = append(errs, fmt.Errorf("plan %s: %s must not be negative", p.Key, field))
			}
		}
	}
	return errs
}

func validateComputeProfiles(c *Catalog) []error {
	var errs []error
	if len(c.profiles) == 0 {
		errs = append(errs, fmt.Errorf("at least one compute profile is required"))
	}
	for _, p := range c.profiles {
		if !p.BillingMultiplier.IsPositive() {
			errs = append(errs, fmt.Errorf("compute profile %s: multiplier must be positive", p.Kind))
		}
		if p.OverageRate.IsNegative() {
			errs = append(errs, fmt.Errorf("compute profile %s: overage rate must not be negative", p.Kind))
		}
	}
	return errs
}

func validateCoreMultipliers(c *Catalog) []error {
	var errs []error
	if len(c.devRates.CoreMultipliers) == 0 {
		errs = append(errs, fmt.Errorf("at least one dev environment machine size is required"))
	}
	for cores, m := range c.devRates.CoreMultipliers {
		if cores <= 0 {
			errs = append(errs, fmt.Errorf("dev environment core count %d must be positive", cores))
		}
		if !m.IsPositive() {
			errs = append(errs, fmt.Errorf("dev environment %d-core multiplier must be positive", cores))
		}
	}
	return errs
}

func validateRates(c *Catalog) []error {
	named := map[string]decimal.Decimal{
		"artifact_rates.storage":                 c.artifactRates.StoragePerGBMonth,
		"artifact_rates.transfer":                c.artifactRates.TransferPerGB,
		"large_file_rates.storage":               c.largeFileRates.StoragePerGBMonth,
		"large_file_rates.transfer":              c.largeFileRates.TransferPerGB,
		"dev_environment_rates.base_core_rate":   c.devRates.BaseCoreRatePerHour,
		"dev_environment_rates.storage_rate":     c.devRates.StoragePerGBMonth,
		"security_addon_rates.code_security":     c.securityRates.CodeSecurity,
		"security_addon_rates.secret_protection": c.securityRates.SecretProtection,
		"assistant_rates.individual_free":        c.assistantRates.IndividualFree,
		"assistant_rates.individual_standard":    c.assistantRates.IndividualStandard,
		"assistant_rates.individual_premium":     c.assistantRates.IndividualPremium,
		"assistant_rates.org_standard":           c.assistantRates.OrgStandard,
		"assistant_rates.org_premium":            c.assistantRates.OrgPremium,
		"assistant_rates.overage_request":        c.assistantRates.PerOverageRequest,
	}
	var errs []error
	for field, v := range named {
		if v.IsNegative() {
			errs = append(errs, fmt.Errorf("%s must not be negative", field))
		}
	}
	return errs
}

// validateFeaturePlans ensures the availability matrix only names known plans
func validateFeaturePlans(c *Catalog) []error {
	var errs []error
	for _, f := range c.features {
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("feature without key"))
			continue
		}
		for planKey := range f.Availability {
			if _, ok := c.planIndex[planKey]; !ok {
				errs = append(errs, fmt.Errorf("feature %s: unknown plan %q", f.Key, planKey))
			}
		}
	}
	return errs
}

// validateAddonRequirements ensures every addon_required cell resolves to an add-on
func validateAddonRequirements(c *Catalog) []error {
	var errs []error
	for key, addon := range c.addonRequirements {
		if _, ok := c.featureIndex[key]; !ok {
			errs = append(errs, fmt.Errorf("addon_requirements: unknown feature %q", key))
		}
		if !addon.Valid() {
			errs = append(errs, fmt.Errorf("addon_requirements: feature %s maps to unknown add-on %q", key, addon))
		}
	}
	for _, f := range c.features {
		for planKey, a := range f.Availability {
			if a.Kind == AddonRequired && !a.Addon.Valid() {
				errs = append(errs, fmt.Errorf("feature %s on plan %s requires an add-on but none is mapped", f.Key, planKey))
			}
		}
	}
	return errs
}
