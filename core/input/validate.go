// Package input - Document validation
package input

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ghcost/core/catalog"
	apperrors "ghcost/internal/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Violation is one rejected document field
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Validate checks a document against the domain limits and the catalog.
// The returned error is an input error carrying the violations.
func Validate(cat *catalog.Catalog, doc Document) error {
	var violations []Violation

	if err := validate.Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) {
			return apperrors.Internal("validating usage document", err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, Violation{
				Field:   fieldPath(fe.Namespace()),
				Rule:    fe.Tag(),
				Message: describe(fe),
			})
		}
	}

	violations = append(violations, catalogViolations(cat, doc)...)

	if len(violations) == 0 {
		return nil
	}
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Field + ": " + v.Message
	}
	return apperrors.Input(strings.Join(msgs, "; ")).WithContext("violations", violations)
}

// Violations extracts the field violations from a Validate error
func Violations(err error) []Violation {
	var e *apperrors.Error
	if !stderrors.As(err, &e) {
		return nil
	}
	v, _ := e.Context["violations"].([]Violation)
	return v
}

// catalogViolations rejects names the tariff does not know
func catalogViolations(cat *catalog.Catalog, doc Document) []Violation {
	var out []Violation
	for i, r := range doc.Compute {
		if r.Kind == "" {
			continue
		}
		if _, ok := cat.ComputeProfile(r.Kind); !ok {
			out = append(out, Violation{
				Field:   fmt.Sprintf("compute[%d].kind", i),
				Rule:    "runner_kind",
				Message: fmt.Sprintf("unknown runner kind %q", r.Kind),
			})
		}
	}
	for i, m := range doc.DevEnvironments {
		if m.Cores <= 0 {
			continue
		}
		if _, ok := cat.CoreMultiplier(m.Cores); !ok {
			out = append(out, Violation{
				Field:   fmt.Sprintf("dev_environments[%d].cores", i),
				Rule:    "machine_size",
				Message: fmt.Sprintf("unknown machine size %d cores (known: %v)", m.Cores, cat.CoreCounts()),
			})
		}
	}
	for i, key := range doc.Features {
		if key == "" {
			continue
		}
		if _, ok := cat.Feature(key); !ok {
			out = append(out, Violation{
				Field:   fmt.Sprintf("features[%d]", i),
				Rule:    "feature",
				Message: fmt.Sprintf("unknown feature %q", key),
			})
		}
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
