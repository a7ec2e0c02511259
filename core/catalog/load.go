// Package catalog - Tariff loading
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"ghcost/core/determinism"
	"ghcost/core/types"
	apperrors "ghcost/internal/errors"
)

//go:embed data/tariff.yaml
var defaultTariffYAML []byte

// Document is the on-disk shape of a tariff, in YAML or JSON
type Document struct {
	Currency          types.Currency             `yaml:"currency" json:"currency"`
	Plans             []Plan                     `yaml:"plans" json:"plans"`
	ComputeProfiles   []ComputeProfile           `yaml:"compute_profiles" json:"compute_profiles"`
	ArtifactRates     OverageRates               `yaml:"artifact_rates" json:"artifact_rates"`
	LargeFileRates    OverageRates               `yaml:"large_file_rates" json:"large_file_rates"`
	DevRates          DevEnvironmentRates        `yaml:"dev_environment_rates" json:"dev_environment_rates"`
	SecurityRates     SecurityAddonRates         `yaml:"security_addon_rates" json:"security_addon_rates"`
	AssistantRates    AssistantRates             `yaml:"assistant_rates" json:"assistant_rates"`
	AddonRequirements map[string]types.AddonKind `yaml:"addon_requirements" json:"addon_requirements"`
	Features          []Feature                  `yaml:"features" json:"features"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded tariff catalog, parsed on first use
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(bytes.NewReader(defaultTariffYAML))
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot continue without a tariff
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded tariff is invalid: %v", err))
	}
	return c
}

// LoadFile loads a tariff from a YAML or JSON file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Config("opening tariff file", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading tariff %s: %w", path, err)
	}
	return c, nil
}

// Load parses and validates a tariff document. A document starting with
// '{' is read as JSON, anything else as YAML. Unknown keys are rejected.
func Load(r io.Reader) (*Catalog, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Parsing("reading tariff", err)
	}

	var doc Document
	if bytes.HasPrefix(bytes.TrimSpace(src), []byte("{")) {
		dec := json.NewDecoder(bytes.NewReader(src))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, apperrors.Parsing("decoding JSON tariff", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, apperrors.Parsing("decoding tariff", err)
		}
	}
	return New(doc)
}

// New builds a catalog from a document, resolving add-on requirements and
// enforcing the catalog invariants
func New(doc Document) (*Catalog, error) {
	c := &Catalog{
		currency:          doc.Currency,
		planIndex:         make(map[string]*Plan, len(doc.Plans)),
		profileIndex:      make(map[string]*ComputeProfile, len(doc.ComputeProfiles)),
		artifactRates:     doc.ArtifactRates,
		largeFileRates:    doc.LargeFileRates,
		devRates:          doc.DevRates,
		securityRates:     doc.SecurityRates,
		assistantRates:    doc.AssistantRates,
		featureIndex:      make(map[string]*Feature, len(doc.Features)),
		addonRequirements: make(map[string]types.AddonKind, len(doc.AddonRequirements)),
	}
	if c.currency == "" {
		c.currency = types.CurrencyUSD
	}

	var dupes []error
	for i := range doc.Plans {
		p := doc.Plans[i]
		if _, exists := c.planIndex[p.Key]; exists {
			dupes = append(dupes, fmt.Errorf("plan %q declared twice", p.Key))
			continue
		}
		c.plans = append(c.plans, &p)
		c.planIndex[p.Key] = &p
	}

	for i := range doc.ComputeProfiles {
		p := doc.ComputeProfiles[i]
		if _, exists := c.profileIndex[p.Kind]; exists {
			dupes = append(dupes, fmt.Errorf("compute profile %q declared twice", p.Kind))
			continue
		}
		c.profiles = append(c.profiles, &p)
		c.profileIndex[p.Kind] = &p
	}

	for key, addon := range doc.AddonRequirements {
		c.addonRequirements[key] = addon
	}

	for i := range doc.Features {
		f := doc.Features[i]
		if _, exists := c.featureIndex[f.Key]; exists {
			dupes = append(dupes, fmt.Errorf("feature %q declared twice", f.Key))
			continue
		}
		availability := make(map[string]Availability, len(f.Availability))
		for planKey, a := range f.Availability {
			if a.Kind == AddonRequired && a.Addon == "" {
				a.Addon = c.addonRequirements[f.Key]
			}
			availability[planKey] = a
		}
		f.Availability = availability
		c.features = append(c.features, &f)
		c.featureIndex[f.Key] = &f
	}

	errs := append(dupes, c.Validate(DefaultValidationRules())...)
	if len(errs) > 0 {
		return nil, catalogError(errs)
	}

	fp, err := determinism.Fingerprint(doc)
	if err != nil {
		return nil, apperrors.Internal("fingerprinting tariff", err)
	}
	c.fingerprint = fp
	return c, nil
}
