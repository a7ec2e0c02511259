// Package catalog - Feature availability
package catalog

import (
	"fmt"
	"strings"

	"ghcost/core/types"
)

// AvailabilityKind classifies how a plan offers a feature
type AvailabilityKind int

const (
	// Unavailable - the plan does not offer the feature
	Unavailable AvailabilityKind = iota
	// Included - the plan offers the feature unconditionally
	Included
	// PublicOnly - the plan offers the feature for public repositories only
	PublicOnly
	// AddonRequired - the feature needs a security add-on
	AddonRequired
	// ServerOnly - the feature exists only in the self-hosted deployment
	ServerOnly
	// CloudOnly - the feature exists only in the cloud deployment
	CloudOnly
)

var availabilityNames = map[AvailabilityKind]string{
	Unavailable:   "unavailable",
	Included:      "included",
	PublicOnly:    "public_only",
	AddonRequired: "addon_required",
	ServerOnly:    "server_only",
	CloudOnly:     "cloud_only",
}

// String returns string representation
func (k AvailabilityKind) String() string {
	if name, ok := availabilityNames[k]; ok {
		return name
	}
	return "unknown"
}

// Availability is the per-plan offering of a feature. Addon is only
// meaningful when Kind is AddonRequired.
type Availability struct {
	Kind  AvailabilityKind
	Addon types.AddonKind
}

// NeedsAddon builds an AddonRequired availability
func NeedsAddon(addon types.AddonKind) Availability {
	return Availability{Kind: AddonRequired, Addon: addon}
}

// Of builds an availability without an add-on
func Of(kind AvailabilityKind) Availability {
	return Availability{Kind: kind}
}

// String returns the text form, e.g. "included" or "addon:code_security"
func (a Availability) String() string {
	if a.Kind == AddonRequired && a.Addon != "" {
		return "addon:" + string(a.Addon)
	}
	return a.Kind.String()
}

// MarshalText implements encoding.TextMarshaler
func (a Availability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Availability) UnmarshalText(text []byte) error {
	parsed, err := ParseAvailability(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAvailability parses the text form of an availability
func ParseAvailability(s string) (Availability, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if addon, ok := strings.CutPrefix(s, "addon:"); ok {
		kind := types.AddonKind(addon)
		if !kind.Valid() {
			return Availability{}, fmt.Errorf("unknown add-on %q", addon)
		}
		return NeedsAddon(kind), nil
	}

	for kind, name := range availabilityNames {
		if name == s {
			return Of(kind), nil
		}
	}
	return Availability{}, fmt.Errorf("unknown availability %q", s)
}
