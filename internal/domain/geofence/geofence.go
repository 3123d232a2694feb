package geofence

import (
	"github.com/hadirly/attendance-backend-go/internal/pkg/geo"
)

// Defaults applied when a custom premise omits optional fields.
const (
	DefaultCustomRadiusMeters = 250
	DefaultCustomLabel        = "Custom Premise"
)

// Source tags which perimeter a resolved geofence came from.
type Source string

const (
	SourceBranch        Source = "branch"
	SourceCustomPremise Source = "custom_premise"
)

// Coordinate is a reported position in degrees. Accuracy, when the client
// supplies it, is the GPS accuracy radius in meters.
type Coordinate struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
}

// Spec is a circular perimeter authorizing attendance actions.
type Spec struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Label        string
}

// CustomPremise is a caller-supplied temporary override for a single
// request. It only takes effect when both coordinates are present.
type CustomPremise struct {
	Label        *string  `json:"label,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
}

// HasCoordinates reports whether the override carries both coordinates and
// therefore supersedes the branch perimeter.
func (p *CustomPremise) HasCoordinates() bool {
	return p != nil && p.Latitude != nil && p.Longitude != nil
}

// Resolved is the perimeter in effect for one request, tagged with its
// source. It is resolved once per request and carried through check-in,
// check-out and location updates so all three evaluate against the same
// perimeter.
type Resolved struct {
	Spec
	Source Source
}

// Evaluation is the result of a membership check.
type Evaluation struct {
	IsWithin       bool
	DistanceMeters float64
}

// Resolve picks the effective perimeter for a request. A custom premise
// carrying both coordinates always wins over the branch geofence; radius
// defaults to DefaultCustomRadiusMeters and label to DefaultCustomLabel
// when the override omits them.
func Resolve(branch Spec, override *CustomPremise) Resolved {
	if !override.HasCoordinates() {
		return Resolved{Spec: branch, Source: SourceBranch}
	}

	spec := Spec{
		Latitude:     *override.Latitude,
		Longitude:    *override.Longitude,
		RadiusMeters: DefaultCustomRadiusMeters,
		Label:        DefaultCustomLabel,
	}
	if override.RadiusMeters != nil && *override.RadiusMeters > 0 {
		spec.RadiusMeters = *override.RadiusMeters
	}
	if override.Label != nil && *override.Label != "" {
		spec.Label = *override.Label
	}

	return Resolved{Spec: spec, Source: SourceCustomPremise}
}

// Evaluate computes membership of a position in a perimeter. The boundary
// is inclusive: a position exactly on the radius is within.
func Evaluate(position Coordinate, spec Spec) Evaluation {
	distance := geo.Distance(position.Latitude, position.Longitude, spec.Latitude, spec.Longitude)
	return Evaluation{
		IsWithin:       distance <= spec.RadiusMeters,
		DistanceMeters: distance,
	}
}
