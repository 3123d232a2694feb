package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

var branchSpec = Spec{
	Latitude:     28.6139,
	Longitude:    77.2090,
	RadiusMeters: 250,
	Label:        "Head Office",
}

func TestResolveBranchWhenNoOverride(t *testing.T) {
	resolved := Resolve(branchSpec, nil)

	assert.Equal(t, SourceBranch, resolved.Source)
	assert.Equal(t, branchSpec, resolved.Spec)
}

func TestResolveBranchWhenOverrideMissingCoordinates(t *testing.T) {
	// Label or radius alone does not activate the override.
	overrides := []*CustomPremise{
		{},
		{Label: strPtr("Client Site")},
		{Latitude: floatPtr(28.7)},
		{Longitude: floatPtr(77.1)},
		{RadiusMeters: floatPtr(100)},
	}
	for _, o := range overrides {
		resolved := Resolve(branchSpec, o)
		assert.Equal(t, SourceBranch, resolved.Source)
		assert.Equal(t, branchSpec, resolved.Spec)
	}
}

func TestResolveCustomPremiseWins(t *testing.T) {
	override := &CustomPremise{
		Label:        strPtr("Client Site"),
		Latitude:     floatPtr(28.7041),
		Longitude:    floatPtr(77.1025),
		RadiusMeters: floatPtr(100),
	}

	resolved := Resolve(branchSpec, override)

	assert.Equal(t, SourceCustomPremise, resolved.Source)
	assert.Equal(t, 28.7041, resolved.Latitude)
	assert.Equal(t, 77.1025, resolved.Longitude)
	assert.Equal(t, float64(100), resolved.RadiusMeters)
	assert.Equal(t, "Client Site", resolved.Label)
}

func TestResolveCustomPremiseDefaults(t *testing.T) {
	override := &CustomPremise{
		Latitude:  floatPtr(28.7041),
		Longitude: floatPtr(77.1025),
	}

	resolved := Resolve(branchSpec, override)

	assert.Equal(t, SourceCustomPremise, resolved.Source)
	assert.Equal(t, float64(DefaultCustomRadiusMeters), resolved.RadiusMeters)
	assert.Equal(t, DefaultCustomLabel, resolved.Label)
}

func TestEvaluateWithinGeofence(t *testing.T) {
	// ~15 m from the branch center, well inside the 250 m radius.
	eval := Evaluate(Coordinate{Latitude: 28.6140, Longitude: 77.2091}, branchSpec)

	assert.True(t, eval.IsWithin)
	assert.InDelta(t, 14.8, eval.DistanceMeters, 1.0)
}

func TestEvaluateOutsideGeofence(t *testing.T) {
	// ~2 km north of the branch center.
	eval := Evaluate(Coordinate{Latitude: 28.6319, Longitude: 77.2090}, branchSpec)

	assert.False(t, eval.IsWithin)
	assert.Greater(t, eval.DistanceMeters, float64(1900))
}

func TestEvaluateBoundaryInclusive(t *testing.T) {
	eval := Evaluate(Coordinate{Latitude: branchSpec.Latitude, Longitude: branchSpec.Longitude}, branchSpec)
	assert.True(t, eval.IsWithin)
	assert.Zero(t, eval.DistanceMeters)

	// A spec whose radius equals the measured distance is still within.
	pos := Coordinate{Latitude: 28.6140, Longitude: 77.2091}
	exact := Evaluate(pos, branchSpec)
	tight := branchSpec
	tight.RadiusMeters = exact.DistanceMeters
	assert.True(t, Evaluate(pos, tight).IsWithin)
}

func TestEvaluateCustomPremiseNearbyOverridesDistantBranch(t *testing.T) {
	// Branch 5 km away would reject; a 100 m custom premise 50 m from the
	// reported position accepts.
	distantBranch := Spec{Latitude: 28.6589, Longitude: 77.2090, RadiusMeters: 250, Label: "Head Office"}
	position := Coordinate{Latitude: 28.7041, Longitude: 77.1025}

	override := &CustomPremise{
		Latitude:     floatPtr(28.70455), // ~50 m north of position
		Longitude:    floatPtr(77.1025),
		RadiusMeters: floatPtr(100),
	}

	resolved := Resolve(distantBranch, override)
	eval := Evaluate(position, resolved.Spec)

	assert.Equal(t, SourceCustomPremise, resolved.Source)
	assert.True(t, eval.IsWithin)
	assert.InDelta(t, 50, eval.DistanceMeters, 5)
}
