package attendance

import (
	"testing"
	"time"

	"github.com/hadirly/attendance-backend-go/internal/domain/geofence"
	"github.com/stretchr/testify/assert"
)

func TestComputeWorkHours(t *testing.T) {
	day := func(h, m, s int) time.Time {
		return time.Date(2025, 3, 10, h, m, s, 0, time.UTC)
	}

	cases := []struct {
		name string
		in   time.Time
		out  time.Time
		want float64
	}{
		{"standard day", day(9, 0, 0), day(17, 30, 0), 8.50},
		{"zero duration", day(9, 0, 0), day(9, 0, 0), 0},
		{"rounds half up", day(9, 0, 0), day(9, 0, 18), 0.01}, // 18s = 0.005h
		{"rounds down", day(9, 0, 0), day(9, 0, 17), 0},       // 17s = 0.00472h
		{"overnight shift", day(22, 0, 0), day(22, 0, 0).Add(8*time.Hour + 15*time.Minute), 8.25},
	}
	for _, c := range cases {
		got := ComputeWorkHours(c.in, c.out)
		assert.Equal(t, c.want, got, c.name)
		assert.GreaterOrEqual(t, got, float64(0), c.name)
	}
}

func TestStatusForEvaluation(t *testing.T) {
	assert.Equal(t, StatusPresent, StatusForEvaluation(geofence.Evaluation{IsWithin: true, DistanceMeters: 14}))
	assert.Equal(t, StatusPending, StatusForEvaluation(geofence.Evaluation{IsWithin: false, DistanceMeters: 2000}))
}

func TestDayKey(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	// 23:30 UTC on March 10 is already March 11 in Jakarta (UTC+7).
	instant := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	utcKey := DayKey(instant, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), utcKey)

	jakartaKey := DayKey(instant, jakarta)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), jakartaKey)
}

func TestGeofenceSnapshotRoundTrip(t *testing.T) {
	att := Attendance{
		GeofenceLabel:     "Head Office",
		GeofenceLatitude:  28.6139,
		GeofenceLongitude: 77.2090,
		GeofenceRadiusM:   250,
		CustomPremiseUsed: false,
	}

	spec := att.GeofenceSpec()
	assert.Equal(t, geofence.Spec{Latitude: 28.6139, Longitude: 77.2090, RadiusMeters: 250, Label: "Head Office"}, spec)
	assert.Equal(t, geofence.SourceBranch, att.GeofenceSource())

	att.CustomPremiseUsed = true
	assert.Equal(t, geofence.SourceCustomPremise, att.GeofenceSource())
}

func TestHasCheckedInOut(t *testing.T) {
	var nilAtt *Attendance
	assert.False(t, nilAtt.HasCheckedIn())
	assert.False(t, nilAtt.HasCheckedOut())

	now := time.Now()
	att := &Attendance{ClockIn: &now}
	assert.True(t, att.HasCheckedIn())
	assert.False(t, att.HasCheckedOut())

	att.ClockOut = &now
	assert.True(t, att.HasCheckedOut())
}
