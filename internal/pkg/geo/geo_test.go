package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{28.6139, 77.2090},
		{-6.2088, 106.8456},
		{89.9, 179.9},
	}
	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := [2]float64{28.6139, 77.2090}
	b := [2]float64{28.7041, 77.1025}

	ab := Distance(a[0], a[1], b[0], b[1])
	ba := Distance(b[0], b[1], a[0], a[1])
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceKnownValues(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		// One block apart in central Delhi, ~14-15 m.
		{"adjacent points", 28.6139, 77.2090, 28.6140, 77.2091, 14.8, 1.0},
		// One degree of latitude, ~111.2 km.
		{"one degree latitude", 0, 0, 1, 0, 111195, 50},
		// Delhi to Noida, ~16 km.
		{"across town", 28.6139, 77.2090, 28.5355, 77.3910, 19850, 300},
	}
	for _, c := range cases {
		got := Distance(c.lat1, c.lon1, c.lat2, c.lon2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: Distance = %.1f m, want %.1f ± %.1f", c.name, got, c.want, c.tolerance)
		}
	}
}
