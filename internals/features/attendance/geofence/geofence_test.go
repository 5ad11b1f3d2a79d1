package geofence

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// titik uji: kantor pusat (NYC) dan titik 0.001° lat ke utara (~111 m).
var (
	office = Coordinate{Lat: 40.7128, Lng: -74.0060}
	nearby = Coordinate{Lat: 40.7138, Lng: -74.0060}
)

func TestDistance_SamePointIsZero(t *testing.T) {
	d, err := Distance(office, office)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistance_Symmetric(t *testing.T) {
	d1, err := Distance(office, nearby)
	require.NoError(t, err)
	d2, err := Distance(nearby, office)
	require.NoError(t, err)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_KnownValue(t *testing.T) {
	// 0.001° lintang ≈ 111.19 m pada model bola R=6371km
	d, err := Distance(office, nearby)
	require.NoError(t, err)
	assert.InDelta(t, 111.19, d, 0.5)
}

func TestDistance_AntipodalPairsStayFinite(t *testing.T) {
	// titik antipodal mendorong term Haversine tepat ke batas h=1;
	// pembulatan float sempat bikin Sqrt(1-h) NaN
	half := math.Pi * EarthRadiusM

	d, err := Distance(
		Coordinate{Lat: -44.91, Lng: 10.123456},
		Coordinate{Lat: 44.91, Lng: -169.876544},
	)
	require.NoError(t, err)
	require.False(t, math.IsNaN(d))
	assert.InDelta(t, half, d, 1.0)

	// sweep pasangan antipodal di berbagai lintang/bujur
	for lat := -89.5; lat <= 89.5; lat += 3.7 {
		for lng := -179.5; lng < 180; lng += 11.3 {
			oppLng := lng + 180
			if oppLng >= 180 {
				oppLng -= 360
			}
			d, err := Distance(
				Coordinate{Lat: Degrees(lat), Lng: Degrees(lng)},
				Coordinate{Lat: Degrees(-lat), Lng: Degrees(oppLng)},
			)
			require.NoError(t, err)
			require.False(t, math.IsNaN(d), "NaN untuk lat=%v lng=%v", lat, lng)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, half+1)
		}
	}
}

func TestDistance_ColinearPointsAdditive(t *testing.T) {
	// tiga titik segaris di meridian yang sama: jarak ujung-ke-ujung
	// ≈ jumlah dua segmennya
	a := Coordinate{Lat: 40.7128, Lng: -74.0060}
	b := Coordinate{Lat: 40.7138, Lng: -74.0060}
	c := Coordinate{Lat: 40.7148, Lng: -74.0060}

	ab, err := Distance(a, b)
	require.NoError(t, err)
	bc, err := Distance(b, c)
	require.NoError(t, err)
	ac, err := Distance(a, c)
	require.NoError(t, err)

	assert.InDelta(t, ab+bc, ac, 0.01)
}

func TestDistance_InvalidCoordinate(t *testing.T) {
	_, err := Distance(Coordinate{Lat: 91, Lng: 0}, office)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = Distance(office, Coordinate{Lat: 0, Lng: -180.01})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = Distance(Coordinate{Lat: Degrees(math.NaN()), Lng: 0}, office)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestIsWithin_BoundaryInclusive(t *testing.T) {
	d, err := Distance(office, nearby)
	require.NoError(t, err)

	// radius persis sama dengan jarak → masih di dalam
	ok, err := IsWithin(nearby, GeoFence{Center: office, RadiusM: d})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsWithin(nearby, GeoFence{Center: office, RadiusM: d - 0.01})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluatePresence(t *testing.T) {
	t.Run("same point within 50m", func(t *testing.T) {
		status, d, err := EvaluatePresence(office, &GeoFence{Center: office, RadiusM: 50})
		require.NoError(t, err)
		assert.Equal(t, PresencePresent, status)
		assert.Equal(t, 0.0, d)
	})

	t.Run("111m away, radius 50m → absent", func(t *testing.T) {
		status, d, err := EvaluatePresence(nearby, &GeoFence{Center: office, RadiusM: 50})
		require.NoError(t, err)
		assert.Equal(t, PresenceAbsent, status)
		assert.InDelta(t, 111.19, d, 0.5)
	})

	t.Run("111m away, radius 150m → present", func(t *testing.T) {
		status, _, err := EvaluatePresence(nearby, &GeoFence{Center: office, RadiusM: 150})
		require.NoError(t, err)
		assert.Equal(t, PresencePresent, status)
	})

	t.Run("nil fence → present, distance 0", func(t *testing.T) {
		// null island pun lolos kalau owner tidak set fence
		status, d, err := EvaluatePresence(Coordinate{Lat: 0, Lng: 0}, nil)
		require.NoError(t, err)
		assert.Equal(t, PresencePresent, status)
		assert.Equal(t, 0.0, d)
	})

	t.Run("invalid user coordinate", func(t *testing.T) {
		_, _, err := EvaluatePresence(Coordinate{Lat: -90.5, Lng: 0}, &GeoFence{Center: office, RadiusM: 50})
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})
}

func TestCoordinate_Validate_EdgeValues(t *testing.T) {
	for _, c := range []Coordinate{
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 0, Lng: 0},
	} {
		assert.NoError(t, c.Validate(), "coordinate %+v", c)
	}
}

func TestDegrees_UnmarshalJSON_MixedRepresentations(t *testing.T) {
	type payload struct {
		Lat Degrees `json:"lat"`
		Lng Degrees `json:"lng"`
	}

	t.Run("plain numbers", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"lat":40.7128,"lng":-74.006}`), &p))
		assert.Equal(t, 40.7128, p.Lat.Float())
	})

	t.Run("quoted strings", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"lat":"40.7128","lng":"-74.006"}`), &p))
		assert.Equal(t, 40.7128, p.Lat.Float())
		assert.Equal(t, -74.006, p.Lng.Float())
	})

	t.Run("garbage", func(t *testing.T) {
		var p payload
		err := json.Unmarshal([]byte(`{"lat":"abc","lng":0}`), &p)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})

	t.Run("null", func(t *testing.T) {
		var p payload
		err := json.Unmarshal([]byte(`{"lat":null,"lng":0}`), &p)
		assert.Error(t, err)
	})
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{float64(1.5), 1.5},
		{float32(2), 2},
		{int(3), 3},
		{int64(4), 4},
		{Degrees(5.5), 5.5},
		{json.Number("6.25"), 6.25},
		{" 7.5 ", 7.5},
	}
	for _, tc := range cases {
		got, err := ToFloat(tc.in)
		require.NoError(t, err, "input %v (%T)", tc.in, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ToFloat(nil)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	_, err = ToFloat("not-a-number")
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	_, err = ToFloat(struct{}{})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestNewCoordinate(t *testing.T) {
	c, err := NewCoordinate("40.7128", -74.006)
	require.NoError(t, err)
	assert.Equal(t, 40.7128, c.Lat.Float())

	_, err = NewCoordinate(95, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}
