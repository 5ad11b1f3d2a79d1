// internals/features/attendance/geofence/geofence.go
package geofence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidCoordinate = errors.New("koordinat tidak valid")
)

// Radius bumi model bola (meter). Haversine cukup akurat untuk skala kampus/gedung.
const EarthRadiusM = 6371000.0

type PresenceStatus string

const (
	PresencePresent PresenceStatus = "present"
	PresenceAbsent  PresenceStatus = "absent"
)

/* ===============================
   Degrees: normalisasi angka campuran
=================================*/

// Degrees menerima representasi numerik campuran dari upstream
// (float JSON, string hasil decode, decimal dari DB) dan menormalkan ke float64.
type Degrees float64

func (d *Degrees) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return fmt.Errorf("%w: kosong", ErrInvalidCoordinate)
	}
	// dukung "12.34" (quoted) maupun 12.34
	s := strings.Trim(string(b), `"`)
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	*d = Degrees(f)
	return nil
}

func (d Degrees) Float() float64 { return float64(d) }

// ToFloat koersi nilai numeric-like apa pun ke float64.
// Dipakai di boundary persistence/JSON supaya tidak ada float() ad-hoc tersebar.
func ToFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: nil", ErrInvalidCoordinate)
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case Degrees:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, t.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, t)
		}
		return f, nil
	case fmt.Stringer: // decimal types dari driver DB
		f, err := strconv.ParseFloat(strings.TrimSpace(t.String()), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, t.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: tipe %T", ErrInvalidCoordinate, v)
	}
}

/* ===============================
   Coordinate & GeoFence
=================================*/

// Coordinate pasangan (lat, lng) dalam derajat desimal, WGS-84.
type Coordinate struct {
	Lat Degrees `json:"lat"`
	Lng Degrees `json:"lng"`
}

// NewCoordinate membangun Coordinate dari representasi numerik apa pun.
func NewCoordinate(lat, lng any) (Coordinate, error) {
	fLat, err := ToFloat(lat)
	if err != nil {
		return Coordinate{}, err
	}
	fLng, err := ToFloat(lng)
	if err != nil {
		return Coordinate{}, err
	}
	c := Coordinate{Lat: Degrees(fLat), Lng: Degrees(fLng)}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate: lat ∈ [-90,90], lng ∈ [-180,180], bukan NaN/Inf.
func (c Coordinate) Validate() error {
	lat, lng := c.Lat.Float(), c.Lng.Float()
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: NaN/Inf", ErrInvalidCoordinate)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: lat %v di luar [-90,90]", ErrInvalidCoordinate, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: lng %v di luar [-180,180]", ErrInvalidCoordinate, lng)
	}
	return nil
}

// GeoFence: lingkaran center + radius meter.
type GeoFence struct {
	Center  Coordinate `json:"center"`
	RadiusM float64    `json:"radius_m"`
}

/* ===============================
   Evaluator
=================================*/

// Distance menghitung jarak great-circle (Haversine) dalam meter.
func Distance(a, b Coordinate) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	lat1 := a.Lat.Float() * math.Pi / 180
	lat2 := b.Lat.Float() * math.Pi / 180
	dLat := (b.Lat.Float() - a.Lat.Float()) * math.Pi / 180
	dLng := (b.Lng.Float() - a.Lng.Float()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// pembulatan float bisa mendorong h sedikit di atas 1 untuk pasangan
	// hampir antipodal; tanpa clamp, Sqrt(1-h) = NaN
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)), nil
}

// IsWithin true kalau jarak user ke center <= radius (batas inklusif).
func IsWithin(user Coordinate, fence GeoFence) (bool, error) {
	d, err := Distance(user, fence.Center)
	if err != nil {
		return false, err
	}
	return d <= fence.RadiusM, nil
}

// EvaluatePresence memutuskan present/absent + jarak.
// fence == nil artinya owner tidak pernah set lokasi → present, jarak 0.
// NOTE: perilaku permisif ini mengikuti kebijakan produk lama; kalau mau
// strict (tolak check-in tanpa fence), ubah di sini lewat konfigurasi.
func EvaluatePresence(user Coordinate, fence *GeoFence) (PresenceStatus, float64, error) {
	if fence == nil {
		return PresencePresent, 0, nil
	}
	d, err := Distance(user, fence.Center)
	if err != nil {
		return "", 0, err
	}
	if d <= fence.RadiusM {
		return PresencePresent, d, nil
	}
	return PresenceAbsent, d, nil
}
