package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

var (
	ErrLocationRequired = errors.New("location is required")
	ErrTooFar           = errors.New("too far from the office")
)

// TooFarError carries the distance of a rejected check-in.
type TooFarError struct {
	Distance  float64
	MaxMeters float64
}

func (e *TooFarError) Error() string {
	return fmt.Sprintf("too far from the office (%dm, max %dm)", int(math.Round(e.Distance)), int(math.Round(e.MaxMeters)))
}

func (e *TooFarError) Unwrap() error { return ErrTooFar }

type Point struct {
	Latitude  float64
	Longitude float64
}

// NewPoint returns nil unless both coordinates are present.
func NewPoint(lat, lng *float64) *Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &Point{Latitude: *lat, Longitude: *lng}
}

// DistanceMeters is the great-circle distance between a and b in meters.
func DistanceMeters(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// Fence gates check-ins to a radius around the office. A nil Office disables it.
type Fence struct {
	Office    *Point
	MaxMeters float64
}

func (f Fence) Enabled() bool {
	return f.Office != nil
}

// Validate returns ErrLocationRequired or a *TooFarError when submitted is not acceptable.
func (f Fence) Validate(submitted *Point) error {
	if !f.Enabled() {
		return nil
	}
	if submitted == nil {
		return ErrLocationRequired
	}

	distance := DistanceMeters(*submitted, *f.Office)
	if distance > f.MaxMeters {
		return &TooFarError{Distance: distance, MaxMeters: f.MaxMeters}
	}
	return nil
}
