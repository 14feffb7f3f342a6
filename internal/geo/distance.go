// Package geo holds the deterministic geography and travel-time engines
// behind the feasibility and mode-recommendation services. No external APIs,
// no model calls: the same inputs always produce the same answers.
package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for great-circle math.
const EarthRadiusKm = 6371.0

// roadFactor converts great-circle distance into an overland route estimate.
// Roads and rail never follow the geodesic; 5% is a conservative allowance
// that keeps city-pair numbers in line with published route distances.
const roadFactor = 1.05

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// RouteKm returns the estimated overland route distance between two points,
// rounded to whole kilometers. This is the distance every service reports.
func RouteKm(lat1, lon1, lat2, lon2 float64) int {
	km := HaversineKm(lat1, lon1, lat2, lon2) * roadFactor
	return int(km + 0.5)
}

// MinimumDays returns the minimum recommended trip duration for a route
// distance:
//
//	≤ 300 km  → 2 days
//	≤ 450 km  → 3 days
//	≤ 1200 km → 4 days
//	beyond    → 5 days
func MinimumDays(distanceKm int) int {
	switch {
	case distanceKm <= 300:
		return 2
	case distanceKm <= 450:
		return 3
	case distanceKm <= 1200:
		return 4
	default:
		return 5
	}
}

// CheckFeasibility applies the minimum-day rule to a route. When the route is
// not feasible the returned reason explains the shortfall in user terms;
// feasible routes carry an empty reason.
func CheckFeasibility(distanceKm, days int) (feasible bool, minimumDays int, reason string) {
	minimumDays = MinimumDays(distanceKm)
	feasible = days >= minimumDays
	if !feasible {
		reason = fmt.Sprintf(
			"Distance too long for selected trip duration. Recommended minimum is %d days for a %dkm journey.",
			minimumDays, distanceKm)
	}
	return feasible, minimumDays, reason
}

// DistanceCategory buckets a route distance for logging and analytics.
func DistanceCategory(distanceKm int) string {
	switch {
	case distanceKm <= 300:
		return "short"
	case distanceKm <= 700:
		return "medium"
	case distanceKm <= 1200:
		return "long"
	default:
		return "very_long"
	}
}
