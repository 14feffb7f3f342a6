package geo

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/tripflow/internal/trip"
)

// Average overland speeds in km/h, chosen to reflect realistic door-to-door
// pacing rather than vehicle top speeds.
const (
	trainSpeedKmh = 65.0
	busSpeedKmh   = 45.0
	carSpeedKmh   = 55.0

	// Flights add a fixed ground-time buffer for check-in, security and taxi.
	flightCruiseKmh   = 700.0
	flightBufferHours = 3.0
)

// maxTravelPercent is the share of total trip time a one-way journey may
// consume before a mode is considered impractical for the trip.
const maxTravelPercent = 40.0

// TravelHours returns the estimated one-way travel time in hours for a mode.
func TravelHours(distanceKm int, mode trip.TravelMode) float64 {
	d := float64(distanceKm)
	switch mode {
	case trip.ModeFlight:
		return d/flightCruiseKmh + flightBufferHours
	case trip.ModeTrain:
		return d / trainSpeedKmh
	case trip.ModeBus:
		return d / busSpeedKmh
	case trip.ModeCar:
		return d / carSpeedKmh
	}
	return 0
}

// FormatHours renders a travel time for display: "45m", "7h 5m", or a ±1 hour
// range like "22-24 hours" for journeys of half a day or more, where traffic
// and delays make a precise figure misleading.
func FormatHours(hours float64) string {
	if hours < 1 {
		return fmt.Sprintf("%dm", int(hours*60))
	}
	if hours < 12 {
		h := int(hours)
		m := int((hours - float64(h)) * 60)
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%d-%d hours", int(hours-1), int(hours+1))
}

// EstimatedTimes returns the formatted one-way travel time for every mode,
// keyed by the mode's wire name.
func EstimatedTimes(distanceKm int) map[string]string {
	times := make(map[string]string, len(trip.AllModes()))
	for _, mode := range trip.AllModes() {
		times[mode.String()] = FormatHours(TravelHours(distanceKm, mode))
	}
	return times
}

// RecommendedModes returns the travel modes suited to a route distance, in
// preference order:
//
//	≤ 300 km  → car, bus
//	≤ 700 km  → train, bus
//	≤ 1200 km → train, flight
//	beyond    → flight, train
func RecommendedModes(distanceKm int) []trip.TravelMode {
	switch {
	case distanceKm <= 300:
		return []trip.TravelMode{trip.ModeCar, trip.ModeBus}
	case distanceKm <= 700:
		return []trip.TravelMode{trip.ModeTrain, trip.ModeBus}
	case distanceKm <= 1200:
		return []trip.TravelMode{trip.ModeTrain, trip.ModeFlight}
	default:
		return []trip.TravelMode{trip.ModeFlight, trip.ModeTrain}
	}
}

// ValidatePreferredMode checks a user's preferred mode against the
// recommendation list and the travel-time budget. A mode fails when it is not
// recommended for the distance, or when its one-way time exceeds 40% of the
// total trip time. The returned reason is empty for a valid mode.
func ValidatePreferredMode(distanceKm, days int, preferred trip.TravelMode, recommended []trip.TravelMode) (bool, string) {
	inList := false
	for _, m := range recommended {
		if m == preferred {
			inList = true
			break
		}
	}
	if !inList {
		names := make([]string, len(recommended))
		for i, m := range recommended {
			names[i] = m.String()
		}
		return false, fmt.Sprintf(
			"Selected mode is not realistic for %dkm distance. Recommended: %s.",
			distanceKm, strings.Join(names, ", "))
	}

	travelHours := TravelHours(distanceKm, preferred)
	totalHours := float64(days) * 24
	if travelHours/totalHours*100 > maxTravelPercent {
		return false, fmt.Sprintf(
			"Selected mode requires %s one-way, which is too long for a %d-day trip. "+
				"Consider a faster mode or extend your trip duration.",
			FormatHours(travelHours), days)
	}

	return true, ""
}
