package geo

import (
	"math"
	"strings"
	"testing"

	"github.com/Iron-Ham/tripflow/internal/trip"
)

func TestTravelHours(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm int
		mode       trip.TravelMode
		want       float64
	}{
		{"flight includes ground buffer", 462, trip.ModeFlight, 462.0/700 + 3},
		{"train", 462, trip.ModeTrain, 462.0 / 65},
		{"bus", 462, trip.ModeBus, 462.0 / 45},
		{"car", 462, trip.ModeCar, 462.0 / 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TravelHours(tt.distanceKm, tt.mode)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("TravelHours = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0.75, "45m"},
		{4.5, "4h 30m"},
		{4.0, "4h"},
		{11.99, "11h 59m"},
		{12.0, "11-13 hours"},
		{25.0, "24-26 hours"},
	}

	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestEstimatedTimes_CoversAllModes(t *testing.T) {
	times := EstimatedTimes(462)

	if len(times) != len(trip.AllModes()) {
		t.Fatalf("expected %d entries, got %d", len(trip.AllModes()), len(times))
	}
	for _, mode := range trip.AllModes() {
		if times[mode.String()] == "" {
			t.Errorf("missing estimated time for %s", mode)
		}
	}
	if times["flight"] != "3h 39m" {
		t.Errorf("flight time = %q, want %q", times["flight"], "3h 39m")
	}
}

func TestRecommendedModes(t *testing.T) {
	tests := []struct {
		distanceKm int
		want       []trip.TravelMode
	}{
		{200, []trip.TravelMode{trip.ModeCar, trip.ModeBus}},
		{462, []trip.TravelMode{trip.ModeTrain, trip.ModeBus}},
		{900, []trip.TravelMode{trip.ModeTrain, trip.ModeFlight}},
		{1838, []trip.TravelMode{trip.ModeFlight, trip.ModeTrain}},
	}

	for _, tt := range tests {
		got := RecommendedModes(tt.distanceKm)
		if len(got) != len(tt.want) {
			t.Errorf("RecommendedModes(%d) = %v, want %v", tt.distanceKm, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("RecommendedModes(%d)[%d] = %v, want %v", tt.distanceKm, i, got[i], tt.want[i])
			}
		}
	}
}

func TestValidatePreferredMode(t *testing.T) {
	t.Run("recommended mode within time budget", func(t *testing.T) {
		rec := RecommendedModes(462)
		valid, reason := ValidatePreferredMode(462, 4, trip.ModeTrain, rec)
		if !valid {
			t.Errorf("train should be valid for 462km/4 days, got reason %q", reason)
		}
		if reason != "" {
			t.Errorf("valid mode must carry no reason, got %q", reason)
		}
	})

	t.Run("mode outside recommendation list", func(t *testing.T) {
		rec := RecommendedModes(462) // train, bus
		valid, reason := ValidatePreferredMode(462, 4, trip.ModeFlight, rec)
		if valid {
			t.Error("flight is not recommended for 462km and must be flagged")
		}
		if !strings.Contains(reason, "not realistic") || !strings.Contains(reason, "train, bus") {
			t.Errorf("reason should name the recommended modes, got %q", reason)
		}
	})

	t.Run("recommended mode but over the 40 percent rule", func(t *testing.T) {
		// 1838km by train is ~28 hours one-way; 40% of a 2-day trip is 19.2h.
		rec := []trip.TravelMode{trip.ModeFlight, trip.ModeTrain}
		valid, reason := ValidatePreferredMode(1838, 2, trip.ModeTrain, rec)
		if valid {
			t.Error("28h one-way on a 2-day trip must fail the time budget")
		}
		if !strings.Contains(reason, "too long for a 2-day trip") {
			t.Errorf("reason should explain the time budget, got %q", reason)
		}
	})
}
