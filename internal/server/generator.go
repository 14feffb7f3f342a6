package server

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/tripflow/internal/geo"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// ============================================================================
// Itinerary generation
// ============================================================================
//
// The generator is a pure function of the configuration: same intent, same
// itinerary. It fills a template driven by the user's interests, pace, and
// constraints instead of calling out to a language model, which keeps the
// endpoint deterministic and dependency-free.

// activityKeywords maps interest keywords to activity types.
var activityKeywords = []struct {
	keyword  string
	activity string
}{
	{"beach", "beach"},
	{"food", "food"},
	{"dining", "food"},
	{"seafood", "food"},
	{"market", "shopping"},
	{"shopping", "shopping"},
	{"handicraft", "shopping"},
	{"nature", "nature"},
	{"wildlife", "nature"},
	{"plantation", "nature"},
	{"garden", "nature"},
	{"trek", "adventure"},
	{"rafting", "adventure"},
	{"adventure", "adventure"},
	{"sport", "sports"},
	{"heritage", "history"},
	{"history", "history"},
	{"fort", "history"},
	{"palace", "history"},
	{"architecture", "history"},
	{"culture", "culture"},
	{"spiritual", "culture"},
	{"yoga", "relaxation"},
	{"relax", "relaxation"},
	{"photography", "sightseeing"},
	{"art", "art"},
	{"music", "music"},
	{"nightlife", "music"},
}

// activityFor picks the activity type for an interest label.
func activityFor(interest string) string {
	lower := strings.ToLower(interest)
	for _, kw := range activityKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.activity
		}
	}
	return "sightseeing"
}

// titleCase capitalizes each word of an interest label for display.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "&" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// dayWindows returns the three block time windows for a day, shifted by the
// configured start time and the avoid-early-mornings constraint.
func dayWindows(startTime string, avoidEarly bool) [3]string {
	switch {
	case avoidEarly || startTime == "late":
		return [3]string{"09:30-12:30", "13:30-17:00", "18:00-21:30"}
	case startTime == "early":
		return [3]string{"07:00-10:30", "11:30-16:00", "17:00-21:00"}
	default:
		return [3]string{"08:00-11:30", "12:30-16:30", "17:30-21:00"}
	}
}

// GenerateItinerary builds the full trip plan from a committed configuration.
func GenerateItinerary(cfg trip.Configuration) trip.Itinerary {
	summary := cfg.TripSummary
	opts := cfg.OptionalConstraints
	interests := cfg.Interests
	if len(interests) == 0 {
		interests = fallbackInterests
	}

	windows := dayWindows(cfg.Constraints.StartTime, opts.AvoidEarlyMornings)
	veg := opts.VegetarianFriendly

	days := make([]trip.DayPlan, 0, summary.Days)
	for day := 1; day <= summary.Days; day++ {
		interest := interests[(day-1)%len(interests)]
		display := titleCase(interest)
		activity := activityFor(interest)

		plan := trip.DayPlan{
			Day:        day,
			DayTheme:   fmt.Sprintf("%s in %s", display, summary.Destination),
			DaySummary: daySummary(day, summary, display, cfg.Constraints),
		}

		switch {
		case day == 1:
			plan.Blocks = append(plan.Blocks, arrivalBlock(summary, windows[0]))
		default:
			plan.Blocks = append(plan.Blocks, morningBlock(display, activity, windows[0], cfg, veg))
		}

		plan.Blocks = append(plan.Blocks, afternoonBlock(display, activity, windows[1], cfg, veg))

		if day == summary.Days && summary.Days > 1 {
			plan.Blocks = append(plan.Blocks, departureBlock(summary, windows[2], veg))
		} else {
			plan.Blocks = append(plan.Blocks, eveningBlock(display, windows[2], cfg, veg))
		}

		days = append(days, plan)
	}

	return trip.Itinerary{
		Destination: summary.Destination,
		Days:        summary.Days,
		OverallStyle: trip.OverallStyle{
			Pace:   cfg.Constraints.Pace,
			Budget: cfg.Constraints.Budget,
		},
		DayPlans: days,
	}
}

func daySummary(day int, summary trip.TripSummary, display string, c trip.Constraints) string {
	if day == 1 {
		return fmt.Sprintf("Arrive in %s by %s and ease into the trip with %s.",
			summary.Destination, summary.TravelMode, strings.ToLower(display))
	}
	return fmt.Sprintf("A %s day built around %s, with up to %d stops.",
		c.Pace, strings.ToLower(display), c.PlacesPerDay)
}

func arrivalBlock(summary trip.TripSummary, window string) trip.Block {
	mode := trip.TravelMode(summary.TravelMode)
	travel := geo.FormatHours(geo.TravelHours(summary.DistanceKm, mode))
	return trip.Block{
		Period:       trip.PeriodMorning,
		TimeWindow:   window,
		Title:        fmt.Sprintf("Arrival in %s", summary.Destination),
		ActivityType: "sightseeing",
		Description: fmt.Sprintf("Travel from %s to %s by %s (around %s). Check in and get oriented in the neighborhood.",
			summary.Source, summary.Destination, summary.TravelMode, travel),
		LogisticsHint: fmt.Sprintf("Book %s tickets in advance for the %dkm leg.", summary.TravelMode, summary.DistanceKm),
		Meal:          trip.NoMeal(),
	}
}

func departureBlock(summary trip.TripSummary, window string, veg bool) trip.Block {
	return trip.Block{
		Period:       trip.PeriodEvening,
		TimeWindow:   window,
		Title:        fmt.Sprintf("Farewell dinner and departure from %s", summary.Destination),
		ActivityType: "food",
		Description: fmt.Sprintf("A last meal of regional specialties before the %s back to %s.",
			summary.TravelMode, summary.Source),
		LogisticsHint: "Keep luggage packed and confirm return tickets earlier in the day.",
		Meal: trip.Meal{
			MealType:    "dinner",
			CuisineType: "regional",
			DiningStyle: "restaurant",
			VegFriendly: veg,
		},
	}
}

func morningBlock(display, activity, window string, cfg trip.Configuration, veg bool) trip.Block {
	b := trip.Block{
		Period:       trip.PeriodMorning,
		TimeWindow:   window,
		Title:        fmt.Sprintf("%s: morning circuit", display),
		ActivityType: activity,
		Description: fmt.Sprintf("Start with the headline %s options while crowds are thin. Style: %s.",
			strings.ToLower(display), cfg.Constraints.ExperienceStyle),
		Meal: trip.Meal{
			MealType:    "breakfast",
			CuisineType: "local",
			DiningStyle: "cafe",
			VegFriendly: veg,
		},
	}
	if cfg.OptionalConstraints.PhotographyFocus {
		b.PhotographyNote = "Soft morning light; bring a wide-angle lens."
	}
	return b
}

func afternoonBlock(display, activity, window string, cfg trip.Configuration, veg bool) trip.Block {
	b := trip.Block{
		Period:       trip.PeriodAfternoon,
		TimeWindow:   window,
		Title:        fmt.Sprintf("Deeper into %s", strings.ToLower(display)),
		ActivityType: activity,
		Description: fmt.Sprintf("Continue at a %s pace with a sit-down lunch midway.",
			cfg.Constraints.Pace),
		Meal: trip.Meal{
			MealType:    "lunch",
			CuisineType: "local",
			DiningStyle: "restaurant",
			VegFriendly: veg,
		},
	}
	if cfg.OptionalConstraints.PreferLessWalking {
		b.LogisticsHint = "Cluster nearby stops and use local transport between them."
	}
	if cfg.OptionalConstraints.FamilyFriendly {
		b.Description += " Picks here are suitable for all ages."
	}
	return b
}

func eveningBlock(display, window string, cfg trip.Configuration, veg bool) trip.Block {
	b := trip.Block{
		Period:       trip.PeriodEvening,
		TimeWindow:   window,
		Title:        "Evening wind-down and dinner",
		ActivityType: "relaxation",
		Description: fmt.Sprintf("Unwind after the %s themed day; comfort level: %s.",
			strings.ToLower(display), cfg.Constraints.ComfortLevel),
		Meal: trip.Meal{
			MealType:    "dinner",
			CuisineType: "local",
			DiningStyle: "restaurant",
			VegFriendly: veg,
		},
	}
	if cfg.OptionalConstraints.PhotographyFocus {
		b.PhotographyNote = "Golden hour views before dinner."
	}
	return b
}
