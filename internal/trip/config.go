package trip

// FeasibilityResult is the feasibility service's verdict on a route.
// Immutable once produced; a re-validation yields a new value.
type FeasibilityResult struct {
	Feasible        bool   `json:"feasible"`
	DistanceKm      int    `json:"distance_km"`
	MinimumDays     int    `json:"minimum_days"`
	SourceCity      string `json:"source_city,omitempty"`
	DestinationCity string `json:"destination_city,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// ModeRecommendation is the mode-recommendation service's answer for a given
// distance and duration.
type ModeRecommendation struct {
	DistanceKm          int               `json:"distance_km"`
	RecommendedModes    []TravelMode      `json:"recommended_modes"`
	EstimatedTimes      map[string]string `json:"estimated_times"`
	PreferredModeValid  bool              `json:"preferred_mode_valid"`
	PreferredModeReason string            `json:"preferred_mode_reason,omitempty"`
}

// Recommends reports whether the given mode is in the recommended list.
func (r ModeRecommendation) Recommends(mode TravelMode) bool {
	for _, m := range r.RecommendedModes {
		if m == mode {
			return true
		}
	}
	return false
}

// OptionalConstraints are per-trip preference flags. The zero value means no
// constraints.
type OptionalConstraints struct {
	AvoidEarlyMornings bool `json:"avoid_early_mornings"`
	PreferLessWalking  bool `json:"prefer_less_walking"`
	FamilyFriendly     bool `json:"family_friendly"`
	VegetarianFriendly bool `json:"vegetarian_friendly"`
	PhotographyFocus   bool `json:"photography_focus"`
}

// TripSummary is the read-only summary the finalize service assigns to a
// committed configuration.
type TripSummary struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	DistanceKm  int    `json:"distance_km"`
	TravelMode  string `json:"travel_mode"`
	Days        int    `json:"days"`
}

// Constraints are the concrete generation constraints the finalize service
// derives from pace and budget.
type Constraints struct {
	Pace            string `json:"pace"`
	PlacesPerDay    int    `json:"places_per_day"`
	StartTime       string `json:"start_time"`
	Budget          string `json:"budget"`
	ExperienceStyle string `json:"experience_style"`
	ComfortLevel    string `json:"comfort_level"`
}

// Configuration is the committed trip intent produced by the finalize
// service. Each finalize call produces a whole new Configuration; it is never
// patched in place. It is also the exact request payload of the itinerary
// service, so persisting and reloading it must reproduce identical bytes.
type Configuration struct {
	TripSummary         TripSummary         `json:"trip_summary"`
	Constraints         Constraints         `json:"constraints"`
	Interests           []string            `json:"interests"`
	OptionalConstraints OptionalConstraints `json:"optional_constraints"`
	AIModel             string              `json:"ai_model"`
}
