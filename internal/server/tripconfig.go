package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Iron-Ham/tripflow/internal/trip"
)

// maxInterests caps how many interests a configuration carries.
const maxInterests = 10

// fallbackInterests is the generic suggestion list used when no
// destination-specific set exists.
var fallbackInterests = []string{
	"local food",
	"culture",
	"sightseeing",
	"nature",
	"shopping",
	"photography",
	"relaxation",
	"local markets",
}

// destinationInterests holds curated, destination-aware suggestion sets,
// keyed by lowercase city name. Suggestions are deterministic: the same
// destination always yields the same list.
var destinationInterests = map[string][]string{
	"goa":        {"beaches", "seafood dining", "nightlife", "water sports", "heritage sites", "local markets", "photography", "nature"},
	"jaipur":     {"heritage sites", "forts & palaces", "local food", "handicrafts", "photography", "culture", "local markets", "architecture"},
	"agra":       {"heritage sites", "architecture", "photography", "local food", "history", "culture", "gardens", "local markets"},
	"rishikesh":  {"adventure", "river rafting", "yoga", "nature", "spirituality", "photography", "local food", "trekking"},
	"munnar":     {"tea plantations", "nature", "trekking", "photography", "wildlife", "local food", "relaxation", "viewpoints"},
	"varanasi":   {"spirituality", "heritage sites", "river ghats", "local food", "culture", "photography", "history", "local markets"},
	"udaipur":    {"lakes", "palaces", "heritage sites", "photography", "local food", "culture", "boat rides", "local markets"},
	"darjeeling": {"tea plantations", "mountain views", "toy train", "nature", "photography", "local food", "trekking", "monasteries"},
}

type interestSuggestRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	TravelMode  string `json:"travel_mode"`
	Days        int    `json:"days"`
}

type interestSuggestResponse struct {
	Interests   []string `json:"interests"`
	Destination string   `json:"destination"`
}

// handleInterestsSuggest returns a destination-aware interest list. Unknown
// destinations get the generic fallback set; this endpoint never fails on
// unknown cities because suggestions are advisory.
func (s *Server) handleInterestsSuggest(c *gin.Context) {
	var req interestSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		abortDetail(c, http.StatusUnprocessableEntity, "destination is required")
		return
	}

	interests, ok := destinationInterests[strings.ToLower(strings.TrimSpace(req.Destination))]
	if !ok {
		interests = fallbackInterests
	}
	c.JSON(http.StatusOK, interestSuggestResponse{
		Interests:   append([]string(nil), interests...),
		Destination: req.Destination,
	})
}

type locationInfo struct {
	Name string `json:"name"`
}

type tripConfigureRequest struct {
	Source              locationInfo             `json:"source"`
	Destination         locationInfo             `json:"destination"`
	DistanceKm          int                      `json:"distance_km"`
	TravelMode          string                   `json:"travel_mode"`
	Days                int                      `json:"days"`
	Pace                string                   `json:"pace"`
	Budget              string                   `json:"budget"`
	SelectedInterests   []string                 `json:"selected_interests"`
	OptionalConstraints trip.OptionalConstraints `json:"optional_constraints"`
	AIModel             string                   `json:"ai_model"`
}

// paceConstraints maps pace onto places-per-day and start-time expectations.
func paceConstraints(pace trip.Pace) (placesPerDay int, startTime string) {
	switch pace {
	case trip.PaceRelaxed:
		return 2, "late"
	case trip.PaceFast:
		return 4, "early"
	default:
		return 3, "moderate"
	}
}

// budgetConstraints maps budget tier onto experience style and comfort. The
// tier shapes the style of suggestions, never specific prices.
func budgetConstraints(budget trip.Budget) (experienceStyle, comfortLevel string) {
	switch budget {
	case trip.BudgetBasic:
		return "popular & free attractions", "basic"
	case trip.BudgetLuxury:
		return "curated & relaxed", "high"
	default:
		return "balanced", "comfortable"
	}
}

// handleTripConfigure converts user choices into the structured intent object
// consumed by the itinerary generator. Pure deterministic conversion; each
// call yields a whole new configuration.
func (s *Server) handleTripConfigure(c *gin.Context) {
	var req tripConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	pace := trip.Pace(req.Pace)
	if !pace.Valid() {
		abortDetail(c, http.StatusUnprocessableEntity, "unknown pace '"+req.Pace+"'")
		return
	}
	budget := trip.Budget(req.Budget)
	if !budget.Valid() {
		abortDetail(c, http.StatusUnprocessableEntity, "unknown budget '"+req.Budget+"'")
		return
	}
	mode := trip.TravelMode(req.TravelMode)
	if !mode.Valid() {
		abortDetail(c, http.StatusUnprocessableEntity, "unknown travel mode '"+req.TravelMode+"'")
		return
	}
	if req.Days < 1 || req.Days > 30 {
		abortDetail(c, http.StatusUnprocessableEntity, "days must be between 1 and 30")
		return
	}
	if req.DistanceKm < 1 || req.DistanceKm > 5000 {
		abortDetail(c, http.StatusUnprocessableEntity, "distance_km must be between 1 and 5000")
		return
	}
	if len(req.SelectedInterests) == 0 {
		abortDetail(c, http.StatusBadRequest,
			"At least one interest must be selected. Use /api/interests/suggest to get suggestions.")
		return
	}

	model := req.AIModel
	if model == "" {
		model = trip.ModelStandard
	}
	if !trip.ValidModel(model) {
		abortDetail(c, http.StatusUnprocessableEntity, "unknown model '"+model+"'")
		return
	}

	interests := req.SelectedInterests
	if len(interests) > maxInterests {
		interests = interests[:maxInterests]
	}

	placesPerDay, startTime := paceConstraints(pace)
	experienceStyle, comfortLevel := budgetConstraints(budget)

	c.JSON(http.StatusOK, trip.Configuration{
		TripSummary: trip.TripSummary{
			Source:      req.Source.Name,
			Destination: req.Destination.Name,
			DistanceKm:  req.DistanceKm,
			TravelMode:  string(mode),
			Days:        req.Days,
		},
		Constraints: trip.Constraints{
			Pace:            string(pace),
			PlacesPerDay:    placesPerDay,
			StartTime:       startTime,
			Budget:          string(budget),
			ExperienceStyle: experienceStyle,
			ComfortLevel:    comfortLevel,
		},
		Interests:           interests,
		OptionalConstraints: req.OptionalConstraints,
		AIModel:             model,
	})
}
