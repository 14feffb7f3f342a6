package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iron-Ham/tripflow/internal/trip"
)

// handleItineraryGenerate produces the trip plan for a finalized
// configuration. The request body is the configuration exactly as the
// finalize endpoint returned it.
func (s *Server) handleItineraryGenerate(c *gin.Context) {
	var cfg trip.Configuration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	summary := cfg.TripSummary
	if summary.Destination == "" || summary.Source == "" {
		abortDetail(c, http.StatusUnprocessableEntity, "trip_summary.source and trip_summary.destination are required")
		return
	}
	if summary.Days < 1 || summary.Days > 30 {
		abortDetail(c, http.StatusUnprocessableEntity, "trip_summary.days must be between 1 and 30")
		return
	}
	if len(cfg.Interests) == 0 {
		abortDetail(c, http.StatusUnprocessableEntity, "at least one interest is required")
		return
	}
	if !trip.TravelMode(summary.TravelMode).Valid() {
		abortDetail(c, http.StatusUnprocessableEntity, "unknown travel mode '"+summary.TravelMode+"'")
		return
	}

	c.JSON(http.StatusOK, GenerateItinerary(cfg))
}
