package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iron-Ham/tripflow/internal/catalog"
	"github.com/Iron-Ham/tripflow/internal/geo"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// travelModesRequest accepts a pre-computed distance or a city pair to derive
// it from.
type travelModesRequest struct {
	SourceCity      string `json:"source_city"`
	DestinationCity string `json:"destination_city"`
	DistanceKm      int    `json:"distance_km"`
	Days            int    `json:"days"`
	PreferredMode   string `json:"preferred_mode"`
}

// handleTravelModes recommends travel modes for a distance and, when a
// preferred mode is given, validates it against the recommendation list and
// the travel-time share of the trip.
func (s *Server) handleTravelModes(c *gin.Context) {
	var req travelModesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Days < 1 || req.Days > 30 {
		abortDetail(c, http.StatusUnprocessableEntity, "days must be between 1 and 30")
		return
	}

	distanceKm := req.DistanceKm
	if distanceKm == 0 && req.SourceCity != "" && req.DestinationCity != "" {
		src, ok := catalog.ByName(req.SourceCity)
		if !ok {
			abortDetail(c, http.StatusBadRequest, "Source city '"+req.SourceCity+"' not found in database.")
			return
		}
		dst, ok := catalog.ByName(req.DestinationCity)
		if !ok {
			abortDetail(c, http.StatusBadRequest, "Destination city '"+req.DestinationCity+"' not found in database.")
			return
		}
		distanceKm = geo.RouteKm(src.Lat, src.Lon, dst.Lat, dst.Lon)
	}
	if distanceKm < 1 || distanceKm > 5000 {
		abortDetail(c, http.StatusUnprocessableEntity, "distance_km must be between 1 and 5000")
		return
	}

	recommended := geo.RecommendedModes(distanceKm)

	preferredValid := true
	preferredReason := ""
	if req.PreferredMode != "" {
		mode := trip.TravelMode(req.PreferredMode)
		if !mode.Valid() {
			abortDetail(c, http.StatusUnprocessableEntity, "unknown travel mode '"+req.PreferredMode+"'")
			return
		}
		preferredValid, preferredReason = geo.ValidatePreferredMode(distanceKm, req.Days, mode, recommended)
	}

	c.JSON(http.StatusOK, trip.ModeRecommendation{
		DistanceKm:          distanceKm,
		RecommendedModes:    recommended,
		EstimatedTimes:      geo.EstimatedTimes(distanceKm),
		PreferredModeValid:  preferredValid,
		PreferredModeReason: preferredReason,
	})
}
