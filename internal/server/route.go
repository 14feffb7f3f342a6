package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iron-Ham/tripflow/internal/catalog"
	"github.com/Iron-Ham/tripflow/internal/geo"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// routeValidateRequest accepts either catalog city names or raw coordinates,
// never a mix.
type routeValidateRequest struct {
	SourceCity      string            `json:"source_city"`
	DestinationCity string            `json:"destination_city"`
	Source          *trip.Coordinates `json:"source"`
	Destination     *trip.Coordinates `json:"destination"`
	Days            int               `json:"days"`
}

// handleRouteValidate runs the deterministic feasibility check: route
// distance against requested duration.
func (s *Server) handleRouteValidate(c *gin.Context) {
	var req routeValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Days < 1 || req.Days > 30 {
		abortDetail(c, http.StatusUnprocessableEntity, "days must be between 1 and 30")
		return
	}

	var (
		srcLat, srcLon, dstLat, dstLon float64
		srcName, dstName               string
	)
	switch {
	case req.SourceCity != "" && req.DestinationCity != "":
		src, ok := catalog.ByName(req.SourceCity)
		if !ok {
			abortDetail(c, http.StatusBadRequest,
				"Source city '"+req.SourceCity+"' not found in database. Please use /api/locations/search to find valid cities.")
			return
		}
		dst, ok := catalog.ByName(req.DestinationCity)
		if !ok {
			abortDetail(c, http.StatusBadRequest,
				"Destination city '"+req.DestinationCity+"' not found in database. Please use /api/locations/search to find valid cities.")
			return
		}
		srcLat, srcLon, dstLat, dstLon = src.Lat, src.Lon, dst.Lat, dst.Lon
		srcName, dstName = src.Name, dst.Name

	case req.Source != nil && req.Destination != nil:
		srcLat, srcLon = req.Source.Lat, req.Source.Lon
		dstLat, dstLon = req.Destination.Lat, req.Destination.Lon

	default:
		abortDetail(c, http.StatusBadRequest,
			"Provide either (source_city + destination_city) OR (source + destination coordinates). Do not mix both formats.")
		return
	}

	distanceKm := geo.RouteKm(srcLat, srcLon, dstLat, dstLon)
	feasible, minimumDays, reason := geo.CheckFeasibility(distanceKm, req.Days)

	c.JSON(http.StatusOK, trip.FeasibilityResult{
		Feasible:        feasible,
		DistanceKm:      distanceKm,
		MinimumDays:     minimumDays,
		SourceCity:      srcName,
		DestinationCity: dstName,
		Reason:          reason,
	})
}
