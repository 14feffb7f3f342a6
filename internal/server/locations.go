package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Iron-Ham/tripflow/internal/catalog"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// handleLocationSearch serves typeahead queries against the static city
// catalog. Queries under the minimum length return an empty list rather than
// an error so the wizard can fire freely while the user types. Results are
// cached per normalized query.
func (s *Server) handleLocationSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < catalog.MinQueryLength {
		c.JSON(http.StatusOK, []trip.City{})
		return
	}

	key := strings.ToLower(query)
	if cached, ok := s.searchCache.Get(key); ok {
		c.JSON(http.StatusOK, cached.([]trip.City))
		return
	}

	results := catalog.Search(query, s.cfg.MaxSearchResults)
	s.searchCache.SetDefault(key, results)
	c.JSON(http.StatusOK, results)
}

type locationValidateResponse struct {
	Valid      bool       `json:"valid"`
	City       *trip.City `json:"city,omitempty"`
	Message    string     `json:"message,omitempty"`
	Suggestion string     `json:"suggestion,omitempty"`
}

// handleLocationValidate reports whether a city name exists in the catalog.
func (s *Server) handleLocationValidate(c *gin.Context) {
	name := strings.TrimSpace(c.Query("city"))
	if name == "" {
		abortDetail(c, http.StatusBadRequest, "city query parameter is required")
		return
	}

	city, ok := catalog.ByName(name)
	if !ok {
		c.JSON(http.StatusOK, locationValidateResponse{
			Valid:      false,
			Message:    "City '" + name + "' not found in database",
			Suggestion: "Try searching for similar city names",
		})
		return
	}
	c.JSON(http.StatusOK, locationValidateResponse{Valid: true, City: &city})
}
