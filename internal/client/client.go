// Package client implements the stage clients the wizard dispatches through.
// One method per decision-service endpoint; every method is context-aware,
// performs exactly one request with no retries or caching, and maps failures
// onto the shared error taxonomy:
//
//   - the service cannot be reached at all: TransportError
//   - the service answered non-2xx: CollaboratorError carrying the body's
//     detail message verbatim when present
//   - the service answered 2xx with an undecodable or incomplete payload:
//     CollaboratorError wrapping ErrMalformedResponse
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/logging"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// Client talks to the trip decision service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logging.Logger
}

// New builds a client from configuration. A nil logger is replaced with a
// no-op logger.
func New(cfg config.ClientConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger.WithComponent("client"),
	}
}

// ============================================================================
// Endpoints
// ============================================================================

// SearchLocations queries the city catalog. Queries shorter than the service
// minimum come back as an empty list, never an error.
func (c *Client) SearchLocations(ctx context.Context, query string) ([]trip.City, error) {
	const service = "location-search"
	path := "/api/locations/search?q=" + url.QueryEscape(query)

	var cities []trip.City
	if err := c.get(ctx, service, path, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// FeasibilityRequest is the route-validation request payload.
type FeasibilityRequest struct {
	SourceCity      string            `json:"source_city,omitempty"`
	DestinationCity string            `json:"destination_city,omitempty"`
	Source          *trip.Coordinates `json:"source,omitempty"`
	Destination     *trip.Coordinates `json:"destination,omitempty"`
	Days            int               `json:"days"`
}

// ValidateRoute asks whether the route fits the requested duration.
func (c *Client) ValidateRoute(ctx context.Context, req FeasibilityRequest) (trip.FeasibilityResult, error) {
	const service = "route-validation"

	var res trip.FeasibilityResult
	if err := c.post(ctx, service, "/api/route/validate", req, &res); err != nil {
		return trip.FeasibilityResult{}, err
	}
	if res.DistanceKm < 1 || res.MinimumDays < 1 {
		return trip.FeasibilityResult{}, errors.NewMalformedResponseError(service,
			fmt.Errorf("distance_km=%d minimum_days=%d", res.DistanceKm, res.MinimumDays))
	}
	return res, nil
}

// ModesRequest is the mode-recommendation request payload.
type ModesRequest struct {
	DistanceKm    int             `json:"distance_km"`
	Days          int             `json:"days"`
	PreferredMode trip.TravelMode `json:"preferred_mode,omitempty"`
}

// TravelModes fetches mode recommendations and, when a preference is set,
// its validation verdict.
func (c *Client) TravelModes(ctx context.Context, req ModesRequest) (trip.ModeRecommendation, error) {
	const service = "travel-modes"

	var res trip.ModeRecommendation
	if err := c.post(ctx, service, "/api/travel/modes", req, &res); err != nil {
		return trip.ModeRecommendation{}, err
	}
	if len(res.RecommendedModes) == 0 {
		return trip.ModeRecommendation{}, errors.NewMalformedResponseError(service,
			fmt.Errorf("empty recommended_modes"))
	}
	return res, nil
}

// InterestsRequest is the interest-suggestion request payload.
type InterestsRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	TravelMode  string `json:"travel_mode"`
	Days        int    `json:"days"`
}

// SuggestInterests fetches destination-aware interest suggestions.
func (c *Client) SuggestInterests(ctx context.Context, req InterestsRequest) ([]string, error) {
	const service = "interest-suggestion"

	var res struct {
		Interests   []string `json:"interests"`
		Destination string   `json:"destination"`
	}
	if err := c.post(ctx, service, "/api/interests/suggest", req, &res); err != nil {
		return nil, err
	}
	if len(res.Interests) == 0 {
		return nil, errors.NewMalformedResponseError(service, fmt.Errorf("empty interests"))
	}
	return res.Interests, nil
}

// ConfigRequest is the trip-configuration request payload.
type ConfigRequest struct {
	Source              Location                 `json:"source"`
	Destination         Location                 `json:"destination"`
	DistanceKm          int                      `json:"distance_km"`
	TravelMode          string                   `json:"travel_mode"`
	Days                int                      `json:"days"`
	Pace                trip.Pace                `json:"pace"`
	Budget              trip.Budget              `json:"budget"`
	SelectedInterests   []string                 `json:"selected_interests"`
	OptionalConstraints trip.OptionalConstraints `json:"optional_constraints"`
	AIModel             string                   `json:"ai_model"`
}

// Location is the name-only location shape the configuration endpoint takes.
type Location struct {
	Name string `json:"name"`
}

// FinalizeConfig turns user choices into a committed configuration.
func (c *Client) FinalizeConfig(ctx context.Context, req ConfigRequest) (trip.Configuration, error) {
	const service = "trip-configuration"

	var res trip.Configuration
	if err := c.post(ctx, service, "/api/trip/configure", req, &res); err != nil {
		return trip.Configuration{}, err
	}
	if res.TripSummary.Destination == "" || len(res.Interests) == 0 {
		return trip.Configuration{}, errors.NewMalformedResponseError(service,
			fmt.Errorf("incomplete configuration"))
	}
	return res, nil
}

// GenerateItinerary requests a trip plan for a committed configuration. The
// configuration is sent exactly as the finalize endpoint returned it.
func (c *Client) GenerateItinerary(ctx context.Context, cfg trip.Configuration) (trip.Itinerary, error) {
	const service = "itinerary-generation"

	var res trip.Itinerary
	if err := c.post(ctx, service, "/api/itinerary/generate", cfg, &res); err != nil {
		return trip.Itinerary{}, err
	}
	if res.Days < 1 || len(res.DayPlans) == 0 {
		return trip.Itinerary{}, errors.NewMalformedResponseError(service,
			fmt.Errorf("days=%d day_plans=%d", res.Days, len(res.DayPlans)))
	}
	return res, nil
}

// ============================================================================
// Transport
// ============================================================================

func (c *Client) get(ctx context.Context, service, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "build %s request", service)
	}
	return c.send(service, req, out)
}

func (c *Client) post(ctx context.Context, service, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "encode %s request", service)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return errors.Wrapf(err, "build %s request", service)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(service, req, out)
}

// send runs the request and maps the outcome onto the error taxonomy.
func (c *Client) send(service string, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "service", service, "error", err)
		return errors.NewTransportError(service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.NewTransportError(service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := extractDetail(body)
		c.logger.Warn("request rejected",
			"service", service,
			"status", resp.StatusCode,
			"detail", detail)
		return errors.NewCollaboratorError(service, detail, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("malformed response", "service", service, "error", err)
		return errors.NewMalformedResponseError(service, err)
	}
	return nil
}

// extractDetail pulls the service's detail message out of an error body.
// Falls back to the raw body, then to the bare status text.
func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" && len(trimmed) <= 200 && !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	return ""
}
