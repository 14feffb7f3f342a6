package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/server"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

func newClientFor(url string) *Client {
	return New(config.ClientConfig{BaseURL: url, TimeoutSeconds: 5}, nil)
}

// newServiceClient runs the real decision service behind httptest.
func newServiceClient(t *testing.T) *Client {
	t.Helper()
	srv := server.New(config.ServerConfig{SearchCacheTTLSeconds: 60, MaxSearchResults: 7}, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return newClientFor(ts.URL)
}

func TestSearchLocations(t *testing.T) {
	c := newServiceClient(t)

	cities, err := c.SearchLocations(context.Background(), "mum")
	if err != nil {
		t.Fatalf("SearchLocations: %v", err)
	}
	if len(cities) == 0 || cities[0].Name != "Mumbai" {
		t.Errorf("results = %+v, want Mumbai first", cities)
	}

	// Short queries are an empty list, not an error.
	cities, err = c.SearchLocations(context.Background(), "m")
	if err != nil {
		t.Fatalf("short query: %v", err)
	}
	if len(cities) != 0 {
		t.Errorf("short query returned %d cities", len(cities))
	}
}

func TestValidateRoute(t *testing.T) {
	c := newServiceClient(t)

	res, err := c.ValidateRoute(context.Background(), FeasibilityRequest{
		SourceCity:      "Mumbai",
		DestinationCity: "Goa",
		Days:            3,
	})
	if err != nil {
		t.Fatalf("ValidateRoute: %v", err)
	}
	if res.Feasible {
		t.Error("3-day Mumbai-Goa reported feasible")
	}
	if res.MinimumDays != 4 {
		t.Errorf("minimum_days = %d, want 4", res.MinimumDays)
	}
}

func TestValidateRouteUnknownCity(t *testing.T) {
	c := newServiceClient(t)

	_, err := c.ValidateRoute(context.Background(), FeasibilityRequest{
		SourceCity:      "Atlantis",
		DestinationCity: "Goa",
		Days:            3,
	})
	if !errors.IsCollaboratorError(err) {
		t.Fatalf("err = %v, want CollaboratorError", err)
	}
	var collab *errors.CollaboratorError
	if !errors.As(err, &collab) {
		t.Fatal("not a *CollaboratorError")
	}
	if collab.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", collab.Status)
	}
	if !strings.Contains(collab.Detail, "Atlantis") {
		t.Errorf("detail = %q, want upstream message verbatim", collab.Detail)
	}
}

func TestTravelModes(t *testing.T) {
	c := newServiceClient(t)

	res, err := c.TravelModes(context.Background(), ModesRequest{
		DistanceKm:    462,
		Days:          4,
		PreferredMode: trip.ModeTrain,
	})
	if err != nil {
		t.Fatalf("TravelModes: %v", err)
	}
	if !res.PreferredModeValid {
		t.Errorf("train invalid for 462km/4d: %q", res.PreferredModeReason)
	}
}

func TestFullConfigurationFlow(t *testing.T) {
	c := newServiceClient(t)
	ctx := context.Background()

	interests, err := c.SuggestInterests(ctx, InterestsRequest{
		Source: "Mumbai", Destination: "Goa", TravelMode: "train", Days: 4,
	})
	if err != nil {
		t.Fatalf("SuggestInterests: %v", err)
	}
	if len(interests) == 0 {
		t.Fatal("no interests suggested")
	}

	cfg, err := c.FinalizeConfig(ctx, ConfigRequest{
		Source:            Location{Name: "Mumbai"},
		Destination:       Location{Name: "Goa"},
		DistanceKm:        462,
		TravelMode:        "train",
		Days:              4,
		Pace:              trip.PaceBalanced,
		Budget:            trip.BudgetPremium,
		SelectedInterests: interests[:2],
		AIModel:           trip.ModelStandard,
	})
	if err != nil {
		t.Fatalf("FinalizeConfig: %v", err)
	}
	if cfg.TripSummary.Destination != "Goa" {
		t.Errorf("configuration = %+v", cfg.TripSummary)
	}

	it, err := c.GenerateItinerary(ctx, cfg)
	if err != nil {
		t.Fatalf("GenerateItinerary: %v", err)
	}
	if it.Days != 4 || len(it.DayPlans) != 4 {
		t.Errorf("itinerary days = %d, plans = %d", it.Days, len(it.DayPlans))
	}
}

func TestTransportErrorWhenUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing listening anymore

	c := newClientFor(url)
	_, err := c.SearchLocations(context.Background(), "mum")
	if !errors.IsTransportError(err) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "unreachable") {
		t.Errorf("user message = %q, want unreachable hint", msg)
	}
}

func TestCollaboratorDetailVerbatim(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail": "rate limit exceeded"}`))
	}))
	defer ts.Close()

	c := newClientFor(ts.URL)
	_, err := c.GenerateItinerary(context.Background(), trip.Configuration{})
	if !errors.IsCollaboratorError(err) {
		t.Fatalf("err = %v, want CollaboratorError", err)
	}
	// The upstream message surfaces word for word, no rephrasing.
	if msg := errors.UserMessage(err); !strings.Contains(msg, "rate limit exceeded") {
		t.Errorf("user message = %q, want verbatim detail", msg)
	}
}

func TestMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feasible": "not-a-bool"`))
	}))
	defer ts.Close()

	c := newClientFor(ts.URL)
	_, err := c.ValidateRoute(context.Background(), FeasibilityRequest{
		SourceCity: "Mumbai", DestinationCity: "Goa", Days: 3,
	})
	if !errors.IsCollaboratorError(err) {
		t.Fatalf("err = %v, want CollaboratorError", err)
	}
	if !errors.Is(err, errors.ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse in chain", err)
	}
}

func TestIncompleteResponseFailsClosed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feasible": true, "distance_km": 0, "minimum_days": 0}`))
	}))
	defer ts.Close()

	c := newClientFor(ts.URL)
	_, err := c.ValidateRoute(context.Background(), FeasibilityRequest{
		SourceCity: "Mumbai", DestinationCity: "Goa", Days: 3,
	})
	if !errors.Is(err, errors.ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse for incomplete payload", err)
	}
}

func TestContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	c := newClientFor(ts.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.SearchLocations(ctx, "mum")
	if !errors.IsTransportError(err) {
		t.Fatalf("err = %v, want TransportError on canceled context", err)
	}
}
