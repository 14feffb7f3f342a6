package wizard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tripflow/internal/client"
	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/pipeline"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// requestTimeout bounds every stage request issued from the wizard.
const requestTimeout = 30 * time.Second

// debounceCmd emits a debounceMsg after the configured typing pause.
func (m *Model) debounceCmd(f field, seq int) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{field: f, seq: seq}
	})
}

// searchCmd runs a city search for the given selector query.
func (m *Model) searchCmd(f field, seq int, query string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		cities, err := c.SearchLocations(ctx, query)
		return searchResultMsg{field: f, seq: seq, cities: cities, err: err}
	}
}

// stageCmd executes a pipeline dispatch against the matching stage client and
// reports the outcome with the dispatch fingerprint.
func (m *Model) stageCmd(d pipeline.Dispatch) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		output, err := runStage(ctx, c, d)
		return stageResultMsg{stage: d.Stage, fingerprint: d.Fingerprint, output: output, err: err}
	}
}

// runStage maps a dispatch onto the stage client call it describes.
func runStage(ctx context.Context, c *client.Client, d pipeline.Dispatch) (any, error) {
	switch in := d.Input.(type) {
	case pipeline.FeasibilityInput:
		src := in.Source.Coords()
		dst := in.Destination.Coords()
		return c.ValidateRoute(ctx, client.FeasibilityRequest{
			Source:      &src,
			Destination: &dst,
			Days:        in.Days,
		})

	case pipeline.ModesInput:
		return c.TravelModes(ctx, client.ModesRequest{
			DistanceKm:    in.DistanceKm,
			Days:          in.Days,
			PreferredMode: in.Preferred,
		})

	case pipeline.ConfigInput:
		return c.FinalizeConfig(ctx, client.ConfigRequest{
			Source:              client.Location{Name: in.Source.Name},
			Destination:         client.Location{Name: in.Destination.Name},
			DistanceKm:          in.DistanceKm,
			TravelMode:          string(in.Mode),
			Days:                in.Days,
			Pace:                in.Pace,
			Budget:              in.Budget,
			SelectedInterests:   in.Interests,
			OptionalConstraints: in.Constraints,
			AIModel:             in.Model,
		})

	case pipeline.ItineraryInput:
		return c.GenerateItinerary(ctx, in.Config)

	default:
		return nil, errors.ErrUnknownStage
	}
}

// interestsCmd fetches suggested interests for the current route.
func (m *Model) interestsCmd(route pipeline.Route, mode trip.TravelMode, days int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		labels, err := c.SuggestInterests(ctx, client.InterestsRequest{
			Source:      route.Source.Name,
			Destination: route.Destination.Name,
			TravelMode:  string(mode),
			Days:        days,
		})
		return interestsMsg{labels: labels, err: err}
	}
}

// saveCmd persists the confirmed trip state and configuration. Both values
// are captured on the event loop; the closure only does I/O.
func (m *Model) saveCmd() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	route, ok := m.engine.Route()
	if !ok {
		return nil
	}
	cfg, ok := m.engine.Configuration()
	if !ok {
		return nil
	}
	state := sessionState(route, cfg)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.SaveTripState(ctx, state); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{err: store.SaveConfiguration(ctx, cfg)}
	}
}
