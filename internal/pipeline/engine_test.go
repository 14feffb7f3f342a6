package pipeline

import (
	"testing"

	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

var (
	testMumbai = trip.City{Name: "Mumbai", State: "Maharashtra", Lat: 19.0760, Lon: 72.8777, Tier: 1}
	testGoa    = trip.City{Name: "Goa", State: "Goa", Lat: 15.2993, Lon: 74.1240, Tier: 2}
	testDelhi  = trip.City{Name: "Delhi", State: "Delhi", Lat: 28.7041, Lon: 77.1025, Tier: 1}
)

func newTestEngine(days int) *Engine {
	return New(Params{Days: days}, nil)
}

// selectRoute commits both endpoints and resolves the selection stage.
func selectRoute(t *testing.T, e *Engine, src, dst trip.City) {
	t.Helper()
	e.SetSource(trip.NewSelection(src))
	e.SetDestination(trip.NewSelection(dst))
	if d := e.EnsureFresh(StageSelection); d != nil {
		t.Fatalf("selection stage must resolve locally, got dispatch %+v", d)
	}
}

// resolveFeasible runs the feasibility stage to a Ready feasible verdict.
func resolveFeasible(t *testing.T, e *Engine, distanceKm int) {
	t.Helper()
	d := e.EnsureFresh(StageFeasibility)
	if d == nil {
		t.Fatal("expected feasibility dispatch")
	}
	ok := e.Resolve(StageFeasibility, d.Fingerprint, trip.FeasibilityResult{
		Feasible:   true,
		DistanceKm: distanceKm,
	}, nil)
	if !ok {
		t.Fatal("feasibility resolution discarded unexpectedly")
	}
}

func TestSelectionStageResolvesLocally(t *testing.T) {
	e := newTestEngine(3)
	selectRoute(t, e, testMumbai, testGoa)

	rec := e.StageRecord(StageSelection)
	if rec.Status != StatusReady {
		t.Fatalf("status = %s, want ready", rec.Status)
	}
	route, ok := e.Route()
	if !ok {
		t.Fatal("Route() not available")
	}
	if route.Source.Key() != testMumbai.Key() || route.Destination.Key() != testGoa.Key() {
		t.Errorf("route = %s -> %s", route.Source.Key(), route.Destination.Key())
	}
}

func TestSelectionSameEndpointsFails(t *testing.T) {
	e := newTestEngine(3)
	e.SetSource(trip.NewSelection(testMumbai))
	e.SetDestination(trip.NewSelection(testMumbai))
	e.EnsureFresh(StageSelection)

	rec := e.StageRecord(StageSelection)
	if rec.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", rec.Status)
	}
	if !errors.IsInputError(rec.Err) {
		t.Errorf("err = %v, want InputError", rec.Err)
	}
	if !errors.Is(rec.Err, errors.ErrSameEndpoints) {
		t.Errorf("err = %v, want ErrSameEndpoints in chain", rec.Err)
	}

	if err := e.ValidateSelection(); err == nil {
		t.Error("ValidateSelection() = nil, want error")
	}
}

func TestSelectionClearCascades(t *testing.T) {
	e := newTestEngine(3)
	selectRoute(t, e, testMumbai, testGoa)
	resolveFeasible(t, e, 462)

	// Dropping an endpoint must idle everything.
	e.SetSource(trip.Selection{})
	for _, stage := range Stages() {
		if got := e.StageRecord(stage).Status; got != StatusIdle {
			t.Errorf("stage %s status = %s, want idle", stage, got)
		}
	}
}

func TestEnsureFreshIdempotent(t *testing.T) {
	e := newTestEngine(3)
	selectRoute(t, e, testMumbai, testGoa)

	d1 := e.EnsureFresh(StageFeasibility)
	if d1 == nil {
		t.Fatal("expected dispatch")
	}
	// Same inputs while Pending: no duplicate dispatch.
	if d2 := e.EnsureFresh(StageFeasibility); d2 != nil {
		t.Fatalf("second EnsureFresh while pending dispatched %+v", d2)
	}
	e.Resolve(StageFeasibility, d1.Fingerprint, trip.FeasibilityResult{Feasible: true, DistanceKm: 462}, nil)
	// Same inputs while Ready: nothing to do.
	if d3 := e.EnsureFresh(StageFeasibility); d3 != nil {
		t.Fatalf("EnsureFresh on ready stage dispatched %+v", d3)
	}
}

func TestStaleResolutionDiscarded(t *testing.T) {
	e := newTestEngine(3)
	selectRoute(t, e, testMumbai, testGoa)

	d := e.EnsureFresh(StageFeasibility)
	if d == nil {
		t.Fatal("expected dispatch")
	}

	// The user changes days while the request is in flight.
	e.SetDays(5)
	if got := e.StageRecord(StageFeasibility).Status; got != StatusIdle {
		t.Fatalf("status after edit = %s, want idle", got)
	}

	// The old response arrives: it must be dropped without a trace.
	committed := e.Resolve(StageFeasibility, d.Fingerprint, trip.FeasibilityResult{Feasible: true, DistanceKm: 462}, nil)
	if committed {
		t.Fatal("stale resolution was committed")
	}
	if _, ok := e.Feasibility(); ok {
		t.Fatal("stale output readable through accessor")
	}

	// A fresh dispatch carries the new day count.
	d2 := e.EnsureFresh(StageFeasibility)
	if d2 == nil {
		t.Fatal("expected fresh dispatch")
	}
	if d2.Fingerprint == d.Fingerprint {
		t.Error("fingerprint unchanged after day edit")
	}
	if in := d2.Input.(FeasibilityInput); in.Days != 5 {
		t.Errorf("dispatched days = %d, want 5", in.Days)
	}
}

func TestInfeasibleRouteBlocksModesAndMinimumDaysRemediation(t *testing.T) {
	e := newTestEngine(3)
	selectRoute(t, e, testMumbai, testGoa)

	d := e.EnsureFresh(StageFeasibility)
	e.Resolve(StageFeasibility, d.Fingerprint, trip.FeasibilityResult{
		Feasible:    false,
		DistanceKm:  462,
		MinimumDays: 4,
		Reason:      "Distance too long for selected trip duration. Recommended minimum is 4 days for a 462km journey.",
	}, nil)

	// Infeasible verdict is Ready, but the gate holds modes at Idle.
	if got := e.StageRecord(StageFeasibility).Status; got != StatusReady {
		t.Fatalf("feasibility status = %s, want ready", got)
	}
	if d := e.EnsureFresh(StageModes); d != nil {
		t.Fatalf("modes dispatched behind infeasible verdict: %+v", d)
	}
	if got := e.Phase(); got != PhaseAwaitingValidation {
		t.Errorf("phase = %s, want awaiting_validation", got)
	}

	// Remediation: adopt the suggested minimum and re-validate.
	if !e.UseMinimumDays() {
		t.Fatal("UseMinimumDays() = false")
	}
	if got := e.Params().Days; got != 4 {
		t.Fatalf("days = %d, want 4", got)
	}
	d2 := e.EnsureFresh(StageFeasibility)
	if d2 == nil {
		t.Fatal("expected re-validation dispatch")
	}
	e.Resolve(StageFeasibility, d2.Fingerprint, trip.FeasibilityResult{Feasible: true, DistanceKm: 462}, nil)

	if d := e.EnsureFresh(StageModes); d == nil {
		t.Fatal("modes should dispatch once the route is feasible")
	}
}

func TestDayEditInvalidatesEverythingDownstream(t *testing.T) {
	e := runToItinerary(t)

	e.SetDays(6)

	if got := e.StageRecord(StageSelection).Status; got != StatusReady {
		t.Errorf("selection status = %s, want ready (days do not feed it)", got)
	}
	for _, stage := range []Stage{StageFeasibility, StageModes, StageConfig, StageItinerary} {
		if got := e.StageRecord(stage).Status; got != StatusIdle {
			t.Errorf("stage %s status = %s, want idle", stage, got)
		}
	}
	if got := e.Phase(); got != PhaseAwaitingValidation {
		t.Errorf("phase = %s, want awaiting_validation", got)
	}
}

func TestPreferredModeEditInvalidatesModesOnward(t *testing.T) {
	e := runToItinerary(t)

	e.SetPreferredMode(trip.ModeFlight)

	if got := e.StageRecord(StageFeasibility).Status; got != StatusReady {
		t.Errorf("feasibility status = %s, want ready", got)
	}
	for _, stage := range []Stage{StageModes, StageConfig, StageItinerary} {
		if got := e.StageRecord(stage).Status; got != StatusIdle {
			t.Errorf("stage %s status = %s, want idle", stage, got)
		}
	}
}

func TestInterestEditInvalidatesConfigOnward(t *testing.T) {
	e := runToItinerary(t)

	e.ToggleInterest("food")

	if got := e.StageRecord(StageModes).Status; got != StatusReady {
		t.Errorf("modes status = %s, want ready", got)
	}
	if got := e.StageRecord(StageConfig).Status; got != StatusIdle {
		t.Errorf("config status = %s, want idle", got)
	}
	if got := e.StageRecord(StageItinerary).Status; got != StatusIdle {
		t.Errorf("itinerary status = %s, want idle", got)
	}
}

func TestNoInterestsBlocksConfig(t *testing.T) {
	e := newTestEngine(4)
	selectRoute(t, e, testMumbai, testGoa)
	resolveFeasible(t, e, 462)
	e.SetPreferredMode(trip.ModeTrain)
	dm := e.EnsureFresh(StageModes)
	e.Resolve(StageModes, dm.Fingerprint, trip.ModeRecommendation{
		DistanceKm:         462,
		RecommendedModes:   []trip.TravelMode{trip.ModeTrain, trip.ModeBus},
		PreferredModeValid: true,
	}, nil)

	if err := e.ValidateConfigInput(); !errors.Is(err, errors.ErrNoInterests) {
		t.Errorf("ValidateConfigInput() = %v, want ErrNoInterests", err)
	}
	if d := e.EnsureFresh(StageConfig); d != nil {
		t.Fatalf("config dispatched with zero interests: %+v", d)
	}
	if got := e.StageRecord(StageConfig).Status; got != StatusIdle {
		t.Errorf("config status = %s, want idle", got)
	}
}

func TestFailedStageRetries(t *testing.T) {
	e := newTestEngine(3)
	selectRoute(t, e, testMumbai, testGoa)

	d := e.EnsureFresh(StageFeasibility)
	e.Resolve(StageFeasibility, d.Fingerprint, nil, errors.NewTransportError("route-validation", errors.ErrServiceUnreachable))

	rec := e.StageRecord(StageFeasibility)
	if rec.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", rec.Status)
	}
	if !errors.IsTransportError(rec.Err) {
		t.Errorf("err = %v, want TransportError", rec.Err)
	}

	// Retry re-dispatches under the same fingerprint.
	d2 := e.Retry(StageFeasibility)
	if d2 == nil {
		t.Fatal("Retry() produced no dispatch")
	}
	if d2.Fingerprint != d.Fingerprint {
		t.Errorf("retry fingerprint %q != original %q", d2.Fingerprint, d.Fingerprint)
	}
	e.Resolve(StageFeasibility, d2.Fingerprint, trip.FeasibilityResult{Feasible: true, DistanceKm: 462}, nil)
	if got := e.StageRecord(StageFeasibility).Status; got != StatusReady {
		t.Errorf("status after retry = %s, want ready", got)
	}
}

func TestRegenerateReplacesItineraryOnly(t *testing.T) {
	e := runToItinerary(t)
	first, ok := e.Itinerary()
	if !ok {
		t.Fatal("itinerary not ready")
	}

	d := e.Regenerate()
	if d == nil {
		t.Fatal("Regenerate() produced no dispatch")
	}
	if got := e.Phase(); got != PhaseGenerating {
		t.Errorf("phase = %s, want generating", got)
	}
	if got := e.StageRecord(StageConfig).Status; got != StatusReady {
		t.Errorf("config status = %s, want ready (regenerate must not touch it)", got)
	}

	replacement := trip.Itinerary{
		Destination:  first.Destination,
		Days:         first.Days,
		OverallStyle: trip.OverallStyle{Pace: "fast", Budget: "premium"},
	}
	e.Resolve(StageItinerary, d.Fingerprint, replacement, nil)

	got, _ := e.Itinerary()
	if got.OverallStyle.Pace != "fast" {
		t.Errorf("itinerary not replaced: pace = %q", got.OverallStyle.Pace)
	}
}

func TestRegenerateFingerprintsDiffer(t *testing.T) {
	e := runToItinerary(t)
	first := e.StageRecord(StageItinerary).Fingerprint

	d := e.Regenerate()
	if d == nil {
		t.Fatal("Regenerate() produced no dispatch")
	}
	if d.Fingerprint == first {
		t.Error("regeneration fingerprint identical to previous run")
	}
}

func TestPhaseProgression(t *testing.T) {
	e := newTestEngine(4)
	if got := e.Phase(); got != PhaseAwaitingSelection {
		t.Fatalf("phase = %s, want awaiting_selection", got)
	}

	selectRoute(t, e, testDelhi, testGoa)
	if got := e.Phase(); got != PhaseAwaitingValidation {
		t.Fatalf("phase = %s, want awaiting_validation", got)
	}

	resolveFeasible(t, e, 1595)
	if got := e.Phase(); got != PhaseAwaitingModeChoice {
		t.Fatalf("phase = %s, want awaiting_mode_choice", got)
	}

	e.SetPreferredMode(trip.ModeFlight)
	if got := e.Phase(); got != PhaseAwaitingConfiguration {
		t.Fatalf("phase = %s, want awaiting_configuration", got)
	}
}

func TestParamsReturnsCopy(t *testing.T) {
	e := newTestEngine(3)
	e.ToggleInterest("food")
	p := e.Params()
	p.Interests[0] = "mutated"
	if e.Params().Interests[0] != "food" {
		t.Error("Params() exposed internal interests slice")
	}
}

func TestToggleInterestPreservesOrder(t *testing.T) {
	e := newTestEngine(3)
	e.ToggleInterest("food")
	e.ToggleInterest("history")
	e.ToggleInterest("nature")
	e.ToggleInterest("history") // remove

	got := e.Params().Interests
	want := []string{"food", "nature"}
	if len(got) != len(want) {
		t.Fatalf("interests = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("interests = %v, want %v", got, want)
		}
	}
}

// runToItinerary drives the engine through every stage to a Ready itinerary.
func runToItinerary(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(4)
	selectRoute(t, e, testMumbai, testGoa)
	resolveFeasible(t, e, 462)

	e.SetPreferredMode(trip.ModeTrain)
	dm := e.EnsureFresh(StageModes)
	if dm == nil {
		t.Fatal("expected modes dispatch")
	}
	e.Resolve(StageModes, dm.Fingerprint, trip.ModeRecommendation{
		DistanceKm:         462,
		RecommendedModes:   []trip.TravelMode{trip.ModeTrain, trip.ModeFlight},
		PreferredModeValid: true,
	}, nil)

	e.ToggleInterest("food")
	e.ToggleInterest("history")
	dc := e.EnsureFresh(StageConfig)
	if dc == nil {
		t.Fatal("expected config dispatch")
	}
	cfg := trip.Configuration{
		TripSummary: trip.TripSummary{
			Source:      testMumbai.Name,
			Destination: testGoa.Name,
			DistanceKm:  462,
			TravelMode:  string(trip.ModeTrain),
			Days:        4,
		},
		Constraints: trip.Constraints{Pace: "balanced", PlacesPerDay: 3, StartTime: "moderate"},
		Interests:   []string{"food", "history"},
		AIModel:     trip.ModelStandard,
	}
	e.Resolve(StageConfig, dc.Fingerprint, cfg, nil)

	di := e.EnsureFresh(StageItinerary)
	if di == nil {
		t.Fatal("expected itinerary dispatch")
	}
	e.Resolve(StageItinerary, di.Fingerprint, trip.Itinerary{
		Destination:  testGoa.Name,
		Days:         4,
		OverallStyle: trip.OverallStyle{Pace: "balanced", Budget: "premium"},
	}, nil)

	if got := e.Phase(); got != PhaseDone {
		t.Fatalf("phase = %s, want done", got)
	}
	return e
}
