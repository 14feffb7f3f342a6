package pipeline

import (
	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/logging"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// Params are the user-adjustable inputs the stages consume. Edits go through
// the Engine setters so the affected stage is invalidated eagerly.
type Params struct {
	Days          int
	PreferredMode trip.TravelMode
	Pace          trip.Pace
	Budget        trip.Budget
	Interests     []string
	Constraints   trip.OptionalConstraints
	Model         string
}

// Engine owns the stage store and enforces the freshness protocol: compute
// the stage's fingerprint from current inputs, skip work when nothing
// changed, invalidate downstream on any change, and discard resolutions whose
// fingerprint no longer matches. It must be driven from a single goroutine.
type Engine struct {
	store

	src trip.Selection
	dst trip.Selection

	params     Params
	generation int

	logger *logging.Logger
}

// New returns an engine with the given starting parameters. A nil logger is
// replaced with a no-op logger.
func New(params Params, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if params.Pace == "" {
		params.Pace = trip.PaceBalanced
	}
	if params.Budget == "" {
		params.Budget = trip.BudgetPremium
	}
	if params.Model == "" {
		params.Model = trip.ModelStandard
	}
	return &Engine{params: params, logger: logger.WithComponent("pipeline")}
}

// Params returns a copy of the current parameters. The interests slice is
// cloned so callers cannot mutate committed order.
func (e *Engine) Params() Params {
	p := e.params
	p.Interests = append([]string(nil), e.params.Interests...)
	return p
}

// StageRecord returns a copy of the stage's record.
func (e *Engine) StageRecord(stage Stage) Record {
	return e.record(stage)
}

// ============================================================================
// Endpoint and parameter edits
// ============================================================================
//
// Every setter that feeds a stage's fingerprint calls touch for that stage:
// if the stored fingerprint no longer matches the input that would be derived
// now, the stage and everything downstream drop to Idle immediately. This
// keeps stale outputs from ever being readable, even before the next
// EnsureFresh.

// SetSource commits (or clears, with the zero value) the source selection.
func (e *Engine) SetSource(sel trip.Selection) {
	e.src = sel
	e.touch(StageSelection)
}

// SetDestination commits (or clears) the destination selection.
func (e *Engine) SetDestination(sel trip.Selection) {
	e.dst = sel
	e.touch(StageSelection)
}

// Source returns the committed source selection.
func (e *Engine) Source() trip.Selection { return e.src }

// Destination returns the committed destination selection.
func (e *Engine) Destination() trip.Selection { return e.dst }

// SetDays updates the day count, clamped to a sane range.
func (e *Engine) SetDays(days int) {
	if days < 1 {
		days = 1
	}
	if days > 30 {
		days = 30
	}
	e.params.Days = days
	e.touch(StageFeasibility)
}

// SetPreferredMode records the user's travel mode choice.
func (e *Engine) SetPreferredMode(mode trip.TravelMode) {
	e.params.PreferredMode = mode
	e.touch(StageModes)
}

// SetPace updates the trip pace.
func (e *Engine) SetPace(pace trip.Pace) {
	e.params.Pace = pace
	e.touch(StageConfig)
}

// SetBudget updates the budget tier.
func (e *Engine) SetBudget(budget trip.Budget) {
	e.params.Budget = budget
	e.touch(StageConfig)
}

// SetModel updates the generator model identifier.
func (e *Engine) SetModel(model string) {
	e.params.Model = model
	e.touch(StageConfig)
}

// SetConstraints replaces the optional constraint flags.
func (e *Engine) SetConstraints(c trip.OptionalConstraints) {
	e.params.Constraints = c
	e.touch(StageConfig)
}

// ToggleInterest adds the interest if absent, otherwise removes it.
// Insertion order of the remaining interests is preserved; the configuration
// payload depends on it.
func (e *Engine) ToggleInterest(label string) {
	for i, existing := range e.params.Interests {
		if existing == label {
			e.params.Interests = append(e.params.Interests[:i], e.params.Interests[i+1:]...)
			e.touch(StageConfig)
			return
		}
	}
	e.params.Interests = append(e.params.Interests, label)
	e.touch(StageConfig)
}

// HasInterest reports whether the interest is currently selected.
func (e *Engine) HasInterest(label string) bool {
	for _, existing := range e.params.Interests {
		if existing == label {
			return true
		}
	}
	return false
}

// touch drops the stage (and everything downstream) to Idle when its stored
// fingerprint no longer matches current inputs. A stage already Idle, or
// whose fingerprint still matches, is left alone so in-flight work for
// unchanged inputs survives.
func (e *Engine) touch(stage Stage) {
	rec := e.record(stage)
	if rec.Status == StatusIdle {
		e.invalidateAfter(stage)
		return
	}
	fp, ok := e.fingerprint(stage)
	if ok && fp == rec.Fingerprint {
		return
	}
	e.logger.Debug("stage invalidated",
		"stage", stage.String(),
		"old_fingerprint", rec.Fingerprint)
	e.reset(stage)
	e.invalidateAfter(stage)
}

// fingerprint computes the stage's current fingerprint without mutating
// anything. ok is false when the inputs to derive it are missing.
func (e *Engine) fingerprint(stage Stage) (string, bool) {
	if stage == StageSelection {
		if !e.src.Committed() || !e.dst.Committed() {
			return "", false
		}
		return routeFingerprint(e.src.City, e.dst.City), true
	}
	_, fp, ok := e.deriveInput(stage)
	return fp, ok
}

// ============================================================================
// Freshness protocol
// ============================================================================

// EnsureFresh brings the stage up to date with current inputs.
//
// If an upstream stage is not Ready, or a required user input is missing, the
// stage is forced to Idle and no dispatch is returned. If the stored
// fingerprint matches current inputs and the stage is Ready or Pending,
// nothing happens. Otherwise the stage transitions to Pending under the new
// fingerprint, everything downstream is invalidated, and the returned
// Dispatch describes the request the caller must run and report back through
// Resolve.
//
// The selection stage resolves locally and never yields a Dispatch: it
// commits Ready with a Route when both endpoints are committed and distinct,
// or Failed with an InputError when they collide.
//
// EnsureFresh never retries on its own; calling it again for a Failed stage
// is the retry, and must come from an explicit user action.
func (e *Engine) EnsureFresh(stage Stage) *Dispatch {
	if !e.upstreamReady(stage) {
		e.forceIdle(stage)
		return nil
	}

	if stage == StageSelection {
		e.resolveSelection()
		return nil
	}

	input, fp, ok := e.deriveInput(stage)
	if !ok {
		e.forceIdle(stage)
		return nil
	}

	rec := e.record(stage)
	if fp == rec.Fingerprint && (rec.Status == StatusReady || rec.Status == StatusPending) {
		return nil
	}

	e.set(stage, Record{Status: StatusPending, Fingerprint: fp})
	e.invalidateAfter(stage)
	e.logger.Debug("stage dispatched", "stage", stage.String(), "fingerprint", fp)
	return &Dispatch{Stage: stage, Fingerprint: fp, Input: input}
}

// Resolve commits the outcome of a dispatched request. The result is
// discarded as stale unless the stage is still Pending under the exact
// fingerprint it was dispatched with; a discard is a silent no-op apart from
// a debug log line. Returns whether the result was committed.
func (e *Engine) Resolve(stage Stage, fingerprint string, output any, err error) bool {
	rec := e.record(stage)
	if rec.Status != StatusPending || rec.Fingerprint != fingerprint {
		e.logger.Debug("stale result discarded",
			"stage", stage.String(),
			"fingerprint", fingerprint,
			"current_fingerprint", rec.Fingerprint,
			"current_status", rec.Status.String())
		return false
	}
	if err != nil {
		e.set(stage, Record{Status: StatusFailed, Fingerprint: fingerprint, Err: err})
		e.invalidateAfter(stage)
		e.logger.Warn("stage failed", "stage", stage.String(), "error", err)
		return true
	}
	e.set(stage, Record{Status: StatusReady, Fingerprint: fingerprint, Output: output})
	e.logger.Debug("stage ready", "stage", stage.String(), "fingerprint", fingerprint)
	return true
}

// Retry re-runs a Failed stage. It is EnsureFresh under a different name so
// call sites read as the user action they represent.
func (e *Engine) Retry(stage Stage) *Dispatch {
	return e.EnsureFresh(stage)
}

// Regenerate requests a fresh itinerary for the same committed configuration
// by bumping the generation counter, then dispatching the generation stage.
// Earlier stages are untouched.
func (e *Engine) Regenerate() *Dispatch {
	if e.record(StageConfig).Status != StatusReady {
		return nil
	}
	e.generation++
	return e.EnsureFresh(StageItinerary)
}

// UseMinimumDays applies the feasibility verdict's suggested minimum as the
// new day count. It is the remediation for an infeasible route; the caller
// follows up with EnsureFresh to re-validate.
func (e *Engine) UseMinimumDays() bool {
	res, ok := e.Feasibility()
	if !ok || res.Feasible || res.MinimumDays < 1 {
		return false
	}
	e.SetDays(res.MinimumDays)
	return true
}

// forceIdle resets the stage and its downstream unless it is already Idle.
func (e *Engine) forceIdle(stage Stage) {
	if e.record(stage).Status == StatusIdle {
		return
	}
	e.reset(stage)
	e.invalidateAfter(stage)
}

// resolveSelection runs the local endpoint validation.
func (e *Engine) resolveSelection() {
	if !e.src.Committed() || !e.dst.Committed() {
		e.forceIdle(StageSelection)
		return
	}
	fp := routeFingerprint(e.src.City, e.dst.City)
	rec := e.record(StageSelection)
	if fp == rec.Fingerprint && rec.Status != StatusIdle {
		return
	}
	if e.src.City.Key() == e.dst.City.Key() {
		e.set(StageSelection, Record{
			Status:      StatusFailed,
			Fingerprint: fp,
			Err:         errors.NewInputError("source and destination must be different cities").WithCause(errors.ErrSameEndpoints),
		})
	} else {
		e.set(StageSelection, Record{
			Status:      StatusReady,
			Fingerprint: fp,
			Output:      Route{Source: e.src.City, Destination: e.dst.City},
		})
	}
	e.invalidateAfter(StageSelection)
}

// upstreamReady reports whether every stage before the given one is Ready,
// including the semantic gates between stages: a feasibility verdict must be
// feasible before modes run, and a preferred mode must be chosen before the
// configuration stage runs.
func (e *Engine) upstreamReady(stage Stage) bool {
	for j := StageSelection; j < stage; j++ {
		if e.record(j).Status != StatusReady {
			return false
		}
	}
	if stage > StageFeasibility {
		if res, ok := e.Feasibility(); !ok || !res.Feasible {
			return false
		}
	}
	if stage > StageModes && e.params.PreferredMode == "" {
		return false
	}
	return true
}

// deriveInput builds the stage's request from current inputs. ok is false
// when a required user input is missing, which forces the stage Idle.
func (e *Engine) deriveInput(stage Stage) (any, string, bool) {
	switch stage {
	case StageFeasibility:
		route, ok := e.Route()
		if !ok {
			return nil, "", false
		}
		in := FeasibilityInput{Source: route.Source, Destination: route.Destination, Days: e.params.Days}
		return in, in.Fingerprint(), true

	case StageModes:
		res, ok := e.Feasibility()
		if !ok {
			return nil, "", false
		}
		in := ModesInput{DistanceKm: res.DistanceKm, Days: e.params.Days, Preferred: e.params.PreferredMode}
		return in, in.Fingerprint(), true

	case StageConfig:
		route, ok := e.Route()
		if !ok {
			return nil, "", false
		}
		res, ok := e.Feasibility()
		if !ok {
			return nil, "", false
		}
		if len(e.params.Interests) == 0 || e.params.PreferredMode == "" {
			return nil, "", false
		}
		in := ConfigInput{
			Source:      route.Source,
			Destination: route.Destination,
			DistanceKm:  res.DistanceKm,
			Mode:        e.params.PreferredMode,
			Days:        e.params.Days,
			Pace:        e.params.Pace,
			Budget:      e.params.Budget,
			Interests:   append([]string(nil), e.params.Interests...),
			Constraints: e.params.Constraints,
			Model:       e.params.Model,
		}
		return in, in.Fingerprint(), true

	case StageItinerary:
		cfg, ok := e.Configuration()
		if !ok {
			return nil, "", false
		}
		in := ItineraryInput{Config: cfg, Generation: e.generation}
		return in, in.Fingerprint(), true
	}
	return nil, "", false
}

// ============================================================================
// Input validation for the UI
// ============================================================================

// ValidateSelection reports the inline error, if any, for the committed
// endpoints. Missing endpoints are not an error, just an incomplete form.
func (e *Engine) ValidateSelection() error {
	if e.src.Committed() && e.dst.Committed() && e.src.City.Key() == e.dst.City.Key() {
		return errors.NewInputError("source and destination must be different cities").WithCause(errors.ErrSameEndpoints)
	}
	return nil
}

// ValidateConfigInput reports the inline error, if any, blocking the
// finalize action.
func (e *Engine) ValidateConfigInput() error {
	if len(e.params.Interests) == 0 {
		return errors.NewInputError("select at least one interest").WithCause(errors.ErrNoInterests)
	}
	return nil
}

// ============================================================================
// Typed output accessors
// ============================================================================

// Route returns the selection stage's output when Ready.
func (e *Engine) Route() (Route, bool) {
	rec := e.record(StageSelection)
	if rec.Status != StatusReady {
		return Route{}, false
	}
	route, ok := rec.Output.(Route)
	return route, ok
}

// Feasibility returns the feasibility verdict when Ready.
func (e *Engine) Feasibility() (trip.FeasibilityResult, bool) {
	rec := e.record(StageFeasibility)
	if rec.Status != StatusReady {
		return trip.FeasibilityResult{}, false
	}
	res, ok := rec.Output.(trip.FeasibilityResult)
	return res, ok
}

// Modes returns the mode recommendation when Ready.
func (e *Engine) Modes() (trip.ModeRecommendation, bool) {
	rec := e.record(StageModes)
	if rec.Status != StatusReady {
		return trip.ModeRecommendation{}, false
	}
	res, ok := rec.Output.(trip.ModeRecommendation)
	return res, ok
}

// Configuration returns the committed configuration when Ready.
func (e *Engine) Configuration() (trip.Configuration, bool) {
	rec := e.record(StageConfig)
	if rec.Status != StatusReady {
		return trip.Configuration{}, false
	}
	cfg, ok := rec.Output.(trip.Configuration)
	return cfg, ok
}

// Itinerary returns the generated itinerary when Ready.
func (e *Engine) Itinerary() (trip.Itinerary, bool) {
	rec := e.record(StageItinerary)
	if rec.Status != StatusReady {
		return trip.Itinerary{}, false
	}
	it, ok := rec.Output.(trip.Itinerary)
	return it, ok
}

// ============================================================================
// Derived phase
// ============================================================================

// Phase derives the pipeline-level state from the stage records. It is
// recomputed on every call and never stored, so it cannot drift from the
// records it summarizes.
func (e *Engine) Phase() Phase {
	switch e.record(StageItinerary).Status {
	case StatusReady:
		return PhaseDone
	case StatusPending:
		return PhaseGenerating
	}
	if res, ok := e.Feasibility(); ok && res.Feasible {
		if e.params.PreferredMode != "" {
			return PhaseAwaitingConfiguration
		}
		return PhaseAwaitingModeChoice
	}
	if e.record(StageSelection).Status == StatusReady {
		return PhaseAwaitingValidation
	}
	return PhaseAwaitingSelection
}
