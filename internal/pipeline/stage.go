// Package pipeline implements the dependent-stage orchestration engine at the
// heart of the trip wizard. Five stages run in sequence, each deriving its
// input from the committed output of the stage before it plus the user's
// adjustable parameters. The engine tracks per-stage freshness through input
// fingerprints, invalidates everything downstream of any change, and discards
// results that resolve after their inputs have moved on.
//
// The engine performs no I/O itself. EnsureFresh returns a Dispatch
// describing the request a stage client must make; the caller executes it
// (as a tea.Cmd in the wizard, or inline in tests) and reports the outcome
// through Resolve. Because all mutation happens in EnsureFresh/Resolve on the
// caller's single event loop, commits are atomic with respect to reads.
package pipeline

// Stage identifies one phase of the trip pipeline.
type Stage int

const (
	// StageSelection validates the two committed endpoint selections.
	// It resolves locally: no client call is involved.
	StageSelection Stage = iota

	// StageFeasibility asks the feasibility service whether the route fits
	// the requested day count.
	StageFeasibility

	// StageModes asks the mode-recommendation service for suitable travel
	// modes and validates the user's preferred one.
	StageModes

	// StageConfig finalizes the full trip intent with the configuration
	// service.
	StageConfig

	// StageItinerary requests a generated itinerary for the committed
	// configuration.
	StageItinerary

	stageCount
)

// Stages returns every stage in pipeline order.
func Stages() []Stage {
	return []Stage{StageSelection, StageFeasibility, StageModes, StageConfig, StageItinerary}
}

// String returns the stage's name for fingerprints and logs.
func (s Stage) String() string {
	switch s {
	case StageSelection:
		return "selection"
	case StageFeasibility:
		return "feasibility"
	case StageModes:
		return "modes"
	case StageConfig:
		return "config"
	case StageItinerary:
		return "itinerary"
	default:
		return "unknown"
	}
}

// Status is the freshness state of a stage's record.
type Status int

const (
	// StatusIdle means the stage has no output and nothing in flight.
	StatusIdle Status = iota

	// StatusPending means a request is in flight for the record's
	// fingerprint.
	StatusPending

	// StatusReady means the record's output was produced from the record's
	// fingerprint and no fresher input has been seen.
	StatusReady

	// StatusFailed means the last run for the record's fingerprint failed;
	// the record carries the error.
	StatusFailed
)

// String returns the status name for logs and tests.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Phase is the pipeline-level state derived from the stage records. It is
// never stored; Engine.Phase recomputes it on every call.
type Phase int

const (
	// PhaseAwaitingSelection: endpoints are not yet committed and distinct.
	PhaseAwaitingSelection Phase = iota

	// PhaseAwaitingValidation: endpoints committed, route not yet confirmed
	// feasible.
	PhaseAwaitingValidation

	// PhaseAwaitingModeChoice: route feasible, preferred mode not chosen.
	PhaseAwaitingModeChoice

	// PhaseAwaitingConfiguration: mode chosen, configuration not yet
	// generated from.
	PhaseAwaitingConfiguration

	// PhaseGenerating: an itinerary request is in flight.
	PhaseGenerating

	// PhaseDone: an itinerary is ready.
	PhaseDone
)

// String returns the phase name for logs and tests.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSelection:
		return "awaiting_selection"
	case PhaseAwaitingValidation:
		return "awaiting_validation"
	case PhaseAwaitingModeChoice:
		return "awaiting_mode_choice"
	case PhaseAwaitingConfiguration:
		return "awaiting_configuration"
	case PhaseGenerating:
		return "generating"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
