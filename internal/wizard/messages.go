package wizard

import (
	"github.com/Iron-Ham/tripflow/internal/pipeline"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// debounceMsg fires after the typing pause for a selector. Stale sequence
// numbers are ignored.
type debounceMsg struct {
	field field
	seq   int
}

// searchResultMsg carries city search results (or the error) for a selector
// query issued under seq.
type searchResultMsg struct {
	field  field
	seq    int
	cities []trip.City
	err    error
}

// stageResultMsg carries the outcome of a dispatched stage request. The
// fingerprint is echoed back so the engine can discard stale results.
type stageResultMsg struct {
	stage       pipeline.Stage
	fingerprint string
	output      any
	err         error
}

// interestsMsg carries suggested interest labels for the preferences step.
type interestsMsg struct {
	labels []string
	err    error
}

// savedMsg reports the outcome of persisting the session.
type savedMsg struct {
	err error
}
