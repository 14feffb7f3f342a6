package wizard

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tripflow/internal/trip"
)

// field identifies which endpoint selector a message belongs to.
type field int

const (
	fieldSource field = iota
	fieldDestination
)

func (f field) String() string {
	if f == fieldSource {
		return "source"
	}
	return "destination"
}

// selector is one debounced city picker: a text input, the current candidate
// list, and the committed selection. Every keystroke bumps seq; debounce
// ticks and search results carry the seq they were issued under and are
// dropped when a newer keystroke has since arrived.
type selector struct {
	field      field
	input      textinput.Model
	candidates []trip.City
	cursor     int
	selection  trip.Selection
	seq        int
	searching  bool
}

func newSelector(f field, placeholder string) selector {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 32
	return selector{field: f, input: ti}
}

// handleInput processes a keystroke already applied to the text input. It
// drops the selection the moment the text diverges from the committed city
// name, and returns the debounce command for a fresh search when the query is
// long enough.
func (s *selector) handleInput(minQuery int, debounce debounceFn) tea.Cmd {
	text := s.input.Value()

	if s.selection.Committed() && !s.selection.Matches(text) {
		s.selection = trip.Selection{}
	}

	s.seq++
	s.cursor = 0
	if len(text) < minQuery {
		s.candidates = nil
		s.searching = false
		return nil
	}
	s.searching = true
	return debounce(s.field, s.seq)
}

// current reports whether the sequence number is still the latest.
func (s *selector) current(seq int) bool {
	return seq == s.seq
}

// setCandidates installs search results for the given sequence number.
// Stale results and results arriving after a commit are dropped. A search
// error clears the list; the selector stays quiet about it.
func (s *selector) setCandidates(seq int, cities []trip.City, err error) {
	if !s.current(seq) || s.selection.Committed() {
		return
	}
	s.searching = false
	if err != nil {
		s.candidates = nil
		return
	}
	s.candidates = cities
	if s.cursor >= len(s.candidates) {
		s.cursor = 0
	}
}

// moveCursor shifts the candidate highlight.
func (s *selector) moveCursor(delta int) {
	if len(s.candidates) == 0 {
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = len(s.candidates) - 1
	}
	if s.cursor >= len(s.candidates) {
		s.cursor = 0
	}
}

// commit picks the highlighted candidate: the input takes the city's display
// name and the candidate list disappears.
func (s *selector) commit() (trip.Selection, bool) {
	if len(s.candidates) == 0 {
		return trip.Selection{}, false
	}
	city := s.candidates[s.cursor]
	s.selection = trip.NewSelection(city)
	s.input.SetValue(city.Name)
	s.input.CursorEnd()
	s.candidates = nil
	s.cursor = 0
	s.seq++ // outdates any in-flight search
	s.searching = false
	return s.selection, true
}

// showingCandidates reports whether the candidate list is visible.
func (s *selector) showingCandidates() bool {
	return len(s.candidates) > 0 && !s.selection.Committed()
}

// debounceFn issues the debounce command for a field/sequence pair.
type debounceFn func(f field, seq int) tea.Cmd
