package wizard

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tripflow/internal/pipeline"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// Update is the single mutation point of the wizard. Every message lands
// here, on the event loop; engine reads and writes are therefore atomic with
// respect to each other.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case debounceMsg:
		sel := m.selectorFor(msg.field)
		if !sel.current(msg.seq) {
			return m, nil // superseded by later keystrokes
		}
		query := sel.input.Value()
		if len(query) < m.minQuery {
			return m, nil
		}
		return m, m.searchCmd(msg.field, msg.seq, query)

	case searchResultMsg:
		if msg.err != nil {
			m.logger.Warn("search failed", "field", msg.field.String(), "error", msg.err)
		}
		m.selectorFor(msg.field).setCandidates(msg.seq, msg.cities, msg.err)
		return m, nil

	case stageResultMsg:
		if !m.engine.Resolve(msg.stage, msg.fingerprint, msg.output, msg.err) {
			return m, nil
		}
		return m.afterStage(msg.stage)

	case interestsMsg:
		m.loadingInterests = false
		if msg.err != nil {
			m.logger.Warn("interest suggestion failed", "error", msg.err)
			return m, nil
		}
		m.suggested = msg.labels
		m.interestCursor = 0
		return m, nil

	case savedMsg:
		m.saved = msg.err == nil
		m.saveErr = msg.err
		if msg.err != nil {
			m.logger.Warn("session save failed", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.step {
		case stepRoute:
			return m.updateRoute(msg)
		case stepMode:
			return m.updateMode(msg)
		case stepPreferences:
			return m.updatePreferences(msg)
		case stepItinerary:
			return m.updateItinerary(msg)
		}
	}
	return m, nil
}

// afterStage chains the pipeline forward once a stage result lands.
func (m Model) afterStage(stage pipeline.Stage) (tea.Model, tea.Cmd) {
	switch stage {
	case pipeline.StageFeasibility:
		if res, ok := m.engine.Feasibility(); ok && res.Feasible {
			m.step = stepMode
			m.modeCursor = 0
			return m, m.ensure(pipeline.StageModes)
		}

	case pipeline.StageConfig:
		if _, ok := m.engine.Configuration(); ok {
			m.step = stepItinerary
			m.saved = false
			return m, m.ensure(pipeline.StageItinerary)
		}

	case pipeline.StageItinerary:
		if _, ok := m.engine.Itinerary(); ok {
			m.step = stepItinerary
			m.scroll = 0
		}
	}
	return m, nil
}

// ============================================================================
// Route step
// ============================================================================

func (m Model) updateRoute(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.routeFocus = (m.routeFocus + 1) % 3
		} else {
			m.routeFocus = (m.routeFocus + 2) % 3
		}
		m.syncFocus()
		return m, nil

	case "up", "down":
		switch m.routeFocus {
		case focusSource, focusDestination:
			sel := m.focusedSelector()
			if sel.showingCandidates() {
				if msg.String() == "up" {
					sel.moveCursor(-1)
				} else {
					sel.moveCursor(1)
				}
				return m, nil
			}
		case focusDays:
			days := m.engine.Params().Days
			if msg.String() == "up" {
				m.engine.SetDays(days + 1)
			} else {
				m.engine.SetDays(days - 1)
			}
			return m, nil
		}

	case "enter":
		if sel := m.focusedSelector(); sel != nil && sel.showingCandidates() {
			picked, ok := sel.commit()
			if !ok {
				return m, nil
			}
			m.commitSelection(sel.field, picked)
			// Move focus along the form after a pick.
			if m.routeFocus == focusSource {
				m.routeFocus = focusDestination
			} else if m.routeFocus == focusDestination {
				m.routeFocus = focusDays
			}
			m.syncFocus()
			return m, nil
		}
		return m.validateRoute()

	case "m":
		// Adopt the suggested minimum for an infeasible verdict.
		if m.routeFocus != focusSource && m.routeFocus != focusDestination {
			if m.engine.UseMinimumDays() {
				return m, m.ensure(pipeline.StageFeasibility)
			}
		}

	case "r":
		if m.routeFocus == focusDays && m.engine.StageRecord(pipeline.StageFeasibility).Status == pipeline.StatusFailed {
			return m, m.dispatchCmd(m.engine.Retry(pipeline.StageFeasibility))
		}
	}

	// Everything else edits the focused text input.
	if sel := m.focusedSelector(); sel != nil {
		var cmd tea.Cmd
		before := sel.input.Value()
		sel.input, cmd = sel.input.Update(msg)
		if sel.input.Value() == before {
			return m, cmd
		}
		debounce := sel.handleInput(m.minQuery, m.debounceCmd)
		m.syncSelections()
		return m, tea.Batch(cmd, debounce)
	}
	return m, nil
}

// focusedSelector returns the selector under focus, or nil for the days
// control.
func (m *Model) focusedSelector() *selector {
	switch m.routeFocus {
	case focusSource:
		return &m.source
	case focusDestination:
		return &m.destination
	}
	return nil
}

// syncFocus applies the focus state to both text inputs.
func (m *Model) syncFocus() {
	m.source.input.Blur()
	m.destination.input.Blur()
	switch m.routeFocus {
	case focusSource:
		m.source.input.Focus()
	case focusDestination:
		m.destination.input.Focus()
	}
}

// commitSelection pushes a committed pick into the engine and surfaces the
// same-endpoint verdict immediately.
func (m *Model) commitSelection(f field, sel trip.Selection) {
	if f == fieldSource {
		m.engine.SetSource(sel)
	} else {
		m.engine.SetDestination(sel)
	}
	m.engine.EnsureFresh(pipeline.StageSelection)
}

// syncSelections mirrors the selectors' possibly-dropped selections into the
// engine, cascading invalidation when a committed endpoint was edited away.
func (m *Model) syncSelections() {
	m.engine.SetSource(m.source.selection)
	m.engine.SetDestination(m.destination.selection)
	m.engine.EnsureFresh(pipeline.StageSelection)
}

// validateRoute runs the selection stage and, when the endpoints hold up,
// dispatches the feasibility check.
func (m Model) validateRoute() (tea.Model, tea.Cmd) {
	m.engine.EnsureFresh(pipeline.StageSelection)
	if m.engine.StageRecord(pipeline.StageSelection).Status != pipeline.StatusReady {
		return m, nil // incomplete form or same endpoints; the view explains
	}
	return m, m.ensure(pipeline.StageFeasibility)
}

// ============================================================================
// Mode step
// ============================================================================

func (m Model) updateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rec, recReady := m.engine.Modes()

	switch msg.String() {
	case "esc":
		m.step = stepRoute
		return m, nil

	case "up", "k":
		if recReady && m.modeCursor > 0 {
			m.modeCursor--
		}
		return m, nil

	case "down", "j":
		if recReady && m.modeCursor < len(rec.RecommendedModes)+len(otherModes(rec))-1 {
			m.modeCursor++
		}
		return m, nil

	case "enter":
		if !recReady {
			return m, nil
		}
		choices := append(append([]trip.TravelMode{}, rec.RecommendedModes...), otherModes(rec)...)
		if m.modeCursor >= len(choices) {
			return m, nil
		}
		picked := choices[m.modeCursor]
		if m.engine.Params().PreferredMode == picked {
			// Second enter on the same mode advances to preferences.
			return m.enterPreferences()
		}
		m.engine.SetPreferredMode(picked)
		return m, m.ensure(pipeline.StageModes)

	case "r":
		if m.engine.StageRecord(pipeline.StageModes).Status == pipeline.StatusFailed {
			return m, m.dispatchCmd(m.engine.Retry(pipeline.StageModes))
		}
		return m, nil
	}
	return m, nil
}

// otherModes lists the modes outside the recommendation list, still
// selectable behind a warning.
func otherModes(rec trip.ModeRecommendation) []trip.TravelMode {
	var rest []trip.TravelMode
	for _, mode := range trip.AllModes() {
		if !rec.Recommends(mode) {
			rest = append(rest, mode)
		}
	}
	return rest
}

// enterPreferences moves to the preferences step and fetches interest
// suggestions the first time through.
func (m Model) enterPreferences() (tea.Model, tea.Cmd) {
	m.step = stepPreferences
	m.prefFocus = focusInterests
	if len(m.suggested) > 0 || m.loadingInterests {
		return m, nil
	}
	route, ok := m.engine.Route()
	if !ok {
		return m, nil
	}
	m.loadingInterests = true
	params := m.engine.Params()
	return m, m.interestsCmd(route, params.PreferredMode, params.Days)
}

// ============================================================================
// Preferences step
// ============================================================================

func (m Model) updatePreferences(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = stepMode
		return m, nil

	case "tab":
		m.prefFocus = (m.prefFocus + 1) % 5
		return m, nil
	case "shift+tab":
		m.prefFocus = (m.prefFocus + 4) % 5
		return m, nil

	case "up", "k":
		switch m.prefFocus {
		case focusInterests:
			if m.interestCursor > 0 {
				m.interestCursor--
			}
		case focusConstraints:
			if m.constraintCursor > 0 {
				m.constraintCursor--
			}
		}
		return m, nil

	case "down", "j":
		switch m.prefFocus {
		case focusInterests:
			if m.interestCursor < len(m.suggested)-1 {
				m.interestCursor++
			}
		case focusConstraints:
			if m.constraintCursor < len(constraintLabels)-1 {
				m.constraintCursor++
			}
		}
		return m, nil

	case " ":
		switch m.prefFocus {
		case focusInterests:
			if m.interestCursor < len(m.suggested) {
				m.engine.ToggleInterest(m.suggested[m.interestCursor])
			}
		case focusConstraints:
			m.toggleConstraint(m.constraintCursor)
		}
		return m, nil

	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		params := m.engine.Params()
		switch m.prefFocus {
		case focusPace:
			m.engine.SetPace(cycle(trip.AllPaces(), params.Pace, delta))
		case focusBudget:
			m.engine.SetBudget(cycle(trip.AllBudgets(), params.Budget, delta))
		case focusModel:
			if params.Model == trip.ModelStandard {
				m.engine.SetModel(trip.ModelDetailed)
			} else {
				m.engine.SetModel(trip.ModelStandard)
			}
		}
		return m, nil

	case "g", "enter":
		if err := m.engine.ValidateConfigInput(); err != nil {
			return m, nil // the view shows the inline error
		}
		return m, m.ensure(pipeline.StageConfig)

	case "r":
		for _, stage := range []pipeline.Stage{pipeline.StageConfig, pipeline.StageItinerary} {
			if m.engine.StageRecord(stage).Status == pipeline.StatusFailed {
				return m, m.dispatchCmd(m.engine.Retry(stage))
			}
		}
		return m, nil
	}
	return m, nil
}

// constraintLabels names the optional constraints in display order.
var constraintLabels = []string{
	"Avoid early mornings",
	"Prefer less walking",
	"Family friendly",
	"Vegetarian friendly",
	"Photography focus",
}

// toggleConstraint flips one optional constraint flag.
func (m *Model) toggleConstraint(idx int) {
	c := m.engine.Params().Constraints
	switch idx {
	case 0:
		c.AvoidEarlyMornings = !c.AvoidEarlyMornings
	case 1:
		c.PreferLessWalking = !c.PreferLessWalking
	case 2:
		c.FamilyFriendly = !c.FamilyFriendly
	case 3:
		c.VegetarianFriendly = !c.VegetarianFriendly
	case 4:
		c.PhotographyFocus = !c.PhotographyFocus
	}
	m.engine.SetConstraints(c)
}

// cycle steps through an option list relative to the current value.
func cycle[T comparable](options []T, current T, delta int) T {
	idx := 0
	for i, opt := range options {
		if opt == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(options)) % len(options)
	return options[idx]
}

// ============================================================================
// Itinerary step
// ============================================================================

func (m Model) updateItinerary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = stepPreferences
		return m, nil

	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case "down", "j":
		m.scroll++
		return m, nil

	case "r":
		if m.engine.StageRecord(pipeline.StageItinerary).Status == pipeline.StatusFailed {
			return m, m.dispatchCmd(m.engine.Retry(pipeline.StageItinerary))
		}
		m.saved = false
		return m, m.dispatchCmd(m.engine.Regenerate())

	case "s":
		return m, m.saveCmd()

	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}
