package wizard

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/pipeline"
	"github.com/Iron-Ham/tripflow/internal/trip"
	"github.com/Iron-Ham/tripflow/internal/util"
)

// View renders the current step. The view is a pure function of the model;
// it reads the engine's stage records and never mutates anything.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tripflow"))
	b.WriteString("\n")

	switch m.step {
	case stepRoute:
		m.viewRoute(&b)
	case stepMode:
		m.viewMode(&b)
	case stepPreferences:
		m.viewPreferences(&b)
	case stepItinerary:
		m.viewItinerary(&b)
	}
	return b.String()
}

// stageLine renders the status line for a stage: spinner while pending, the
// user-facing message on failure.
func (m Model) stageLine(stage pipeline.Stage, pendingText string) string {
	rec := m.engine.StageRecord(stage)
	switch rec.Status {
	case pipeline.StatusPending:
		return m.spinner.View() + " " + labelStyle.Render(pendingText)
	case pipeline.StatusFailed:
		line := errorStyle.Render(errors.UserMessage(rec.Err))
		if !errors.IsInputError(rec.Err) {
			line += hintStyle.Render("  (r to retry)")
		}
		return line
	}
	return ""
}

// ============================================================================
// Route step
// ============================================================================

func (m Model) viewRoute(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Plan a trip") + "\n\n")

	m.viewSelector(b, "From", m.source, m.routeFocus == focusSource)
	m.viewSelector(b, "To", m.destination, m.routeFocus == focusDestination)

	daysMarker := "  "
	if m.routeFocus == focusDays {
		daysMarker = cursorStyle.Render("> ")
	}
	fmt.Fprintf(b, "%s%s %s\n", daysMarker, labelStyle.Render("Days:"),
		selectedStyle.Render(fmt.Sprintf("%d", m.engine.Params().Days)))

	if err := m.engine.ValidateSelection(); err != nil {
		b.WriteString("\n" + errorStyle.Render(errors.UserMessage(err)) + "\n")
	}

	if line := m.stageLine(pipeline.StageFeasibility, "checking route..."); line != "" {
		b.WriteString("\n" + line + "\n")
	}

	if res, ok := m.engine.Feasibility(); ok && !res.Feasible {
		b.WriteString("\n" + warnStyle.Render(res.Reason) + "\n")
		b.WriteString(hintStyle.Render(fmt.Sprintf("press m to use %d days", res.MinimumDays)) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render("tab: next field • enter: pick / validate • ctrl+c: quit") + "\n")
}

func (m Model) viewSelector(b *strings.Builder, label string, s selector, focused bool) {
	marker := "  "
	if focused {
		marker = cursorStyle.Render("> ")
	}
	fmt.Fprintf(b, "%s%s %s", marker, labelStyle.Render(label+":"), s.input.View())
	if s.searching && focused {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")

	if focused && s.showingCandidates() {
		for i, city := range s.candidates {
			line := fmt.Sprintf("%s, %s", city.Name, city.State)
			if i == s.cursor {
				b.WriteString("    " + cursorStyle.Render("› "+line) + "\n")
			} else {
				b.WriteString("      " + labelStyle.Render(line) + "\n")
			}
		}
	}
}

// ============================================================================
// Mode step
// ============================================================================

func (m Model) viewMode(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Choose how to travel") + "\n\n")

	if route, ok := m.engine.Route(); ok {
		if res, ok := m.engine.Feasibility(); ok {
			fmt.Fprintf(b, "%s\n\n", labelStyle.Render(fmt.Sprintf(
				"%s → %s, %dkm, %d days",
				route.Source.Name, route.Destination.Name, res.DistanceKm, m.engine.Params().Days)))
		}
	}

	if line := m.stageLine(pipeline.StageModes, "fetching recommendations..."); line != "" {
		b.WriteString(line + "\n")
	}

	rec, ok := m.engine.Modes()
	if ok {
		preferred := m.engine.Params().PreferredMode
		choices := append(append([]trip.TravelMode{}, rec.RecommendedModes...), otherModes(rec)...)
		for i, mode := range choices {
			line := string(mode)
			if t, found := rec.EstimatedTimes[string(mode)]; found {
				line += "  " + t
			}
			if !rec.Recommends(mode) {
				line += "  " + warnStyle.Render("(not recommended)")
			}
			switch {
			case i == m.modeCursor && mode == preferred:
				b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render("● "+line) + "\n")
			case i == m.modeCursor:
				b.WriteString(cursorStyle.Render("> ") + line + "\n")
			case mode == preferred:
				b.WriteString("  " + selectedStyle.Render("● "+line) + "\n")
			default:
				b.WriteString("  " + labelStyle.Render("○ "+line) + "\n")
			}
		}

		if preferred != "" && !rec.PreferredModeValid && rec.PreferredModeReason != "" {
			b.WriteString("\n" + warnStyle.Render(rec.PreferredModeReason) + "\n")
		}
	}

	b.WriteString("\n" + hintStyle.Render("enter: select, enter again: continue • esc: back") + "\n")
}

// ============================================================================
// Preferences step
// ============================================================================

func (m Model) viewPreferences(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Shape the trip") + "\n\n")
	params := m.engine.Params()

	// Interests
	b.WriteString(m.prefHeader(focusInterests, "Interests"))
	switch {
	case m.loadingInterests:
		b.WriteString("  " + m.spinner.View() + " " + labelStyle.Render("fetching suggestions...") + "\n")
	case len(m.suggested) == 0:
		b.WriteString("  " + hintStyle.Render("no suggestions available") + "\n")
	default:
		for i, label := range m.suggested {
			mark := "○"
			style := labelStyle
			if m.engine.HasInterest(label) {
				mark = "●"
				style = selectedStyle
			}
			prefix := "  "
			if m.prefFocus == focusInterests && i == m.interestCursor {
				prefix = cursorStyle.Render("> ")
			}
			b.WriteString(prefix + style.Render(mark+" "+label) + "\n")
		}
	}
	if err := m.engine.ValidateConfigInput(); err != nil {
		b.WriteString("  " + errorStyle.Render(errors.UserMessage(err)) + "\n")
	}

	// Pace / Budget / Model
	b.WriteString("\n" + m.prefHeader(focusPace, "Pace"))
	b.WriteString("  " + renderOptions(trip.AllPaces(), params.Pace) + "\n")
	b.WriteString("\n" + m.prefHeader(focusBudget, "Budget"))
	b.WriteString("  " + renderOptions(trip.AllBudgets(), params.Budget) + "\n")

	// Constraints
	b.WriteString("\n" + m.prefHeader(focusConstraints, "Constraints"))
	flags := []bool{
		params.Constraints.AvoidEarlyMornings,
		params.Constraints.PreferLessWalking,
		params.Constraints.FamilyFriendly,
		params.Constraints.VegetarianFriendly,
		params.Constraints.PhotographyFocus,
	}
	for i, label := range constraintLabels {
		mark := "○"
		style := labelStyle
		if flags[i] {
			mark = "●"
			style = selectedStyle
		}
		prefix := "  "
		if m.prefFocus == focusConstraints && i == m.constraintCursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + style.Render(mark+" "+label) + "\n")
	}

	b.WriteString("\n" + m.prefHeader(focusModel, "Plan detail"))
	b.WriteString("  " + renderOptions([]string{trip.ModelStandard, trip.ModelDetailed}, params.Model) + "\n")

	for _, stage := range []pipeline.Stage{pipeline.StageConfig, pipeline.StageItinerary} {
		if line := m.stageLine(stage, "finalizing..."); line != "" {
			b.WriteString("\n" + line + "\n")
		}
	}

	b.WriteString("\n" + hintStyle.Render("tab: section • space: toggle • ←/→: change • g: generate • esc: back") + "\n")
}

func (m Model) prefHeader(f prefFocus, title string) string {
	if m.prefFocus == f {
		return cursorStyle.Render("» ") + sectionStyle.Render(title) + "\n"
	}
	return "  " + sectionStyle.Render(title) + "\n"
}

func renderOptions[T ~string](options []T, current T) string {
	parts := make([]string, 0, len(options))
	for _, opt := range options {
		if opt == current {
			parts = append(parts, selectedStyle.Render("["+string(opt)+"]"))
		} else {
			parts = append(parts, labelStyle.Render(" "+string(opt)+" "))
		}
	}
	return strings.Join(parts, " ")
}

// ============================================================================
// Itinerary step
// ============================================================================

func (m Model) viewItinerary(b *strings.Builder) {
	if line := m.stageLine(pipeline.StageItinerary, "generating itinerary..."); line != "" {
		b.WriteString(line + "\n")
		b.WriteString("\n" + hintStyle.Render("esc: back") + "\n")
		return
	}

	it, ok := m.engine.Itinerary()
	if !ok {
		b.WriteString(hintStyle.Render("no itinerary yet") + "\n")
		return
	}

	header := fmt.Sprintf("%s — %d days (%s pace, %s budget)",
		it.Destination, it.Days, it.OverallStyle.Pace, it.OverallStyle.Budget)
	b.WriteString(sectionStyle.Render(header) + "\n\n")

	lines := m.itineraryLines(it)
	visible := m.visibleLines(lines)
	b.WriteString(strings.Join(visible, "\n"))
	b.WriteString("\n")

	if m.saved {
		b.WriteString("\n" + selectedStyle.Render("session saved") + "\n")
	} else if m.saveErr != nil {
		b.WriteString("\n" + errorStyle.Render("save failed: "+m.saveErr.Error()) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("↑/↓: scroll • r: regenerate • s: save • esc: back • q: quit") + "\n")
}

// itineraryLines flattens the itinerary into display lines for scrolling.
func (m Model) itineraryLines(it trip.Itinerary) []string {
	var lines []string
	for _, day := range it.DayPlans {
		lines = append(lines, sectionStyle.Render(fmt.Sprintf("Day %d: %s", day.Day, day.DayTheme)))
		lines = append(lines, hintStyle.Render(day.DaySummary))
		for _, block := range day.Blocks {
			lines = append(lines, boxStyle.Render(renderBlock(block)))
		}
		lines = append(lines, "")
	}
	return lines
}

func renderBlock(block trip.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s",
		selectedStyle.Render(block.TimeWindow),
		labelStyle.Render("["+block.Period+"]"),
		block.Title)
	b.WriteString("\n" + block.Description)
	if block.Meal.MealType != "none" {
		fmt.Fprintf(&b, "\n%s %s (%s)", labelStyle.Render("meal:"), block.Meal.MealType, block.Meal.CuisineType)
	}
	if block.LogisticsHint != "" {
		b.WriteString("\n" + hintStyle.Render(block.LogisticsHint))
	}
	if block.PhotographyNote != "" {
		b.WriteString("\n" + hintStyle.Render("📷 "+block.PhotographyNote))
	}
	return b.String()
}

// visibleLines applies the scroll offset within the terminal height.
func (m Model) visibleLines(lines []string) []string {
	// Flatten multi-line rendered blocks first.
	var flat []string
	for _, l := range lines {
		flat = append(flat, strings.Split(l, "\n")...)
	}

	if m.width > 0 {
		for i, l := range flat {
			flat[i] = util.Truncate(l, m.width)
		}
	}

	height := m.height - 8
	if height < 5 || height >= len(flat) {
		height = len(flat)
	}
	offset := m.scroll
	if offset > len(flat)-height {
		offset = len(flat) - height
	}
	if offset < 0 {
		offset = 0
	}
	return flat[offset : offset+height]
}
