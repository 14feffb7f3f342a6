// Package wizard implements the interactive trip-planning TUI. The wizard is
// a thin shell over the pipeline engine: key presses become engine edits,
// engine dispatches become async commands, and the view renders whatever the
// stage records currently hold. All state transitions happen on the Bubble
// Tea event loop, so there is no locking anywhere in the package.
package wizard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tripflow/internal/client"
	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/Iron-Ham/tripflow/internal/logging"
	"github.com/Iron-Ham/tripflow/internal/pipeline"
	"github.com/Iron-Ham/tripflow/internal/session"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// step is the screen the wizard currently shows. Steps follow the pipeline
// phases but are navigation state, not pipeline state: going back a step
// never invalidates anything by itself.
type step int

const (
	stepRoute step = iota
	stepMode
	stepPreferences
	stepItinerary
)

// routeFocus is the focused control on the route step.
type routeFocus int

const (
	focusSource routeFocus = iota
	focusDestination
	focusDays
)

// prefFocus is the focused section on the preferences step.
type prefFocus int

const (
	focusInterests prefFocus = iota
	focusPace
	focusBudget
	focusConstraints
	focusModel
)

// Model is the Bubble Tea model for the wizard.
type Model struct {
	engine *pipeline.Engine
	client *client.Client
	store  *session.TripStore
	logger *logging.Logger

	step step

	// route step
	source      selector
	destination selector
	routeFocus  routeFocus
	debounce    time.Duration
	minQuery    int

	// mode step
	modeCursor int

	// preferences step
	prefFocus        prefFocus
	suggested        []string
	interestCursor   int
	constraintCursor int
	loadingInterests bool

	// itinerary step
	scroll int

	spinner  spinner.Model
	saved    bool
	saveErr  error
	width    int
	height   int
	quitting bool
}

// New builds the wizard model. The session store may be nil; saving is then
// disabled.
func New(cfg config.WizardConfig, c *client.Client, store *session.TripStore, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("wizard")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	engine := pipeline.New(pipeline.Params{Days: cfg.DefaultDays}, logger)

	src := newSelector(fieldSource, "Where from?")
	src.input.Focus()

	return Model{
		engine:      engine,
		client:      c,
		store:       store,
		logger:      logger,
		source:      src,
		destination: newSelector(fieldDestination, "Where to?"),
		debounce:    cfg.Debounce(),
		minQuery:    cfg.MinQueryLength,
		spinner:     sp,
	}
}

// Init starts the spinner and the input cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

// selectorFor returns the selector a message belongs to.
func (m *Model) selectorFor(f field) *selector {
	if f == fieldSource {
		return &m.source
	}
	return &m.destination
}

// dispatchCmd converts an engine dispatch into its async command. Nil
// dispatches yield nil commands.
func (m *Model) dispatchCmd(d *pipeline.Dispatch) tea.Cmd {
	if d == nil {
		return nil
	}
	return m.stageCmd(*d)
}

// ensure runs EnsureFresh for the stage and returns the resulting command.
func (m *Model) ensure(stage pipeline.Stage) tea.Cmd {
	return m.dispatchCmd(m.engine.EnsureFresh(stage))
}

// sessionState derives the persisted trip state from the route and committed
// configuration.
func sessionState(route pipeline.Route, cfg trip.Configuration) session.TripState {
	return session.TripState{
		Source:      route.Source,
		Destination: route.Destination,
		DistanceKm:  cfg.TripSummary.DistanceKm,
		TravelMode:  cfg.TripSummary.TravelMode,
		Days:        cfg.TripSummary.Days,
	}
}
