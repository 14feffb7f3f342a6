package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Iron-Ham/tripflow/internal/trip"
)

// ============================================================================
// Stage inputs and fingerprints
// ============================================================================
//
// Every stage input can render itself as a canonical, human-readable
// fingerprint string. Two inputs are equivalent exactly when their
// fingerprints are byte-equal; the engine compares nothing else. Keeping the
// strings readable makes stale-result discards auditable in debug logs.

// Dispatch instructs the caller to run one stage request. The fingerprint
// must be echoed back through Engine.Resolve so the engine can tell whether
// the result still corresponds to current inputs.
type Dispatch struct {
	Stage       Stage
	Fingerprint string
	Input       any
}

// Route is the output of the selection stage: both endpoints, committed and
// distinct.
type Route struct {
	Source      trip.City
	Destination trip.City
}

func routeFingerprint(src, dst trip.City) string {
	return fmt.Sprintf("src=%s|dst=%s", src.Key(), dst.Key())
}

// FeasibilityInput is the request derived for the feasibility stage.
type FeasibilityInput struct {
	Source      trip.City
	Destination trip.City
	Days        int
}

// Fingerprint covers both endpoints' coordinates and the day count, the only
// values the feasibility service reads.
func (in FeasibilityInput) Fingerprint() string {
	return fmt.Sprintf("src=%s@%.4f,%.4f|dst=%s@%.4f,%.4f|days=%d",
		in.Source.Key(), in.Source.Lat, in.Source.Lon,
		in.Destination.Key(), in.Destination.Lat, in.Destination.Lon,
		in.Days)
}

// ModesInput is the request derived for the mode-recommendation stage.
type ModesInput struct {
	DistanceKm int
	Days       int
	Preferred  trip.TravelMode
}

// Fingerprint covers the confirmed distance, the day count, and the user's
// preferred mode (empty until one is chosen).
func (in ModesInput) Fingerprint() string {
	pref := "none"
	if in.Preferred != "" {
		pref = string(in.Preferred)
	}
	return fmt.Sprintf("km=%d|days=%d|pref=%s", in.DistanceKm, in.Days, pref)
}

// ConfigInput is the request derived for the configuration stage: the full
// trip intent.
type ConfigInput struct {
	Source      trip.City
	Destination trip.City
	DistanceKm  int
	Mode        trip.TravelMode
	Days        int
	Pace        trip.Pace
	Budget      trip.Budget
	Interests   []string
	Constraints trip.OptionalConstraints
	Model       string
}

// Fingerprint covers every field of the intent. Interests appear in their
// committed order; reordering them is a real input change because the
// configuration payload preserves order.
func (in ConfigInput) Fingerprint() string {
	c := in.Constraints
	flags := fmt.Sprintf("%t,%t,%t,%t,%t",
		c.AvoidEarlyMornings, c.PreferLessWalking, c.FamilyFriendly, c.VegetarianFriendly, c.PhotographyFocus)
	return fmt.Sprintf("src=%s|dst=%s|km=%d|mode=%s|days=%d|pace=%s|budget=%s|interests=%s|constraints=%s|model=%s",
		in.Source.Key(), in.Destination.Key(), in.DistanceKm, in.Mode, in.Days,
		in.Pace, in.Budget, strings.Join(in.Interests, ","), flags, in.Model)
}

// ItineraryInput is the request derived for the generation stage: the
// committed configuration plus a generation counter. Regenerate bumps the
// counter so an otherwise-identical request still produces a fresh
// fingerprint.
type ItineraryInput struct {
	Config     trip.Configuration
	Generation int
}

// Fingerprint embeds the configuration's canonical JSON so any field change
// in the committed configuration forces regeneration.
func (in ItineraryInput) Fingerprint() string {
	raw, err := json.Marshal(in.Config)
	if err != nil {
		// Configuration contains only marshalable fields; this path is
		// unreachable in practice but must still yield a stable string.
		raw = []byte(err.Error())
	}
	return fmt.Sprintf("gen=%d|cfg=%s", in.Generation, raw)
}
