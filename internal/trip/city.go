// Package trip defines the domain value types shared by the wizard, the
// pipeline engine, the stage clients, and the API server. All wire-facing
// types carry snake_case JSON tags matching the decision-service API.
package trip

// Coordinates is a geographic coordinate pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// City is an immutable location entity. Cities are produced only by the
// location-search service; the wizard never constructs one from free text.
type City struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Tier    int     `json:"tier,omitempty"`
	Country string  `json:"country,omitempty"`
}

// Key returns the identity of the city for comparison purposes.
// Two cities are the same endpoint iff their keys are equal.
func (c City) Key() string {
	return c.Name + "|" + c.State
}

// Coords returns the city's coordinate pair.
func (c City) Coords() Coordinates {
	return Coordinates{Lat: c.Lat, Lon: c.Lon}
}

// IsZero reports whether the city is the zero value.
func (c City) IsZero() bool {
	return c.Name == ""
}

// Selection wraps a committed City together with the exact query text that
// produced it. A Selection is valid only while the displayed query text equals
// the city's display name; callers must drop the Selection the moment the two
// diverge. Selections are created on candidate pick and never mutated.
type Selection struct {
	City  City
	Query string
}

// NewSelection commits a city pick. The query is pinned to the city name so
// any later edit is detectable as divergence.
func NewSelection(city City) Selection {
	return Selection{City: city, Query: city.Name}
}

// Matches reports whether the given input text still corresponds to this
// selection. Any difference from the committed city name invalidates it.
func (s Selection) Matches(text string) bool {
	return !s.City.IsZero() && text == s.City.Name
}

// Committed reports whether the selection holds a city.
func (s Selection) Committed() bool {
	return !s.City.IsZero()
}
