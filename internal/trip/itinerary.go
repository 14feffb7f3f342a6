package trip

// Block periods within a day.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
)

// Activity types a block may carry. The generator is free to pick any of
// these; consumers treat the value as an opaque tag for display.
var ActivityTypes = []string{
	"sightseeing", "culture", "food", "relaxation",
	"adventure", "shopping", "beach", "nature",
	"history", "art", "music", "sports",
}

// Meal describes the dining attached to a block. MealType "none" means the
// block has no meal component.
type Meal struct {
	MealType    string `json:"meal_type"`
	CuisineType string `json:"cuisine_type"`
	DiningStyle string `json:"dining_style"`
	VegFriendly bool   `json:"veg_friendly"`
}

// NoMeal returns the placeholder meal attached to non-dining blocks.
func NoMeal() Meal {
	return Meal{MealType: "none", CuisineType: "local", DiningStyle: "restaurant", VegFriendly: true}
}

// Block is one time window within a day plan.
type Block struct {
	Period          string `json:"period"`
	TimeWindow      string `json:"time_window"`
	Title           string `json:"title"`
	ActivityType    string `json:"activity_type"`
	Description     string `json:"description"`
	LogisticsHint   string `json:"logistics_hint,omitempty"`
	Meal            Meal   `json:"meal"`
	PhotographyNote string `json:"photography_note,omitempty"`
}

// DayPlan is one day of the itinerary.
type DayPlan struct {
	Day        int     `json:"day"`
	DayTheme   string  `json:"day_theme"`
	DaySummary string  `json:"day_summary"`
	Blocks     []Block `json:"blocks"`
}

// OverallStyle summarizes the trip's pace and budget for display.
type OverallStyle struct {
	Pace   string `json:"pace"`
	Budget string `json:"budget"`
}

// Itinerary is the generated trip plan. The wizard treats it as an opaque
// payload: it renders what is there and validates only the shape.
type Itinerary struct {
	Destination  string       `json:"destination"`
	Days         int          `json:"days"`
	OverallStyle OverallStyle `json:"overall_style"`
	DayPlans     []DayPlan    `json:"itinerary"`
}
