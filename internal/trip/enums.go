package trip

// TravelMode is a supported way of covering the distance between endpoints.
type TravelMode string

const (
	ModeFlight TravelMode = "flight"
	ModeTrain  TravelMode = "train"
	ModeBus    TravelMode = "bus"
	ModeCar    TravelMode = "car"
)

// AllModes returns every travel mode in display order.
func AllModes() []TravelMode {
	return []TravelMode{ModeFlight, ModeTrain, ModeBus, ModeCar}
}

// Valid reports whether the mode is one of the supported values.
func (m TravelMode) Valid() bool {
	switch m {
	case ModeFlight, ModeTrain, ModeBus, ModeCar:
		return true
	}
	return false
}

// String returns the wire representation.
func (m TravelMode) String() string { return string(m) }

// Pace is the user's desired trip intensity.
type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceBalanced Pace = "balanced"
	PaceFast     Pace = "fast"
)

// AllPaces returns every pace in display order.
func AllPaces() []Pace {
	return []Pace{PaceRelaxed, PaceBalanced, PaceFast}
}

// Valid reports whether the pace is one of the supported values.
func (p Pace) Valid() bool {
	switch p {
	case PaceRelaxed, PaceBalanced, PaceFast:
		return true
	}
	return false
}

// Budget is the user's spending tier. It shapes the style of suggested
// experiences, never specific prices.
type Budget string

const (
	BudgetBasic   Budget = "basic"
	BudgetPremium Budget = "premium"
	BudgetLuxury  Budget = "luxury"
)

// AllBudgets returns every budget tier in display order.
func AllBudgets() []Budget {
	return []Budget{BudgetBasic, BudgetPremium, BudgetLuxury}
}

// Valid reports whether the budget is one of the supported values.
func (b Budget) Valid() bool {
	switch b {
	case BudgetBasic, BudgetPremium, BudgetLuxury:
		return true
	}
	return false
}

// Generator model identifiers accepted by the itinerary service.
const (
	ModelStandard = "standard"
	ModelDetailed = "detailed"
)

// ValidModel reports whether the generator model identifier is supported.
func ValidModel(model string) bool {
	return model == ModelStandard || model == ModelDetailed
}
