package models

import "time"

// Travel method options accepted by the wizard.
const (
	TravelMetro     = "metro"
	TravelCar       = "car"
	TravelBus       = "bus"
	TravelCab       = "cab"
	TravelBestRoute = "best-route"
	TravelFlight    = "flight"
	TravelTrain     = "train"
	TravelBike      = "bike"
)

// Budget tiers.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// Companion options.
const (
	CompanionSolo     = "solo"
	CompanionCouple   = "couple"
	CompanionFamily   = "family"
	CompanionFriends  = "friends"
	CompanionGroup    = "group"
	CompanionBusiness = "business"
)

// MealPreferenceMixed is the default when the traveler picks nothing.
const MealPreferenceMixed = "mixed"

// TripContext is the traveler's accumulated wizard answers. It drives every
// recommendation request and is persisted field-by-field in the session store.
type TripContext struct {
	Destination         string                     `bson:"destination" json:"destination"`
	StartDate           string                     `bson:"startDate" json:"startDate"` // "YYYY-MM-DD"
	EndDate             string                     `bson:"endDate" json:"endDate"`     // derived: startDate + numberOfDays - 1
	NumberOfDays        int                        `bson:"numberOfDays" json:"numberOfDays"`
	TravelMethod        string                     `bson:"travelMethod" json:"travelMethod"`
	Budget              string                     `bson:"budget" json:"budget"`
	Companions          string                     `bson:"companions" json:"companions"`
	MealPreferences     []string                   `bson:"mealPreferences" json:"mealPreferences"`
	SelectedCategories  []string                   `bson:"selectedCategories" json:"selectedCategories"`
	SelectedPreferences []string                   `bson:"selectedPreferences" json:"selectedPreferences"`
	PlacesPerDay        int                        `bson:"placesPerDay" json:"placesPerDay"`
	PackingCategories   []string                   `bson:"packingCategories" json:"packingCategories"`
	PackingItems        map[string]map[string]bool `bson:"packingItems" json:"packingItems"` // category -> item -> packed
}

// SelectionSet is the traveler's chosen subset of recommended places and hotels.
// The UI contract allows exactly one hotel; the slice mirrors the stored key shape.
type SelectionSet struct {
	SelectedPlaces []string `bson:"selectedPlaces" json:"selectedPlaces"`
	SelectedHotels []string `bson:"selectedHotels" json:"selectedHotels"`
}

// TripSnapshot freezes the trip state used for the last successful fetch of a
// recommendation kind. Snapshots are immutable once stored.
type TripSnapshot struct {
	Context            TripContext  `bson:"context" json:"context"`
	Selections         SelectionSet `bson:"selections" json:"selections"`
	ItineraryGenerated bool         `bson:"itineraryGenerated" json:"itineraryGenerated"`
	TakenAt            time.Time    `bson:"takenAt" json:"takenAt"`
}
