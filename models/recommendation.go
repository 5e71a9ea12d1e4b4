package models

import "time"

// RecommendationKind identifies one of the four model round-trip flavours.
type RecommendationKind string

const (
	KindPlaces    RecommendationKind = "places"
	KindHotels    RecommendationKind = "hotels"
	KindItinerary RecommendationKind = "itinerary"
	KindPacking   RecommendationKind = "packing"
)

// Place is a single recommended attraction. JSON tags follow the wire contract
// the prompt requests from the model.
type Place struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Timing      string `bson:"timing" json:"timing"`
	TicketPrice string `bson:"ticket" json:"ticket"`
	Eligibility string `bson:"who_can_visit" json:"who_can_visit"`
	ImageURL    string `bson:"image_url" json:"image_url"`
}

// Hotel is a single recommended stay option.
type Hotel struct {
	Name           string `bson:"name" json:"name"`
	RoomType       string `bson:"room_type" json:"room_type"`
	PricePerPerson string `bson:"price_per_person" json:"price_per_person"`
	FoodType       string `bson:"food" json:"food"`
	CompanionType  string `bson:"companion_type" json:"companion_type"`
	BudgetTier     string `bson:"budget" json:"budget"`
	ImageURL       string `bson:"image_url" json:"image_url"`
}

// Activity is one scheduled entry within an itinerary day.
type Activity struct {
	Time                string `bson:"time" json:"time"`
	Activity            string `bson:"activity" json:"activity"`
	Duration            string `bson:"duration" json:"duration"`
	Description         string `bson:"description" json:"description"`
	Image               string `bson:"image" json:"image"`
	MapURL              string `bson:"mapUrl" json:"mapUrl"`
	TransportOptions    string `bson:"transportOptions" json:"transportOptions"`
	FoodSuggestions     string `bson:"foodSuggestions" json:"foodSuggestions"`
	SouvenirSuggestions string `bson:"souvenirSuggestions" json:"souvenirSuggestions"`
}

// ItineraryDay is one day of the generated plan.
type ItineraryDay struct {
	DayNumber   int        `bson:"day" json:"day"`
	Title       string     `bson:"title" json:"title"`
	HotelName   string     `bson:"hotel" json:"hotel"`
	Image       string     `bson:"image" json:"image"`
	Description string     `bson:"description" json:"description"`
	Activities  []Activity `bson:"activities" json:"activities"`
}

// PackingCategory groups packing items under a named category.
type PackingCategory struct {
	Name  string   `bson:"name" json:"name"`
	Items []string `bson:"items" json:"items"`
}

// PackingListPayload is the object-shaped model response for packing lists.
// The "categories" key is required; "tips" is optional.
type PackingListPayload struct {
	Categories []PackingCategory `bson:"categories" json:"categories"`
	Tips       string            `bson:"tips,omitempty" json:"tips,omitempty"`
}

// RecommendationSet is the result of one successful prompt -> gateway -> extract
// cycle for a given kind. Exactly one of the kind-specific item fields is set.
// A later set of the same kind supersedes it; sets are never mutated in place.
type RecommendationSet struct {
	Kind           RecommendationKind  `bson:"kind" json:"kind"`
	Places         []Place             `bson:"places,omitempty" json:"places,omitempty"`
	Hotels         []Hotel             `bson:"hotels,omitempty" json:"hotels,omitempty"`
	Itinerary      []ItineraryDay      `bson:"itinerary,omitempty" json:"itinerary,omitempty"`
	Packing        *PackingListPayload `bson:"packing,omitempty" json:"packing,omitempty"`
	SourceSnapshot TripSnapshot        `bson:"sourceSnapshot" json:"sourceSnapshot"`
	FetchedAt      time.Time           `bson:"fetchedAt" json:"fetchedAt"`
}

// PackingList is the durable packing-list document, keyed by
// (userId, destination, startDate).
type PackingList struct {
	ID          string                     `bson:"id" json:"id"`
	UserID      string                     `bson:"userId" json:"userId"`
	Destination string                     `bson:"destination" json:"destination"`
	StartDate   string                     `bson:"startDate" json:"startDate"`
	Categories  []PackingCategory          `bson:"categories" json:"categories"`
	Tips        string                     `bson:"tips,omitempty" json:"tips,omitempty"`
	Packed      map[string]map[string]bool `bson:"packed" json:"packed"` // category -> item -> packed
	CreatedAt   time.Time                  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time                  `bson:"updated_at" json:"updated_at"`
}

// SavedItinerary is a durable, user-named copy of a generated plan.
type SavedItinerary struct {
	ID          string         `bson:"id" json:"id"`
	UserID      string         `bson:"userId" json:"userId"`
	Destination string         `bson:"destination" json:"destination"`
	Date        string         `bson:"date" json:"date"`
	Places      []string       `bson:"places" json:"places"`
	Hotel       string         `bson:"hotel" json:"hotel"`
	Itinerary   []ItineraryDay `bson:"itinerary" json:"itinerary"`
	Timestamp   time.Time      `bson:"timestamp" json:"timestamp"`
}
