package recommend

import (
	"fmt"
	"strings"

	"voyago/models"
)

// BuildPrompt renders the trip snapshot into the instruction for one
// recommendation kind. It is a pure function: same snapshot, same prompt.
// The JSON-only instruction and the exact field list per kind are the wire
// contract with the response extractor, not decoration.
func BuildPrompt(kind models.RecommendationKind, snap *models.TripSnapshot, extra string) string {
	var prompt string
	switch kind {
	case models.KindPlaces:
		prompt = buildPlacesPrompt(snap)
	case models.KindHotels:
		prompt = buildHotelsPrompt(snap)
	case models.KindItinerary:
		prompt = buildItineraryPrompt(snap)
	case models.KindPacking:
		prompt = buildPackingPrompt(snap)
	}
	if extra != "" {
		prompt += "\n" + extra
	}
	return prompt
}

func tripSummary(tc *models.TripContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I am planning a trip to %s from %s to %s (%d days).",
		tc.Destination, tc.StartDate, tc.EndDate, tc.NumberOfDays)
	if tc.TravelMethod != "" {
		fmt.Fprintf(&sb, " I will travel around by %s.", tc.TravelMethod)
	}
	if tc.Budget != "" {
		fmt.Fprintf(&sb, " My budget is %s.", tc.Budget)
	}
	if tc.Companions != "" {
		fmt.Fprintf(&sb, " I am travelling %s.", tc.Companions)
	}
	if len(tc.MealPreferences) > 0 {
		fmt.Fprintf(&sb, " My food preferences are: %s.", strings.Join(tc.MealPreferences, ", "))
	}
	return sb.String()
}

func buildPlacesPrompt(snap *models.TripSnapshot) string {
	tc := &snap.Context
	var sb strings.Builder
	sb.WriteString(tripSummary(tc))
	if len(tc.SelectedCategories) > 0 {
		fmt.Fprintf(&sb, " I am interested in these categories: %s.", strings.Join(tc.SelectedCategories, ", "))
	}
	if len(tc.SelectedPreferences) > 0 {
		fmt.Fprintf(&sb, " Within those, I prefer: %s.", strings.Join(tc.SelectedPreferences, ", "))
	}
	sb.WriteString(`
Suggest places to visit that match this trip.
Respond with ONLY a JSON array and no other text or commentary. Each element must have exactly these fields:
[
  {
    "name": "place name",
    "description": "2-3 sentence description",
    "timing": "opening hours or best time to visit",
    "ticket": "ticket price or 'Free'",
    "who_can_visit": "who the place suits",
    "image_url": "a representative image URL"
  }
]`)
	return sb.String()
}

func buildHotelsPrompt(snap *models.TripSnapshot) string {
	tc := &snap.Context
	var sb strings.Builder
	sb.WriteString(tripSummary(tc))
	sb.WriteString(`
Suggest hotels in the destination that suit this trip.
Respond with ONLY a JSON array and no other text or commentary. Each element must have exactly these fields:
[
  {
    "name": "hotel name",
    "room_type": "suggested room type",
    "price_per_person": "approximate price per person per night",
    "food": "food type served",
    "companion_type": "who the hotel suits",
    "budget": "low, medium or high",
    "image_url": "a representative image URL"
  }
]`)
	return sb.String()
}

func buildItineraryPrompt(snap *models.TripSnapshot) string {
	tc := &snap.Context
	var sb strings.Builder
	sb.WriteString(tripSummary(tc))
	if len(snap.Selections.SelectedPlaces) > 0 {
		fmt.Fprintf(&sb, " I have chosen to visit these places: %s.", strings.Join(snap.Selections.SelectedPlaces, ", "))
	}
	if len(snap.Selections.SelectedHotels) > 0 {
		fmt.Fprintf(&sb, " I will stay at %s.", snap.Selections.SelectedHotels[0])
	}
	if tc.PlacesPerDay > 0 {
		fmt.Fprintf(&sb, " Plan around %d places per day.", tc.PlacesPerDay)
	}
	sb.WriteString(`
Build a day-by-day itinerary covering every chosen place across the trip dates.
Respond with ONLY a JSON array and no other text or commentary. Each element is one day with exactly these fields:
[
  {
    "day": 1,
    "title": "short title for the day",
    "hotel": "hotel name for the night",
    "image": "a representative image URL",
    "description": "short summary of the day",
    "activities": [
      {
        "time": "e.g. 09:00 AM",
        "activity": "what to do",
        "duration": "e.g. 2 hours",
        "description": "details of the activity",
        "image": "a representative image URL",
        "mapUrl": "a maps link for the spot",
        "transportOptions": "how to get there",
        "foodSuggestions": "what to eat nearby",
        "souvenirSuggestions": "what to buy nearby"
      }
    ]
  }
]`)
	return sb.String()
}

func buildPackingPrompt(snap *models.TripSnapshot) string {
	tc := &snap.Context
	var sb strings.Builder
	sb.WriteString(tripSummary(tc))
	sb.WriteString(`
Suggest a packing list for this trip, grouped into categories.
Respond with ONLY a JSON object and no other text or commentary, with exactly this shape:
{
  "categories": [
    {
      "name": "category name",
      "items": ["item 1", "item 2"]
    }
  ],
  "tips": "optional short packing tips"
}`)
	return sb.String()
}
