package recommend

import (
	"encoding/json"

	"voyago/models"
)

// ShouldRefresh decides cache reuse versus regeneration for one kind by
// comparing the current trip state against the snapshot of the last successful
// fetch. A missing snapshot always counts as changed. Elapsed time is never
// considered; only field-level equality.
func ShouldRefresh(kind models.RecommendationKind, current, last *models.TripSnapshot) bool {
	if last == nil {
		return true
	}

	switch kind {
	case models.KindPlaces, models.KindHotels:
		return placesFieldsChanged(&current.Context, &last.Context)

	case models.KindItinerary:
		// Order-sensitive on purpose: the comparison serializes the selected
		// place list, so a pure reorder counts as changed. Kept as-is.
		if current.ItineraryGenerated != last.ItineraryGenerated {
			return true
		}
		return serialize(current.Selections.SelectedPlaces) != serialize(last.Selections.SelectedPlaces)

	case models.KindPacking:
		// Keyed by destination + start date only. Changing budget, companions
		// or transport while those are unchanged reuses the stored list.
		return current.Context.Destination != last.Context.Destination ||
			current.Context.StartDate != last.Context.StartDate

	default:
		return true
	}
}

// placesFieldsChanged compares the trip fields that drive place and hotel
// suggestions. Hotel/place selections are deliberately excluded: changing the
// chosen hotel alone never forces a places refresh.
func placesFieldsChanged(cur, last *models.TripContext) bool {
	return cur.Destination != last.Destination ||
		cur.Companions != last.Companions ||
		cur.TravelMethod != last.TravelMethod ||
		cur.Budget != last.Budget ||
		cur.NumberOfDays != last.NumberOfDays ||
		cur.StartDate != last.StartDate ||
		serialize(cur.MealPreferences) != serialize(last.MealPreferences) ||
		serialize(cur.SelectedCategories) != serialize(last.SelectedCategories) ||
		serialize(cur.SelectedPreferences) != serialize(last.SelectedPreferences)
}

func serialize(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
