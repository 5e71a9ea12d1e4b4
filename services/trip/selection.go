package trip

import "voyago/models"

// Progression gates for itinerary generation: exactly one hotel and at least
// four places must be selected.
const minPlacesForItinerary = 4

// CanProceed reports whether the selection set unlocks itinerary generation.
func CanProceed(sel *models.SelectionSet) bool {
	if sel == nil {
		return false
	}
	return len(sel.SelectedHotels) == 1 && len(sel.SelectedPlaces) >= minPlacesForItinerary
}
