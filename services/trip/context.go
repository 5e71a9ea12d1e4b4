package trip

import (
	"fmt"
	"time"

	"voyago/models"
)

const dateLayout = "2006-01-02"

// ContextPatch is a partial trip context update. Nil fields are untouched.
type ContextPatch struct {
	Destination         *string                     `json:"destination,omitempty"`
	StartDate           *string                     `json:"startDate,omitempty"`
	EndDate             *string                     `json:"endDate,omitempty"`
	NumberOfDays        *int                        `json:"numberOfDays,omitempty"`
	TravelMethod        *string                     `json:"travelMethod,omitempty"`
	Budget              *string                     `json:"budget,omitempty"`
	Companions          *string                     `json:"companions,omitempty"`
	MealPreferences     *[]string                   `json:"mealPreferences,omitempty"`
	SelectedCategories  *[]string                   `json:"selectedCategories,omitempty"`
	SelectedPreferences *[]string                   `json:"selectedPreferences,omitempty"`
	PlacesPerDay        *int                        `json:"placesPerDay,omitempty"`
	PackingCategories   *[]string                   `json:"packingCategories,omitempty"`
	PackingItems        *map[string]map[string]bool `json:"packingItems,omitempty"`
}

// Apply merges the patch into the context and returns the mutated field names.
// Date derivation runs after the merge: whichever of the date inputs arrived in
// this patch wins, and the dependent field is overwritten.
func (p ContextPatch) Apply(tc *models.TripContext) ([]string, error) {
	var changed []string

	if p.Destination != nil {
		tc.Destination = *p.Destination
		changed = append(changed, "destination")
	}
	if p.StartDate != nil {
		tc.StartDate = *p.StartDate
		changed = append(changed, "startDate")
	}
	if p.EndDate != nil {
		tc.EndDate = *p.EndDate
		changed = append(changed, "endDate")
	}
	if p.NumberOfDays != nil {
		if *p.NumberOfDays < 1 {
			return nil, fmt.Errorf("numberOfDays must be at least 1, got %d", *p.NumberOfDays)
		}
		tc.NumberOfDays = *p.NumberOfDays
		changed = append(changed, "numberOfDays")
	}
	if p.TravelMethod != nil {
		tc.TravelMethod = *p.TravelMethod
		changed = append(changed, "travelMethod")
	}
	if p.Budget != nil {
		tc.Budget = *p.Budget
		changed = append(changed, "budget")
	}
	if p.Companions != nil {
		tc.Companions = *p.Companions
		changed = append(changed, "companions")
	}
	if p.MealPreferences != nil {
		tc.MealPreferences = *p.MealPreferences
		changed = append(changed, "mealPreferences")
	}
	if p.SelectedCategories != nil {
		tc.SelectedCategories = *p.SelectedCategories
		changed = append(changed, "selectedCategories")
	}
	if p.SelectedPreferences != nil {
		tc.SelectedPreferences = *p.SelectedPreferences
		changed = append(changed, "selectedPreferences")
	}
	if p.PlacesPerDay != nil {
		tc.PlacesPerDay = *p.PlacesPerDay
		changed = append(changed, "placesPerDay")
	}
	if p.PackingCategories != nil {
		tc.PackingCategories = *p.PackingCategories
		changed = append(changed, "packingCategories")
	}
	if p.PackingItems != nil {
		tc.PackingItems = *p.PackingItems
		changed = append(changed, "packingItems")
	}

	derived, err := deriveDates(tc, p)
	if err != nil {
		return nil, err
	}
	changed = append(changed, derived...)

	return changed, nil
}

// deriveDates keeps startDate, endDate and numberOfDays consistent:
// endDate = startDate + numberOfDays - 1. The field edited last wins and the
// derived field is overwritten, never the reverse.
func deriveDates(tc *models.TripContext, p ContextPatch) ([]string, error) {
	switch {
	case p.EndDate != nil && tc.StartDate != "":
		start, err := time.Parse(dateLayout, tc.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", tc.StartDate, err)
		}
		end, err := time.Parse(dateLayout, tc.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", tc.EndDate, err)
		}
		days := int(end.Sub(start).Hours()/24) + 1
		if days < 1 {
			return nil, fmt.Errorf("endDate %q precedes startDate %q", tc.EndDate, tc.StartDate)
		}
		tc.NumberOfDays = days
		return []string{"numberOfDays"}, nil

	case (p.StartDate != nil || p.NumberOfDays != nil) && tc.StartDate != "" && tc.NumberOfDays >= 1:
		start, err := time.Parse(dateLayout, tc.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", tc.StartDate, err)
		}
		tc.EndDate = start.AddDate(0, 0, tc.NumberOfDays-1).Format(dateLayout)
		return []string{"endDate"}, nil
	}
	return nil, nil
}

// Normalize applies fetch-time defaults: a traveler who picked no meal
// preference gets {mixed}. It runs on snapshot copies, never on the stored
// context, so the meals step can still report the field missing.
func Normalize(tc *models.TripContext) {
	if len(tc.MealPreferences) == 0 {
		tc.MealPreferences = []string{models.MealPreferenceMixed}
	}
}
