package trip

import "voyago/models"

// wizard step numbers
const (
	StepDestination = 1
	StepDates       = 2
	StepTransport   = 3
	StepBudget      = 4
	StepCompanions  = 5
	StepMeals       = 6
	StepCategories  = 7
)

// stepRequirements maps each wizard step to the trip fields it needs before
// navigation may proceed. Explicit table instead of view-layer conditionals.
var stepRequirements = map[int][]string{
	StepDestination: {"destination"},
	StepDates:       {"startDate", "numberOfDays"},
	StepTransport:   {"travelMethod"},
	StepBudget:      {"budget"},
	StepCompanions:  {"companions"},
	StepMeals:       {"mealPreferences"},
	StepCategories:  {"selectedCategories"},
}

// ValidateStepFields checks the context against the requirement table for one
// step. Missing fields come back inside a *ValidationError; an unknown step
// has no requirements and always passes.
func ValidateStepFields(step int, tc *models.TripContext) error {
	required, ok := stepRequirements[step]
	if !ok {
		return nil
	}

	var missing []string
	for _, field := range required {
		if !fieldPresent(field, tc) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Step: step, Missing: missing}
	}
	return nil
}

func fieldPresent(field string, tc *models.TripContext) bool {
	switch field {
	case "destination":
		return tc.Destination != ""
	case "startDate":
		return tc.StartDate != ""
	case "endDate":
		return tc.EndDate != ""
	case "numberOfDays":
		return tc.NumberOfDays >= 1
	case "travelMethod":
		return tc.TravelMethod != ""
	case "budget":
		return tc.Budget != ""
	case "companions":
		return tc.Companions != ""
	case "mealPreferences":
		return len(tc.MealPreferences) > 0
	case "selectedCategories":
		return len(tc.SelectedCategories) > 0
	default:
		return true
	}
}
