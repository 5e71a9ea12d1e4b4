package trip

import (
	"reflect"
	"testing"

	"voyago/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestApplyDerivesEndDateFromDays(t *testing.T) {
	tc := &models.TripContext{}
	patch := ContextPatch{
		Destination:  strPtr("Goa"),
		StartDate:    strPtr("2024-06-01"),
		NumberOfDays: intPtr(3),
	}

	changed, err := patch.Apply(tc)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tc.EndDate != "2024-06-03" {
		t.Errorf("endDate = %q, want 2024-06-03", tc.EndDate)
	}
	want := []string{"destination", "startDate", "numberOfDays", "endDate"}
	if !reflect.DeepEqual(changed, want) {
		t.Errorf("changed = %v, want %v", changed, want)
	}
}

func TestApplyDerivesDaysFromEndDate(t *testing.T) {
	tc := &models.TripContext{StartDate: "2024-06-01", NumberOfDays: 3, EndDate: "2024-06-03"}
	patch := ContextPatch{EndDate: strPtr("2024-06-05")}

	if _, err := patch.Apply(tc); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tc.NumberOfDays != 5 {
		t.Errorf("numberOfDays = %d, want 5", tc.NumberOfDays)
	}
}

// The same-day round trip is one day, not zero.
func TestApplySingleDayTrip(t *testing.T) {
	tc := &models.TripContext{StartDate: "2024-06-01"}
	patch := ContextPatch{EndDate: strPtr("2024-06-01")}

	if _, err := patch.Apply(tc); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tc.NumberOfDays != 1 {
		t.Errorf("numberOfDays = %d, want 1", tc.NumberOfDays)
	}
}

// Later input wins: shrinking the day count after an end date was set must
// pull the end date in, not resurrect the old one.
func TestApplyLaterInputWins(t *testing.T) {
	tc := &models.TripContext{StartDate: "2024-06-01", EndDate: "2024-06-05", NumberOfDays: 5}
	patch := ContextPatch{NumberOfDays: intPtr(2)}

	if _, err := patch.Apply(tc); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tc.EndDate != "2024-06-02" {
		t.Errorf("endDate = %q, want 2024-06-02", tc.EndDate)
	}
}

func TestApplyRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		tc    models.TripContext
		patch ContextPatch
	}{
		{"zero days", models.TripContext{}, ContextPatch{NumberOfDays: intPtr(0)}},
		{"negative days", models.TripContext{}, ContextPatch{NumberOfDays: intPtr(-2)}},
		{
			"end before start",
			models.TripContext{StartDate: "2024-06-10"},
			ContextPatch{EndDate: strPtr("2024-06-01")},
		},
		{
			"unparseable end date",
			models.TripContext{StartDate: "2024-06-01"},
			ContextPatch{EndDate: strPtr("June 3rd")},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tc := c.tc
			if _, err := c.patch.Apply(&tc); err == nil {
				t.Errorf("Apply succeeded, want error")
			}
		})
	}
}

func TestNormalizeDefaultsMealPreferences(t *testing.T) {
	tc := &models.TripContext{Destination: "Goa"}
	Normalize(tc)
	if !reflect.DeepEqual(tc.MealPreferences, []string{models.MealPreferenceMixed}) {
		t.Errorf("mealPreferences = %v, want [mixed]", tc.MealPreferences)
	}

	tc2 := &models.TripContext{MealPreferences: []string{"veg"}}
	Normalize(tc2)
	if !reflect.DeepEqual(tc2.MealPreferences, []string{"veg"}) {
		t.Errorf("mealPreferences = %v, explicit choice must survive", tc2.MealPreferences)
	}
}
