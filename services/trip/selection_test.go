package trip

import (
	"testing"

	"voyago/models"
)

func TestCanProceed(t *testing.T) {
	places := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "place"
		}
		return out
	}

	cases := []struct {
		name string
		sel  *models.SelectionSet
		want bool
	}{
		{"nil selections", nil, false},
		{"empty", &models.SelectionSet{}, false},
		{"one hotel four places", &models.SelectionSet{SelectedHotels: []string{"h"}, SelectedPlaces: places(4)}, true},
		{"one hotel three places", &models.SelectionSet{SelectedHotels: []string{"h"}, SelectedPlaces: places(3)}, false},
		{"no hotel five places", &models.SelectionSet{SelectedPlaces: places(5)}, false},
		{"two hotels four places", &models.SelectionSet{SelectedHotels: []string{"a", "b"}, SelectedPlaces: places(4)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanProceed(c.sel); got != c.want {
				t.Errorf("CanProceed = %v, want %v", got, c.want)
			}
		})
	}
}
