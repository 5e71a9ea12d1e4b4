package recommend

import (
	"strings"
	"testing"

	"voyago/models"
)

func TestBuildPromptDeterministic(t *testing.T) {
	snap := baseSnapshot()
	a := BuildPrompt(models.KindPlaces, snap, "")
	b := BuildPrompt(models.KindPlaces, snap, "")
	if a != b {
		t.Error("same snapshot must yield the same prompt")
	}
}

func TestBuildPromptJSONOnlyInstruction(t *testing.T) {
	snap := baseSnapshot()
	for _, kind := range []models.RecommendationKind{models.KindPlaces, models.KindHotels, models.KindItinerary, models.KindPacking} {
		prompt := BuildPrompt(kind, snap, "")
		if !strings.Contains(prompt, "ONLY a JSON") {
			t.Errorf("kind %s: prompt lacks the JSON-only instruction", kind)
		}
	}
}

func TestBuildPlacesPromptFields(t *testing.T) {
	prompt := BuildPrompt(models.KindPlaces, baseSnapshot(), "")
	for _, field := range []string{"name", "description", "timing", "ticket", "who_can_visit", "image_url"} {
		if !strings.Contains(prompt, `"`+field+`"`) {
			t.Errorf("places prompt missing field %q", field)
		}
	}
	for _, s := range []string{"Goa", "2024-06-01", "beaches"} {
		if !strings.Contains(prompt, s) {
			t.Errorf("places prompt missing trip detail %q", s)
		}
	}
}

func TestBuildHotelsPromptFields(t *testing.T) {
	prompt := BuildPrompt(models.KindHotels, baseSnapshot(), "")
	for _, field := range []string{"name", "room_type", "price_per_person", "food", "companion_type", "budget", "image_url"} {
		if !strings.Contains(prompt, `"`+field+`"`) {
			t.Errorf("hotels prompt missing field %q", field)
		}
	}
}

func TestBuildItineraryPromptIncludesSelections(t *testing.T) {
	snap := baseSnapshot()
	snap.Context.PlacesPerDay = 2
	prompt := BuildPrompt(models.KindItinerary, snap, "")

	for _, s := range []string{"Baga Beach", "Fort Aguada", "Taj Holiday Village", "2 places per day"} {
		if !strings.Contains(prompt, s) {
			t.Errorf("itinerary prompt missing %q", s)
		}
	}
	for _, field := range []string{"day", "title", "hotel", "activities", "mapUrl", "transportOptions", "foodSuggestions", "souvenirSuggestions"} {
		if !strings.Contains(prompt, `"`+field+`"`) {
			t.Errorf("itinerary prompt missing field %q", field)
		}
	}
}

func TestBuildPackingPromptShape(t *testing.T) {
	prompt := BuildPrompt(models.KindPacking, baseSnapshot(), "")
	for _, field := range []string{"categories", "items", "tips"} {
		if !strings.Contains(prompt, `"`+field+`"`) {
			t.Errorf("packing prompt missing field %q", field)
		}
	}
}

func TestBuildPromptAppendsExtra(t *testing.T) {
	extra := "Exclude: Baga Beach, Fort Aguada."
	prompt := BuildPrompt(models.KindPlaces, baseSnapshot(), extra)
	if !strings.HasSuffix(prompt, extra) {
		t.Error("extra instruction must be appended at the end")
	}
}
