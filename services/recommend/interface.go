package recommend

import (
	"context"

	"voyago/models"
)

// RecommendationService sequences prompt building, the gateway round trip and
// response extraction for a requested kind, applying the staleness verdict.
type RecommendationService interface {
	// Fetch returns the cached set when the trip state is unchanged since the
	// last successful fetch of the kind, otherwise regenerates. extra carries
	// an optional follow-up instruction (e.g. excluding already shown names)
	// and always forces regeneration. userID may be empty for anonymous
	// sessions; it only gates durable packing-list persistence.
	Fetch(ctx context.Context, sessionID, userID string, kind models.RecommendationKind, extra string) (*models.RecommendationSet, error)
}

// UserMessage maps an orchestration failure to the message shown to the
// traveler. Raw model output never reaches the user.
func UserMessage(kind models.RecommendationKind, err error) string {
	switch err.(type) {
	case *GatewayError:
		return "Failed to fetch, please try again."
	case *ExtractionError:
		switch kind {
		case models.KindPlaces:
			return "Could not parse place recommendations. Please try again."
		case models.KindHotels:
			return "Could not parse hotel suggestions. Please try again."
		case models.KindItinerary:
			return "Could not parse the generated itinerary. Please try again."
		case models.KindPacking:
			return "Could not parse the packing list. Please try again."
		}
	}
	return "Something went wrong. Please try again."
}
