package itineraryRepo

import (
	"context"

	"voyago/database"
	"voyago/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SavedItineraryRepository persists generated itineraries a traveler chose to keep.
type SavedItineraryRepository interface {
	Save(ctx context.Context, itinerary models.SavedItinerary) (string, error)
	GetByID(ctx context.Context, userID, id string) (*models.SavedItinerary, error)
	ListByUser(ctx context.Context, userID string) ([]models.SavedItinerary, error)
	DeleteByID(ctx context.Context, userID, id string) error
}

type mongoItineraryRepo struct {
	coll *mongo.Collection
}

// NewMongoItineraryRepo returns a SavedItineraryRepository backed by MongoDB.
func NewMongoItineraryRepo() SavedItineraryRepository {
	db := database.MongoClient.Database("voyago")
	return &mongoItineraryRepo{
		coll: db.Collection("saved_itineraries"),
	}
}
