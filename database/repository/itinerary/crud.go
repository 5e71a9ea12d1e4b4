package itineraryRepo

import (
	"context"
	"errors"
	"time"

	"voyago/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no saved itinerary matches the given id.
var ErrNotFound = errors.New("saved itinerary not found")

// Save inserts a new saved itinerary and returns its opaque ID.
func (r *mongoItineraryRepo) Save(ctx context.Context, itinerary models.SavedItinerary) (string, error) {
	if itinerary.ID == "" {
		itinerary.ID = uuid.New().String()
	}
	if itinerary.Timestamp.IsZero() {
		itinerary.Timestamp = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, itinerary)
	if err != nil {
		return "", err
	}
	return itinerary.ID, nil
}

// GetByID returns one saved itinerary owned by the given user.
func (r *mongoItineraryRepo) GetByID(ctx context.Context, userID, id string) (*models.SavedItinerary, error) {
	var itinerary models.SavedItinerary
	err := r.coll.FindOne(ctx, bson.M{"id": id, "userId": userID}).Decode(&itinerary)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// ListByUser fetches all itineraries saved by a user, newest first.
func (r *mongoItineraryRepo) ListByUser(ctx context.Context, userID string) ([]models.SavedItinerary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var itineraries []models.SavedItinerary
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}

// DeleteByID removes a saved itinerary owned by the given user.
func (r *mongoItineraryRepo) DeleteByID(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
