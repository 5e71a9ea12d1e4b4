package packingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voyago/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no packing list exists for the composite key.
var ErrNotFound = errors.New("packing list not found")

func tripKeyFilter(userID, destination, startDate string) bson.M {
	return bson.M{
		"userId":      userID,
		"destination": destination,
		"startDate":   startDate,
	}
}

// GetByTripKey fetches the packing list stored for the composite trip key.
func (r *mongoPackingRepo) GetByTripKey(ctx context.Context, userID, destination, startDate string) (*models.PackingList, error) {
	var list models.PackingList
	err := r.coll.FindOne(ctx, tripKeyFilter(userID, destination, startDate)).Decode(&list)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Upsert stores the packing list, replacing any existing document under the
// same composite key; the stored document is returned.
func (r *mongoPackingRepo) Upsert(ctx context.Context, list models.PackingList) (*models.PackingList, error) {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	now := time.Now()
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now
	}
	list.UpdatedAt = now
	if list.Packed == nil {
		list.Packed = map[string]map[string]bool{}
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, tripKeyFilter(list.UserID, list.Destination, list.StartDate), list, opts)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// SetItemPacked flips the packed flag for a single item.
func (r *mongoPackingRepo) SetItemPacked(ctx context.Context, userID, destination, startDate, category, item string, packed bool) error {
	field := fmt.Sprintf("packed.%s.%s", category, item)
	update := bson.M{
		"$set": bson.M{field: packed, "updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, tripKeyFilter(userID, destination, startDate), update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByTripKey removes the packing list for the composite key.
func (r *mongoPackingRepo) DeleteByTripKey(ctx context.Context, userID, destination, startDate string) error {
	res, err := r.coll.DeleteOne(ctx, tripKeyFilter(userID, destination, startDate))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
