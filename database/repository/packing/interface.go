package packingRepo

import (
	"context"

	"voyago/database"
	"voyago/models"
	"voyago/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// PackingListRepository persists packing lists keyed by
// (userId, destination, startDate). The composite key deliberately omits
// budget, companions and travel method: two trips to the same destination on
// the same start date share one list.
type PackingListRepository interface {
	GetByTripKey(ctx context.Context, userID, destination, startDate string) (*models.PackingList, error)
	Upsert(ctx context.Context, list models.PackingList) (*models.PackingList, error)
	SetItemPacked(ctx context.Context, userID, destination, startDate, category, item string, packed bool) error
	DeleteByTripKey(ctx context.Context, userID, destination, startDate string) error
}

type mongoPackingRepo struct {
	coll *mongo.Collection
}

// NewMongoPackingRepo returns a PackingListRepository backed by MongoDB.
func NewMongoPackingRepo() PackingListRepository {
	db := database.MongoClient.Database("voyago")
	repo := &mongoPackingRepo{
		coll: db.Collection("packing_lists"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("packing repo: failed to ensure indexes: %v", err)
	}
	return repo
}
