package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

func (s *Store) InsertSeedBatch(ctx context.Context, batch *models.SeedBatch) error {
	return insertOne(ctx, s.db.Collection(collSeedBatches), batch)
}

func (s *Store) GetSeedBatch(ctx context.Context, id primitive.ObjectID) (*models.SeedBatch, error) {
	return getByID[models.SeedBatch](ctx, s.db.Collection(collSeedBatches), "seed batch", id)
}

func (s *Store) ListSeedBatches(ctx context.Context) ([]models.SeedBatch, error) {
	return listSorted[models.SeedBatch](ctx, s.db.Collection(collSeedBatches), bson.M{}, bson.D{{Key: "importDate", Value: -1}})
}

func (s *Store) UpdateSeedBatch(ctx context.Context, batch *models.SeedBatch) error {
	return replaceByID(ctx, s.db.Collection(collSeedBatches), "seed batch", batch.ID, batch)
}

func (s *Store) DeleteSeedBatch(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collSeedBatches), "seed batch", id)
}
