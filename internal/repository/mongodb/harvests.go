package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

func (s *Store) InsertHarvest(ctx context.Context, harvest *models.Harvest) error {
	return insertOne(ctx, s.db.Collection(collHarvests), harvest)
}

func (s *Store) GetHarvest(ctx context.Context, id primitive.ObjectID) (*models.Harvest, error) {
	return getByID[models.Harvest](ctx, s.db.Collection(collHarvests), "harvest", id)
}

func (s *Store) ListHarvests(ctx context.Context) ([]models.Harvest, error) {
	return listSorted[models.Harvest](ctx, s.db.Collection(collHarvests), bson.M{}, bson.D{{Key: "saleDate", Value: -1}})
}

func (s *Store) ListHarvestsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.Harvest, error) {
	return listSorted[models.Harvest](ctx, s.db.Collection(collHarvests), bson.M{"tankId": tankID}, bson.D{{Key: "saleDate", Value: -1}})
}

func (s *Store) ListHarvestsBetween(ctx context.Context, from, to time.Time) ([]models.Harvest, error) {
	return listSorted[models.Harvest](ctx, s.db.Collection(collHarvests), betweenFilter("saleDate", from, to), bson.D{{Key: "saleDate", Value: 1}})
}

func (s *Store) UpdateHarvest(ctx context.Context, harvest *models.Harvest) error {
	return replaceByID(ctx, s.db.Collection(collHarvests), "harvest", harvest.ID, harvest)
}

func (s *Store) DeleteHarvest(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collHarvests), "harvest", id)
}
