package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

func (s *Store) InsertTank(ctx context.Context, tank *models.Tank) error {
	return insertOne(ctx, s.db.Collection(collTanks), tank)
}

func (s *Store) GetTank(ctx context.Context, id primitive.ObjectID) (*models.Tank, error) {
	return getByID[models.Tank](ctx, s.db.Collection(collTanks), "tank", id)
}

func (s *Store) ListTanks(ctx context.Context) ([]models.Tank, error) {
	return listSorted[models.Tank](ctx, s.db.Collection(collTanks), bson.M{}, bson.D{{Key: "name", Value: 1}})
}

func (s *Store) UpdateTank(ctx context.Context, tank *models.Tank) error {
	return replaceByID(ctx, s.db.Collection(collTanks), "tank", tank.ID, tank)
}

func (s *Store) DeleteTank(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collTanks), "tank", id)
}
