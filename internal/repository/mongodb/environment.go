package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

func (s *Store) InsertEnvironmentReading(ctx context.Context, reading *models.EnvironmentReading) error {
	return insertOne(ctx, s.db.Collection(collEnvironment), reading)
}

func (s *Store) GetEnvironmentReading(ctx context.Context, id primitive.ObjectID) (*models.EnvironmentReading, error) {
	return getByID[models.EnvironmentReading](ctx, s.db.Collection(collEnvironment), "environment reading", id)
}

func (s *Store) ListEnvironmentReadings(ctx context.Context) ([]models.EnvironmentReading, error) {
	return listSorted[models.EnvironmentReading](ctx, s.db.Collection(collEnvironment), bson.M{}, bson.D{{Key: "recordedAt", Value: -1}})
}

func (s *Store) ListEnvironmentReadingsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.EnvironmentReading, error) {
	return listSorted[models.EnvironmentReading](ctx, s.db.Collection(collEnvironment), bson.M{"tankId": tankID}, bson.D{{Key: "recordedAt", Value: -1}})
}

func (s *Store) UpdateEnvironmentReading(ctx context.Context, reading *models.EnvironmentReading) error {
	return replaceByID(ctx, s.db.Collection(collEnvironment), "environment reading", reading.ID, reading)
}

func (s *Store) DeleteEnvironmentReading(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collEnvironment), "environment reading", id)
}

// SaveDailyReport persists a generated daily report document.
func (s *Store) SaveDailyReport(ctx context.Context, report *models.DailyReport) error {
	return insertOne(ctx, s.db.Collection(collReports), report)
}
