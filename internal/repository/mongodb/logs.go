package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

func (s *Store) InsertFeedingLog(ctx context.Context, log *models.FeedingLog) error {
	return insertOne(ctx, s.db.Collection(collFeedingLogs), log)
}

func (s *Store) GetFeedingLog(ctx context.Context, id primitive.ObjectID) (*models.FeedingLog, error) {
	return getByID[models.FeedingLog](ctx, s.db.Collection(collFeedingLogs), "feeding log", id)
}

func (s *Store) ListFeedingLogs(ctx context.Context) ([]models.FeedingLog, error) {
	return listSorted[models.FeedingLog](ctx, s.db.Collection(collFeedingLogs), bson.M{}, bson.D{{Key: "feedingTime", Value: -1}})
}

func (s *Store) ListFeedingLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.FeedingLog, error) {
	return listSorted[models.FeedingLog](ctx, s.db.Collection(collFeedingLogs), bson.M{"tankId": tankID}, bson.D{{Key: "feedingTime", Value: -1}})
}

func (s *Store) ListFeedingLogsBetween(ctx context.Context, from, to time.Time) ([]models.FeedingLog, error) {
	return listSorted[models.FeedingLog](ctx, s.db.Collection(collFeedingLogs), betweenFilter("feedingTime", from, to), bson.D{{Key: "feedingTime", Value: 1}})
}

func (s *Store) DeleteFeedingLog(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collFeedingLogs), "feeding log", id)
}

func (s *Store) InsertHealthLog(ctx context.Context, log *models.HealthLog) error {
	return insertOne(ctx, s.db.Collection(collHealthLogs), log)
}

func (s *Store) GetHealthLog(ctx context.Context, id primitive.ObjectID) (*models.HealthLog, error) {
	return getByID[models.HealthLog](ctx, s.db.Collection(collHealthLogs), "health log", id)
}

func (s *Store) ListHealthLogs(ctx context.Context) ([]models.HealthLog, error) {
	return listSorted[models.HealthLog](ctx, s.db.Collection(collHealthLogs), bson.M{}, bson.D{{Key: "recordedAt", Value: -1}})
}

func (s *Store) ListHealthLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.HealthLog, error) {
	return listSorted[models.HealthLog](ctx, s.db.Collection(collHealthLogs), bson.M{"tankId": tankID}, bson.D{{Key: "recordedAt", Value: -1}})
}

func (s *Store) ListHealthLogsBetween(ctx context.Context, from, to time.Time) ([]models.HealthLog, error) {
	return listSorted[models.HealthLog](ctx, s.db.Collection(collHealthLogs), betweenFilter("recordedAt", from, to), bson.D{{Key: "recordedAt", Value: 1}})
}

func (s *Store) UpdateHealthLog(ctx context.Context, log *models.HealthLog) error {
	return replaceByID(ctx, s.db.Collection(collHealthLogs), "health log", log.ID, log)
}

func (s *Store) DeleteHealthLog(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collHealthLogs), "health log", id)
}
