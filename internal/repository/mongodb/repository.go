// Package mongodb implements the persistence store on the MongoDB driver.
// Compound mutations run inside a session transaction so an applier's writes
// commit or roll back together.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// Collection names.
const (
	collTanks       = "tanks"
	collSeedBatches = "seed_batches"
	collFoods       = "foods"
	collMedicines   = "medicines"
	collFeedingLogs = "feeding_logs"
	collHealthLogs  = "health_logs"
	collHarvests    = "harvests"
	collIncomes     = "income_logs"
	collExpenses    = "operational_expenses"
	collEnvironment = "environment_readings"
	collReports     = "daily_reports"
)

// Store is the MongoDB-backed persistence adapter used by every service.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a session transaction. Domain errors
// returned by fn abort the transaction and pass through unchanged; driver
// failures surface as TransientStoreError.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return &models.TransientStoreError{Op: "start session", Cause: err}
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &models.TransientStoreError{Op: op, Cause: err}
}

func getByID[T any](ctx context.Context, coll *mongo.Collection, entity string, id primitive.ObjectID) (*T, error) {
	var out T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewNotFound(entity, id.Hex())
	}
	if err != nil {
		return nil, storeErr("get "+entity, err)
	}
	return &out, nil
}

func listSorted[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, storeErr("list "+coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, storeErr("decode "+coll.Name(), err)
	}
	return out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return storeErr("insert into "+coll.Name(), err)
	}
	return nil
}

func replaceByID(ctx context.Context, coll *mongo.Collection, entity string, id primitive.ObjectID, doc any) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return storeErr("update "+entity, err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFound(entity, id.Hex())
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, entity string, id primitive.ObjectID) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete "+entity, err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFound(entity, id.Hex())
	}
	return nil
}

func betweenFilter(field string, from, to any) bson.M {
	return bson.M{field: bson.M{"$gte": from, "$lt": to}}
}
