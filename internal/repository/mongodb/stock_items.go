package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

func (s *Store) stockColl(kind string) *mongo.Collection {
	if kind == models.StockKindMedicine {
		return s.db.Collection(collMedicines)
	}
	return s.db.Collection(collFoods)
}

func (s *Store) InsertStockItem(ctx context.Context, kind string, item *models.StockItem) error {
	return insertOne(ctx, s.stockColl(kind), item)
}

func (s *Store) GetStockItem(ctx context.Context, kind string, id primitive.ObjectID) (*models.StockItem, error) {
	return getByID[models.StockItem](ctx, s.stockColl(kind), kind, id)
}

func (s *Store) ListStockItems(ctx context.Context, kind string) ([]models.StockItem, error) {
	return listSorted[models.StockItem](ctx, s.stockColl(kind), bson.M{}, bson.D{{Key: "importDate", Value: -1}})
}

func (s *Store) UpdateStockItem(ctx context.Context, kind string, item *models.StockItem) error {
	return replaceByID(ctx, s.stockColl(kind), kind, item.ID, item)
}

func (s *Store) DeleteStockItem(ctx context.Context, kind string, id primitive.ObjectID) error {
	return deleteByID(ctx, s.stockColl(kind), kind, id)
}

// ListLowStock returns items of the given kind with current stock below the
// threshold.
func (s *Store) ListLowStock(ctx context.Context, kind string, threshold float64) ([]models.StockItem, error) {
	filter := bson.M{"currentStock": bson.M{"$lt": threshold}}
	return listSorted[models.StockItem](ctx, s.stockColl(kind), filter, bson.D{{Key: "currentStock", Value: 1}})
}

// ListExpiring returns items of the given kind whose expiry date falls before
// the deadline.
func (s *Store) ListExpiring(ctx context.Context, kind string, deadline time.Time) ([]models.StockItem, error) {
	filter := bson.M{"expiryDate": bson.M{"$ne": nil, "$lte": deadline}}
	return listSorted[models.StockItem](ctx, s.stockColl(kind), filter, bson.D{{Key: "expiryDate", Value: 1}})
}
