package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

func (s *Store) InsertIncomeLog(ctx context.Context, log *models.IncomeLog) error {
	return insertOne(ctx, s.db.Collection(collIncomes), log)
}

func (s *Store) GetIncomeLog(ctx context.Context, id primitive.ObjectID) (*models.IncomeLog, error) {
	return getByID[models.IncomeLog](ctx, s.db.Collection(collIncomes), "income log", id)
}

func (s *Store) ListIncomeLogs(ctx context.Context) ([]models.IncomeLog, error) {
	return listSorted[models.IncomeLog](ctx, s.db.Collection(collIncomes), bson.M{}, bson.D{{Key: "date", Value: -1}})
}

func (s *Store) ListIncomeLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.IncomeLog, error) {
	return listSorted[models.IncomeLog](ctx, s.db.Collection(collIncomes), bson.M{"tankId": tankID}, bson.D{{Key: "date", Value: -1}})
}

func (s *Store) ListIncomeLogsBetween(ctx context.Context, from, to time.Time) ([]models.IncomeLog, error) {
	return listSorted[models.IncomeLog](ctx, s.db.Collection(collIncomes), betweenFilter("date", from, to), bson.D{{Key: "date", Value: 1}})
}

func (s *Store) UpdateIncomeLog(ctx context.Context, log *models.IncomeLog) error {
	return replaceByID(ctx, s.db.Collection(collIncomes), "income log", log.ID, log)
}

func (s *Store) DeleteIncomeLog(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collIncomes), "income log", id)
}

func (s *Store) InsertExpense(ctx context.Context, expense *models.OperationalExpense) error {
	return insertOne(ctx, s.db.Collection(collExpenses), expense)
}

func (s *Store) GetExpense(ctx context.Context, id primitive.ObjectID) (*models.OperationalExpense, error) {
	return getByID[models.OperationalExpense](ctx, s.db.Collection(collExpenses), "expense", id)
}

func (s *Store) ListExpenses(ctx context.Context) ([]models.OperationalExpense, error) {
	return listSorted[models.OperationalExpense](ctx, s.db.Collection(collExpenses), bson.M{}, bson.D{{Key: "date", Value: -1}})
}

func (s *Store) ListExpensesByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.OperationalExpense, error) {
	return listSorted[models.OperationalExpense](ctx, s.db.Collection(collExpenses), bson.M{"relatedTankId": tankID}, bson.D{{Key: "date", Value: -1}})
}

func (s *Store) ListExpensesBetween(ctx context.Context, from, to time.Time) ([]models.OperationalExpense, error) {
	return listSorted[models.OperationalExpense](ctx, s.db.Collection(collExpenses), betweenFilter("date", from, to), bson.D{{Key: "date", Value: 1}})
}

func (s *Store) UpdateExpense(ctx context.Context, expense *models.OperationalExpense) error {
	return replaceByID(ctx, s.db.Collection(collExpenses), "expense", expense.ID, expense)
}

func (s *Store) DeleteExpense(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.db.Collection(collExpenses), "expense", id)
}
