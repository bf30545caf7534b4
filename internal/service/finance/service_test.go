package finance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

type fakeStore struct {
	incomes  map[primitive.ObjectID]models.IncomeLog
	expenses map[primitive.ObjectID]models.OperationalExpense
	readings map[primitive.ObjectID]models.EnvironmentReading
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		incomes:  map[primitive.ObjectID]models.IncomeLog{},
		expenses: map[primitive.ObjectID]models.OperationalExpense{},
		readings: map[primitive.ObjectID]models.EnvironmentReading{},
	}
}

func (f *fakeStore) InsertIncomeLog(_ context.Context, log *models.IncomeLog) error {
	f.incomes[log.ID] = *log
	return nil
}

func (f *fakeStore) GetIncomeLog(_ context.Context, id primitive.ObjectID) (*models.IncomeLog, error) {
	l, ok := f.incomes[id]
	if !ok {
		return nil, models.NewNotFound("income log", id.Hex())
	}
	return &l, nil
}

func (f *fakeStore) ListIncomeLogs(_ context.Context) ([]models.IncomeLog, error) {
	var out []models.IncomeLog
	for _, l := range f.incomes {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) ListIncomeLogsByTank(_ context.Context, tankID primitive.ObjectID) ([]models.IncomeLog, error) {
	var out []models.IncomeLog
	for _, l := range f.incomes {
		if l.TankID != nil && *l.TankID == tankID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateIncomeLog(_ context.Context, log *models.IncomeLog) error {
	if _, ok := f.incomes[log.ID]; !ok {
		return models.NewNotFound("income log", log.ID.Hex())
	}
	f.incomes[log.ID] = *log
	return nil
}

func (f *fakeStore) DeleteIncomeLog(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.incomes[id]; !ok {
		return models.NewNotFound("income log", id.Hex())
	}
	delete(f.incomes, id)
	return nil
}

func (f *fakeStore) InsertExpense(_ context.Context, e *models.OperationalExpense) error {
	f.expenses[e.ID] = *e
	return nil
}

func (f *fakeStore) GetExpense(_ context.Context, id primitive.ObjectID) (*models.OperationalExpense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, models.NewNotFound("expense", id.Hex())
	}
	return &e, nil
}

func (f *fakeStore) ListExpenses(_ context.Context) ([]models.OperationalExpense, error) {
	var out []models.OperationalExpense
	for _, e := range f.expenses {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) ListExpensesByTank(_ context.Context, tankID primitive.ObjectID) ([]models.OperationalExpense, error) {
	var out []models.OperationalExpense
	for _, e := range f.expenses {
		if e.RelatedTankID != nil && *e.RelatedTankID == tankID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateExpense(_ context.Context, e *models.OperationalExpense) error {
	if _, ok := f.expenses[e.ID]; !ok {
		return models.NewNotFound("expense", e.ID.Hex())
	}
	f.expenses[e.ID] = *e
	return nil
}

func (f *fakeStore) DeleteExpense(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.expenses[id]; !ok {
		return models.NewNotFound("expense", id.Hex())
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeStore) InsertEnvironmentReading(_ context.Context, r *models.EnvironmentReading) error {
	f.readings[r.ID] = *r
	return nil
}

func (f *fakeStore) GetEnvironmentReading(_ context.Context, id primitive.ObjectID) (*models.EnvironmentReading, error) {
	r, ok := f.readings[id]
	if !ok {
		return nil, models.NewNotFound("environment reading", id.Hex())
	}
	return &r, nil
}

func (f *fakeStore) ListEnvironmentReadings(_ context.Context) ([]models.EnvironmentReading, error) {
	var out []models.EnvironmentReading
	for _, r := range f.readings {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) ListEnvironmentReadingsByTank(_ context.Context, tankID primitive.ObjectID) ([]models.EnvironmentReading, error) {
	var out []models.EnvironmentReading
	for _, r := range f.readings {
		if r.TankID == tankID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateEnvironmentReading(_ context.Context, r *models.EnvironmentReading) error {
	if _, ok := f.readings[r.ID]; !ok {
		return models.NewNotFound("environment reading", r.ID.Hex())
	}
	f.readings[r.ID] = *r
	return nil
}

func (f *fakeStore) DeleteEnvironmentReading(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.readings[id]; !ok {
		return models.NewNotFound("environment reading", id.Hex())
	}
	delete(f.readings, id)
	return nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, zap.NewNop()), store
}

func TestCreateIncomeLog(t *testing.T) {
	svc, _ := newTestService()
	tankID := primitive.NewObjectID()

	log, err := svc.CreateIncomeLog(context.Background(), IncomeInput{
		TankID:      &tankID,
		Source:      "Bán lươn giống",
		TotalIncome: 2_500_000,
	})
	require.NoError(t, err)
	assert.False(t, log.Date.IsZero())

	byTank, err := svc.ListIncomeLogsByTank(context.Background(), tankID)
	require.NoError(t, err)
	assert.Len(t, byTank, 1)
}

func TestCreateIncomeLogValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name  string
		in    IncomeInput
		field string
	}{
		{"missing source", IncomeInput{TotalIncome: 100}, "source"},
		{"negative amount", IncomeInput{Source: "x", TotalIncome: -1}, "totalIncome"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateIncomeLog(context.Background(), tc.in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateExpenseRejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateExpense(context.Background(), ExpenseInput{
		Name:     "Tiền điện tháng 8",
		Category: "entertainment",
		Amount:   500_000,
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestExpenseLifecycle(t *testing.T) {
	svc, _ := newTestService()

	expense, err := svc.CreateExpense(context.Background(), ExpenseInput{
		Name:     "Tiền điện tháng 8",
		Category: models.ExpenseCategoryElectricity,
		Amount:   500_000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateExpense(context.Background(), expense.ID, ExpenseInput{
		Name:     "Tiền điện tháng 8",
		Category: models.ExpenseCategoryElectricity,
		Amount:   550_000,
	})
	require.NoError(t, err)
	assert.Equal(t, 550_000.0, updated.Amount)

	require.NoError(t, svc.DeleteExpense(context.Background(), expense.ID))
	_, err = svc.GetExpense(context.Background(), expense.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestCreateReadingValidatesPH(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateReading(context.Background(), ReadingInput{
		TankID: primitive.NewObjectID(),
		PH:     15,
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pH", verr.Field)
}

func TestReadingLifecycle(t *testing.T) {
	svc, _ := newTestService()
	tankID := primitive.NewObjectID()

	reading, err := svc.CreateReading(context.Background(), ReadingInput{
		TankID:      tankID,
		PH:          7.2,
		Temperature: 28.5,
		Oxygen:      5.1,
	})
	require.NoError(t, err)

	byTank, err := svc.ListReadingsByTank(context.Background(), tankID)
	require.NoError(t, err)
	require.Len(t, byTank, 1)
	assert.Equal(t, 7.2, byTank[0].PH)

	require.NoError(t, svc.DeleteReading(context.Background(), reading.ID))
}
