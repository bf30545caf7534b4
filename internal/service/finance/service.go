// Package finance handles the flat bookkeeping records: income logs,
// operational expenses and environment readings. These are plain records
// with no ledger coupling, so no mutation scopes are involved.
package finance

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// Store is the persistence surface the finance service needs.
type Store interface {
	InsertIncomeLog(ctx context.Context, log *models.IncomeLog) error
	GetIncomeLog(ctx context.Context, id primitive.ObjectID) (*models.IncomeLog, error)
	ListIncomeLogs(ctx context.Context) ([]models.IncomeLog, error)
	ListIncomeLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.IncomeLog, error)
	UpdateIncomeLog(ctx context.Context, log *models.IncomeLog) error
	DeleteIncomeLog(ctx context.Context, id primitive.ObjectID) error

	InsertExpense(ctx context.Context, expense *models.OperationalExpense) error
	GetExpense(ctx context.Context, id primitive.ObjectID) (*models.OperationalExpense, error)
	ListExpenses(ctx context.Context) ([]models.OperationalExpense, error)
	ListExpensesByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.OperationalExpense, error)
	UpdateExpense(ctx context.Context, expense *models.OperationalExpense) error
	DeleteExpense(ctx context.Context, id primitive.ObjectID) error

	InsertEnvironmentReading(ctx context.Context, reading *models.EnvironmentReading) error
	GetEnvironmentReading(ctx context.Context, id primitive.ObjectID) (*models.EnvironmentReading, error)
	ListEnvironmentReadings(ctx context.Context) ([]models.EnvironmentReading, error)
	ListEnvironmentReadingsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.EnvironmentReading, error)
	UpdateEnvironmentReading(ctx context.Context, reading *models.EnvironmentReading) error
	DeleteEnvironmentReading(ctx context.Context, id primitive.ObjectID) error
}

// Service implements bookkeeping record management.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a finance service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// IncomeInput carries the fields of an income record. A nil TankID marks
// farm-wide income.
type IncomeInput struct {
	TankID      *primitive.ObjectID
	Source      string
	TotalIncome float64
	Note        string
	Date        *time.Time
}

func (in IncomeInput) validate() error {
	switch {
	case in.Source == "":
		return models.NewValidationError("source", "required")
	case in.TotalIncome < 0:
		return models.NewValidationError("totalIncome", "must not be negative")
	}
	return nil
}

// CreateIncomeLog records an income entry.
func (s *Service) CreateIncomeLog(ctx context.Context, in IncomeInput) (*models.IncomeLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	log := &models.IncomeLog{
		ID:          primitive.NewObjectID(),
		TankID:      in.TankID,
		Source:      in.Source,
		TotalIncome: in.TotalIncome,
		Note:        in.Note,
		Date:        date,
		CreatedAt:   now,
	}
	if err := s.store.InsertIncomeLog(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info("income recorded", zap.String("id", log.ID.Hex()), zap.Float64("amount", log.TotalIncome))
	return log, nil
}

// GetIncomeLog fetches one income record.
func (s *Service) GetIncomeLog(ctx context.Context, id primitive.ObjectID) (*models.IncomeLog, error) {
	return s.store.GetIncomeLog(ctx, id)
}

// ListIncomeLogs lists all income records, newest first.
func (s *Service) ListIncomeLogs(ctx context.Context) ([]models.IncomeLog, error) {
	return s.store.ListIncomeLogs(ctx)
}

// ListIncomeLogsByTank lists income records tied to a tank.
func (s *Service) ListIncomeLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.IncomeLog, error) {
	return s.store.ListIncomeLogsByTank(ctx, tankID)
}

// UpdateIncomeLog rewrites an income record.
func (s *Service) UpdateIncomeLog(ctx context.Context, id primitive.ObjectID, in IncomeInput) (*models.IncomeLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	log, err := s.store.GetIncomeLog(ctx, id)
	if err != nil {
		return nil, err
	}

	log.TankID = in.TankID
	log.Source = in.Source
	log.TotalIncome = in.TotalIncome
	log.Note = in.Note
	if in.Date != nil {
		log.Date = *in.Date
	}

	if err := s.store.UpdateIncomeLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// DeleteIncomeLog removes an income record.
func (s *Service) DeleteIncomeLog(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteIncomeLog(ctx, id)
}

// ExpenseInput carries the fields of an operational expense.
type ExpenseInput struct {
	Name          string
	Category      string
	Amount        float64
	Date          *time.Time
	Payer         string
	RelatedTankID *primitive.ObjectID
	Note          string
}

func (in ExpenseInput) validate() error {
	switch {
	case in.Name == "":
		return models.NewValidationError("name", "required")
	case !models.ValidExpenseCategory(in.Category):
		return models.NewValidationError("category", "unknown category")
	case in.Amount < 0:
		return models.NewValidationError("amount", "must not be negative")
	}
	return nil
}

// CreateExpense records an operational expense.
func (s *Service) CreateExpense(ctx context.Context, in ExpenseInput) (*models.OperationalExpense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	expense := &models.OperationalExpense{
		ID:            primitive.NewObjectID(),
		Name:          in.Name,
		Category:      in.Category,
		Amount:        in.Amount,
		Date:          date,
		Payer:         in.Payer,
		RelatedTankID: in.RelatedTankID,
		Note:          in.Note,
		CreatedAt:     now,
	}
	if err := s.store.InsertExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("id", expense.ID.Hex()),
		zap.String("category", expense.Category),
		zap.Float64("amount", expense.Amount))
	return expense, nil
}

// GetExpense fetches one expense.
func (s *Service) GetExpense(ctx context.Context, id primitive.ObjectID) (*models.OperationalExpense, error) {
	return s.store.GetExpense(ctx, id)
}

// ListExpenses lists all expenses, newest first.
func (s *Service) ListExpenses(ctx context.Context) ([]models.OperationalExpense, error) {
	return s.store.ListExpenses(ctx)
}

// ListExpensesByTank lists expenses tied to a tank.
func (s *Service) ListExpensesByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.OperationalExpense, error) {
	return s.store.ListExpensesByTank(ctx, tankID)
}

// UpdateExpense rewrites an expense record.
func (s *Service) UpdateExpense(ctx context.Context, id primitive.ObjectID, in ExpenseInput) (*models.OperationalExpense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Name = in.Name
	expense.Category = in.Category
	expense.Amount = in.Amount
	expense.Payer = in.Payer
	expense.RelatedTankID = in.RelatedTankID
	expense.Note = in.Note
	if in.Date != nil {
		expense.Date = *in.Date
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense record.
func (s *Service) DeleteExpense(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteExpense(ctx, id)
}

// ReadingInput carries one water-quality measurement.
type ReadingInput struct {
	TankID      primitive.ObjectID
	PH          float64
	Temperature float64
	Oxygen      float64
	Turbidity   float64
	RecordedAt  *time.Time
}

func (in ReadingInput) validate() error {
	switch {
	case in.TankID.IsZero():
		return models.NewValidationError("tankId", "required")
	case in.PH < 0 || in.PH > 14:
		return models.NewValidationError("pH", "must be between 0 and 14")
	}
	return nil
}

// CreateReading records an environment measurement for a tank.
func (s *Service) CreateReading(ctx context.Context, in ReadingInput) (*models.EnvironmentReading, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	recordedAt := now
	if in.RecordedAt != nil {
		recordedAt = *in.RecordedAt
	}

	reading := &models.EnvironmentReading{
		ID:          primitive.NewObjectID(),
		TankID:      in.TankID,
		PH:          in.PH,
		Temperature: in.Temperature,
		Oxygen:      in.Oxygen,
		Turbidity:   in.Turbidity,
		RecordedAt:  recordedAt,
		CreatedAt:   now,
	}
	if err := s.store.InsertEnvironmentReading(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// GetReading fetches one environment reading.
func (s *Service) GetReading(ctx context.Context, id primitive.ObjectID) (*models.EnvironmentReading, error) {
	return s.store.GetEnvironmentReading(ctx, id)
}

// ListReadings lists all environment readings, newest first.
func (s *Service) ListReadings(ctx context.Context) ([]models.EnvironmentReading, error) {
	return s.store.ListEnvironmentReadings(ctx)
}

// ListReadingsByTank lists a tank's environment history.
func (s *Service) ListReadingsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.EnvironmentReading, error) {
	return s.store.ListEnvironmentReadingsByTank(ctx, tankID)
}

// UpdateReading rewrites an environment reading.
func (s *Service) UpdateReading(ctx context.Context, id primitive.ObjectID, in ReadingInput) (*models.EnvironmentReading, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	reading, err := s.store.GetEnvironmentReading(ctx, id)
	if err != nil {
		return nil, err
	}

	reading.TankID = in.TankID
	reading.PH = in.PH
	reading.Temperature = in.Temperature
	reading.Oxygen = in.Oxygen
	reading.Turbidity = in.Turbidity
	if in.RecordedAt != nil {
		reading.RecordedAt = *in.RecordedAt
	}

	if err := s.store.UpdateEnvironmentReading(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

// DeleteReading removes an environment reading.
func (s *Service) DeleteReading(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteEnvironmentReading(ctx, id)
}
