// Package husbandry implements the tank lifecycle and the event appliers
// that mutate tank state and stock ledgers together: stocking, feeding,
// treatment, harvests and their reversals.
//
// Every applier follows the same discipline: validate input, acquire the
// mutation scope over the entities it touches, then run precondition checks
// and writes inside one store transaction. A failed precondition leaves every
// referenced entity unchanged and creates no record.
package husbandry

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/internal/metrics"
	"github.com/thuanlv/eelfarm/pkg/keylock"
)

// Store is the persistence surface the husbandry appliers need.
type Store interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	InsertTank(ctx context.Context, tank *models.Tank) error
	GetTank(ctx context.Context, id primitive.ObjectID) (*models.Tank, error)
	ListTanks(ctx context.Context) ([]models.Tank, error)
	UpdateTank(ctx context.Context, tank *models.Tank) error
	DeleteTank(ctx context.Context, id primitive.ObjectID) error

	InsertSeedBatch(ctx context.Context, batch *models.SeedBatch) error
	GetSeedBatch(ctx context.Context, id primitive.ObjectID) (*models.SeedBatch, error)
	ListSeedBatches(ctx context.Context) ([]models.SeedBatch, error)
	UpdateSeedBatch(ctx context.Context, batch *models.SeedBatch) error
	DeleteSeedBatch(ctx context.Context, id primitive.ObjectID) error

	GetStockItem(ctx context.Context, kind string, id primitive.ObjectID) (*models.StockItem, error)
	UpdateStockItem(ctx context.Context, kind string, item *models.StockItem) error

	InsertFeedingLog(ctx context.Context, log *models.FeedingLog) error
	GetFeedingLog(ctx context.Context, id primitive.ObjectID) (*models.FeedingLog, error)
	ListFeedingLogs(ctx context.Context) ([]models.FeedingLog, error)
	ListFeedingLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.FeedingLog, error)
	DeleteFeedingLog(ctx context.Context, id primitive.ObjectID) error

	InsertHealthLog(ctx context.Context, log *models.HealthLog) error
	GetHealthLog(ctx context.Context, id primitive.ObjectID) (*models.HealthLog, error)
	ListHealthLogs(ctx context.Context) ([]models.HealthLog, error)
	ListHealthLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.HealthLog, error)
	UpdateHealthLog(ctx context.Context, log *models.HealthLog) error
	DeleteHealthLog(ctx context.Context, id primitive.ObjectID) error

	InsertHarvest(ctx context.Context, harvest *models.Harvest) error
	GetHarvest(ctx context.Context, id primitive.ObjectID) (*models.Harvest, error)
	ListHarvests(ctx context.Context) ([]models.Harvest, error)
	ListHarvestsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.Harvest, error)
	UpdateHarvest(ctx context.Context, harvest *models.Harvest) error
	DeleteHarvest(ctx context.Context, id primitive.ObjectID) error
}

// Service coordinates tank lifecycle and consumption events.
type Service struct {
	store  Store
	locks  *keylock.KeyLock
	logger *zap.Logger
}

// NewService wires a husbandry service. The lock table must be shared with
// every other service that mutates tanks or stock items.
func NewService(store Store, locks *keylock.KeyLock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, locks: locks, logger: logger}
}

func observe(operation string, err error) {
	metrics.ObserveOperation(operation, err)

	var ins *models.InsufficientStockError
	if errors.As(err, &ins) {
		metrics.ObserveStockRejection()
	}
}

// CreateTankInput carries the infrastructure fields of a tank.
type CreateTankInput struct {
	Name     string
	Size     float64
	Location string
}

func (in CreateTankInput) validate() error {
	switch {
	case in.Name == "":
		return models.NewValidationError("name", "required")
	case in.Size <= 0:
		return models.NewValidationError("size", "must be greater than zero")
	}
	return nil
}

// CreateTank registers a new tank in the empty state.
func (s *Service) CreateTank(ctx context.Context, in CreateTankInput) (*models.Tank, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	tank := models.NewTank(in.Name, in.Size, in.Location)
	if err := s.store.InsertTank(ctx, tank); err != nil {
		return nil, err
	}

	s.logger.Info("tank created", zap.String("id", tank.ID.Hex()), zap.String("name", tank.Name))
	return tank, nil
}

// GetTank fetches one tank.
func (s *Service) GetTank(ctx context.Context, id primitive.ObjectID) (*models.Tank, error) {
	return s.store.GetTank(ctx, id)
}

// ListTanks lists all tanks.
func (s *Service) ListTanks(ctx context.Context) ([]models.Tank, error) {
	return s.store.ListTanks(ctx)
}

// UpdateTank changes infrastructure fields only. Status, batch reference and
// quantities are owned by the appliers and cannot be patched directly.
func (s *Service) UpdateTank(ctx context.Context, id primitive.ObjectID, in CreateTankInput) (*models.Tank, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	release := s.locks.Acquire(models.TankScope(id))
	defer release()

	var tank *models.Tank
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		tank, err = s.store.GetTank(ctx, id)
		if err != nil {
			return err
		}
		tank.Name = in.Name
		tank.Size = in.Size
		tank.Location = in.Location
		tank.UpdatedAt = time.Now()
		return s.store.UpdateTank(ctx, tank)
	})
	if err != nil {
		return nil, err
	}
	return tank, nil
}

// DeleteTank removes a tank.
func (s *Service) DeleteTank(ctx context.Context, id primitive.ObjectID) error {
	release := s.locks.Acquire(models.TankScope(id))
	defer release()

	return s.store.DeleteTank(ctx, id)
}
