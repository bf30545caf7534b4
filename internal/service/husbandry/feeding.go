package husbandry

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// CreateFeedingLogInput carries the fields of a feeding event.
type CreateFeedingLogInput struct {
	TankID      primitive.ObjectID
	FoodID      primitive.ObjectID
	Quantity    float64
	FeedingTime *time.Time
	Notes       string
}

func (in CreateFeedingLogInput) validate() error {
	switch {
	case in.TankID.IsZero():
		return models.NewValidationError("tankId", "required")
	case in.FoodID.IsZero():
		return models.NewValidationError("foodId", "required")
	case in.Quantity <= 0:
		return models.NewValidationError("quantity", "must be greater than zero")
	}
	return nil
}

// CreateFeedingLog records a feeding and consumes the food's stock. The cost
// is frozen at quantity times the food's current unit price; later price
// edits never touch existing logs. Insufficient stock rejects the whole
// event with nothing persisted.
func (s *Service) CreateFeedingLog(ctx context.Context, in CreateFeedingLogInput) (log *models.FeedingLog, err error) {
	defer func() { observe("feeding.create", err) }()

	if err = in.validate(); err != nil {
		return nil, err
	}

	release := s.locks.Acquire(models.TankScope(in.TankID), models.StockScope(models.StockKindFood, in.FoodID))
	defer release()

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.GetTank(ctx, in.TankID); err != nil {
			return err
		}

		food, err := s.store.GetStockItem(ctx, models.StockKindFood, in.FoodID)
		if err != nil {
			return err
		}
		if err := food.Reserve(in.Quantity); err != nil {
			return err
		}

		now := time.Now()
		feedingTime := now
		if in.FeedingTime != nil {
			feedingTime = *in.FeedingTime
		}

		log = &models.FeedingLog{
			ID:            primitive.NewObjectID(),
			TankID:        in.TankID,
			FoodID:        in.FoodID,
			Quantity:      in.Quantity,
			EstimatedCost: in.Quantity * food.PricePerUnit,
			FeedingTime:   feedingTime,
			Notes:         in.Notes,
			CreatedAt:     now,
		}

		food.UpdatedAt = now
		if err := s.store.UpdateStockItem(ctx, models.StockKindFood, food); err != nil {
			return err
		}
		return s.store.InsertFeedingLog(ctx, log)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("feeding logged",
		zap.String("tank", in.TankID.Hex()),
		zap.String("food", in.FoodID.Hex()),
		zap.Float64("quantity", in.Quantity))
	return log, nil
}

// ListFeedingLogs lists all feeding logs, newest first.
func (s *Service) ListFeedingLogs(ctx context.Context) ([]models.FeedingLog, error) {
	return s.store.ListFeedingLogs(ctx)
}

// ListFeedingLogsByTank lists a tank's feeding history.
func (s *Service) ListFeedingLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.FeedingLog, error) {
	return s.store.ListFeedingLogsByTank(ctx, tankID)
}

// DeleteFeedingLog removes a feeding log and restores the consumed quantity
// to the food's stock. A food that was itself deleted in the meantime skips
// the restore, mirroring the record-keeping-first behavior of the ledger.
func (s *Service) DeleteFeedingLog(ctx context.Context, id primitive.ObjectID) (err error) {
	defer func() { observe("feeding.delete", err) }()

	log, err := s.store.GetFeedingLog(ctx, id)
	if err != nil {
		return err
	}

	release := s.locks.Acquire(models.StockScope(models.StockKindFood, log.FoodID))
	defer release()

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		log, err := s.store.GetFeedingLog(ctx, id)
		if err != nil {
			return err
		}

		food, err := s.store.GetStockItem(ctx, models.StockKindFood, log.FoodID)
		switch {
		case models.IsNotFound(err):
			s.logger.Warn("reversal skipped, food no longer exists", zap.String("food", log.FoodID.Hex()))
		case err != nil:
			return err
		default:
			if err := food.Release(log.Quantity); err != nil {
				return err
			}
			food.UpdatedAt = time.Now()
			if err := s.store.UpdateStockItem(ctx, models.StockKindFood, food); err != nil {
				return err
			}
		}

		return s.store.DeleteFeedingLog(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("feeding log deleted", zap.String("log", id.Hex()))
	return nil
}
