package husbandry

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// CreateHealthLogInput carries the fields of a health observation or
// treatment. Medicine is optional.
type CreateHealthLogInput struct {
	TankID         primitive.ObjectID
	Disease        string
	MedicineID     *primitive.ObjectID
	MedicineAmount float64
	SurvivalRate   float64
	Notes          string
	RecordedAt     *time.Time
}

func (in CreateHealthLogInput) validate() error {
	switch {
	case in.TankID.IsZero():
		return models.NewValidationError("tankId", "required")
	case in.MedicineAmount < 0:
		return models.NewValidationError("medicineAmount", "must not be negative")
	case in.MedicineID == nil && in.MedicineAmount > 0:
		return models.NewValidationError("medicineId", "required when an amount is given")
	case in.SurvivalRate < 0 || in.SurvivalRate > 100:
		return models.NewValidationError("survivalRate", "must be between 0 and 100")
	}
	return nil
}

// CreateHealthLog records a health event. When a medicine and a positive
// amount are given the medicine's stock is consumed in the same transaction.
func (s *Service) CreateHealthLog(ctx context.Context, in CreateHealthLogInput) (log *models.HealthLog, err error) {
	defer func() { observe("health.create", err) }()

	if err = in.validate(); err != nil {
		return nil, err
	}

	usesMedicine := in.MedicineID != nil && in.MedicineAmount > 0
	scopes := []string{models.TankScope(in.TankID)}
	if usesMedicine {
		scopes = append(scopes, models.StockScope(models.StockKindMedicine, *in.MedicineID))
	}
	release := s.locks.Acquire(scopes...)
	defer release()

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.GetTank(ctx, in.TankID); err != nil {
			return err
		}

		now := time.Now()
		if usesMedicine {
			medicine, err := s.store.GetStockItem(ctx, models.StockKindMedicine, *in.MedicineID)
			if err != nil {
				return err
			}
			if err := medicine.Reserve(in.MedicineAmount); err != nil {
				return err
			}
			medicine.UpdatedAt = now
			if err := s.store.UpdateStockItem(ctx, models.StockKindMedicine, medicine); err != nil {
				return err
			}
		}

		recordedAt := now
		if in.RecordedAt != nil {
			recordedAt = *in.RecordedAt
		}

		log = &models.HealthLog{
			ID:             primitive.NewObjectID(),
			TankID:         in.TankID,
			Disease:        in.Disease,
			MedicineID:     in.MedicineID,
			MedicineAmount: in.MedicineAmount,
			SurvivalRate:   in.SurvivalRate,
			Notes:          in.Notes,
			RecordedAt:     recordedAt,
			CreatedAt:      now,
		}
		return s.store.InsertHealthLog(ctx, log)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("health event logged",
		zap.String("tank", in.TankID.Hex()),
		zap.Bool("medicine", usesMedicine))
	return log, nil
}

// GetHealthLog fetches one health log.
func (s *Service) GetHealthLog(ctx context.Context, id primitive.ObjectID) (*models.HealthLog, error) {
	return s.store.GetHealthLog(ctx, id)
}

// ListHealthLogs lists all health logs, newest first.
func (s *Service) ListHealthLogs(ctx context.Context) ([]models.HealthLog, error) {
	return s.store.ListHealthLogs(ctx)
}

// ListHealthLogsByTank lists a tank's health history.
func (s *Service) ListHealthLogsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.HealthLog, error) {
	return s.store.ListHealthLogsByTank(ctx, tankID)
}

// UpdateHealthLogInput carries the text fields that can be edited in place.
// Medicine and amount are deliberately absent: changing consumption means
// deleting the log and recording a new one, so the ledger stays exact.
type UpdateHealthLogInput struct {
	Disease      string
	SurvivalRate float64
	Notes        string
}

// UpdateHealthLog patches the descriptive fields of a health log.
func (s *Service) UpdateHealthLog(ctx context.Context, id primitive.ObjectID, in UpdateHealthLogInput) (*models.HealthLog, error) {
	if in.SurvivalRate < 0 || in.SurvivalRate > 100 {
		return nil, models.NewValidationError("survivalRate", "must be between 0 and 100")
	}

	log, err := s.store.GetHealthLog(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Disease = in.Disease
	log.SurvivalRate = in.SurvivalRate
	log.Notes = in.Notes

	if err := s.store.UpdateHealthLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// DeleteHealthLog removes a health log, returning any consumed medicine to
// stock in the same transaction.
func (s *Service) DeleteHealthLog(ctx context.Context, id primitive.ObjectID) (err error) {
	defer func() { observe("health.delete", err) }()

	log, err := s.store.GetHealthLog(ctx, id)
	if err != nil {
		return err
	}

	if log.UsedMedicine() {
		release := s.locks.Acquire(models.StockScope(models.StockKindMedicine, *log.MedicineID))
		defer release()
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		log, err := s.store.GetHealthLog(ctx, id)
		if err != nil {
			return err
		}

		if log.UsedMedicine() {
			medicine, err := s.store.GetStockItem(ctx, models.StockKindMedicine, *log.MedicineID)
			switch {
			case models.IsNotFound(err):
				s.logger.Warn("reversal skipped, medicine no longer exists", zap.String("medicine", log.MedicineID.Hex()))
			case err != nil:
				return err
			default:
				if err := medicine.Release(log.MedicineAmount); err != nil {
					return err
				}
				medicine.UpdatedAt = time.Now()
				if err := s.store.UpdateStockItem(ctx, models.StockKindMedicine, medicine); err != nil {
					return err
				}
			}
		}

		return s.store.DeleteHealthLog(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("health log deleted", zap.String("log", id.Hex()))
	return nil
}
