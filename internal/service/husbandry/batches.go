package husbandry

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// CreateSeedBatchInput carries the fields of a stocking event.
type CreateSeedBatchInput struct {
	TankID       primitive.ObjectID
	Name         string
	Quantity     int
	SizeGrade    float64
	PricePerUnit float64
	TotalCost    float64
	Source       string
	ImportDate   *time.Time
	Notes        string
}

func (in CreateSeedBatchInput) validate() error {
	switch {
	case in.TankID.IsZero():
		return models.NewValidationError("tankId", "required")
	case in.Name == "":
		return models.NewValidationError("name", "required")
	case in.Quantity < 1:
		return models.NewValidationError("quantity", "must be at least 1")
	}
	return nil
}

// CreateSeedBatch stocks an empty tank: the batch is persisted and the tank
// moves to raising in the same transaction. Stocking a raising tank fails
// with InvalidState and leaves both entities untouched.
func (s *Service) CreateSeedBatch(ctx context.Context, in CreateSeedBatchInput) (batch *models.SeedBatch, err error) {
	defer func() { observe("batch.create", err) }()

	if err = in.validate(); err != nil {
		return nil, err
	}

	release := s.locks.Acquire(models.TankScope(in.TankID))
	defer release()

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		tank, err := s.store.GetTank(ctx, in.TankID)
		if err != nil {
			return err
		}

		now := time.Now()
		importDate := now
		if in.ImportDate != nil {
			importDate = *in.ImportDate
		}

		// Derive the unit price when the form only carried a total.
		pricePerUnit := in.PricePerUnit
		if pricePerUnit == 0 && in.Quantity > 0 {
			pricePerUnit = in.TotalCost / float64(in.Quantity)
		}
		totalCost := in.TotalCost
		if totalCost == 0 {
			totalCost = pricePerUnit * float64(in.Quantity)
		}

		batch = &models.SeedBatch{
			ID:           primitive.NewObjectID(),
			Name:         in.Name,
			Quantity:     in.Quantity,
			SizeGrade:    in.SizeGrade,
			PricePerUnit: pricePerUnit,
			TotalCost:    totalCost,
			Source:       in.Source,
			TankID:       in.TankID,
			ImportDate:   importDate,
			Notes:        in.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := tank.ApplyStocking(batch.ID, in.Quantity, importDate); err != nil {
			return err
		}
		if err := s.store.InsertSeedBatch(ctx, batch); err != nil {
			return err
		}
		tank.UpdatedAt = now
		return s.store.UpdateTank(ctx, tank)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("seed batch stocked",
		zap.String("batch", batch.ID.Hex()),
		zap.String("tank", in.TankID.Hex()),
		zap.Int("quantity", in.Quantity))
	return batch, nil
}

// GetSeedBatch fetches one batch.
func (s *Service) GetSeedBatch(ctx context.Context, id primitive.ObjectID) (*models.SeedBatch, error) {
	return s.store.GetSeedBatch(ctx, id)
}

// ListSeedBatches lists all batches, newest import first.
func (s *Service) ListSeedBatches(ctx context.Context) ([]models.SeedBatch, error) {
	return s.store.ListSeedBatches(ctx)
}

// UpdateSeedBatchInput carries batch metadata that can change after
// stocking. Quantity and tank are fixed; correcting those means deleting the
// batch and stocking again.
type UpdateSeedBatchInput struct {
	Name         string
	SizeGrade    float64
	PricePerUnit float64
	TotalCost    float64
	Source       string
	Notes        string
}

// UpdateSeedBatch patches batch metadata.
func (s *Service) UpdateSeedBatch(ctx context.Context, id primitive.ObjectID, in UpdateSeedBatchInput) (*models.SeedBatch, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("name", "required")
	}

	batch, err := s.store.GetSeedBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	batch.Name = in.Name
	batch.SizeGrade = in.SizeGrade
	batch.PricePerUnit = in.PricePerUnit
	batch.TotalCost = in.TotalCost
	batch.Source = in.Source
	batch.Notes = in.Notes
	batch.UpdatedAt = time.Now()

	if err := s.store.UpdateSeedBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// DeleteSeedBatch removes a batch. When the owning tank still points at it,
// the tank resets to empty in the same transaction; a tank that has since
// been restocked with a newer batch is left alone.
func (s *Service) DeleteSeedBatch(ctx context.Context, id primitive.ObjectID) (err error) {
	defer func() { observe("batch.delete", err) }()

	batch, err := s.store.GetSeedBatch(ctx, id)
	if err != nil {
		return err
	}

	release := s.locks.Acquire(models.TankScope(batch.TankID))
	defer release()

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		batch, err := s.store.GetSeedBatch(ctx, id)
		if err != nil {
			return err
		}

		tank, err := s.store.GetTank(ctx, batch.TankID)
		switch {
		case models.IsNotFound(err):
			// Tank already removed; just drop the batch record.
		case err != nil:
			return err
		case tank.ReleaseBatch(batch.ID):
			tank.UpdatedAt = time.Now()
			if err := s.store.UpdateTank(ctx, tank); err != nil {
				return err
			}
		}

		return s.store.DeleteSeedBatch(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("seed batch deleted", zap.String("batch", id.Hex()))
	return nil
}
