package husbandry

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// CreateHarvestInput carries the fields of a sale out of a tank.
type CreateHarvestInput struct {
	TankID         primitive.ObjectID
	BuyerName      string
	BuyerPhone     string
	SaleDate       *time.Time
	Details        []models.HarvestDetail
	TotalWeight    float64
	TotalRevenue   float64
	QuantitySold   int
	IsFinalHarvest bool
	Notes          string
}

func (in CreateHarvestInput) validate() error {
	switch {
	case in.TankID.IsZero():
		return models.NewValidationError("tankId", "required")
	case !in.IsFinalHarvest && in.QuantitySold < 1:
		return models.NewValidationError("quantitySold", "must be at least 1 for a partial harvest")
	case in.QuantitySold < 0:
		return models.NewValidationError("quantitySold", "must not be negative")
	case len(in.Details) == 0 && in.TotalWeight <= 0:
		return models.NewValidationError("totalWeight", "required without detail lines")
	}
	for _, d := range in.Details {
		if d.Weight <= 0 {
			return models.NewValidationError("details", "every line needs a weight greater than zero")
		}
	}
	return nil
}

// CreateHarvest records a sale and moves the tank population in the same
// transaction. A partial harvest subtracts the sold quantity; a final harvest
// closes the batch and resets the tank to empty. Both require a raising tank.
func (s *Service) CreateHarvest(ctx context.Context, in CreateHarvestInput) (harvest *models.Harvest, err error) {
	defer func() { observe("harvest.create", err) }()

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

		if in.IsFinalHarvest {
			if err := tank.ApplyFinalHarvest(); err != nil {
				return err
			}
		} else {
			if err := tank.ApplyPartialHarvest(in.QuantitySold); err != nil {
				return err
			}
		}

		now := time.Now()
		saleDate := now
		if in.SaleDate != nil {
			saleDate = *in.SaleDate
		}
		buyer := in.BuyerName
		if buyer == "" {
			buyer = "Khách lẻ"
		}

		weight, revenue := models.Totalize(in.Details, in.TotalWeight, in.TotalRevenue)

		harvest = &models.Harvest{
			ID:             primitive.NewObjectID(),
			TankID:         in.TankID,
			BuyerName:      buyer,
			BuyerPhone:     in.BuyerPhone,
			SaleDate:       saleDate,
			Details:        in.Details,
			TotalWeight:    weight,
			TotalRevenue:   revenue,
			QuantitySold:   in.QuantitySold,
			IsFinalHarvest: in.IsFinalHarvest,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := s.store.InsertHarvest(ctx, harvest); err != nil {
			return err
		}
		tank.UpdatedAt = now
		return s.store.UpdateTank(ctx, tank)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("harvest recorded",
		zap.String("harvest", harvest.ID.Hex()),
		zap.String("tank", in.TankID.Hex()),
		zap.Bool("final", in.IsFinalHarvest),
		zap.Float64("revenue", harvest.TotalRevenue))
	return harvest, nil
}

// GetHarvest fetches one harvest.
func (s *Service) GetHarvest(ctx context.Context, id primitive.ObjectID) (*models.Harvest, error) {
	return s.store.GetHarvest(ctx, id)
}

// ListHarvests lists all harvests, newest sale first.
func (s *Service) ListHarvests(ctx context.Context) ([]models.Harvest, error) {
	return s.store.ListHarvests(ctx)
}

// ListHarvestsByTank lists a tank's harvest history.
func (s *Service) ListHarvestsByTank(ctx context.Context, tankID primitive.ObjectID) ([]models.Harvest, error) {
	return s.store.ListHarvestsByTank(ctx, tankID)
}

// UpdateHarvestInput carries the editable fields of a harvest record.
type UpdateHarvestInput struct {
	BuyerName      string
	BuyerPhone     string
	SaleDate       *time.Time
	Details        []models.HarvestDetail
	TotalWeight    float64
	TotalRevenue   float64
	QuantitySold   int
	IsFinalHarvest bool
	Notes          string
}

// UpdateHarvest rewrites a harvest record and reconciles the tank. While the
// tank is still raising, the old sold quantity is put back and the new one
// applied; flipping a partial harvest to final closes the tank out. A tank
// that already moved on keeps its state and only the record changes.
func (s *Service) UpdateHarvest(ctx context.Context, id primitive.ObjectID, in UpdateHarvestInput) (harvest *models.Harvest, err error) {
	defer func() { observe("harvest.update", err) }()

	if !in.IsFinalHarvest && in.QuantitySold < 1 {
		return nil, models.NewValidationError("quantitySold", "must be at least 1 for a partial harvest")
	}
	if in.QuantitySold < 0 {
		return nil, models.NewValidationError("quantitySold", "must not be negative")
	}

	existing, err := s.store.GetHarvest(ctx, id)
	if err != nil {
		return nil, err
	}

	release := s.locks.Acquire(models.TankScope(existing.TankID))
	defer release()

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		harvest, err = s.store.GetHarvest(ctx, id)
		if err != nil {
			return err
		}

		now := time.Now()

		tank, err := s.store.GetTank(ctx, harvest.TankID)
		switch {
		case models.IsNotFound(err):
			s.logger.Warn("tank gone, harvest record updated without reconciliation",
				zap.String("tank", harvest.TankID.Hex()))
		case err != nil:
			return err
		case tank.Status == models.TankStatusRaising:
			if !harvest.IsFinalHarvest {
				tank.RestorePartialHarvest(harvest.QuantitySold)
			}
			if in.IsFinalHarvest {
				if err := tank.ApplyFinalHarvest(); err != nil {
					return err
				}
			} else {
				if err := tank.ApplyPartialHarvest(in.QuantitySold); err != nil {
					return err
				}
			}
			tank.UpdatedAt = now
			if err := s.store.UpdateTank(ctx, tank); err != nil {
				return err
			}
		default:
			s.logger.Warn("tank no longer raising, harvest record updated without reconciliation",
				zap.String("tank", tank.ID.Hex()))
		}

		weight, revenue := models.Totalize(in.Details, in.TotalWeight, in.TotalRevenue)

		harvest.BuyerName = in.BuyerName
		if harvest.BuyerName == "" {
			harvest.BuyerName = "Khách lẻ"
		}
		harvest.BuyerPhone = in.BuyerPhone
		if in.SaleDate != nil {
			harvest.SaleDate = *in.SaleDate
		}
		harvest.Details = in.Details
		harvest.TotalWeight = weight
		harvest.TotalRevenue = revenue
		harvest.QuantitySold = in.QuantitySold
		harvest.IsFinalHarvest = in.IsFinalHarvest
		harvest.Notes = in.Notes
		harvest.UpdatedAt = now

		return s.store.UpdateHarvest(ctx, harvest)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("harvest updated", zap.String("harvest", id.Hex()))
	return harvest, nil
}

// DeleteHarvest removes a harvest record. A partial harvest on a tank that is
// still raising puts the sold quantity back; a final harvest is never undone
// because the tank may have been restocked since, so only the record goes.
func (s *Service) DeleteHarvest(ctx context.Context, id primitive.ObjectID) (err error) {
	defer func() { observe("harvest.delete", err) }()

	harvest, err := s.store.GetHarvest(ctx, id)
	if err != nil {
		return err
	}

	release := s.locks.Acquire(models.TankScope(harvest.TankID))
	defer release()

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		harvest, err := s.store.GetHarvest(ctx, id)
		if err != nil {
			return err
		}

		if !harvest.IsFinalHarvest {
			tank, err := s.store.GetTank(ctx, harvest.TankID)
			switch {
			case models.IsNotFound(err):
				s.logger.Warn("restore skipped, tank no longer exists", zap.String("tank", harvest.TankID.Hex()))
			case err != nil:
				return err
			case tank.Status == models.TankStatusRaising:
				tank.RestorePartialHarvest(harvest.QuantitySold)
				tank.UpdatedAt = time.Now()
				if err := s.store.UpdateTank(ctx, tank); err != nil {
					return err
				}
			default:
				s.logger.Warn("restore skipped, tank no longer raising", zap.String("tank", tank.ID.Hex()))
			}
		}

		return s.store.DeleteHarvest(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("harvest deleted", zap.String("harvest", id.Hex()))
	return nil
}
