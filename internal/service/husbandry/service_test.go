package husbandry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/pkg/keylock"
)

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewService(store, keylock.New(), zap.NewNop()), store
}

func seedTank(t *testing.T, store *fakeStore) *models.Tank {
	t.Helper()
	tank := models.NewTank("Bể 1", 20, "Khu A")
	require.NoError(t, store.InsertTank(context.Background(), tank))
	return tank
}

func seedRaisingTank(t *testing.T, svc *Service, store *fakeStore, quantity int) *models.Tank {
	t.Helper()
	tank := seedTank(t, store)
	_, err := svc.CreateSeedBatch(context.Background(), CreateSeedBatchInput{
		TankID:   tank.ID,
		Name:     "Giống tháng 9",
		Quantity: quantity,
	})
	require.NoError(t, err)
	tank, err = store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	return tank
}

func seedFood(t *testing.T, store *fakeStore, stock, price float64) *models.StockItem {
	t.Helper()
	now := time.Now()
	food := &models.StockItem{
		ID:             primitive.NewObjectID(),
		Name:           "Cám 40 đạm",
		Unit:           "kg",
		QuantityImport: stock,
		CurrentStock:   stock,
		PricePerUnit:   price,
		ImportDate:     now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, store.InsertStockItem(context.Background(), models.StockKindFood, food))
	return food
}

func seedMedicine(t *testing.T, store *fakeStore, stock float64) *models.StockItem {
	t.Helper()
	now := time.Now()
	med := &models.StockItem{
		ID:             primitive.NewObjectID(),
		Name:           "Vitamin C",
		Unit:           "g",
		QuantityImport: stock,
		CurrentStock:   stock,
		ImportDate:     now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, store.InsertStockItem(context.Background(), models.StockKindMedicine, med))
	return med
}

func TestCreateSeedBatchStocksEmptyTank(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)

	batch, err := svc.CreateSeedBatch(context.Background(), CreateSeedBatchInput{
		TankID:    tank.ID,
		Name:      "Giống tháng 9",
		Quantity:  500,
		TotalCost: 1_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, batch.PricePerUnit)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusRaising, got.Status)
	require.NotNil(t, got.CurrentBatchID)
	assert.Equal(t, batch.ID, *got.CurrentBatchID)
	assert.Equal(t, 500, got.CurrentQuantity)
	assert.Equal(t, 500, got.StartQuantity)
	assert.NotNil(t, got.StartDate)
}

func TestCreateSeedBatchRejectsRaisingTank(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	_, err := svc.CreateSeedBatch(context.Background(), CreateSeedBatchInput{
		TankID:   tank.ID,
		Name:     "Giống tháng 10",
		Quantity: 300,
	})

	var invalid *models.InvalidStateError
	require.ErrorAs(t, err, &invalid)

	batches, err := store.ListSeedBatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, batches, 1)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.CurrentQuantity)
	assert.Equal(t, *tank.CurrentBatchID, *got.CurrentBatchID)
}

func TestDeleteSeedBatchResetsCurrentTank(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	require.NoError(t, svc.DeleteSeedBatch(context.Background(), *tank.CurrentBatchID))

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusEmpty, got.Status)
	assert.Nil(t, got.CurrentBatchID)
	assert.Zero(t, got.CurrentQuantity)
}

func TestDeleteSeedBatchLeavesRestockedTankAlone(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)
	oldBatchID := *tank.CurrentBatchID

	// Final harvest empties the tank, then a new batch goes in.
	_, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:         tank.ID,
		TotalWeight:    80,
		TotalRevenue:   8_000_000,
		IsFinalHarvest: true,
	})
	require.NoError(t, err)
	newBatch, err := svc.CreateSeedBatch(context.Background(), CreateSeedBatchInput{
		TankID:   tank.ID,
		Name:     "Giống mới",
		Quantity: 400,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSeedBatch(context.Background(), oldBatchID))

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusRaising, got.Status)
	assert.Equal(t, newBatch.ID, *got.CurrentBatchID)
	assert.Equal(t, 400, got.CurrentQuantity)
}

func TestCreateFeedingLogConsumesStockAndFreezesCost(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	food := seedFood(t, store, 10, 25_000)

	log, err := svc.CreateFeedingLog(context.Background(), CreateFeedingLogInput{
		TankID:   tank.ID,
		FoodID:   food.ID,
		Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 100_000.0, log.EstimatedCost)

	got, err := store.GetStockItem(context.Background(), models.StockKindFood, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.CurrentStock)

	// A later price change never touches the recorded cost.
	got.PricePerUnit = 99_000
	require.NoError(t, store.UpdateStockItem(context.Background(), models.StockKindFood, got))
	logged, err := store.GetFeedingLog(context.Background(), log.ID)
	require.NoError(t, err)
	assert.Equal(t, 100_000.0, logged.EstimatedCost)
}

func TestCreateFeedingLogRejectsInsufficientStock(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	food := seedFood(t, store, 3, 25_000)

	_, err := svc.CreateFeedingLog(context.Background(), CreateFeedingLogInput{
		TankID:   tank.ID,
		FoodID:   food.ID,
		Quantity: 5,
	})

	var ins *models.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 3.0, ins.Available)
	assert.Equal(t, 5.0, ins.Requested)

	got, err := store.GetStockItem(context.Background(), models.StockKindFood, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.CurrentStock)

	logs, err := store.ListFeedingLogs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestDeleteFeedingLogRestoresStock(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	food := seedFood(t, store, 10, 25_000)

	log, err := svc.CreateFeedingLog(context.Background(), CreateFeedingLogInput{
		TankID:   tank.ID,
		FoodID:   food.ID,
		Quantity: 4,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFeedingLog(context.Background(), log.ID))

	got, err := store.GetStockItem(context.Background(), models.StockKindFood, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.CurrentStock)
}

func TestDeleteFeedingLogSkipsRestoreWhenFoodGone(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	food := seedFood(t, store, 10, 25_000)

	log, err := svc.CreateFeedingLog(context.Background(), CreateFeedingLogInput{
		TankID:   tank.ID,
		FoodID:   food.ID,
		Quantity: 4,
	})
	require.NoError(t, err)
	require.NoError(t, store.DeleteStockItem(context.Background(), models.StockKindFood, food.ID))

	require.NoError(t, svc.DeleteFeedingLog(context.Background(), log.ID))

	logs, err := store.ListFeedingLogs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestConcurrentFeedingsOnlyOneSucceeds(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	food := seedFood(t, store, 5, 10_000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateFeedingLog(context.Background(), CreateFeedingLogInput{
				TankID:   tank.ID,
				FoodID:   food.ID,
				Quantity: 4,
			})
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		var ins *models.InsufficientStockError
		require.ErrorAs(t, err, &ins)
		rejected++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	got, err := store.GetStockItem(context.Background(), models.StockKindFood, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.CurrentStock)

	logs, err := store.ListFeedingLogs(context.Background())
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestCreateHealthLogConsumesMedicine(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	med := seedMedicine(t, store, 50)

	log, err := svc.CreateHealthLog(context.Background(), CreateHealthLogInput{
		TankID:         tank.ID,
		Disease:        "Nấm thủy mi",
		MedicineID:     &med.ID,
		MedicineAmount: 20,
		SurvivalRate:   95,
	})
	require.NoError(t, err)
	assert.True(t, log.UsedMedicine())

	got, err := store.GetStockItem(context.Background(), models.StockKindMedicine, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.CurrentStock)
}

func TestCreateHealthLogWithoutMedicine(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)

	log, err := svc.CreateHealthLog(context.Background(), CreateHealthLogInput{
		TankID:       tank.ID,
		Disease:      "Bỏ ăn",
		SurvivalRate: 100,
	})
	require.NoError(t, err)
	assert.False(t, log.UsedMedicine())
}

func TestCreateHealthLogRejectsInsufficientMedicine(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	med := seedMedicine(t, store, 10)

	_, err := svc.CreateHealthLog(context.Background(), CreateHealthLogInput{
		TankID:         tank.ID,
		MedicineID:     &med.ID,
		MedicineAmount: 15,
	})

	var ins *models.InsufficientStockError
	require.ErrorAs(t, err, &ins)

	got, err := store.GetStockItem(context.Background(), models.StockKindMedicine, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.CurrentStock)

	logs, err := store.ListHealthLogs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestDeleteHealthLogRestoresMedicine(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)
	med := seedMedicine(t, store, 50)

	log, err := svc.CreateHealthLog(context.Background(), CreateHealthLogInput{
		TankID:         tank.ID,
		MedicineID:     &med.ID,
		MedicineAmount: 20,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHealthLog(context.Background(), log.ID))

	got, err := store.GetStockItem(context.Background(), models.StockKindMedicine, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.CurrentStock)
}

func TestCreateHarvestPartialReducesPopulation(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	harvest, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID: tank.ID,
		Details: []models.HarvestDetail{
			{Grade: "Loại 1", Weight: 30, Price: 120_000},
			{Grade: "Loại 2", Weight: 20, Price: 90_000},
		},
		QuantitySold: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, harvest.TotalWeight)
	assert.Equal(t, 5_400_000.0, harvest.TotalRevenue)
	assert.Equal(t, "Khách lẻ", harvest.BuyerName)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusRaising, got.Status)
	assert.Equal(t, 300, got.CurrentQuantity)
}

func TestCreateHarvestRejectsZeroQuantityPartial(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	_, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:      tank.ID,
		TotalWeight: 30,
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantitySold", verr.Field)

	harvests, err := store.ListHarvests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, harvests)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.CurrentQuantity)
}

func TestUpdateHarvestRejectsZeroQuantityPartial(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	harvest, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:       tank.ID,
		TotalWeight:  30,
		QuantitySold: 100,
	})
	require.NoError(t, err)

	_, err = svc.UpdateHarvest(context.Background(), harvest.ID, UpdateHarvestInput{
		TotalWeight: 30,
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantitySold", verr.Field)

	unchanged, err := store.GetHarvest(context.Background(), harvest.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, unchanged.QuantitySold)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 400, got.CurrentQuantity)
}

func TestCreateHarvestPartialFloorsAtZero(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 100)

	_, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:       tank.ID,
		TotalWeight:  40,
		QuantitySold: 150,
	})
	require.NoError(t, err)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentQuantity)
	assert.Equal(t, models.TankStatusRaising, got.Status)
}

func TestCreateHarvestFinalEmptiesTank(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	_, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:         tank.ID,
		TotalWeight:    80,
		TotalRevenue:   9_600_000,
		IsFinalHarvest: true,
	})
	require.NoError(t, err)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusEmpty, got.Status)
	assert.Nil(t, got.CurrentBatchID)
	assert.Zero(t, got.CurrentQuantity)
}

func TestCreateHarvestRejectsEmptyTank(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedTank(t, store)

	_, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:         tank.ID,
		TotalWeight:    80,
		IsFinalHarvest: true,
	})

	var invalid *models.InvalidStateError
	require.ErrorAs(t, err, &invalid)

	harvests, err := store.ListHarvests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, harvests)
}

func TestUpdateHarvestReappliesQuantity(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	harvest, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:       tank.ID,
		TotalWeight:  30,
		QuantitySold: 100,
	})
	require.NoError(t, err)

	_, err = svc.UpdateHarvest(context.Background(), harvest.ID, UpdateHarvestInput{
		TotalWeight:  45,
		QuantitySold: 150,
	})
	require.NoError(t, err)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 350, got.CurrentQuantity)
}

func TestUpdateHarvestFlipToFinalEmptiesTank(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	harvest, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:       tank.ID,
		TotalWeight:  30,
		QuantitySold: 100,
	})
	require.NoError(t, err)

	_, err = svc.UpdateHarvest(context.Background(), harvest.ID, UpdateHarvestInput{
		TotalWeight:    80,
		QuantitySold:   400,
		IsFinalHarvest: true,
	})
	require.NoError(t, err)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusEmpty, got.Status)
}

func TestDeleteHarvestPartialRestoresPopulation(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	harvest, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:       tank.ID,
		TotalWeight:  30,
		QuantitySold: 200,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHarvest(context.Background(), harvest.ID))

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.CurrentQuantity)
}

func TestDeleteHarvestFinalLeavesTankAlone(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	harvest, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:         tank.ID,
		TotalWeight:    80,
		IsFinalHarvest: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHarvest(context.Background(), harvest.ID))

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusEmpty, got.Status)
	assert.Nil(t, got.CurrentBatchID)
}

func TestDeleteHarvestSkipsRestoreAfterRestock(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	partial, err := svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:       tank.ID,
		TotalWeight:  30,
		QuantitySold: 200,
	})
	require.NoError(t, err)
	_, err = svc.CreateHarvest(context.Background(), CreateHarvestInput{
		TankID:         tank.ID,
		TotalWeight:    50,
		IsFinalHarvest: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHarvest(context.Background(), partial.ID))

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusEmpty, got.Status)
	assert.Zero(t, got.CurrentQuantity)
}

func TestUpdateTankKeepsRaisingState(t *testing.T) {
	svc, store := newTestService(t)
	tank := seedRaisingTank(t, svc, store, 500)

	updated, err := svc.UpdateTank(context.Background(), tank.ID, CreateTankInput{
		Name: "Bể 1 cải tạo",
		Size: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bể 1 cải tạo", updated.Name)

	got, err := store.GetTank(context.Background(), tank.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TankStatusRaising, got.Status)
	assert.Equal(t, 500, got.CurrentQuantity)
}

func TestCreateTankValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateTank(context.Background(), CreateTankInput{Size: 10})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = svc.CreateTank(context.Background(), CreateTankInput{Name: "Bể 2"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "size", verr.Field)
}
