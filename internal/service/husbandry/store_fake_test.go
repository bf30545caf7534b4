package husbandry

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// fakeStore is an in-memory Store. WithTransaction snapshots all collections
// before running the callback and restores them when it fails, so appliers
// can be tested for all-or-nothing behavior without a database.
//
// The restore is global, not per-entity: a failing transaction rolls back
// every collection, including writes committed concurrently on disjoint
// entities between snapshot and restore. Concurrent tests must therefore
// only race operations that share a lock key, where the keylock already
// serializes them.
type fakeStore struct {
	mu        sync.Mutex
	tanks     map[primitive.ObjectID]models.Tank
	batches   map[primitive.ObjectID]models.SeedBatch
	foods     map[primitive.ObjectID]models.StockItem
	medicines map[primitive.ObjectID]models.StockItem
	feedings  map[primitive.ObjectID]models.FeedingLog
	healths   map[primitive.ObjectID]models.HealthLog
	harvests  map[primitive.ObjectID]models.Harvest
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tanks:     map[primitive.ObjectID]models.Tank{},
		batches:   map[primitive.ObjectID]models.SeedBatch{},
		foods:     map[primitive.ObjectID]models.StockItem{},
		medicines: map[primitive.ObjectID]models.StockItem{},
		feedings:  map[primitive.ObjectID]models.FeedingLog{},
		healths:   map[primitive.ObjectID]models.HealthLog{},
		harvests:  map[primitive.ObjectID]models.Harvest{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (f *fakeStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	tanks := copyMap(f.tanks)
	batches := copyMap(f.batches)
	foods := copyMap(f.foods)
	medicines := copyMap(f.medicines)
	feedings := copyMap(f.feedings)
	healths := copyMap(f.healths)
	harvests := copyMap(f.harvests)
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.tanks = tanks
		f.batches = batches
		f.foods = foods
		f.medicines = medicines
		f.feedings = feedings
		f.healths = healths
		f.harvests = harvests
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeStore) stockMap(kind string) map[primitive.ObjectID]models.StockItem {
	if kind == models.StockKindMedicine {
		return f.medicines
	}
	return f.foods
}

func (f *fakeStore) InsertTank(_ context.Context, tank *models.Tank) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tanks[tank.ID] = *tank
	return nil
}

func (f *fakeStore) GetTank(_ context.Context, id primitive.ObjectID) (*models.Tank, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tanks[id]
	if !ok {
		return nil, models.NewNotFound("tank", id.Hex())
	}
	return &t, nil
}

func (f *fakeStore) ListTanks(_ context.Context) ([]models.Tank, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Tank, 0, len(f.tanks))
	for _, t := range f.tanks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) UpdateTank(_ context.Context, tank *models.Tank) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tanks[tank.ID]; !ok {
		return models.NewNotFound("tank", tank.ID.Hex())
	}
	f.tanks[tank.ID] = *tank
	return nil
}

func (f *fakeStore) DeleteTank(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tanks[id]; !ok {
		return models.NewNotFound("tank", id.Hex())
	}
	delete(f.tanks, id)
	return nil
}

func (f *fakeStore) InsertSeedBatch(_ context.Context, batch *models.SeedBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches[batch.ID] = *batch
	return nil
}

func (f *fakeStore) GetSeedBatch(_ context.Context, id primitive.ObjectID) (*models.SeedBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.batches[id]
	if !ok {
		return nil, models.NewNotFound("seed batch", id.Hex())
	}
	return &b, nil
}

func (f *fakeStore) ListSeedBatches(_ context.Context) ([]models.SeedBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SeedBatch, 0, len(f.batches))
	for _, b := range f.batches {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeStore) UpdateSeedBatch(_ context.Context, batch *models.SeedBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.batches[batch.ID]; !ok {
		return models.NewNotFound("seed batch", batch.ID.Hex())
	}
	f.batches[batch.ID] = *batch
	return nil
}

func (f *fakeStore) DeleteSeedBatch(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.batches[id]; !ok {
		return models.NewNotFound("seed batch", id.Hex())
	}
	delete(f.batches, id)
	return nil
}

func (f *fakeStore) InsertStockItem(_ context.Context, kind string, item *models.StockItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockMap(kind)[item.ID] = *item
	return nil
}

func (f *fakeStore) GetStockItem(_ context.Context, kind string, id primitive.ObjectID) (*models.StockItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.stockMap(kind)[id]
	if !ok {
		return nil, models.NewNotFound(kind, id.Hex())
	}
	return &item, nil
}

func (f *fakeStore) UpdateStockItem(_ context.Context, kind string, item *models.StockItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.stockMap(kind)
	if _, ok := m[item.ID]; !ok {
		return models.NewNotFound(kind, item.ID.Hex())
	}
	m[item.ID] = *item
	return nil
}

func (f *fakeStore) DeleteStockItem(_ context.Context, kind string, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.stockMap(kind)
	if _, ok := m[id]; !ok {
		return models.NewNotFound(kind, id.Hex())
	}
	delete(m, id)
	return nil
}

func (f *fakeStore) InsertFeedingLog(_ context.Context, log *models.FeedingLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedings[log.ID] = *log
	return nil
}

func (f *fakeStore) GetFeedingLog(_ context.Context, id primitive.ObjectID) (*models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.feedings[id]
	if !ok {
		return nil, models.NewNotFound("feeding log", id.Hex())
	}
	return &l, nil
}

func (f *fakeStore) ListFeedingLogs(_ context.Context) ([]models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.FeedingLog, 0, len(f.feedings))
	for _, l := range f.feedings {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) ListFeedingLogsByTank(_ context.Context, tankID primitive.ObjectID) ([]models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FeedingLog
	for _, l := range f.feedings {
		if l.TankID == tankID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteFeedingLog(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.feedings[id]; !ok {
		return models.NewNotFound("feeding log", id.Hex())
	}
	delete(f.feedings, id)
	return nil
}

func (f *fakeStore) InsertHealthLog(_ context.Context, log *models.HealthLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healths[log.ID] = *log
	return nil
}

func (f *fakeStore) GetHealthLog(_ context.Context, id primitive.ObjectID) (*models.HealthLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.healths[id]
	if !ok {
		return nil, models.NewNotFound("health log", id.Hex())
	}
	return &l, nil
}

func (f *fakeStore) ListHealthLogs(_ context.Context) ([]models.HealthLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.HealthLog, 0, len(f.healths))
	for _, l := range f.healths {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) ListHealthLogsByTank(_ context.Context, tankID primitive.ObjectID) ([]models.HealthLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.HealthLog
	for _, l := range f.healths {
		if l.TankID == tankID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateHealthLog(_ context.Context, log *models.HealthLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.healths[log.ID]; !ok {
		return models.NewNotFound("health log", log.ID.Hex())
	}
	f.healths[log.ID] = *log
	return nil
}

func (f *fakeStore) DeleteHealthLog(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.healths[id]; !ok {
		return models.NewNotFound("health log", id.Hex())
	}
	delete(f.healths, id)
	return nil
}

func (f *fakeStore) InsertHarvest(_ context.Context, harvest *models.Harvest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.harvests[harvest.ID] = *harvest
	return nil
}

func (f *fakeStore) GetHarvest(_ context.Context, id primitive.ObjectID) (*models.Harvest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.harvests[id]
	if !ok {
		return nil, models.NewNotFound("harvest", id.Hex())
	}
	return &h, nil
}

func (f *fakeStore) ListHarvests(_ context.Context) ([]models.Harvest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Harvest, 0, len(f.harvests))
	for _, h := range f.harvests {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeStore) ListHarvestsByTank(_ context.Context, tankID primitive.ObjectID) ([]models.Harvest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Harvest
	for _, h := range f.harvests {
		if h.TankID == tankID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateHarvest(_ context.Context, harvest *models.Harvest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.harvests[harvest.ID]; !ok {
		return models.NewNotFound("harvest", harvest.ID.Hex())
	}
	f.harvests[harvest.ID] = *harvest
	return nil
}

func (f *fakeStore) DeleteHarvest(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.harvests[id]; !ok {
		return models.NewNotFound("harvest", id.Hex())
	}
	delete(f.harvests, id)
	return nil
}
