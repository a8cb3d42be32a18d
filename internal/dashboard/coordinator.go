package dashboard

import (
	"context"
	"metrics-dashboard/internal/chart"
	"metrics-dashboard/pkg/api"
	"sync"
)

// DashboardCoordinator owns the refresh epoch and the last published
// collection, and feeds that collection to the chart.
type DashboardCoordinator struct {
	mu        sync.Mutex
	epoch     uint64
	models    []api.ModelRecord
	observers []EpochObserver
}

func NewDashboardCoordinator() *DashboardCoordinator {
	return &DashboardCoordinator{models: []api.ModelRecord{}}
}

func (d *DashboardCoordinator) AddEpochObserver(o EpochObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// RequestRefresh advances the epoch and notifies observers, which re-fetch.
// Observers run on the caller's goroutine.
func (d *DashboardCoordinator) RequestRefresh(ctx context.Context) {
	d.mu.Lock()
	d.epoch++
	epoch := d.epoch
	observers := d.observers
	d.mu.Unlock()

	for _, o := range observers {
		o.OnEpoch(ctx, epoch)
	}
}

func (d *DashboardCoordinator) OnCollectionPublished(collection []api.ModelRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.models = collection
}

func (d *DashboardCoordinator) Epoch() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.epoch
}

// Models returns a copy of the last published collection.
func (d *DashboardCoordinator) Models() []api.ModelRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyCollection(d.models)
}

// Chart projects the last published collection.
func (d *DashboardCoordinator) Chart() []chart.SeriesPoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return chart.Project(d.models)
}
