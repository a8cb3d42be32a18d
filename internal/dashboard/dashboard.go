package dashboard

import (
	"context"
	"metrics-dashboard/internal/chart"
	"metrics-dashboard/internal/store"
)

// Dashboard wires a list controller to a coordinator: epoch changes trigger
// fetches, fetches publish to the coordinator, and mutations refresh through
// the epoch.
type Dashboard struct {
	Coordinator *DashboardCoordinator
	List        *ModelListController
}

func New(s store.ModelStore, auth Auth, confirmer Confirmer, notifier Notifier) *Dashboard {
	coordinator := NewDashboardCoordinator()
	list := NewModelListController(s, auth, confirmer, notifier)

	coordinator.AddEpochObserver(list)
	list.Subscribe(coordinator)
	list.SetRefresher(coordinator)

	return &Dashboard{Coordinator: coordinator, List: list}
}

// Refresh starts a new epoch and returns the fetch error, if any.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.Coordinator.RequestRefresh(ctx)
	if msg := d.List.Error(); msg != "" {
		return &FetchError{Message: msg}
	}
	return nil
}

func (d *Dashboard) Chart() []chart.SeriesPoint {
	return d.Coordinator.Chart()
}

type FetchError struct {
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return store.ErrFetchFailed
}
