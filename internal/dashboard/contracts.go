package dashboard

import (
	"context"
	"metrics-dashboard/pkg/api"
)

// Auth carries the capabilities of the current session. It is read only.
type Auth struct {
	IsAdmin bool
}

// CollectionSubscriber receives every collection the controller publishes.
// The slice is a private copy for the subscriber.
type CollectionSubscriber interface {
	OnCollectionPublished(collection []api.ModelRecord)
}

// EpochObserver is notified each time the refresh epoch advances.
type EpochObserver interface {
	OnEpoch(ctx context.Context, epoch uint64)
}

// Refresher asks for a new refresh epoch. Wiring the controller to one makes
// mutations resynchronize through the coordinator instead of fetching
// directly.
type Refresher interface {
	RequestRefresh(ctx context.Context)
}

// Confirmer asks the user to approve a destructive action. Nothing is done
// unless it returns true.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Notifier shows a dismiss-only alert.
type Notifier interface {
	Alert(msg string)
}

type StateListener interface {
	OnStateChange(state FetchState)
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) {
	f(msg)
}

func copyCollection(c []api.ModelRecord) []api.ModelRecord {
	out := make([]api.ModelRecord, len(c))
	copy(out, c)
	return out
}
