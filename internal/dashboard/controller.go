package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"metrics-dashboard/internal/store"
	"metrics-dashboard/pkg/api"
	"sync"
)

const (
	FetchErrorMessage  = "Failed to load models"
	SubmitErrorMessage = "Failed to save model"
	DeleteErrorMessage = "Failed to delete model"
	DeletePrompt       = "Are you sure you want to delete this model?"
)

var ErrDeleteCancelled = errors.New("delete cancelled")

type FetchState string

const (
	Idle    FetchState = "IDLE"
	Loading FetchState = "LOADING"
	Success FetchState = "SUCCESS"
	Failed  FetchState = "FAILED"
)

// ModelListController owns the model collection. It is the only writer of
// the collection and replaces it wholesale with each successful fetch.
//
// Overlapping fetches are resolved by issue order: each fetch takes a token
// and its result is dropped if a later fetch has already been applied.
type ModelListController struct {
	store     store.ModelStore
	auth      Auth
	confirmer Confirmer
	notifier  Notifier

	mu          sync.Mutex
	models      []api.ModelRecord
	fetched     bool
	state       FetchState
	errMsg      string
	inFlight    int
	issued      uint64
	applied     uint64
	refresher   Refresher
	subscribers []CollectionSubscriber
	listeners   []StateListener

	publishMu sync.Mutex
	published uint64

	notifyMu sync.Mutex
}

func NewModelListController(s store.ModelStore, auth Auth, confirmer Confirmer, notifier Notifier) *ModelListController {
	return &ModelListController{
		store:     s,
		auth:      auth,
		confirmer: confirmer,
		notifier:  notifier,
		models:    []api.ModelRecord{},
		state:     Idle,
	}
}

func (c *ModelListController) Subscribe(sub CollectionSubscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, sub)
}

func (c *ModelListController) AddStateListener(l StateListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// SetRefresher routes post-mutation refreshes through r.
func (c *ModelListController) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

func (c *ModelListController) OnEpoch(ctx context.Context, epoch uint64) {
	slog.Debug("refresh epoch changed", "epoch", epoch)
	// the error is kept in the controller state for display
	_ = c.FetchAll(ctx)
}

func (c *ModelListController) FetchAll(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	token := c.issued
	c.inFlight++
	c.state = Loading
	c.mu.Unlock()
	c.notify("")

	records, err := c.store.List(ctx)

	c.mu.Lock()
	c.inFlight--
	if token < c.applied {
		c.settleLocked()
		c.mu.Unlock()

		slog.Info("discarding superseded fetch result", "token", token)
		c.notify("")
		return nil
	}

	c.applied = token
	c.fetched = true
	if err != nil {
		c.errMsg = FetchErrorMessage
		c.settleLocked()
		c.mu.Unlock()

		slog.Error("error fetching models", "error", err)
		c.notify(Failed)
		return wrapKind(store.ErrFetchFailed, err)
	}

	c.models = copyCollection(records)
	c.errMsg = ""
	subscribers := c.subscribers
	c.settleLocked()
	c.mu.Unlock()

	slog.Info("fetched models", "count", len(records))
	c.publish(token, subscribers, records)
	c.notify(Success)
	return nil
}

// publish hands the collection to subscribers. Snapshots reach subscribers
// in token order even when fetches complete concurrently.
func (c *ModelListController) publish(token uint64, subscribers []CollectionSubscriber, records []api.ModelRecord) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	if token < c.published {
		return
	}
	c.published = token

	for _, sub := range subscribers {
		sub.OnCollectionPublished(copyCollection(records))
	}
}

// settleLocked moves back to Idle once no fetch is outstanding.
func (c *ModelListController) settleLocked() {
	if c.inFlight == 0 {
		c.state = Idle
	} else {
		c.state = Loading
	}
}

// notify delivers outcome (Success or Failed, empty for none) followed by the
// current state. Deliveries are serialized and the state is read at delivery
// time, so the last state a listener sees is always State(). Listeners must
// not start a fetch from OnStateChange.
func (c *ModelListController) notify(outcome FetchState) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	listeners := c.listeners
	c.mu.Unlock()

	if outcome != "" {
		for _, l := range listeners {
			l.OnStateChange(outcome)
		}
	}

	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	for _, l := range listeners {
		l.OnStateChange(state)
	}
}

func (c *ModelListController) Create(ctx context.Context, draft api.ModelDraft) error {
	if err := c.store.Create(ctx, draft); err != nil {
		slog.Error("error creating model", "model_name", draft.ModelName, "error", err)
		c.alert(SubmitErrorMessage)
		return wrapKind(store.ErrSubmitFailed, err)
	}
	slog.Info("created model", "model_name", draft.ModelName)
	return c.resync(ctx)
}

func (c *ModelListController) Update(ctx context.Context, id api.RecordId, draft api.ModelDraft) error {
	if err := c.store.Update(ctx, id, draft); err != nil {
		slog.Error("error updating model", "id", id, "error", err)
		c.alert(SubmitErrorMessage)
		return wrapKind(store.ErrSubmitFailed, err)
	}
	slog.Info("updated model", "id", id)
	return c.resync(ctx)
}

// Delete asks for confirmation before sending anything. A declined
// confirmation returns ErrDeleteCancelled and makes no request.
func (c *ModelListController) Delete(ctx context.Context, id api.RecordId) error {
	if c.confirmer == nil || !c.confirmer.Confirm(ctx, DeletePrompt) {
		slog.Info("delete not confirmed", "id", id)
		return ErrDeleteCancelled
	}

	if err := c.store.Delete(ctx, id); err != nil {
		slog.Error("error deleting model", "id", id, "error", err)
		c.alert(DeleteErrorMessage)
		return wrapKind(store.ErrDeleteFailed, err)
	}
	slog.Info("deleted model", "id", id)
	return c.resync(ctx)
}

// resync reloads the collection once after a successful mutation. The
// mutation itself succeeded, so a failed reload is only reflected in the
// controller's error state.
func (c *ModelListController) resync(ctx context.Context) error {
	c.mu.Lock()
	refresher := c.refresher
	c.mu.Unlock()

	if refresher != nil {
		refresher.RequestRefresh(ctx)
		return nil
	}
	_ = c.FetchAll(ctx)
	return nil
}

func (c *ModelListController) alert(msg string) {
	if c.notifier != nil {
		c.notifier.Alert(msg)
	}
}

func wrapKind(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Models returns a copy of the current collection.
func (c *ModelListController) Models() []api.ModelRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyCollection(c.models)
}

func (c *ModelListController) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Error returns the inline error banner text, empty after a successful fetch.
func (c *ModelListController) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *ModelListController) Auth() Auth {
	return c.auth
}

// View builds the list view for the current state.
func (c *ModelListController) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildView(c.models, c.auth, c.state == Loading || !c.fetched, c.errMsg)
}
