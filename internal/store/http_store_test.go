package store_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	backend "metrics-dashboard/internal/api"
	"metrics-dashboard/internal/database"
	"metrics-dashboard/internal/store"
	"metrics-dashboard/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestLog struct {
	mu       sync.Mutex
	requests []string
	cookies  []string
}

func (l *requestLog) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.mu.Lock()
		l.requests = append(l.requests, r.Method+" "+r.URL.Path)
		if c, err := r.Cookie("session"); err == nil {
			l.cookies = append(l.cookies, c.Value)
		}
		l.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func newTestServer(t *testing.T, adminCookie string) (*httptest.Server, *requestLog) {
	db, err := database.OpenSQLite(database.InMemory)
	require.NoError(t, err)

	log := &requestLog{}
	router := chi.NewRouter()
	router.Use(log.middleware)
	backend.NewModelStoreService(db, adminCookie).AddRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, log
}

func TestHTTPStoreRoundTrip(t *testing.T) {
	server, log := newTestServer(t, "")
	s, err := store.NewHTTPStore(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)

	draft := api.ModelDraft{ModelName: "RF", Accuracy: "0.95", Precision: "0.92", Recall: "0.93", F1Score: "0.925"}
	require.NoError(t, s.Create(ctx, draft))

	records, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, draft, records[0].Draft())
	id := records[0].Id

	edited := draft
	edited.ModelName = "Random Forest"
	require.NoError(t, s.Update(ctx, id, edited))

	records, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []api.ModelRecord{edited.WithId(id)}, records)

	require.NoError(t, s.Delete(ctx, id))

	assert.Equal(t, []string{
		"GET /models",
		"POST /models",
		"GET /models",
		"PUT /models/" + id.String(),
		"GET /models",
		"DELETE /models/" + id.String(),
	}, log.requests)
}

func TestHTTPStoreErrors(t *testing.T) {
	server, _ := newTestServer(t, "session=admin")
	ctx := context.Background()

	viewer, err := store.NewHTTPStore(server.URL, store.WithSessionCookie("session=viewer"))
	require.NoError(t, err)

	draft := api.ModelDraft{ModelName: "RF", Accuracy: "0.95", Precision: "0.92", Recall: "0.93", F1Score: "0.925"}

	err = viewer.Create(ctx, draft)
	assert.ErrorIs(t, err, store.ErrSubmitFailed)
	var serr *store.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusForbidden, serr.Code)

	assert.ErrorIs(t, viewer.Update(ctx, "1", draft), store.ErrSubmitFailed)
	assert.ErrorIs(t, viewer.Delete(ctx, "1"), store.ErrDeleteFailed)

	admin, err := store.NewHTTPStore(server.URL, store.WithSessionCookie("session=admin"))
	require.NoError(t, err)
	assert.ErrorIs(t, admin.Delete(ctx, "not-a-model"), store.ErrDeleteFailed)
	assert.ErrorIs(t, admin.Create(ctx, api.ModelDraft{}), store.ErrSubmitFailed)
}

func TestHTTPStoreSendsSessionCookie(t *testing.T) {
	server, log := newTestServer(t, "session=admin")
	s, err := store.NewHTTPStore(server.URL+"/", store.WithSessionCookie("session=admin"))
	require.NoError(t, err)

	require.NoError(t, s.Create(context.Background(), api.ModelDraft{ModelName: "RF", Accuracy: "0.9", Precision: "0.9", Recall: "0.9", F1Score: "0.9"}))
	_, err = s.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"admin", "admin"}, log.cookies)
}

func TestHTTPStoreFetchFailures(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	t.Cleanup(broken.Close)

	s, err := store.NewHTTPStore(broken.URL)
	require.NoError(t, err)
	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, store.ErrFetchFailed)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database down", http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)

	s, err = store.NewHTTPStore(failing.URL)
	require.NoError(t, err)
	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, store.ErrFetchFailed)
	var serr *store.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.Code)
	assert.Equal(t, "database down", serr.Body)

	unreachable, err := store.NewHTTPStore("http://127.0.0.1:1")
	require.NoError(t, err)
	_, err = unreachable.List(context.Background())
	assert.ErrorIs(t, err, store.ErrFetchFailed)
}

func TestHTTPStoreListKeepsRecordWithBadMetric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"model_name":"Broken","accuracy":true,"precision":"0.9","recall":"0.9","f1_score":"0.9"},
			{"id":2,"model_name":"RF","accuracy":"0.95","precision":"0.92","recall":"0.93","f1_score":"0.925"}
		]`))
	}))
	t.Cleanup(server.Close)

	s, err := store.NewHTTPStore(server.URL)
	require.NoError(t, err)

	records, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, records[0].Accuracy.Valid())
	assert.Equal(t, "RF", records[1].ModelName)
}

func TestNewHTTPStoreValidation(t *testing.T) {
	_, err := store.NewHTTPStore("not a url")
	assert.Error(t, err)

	_, err = store.NewHTTPStore("http://localhost:3000", store.WithSessionCookie("novalue"))
	assert.Error(t, err)
}
