package api

import (
	"errors"
	"log/slog"
	"metrics-dashboard/internal/database"
	"metrics-dashboard/pkg/api"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// ModelStoreService serves the model store REST contract over a local
// database. It backs development setups and tests of the dashboard client.
type ModelStoreService struct {
	db          *gorm.DB
	adminCookie *http.Cookie
}

// NewModelStoreService creates the service. When adminCookie is "name=value"
// mutations are refused with 403 unless the request carries that cookie.
func NewModelStoreService(db *gorm.DB, adminCookie string) *ModelStoreService {
	s := &ModelStoreService{db: db}
	if name, value, ok := strings.Cut(adminCookie, "="); ok && name != "" {
		s.adminCookie = &http.Cookie{Name: name, Value: value}
	}
	return s
}

func (s *ModelStoreService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))
	r.Route("/models", func(r chi.Router) {
		r.Get("/", RestHandler(s.ListModels))
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/", RestHandler(s.CreateModel))
			r.Put("/{model_id}", RestHandler(s.UpdateModel))
			r.Delete("/{model_id}", RestHandler(s.DeleteModel))
		})
	})
}

func (s *ModelStoreService) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminCookie != nil {
			c, err := r.Cookie(s.adminCookie.Name)
			if err != nil || c.Value != s.adminCookie.Value {
				http.Error(w, "admin session required", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *ModelStoreService) ListModels(r *http.Request) (any, error) {
	records, err := database.ListModelRecords(r.Context(), s.db)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving model records")
	}
	return convertRecords(records), nil
}

func (s *ModelStoreService) CreateModel(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ModelDraft](r)
	if err != nil {
		return nil, err
	}

	if err := validateDraft(req); err != nil {
		return nil, err
	}

	record := draftToRecord(req)
	if err := database.CreateModelRecord(r.Context(), s.db, &record); err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to create model record")
	}

	slog.Info("created model record", "id", record.Id, "model_name", record.ModelName)
	return convertRecord(record), nil
}

func (s *ModelStoreService) UpdateModel(r *http.Request) (any, error) {
	modelId, err := URLParamUUID(r, "model_id")
	if err != nil {
		return nil, err
	}

	req, err := ParseRequest[api.ModelDraft](r)
	if err != nil {
		return nil, err
	}

	if err := validateDraft(req); err != nil {
		return nil, err
	}

	record := draftToRecord(req)
	if err := database.ReplaceModelRecord(r.Context(), s.db, modelId, record); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "model not found")
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to update model record")
	}

	slog.Info("updated model record", "id", modelId)
	record.Id = modelId
	return convertRecord(record), nil
}

func (s *ModelStoreService) DeleteModel(r *http.Request) (any, error) {
	modelId, err := URLParamUUID(r, "model_id")
	if err != nil {
		return nil, err
	}

	if err := database.DeleteModelRecord(r.Context(), s.db, modelId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "model not found")
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to delete model record")
	}

	slog.Info("deleted model record", "id", modelId)
	return nil, nil
}
