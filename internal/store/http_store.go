package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"metrics-dashboard/pkg/api"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

const maxErrorBody = 256

// HTTPStore talks to the model store over its REST API. Requests carry
// whatever cookies the client's jar holds, no explicit auth token is sent.
type HTTPStore struct {
	client *resty.Client
}

type Option func(*HTTPStore) error

// WithSessionCookie seeds the cookie jar with a "name=value" session cookie
// scoped to the store's base url.
func WithSessionCookie(cookie string) Option {
	return func(s *HTTPStore) error {
		if cookie == "" {
			return nil
		}
		name, value, ok := strings.Cut(cookie, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid session cookie %q: expected name=value", cookie)
		}
		base, err := url.Parse(s.client.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid store url: %w", err)
		}
		s.client.GetClient().Jar.SetCookies(base, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
		return nil
	}
}

func NewHTTPStore(baseURL string, opts ...Option) (*HTTPStore, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid store url '%s': %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating cookie jar: %w", err)
	}

	s := &HTTPStore{
		client: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetCookieJar(jar),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *HTTPStore) request(ctx context.Context) *resty.Request {
	return s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
}

func (s *HTTPStore) List(ctx context.Context) ([]api.ModelRecord, error) {
	res, err := s.request(ctx).Get("/models")
	if err != nil {
		slog.Error("unable to fetch models", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if !res.IsSuccess() {
		slog.Error("model store returned error", "op", "list", "status_code", res.StatusCode())
		return nil, statusError(ErrFetchFailed, res)
	}

	var records []api.ModelRecord
	if err := json.Unmarshal(res.Body(), &records); err != nil {
		slog.Error("error parsing models response", "error", err)
		return nil, fmt.Errorf("%w: error parsing response: %w", ErrFetchFailed, err)
	}
	if records == nil {
		records = []api.ModelRecord{}
	}

	return records, nil
}

func (s *HTTPStore) Create(ctx context.Context, draft api.ModelDraft) error {
	res, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		Post("/models")
	return checkMutation("create", ErrSubmitFailed, res, err)
}

func (s *HTTPStore) Update(ctx context.Context, id api.RecordId, draft api.ModelDraft) error {
	res, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		Put("/models/" + url.PathEscape(id.String()))
	return checkMutation("update", ErrSubmitFailed, res, err)
}

func (s *HTTPStore) Delete(ctx context.Context, id api.RecordId) error {
	res, err := s.request(ctx).Delete("/models/" + url.PathEscape(id.String()))
	return checkMutation("delete", ErrDeleteFailed, res, err)
}

func checkMutation(op string, kind error, res *resty.Response, err error) error {
	if err != nil {
		slog.Error("model store request failed", "op", op, "error", err)
		return fmt.Errorf("%w: %w", kind, err)
	}
	if !res.IsSuccess() {
		slog.Error("model store returned error", "op", op, "status_code", res.StatusCode())
		return statusError(kind, res)
	}
	return nil
}

func statusError(kind error, res *resty.Response) error {
	body := strings.TrimSpace(res.String())
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &StatusError{Kind: kind, Code: res.StatusCode(), Body: body}
}
