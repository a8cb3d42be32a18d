package store

import (
	"context"
	"errors"
	"fmt"
	"metrics-dashboard/pkg/api"
)

var (
	ErrFetchFailed  = errors.New("fetch failed")
	ErrSubmitFailed = errors.New("submit failed")
	ErrDeleteFailed = errors.New("delete failed")
)

// ModelStore is the remote service that owns model records. It is the
// authority for ids, ordering and authorization.
type ModelStore interface {
	List(ctx context.Context) ([]api.ModelRecord, error)

	Create(ctx context.Context, draft api.ModelDraft) error

	Update(ctx context.Context, id api.RecordId, draft api.ModelDraft) error

	Delete(ctx context.Context, id api.RecordId) error
}

// StatusError is returned when the store answers with a non-2xx status. It
// unwraps to the sentinel for the operation that failed.
type StatusError struct {
	Kind error
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: status %d", e.Kind, e.Code)
	}
	return fmt.Sprintf("%v: status %d: %s", e.Kind, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}
