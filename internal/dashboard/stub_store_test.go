package dashboard_test

import (
	"context"
	"metrics-dashboard/internal/store"
	"metrics-dashboard/pkg/api"
	"net/http"
	"strconv"
	"sync"
)

type call struct {
	Op    string
	Id    api.RecordId
	Draft api.ModelDraft
}

// stubStore keeps records in memory and records every call. The next List
// result can be overridden with listErr or gated with block.
type stubStore struct {
	mu      sync.Mutex
	records []api.ModelRecord
	nextId  int
	calls   []call

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// When set, List waits on the channel returned for the n-th call.
	block map[int]chan []api.ModelRecord
}

func newStubStore(records ...api.ModelRecord) *stubStore {
	return &stubStore{records: records, nextId: len(records) + 1}
}

func (s *stubStore) List(ctx context.Context) ([]api.ModelRecord, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{Op: "list"})
	n := s.count("list")
	gate := s.block[n]
	err := s.listErr
	out := make([]api.ModelRecord, len(s.records))
	copy(out, s.records)
	s.mu.Unlock()

	if gate != nil {
		return <-gate, nil
	}
	if err != nil {
		return nil, &store.StatusError{Kind: store.ErrFetchFailed, Code: http.StatusInternalServerError}
	}
	return out, nil
}

func (s *stubStore) Create(ctx context.Context, draft api.ModelDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Op: "create", Draft: draft})
	if s.createErr != nil {
		return s.createErr
	}
	s.records = append(s.records, draft.WithId(api.RecordId(strconv.Itoa(s.nextId))))
	s.nextId++
	return nil
}

func (s *stubStore) Update(ctx context.Context, id api.RecordId, draft api.ModelDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Op: "update", Id: id, Draft: draft})
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.records {
		if s.records[i].Id == id {
			s.records[i] = draft.WithId(id)
		}
	}
	return nil
}

func (s *stubStore) Delete(ctx context.Context, id api.RecordId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Op: "delete", Id: id})
	if s.deleteErr != nil {
		return s.deleteErr
	}
	kept := s.records[:0]
	for _, r := range s.records {
		if r.Id != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *stubStore) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (s *stubStore) Count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count(op)
}

func (s *stubStore) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		ops = append(ops, c.Op)
	}
	return ops
}

type alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alerts) Alert(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = append(a.msgs, msg)
}

func (a *alerts) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

type recordingSubscriber struct {
	mu        sync.Mutex
	published [][]api.ModelRecord
}

func (r *recordingSubscriber) OnCollectionPublished(c []api.ModelRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, c)
}

func (r *recordingSubscriber) Published() [][]api.ModelRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]api.ModelRecord(nil), r.published...)
}

func always(answer bool) *confirmations {
	return &confirmations{answer: answer}
}

type confirmations struct {
	answer  bool
	prompts []string
}

func (c *confirmations) Confirm(ctx context.Context, prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}
