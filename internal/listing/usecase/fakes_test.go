package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/your-org/estate-admin/internal/listing/domain"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger()
}

// fakeRepo is an in-memory ListingRepository. Merge stores a deep copy
// so later mutation of the caller's value cannot leak in.
type fakeRepo struct {
	mu           sync.Mutex
	seq          int
	docs         map[string]*domain.Listing
	order        []string
	placeholders []string
	deleted      []string
	mergeErr     error
	deleteErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: map[string]*domain.Listing{}}
}

func (r *fakeRepo) CreatePlaceholder(_ context.Context, kind domain.ListingKind) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("rec-%03d", r.seq)
	r.docs[id] = &domain.Listing{ID: id, Kind: kind}
	r.order = append(r.order, id)
	r.placeholders = append(r.placeholders, id)
	return id, nil
}

func (r *fakeRepo) Merge(_ context.Context, id string, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mergeErr != nil {
		return r.mergeErr
	}
	if _, ok := r.docs[id]; !ok {
		return domain.ErrListingNotFound
	}
	cloned := cloneListing(listing)
	cloned.ID = id
	r.docs[id] = cloned
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return cloneListing(l), nil
}

func (r *fakeRepo) FetchAll(_ context.Context) ([]*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Listing, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.docs[id]; ok {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.docs[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.docs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepo) stored(id string) *domain.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[id]
}

func (r *fakeRepo) seed(listings ...*domain.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range listings {
		r.docs[l.ID] = cloneListing(l)
		r.order = append(r.order, l.ID)
	}
}

func cloneListing(l *domain.Listing) *domain.Listing {
	raw, err := json.Marshal(l)
	if err != nil {
		panic(err)
	}
	var out domain.Listing
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

// fakeStorage maps object keys to bytes and mints URLs the way the
// MinIO adapter does.
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, objectKey string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.objects[objectKey] = data
	return "https://storage.local/estate-images/" + objectKey, nil
}

func (s *fakeStorage) ListFolder(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *fakeStorage) RemoveObject(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey)
	s.removed = append(s.removed, objectKey)
	return nil
}

func (s *fakeStorage) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// fakePublisher records every published event.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Subject string
	Payload interface{}
}

func (p *fakePublisher) Publish(_ context.Context, subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Subject: subject, Payload: data})
	return nil
}

func (p *fakePublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Subject
	}
	return out
}
