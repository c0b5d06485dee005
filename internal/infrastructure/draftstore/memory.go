package draftstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
	domainRepo "github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/pkg/apperror"
)

// memoryDraftStore is an in-process draft store with the same versioned
// envelope semantics as the redis one. Used in tests and as a fallback when
// redis is unreachable at startup.
type memoryDraftStore struct {
	mu      sync.Mutex
	slots   map[string][]byte
	markers map[string]bool
	version string
}

// NewMemoryDraftStore creates an in-memory draft store.
func NewMemoryDraftStore(version string) domainRepo.DraftStore {
	return &memoryDraftStore{
		slots:   make(map[string][]byte),
		markers: make(map[string]bool),
		version: version,
	}
}

func (s *memoryDraftStore) Save(ctx context.Context, terminalID string, draft *entity.WizardDraft) error {
	env := envelope{
		Version: s.version,
		SavedAt: time.Now(),
		Draft:   *draft,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return apperror.NewPersistenceError("failed to serialize draft: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[terminalID] = payload
	return nil
}

func (s *memoryDraftStore) Load(ctx context.Context, terminalID string) (*entity.WizardDraft, error) {
	s.mu.Lock()
	payload, ok := s.slots[terminalID]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, nil
	}
	if env.Version != s.version {
		return nil, nil
	}
	return &env.Draft, nil
}

func (s *memoryDraftStore) Clear(ctx context.Context, terminalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, terminalID)
	return nil
}

func (s *memoryDraftStore) MarkUnload(ctx context.Context, terminalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[terminalID] = true
	return nil
}

func (s *memoryDraftStore) ConsumeUnloadMarker(ctx context.Context, terminalID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	present := s.markers[terminalID]
	delete(s.markers, terminalID)
	return present, nil
}
