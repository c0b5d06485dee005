package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	domainRepo "github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/pkg/apperror"
)

// envelope wraps the draft with the schema version it was written under.
// A version mismatch on read is treated as no draft, never as an error, so
// deployments that change the draft shape start clean instead of crashing.
type envelope struct {
	Version string             `json:"version"`
	SavedAt time.Time          `json:"savedAt"`
	Draft   entity.WizardDraft `json:"draft"`
}

type redisDraftStore struct {
	client  *redis.Client
	keyBase string
	version string
	ttl     time.Duration
}

// NewRedisDraftStore creates a draft store backed by redis. Drafts expire
// after ttl so an abandoned terminal does not hold stale state forever.
func NewRedisDraftStore(client *redis.Client, draftKey, version string, ttl time.Duration) domainRepo.DraftStore {
	return &redisDraftStore{
		client:  client,
		keyBase: draftKey,
		version: version,
		ttl:     ttl,
	}
}

func (s *redisDraftStore) slot(terminalID string) string {
	return fmt.Sprintf("%s.%s:%s", s.keyBase, s.version, terminalID)
}

func (s *redisDraftStore) markerKey(terminalID string) string {
	return fmt.Sprintf("%s.unload:%s", s.keyBase, terminalID)
}

func (s *redisDraftStore) Save(ctx context.Context, terminalID string, draft *entity.WizardDraft) error {
	env := envelope{
		Version: s.version,
		SavedAt: time.Now(),
		Draft:   *draft,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return apperror.NewPersistenceError("failed to serialize draft: " + err.Error())
	}
	if err := s.client.Set(ctx, s.slot(terminalID), payload, s.ttl).Err(); err != nil {
		return apperror.NewPersistenceError("failed to save draft: " + err.Error())
	}
	return nil
}

func (s *redisDraftStore) Load(ctx context.Context, terminalID string) (*entity.WizardDraft, error) {
	payload, err := s.client.Get(ctx, s.slot(terminalID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewPersistenceError("failed to load draft: " + err.Error())
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		// Corrupt slot: discard rather than surface.
		_ = s.client.Del(ctx, s.slot(terminalID)).Err()
		return nil, nil
	}
	if env.Version != s.version {
		return nil, nil
	}
	return &env.Draft, nil
}

func (s *redisDraftStore) Clear(ctx context.Context, terminalID string) error {
	if err := s.client.Del(ctx, s.slot(terminalID)).Err(); err != nil {
		return apperror.NewPersistenceError("failed to clear draft: " + err.Error())
	}
	return nil
}

func (s *redisDraftStore) MarkUnload(ctx context.Context, terminalID string) error {
	if err := s.client.Set(ctx, s.markerKey(terminalID), "1", s.ttl).Err(); err != nil {
		return apperror.NewPersistenceError("failed to write unload marker: " + err.Error())
	}
	return nil
}

// ConsumeUnloadMarker uses GETDEL so the read and the delete are one
// operation: the marker can never fire twice.
func (s *redisDraftStore) ConsumeUnloadMarker(ctx context.Context, terminalID string) (bool, error) {
	err := s.client.GetDel(ctx, s.markerKey(terminalID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewPersistenceError("failed to consume unload marker: " + err.Error())
	}
	return true, nil
}
