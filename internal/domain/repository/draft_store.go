package repository

import (
	"context"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
)

// DraftStore persists the wizard draft for a terminal under a versioned
// storage slot. The store only reads and writes the serialized form; it
// never interprets field semantics. Each Save is a full-state snapshot, so
// last-write-wins is acceptable.
type DraftStore interface {
	// Save serializes and writes the draft to the terminal's slot.
	Save(ctx context.Context, terminalID string, draft *entity.WizardDraft) error
	// Load returns the previously saved draft, or (nil, nil) when the slot
	// is empty or the stored schema version does not match.
	Load(ctx context.Context, terminalID string) (*entity.WizardDraft, error)
	// Clear removes the slot.
	Clear(ctx context.Context, terminalID string) error

	// MarkUnload records that the terminal's session ended via a page
	// unload rather than explicit navigation. Written on every unload.
	MarkUnload(ctx context.Context, terminalID string) error
	// ConsumeUnloadMarker reports whether an unload marker was present and
	// deletes it, so it never triggers twice for one reload.
	ConsumeUnloadMarker(ctx context.Context, terminalID string) (bool, error)
}
