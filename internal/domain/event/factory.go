package event

import (
	"time"

	"github.com/google/uuid"
)

// NewFromCreateRequest builds the persisted form of a create payload.
// The owner always comes from the authenticated caller, never the body,
// and instants are normalized to UTC before they reach the store.
func NewFromCreateRequest(ownerID string, req CreateEventRequest) Event {
	now := time.Now().UTC()

	return Event{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Start:     req.Start.UTC(),
		End:       req.End.UTC(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
