package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/calhub/internal/domain/event"
)

// EventsRepo mirrors the postgres events repo for tests and db-less runs.
type EventsRepo struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[string]event.Event),
	}
}

func (r *EventsRepo) Create(ctx context.Context, ownerID string, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(ownerID, req)

	r.mu.Lock()
	r.items[e.ID] = e
	r.mu.Unlock()

	return e, nil
}

func (r *EventsRepo) ListByOwner(ctx context.Context, ownerID string) ([]event.Event, error) {
	r.mu.RLock()

	output := make([]event.Event, 0)

	for _, e := range r.items {
		if e.OwnerID == ownerID {
			output = append(output, e)
		}
	}

	r.mu.RUnlock()

	sort.Slice(output, func(i, j int) bool {
		if output[i].Start.Equal(output[j].Start) {
			return output[i].ID < output[j].ID
		}

		return output[i].Start.Before(output[j].Start)
	})

	return output, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, ownerID, id string) (event.Event, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	if !ok || e.OwnerID != ownerID {
		return event.Event{}, event.ErrNotFound
	}

	return e, nil
}

func (r *EventsRepo) Update(ctx context.Context, ownerID, id string, req event.UpdateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok || e.OwnerID != ownerID {
		return event.Event{}, event.ErrNotFound
	}

	if req.Title != nil {
		e.Title = *req.Title
	}

	if req.Start != nil {
		e.Start = req.Start.UTC()
	}

	if req.End != nil {
		e.End = req.End.UTC()
	}

	e.UpdatedAt = time.Now().UTC()
	r.items[id] = e

	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]

	if !ok || e.OwnerID != ownerID {
		return event.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
