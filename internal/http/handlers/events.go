package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/calhub/internal/cache"
	"github.com/geocoder89/calhub/internal/config"
	"github.com/geocoder89/calhub/internal/domain/event"
	"github.com/geocoder89/calhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventsRepo interface {
	Create(ctx context.Context, ownerID string, req event.CreateEventRequest) (event.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]event.Event, error)
	GetByID(ctx context.Context, ownerID, id string) (event.Event, error)
	Update(ctx context.Context, ownerID, id string, req event.UpdateEventRequest) (event.Event, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type EventsHandler struct {
	repo  EventsRepo
	cache cache.Store
}

func NewEventsHandler(repo EventsRepo, listCache cache.Store) *EventsHandler {
	return &EventsHandler{repo: repo, cache: listCache}
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	callerID, ok := callerFrom(ctx)

	if !ok {
		return
	}

	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	err := req.Validate()

	if err != nil {
		RespondValidation(ctx, "End must not be before start", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// owner always comes from the verified token, never the payload
	created, err := h.repo.Create(cctx, callerID, req)

	if err != nil {
		logEventError(ctx, "create event", err)
		RespondInternal(ctx, "Could not create event")
		return
	}

	h.invalidateList(cctx, callerID)

	ctx.JSON(http.StatusCreated, created)
}

func (h *EventsHandler) ListEvents(ctx *gin.Context) {
	callerID, ok := callerFrom(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	key := cache.EventsListKey(callerID)

	if body, hit := h.cache.Get(cctx, key); hit {
		RespondRawJSONWithETag(ctx, http.StatusOK, body)
		return
	}

	events, err := h.repo.ListByOwner(cctx, callerID)

	if err != nil {
		logEventError(ctx, "list events", err)
		RespondInternal(ctx, "Could not list events")
		return
	}

	body, err := json.Marshal(events)

	if err != nil {
		logEventError(ctx, "encode events", err)
		RespondInternal(ctx, "Could not list events")
		return
	}

	h.cache.Set(cctx, key, body)

	RespondRawJSONWithETag(ctx, http.StatusOK, body)
}

func (h *EventsHandler) GetEventByID(ctx *gin.Context) {
	callerID, ok := callerFrom(ctx)

	if !ok {
		return
	}

	id, ok := eventIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	e, err := h.repo.GetByID(cctx, callerID, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		logEventError(ctx, "get event", err)
		RespondInternal(ctx, "Could not fetch event")
		return
	}

	ctx.JSON(http.StatusOK, e)
}

func (h *EventsHandler) UpdateEvent(ctx *gin.Context) {
	callerID, ok := callerFrom(ctx)

	if !ok {
		return
	}

	id, ok := eventIDParam(ctx)

	if !ok {
		return
	}

	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	err := req.Validate()

	if err != nil {
		RespondValidation(ctx, "End must not be before start", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// a one-sided range change is checked against the stored row
	if (req.Start == nil) != (req.End == nil) {
		current, err := h.repo.GetByID(cctx, callerID, id)

		if err != nil {
			if errors.Is(err, event.ErrNotFound) {
				RespondNotFound(ctx, "Event not found")
				return
			}

			logEventError(ctx, "get event", err)
			RespondInternal(ctx, "Could not update event")
			return
		}

		start, end := current.Start, current.End

		if req.Start != nil {
			start = req.Start.UTC()
		}

		if req.End != nil {
			end = req.End.UTC()
		}

		if end.Before(start) {
			RespondValidation(ctx, "End must not be before start", nil)
			return
		}
	}

	updated, err := h.repo.Update(cctx, callerID, id, req)

	if err != nil {
		// not found and not owned look identical on purpose
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		logEventError(ctx, "update event", err)
		RespondInternal(ctx, "Could not update event")
		return
	}

	h.invalidateList(cctx, callerID)

	ctx.JSON(http.StatusOK, updated)
}

func (h *EventsHandler) DeleteEvent(ctx *gin.Context) {
	callerID, ok := callerFrom(ctx)

	if !ok {
		return
	}

	id, ok := eventIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.repo.Delete(cctx, callerID, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		logEventError(ctx, "delete event", err)
		RespondInternal(ctx, "Could not delete event")
		return
	}

	h.invalidateList(cctx, callerID)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

// helper functions

func (h *EventsHandler) invalidateList(ctx context.Context, ownerID string) {
	h.cache.Delete(ctx, cache.EventsListKey(ownerID))
}

func callerFrom(ctx *gin.Context) (string, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok || id == "" {
		// only reachable if the route was mounted without the auth gate
		RespondError(ctx, http.StatusUnauthorized, "invalid_token", "Missing identity context", nil)
		return "", false
	}

	return id, true
}

func eventIDParam(ctx *gin.Context) (string, bool) {
	id := ctx.Param("id")

	_, err := uuid.Parse(id)

	if err != nil {
		RespondValidation(ctx, "Invalid event id", nil)
		return "", false
	}

	return id, true
}

func logEventError(ctx *gin.Context, op string, err error) {
	slog.Default().ErrorContext(ctx.Request.Context(), "event operation failed",
		"op", op,
		"err", err,
		"request_id", requestIDFrom(ctx),
	)
}
