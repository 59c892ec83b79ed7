package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geocoder89/calhub/internal/domain/event"
	"github.com/geocoder89/calhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventsRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

// constructor function

func NewEventsRepo(pool *pgxpool.Pool, metrics *observability.Prom) *EventsRepo {
	return &EventsRepo{
		pool:    pool,
		metrics: metrics,
	}
}

func (r *EventsRepo) Create(ctx context.Context, ownerID string, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(ownerID, req)

	err := observe(r.metrics, "events.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO events (id, title, start_at, end_at, owner_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, e.Title, e.Start, e.End, e.OwnerID, e.CreatedAt, e.UpdatedAt)

		return execErr
	})

	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) ListByOwner(ctx context.Context, ownerID string) ([]event.Event, error) {
	output := make([]event.Event, 0)

	err := observe(r.metrics, "events.list_by_owner", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, start_at, end_at, owner_id, created_at, updated_at
			FROM events
			WHERE owner_id = $1
			ORDER BY start_at ASC, id ASC`,
			ownerID)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var e event.Event

			err = rows.Scan(&e.ID, &e.Title, &e.Start, &e.End, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt)

			if err != nil {
				return err
			}

			output = append(output, normalizeUTC(e))
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// GetByID is owner-scoped like every other read: a foreign event is
// indistinguishable from a missing one.
func (r *EventsRepo) GetByID(ctx context.Context, ownerID, id string) (event.Event, error) {
	var e event.Event

	err := observe(r.metrics, "events.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, title, start_at, end_at, owner_id, created_at, updated_at
			FROM events
			WHERE id = $1 AND owner_id = $2`,
			id, ownerID,
		).Scan(&e.ID, &e.Title, &e.Start, &e.End, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}

		return event.Event{}, err
	}

	return normalizeUTC(e), nil
}

// Update applies only the supplied fields. Ownership is part of the match,
// not a separate step, so zero updated rows means "not found" regardless of
// whether the row exists under another owner.
func (r *EventsRepo) Update(ctx context.Context, ownerID, id string, req event.UpdateEventRequest) (event.Event, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id, ownerID}

	argsPosition := 3

	if req.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argsPosition))
		args = append(args, *req.Title)
		argsPosition++
	}

	if req.Start != nil {
		sets = append(sets, fmt.Sprintf("start_at = $%d", argsPosition))
		args = append(args, req.Start.UTC())
		argsPosition++
	}

	if req.End != nil {
		sets = append(sets, fmt.Sprintf("end_at = $%d", argsPosition))
		args = append(args, req.End.UTC())
		argsPosition++
	}

	query := `UPDATE events
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1 AND owner_id = $2
		RETURNING id, title, start_at, end_at, owner_id, created_at, updated_at`

	var e event.Event

	err := observe(r.metrics, "events.update", func() error {
		return r.pool.QueryRow(ctx, query, args...).Scan(
			&e.ID,
			&e.Title,
			&e.Start,
			&e.End,
			&e.OwnerID,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
	})

	if err != nil {
		// if there are no rows matching the id and owner
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		// if it is any other type of error
		return event.Event{}, err
	}

	return normalizeUTC(e), nil
}

func (r *EventsRepo) Delete(ctx context.Context, ownerID, id string) error {
	var deleted int64

	err := observe(r.metrics, "events.delete", func() error {
		tag, execErr := r.pool.Exec(ctx,
			`DELETE FROM events WHERE id = $1 AND owner_id = $2`,
			id, ownerID)

		if execErr != nil {
			return execErr
		}

		deleted = tag.RowsAffected()

		return nil
	})

	if err != nil {
		return err
	}

	// if no rows were deleted as a result return a not found error
	if deleted == 0 {
		return event.ErrNotFound
	}

	return nil
}

// timestamptz scans come back in the session zone; the wire contract is UTC.
func normalizeUTC(e event.Event) event.Event {
	e.Start = e.Start.UTC()
	e.End = e.End.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()

	return e
}
