package event

import (
	"errors"
	"time"
)

type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	OwnerID   string    `json:"-"` // scoping detail, not part of the wire shape
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidRange = errors.New("event end must not be before start")
)

type CreateEventRequest struct {
	Title string     `json:"title" binding:"required,min=1,max=200"`
	Start *time.Time `json:"start" binding:"required"`
	End   *time.Time `json:"end" binding:"required"`
}

// Validate covers what binding tags cannot: the cross-field range rule.
func (r CreateEventRequest) Validate() error {
	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		return ErrInvalidRange
	}

	return nil
}

// partial update payload; nil means "leave as is"
type UpdateEventRequest struct {
	Title *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Validate rejects an inverted range when both ends are supplied. A
// single-sided change is validated against the stored row before the
// update is issued.
func (r UpdateEventRequest) Validate() error {
	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		return ErrInvalidRange
	}

	return nil
}
