package event_test

import (
	"testing"
	"time"

	"github.com/geocoder89/calhub/internal/domain/event"
)

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func TestCreateRequestValidateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     event.CreateEventRequest
		wantErr error
	}{
		{
			name:    "end_after_start",
			req:     event.CreateEventRequest{Title: "Standup", Start: timePtr(start), End: timePtr(start.Add(30 * time.Minute))},
			wantErr: nil,
		},
		{
			name:    "end_equals_start",
			req:     event.CreateEventRequest{Title: "Reminder", Start: timePtr(start), End: timePtr(start)},
			wantErr: nil,
		},
		{
			name:    "end_before_start",
			req:     event.CreateEventRequest{Title: "Broken", Start: timePtr(start), End: timePtr(start.Add(-time.Minute))},
			wantErr: event.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if err != tt.wantErr {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateRequestValidateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	// only one side supplied: nothing to check yet
	req := event.UpdateEventRequest{Title: strPtr("Renamed"), Start: timePtr(start)}

	if err := req.Validate(); err != nil {
		t.Fatalf("one-sided update should pass local validation, got %v", err)
	}

	req = event.UpdateEventRequest{Start: timePtr(start), End: timePtr(start.Add(-time.Hour))}

	if err := req.Validate(); err != event.ErrInvalidRange {
		t.Fatalf("got %v, want ErrInvalidRange", err)
	}
}

func TestNewFromCreateRequestNormalizesUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2024, 1, 1, 11, 0, 0, 0, zone)
	end := start.Add(time.Hour)

	e := event.NewFromCreateRequest("owner-1", event.CreateEventRequest{
		Title: "Standup",
		Start: timePtr(start),
		End:   timePtr(end),
	})

	if e.ID == "" {
		t.Fatalf("expected a generated id")
	}

	if e.OwnerID != "owner-1" {
		t.Fatalf("owner mismatch: %q", e.OwnerID)
	}

	if e.Start.Location() != time.UTC || e.End.Location() != time.UTC {
		t.Fatalf("instants must be stored in UTC")
	}

	// same instant, different rendering
	if !e.Start.Equal(start) || !e.End.Equal(end) {
		t.Fatalf("normalization must not shift the instant")
	}
}
