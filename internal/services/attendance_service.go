package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandycove/clubapi/internal/models"
)

// AttendanceService owns per-event/per-user RSVP state, independent of
// where an event originated. Toggle is the only mutation; the read-modify-
// write it performs is serialized so status always reflects the last toggle.
type AttendanceService struct {
	repo models.AttendanceRepo
	mu   sync.Mutex
}

func NewAttendanceService(repo models.AttendanceRepo) *AttendanceService {
	return &AttendanceService{repo: repo}
}

// Status returns the user's RSVP status for the event; absent records read
// as "none".
func (as *AttendanceService) Status(ctx context.Context, eventId, userId string) (models.RSVPStatus, error) {
	if strings.TrimSpace(eventId) == "" {
		return models.RSVPNone, fmt.Errorf("event ID cannot be empty")
	}
	if strings.TrimSpace(userId) == "" {
		return models.RSVPNone, fmt.Errorf("user ID cannot be empty")
	}

	rec, err := as.repo.GetRSVP(ctx, eventId, userId)
	if err != nil {
		return models.RSVPNone, err
	}
	if rec == nil {
		return models.RSVPNone, nil
	}
	return rec.Status, nil
}

// Toggle flips going <-> none for (eventId, userId), creating the record on
// first use. When toggling to going, displayName is snapshotted onto the
// record; toggling off keeps the previous snapshot.
func (as *AttendanceService) Toggle(ctx context.Context, eventId, userId, displayName string) (models.RSVPStatus, error) {
	if strings.TrimSpace(eventId) == "" {
		return models.RSVPNone, fmt.Errorf("event ID cannot be empty")
	}
	if strings.TrimSpace(userId) == "" {
		return models.RSVPNone, fmt.Errorf("user ID cannot be empty")
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	rec, err := as.repo.GetRSVP(ctx, eventId, userId)
	if err != nil {
		return models.RSVPNone, err
	}

	newStatus := models.RSVPGoing
	name := displayName
	if rec != nil {
		if rec.Status == models.RSVPGoing {
			newStatus = models.RSVPNone
		}
		if name == "" {
			name = rec.DisplayName
		}
	}

	updated := &models.RSVPRecord{
		EventID:     eventId,
		UserID:      userId,
		Status:      newStatus,
		DisplayName: name,
		UpdatedAt:   time.Now(),
	}
	if err := as.repo.PutRSVP(ctx, updated); err != nil {
		return models.RSVPNone, err
	}
	return newStatus, nil
}

// Attendees lists everyone currently going, in the order they most recently
// toggled to going.
func (as *AttendanceService) Attendees(ctx context.Context, eventId string) ([]models.Attendee, error) {
	if strings.TrimSpace(eventId) == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}

	records, err := as.repo.ListGoing(ctx, eventId)
	if err != nil {
		return nil, err
	}

	attendees := make([]models.Attendee, 0, len(records))
	for _, rec := range records {
		attendees = append(attendees, models.Attendee{
			UserID:      rec.UserID,
			DisplayName: rec.DisplayName,
		})
	}
	return attendees, nil
}
