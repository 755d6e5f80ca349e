package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/schedule"
)

// RemoteAdapter reads user-created events from the remote events API.
// Upstream availability is best-effort: network errors, timeouts and
// non-2xx responses all degrade to an empty contribution.
type RemoteAdapter struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

func NewRemoteAdapter(baseURL, token string, logger *slog.Logger) *RemoteAdapter {
	return &RemoteAdapter{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
		logger:  logger,
	}
}

func (ra *RemoteAdapter) Name() string { return "remote" }

// remoteEvent matches the shapes the events API has been seen to return:
// either a full RFC3339 "date", or a split "event_date"/"event_time" pair.
type remoteEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	EventType   string `json:"event_type"`
	Location    string `json:"location"`
}

func (ra *RemoteAdapter) ListEvents(ctx context.Context, now time.Time) []models.Event {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ra.baseURL+"/events", nil)
	if err != nil {
		ra.logger.Error("remote events request build failed", "error", err)
		return nil
	}
	if ra.token != "" {
		req.Header.Set("Authorization", "Bearer "+ra.token)
	}

	resp, err := ra.client.Do(req)
	if err != nil {
		ra.logger.Error("remote events fetch failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ra.logger.Error("remote events fetch returned non-2xx", "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ra.logger.Error("remote events body read failed", "error", err)
		return nil
	}

	raw, err := decodeEnvelope(body)
	if err != nil {
		ra.logger.Error("remote events decode failed", "error", err)
		return nil
	}

	events := make([]models.Event, 0, len(raw))
	for _, re := range raw {
		if re.ID == "" {
			ra.logger.Warn("remote event without id skipped", "title", re.Title)
			continue
		}
		at, err := re.instant(now.Location())
		if err != nil {
			ra.logger.Warn("remote event with unparseable date skipped", "id", re.ID, "error", err)
			continue
		}
		events = append(events, models.Event{
			ID:          re.ID,
			Title:       re.Title,
			Description: re.Description,
			EventDate:   at,
			EventType:   models.ParseEventType(re.EventType),
			Location:    re.Location,
		})
	}
	return events
}

// CreateEvent forwards an event creation to the remote API on behalf of the
// caller. Unlike reads, creation failures surface to the caller.
func (ra *RemoteAdapter) CreateEvent(ctx context.Context, bearerToken string, input *models.RemoteEventInput) error {
	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ra.baseURL+"/events", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := ra.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote event creation failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote event creation returned status %d", resp.StatusCode)
	}
	return nil
}

// decodeEnvelope tolerates the API returning a bare array or wrapping it in
// an "events" or "data" field.
func decodeEnvelope(body []byte) ([]remoteEvent, error) {
	var list []remoteEvent
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Events []remoteEvent `json:"events"`
		Data   []remoteEvent `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Events != nil {
		return wrapped.Events, nil
	}
	return wrapped.Data, nil
}

func (re remoteEvent) instant(loc *time.Location) (time.Time, error) {
	if re.Date != "" {
		if t, err := time.Parse(time.RFC3339, re.Date); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, re.EventDate); err == nil {
		return t, nil
	}
	return schedule.At(re.EventDate, re.EventTime, loc)
}
