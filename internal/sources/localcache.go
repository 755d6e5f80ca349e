package sources

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/schedule"
	"github.com/sandycove/clubapi/internal/store"
)

const (
	bandStage      = "Beach Stage"
	bagsCourt      = "Bags Court"
	tournamentTime = "2:00 PM"
)

// LocalCacheAdapter reads the two locally persisted blobs: user-added bands
// and bags tournaments. Each blob fails open independently — an absent or
// corrupt blob just means that sub-source contributes nothing.
type LocalCacheAdapter struct {
	blobs  store.BlobStore
	logger *slog.Logger
}

func NewLocalCacheAdapter(blobs store.BlobStore, logger *slog.Logger) *LocalCacheAdapter {
	return &LocalCacheAdapter{blobs: blobs, logger: logger}
}

func (la *LocalCacheAdapter) Name() string { return "local-cache" }

func (la *LocalCacheAdapter) ListEvents(ctx context.Context, now time.Time) []models.Event {
	events := la.bandEvents(ctx, now)
	events = append(events, la.tournamentEvents(ctx, now)...)
	return events
}

func (la *LocalCacheAdapter) bandEvents(ctx context.Context, now time.Time) []models.Event {
	var bands []models.BandRecord
	if !la.readBlob(ctx, store.KeyBands, &bands) {
		return nil
	}

	var events []models.Event
	for _, b := range bands {
		if b.Date == "" {
			continue
		}
		at, err := schedule.At(b.Date, b.Time, now.Location())
		if err != nil {
			la.logger.Warn("band entry with unparseable date skipped", "band", b.Name, "date", b.Date)
			continue
		}
		events = append(events, models.Event{
			ID:          "band-" + b.ID,
			Title:       b.Name + " Live",
			Description: b.Genre + " band performing at the beach",
			EventDate:   at,
			EventType:   models.EventConcert,
			Location:    bandStage,
			SourceMeta: map[string]any{
				"genre":    b.Genre,
				"added_by": b.AddedBy,
			},
		})
	}
	return events
}

func (la *LocalCacheAdapter) tournamentEvents(ctx context.Context, now time.Time) []models.Event {
	var tournaments []models.TournamentRecord
	if !la.readBlob(ctx, store.KeyTournaments, &tournaments) {
		return nil
	}

	var events []models.Event
	for _, t := range tournaments {
		if t.Date == "" {
			continue
		}
		timeLabel := t.Time
		if timeLabel == "" {
			timeLabel = tournamentTime
		}
		at, err := schedule.At(t.Date, timeLabel, now.Location())
		if err != nil {
			la.logger.Warn("tournament entry with unparseable date skipped", "tournament", t.Name, "date", t.Date)
			continue
		}
		description := t.Description
		if description == "" {
			description = t.Type + "-player Bags Tournament"
		}
		events = append(events, models.Event{
			ID:          "tournament-" + t.ID,
			Title:       t.Name,
			Description: description,
			EventDate:   at,
			EventType:   models.EventTournament,
			Location:    bagsCourt,
			SourceMeta: map[string]any{
				"format":     t.Type,
				"created_by": t.CreatedBy,
			},
		})
	}
	return events
}

// readBlob loads and decodes one named blob. Returns false when the blob is
// absent or unreadable; corruption is logged, never fatal.
func (la *LocalCacheAdapter) readBlob(ctx context.Context, key string, out any) bool {
	data, err := la.blobs.Get(ctx, key)
	if err != nil {
		la.logger.Error("blob read failed", "key", key, "error", err)
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		la.logger.Error("blob is corrupt, treating as empty", "key", key, "error", err)
		return false
	}
	return true
}
