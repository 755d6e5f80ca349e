package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/sources"
	"github.com/sandycove/clubapi/internal/store"
)

const (
	DefaultFeedLimit      = 3
	DefaultHighlightLimit = 5

	// The original client refreshed its merged collection every minute;
	// the cache TTL keeps the same staleness bound.
	feedCacheTTL = time.Minute

	highlightWindow = 30 * 24 * time.Hour
)

// Merge unions normalized event lists into one collection. No dedup is
// performed across sources: the same band may legitimately appear both as
// a local cache entry and a curated guide entry. Provenance prefixes keep
// the ids distinct.
func Merge(lists ...[]models.Event) []models.Event {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	merged := make([]models.Event, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}

// SelectUpcoming keeps events at or after now, sorted ascending by date,
// truncated to limit. The sort is stable: events sharing an instant (two
// bands on the same day) keep their input order.
func SelectUpcoming(events []models.Event, now time.Time, limit int) []models.Event {
	upcoming := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if !ev.EventDate.Before(now) {
			upcoming = append(upcoming, ev)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].EventDate.Before(upcoming[j].EventDate)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// RSVPResult is the outcome of an RSVP attempt. A missing identity is a
// failure result, not an error, so the caller can prompt for sign-in.
type RSVPResult struct {
	Success        bool              `json:"success"`
	SignInRequired bool              `json:"sign_in_required,omitempty"`
	NewStatus      models.RSVPStatus `json:"new_status,omitempty"`
	Message        string            `json:"message,omitempty"`
}

// FeedService is the top-level orchestrator: it fans out to the source
// adapters, merges their output, windows it and joins attendance on by
// event id. The merged (pre-attendance) collection is cached briefly.
type FeedService struct {
	adapters   []sources.Adapter
	attendance *AttendanceService
	cache      store.BlobStore
	logger     *slog.Logger
}

func NewFeedService(adapters []sources.Adapter, attendance *AttendanceService, cache store.BlobStore, logger *slog.Logger) *FeedService {
	return &FeedService{
		adapters:   adapters,
		attendance: attendance,
		cache:      cache,
		logger:     logger,
	}
}

// UpcomingFeed returns the next events across all sources with attendee
// lists attached. limit <= 0 uses the feed default.
func (fs *FeedService) UpcomingFeed(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	all := fs.loadAll(ctx, now)
	upcoming := SelectUpcoming(all, now, limit)

	for i := range upcoming {
		attendees, err := fs.attendance.Attendees(ctx, upcoming[i].ID)
		if err != nil {
			fs.logger.Error("attendee join failed", "event_id", upcoming[i].ID, "error", err)
			continue
		}
		upcoming[i].Attendees = attendees
	}
	return upcoming, nil
}

// UpcomingMusic returns the concert highlight list: concerts only, bounded
// to a 30-day window.
func (fs *FeedService) UpcomingMusic(ctx context.Context, now time.Time, limit int) []models.Event {
	if limit <= 0 {
		limit = DefaultHighlightLimit
	}

	all := fs.loadAll(ctx, now)

	concerts := make([]models.Event, 0, len(all))
	cutoff := now.Add(highlightWindow)
	for _, ev := range all {
		if ev.EventType == models.EventConcert && ev.EventDate.Before(cutoff) {
			concerts = append(concerts, ev)
		}
	}
	return SelectUpcoming(concerts, now, limit)
}

// RSVP toggles the caller's attendance for an event. The caller is expected
// to re-fetch the feed afterwards; nothing is cached here.
func (fs *FeedService) RSVP(ctx context.Context, eventId, userId, displayName string) RSVPResult {
	if userId == "" {
		return RSVPResult{
			Success:        false,
			SignInRequired: true,
			Message:        "please sign in to RSVP",
		}
	}

	newStatus, err := fs.attendance.Toggle(ctx, eventId, userId, displayName)
	if err != nil {
		fs.logger.Error("rsvp toggle failed", "event_id", eventId, "user_id", userId, "error", err)
		return RSVPResult{Success: false, Message: "could not update RSVP"}
	}
	return RSVPResult{Success: true, NewStatus: newStatus}
}

// Refresh recomputes the merged collection and rewrites the cache. Used by
// the background warmer.
func (fs *FeedService) Refresh(ctx context.Context, now time.Time) {
	merged := fs.collect(ctx, now)
	fs.writeCache(ctx, merged)
}

// InvalidateCache drops the cached collection, forcing the next read to hit
// the adapters. Called after any local event mutation.
func (fs *FeedService) InvalidateCache(ctx context.Context) {
	if err := fs.cache.Delete(ctx, store.KeyFeedCache); err != nil {
		fs.logger.Error("feed cache invalidation failed", "error", err)
	}
}

func (fs *FeedService) loadAll(ctx context.Context, now time.Time) []models.Event {
	if cached := fs.readCache(ctx); cached != nil {
		return cached
	}
	merged := fs.collect(ctx, now)
	fs.writeCache(ctx, merged)
	return merged
}

// collect fans out to every adapter concurrently and waits for all of them
// to settle. A slow or failed source never starves the others; each adapter
// absorbs its own failures and contributes an empty list.
func (fs *FeedService) collect(ctx context.Context, now time.Time) []models.Event {
	results := make([][]models.Event, len(fs.adapters))

	var wg sync.WaitGroup
	for i, adapter := range fs.adapters {
		wg.Add(1)
		go func(i int, adapter sources.Adapter) {
			defer wg.Done()
			results[i] = adapter.ListEvents(ctx, now)
			fs.logger.Debug("source settled", "source", adapter.Name(), "events", len(results[i]))
		}(i, adapter)
	}
	wg.Wait()

	return Merge(results...)
}

func (fs *FeedService) readCache(ctx context.Context) []models.Event {
	data, err := fs.cache.Get(ctx, store.KeyFeedCache)
	if err != nil {
		fs.logger.Error("feed cache read failed", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		fs.logger.Error("feed cache is corrupt, ignoring", "error", err)
		return nil
	}
	return events
}

func (fs *FeedService) writeCache(ctx context.Context, events []models.Event) {
	data, err := json.Marshal(events)
	if err != nil {
		fs.logger.Error("feed cache encode failed", "error", err)
		return
	}
	if err := fs.cache.Set(ctx, store.KeyFeedCache, data, feedCacheTTL); err != nil {
		fs.logger.Error("feed cache write failed", "error", err)
	}
}
