package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/sources"
	"github.com/sandycove/clubapi/internal/store"
)

type stubAdapter struct {
	name   string
	events []models.Event
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) ListEvents(_ context.Context, _ time.Time) []models.Event {
	return s.events
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventAt(id string, at time.Time) models.Event {
	return models.Event{ID: id, Title: id, EventDate: at, EventType: models.EventOther}
}

func newTestFeed(adapters ...sources.Adapter) *FeedService {
	attendance := NewAttendanceService(newMemoryAttendanceRepo())
	return NewFeedService(adapters, attendance, store.NewMemoryBlobStore(), discardLogger())
}

func TestMergeKeepsEverySourceEvent(t *testing.T) {
	now := time.Now()
	a := []models.Event{eventAt("a-1", now), eventAt("a-2", now)}
	b := []models.Event{eventAt("b-1", now)}
	c := []models.Event{eventAt("c-1", now), eventAt("c-2", now), eventAt("c-3", now), eventAt("c-4", now)}

	merged := Merge(a, b, c)
	if len(merged) != 7 {
		t.Fatalf("merged size = %d, want 7 (no dedup)", len(merged))
	}

	seen := make(map[string]bool)
	for _, ev := range merged {
		if seen[ev.ID] {
			t.Errorf("duplicate id in merged collection: %s", ev.ID)
		}
		seen[ev.ID] = true
	}
}

func TestSelectUpcomingFiltersSortsAndTruncates(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	events := []models.Event{
		eventAt("past", now.AddDate(0, 0, -1)),
		eventAt("later", now.AddDate(0, 0, 10)),
		eventAt("soon", now.AddDate(0, 0, 1)),
		eventAt("today", now),
		eventAt("way-later", now.AddDate(0, 1, 0)),
	}

	got := SelectUpcoming(events, now, 3)
	if len(got) != 3 {
		t.Fatalf("result length = %d, want 3", len(got))
	}
	for i, ev := range got {
		if ev.EventDate.Before(now) {
			t.Errorf("event %s is in the past", ev.ID)
		}
		if i > 0 && got[i-1].EventDate.After(ev.EventDate) {
			t.Errorf("result not sorted ascending at index %d", i)
		}
	}
	if got[0].ID != "today" || got[1].ID != "soon" || got[2].ID != "later" {
		t.Errorf("unexpected order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestSelectUpcomingIsStableOnTies(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	sameDay := now.AddDate(0, 0, 7)

	events := []models.Event{
		eventAt("first-band", sameDay),
		eventAt("second-band", sameDay),
		eventAt("third-band", sameDay),
	}

	got := SelectUpcoming(events, now, 0)
	if len(got) != 3 {
		t.Fatalf("result length = %d, want 3", len(got))
	}
	if got[0].ID != "first-band" || got[1].ID != "second-band" || got[2].ID != "third-band" {
		t.Errorf("tied events must keep input order, got %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestUpcomingFeedJoinsAttendees(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	adapter := &stubAdapter{name: "stub", events: []models.Event{
		eventAt("evt-1", now.AddDate(0, 0, 1)),
		eventAt("evt-2", now.AddDate(0, 0, 2)),
	}}

	fs := newTestFeed(adapter)
	ctx := context.Background()

	if _, err := fs.attendance.Toggle(ctx, "evt-1", "u1", "Ann"); err != nil {
		t.Fatal(err)
	}

	feed, err := fs.UpcomingFeed(ctx, now, 0)
	if err != nil {
		t.Fatalf("UpcomingFeed failed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
	if len(feed[0].Attendees) != 1 || feed[0].Attendees[0].DisplayName != "Ann" {
		t.Errorf("evt-1 attendees = %v, want [Ann]", feed[0].Attendees)
	}
	if len(feed[1].Attendees) != 0 {
		t.Errorf("evt-2 should have no attendees, got %v", feed[1].Attendees)
	}
}

func TestUpcomingFeedDefaultLimit(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	var events []models.Event
	for i := 1; i <= 6; i++ {
		events = append(events, eventAt(fmt.Sprintf("evt-%d", i), now.AddDate(0, 0, i)))
	}

	fs := newTestFeed(&stubAdapter{name: "stub", events: events})

	feed, err := fs.UpcomingFeed(context.Background(), now, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != DefaultFeedLimit {
		t.Errorf("feed length = %d, want default %d", len(feed), DefaultFeedLimit)
	}
}

func TestFeedSurvivesEmptySource(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	healthy := &stubAdapter{name: "healthy", events: []models.Event{
		eventAt("evt-1", now.AddDate(0, 0, 1)),
	}}
	failed := &stubAdapter{name: "failed"} // a failed adapter contributes nothing

	fs := newTestFeed(healthy, failed)

	feed, err := fs.UpcomingFeed(context.Background(), now, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 1 || feed[0].ID != "evt-1" {
		t.Errorf("one dead source must not starve the feed, got %v", feed)
	}
}

func TestUpcomingMusicFiltersConcertsWithinWindow(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	concertSoon := eventAt("concert-soon", now.AddDate(0, 0, 5))
	concertSoon.EventType = models.EventConcert
	concertFar := eventAt("concert-far", now.AddDate(0, 2, 0)) // beyond 30 days
	concertFar.EventType = models.EventConcert
	tournament := eventAt("tournament", now.AddDate(0, 0, 3))
	tournament.EventType = models.EventTournament

	fs := newTestFeed(&stubAdapter{name: "stub", events: []models.Event{concertSoon, concertFar, tournament}})

	got := fs.UpcomingMusic(context.Background(), now, 0)
	if len(got) != 1 {
		t.Fatalf("highlight list length = %d, want 1", len(got))
	}
	if got[0].ID != "concert-soon" {
		t.Errorf("highlight = %s, want concert-soon", got[0].ID)
	}
}

func TestRSVPRequiresIdentity(t *testing.T) {
	fs := newTestFeed(&stubAdapter{name: "stub"})

	result := fs.RSVP(context.Background(), "evt-1", "", "Ann")
	if result.Success {
		t.Error("RSVP without identity must fail")
	}
	if !result.SignInRequired {
		t.Error("missing identity should be flagged as sign-in required")
	}
}

func TestRSVPTogglesStatus(t *testing.T) {
	fs := newTestFeed(&stubAdapter{name: "stub"})
	ctx := context.Background()

	result := fs.RSVP(ctx, "evt-1", "u1", "Ann")
	if !result.Success || result.NewStatus != models.RSVPGoing {
		t.Fatalf("first RSVP = %+v, want going", result)
	}

	result = fs.RSVP(ctx, "evt-1", "u1", "Ann")
	if !result.Success || result.NewStatus != models.RSVPNone {
		t.Fatalf("second RSVP = %+v, want none", result)
	}
}

func TestFeedCacheInvalidation(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	adapter := &stubAdapter{name: "stub", events: []models.Event{
		eventAt("evt-1", now.AddDate(0, 0, 1)),
	}}

	fs := newTestFeed(adapter)
	ctx := context.Background()

	if _, err := fs.UpcomingFeed(ctx, now, 0); err != nil {
		t.Fatal(err)
	}

	// The cached collection masks source changes until invalidated.
	adapter.events = append(adapter.events, eventAt("evt-2", now.AddDate(0, 0, 2)))

	feed, err := fs.UpcomingFeed(ctx, now, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 1 {
		t.Fatalf("cached feed length = %d, want 1", len(feed))
	}

	fs.InvalidateCache(ctx)

	feed, err = fs.UpcomingFeed(ctx, now, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 2 {
		t.Errorf("feed after invalidation = %d events, want 2", len(feed))
	}
}
