package models

import "time"

type EventType string

const (
	EventParty      EventType = "party"
	EventConcert    EventType = "concert"
	EventGathering  EventType = "gathering"
	EventDinner     EventType = "dinner"
	EventTournament EventType = "tournament"
	EventOther      EventType = "other"
)

// ParseEventType maps a raw type string onto the closed enumeration.
// Anything unrecognized becomes EventOther.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventParty, EventConcert, EventGathering, EventDinner, EventTournament:
		return EventType(s)
	default:
		return EventOther
	}
}

type Attendee struct {
	UserID      string `bson:"user_id" json:"user_id"`
	DisplayName string `bson:"display_name" json:"display_name"`
}

// Event is the normalized record every source adapter produces and every
// view consumes. The ID carries a provenance prefix ("band-", "tournament-",
// "real-band-", or the remote API's own id) so ids never collide across
// sources. EventDate is the single instant used for ordering and windowing.
// Attendees is joined on at read time by the feed assembler; adapters leave
// it empty. SourceMeta is carried through untouched.
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	EventDate   time.Time      `json:"event_date"`
	EventType   EventType      `json:"event_type"`
	Location    string         `json:"location,omitempty"`
	Attendees   []Attendee     `json:"attendees,omitempty"`
	SourceMeta  map[string]any `json:"source_meta,omitempty"`
}
