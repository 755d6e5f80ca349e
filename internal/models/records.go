package models

// BandRecord is a user-added band entry as stored in the "beach_bands"
// blob. Date is YYYY-MM-DD from the add-band form; Time is a clock label
// like "6:00 PM".
type BandRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Genre   string `json:"genre"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time"`
	AddedBy string `json:"addedBy"`
}

// TournamentRecord is a bags tournament entry as stored in the
// "bags_tournaments" blob. Type is the player count, e.g. "4".
type TournamentRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy"`
}

// RemoteEventInput is the payload forwarded to the remote events API when a
// user creates an event through this service.
type RemoteEventInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" validate:"required"`
	EventTime   string `json:"event_time"`
	EventType   string `json:"event_type"`
	Location    string `json:"location"`
}
