package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandycove/clubapi/internal/guide"
	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/schedule"
)

// CuratedAdapter expands the embedded band guide into concert events. A
// guide entry with several comma-separated dates becomes several events,
// one per resolved instant, each with its own synthesized id.
type CuratedAdapter struct {
	guide  *guide.Guide
	logger *slog.Logger
}

func NewCuratedAdapter(g *guide.Guide, logger *slog.Logger) *CuratedAdapter {
	return &CuratedAdapter{guide: g, logger: logger}
}

func (ca *CuratedAdapter) Name() string { return "curated" }

func (ca *CuratedAdapter) ListEvents(_ context.Context, now time.Time) []models.Event {
	var events []models.Event

	for _, category := range ca.guide.Categories {
		for _, band := range category.Bands {
			if band.Date == "" {
				continue
			}

			occurrences := schedule.ExpandDates(band.Date, band.Time, now)
			if len(occurrences) == 0 {
				ca.logger.Warn("guide entry yielded no dates", "band", band.Name, "date", band.Date)
				continue
			}

			description := band.Vibe
			if description == "" {
				description = band.Description
			}

			for _, occ := range occurrences {
				events = append(events, models.Event{
					ID:          "real-band-" + band.Name + "-" + occ.DateLabel,
					Title:       band.Name + " Live",
					Description: description,
					EventDate:   occ.At,
					EventType:   models.EventConcert,
					Location:    bandStage,
					SourceMeta: map[string]any{
						"rating":     band.Rating,
						"category":   category.Name,
						"time_label": occ.TimeLabel,
					},
				})
			}
		}
	}

	return events
}
