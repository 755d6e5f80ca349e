package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/sources"
	"github.com/sandycove/clubapi/internal/store"
)

// EventService handles event creation: local band and tournament entries go
// into the cache blobs, user events are forwarded to the remote API. Every
// successful write invalidates the feed cache so the next read is fresh.
type EventService struct {
	blobs  store.BlobStore
	remote *sources.RemoteAdapter
	feed   *FeedService
	logger *slog.Logger

	mu sync.Mutex // serializes blob read-modify-write
}

func NewEventService(blobs store.BlobStore, remote *sources.RemoteAdapter, feed *FeedService, logger *slog.Logger) *EventService {
	return &EventService{
		blobs:  blobs,
		remote: remote,
		feed:   feed,
		logger: logger,
	}
}

func (es *EventService) AddBand(ctx context.Context, band *models.BandRecord) (*models.BandRecord, error) {
	if err := models.Validate.Struct(band); err != nil {
		return nil, fmt.Errorf("invalid band data provided: %v", err)
	}
	if band.ID == "" {
		band.ID = uuid.New().String()
	}

	if err := appendToBlob(ctx, es, store.KeyBands, band); err != nil {
		return nil, err
	}
	es.feed.InvalidateCache(ctx)
	es.logger.Info("band added", "band", band.Name, "added_by", band.AddedBy)
	return band, nil
}

func (es *EventService) AddTournament(ctx context.Context, tournament *models.TournamentRecord) (*models.TournamentRecord, error) {
	if err := models.Validate.Struct(tournament); err != nil {
		return nil, fmt.Errorf("invalid tournament data provided: %v", err)
	}
	if tournament.ID == "" {
		tournament.ID = uuid.New().String()
	}

	if err := appendToBlob(ctx, es, store.KeyTournaments, tournament); err != nil {
		return nil, err
	}
	es.feed.InvalidateCache(ctx)
	es.logger.Info("tournament added", "tournament", tournament.Name, "created_by", tournament.CreatedBy)
	return tournament, nil
}

func (es *EventService) CreateRemoteEvent(ctx context.Context, bearerToken string, input *models.RemoteEventInput) error {
	if err := models.Validate.Struct(input); err != nil {
		return fmt.Errorf("invalid event data provided: %v", err)
	}

	if err := es.remote.CreateEvent(ctx, bearerToken, input); err != nil {
		return err
	}
	es.feed.InvalidateCache(ctx)
	return nil
}

// appendToBlob decodes the named blob as a JSON array of T, appends rec and
// writes it back under the blob-write lock.
func appendToBlob[T any](ctx context.Context, es *EventService, key string, rec T) error {
	es.mu.Lock()
	defer es.mu.Unlock()

	var records []T
	data, err := es.blobs.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("error reading %s: %v", key, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			// A corrupt blob is treated as empty on read; on write we
			// start over rather than refusing the user's addition.
			es.logger.Error("blob is corrupt, rewriting", "key", key, "error", err)
			records = nil
		}
	}

	records = append(records, rec)
	updated, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("error encoding %s: %v", key, err)
	}
	if err := es.blobs.Set(ctx, key, updated, 0); err != nil {
		return fmt.Errorf("error writing %s: %v", key, err)
	}
	return nil
}
