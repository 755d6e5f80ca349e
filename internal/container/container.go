package container

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/sandycove/clubapi/internal/config"
	"github.com/sandycove/clubapi/internal/guide"
	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/services"
	"github.com/sandycove/clubapi/internal/sources"
	"github.com/sandycove/clubapi/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger            *slog.Logger
	MongoDBClient     *mongo.Client
	RedisClient       *redis.Client
	AttendanceService *services.AttendanceService
	FeedService       *services.FeedService
	EventService      *services.EventService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
	cfg *config.Config,
) (*Container, error) {
	bandGuide, err := guide.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load band guide: %v", err)
	}

	repo := models.MongodbNewRepo(mongoDBClient)
	blobs := store.NewRedisBlobStore(redisClient)

	remote := sources.NewRemoteAdapter(cfg.EventsAPIURL, cfg.EventsAPIToken, logger)
	adapters := []sources.Adapter{
		remote,
		sources.NewLocalCacheAdapter(blobs, logger),
		sources.NewCuratedAdapter(bandGuide, logger),
	}

	attendanceService := services.NewAttendanceService(repo)
	feedService := services.NewFeedService(adapters, attendanceService, blobs, logger)
	eventService := services.NewEventService(blobs, remote, feedService, logger)

	return &Container{
		Logger:            logger,
		MongoDBClient:     mongoDBClient,
		RedisClient:       redisClient,
		AttendanceService: attendanceService,
		FeedService:       feedService,
		EventService:      eventService,
	}, nil
}
