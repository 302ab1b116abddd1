package container

import (
	"log/slog"

	"github.com/joshua-takyi/eventhall/internal/cache"
	"github.com/joshua-takyi/eventhall/internal/config"
	"github.com/joshua-takyi/eventhall/internal/events"
	"github.com/joshua-takyi/eventhall/internal/handlers"
	"github.com/joshua-takyi/eventhall/internal/helpers"
	"github.com/joshua-takyi/eventhall/internal/models"
	"github.com/joshua-takyi/eventhall/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	DB       handlers.Pinger

	UserService    *services.UserService
	SessionService *services.SessionService
	BookingService *services.BookingService
}

// Repos groups the stores the services run on.
type Repos struct {
	Users       models.UserRepo
	Bookings    models.BookingRepo
	DB          handlers.Pinger
	Revocations cache.RevocationStore
	Publisher   events.Publisher
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, repos Repos) (*Container, error) {
	tokens, err := helpers.NewTokenManager(map[string]string{cfg.JWTKeyID: cfg.JWTSecret}, cfg.JWTKeyID, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	if repos.Revocations == nil {
		repos.Revocations = cache.NewMemoryRevocations()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Registry:       registry,
		DB:             repos.DB,
		UserService:    services.NewUserService(repos.Users),
		SessionService: services.NewSessionService(tokens, repos.Revocations),
		BookingService: services.NewBookingService(repos.Bookings, repos.Publisher, logger),
	}, nil
}
