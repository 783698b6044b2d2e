package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/draftdelta/adp-api/internal/logic"
)

// Pinger is satisfied by *redis.Client; it backs the readiness check.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	// Redis is optional; when nil the readiness check skips it.
	Redis  Pinger
	Logger *zap.Logger
	// Services
	ADP logic.ADPService
	// DefaultSeason is used when a league listing omits ?season=.
	DefaultSeason string
}

type Handler struct {
	redis         Pinger
	logger        *zap.SugaredLogger
	validator     *validator.Validate
	adp           logic.ADPService
	defaultSeason string
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		redis:         cfg.Redis,
		logger:        logger.Sugar(),
		validator:     validator.New(),
		adp:           cfg.ADP,
		defaultSeason: cfg.DefaultSeason,
	}
}
