package handlers

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/draftdelta/adp-api/internal/models"
)

// MockADPService
type MockADPService struct {
	UserLeaguesFunc func(ctx context.Context, q models.LeaguesQuery) ([]models.LeagueSummary, error)
	AggregateFunc   func(ctx context.Context, q models.GroupQuery) (*models.GroupResult, error)
	CompareFunc     func(ctx context.Context, q models.CompareQuery) (*models.Comparison, error)
}

func (m *MockADPService) UserLeagues(ctx context.Context, q models.LeaguesQuery) ([]models.LeagueSummary, error) {
	if m.UserLeaguesFunc != nil {
		return m.UserLeaguesFunc(ctx, q)
	}
	return []models.LeagueSummary{}, nil
}

func (m *MockADPService) Aggregate(ctx context.Context, q models.GroupQuery) (*models.GroupResult, error) {
	if m.AggregateFunc != nil {
		return m.AggregateFunc(ctx, q)
	}
	return &models.GroupResult{}, nil
}

func (m *MockADPService) Compare(ctx context.Context, q models.CompareQuery) (*models.Comparison, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, q)
	}
	return &models.Comparison{}, nil
}

// MockPinger
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.Err)
}

var errBoom = errors.New("boom")
