package logic

import (
	"context"

	"github.com/draftdelta/adp-api/internal/models"
)

// LeagueDirectory resolves users to their leagues.
type LeagueDirectory interface {
	ResolveUser(ctx context.Context, username string) (string, error)
	UserLeagues(ctx context.Context, userID, season string) ([]models.League, error)
}

// Upstream is the full read surface of the draft data source.
type Upstream interface {
	LeagueDirectory
	DraftSource
}

// ADPService answers league listing, aggregation and comparison queries.
type ADPService interface {
	UserLeagues(ctx context.Context, q models.LeaguesQuery) ([]models.LeagueSummary, error)
	Aggregate(ctx context.Context, q models.GroupQuery) (*models.GroupResult, error)
	Compare(ctx context.Context, q models.CompareQuery) (*models.Comparison, error)
}
