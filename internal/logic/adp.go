package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftdelta/adp-api/internal/models"
)

type adpService struct {
	directory  LeagueDirectory
	reconciler *Reconciler
	logger     *zap.SugaredLogger
}

// NewADPService wires the upstream client and reconciler into one service.
func NewADPService(upstream Upstream, reconciler *Reconciler, logger *zap.Logger) ADPService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reconciler == nil {
		reconciler = NewReconciler(ReconcilerConfig{Source: upstream, Logger: logger})
	}
	return &adpService{
		directory:  upstream,
		reconciler: reconciler,
		logger:     logger.Sugar(),
	}
}

// UserLeagues lists a user's leagues for a season, sorted by name.
func (s *adpService) UserLeagues(ctx context.Context, q models.LeaguesQuery) ([]models.LeagueSummary, error) {
	username := strings.TrimSpace(q.Username)
	season := strings.TrimSpace(q.Season)
	if username == "" {
		return nil, fmt.Errorf("%w: missing username", ErrInvalidInput)
	}
	if season == "" {
		return nil, fmt.Errorf("%w: missing season", ErrInvalidInput)
	}

	userID, err := s.directory.ResolveUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve user %s: %w", ErrUpstream, username, err)
	}
	leagues, err := s.directory.UserLeagues(ctx, userID, season)
	if err != nil {
		return nil, fmt.Errorf("%w: leagues for user %s: %w", ErrUpstream, username, err)
	}

	out := make([]models.LeagueSummary, 0, len(leagues))
	for _, l := range leagues {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			name = "Unnamed League"
		}
		out = append(out, models.LeagueSummary{
			LeagueID:     l.LeagueID,
			Name:         name,
			Season:       l.Season.String(),
			TotalRosters: l.TotalRosters.Int(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Aggregate merges one group of leagues.
func (s *adpService) Aggregate(ctx context.Context, q models.GroupQuery) (*models.GroupResult, error) {
	return s.reconciler.AggregateLeagues(ctx, q.LeagueIDs, q.Teams)
}

// Compare aggregates both sides concurrently and compares them. With no
// Side B leagues every row carries only Side A data.
func (s *adpService) Compare(ctx context.Context, q models.CompareQuery) (*models.Comparison, error) {
	if len(normalizeLeagueIDs(q.SideA)) == 0 {
		return nil, fmt.Errorf("%w: side A needs at least one league id", ErrInvalidInput)
	}
	hasB := len(normalizeLeagueIDs(q.SideB)) > 0

	var sideA, sideB *models.GroupResult
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.reconciler.AggregateLeagues(ctx, q.SideA, q.Teams)
		if err != nil {
			return fmt.Errorf("side A: %w", err)
		}
		sideA = res
		return nil
	})
	if hasB {
		g.Go(func() error {
			res, err := s.reconciler.AggregateLeagues(ctx, q.SideB, q.Teams)
			if err != nil {
				return fmt.Errorf("side B: %w", err)
			}
			sideB = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var playersB map[string]models.PlayerStat
	if sideB != nil {
		playersB = sideB.Players
		if sideA.Meta != sideB.Meta {
			s.logger.Infow("comparing groups with different board shapes",
				"sideA", sideA.Meta, "sideB", sideB.Meta)
		}
	}

	return &models.Comparison{
		SideA: sideA,
		SideB: sideB,
		Rows:  Compare(sideA.Players, playersB),
	}, nil
}
