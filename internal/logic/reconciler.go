package logic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftdelta/adp-api/internal/models"
)

// DraftSource is the upstream collaborator the reconciler reads from.
type DraftSource interface {
	LeagueDrafts(ctx context.Context, leagueID string) ([]models.Draft, error)
	DraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error)
}

// leagueLookup is implemented by sources that can fetch league details. It is
// used to name leagues whose draft carries no name.
type leagueLookup interface {
	League(ctx context.Context, leagueID string) (*models.League, error)
}

// ReconcilerConfig configures a Reconciler.
type ReconcilerConfig struct {
	Source DraftSource
	// KeyFunc decides player identity; nil means NamePositionKey.
	KeyFunc PlayerKeyFunc
	// Concurrency bounds parallel upstream calls per group; <= 0 means 8.
	Concurrency int
	// DefaultTeams formats round.pick labels when a draft reports no team
	// count; <= 0 means DefaultTeams.
	DefaultTeams int
	Logger       *zap.Logger
}

// Reconciler aggregates several leagues into one group result.
type Reconciler struct {
	source      DraftSource
	keyFn        PlayerKeyFunc
	concurrency  int
	defaultTeams int
	logger       *zap.SugaredLogger
}

func NewReconciler(cfg ReconcilerConfig) *Reconciler {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = NamePositionKey
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Reconciler{
		source:       cfg.Source,
		keyFn:        cfg.KeyFunc,
		concurrency:  cfg.Concurrency,
		defaultTeams: normalizeTeams(cfg.DefaultTeams),
		logger:       cfg.Logger.Sugar(),
	}
}

// PrimaryDraft picks the draft that represents a league: the first completed
// draft, otherwise the first draft listed.
func PrimaryDraft(drafts []models.Draft) (models.Draft, bool) {
	if len(drafts) == 0 {
		return models.Draft{}, false
	}
	for _, d := range drafts {
		if strings.EqualFold(strings.TrimSpace(d.Status), "complete") {
			return d, true
		}
	}
	return drafts[0], true
}

// normalizeLeagueIDs trims ids, drops blanks and duplicates, keeping order.
func normalizeLeagueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type resolvedLeague struct {
	shape LeagueShape
	found bool
}

// resolveDrafts finds every league's primary draft concurrently. Results are
// indexed like ids.
func (r *Reconciler) resolveDrafts(ctx context.Context, ids []string) ([]resolvedLeague, error) {
	out := make([]resolvedLeague, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			drafts, err := r.source.LeagueDrafts(ctx, id)
			if err != nil {
				return fmt.Errorf("%w: drafts for league %s: %w", ErrUpstream, id, err)
			}
			d, ok := PrimaryDraft(drafts)
			if !ok {
				return nil
			}
			out[i] = resolvedLeague{
				found: true,
				shape: LeagueShape{
					LeagueID: id,
					Name:     strings.TrimSpace(d.Metadata.Name),
					DraftID:  d.DraftID,
					Teams:    d.Settings.Teams.Int(),
					Rounds:   d.Settings.Rounds.Int(),
				},
			}
			if out[i].shape.Name == "" {
				out[i].shape.Name = r.leagueName(ctx, id)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// leagueName is best effort: a failed lookup leaves the league unnamed.
func (r *Reconciler) leagueName(ctx context.Context, leagueID string) string {
	lookup, ok := r.source.(leagueLookup)
	if !ok {
		return ""
	}
	league, err := lookup.League(ctx, leagueID)
	if err != nil {
		r.logger.Debugw("league name lookup failed", "league", leagueID, "error", err)
		return ""
	}
	return strings.TrimSpace(league.Name)
}

// validateShapes checks every league against the first one. It returns the
// shared meta or a *StructuralMismatchError.
func validateShapes(leagues []LeagueShape) (models.GroupMeta, error) {
	ref := leagues[0]
	meta := models.GroupMeta{Teams: ref.Teams, Rounds: ref.Rounds}

	var offenders []LeagueShape
	total := 0
	for _, l := range leagues[1:] {
		if l.Teams == ref.Teams && l.Rounds == ref.Rounds {
			continue
		}
		total++
		if len(offenders) < maxReportedOffenders {
			offenders = append(offenders, l)
		}
	}
	if total > 0 {
		return meta, &StructuralMismatchError{
			Expected:  meta,
			Reference: ref,
			Offenders: offenders,
			Total:     total,
		}
	}
	return meta, nil
}

// AggregateLeagues merges the primary drafts of leagueIDs into one result.
// Leagues without a draft contribute nothing. All remaining leagues must share
// team and round counts. Stats are computed from summed raw picks, so larger
// drafts weigh proportionally more. teamsOverride, when positive, replaces the
// detected team count for round.pick labels.
func (r *Reconciler) AggregateLeagues(ctx context.Context, leagueIDs []string, teamsOverride int) (*models.GroupResult, error) {
	start := time.Now()
	defer func() { aggregationDuration.Observe(time.Since(start).Seconds()) }()

	ids := normalizeLeagueIDs(leagueIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one league id is required", ErrInvalidInput)
	}

	resolved, err := r.resolveDrafts(ctx, ids)
	if err != nil {
		return nil, err
	}

	leagues := make([]LeagueShape, 0, len(resolved))
	for _, rl := range resolved {
		if !rl.found {
			continue
		}
		leagues = append(leagues, rl.shape)
	}
	if skipped := len(ids) - len(leagues); skipped > 0 {
		leagueOutcomes.WithLabelValues("no_draft").Add(float64(skipped))
		r.logger.Infow("leagues without a draft excluded", "excluded", skipped, "requested", len(ids))
	}
	if len(leagues) == 0 {
		return nil, ErrNoDrafts
	}

	meta, err := validateShapes(leagues)
	if err != nil {
		leagueOutcomes.WithLabelValues("mismatch").Inc()
		r.logger.Warnw("league group rejected", "error", err)
		return nil, err
	}
	leagueOutcomes.WithLabelValues("ok").Add(float64(len(leagues)))

	// Fan out: one accumulator per league, filled concurrently.
	perLeague := make([]*Accumulator, len(leagues))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, l := range leagues {
		g.Go(func() error {
			picks, err := r.source.DraftPicks(gctx, l.DraftID)
			if err != nil {
				return fmt.Errorf("%w: picks for draft %s (league %s): %w", ErrUpstream, l.DraftID, l.LeagueID, err)
			}
			acc := NewAccumulator(r.keyFn)
			acc.AddAll(picks)
			perLeague[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	formatTeams := teamsOverride
	if formatTeams <= 0 {
		formatTeams = meta.Teams
	}
	if formatTeams <= 0 {
		formatTeams = r.defaultTeams
	}

	// Fan in: merging is order independent; input order keeps logs stable.
	group := NewAccumulator(r.keyFn)
	breakdown := make([]models.LeagueBreakdown, 0, len(leagues))
	for i, l := range leagues {
		acc := perLeague[i]
		group.Merge(acc)
		if acc.Skipped() > 0 {
			r.logger.Warnw("dropped malformed picks", "league", l.LeagueID, "draft", l.DraftID, "skipped", acc.Skipped(), "valid", acc.Valid())
		}
		breakdown = append(breakdown, models.LeagueBreakdown{
			LeagueID:     l.LeagueID,
			Name:         l.Name,
			DraftID:      l.DraftID,
			Teams:        l.Teams,
			Rounds:       l.Rounds,
			ValidPicks:   acc.Valid(),
			SkippedPicks: acc.Skipped(),
			Players:      acc.Players(formatTeams),
		})
	}

	picksAggregated.Add(float64(group.Valid()))
	picksSkipped.Add(float64(group.Skipped()))

	r.logger.Infow("aggregated league group",
		"leagues", len(leagues),
		"teams", meta.Teams,
		"rounds", meta.Rounds,
		"players", len(group.players),
		"validPicks", group.Valid(),
		"skippedPicks", group.Skipped(),
	)

	return &models.GroupResult{
		Meta:         meta,
		FormatTeams:  formatTeams,
		Players:      group.Players(formatTeams),
		Cells:        group.Cells(formatTeams),
		Leagues:      breakdown,
		ValidPicks:   group.Valid(),
		SkippedPicks: group.Skipped(),
	}, nil
}
