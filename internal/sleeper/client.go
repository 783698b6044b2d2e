// Package sleeper is a read-only client for the Sleeper fantasy API: users,
// leagues, drafts and draft picks. Responses are cached for a short TTL and
// concurrent identical requests share one upstream call.
package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/draftdelta/adp-api/internal/cache"
	"github.com/draftdelta/adp-api/internal/models"
)

const (
	DefaultBaseURL = "https://api.sleeper.app/v1"
	DefaultTimeout = 15 * time.Second

	// maxErrorBody caps how much of a failed response is kept for diagnostics.
	maxErrorBody = 2048
)

// ErrUserNotFound is returned when a username does not resolve to an account.
var ErrUserNotFound = errors.New("sleeper user not found")

// Prometheus metrics
var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adp_upstream_requests_total",
		Help: "Requests sent to the Sleeper API by endpoint and status code",
	}, []string{"endpoint", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "adp_upstream_request_duration_seconds",
		Help:    "Latency of Sleeper API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	Status int
	URL    string
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("sleeper HTTP %d for %s", e.Status, e.URL)
}

// Config configures the client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      cache.Cache
	Clock      cache.Clock
	Logger     *zap.Logger
}

// Client talks to the Sleeper API.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	cache   cache.Cache
	now     cache.Clock
	logger  *zap.SugaredLogger
	flight  singleflight.Group
}

// New creates a client. Missing fields fall back to defaults and a no-op cache.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.Nop{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		timeout: cfg.Timeout,
		cache:   cfg.Cache,
		now:     cfg.Clock,
		logger:  cfg.Logger.Sugar(),
	}
}

// fetch performs a GET and returns the raw body of a 2xx response.
func (c *Client) fetch(ctx context.Context, endpoint, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()
	upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{Status: resp.StatusCode, URL: u, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	return body, nil
}

// cachedList fetches a JSON list through the response cache. Statuses in
// emptyOn are cached and returned as an empty list.
func (c *Client) cachedList(ctx context.Context, key, endpoint, path string, emptyOn ...int) ([]byte, error) {
	if b, ok := c.cache.Get(ctx, key); ok {
		return b, nil
	}

	v, err, shared := c.flight.Do(key, func() (interface{}, error) {
		// Detached so one caller's cancellation does not fail every waiter;
		// fetch still applies the fixed timeout.
		ctx := context.WithoutCancel(ctx)
		body, err := c.fetch(ctx, endpoint, path)
		if err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) && containsStatus(emptyOn, httpErr.Status) {
				c.logger.Debugw("treating upstream status as empty result", "endpoint", endpoint, "status", httpErr.Status, "key", key)
				body = []byte("[]")
			} else {
				return nil, err
			}
		}
		c.cache.Put(ctx, key, body, c.now())
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debugw("shared in-flight upstream request", "key", key)
	}
	return v.([]byte), nil
}

func containsStatus(list []int, status int) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func decodeList[T any](body []byte, what string) ([]T, error) {
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return out, nil
}

// ResolveUser returns the user id for a username.
func (c *Client) ResolveUser(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", errors.New("missing username")
	}

	body, err := c.fetch(ctx, "user", "/user/"+url.PathEscape(username))
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return "", err
	}

	// Unknown users come back as 200 with a null body.
	var user *models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return "", fmt.Errorf("decode user: %w", err)
	}
	if user == nil || user.UserID == "" {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return user.UserID, nil
}

// UserLeagues lists a user's NFL leagues for a season.
func (c *Client) UserLeagues(ctx context.Context, userID, season string) ([]models.League, error) {
	userID, season = strings.TrimSpace(userID), strings.TrimSpace(season)
	if userID == "" {
		return nil, errors.New("missing user id")
	}
	if season == "" {
		return nil, errors.New("missing season")
	}

	path := fmt.Sprintf("/user/%s/leagues/nfl/%s", url.PathEscape(userID), url.PathEscape(season))
	body, err := c.fetch(ctx, "user_leagues", path)
	if err != nil {
		return nil, err
	}
	if string(body) == "null" {
		return []models.League{}, nil
	}
	return decodeList[models.League](body, "leagues")
}

// League fetches a single league. It is cached like drafts and picks.
func (c *Client) League(ctx context.Context, leagueID string) (*models.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, errors.New("missing league id")
	}

	key := "league:" + leagueID
	body, ok := c.cache.Get(ctx, key)
	if !ok {
		v, err, _ := c.flight.Do(key, func() (interface{}, error) {
			ctx := context.WithoutCancel(ctx)
			b, err := c.fetch(ctx, "league", "/league/"+url.PathEscape(leagueID))
			if err != nil {
				return nil, err
			}
			c.cache.Put(ctx, key, b, c.now())
			return b, nil
		})
		if err != nil {
			return nil, err
		}
		body = v.([]byte)
	}

	var league *models.League
	if err := json.Unmarshal(body, &league); err != nil {
		return nil, fmt.Errorf("decode league: %w", err)
	}
	if league == nil {
		return nil, &HTTPError{Status: http.StatusNotFound, URL: c.baseURL + "/league/" + leagueID}
	}
	return league, nil
}

// LeagueDrafts lists the drafts of a league. A league without a draft (404)
// yields an empty list.
func (c *Client) LeagueDrafts(ctx context.Context, leagueID string) ([]models.Draft, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return []models.Draft{}, nil
	}

	body, err := c.cachedList(ctx, "drafts:"+leagueID, "league_drafts",
		"/league/"+url.PathEscape(leagueID)+"/drafts", http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Draft](body, "drafts")
}

// DraftPicks lists every pick of a draft. 404 and 400 yield an empty list.
func (c *Client) DraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return []models.DraftPick{}, nil
	}

	body, err := c.cachedList(ctx, "picks:"+draftID, "draft_picks",
		"/draft/"+url.PathEscape(draftID)+"/picks", http.StatusNotFound, http.StatusBadRequest)
	if err != nil {
		return nil, err
	}
	return decodeList[models.DraftPick](body, "picks")
}
