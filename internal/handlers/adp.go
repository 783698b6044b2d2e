package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/draftdelta/adp-api/internal/logic"
	"github.com/draftdelta/adp-api/internal/models"
)

// DraftboardResponse is the draftboard view of one league group.
type DraftboardResponse struct {
	Meta        models.GroupMeta        `json:"meta"`
	FormatTeams int                     `json:"formatTeams"`
	Cells       []models.DraftboardCell `json:"cells"`
}

// ListUserLeagues returns the leagues a Sleeper user belongs to
// @Summary List User Leagues
// @Description Resolve a Sleeper username and list their leagues for a season, sorted by name
// @Tags Leagues
// @Produce json
// @Param username path string true "Sleeper username"
// @Param season query string false "Season year (defaults to the configured season)"
// @Success 200 {array} models.LeagueSummary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown user"
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /users/{username}/leagues [get]
func (h *Handler) ListUserLeagues(w http.ResponseWriter, r *http.Request) {
	q := models.LeaguesQuery{
		Username: strings.TrimSpace(chi.URLParam(r, "username")),
		Season:   strings.TrimSpace(r.URL.Query().Get("season")),
	}
	if q.Season == "" {
		q.Season = h.defaultSeason
	}
	if err := h.validator.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid username or season")
		return
	}

	leagues, err := h.adp.UserLeagues(r.Context(), q)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, leagues)
}

// GetADP returns the merged ADP of a group of leagues
// @Summary Get Group ADP
// @Description Aggregate the primary drafts of the given leagues into per-player ADP and draftboard cells
// @Tags ADP
// @Produce json
// @Param leagues query string true "Comma separated league ids"
// @Param teams query int false "Team count used for round.pick labels"
// @Success 200 {object} models.GroupResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No drafts found"
// @Failure 422 {object} map[string]interface{} "League shapes differ"
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /adp [get]
func (h *Handler) GetADP(w http.ResponseWriter, r *http.Request) {
	q, ok := h.groupQuery(w, r)
	if !ok {
		return
	}

	result, err := h.adp.Aggregate(r.Context(), q)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

// GetDraftboard returns the draftboard cells of a group of leagues
// @Summary Get Draftboard
// @Description Aggregate the given leagues and return board cells ordered by round then slot
// @Tags ADP
// @Produce json
// @Param leagues query string true "Comma separated league ids"
// @Param teams query int false "Team count used for round.pick labels"
// @Success 200 {object} DraftboardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No drafts found"
// @Failure 422 {object} map[string]interface{} "League shapes differ"
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /draftboard [get]
func (h *Handler) GetDraftboard(w http.ResponseWriter, r *http.Request) {
	q, ok := h.groupQuery(w, r)
	if !ok {
		return
	}

	result, err := h.adp.Aggregate(r.Context(), q)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	cells := make([]models.DraftboardCell, 0, len(result.Cells))
	for _, c := range result.Cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Round != cells[j].Round {
			return cells[i].Round < cells[j].Round
		}
		return cells[i].Slot < cells[j].Slot
	})

	h.jsonResponse(w, http.StatusOK, DraftboardResponse{
		Meta:        result.Meta,
		FormatTeams: result.FormatTeams,
		Cells:       cells,
	})
}

// Compare returns a Side A vs Side B ADP comparison
// @Summary Compare League Groups
// @Description Compare two league groups player by player. Delta is adpA - adpB; negative means the player went earlier in A. Without b only Side A is returned.
// @Tags ADP
// @Produce json
// @Param a query string true "Comma separated Side A league ids"
// @Param b query string false "Comma separated Side B league ids"
// @Param teams query int false "Team count used for round.pick labels"
// @Param sort query string false "name, position, adpA, adpB, delta, absDelta, roundPickA or roundPickB"
// @Param order query string false "asc or desc"
// @Success 200 {object} models.Comparison
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No drafts found"
// @Failure 422 {object} map[string]interface{} "League shapes differ"
// @Failure 502 {object} map[string]string "Upstream failure"
// @Router /compare [get]
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	teams, err := parseTeams(query.Get("teams"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "teams must be an integer")
		return
	}
	q := models.CompareQuery{
		SideA: splitIDs(query["a"]),
		SideB: splitIDs(query["b"]),
		Teams: teams,
	}
	if err := h.validator.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "a must list 1-50 league ids, b at most 50, teams 0-32")
		return
	}

	field := query.Get("sort")
	if field != "" && !logic.IsSortField(field) {
		h.errorResponse(w, http.StatusBadRequest, "unknown sort field: "+field)
		return
	}
	order := strings.ToLower(query.Get("order"))
	if order != "" && order != "asc" && order != "desc" {
		h.errorResponse(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	cmp, err := h.adp.Compare(r.Context(), q)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	// Biggest movers first when there is a Side B, else plain ADP order.
	if field == "" {
		field = logic.SortByAdpA
		if cmp.SideB != nil {
			field = logic.SortByAbsDelta
			if order == "" {
				order = "desc"
			}
		}
	}
	logic.SortRows(cmp.Rows, field, order == "desc")

	h.jsonResponse(w, http.StatusOK, cmp)
}

func (h *Handler) groupQuery(w http.ResponseWriter, r *http.Request) (models.GroupQuery, bool) {
	query := r.URL.Query()

	teams, err := parseTeams(query.Get("teams"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "teams must be an integer")
		return models.GroupQuery{}, false
	}
	q := models.GroupQuery{
		LeagueIDs: splitIDs(query["leagues"]),
		Teams:     teams,
	}
	if err := h.validator.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "leagues must list 1-50 league ids, teams 0-32")
		return models.GroupQuery{}, false
	}
	return q, true
}

// splitIDs accepts both repeated parameters and comma separated lists.
func splitIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func parseTeams(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}
