package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayerStat is the aggregated draft position of one player across every pick
// that contributed to it.
type PlayerStat struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	Count           int     `json:"count"`
	AvgOverallPick  float64 `json:"avgOverallPick"`
	ModeOverallPick int     `json:"modeOverallPick"`
	AvgRoundPick    string  `json:"avgRoundPick"`
	ModeRoundPick   string  `json:"modeRoundPick"`
}

// CellKey addresses one square of the draft board.
type CellKey struct {
	Round int `json:"round"`
	Slot  int `json:"slot"`
}

func (k CellKey) String() string {
	return fmt.Sprintf("%d.%d", k.Round, k.Slot)
}

// MarshalText lets CellKey be used as a JSON object key ("round.slot").
func (k CellKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CellKey) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid cell key %q", text)
	}
	round, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid cell round %q: %w", parts[0], err)
	}
	slot, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid cell slot %q: %w", parts[1], err)
	}
	k.Round, k.Slot = round, slot
	return nil
}

// CellEntry is one distinct player seen in a draft board cell.
type CellEntry struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Count          int     `json:"count"`
	Pct            float64 `json:"pct"`
	AvgOverallPick float64 `json:"avgOverallPick"`
	RoundPick      string  `json:"roundPick"`
}

// DraftboardCell is the ordered list of players drafted in one cell.
type DraftboardCell struct {
	Round   int         `json:"round"`
	Slot    int         `json:"slot"`
	Total   int         `json:"total"`
	Entries []CellEntry `json:"entries"`
}

// GroupMeta is the board shape shared by every league in one group.
type GroupMeta struct {
	Teams  int `json:"teams"`
	Rounds int `json:"rounds"`
}

// LeagueBreakdown is a single league's own aggregation, kept for export.
type LeagueBreakdown struct {
	LeagueID     string                `json:"leagueId"`
	Name         string                `json:"name,omitempty"`
	DraftID      string                `json:"draftId"`
	Teams        int                   `json:"teams"`
	Rounds       int                   `json:"rounds"`
	ValidPicks   int                   `json:"validPicks"`
	SkippedPicks int                   `json:"skippedPicks"`
	Players      map[string]PlayerStat `json:"players"`
}

// GroupResult is the merged output for one group of leagues.
type GroupResult struct {
	Meta         GroupMeta                  `json:"meta"`
	FormatTeams  int                        `json:"formatTeams"`
	Players      map[string]PlayerStat      `json:"players"`
	Cells        map[CellKey]DraftboardCell `json:"cells"`
	Leagues      []LeagueBreakdown          `json:"leagues"`
	ValidPicks   int                        `json:"validPicks"`
	SkippedPicks int                        `json:"skippedPicks"`
}

// ComparisonRow compares one player across Side A and Side B.
// Delta is AdpA - AdpB: a negative delta means the player went earlier in A.
type ComparisonRow struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Position   string   `json:"position"`
	AdpA       *float64 `json:"adpA"`
	AdpB       *float64 `json:"adpB"`
	Delta      *float64 `json:"delta"`
	RoundPickA string   `json:"roundPickA"`
	RoundPickB string   `json:"roundPickB"`
}

// Comparison is the result of comparing two league groups.
type Comparison struct {
	SideA *GroupResult    `json:"sideA"`
	SideB *GroupResult    `json:"sideB,omitempty"`
	Rows  []ComparisonRow `json:"rows"`
}

// LeagueSummary is the trimmed league listing returned to clients.
type LeagueSummary struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	TotalRosters int    `json:"total_rosters,omitempty"`
}
