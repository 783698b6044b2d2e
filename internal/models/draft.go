package models

// Upstream payload shapes. Only the fields the aggregation engine reads are
// declared; everything else in the source payloads is ignored.

// User is an upstream account.
type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// League is one fantasy league for a season.
type League struct {
	LeagueID     string         `json:"league_id"`
	Name         string         `json:"name"`
	Season       FlexString     `json:"season"`
	TotalRosters FlexInt        `json:"total_rosters,omitempty"`
	Status       string         `json:"status,omitempty"`
	Settings     map[string]any `json:"settings,omitempty"`
}

// DraftSettings describes the structure of a draft board.
type DraftSettings struct {
	Teams  FlexInt `json:"teams"`
	Rounds FlexInt `json:"rounds"`
}

// DraftMetadata carries optional display data for a draft.
type DraftMetadata struct {
	Name        string `json:"name,omitempty"`
	ScoringType string `json:"scoring_type,omitempty"`
}

// Draft is one draft attached to a league.
type Draft struct {
	DraftID  string        `json:"draft_id"`
	LeagueID string        `json:"league_id"`
	Status   string        `json:"status,omitempty"`
	Type     string        `json:"type,omitempty"`
	Season   FlexString    `json:"season,omitempty"`
	Settings DraftSettings `json:"settings"`
	Metadata DraftMetadata `json:"metadata"`
}

// PickMetadata is the player description attached to a pick.
type PickMetadata struct {
	PlayerName string `json:"player_name,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Position   string `json:"position,omitempty"`
	Team       string `json:"team,omitempty"`
}

// DraftPick is a single selection. A zero PickNo, Round or DraftSlot means the
// field was missing upstream and the pick is unusable for aggregation.
type DraftPick struct {
	PickNo    FlexInt      `json:"pick_no"`
	Round     FlexInt      `json:"round"`
	DraftSlot FlexInt      `json:"draft_slot"`
	RosterID  FlexInt      `json:"roster_id,omitempty"`
	PlayerID  FlexString   `json:"player_id"`
	PickedBy  string       `json:"picked_by,omitempty"`
	Metadata  PickMetadata `json:"metadata"`
}

// Usable reports whether the pick carries every positional field.
func (p DraftPick) Usable() bool {
	return p.PickNo > 0 && p.Round > 0 && p.DraftSlot > 0
}
