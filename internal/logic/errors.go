package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/draftdelta/adp-api/internal/models"
)

var (
	// ErrInvalidInput means required identifiers were missing. No upstream
	// call is made when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDrafts means no league in the batch resolved to a draft.
	ErrNoDrafts = errors.New("no drafts found")

	// ErrUpstream wraps any failure of the draft data source.
	ErrUpstream = errors.New("upstream unavailable")
)

// maxReportedOffenders bounds how many mismatching leagues an error lists.
const maxReportedOffenders = 5

// LeagueShape describes the board of one league's primary draft.
type LeagueShape struct {
	LeagueID string `json:"leagueId"`
	Name     string `json:"name,omitempty"`
	DraftID  string `json:"draftId"`
	Teams    int    `json:"teams"`
	Rounds   int    `json:"rounds"`
}

// StructuralMismatchError is returned when leagues in one group do not share
// the same team and round counts.
type StructuralMismatchError struct {
	Expected  models.GroupMeta `json:"expected"`
	Reference LeagueShape      `json:"reference"`
	Offenders []LeagueShape    `json:"offenders"`
	// Total counts every mismatching league, including those not listed.
	Total int `json:"total"`
}

func (e *StructuralMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "leagues must share team and round counts: expected %d teams x %d rounds (from league %s)",
		e.Expected.Teams, e.Expected.Rounds, e.Reference.LeagueID)
	for _, o := range e.Offenders {
		label := o.LeagueID
		if o.Name != "" {
			label = fmt.Sprintf("%s (%s)", o.LeagueID, o.Name)
		}
		fmt.Fprintf(&b, "; %s has %d teams x %d rounds", label, o.Teams, o.Rounds)
	}
	if extra := e.Total - len(e.Offenders); extra > 0 {
		fmt.Fprintf(&b, "; and %d more", extra)
	}
	return b.String()
}
