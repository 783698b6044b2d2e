package logic

import (
	"strings"

	"github.com/draftdelta/adp-api/internal/models"
)

// PlayerIdentity is the resolved identity of the player behind a pick.
type PlayerIdentity struct {
	Key      string
	Name     string
	Position string
}

// PlayerKeyFunc resolves which aggregation bucket a pick belongs to.
// Swap it to change how players are matched across drafts.
type PlayerKeyFunc func(pick models.DraftPick) PlayerIdentity

// PlayerName returns player_name, else "first last", else the raw player id.
func PlayerName(pick models.DraftPick) string {
	meta := pick.Metadata
	if name := strings.TrimSpace(meta.PlayerName); name != "" {
		return name
	}
	if full := strings.TrimSpace(meta.FirstName + " " + meta.LastName); full != "" {
		return full
	}
	return strings.TrimSpace(pick.PlayerID.String())
}

// NamePositionKey matches players by exact (case-sensitive) name and position.
// It is a best-effort heuristic: "Jr." suffixes, accents or nicknames that
// differ between payloads produce distinct players.
func NamePositionKey(pick models.DraftPick) PlayerIdentity {
	name := PlayerName(pick)
	pos := strings.TrimSpace(pick.Metadata.Position)
	return PlayerIdentity{
		Key:      name + pos,
		Name:     name,
		Position: pos,
	}
}

// PlayerIDKey matches players by the upstream player id when one is present
// and falls back to NamePositionKey otherwise.
func PlayerIDKey(pick models.DraftPick) PlayerIdentity {
	id := NamePositionKey(pick)
	if pid := strings.TrimSpace(pick.PlayerID.String()); pid != "" {
		id.Key = "id:" + pid
	}
	return id
}
