package logic

import (
	"math"
	"sort"
	"strings"

	"github.com/draftdelta/adp-api/internal/models"
)

// Compare builds one row per player present in either side. Delta is
// AdpA - AdpB and is only set when both sides have a finite ADP, so a negative
// delta marks a player taken earlier in A than in B (a riser in A).
// Rows come back in key order; callers sort with SortRows.
func Compare(a, b map[string]models.PlayerStat) []models.ComparisonRow {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	rows := make([]models.ComparisonRow, 0, len(keys))
	for _, k := range keys {
		sa, inA := a[k]
		sb, inB := b[k]

		row := models.ComparisonRow{
			Key:        k,
			RoundPickA: Placeholder,
			RoundPickB: Placeholder,
		}
		if inA {
			row.Name, row.Position = sa.Name, sa.Position
			row.AdpA = finitePtr(sa.AvgOverallPick)
			if sa.AvgRoundPick != "" {
				row.RoundPickA = sa.AvgRoundPick
			}
		}
		if inB {
			if row.Name == "" {
				row.Name = sb.Name
			}
			if row.Position == "" {
				row.Position = sb.Position
			}
			row.AdpB = finitePtr(sb.AvgOverallPick)
			if sb.AvgRoundPick != "" {
				row.RoundPickB = sb.AvgRoundPick
			}
		}
		if row.AdpA != nil && row.AdpB != nil {
			d := *row.AdpA - *row.AdpB
			row.Delta = &d
		}
		rows = append(rows, row)
	}
	return rows
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Sortable comparison columns.
const (
	SortByName       = "name"
	SortByPosition   = "position"
	SortByAdpA       = "adpA"
	SortByAdpB       = "adpB"
	SortByDelta      = "delta"
	SortByAbsDelta   = "absDelta"
	SortByRoundPickA = "roundPickA"
	SortByRoundPickB = "roundPickB"
)

// IsSortField reports whether field is accepted by SortRows.
func IsSortField(field string) bool {
	switch field {
	case SortByName, SortByPosition, SortByAdpA, SortByAdpB, SortByDelta,
		SortByAbsDelta, SortByRoundPickA, SortByRoundPickB:
		return true
	}
	return false
}

// numeric returns the sort value of a nullable column; missing values report
// ok=false so they can be kept last in either direction.
func numeric(row models.ComparisonRow, field string) (float64, bool) {
	var p *float64
	switch field {
	case SortByAdpA:
		p = row.AdpA
	case SortByAdpB:
		p = row.AdpB
	case SortByDelta:
		p = row.Delta
	case SortByAbsDelta:
		if row.Delta == nil {
			return 0, false
		}
		return math.Abs(*row.Delta), true
	case SortByRoundPickA:
		v := RoundPickSortKey(row.RoundPickA)
		return v, !math.IsInf(v, 1)
	case SortByRoundPickB:
		v := RoundPickSortKey(row.RoundPickB)
		return v, !math.IsInf(v, 1)
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SortRows orders rows in place by field. Rows missing the field always sort
// last; ties fall back to name then key. Unknown fields sort by name.
func SortRows(rows []models.ComparisonRow, field string, desc bool) {
	if !IsSortField(field) {
		field = SortByName
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		switch field {
		case SortByName, SortByPosition:
			av, bv := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if field == SortByPosition {
				av, bv = a.Position, b.Position
			}
			if av != bv {
				if desc {
					return av > bv
				}
				return av < bv
			}
		default:
			av, aok := numeric(a, field)
			bv, bok := numeric(b, field)
			if aok != bok {
				return aok
			}
			if aok && av != bv {
				if desc {
					return av > bv
				}
				return av < bv
			}
		}

		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Key < b.Key
	})
}
