package logic

import (
	"math"
	"testing"

	"github.com/draftdelta/adp-api/internal/models"
)

func stat(name, pos string, avg float64, teams int) models.PlayerStat {
	return models.PlayerStat{
		Key:            name + pos,
		Name:           name,
		Position:       pos,
		Count:          1,
		AvgOverallPick: avg,
		AvgRoundPick:   FormatAverageRoundPick(avg, teams),
	}
}

func toMap(stats ...models.PlayerStat) map[string]models.PlayerStat {
	m := make(map[string]models.PlayerStat, len(stats))
	for _, s := range stats {
		m[s.Key] = s
	}
	return m
}

func rowsByKey(rows []models.ComparisonRow) map[string]models.ComparisonRow {
	m := make(map[string]models.ComparisonRow, len(rows))
	for _, r := range rows {
		m[r.Key] = r
	}
	return m
}

func TestCompare_OneSidedRow(t *testing.T) {
	a := toMap(stat("Y", "WR", 24.0, 12))

	rows := Compare(a, nil)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.AdpA == nil || *r.AdpA != 24.0 {
		t.Errorf("AdpA = %v, want 24", r.AdpA)
	}
	if r.AdpB != nil || r.Delta != nil {
		t.Errorf("AdpB/Delta = %v/%v, want nil/nil", r.AdpB, r.Delta)
	}
	if r.RoundPickA != "2.12" || r.RoundPickB != Placeholder {
		t.Errorf("round picks = %q/%q, want 2.12/%s", r.RoundPickA, r.RoundPickB, Placeholder)
	}
}

func TestCompare_Delta(t *testing.T) {
	a := toMap(stat("Riser", "RB", 10, 12), stat("Faller", "WR", 40, 12))
	b := toMap(stat("Riser", "RB", 25, 12), stat("Faller", "WR", 30, 12), stat("OnlyB", "TE", 50, 12))

	rows := rowsByKey(Compare(a, b))
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if d := rows["RiserRB"].Delta; d == nil || *d != -15 {
		t.Errorf("riser delta = %v, want -15", d)
	}
	if d := rows["FallerWR"].Delta; d == nil || *d != 10 {
		t.Errorf("faller delta = %v, want 10", d)
	}
	onlyB := rows["OnlyBTE"]
	if onlyB.AdpA != nil || onlyB.Delta != nil || onlyB.Position != "TE" || onlyB.RoundPickA != Placeholder {
		t.Errorf("OnlyB row = %+v", onlyB)
	}
}

func TestCompare_PrefersSideAPosition(t *testing.T) {
	sa := stat("Taysom", "QB", 100, 12)
	sb := sa
	sb.Position = "TE"
	sa.Key, sb.Key = "Taysom", "Taysom"

	rows := Compare(toMap(sa), toMap(sb))
	if rows[0].Position != "QB" {
		t.Errorf("Position = %q, want QB", rows[0].Position)
	}
}

func TestCompare_NonFiniteHasNoDelta(t *testing.T) {
	a := toMap(stat("N", "K", math.NaN(), 12))
	b := toMap(stat("N", "K", 150, 12))

	r := Compare(a, b)[0]
	if r.AdpA != nil || r.Delta != nil {
		t.Errorf("row = %+v, want nil AdpA and Delta", r)
	}
}

func TestCompare_SwapNegatesDelta(t *testing.T) {
	a := toMap(stat("A", "QB", 12, 12), stat("B", "RB", 3, 12), stat("C", "WR", 77, 12))
	b := toMap(stat("A", "QB", 20, 12), stat("B", "RB", 1.5, 12), stat("D", "TE", 90, 12))

	ab := rowsByKey(Compare(a, b))
	ba := rowsByKey(Compare(b, a))

	if len(ab) != len(ba) {
		t.Fatalf("key sets differ: %d vs %d", len(ab), len(ba))
	}
	for k, r := range ab {
		s, ok := ba[k]
		if !ok {
			t.Fatalf("key %q missing after swap", k)
		}
		if !sameFloat(r.AdpA, s.AdpB) || !sameFloat(r.AdpB, s.AdpA) {
			t.Errorf("%s: adp not swapped", k)
		}
		if r.RoundPickA != s.RoundPickB || r.RoundPickB != s.RoundPickA {
			t.Errorf("%s: round picks not swapped", k)
		}
		if (r.Delta == nil) != (s.Delta == nil) {
			t.Errorf("%s: delta presence differs", k)
		} else if r.Delta != nil && *r.Delta != -*s.Delta {
			t.Errorf("%s: delta %v not negated (%v)", k, *r.Delta, *s.Delta)
		}
	}
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func TestSortRows(t *testing.T) {
	a := toMap(stat("A", "QB", 12, 12), stat("B", "RB", 3, 12), stat("C", "WR", 115, 12), stat("E", "K", 140, 12))
	b := toMap(stat("A", "QB", 20, 12), stat("B", "RB", 1, 12), stat("C", "WR", 100, 12), stat("D", "TE", 90, 12))

	names := func(rows []models.ComparisonRow) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Name
		}
		return out
	}

	tests := []struct {
		field string
		desc  bool
		want  []string
	}{
		// Deltas: A -8, B 2, C 15, D nil, E nil.
		{SortByDelta, false, []string{"A", "B", "C", "D", "E"}},
		{SortByDelta, true, []string{"C", "B", "A", "D", "E"}},
		{SortByAbsDelta, true, []string{"C", "A", "B", "D", "E"}},
		// AdpA: B 3, A 12, C 115, E 140, D nil.
		{SortByAdpA, false, []string{"B", "A", "C", "E", "D"}},
		// "10.07" must sort after "9.x" even though it is shorter lexically.
		{SortByRoundPickA, false, []string{"B", "A", "C", "E", "D"}},
		{SortByName, true, []string{"E", "D", "C", "B", "A"}},
		{"bogus", false, []string{"A", "B", "C", "D", "E"}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			rows := Compare(a, b)
			SortRows(rows, tt.field, tt.desc)
			got := names(rows)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SortRows(%s, desc=%v) = %v, want %v", tt.field, tt.desc, got, tt.want)
				}
			}
		})
	}
}
