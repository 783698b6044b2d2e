package logic

import (
	"sort"

	"github.com/draftdelta/adp-api/internal/models"
)

type playerTotals struct {
	id    PlayerIdentity
	sum   int
	count int
	hist  map[int]int // pick_no -> occurrences
}

type cellPlayer struct {
	id    PlayerIdentity
	sum   int
	count int
}

type cellTotals struct {
	total   int
	players map[string]*cellPlayer
}

// Accumulator collects raw pick occurrences. Stats are only derived by
// Players and Cells, so accumulators for different drafts can be merged in
// any order without averaging averages.
type Accumulator struct {
	keyFn   PlayerKeyFunc
	players map[string]*playerTotals
	cells   map[models.CellKey]*cellTotals
	valid   int
	skipped int
}

// NewAccumulator returns an empty accumulator. A nil keyFn uses NamePositionKey.
func NewAccumulator(keyFn PlayerKeyFunc) *Accumulator {
	if keyFn == nil {
		keyFn = NamePositionKey
	}
	return &Accumulator{
		keyFn:   keyFn,
		players: make(map[string]*playerTotals),
		cells:   make(map[models.CellKey]*cellTotals),
	}
}

// preferIdentity picks a stable display identity when the same key is seen
// with different names, independent of the order picks arrive in.
func preferIdentity(cur, next PlayerIdentity) PlayerIdentity {
	if next.Name < cur.Name || (next.Name == cur.Name && next.Position < cur.Position) {
		return next
	}
	return cur
}

// Add records one pick. It returns false when the pick is missing a
// positional field and was skipped.
func (a *Accumulator) Add(pick models.DraftPick) bool {
	if !pick.Usable() {
		a.skipped++
		return false
	}
	a.valid++

	id := a.keyFn(pick)
	pickNo := pick.PickNo.Int()

	pt, ok := a.players[id.Key]
	if !ok {
		pt = &playerTotals{id: id, hist: make(map[int]int)}
		a.players[id.Key] = pt
	} else {
		pt.id = preferIdentity(pt.id, id)
	}
	pt.sum += pickNo
	pt.count++
	pt.hist[pickNo]++

	ck := models.CellKey{Round: pick.Round.Int(), Slot: pick.DraftSlot.Int()}
	ct, ok := a.cells[ck]
	if !ok {
		ct = &cellTotals{players: make(map[string]*cellPlayer)}
		a.cells[ck] = ct
	}
	ct.total++
	cp, ok := ct.players[id.Key]
	if !ok {
		cp = &cellPlayer{id: id}
		ct.players[id.Key] = cp
	} else {
		cp.id = preferIdentity(cp.id, id)
	}
	cp.sum += pickNo
	cp.count++

	return true
}

// AddAll records every pick in the slice.
func (a *Accumulator) AddAll(picks []models.DraftPick) {
	for _, p := range picks {
		a.Add(p)
	}
}

// Merge folds other's raw totals into a. Merging is commutative and
// associative; other is left untouched.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	a.valid += other.valid
	a.skipped += other.skipped

	for key, src := range other.players {
		dst, ok := a.players[key]
		if !ok {
			dst = &playerTotals{id: src.id, hist: make(map[int]int, len(src.hist))}
			a.players[key] = dst
		} else {
			dst.id = preferIdentity(dst.id, src.id)
		}
		dst.sum += src.sum
		dst.count += src.count
		for pickNo, n := range src.hist {
			dst.hist[pickNo] += n
		}
	}

	for ck, src := range other.cells {
		dst, ok := a.cells[ck]
		if !ok {
			dst = &cellTotals{players: make(map[string]*cellPlayer, len(src.players))}
			a.cells[ck] = dst
		}
		dst.total += src.total
		for key, sp := range src.players {
			dp, ok := dst.players[key]
			if !ok {
				dp = &cellPlayer{id: sp.id}
				dst.players[key] = dp
			} else {
				dp.id = preferIdentity(dp.id, sp.id)
			}
			dp.sum += sp.sum
			dp.count += sp.count
		}
	}
}

// Valid is the number of picks that contributed to the totals.
func (a *Accumulator) Valid() int { return a.valid }

// Skipped is the number of picks dropped for missing positional fields.
func (a *Accumulator) Skipped() int { return a.skipped }

// modePick returns the most frequent pick number, preferring the earlier
// pick on ties.
func modePick(hist map[int]int) int {
	mode, best := 0, 0
	for pickNo, n := range hist {
		if n > best || (n == best && pickNo < mode) {
			mode, best = pickNo, n
		}
	}
	return mode
}

// Players derives per-player stats, formatting round.pick labels for teams.
func (a *Accumulator) Players(teams int) map[string]models.PlayerStat {
	out := make(map[string]models.PlayerStat, len(a.players))
	for key, pt := range a.players {
		avg := float64(pt.sum) / float64(pt.count)
		mode := modePick(pt.hist)
		out[key] = models.PlayerStat{
			Key:             key,
			Name:            pt.id.Name,
			Position:        pt.id.Position,
			Count:           pt.count,
			AvgOverallPick:  avg,
			ModeOverallPick: mode,
			AvgRoundPick:    FormatAverageRoundPick(avg, teams),
			ModeRoundPick:   FormatRoundPick(float64(mode), teams),
		}
	}
	return out
}

// Cells derives the draft board. Entries in each cell are ordered by count
// descending, then average pick ascending, then name.
func (a *Accumulator) Cells(teams int) map[models.CellKey]models.DraftboardCell {
	out := make(map[models.CellKey]models.DraftboardCell, len(a.cells))
	for ck, ct := range a.cells {
		entries := make([]models.CellEntry, 0, len(ct.players))
		for key, cp := range ct.players {
			avg := float64(cp.sum) / float64(cp.count)
			entries = append(entries, models.CellEntry{
				Key:            key,
				Name:           cp.id.Name,
				Position:       cp.id.Position,
				Count:          cp.count,
				Pct:            float64(cp.count) / float64(ct.total),
				AvgOverallPick: avg,
				RoundPick:      FormatAverageRoundPick(avg, teams),
			})
		}
		sortCellEntries(entries)
		out[ck] = models.DraftboardCell{
			Round:   ck.Round,
			Slot:    ck.Slot,
			Total:   ct.total,
			Entries: entries,
		}
	}
	return out
}

func sortCellEntries(entries []models.CellEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.AvgOverallPick != b.AvgOverallPick {
			return a.AvgOverallPick < b.AvgOverallPick
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Key < b.Key
	})
}

// DraftAggregate is the finalized aggregation of a set of picks.
type DraftAggregate struct {
	Players map[string]models.PlayerStat
	Cells   map[models.CellKey]models.DraftboardCell
	Valid   int
	Skipped int
}

// AggregateDraft aggregates the picks of one draft. It has no side effects;
// malformed picks are counted in Skipped rather than failing the call.
func AggregateDraft(picks []models.DraftPick, teams int, keyFn PlayerKeyFunc) DraftAggregate {
	acc := NewAccumulator(keyFn)
	acc.AddAll(picks)
	return acc.finalize(teams)
}

func (a *Accumulator) finalize(teams int) DraftAggregate {
	return DraftAggregate{
		Players: a.Players(teams),
		Cells:   a.Cells(teams),
		Valid:   a.valid,
		Skipped: a.skipped,
	}
}
