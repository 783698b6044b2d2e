package logic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered wherever a round.pick value is missing or invalid.
const Placeholder = "—"

// DefaultTeams is assumed when a team count is unknown or not positive.
const DefaultTeams = 12

// roundSortBase separates rounds in RoundPickSortKey. Pick-in-round never
// reaches it, so round 10 always sorts after round 9.
const roundSortBase = 1000

func normalizeTeams(teams int) int {
	if teams <= 0 {
		return DefaultTeams
	}
	return teams
}

// FormatRoundPick renders an overall pick number as "round.pick" for a draft
// with the given number of teams. A fractional pick gets its remainder
// appended as a second two-digit group, e.g. 12.5 in a 12-team draft is
// "1.12.50". Picks below 1 or non-finite values render as Placeholder.
func FormatRoundPick(pick float64, teams int) string {
	if math.IsNaN(pick) || math.IsInf(pick, 0) || pick < 1 {
		return Placeholder
	}
	teams = normalizeTeams(teams)

	cents := int64(math.Round(pick * 100))
	whole := cents / 100
	frac := cents % 100

	t := int64(teams)
	round := (whole-1)/t + 1
	slot := whole - (round-1)*t

	if frac == 0 {
		return fmt.Sprintf("%d.%02d", round, slot)
	}
	return fmt.Sprintf("%d.%02d.%02d", round, slot, frac)
}

// FormatAverageRoundPick renders an averaged pick. The average is rounded to
// the nearest real pick first so the label matches the displayed average.
func FormatAverageRoundPick(avg float64, teams int) string {
	if math.IsNaN(avg) || math.IsInf(avg, 0) || avg <= 0 {
		return Placeholder
	}
	return FormatRoundPick(math.Round(avg), teams)
}

// ParseRoundPick splits a "round.pick" or "round.pick.hh" string.
func ParseRoundPick(s string) (round, pick, hundredths int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if p == "" || len(p) > 4 {
			return 0, 0, 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.ContainsAny(p, "+-") {
			return 0, 0, 0, false
		}
		nums[i] = n
	}

	round, pick = nums[0], nums[1]
	if round < 1 || pick < 1 || pick >= roundSortBase {
		return 0, 0, 0, false
	}
	if len(nums) == 3 {
		if len(parts[2]) > 2 {
			return 0, 0, 0, false
		}
		hundredths = nums[2]
		if len(parts[2]) == 1 {
			hundredths *= 10
		}
	}
	return round, pick, hundredths, true
}

// RoundPickSortKey maps a round.pick label to a scalar that orders labels
// chronologically. Malformed labels and Placeholder sort last (+Inf).
func RoundPickSortKey(s string) float64 {
	round, pick, hundredths, ok := ParseRoundPick(s)
	if !ok {
		return math.Inf(1)
	}
	return float64(round*roundSortBase+pick) + float64(hundredths)/100
}

// OverallFromRoundPick converts a round and pick-in-round back into an
// overall pick number.
func OverallFromRoundPick(round, pick, teams int) int {
	return (round-1)*normalizeTeams(teams) + pick
}
