package logic

import (
	"math"
	"testing"
)

func TestFormatRoundPick(t *testing.T) {
	tests := []struct {
		name  string
		pick  float64
		teams int
		want  string
	}{
		{"First pick", 1, 12, "1.01"},
		{"End of round", 12, 12, "1.12"},
		{"Start of round 2", 13, 12, "2.01"},
		{"Ten team", 24, 10, "3.04"},
		{"Round ten", 109, 12, "10.01"},
		{"Fractional slot", 12.5, 12, "1.12.50"},
		{"Fractional round 2", 14.25, 12, "2.02.25"},
		{"Zero teams defaults to 12", 13, 0, "2.01"},
		{"Negative teams defaults to 12", 25, -4, "3.01"},
		{"Zero pick", 0, 12, Placeholder},
		{"Negative pick", -3, 12, Placeholder},
		{"NaN", math.NaN(), 12, Placeholder},
		{"Inf", math.Inf(1), 12, Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRoundPick(tt.pick, tt.teams); got != tt.want {
				t.Errorf("FormatRoundPick(%v, %d) = %q, want %q", tt.pick, tt.teams, got, tt.want)
			}
		})
	}
}

func TestFormatAverageRoundPick(t *testing.T) {
	tests := []struct {
		avg   float64
		teams int
		want  string
	}{
		{7.0, 12, "1.07"},
		{24.0, 12, "2.12"},
		{12.4, 12, "1.12"},
		{12.5, 12, "2.01"},
		{0, 12, Placeholder},
		{math.NaN(), 12, Placeholder},
	}

	for _, tt := range tests {
		if got := FormatAverageRoundPick(tt.avg, tt.teams); got != tt.want {
			t.Errorf("FormatAverageRoundPick(%v, %d) = %q, want %q", tt.avg, tt.teams, got, tt.want)
		}
	}
}

func TestRoundPickRoundTrip(t *testing.T) {
	for _, teams := range []int{1, 8, 10, 12, 14, 16, 32} {
		for p := 1; p <= teams*20; p++ {
			s := FormatRoundPick(float64(p), teams)
			round, pick, hundredths, ok := ParseRoundPick(s)
			if !ok {
				t.Fatalf("ParseRoundPick(%q) failed", s)
			}
			if hundredths != 0 {
				t.Fatalf("ParseRoundPick(%q) hundredths = %d, want 0", s, hundredths)
			}
			if back := OverallFromRoundPick(round, pick, teams); back != p {
				t.Fatalf("round trip for pick %d teams %d: %q -> %d", p, teams, s, back)
			}
		}
	}
}

func TestRoundPickSortKey(t *testing.T) {
	if RoundPickSortKey("10.01") <= RoundPickSortKey("9.12") {
		t.Error("round 10 should sort after round 9")
	}
	if RoundPickSortKey("1.12.50") <= RoundPickSortKey("1.12") {
		t.Error("fractional pick should sort after its whole pick")
	}
	if got := RoundPickSortKey("3.04"); got != 3004 {
		t.Errorf("RoundPickSortKey(3.04) = %v, want 3004", got)
	}
	if got := RoundPickSortKey("1.12.5"); got != 1012.5 {
		t.Errorf("RoundPickSortKey(1.12.5) = %v, want 1012.5", got)
	}

	for _, bad := range []string{Placeholder, "", "abc", "1", "1.", ".1", "0.01", "1.00", "1.2.3.4", "-1.02", "1.02.123"} {
		if !math.IsInf(RoundPickSortKey(bad), 1) {
			t.Errorf("RoundPickSortKey(%q) should be +Inf", bad)
		}
	}
}
