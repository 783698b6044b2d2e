package main

import (
	"strings"
	"testing"

	"github.com/draftdelta/adp-api/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestBiggestMovers(t *testing.T) {
	rows := []models.ComparisonRow{
		{Key: "a", Name: "A", Delta: fptr(-3)},
		{Key: "b", Name: "B", Delta: fptr(12)},
		{Key: "c", Name: "C"},
		{Key: "d", Name: "D", Delta: fptr(-20)},
	}

	got := biggestMovers(rows, 2)
	if len(got) != 2 || got[0].Name != "D" || got[1].Name != "B" {
		t.Errorf("biggestMovers() = %+v, want D then B", got)
	}
}

func TestGenerateMoversSVG(t *testing.T) {
	rows := []models.ComparisonRow{
		{Name: "Riser <Jr>", Position: "RB", RoundPickA: "1.02", RoundPickB: "2.01", Delta: fptr(-11)},
		{Name: "Faller", Position: "WR", RoundPickA: "3.01", RoundPickB: "2.05", Delta: fptr(8)},
	}

	svg := generateMoversSVG("Movers", rows)
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if strings.Count(svg, `rx="3"`) != 2 {
		t.Errorf("expected one bar per row")
	}
	if !strings.Contains(svg, "Riser &lt;Jr&gt;") {
		t.Error("labels must be escaped")
	}
	if !strings.Contains(svg, "#2ecc71") || !strings.Contains(svg, "#e74c3c") {
		t.Error("expected riser and faller colors")
	}
}
