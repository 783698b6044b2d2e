package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/draftdelta/adp-api/internal/logic"
	"github.com/draftdelta/adp-api/internal/models"
)

func main() {
	api := flag.String("api", "http://localhost:8080", "base URL of a running adp-api")
	sideA := flag.String("a", "", "comma separated Side A league ids")
	sideB := flag.String("b", "", "comma separated Side B league ids")
	top := flag.Int("top", 15, "number of players to chart")
	out := flag.String("out", "web/static/img/adp_movers.svg", "output SVG path")
	flag.Parse()

	if *sideA == "" || *sideB == "" {
		log.Fatal("both -a and -b are required")
	}

	cmp, err := fetchComparison(*api, *sideA, *sideB)
	if err != nil {
		log.Fatalf("Failed to fetch comparison: %v", err)
	}

	movers := biggestMovers(cmp.Rows, *top)
	if len(movers) == 0 {
		fmt.Println("No players drafted on both sides.")
		return
	}

	svg := generateMoversSVG("ADP Movers (Side A vs Side B)", movers)
	saveChart(*out, svg)
}

func fetchComparison(api, a, b string) (*models.Comparison, error) {
	q := url.Values{}
	q.Set("a", a)
	q.Set("b", b)
	q.Set("sort", logic.SortByAbsDelta)
	q.Set("order", "desc")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(strings.TrimRight(api, "/") + "/api/v1/compare?" + q.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("status %s: %v", resp.Status, body["error"])
	}

	var cmp models.Comparison
	if err := json.NewDecoder(resp.Body).Decode(&cmp); err != nil {
		return nil, fmt.Errorf("decode comparison: %w", err)
	}
	return &cmp, nil
}

// biggestMovers keeps the n rows with the largest absolute delta.
func biggestMovers(rows []models.ComparisonRow, n int) []models.ComparisonRow {
	movers := make([]models.ComparisonRow, 0, len(rows))
	for _, r := range rows {
		if r.Delta != nil {
			movers = append(movers, r)
		}
	}
	logic.SortRows(movers, logic.SortByAbsDelta, true)
	if n > 0 && len(movers) > n {
		movers = movers[:n]
	}
	return movers
}

func saveChart(path string, svg string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Chart generated: %s\n", path)
}

// generateMoversSVG draws one horizontal bar per player around a center line.
// Risers in A (negative delta) extend left in green, fallers right in red.
func generateMoversSVG(title string, rows []models.ComparisonRow) string {
	width := 700
	rowHeight := 24
	padding := 50
	labelWidth := 180
	height := 2*padding + len(rows)*rowHeight
	center := labelWidth + (width-labelWidth-padding)/2
	halfSpan := (width - labelWidth - padding) / 2

	maxAbs := 0.0
	for _, r := range rows {
		if d := math.Abs(*r.Delta); d > maxAbs {
			maxAbs = d
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height, width, height))

	// Background
	sb.WriteString(`<rect width="100%" height="100%" fill="#1a1a1a" />`)

	// Title
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="30" fill="white" font-family="Arial" font-size="20" text-anchor="middle">%s</text>`, width/2, html.EscapeString(title)))

	for i, r := range rows {
		y := padding + i*rowHeight
		barWidth := 0
		if maxAbs > 0 {
			barWidth = int(math.Abs(*r.Delta) / maxAbs * float64(halfSpan))
		}
		x, color := center, "#e74c3c"
		if *r.Delta < 0 {
			x, color = center-barWidth, "#2ecc71"
		}

		label := fmt.Sprintf("%s %s (%s / %s)", r.Name, r.Position, r.RoundPickA, r.RoundPickB)
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="white" font-family="Arial" font-size="11" text-anchor="end">%s</text>`, labelWidth-10, y+rowHeight/2+4, html.EscapeString(label)))
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" rx="3" />`, x, y+3, barWidth, rowHeight-6, color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="white" font-family="Arial" font-size="10">%+.1f</text>`, center+halfSpan+4, y+rowHeight/2+4, *r.Delta))
	}

	// Center axis
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="white" stroke-width="2" />`, center, padding, center, height-padding))

	sb.WriteString(`</svg>`)
	return sb.String()
}
