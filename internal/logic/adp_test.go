package logic

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/draftdelta/adp-api/internal/models"
)

// MockUpstream adds user and league lookups to MockDraftSource.
type MockUpstream struct {
	MockDraftSource
	ResolveUserFunc func(ctx context.Context, username string) (string, error)
	UserLeaguesFunc func(ctx context.Context, userID, season string) ([]models.League, error)
}

func (m *MockUpstream) ResolveUser(ctx context.Context, username string) (string, error) {
	if m.ResolveUserFunc != nil {
		return m.ResolveUserFunc(ctx, username)
	}
	return "user-1", nil
}

func (m *MockUpstream) UserLeagues(ctx context.Context, userID, season string) ([]models.League, error) {
	if m.UserLeaguesFunc != nil {
		return m.UserLeaguesFunc(ctx, userID, season)
	}
	return nil, nil
}

func newCompareUpstream() *MockUpstream {
	return &MockUpstream{
		MockDraftSource: MockDraftSource{
			Drafts: map[string][]models.Draft{
				"A1": {draft("DA1", 12, 15)},
				"B1": {draft("DB1", 12, 15)},
				"B2": {draft("DB2", 10, 15)},
			},
			Picks: map[string][]models.DraftPick{
				"DA1": {pick(24, 12, "Y", "WR"), pick(5, 12, "Z", "RB")},
				"DB1": {pick(10, 12, "Z", "RB")},
			},
		},
	}
}

func TestADPService_Compare(t *testing.T) {
	svc := NewADPService(newCompareUpstream(), nil, zap.NewNop())

	cmp, err := svc.Compare(context.Background(), models.CompareQuery{SideA: []string{"A1"}, SideB: []string{"B1"}})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if cmp.SideA == nil || cmp.SideB == nil {
		t.Fatal("expected both sides")
	}

	rows := rowsByKey(cmp.Rows)
	y := rows["YWR"]
	if y.AdpA == nil || *y.AdpA != 24 || y.AdpB != nil || y.Delta != nil {
		t.Errorf("Y row = %+v", y)
	}
	if y.RoundPickA != "2.12" || y.RoundPickB != Placeholder {
		t.Errorf("Y round picks = %q/%q", y.RoundPickA, y.RoundPickB)
	}
	z := rows["ZRB"]
	if z.Delta == nil || *z.Delta != -5 {
		t.Errorf("Z delta = %v, want -5", z.Delta)
	}
}

func TestADPService_CompareSingleSide(t *testing.T) {
	svc := NewADPService(newCompareUpstream(), nil, zap.NewNop())

	cmp, err := svc.Compare(context.Background(), models.CompareQuery{SideA: []string{"A1"}})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if cmp.SideB != nil {
		t.Error("SideB should be nil in single-side mode")
	}
	if len(cmp.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(cmp.Rows))
	}
	for _, r := range cmp.Rows {
		if r.Delta != nil || r.AdpB != nil {
			t.Errorf("row %s has side B data", r.Key)
		}
	}
}

func TestADPService_CompareErrors(t *testing.T) {
	svc := NewADPService(newCompareUpstream(), nil, zap.NewNop())

	if _, err := svc.Compare(context.Background(), models.CompareQuery{SideB: []string{"B1"}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}

	_, err := svc.Compare(context.Background(), models.CompareQuery{SideA: []string{"A1"}, SideB: []string{"B1", "B2"}})
	var mismatch *StructuralMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("err = %v, want StructuralMismatchError from side B", err)
	}
}

func TestADPService_UserLeagues(t *testing.T) {
	up := newCompareUpstream()
	up.UserLeaguesFunc = func(ctx context.Context, userID, season string) ([]models.League, error) {
		if userID != "user-1" || season != "2024" {
			t.Errorf("UserLeagues(%q, %q)", userID, season)
		}
		return []models.League{
			{LeagueID: "2", Name: "zeta league", Season: "2024"},
			{LeagueID: "1", Name: "Alpha", Season: "2024", TotalRosters: 12},
			{LeagueID: "3", Name: "  ", Season: "2024"},
		}, nil
	}
	svc := NewADPService(up, nil, zap.NewNop())

	leagues, err := svc.UserLeagues(context.Background(), models.LeaguesQuery{Username: "alice", Season: "2024"})
	if err != nil {
		t.Fatalf("UserLeagues() error = %v", err)
	}
	if len(leagues) != 3 || leagues[0].LeagueID != "1" || leagues[1].Name != "Unnamed League" {
		t.Errorf("leagues = %+v", leagues)
	}

	if _, err := svc.UserLeagues(context.Background(), models.LeaguesQuery{Season: "2024"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}

	boom := errors.New("unknown user")
	up.ResolveUserFunc = func(ctx context.Context, username string) (string, error) { return "", boom }
	if _, err := svc.UserLeagues(context.Background(), models.LeaguesQuery{Username: "bob", Season: "2024"}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}
