package models

import (
	"encoding/json"
	"testing"
)

func TestFlexUnmarshal_AllStrings(t *testing.T) {
	input := `[{"pick_no": "13", "round": "2", "draft_slot": "12", "roster_id": "4", "player_id": 4046, "metadata": {"first_name": "Patrick", "last_name": "Mahomes", "position": "QB"}}]`

	var picks []DraftPick
	if err := json.Unmarshal([]byte(input), &picks); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(picks) != 1 {
		t.Fatalf("Expected 1 pick, got %d", len(picks))
	}

	p := picks[0]
	if p.PickNo != 13 {
		t.Errorf("PickNo = %d, want 13", p.PickNo)
	}
	if p.Round != 2 {
		t.Errorf("Round = %d, want 2", p.Round)
	}
	if p.DraftSlot != 12 {
		t.Errorf("DraftSlot = %d, want 12", p.DraftSlot)
	}
	if p.PlayerID != "4046" {
		t.Errorf("PlayerID = %q, want 4046", p.PlayerID)
	}
	if p.Metadata.Position != "QB" {
		t.Errorf("Position = %q, want QB", p.Metadata.Position)
	}
}

func TestFlexUnmarshal_NativeTypes(t *testing.T) {
	input := `[{"pick_no": 1, "round": 1, "draft_slot": 1, "player_id": "4034", "metadata": {"player_name": "Christian McCaffrey", "position": "RB"}}]`

	var picks []DraftPick
	if err := json.Unmarshal([]byte(input), &picks); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if picks[0].PickNo != 1 || picks[0].DraftSlot != 1 {
		t.Errorf("got pick_no=%d draft_slot=%d, want 1/1", picks[0].PickNo, picks[0].DraftSlot)
	}
}

func TestFlexUnmarshal_MissingAndNull(t *testing.T) {
	input := `[{"pick_no": null, "round": "", "player_id": "1"}]`

	var picks []DraftPick
	if err := json.Unmarshal([]byte(input), &picks); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	p := picks[0]
	if p.PickNo != 0 || p.Round != 0 || p.DraftSlot != 0 {
		t.Errorf("expected zero values for missing fields, got %+v", p)
	}
}

func TestFlexUnmarshal_Garbage(t *testing.T) {
	var f FlexInt
	if err := json.Unmarshal([]byte(`"abc"`), &f); err == nil {
		t.Error("expected error for non-numeric string")
	}
	if err := json.Unmarshal([]byte(`"7.0"`), &f); err != nil || f != 7 {
		t.Errorf("FlexInt(\"7.0\") = %d, %v; want 7, nil", f, err)
	}
}
