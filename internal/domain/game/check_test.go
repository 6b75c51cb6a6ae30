package game

import "testing"

func TestD20_Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		if r := D20(); r < DCMin || r > DCMax {
			t.Fatalf("roll out of bounds: %d", r)
		}
	}
}

func TestCheckSuccess_ExactDCSucceeds(t *testing.T) {
	if !CheckSuccess(13, 13) {
		t.Fatal("roll equal to dc must succeed")
	}
	if !CheckSuccess(20, 1) {
		t.Fatal("high roll must succeed")
	}
	if CheckSuccess(12, 13) {
		t.Fatal("roll below dc must fail")
	}
}

func TestPickCheckType_FromGivenSet(t *testing.T) {
	types := []string{"Luck"}
	if got := PickCheckType(types); got != "Luck" {
		t.Fatalf("expected Luck, got %q", got)
	}
	if got := PickCheckType(nil); got == "" {
		t.Fatal("empty set must fall back to defaults")
	}
}
