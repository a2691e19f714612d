package bitmap_test

import (
	"testing"

	"github.com/irinakurteva99/bdsm-go/util/bitmap"
)

func TestSetIsSetClear(t *testing.T) {
	bm := bitmap.NewBits(20)

	for _, loc := range []int{0, 7, 8, 19} {
		if set, err := bm.IsSet(loc); err != nil || set {
			t.Errorf("IsSet(%d) on fresh bitmap = (%v, %v), want (false, nil)", loc, set, err)
		}
		if err := bm.Set(loc); err != nil {
			t.Fatalf("Set(%d): %v", loc, err)
		}
		if set, err := bm.IsSet(loc); err != nil || !set {
			t.Errorf("IsSet(%d) after Set = (%v, %v), want (true, nil)", loc, set, err)
		}
		if err := bm.Clear(loc); err != nil {
			t.Fatalf("Clear(%d): %v", loc, err)
		}
		if set, err := bm.IsSet(loc); err != nil || set {
			t.Errorf("IsSet(%d) after Clear = (%v, %v), want (false, nil)", loc, set, err)
		}
	}
}

func TestOutOfRangeLocations(t *testing.T) {
	bm := bitmap.NewBits(8)
	if err := bm.Set(-1); err == nil {
		t.Error("Set(-1) = nil error, want error")
	}
	if err := bm.Set(64); err == nil {
		t.Error("Set(64) on an 8-bit bitmap = nil error, want error")
	}
	if _, err := bm.IsSet(64); err == nil {
		t.Error("IsSet(64) on an 8-bit bitmap = nil error, want error")
	}
}
