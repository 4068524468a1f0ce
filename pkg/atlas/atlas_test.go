package atlas

import (
	"errors"
	"testing"

	"github.com/Faultbox/chunktile/pkg/geom"
)

func TestSpriteSheetLookup(t *testing.T) {
	s, err := NewSpriteSheet(geom.D(128, 64), geom.D(32, 32))
	if err != nil {
		t.Fatalf("NewSpriteSheet() error: %v", err)
	}
	if s.Count() != 8 {
		t.Errorf("Count() = %d, want 8", s.Count())
	}

	r, err := s.Lookup(0)
	if err != nil {
		t.Fatalf("Lookup(0) error: %v", err)
	}
	want := Rect{MinX: 0, MinY: 0, MaxX: 32, MaxY: 32}
	if r != want {
		t.Errorf("Lookup(0) = %+v, want %+v", r, want)
	}

	// Row-major: sprite 5 is second row, second column.
	r, err = s.Lookup(5)
	if err != nil {
		t.Fatalf("Lookup(5) error: %v", err)
	}
	want = Rect{MinX: 32, MinY: 32, MaxX: 64, MaxY: 64}
	if r != want {
		t.Errorf("Lookup(5) = %+v, want %+v", r, want)
	}
}

func TestSpriteSheetOutOfRange(t *testing.T) {
	s, err := NewSpriteSheet(geom.D(64, 64), geom.D(32, 32))
	if err != nil {
		t.Fatalf("NewSpriteSheet() error: %v", err)
	}
	_, err = s.Lookup(4)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("Lookup(4) error = %v, want OutOfRangeError", err)
	}
	if oor.Sprite != 4 || oor.Count != 4 {
		t.Errorf("OutOfRangeError = %+v, want sprite 4 of 4", oor)
	}
}

func TestSpriteSheetUnevenCells(t *testing.T) {
	if _, err := NewSpriteSheet(geom.D(100, 64), geom.D(32, 32)); err == nil {
		t.Error("NewSpriteSheet(100x64, 32x32) succeeded, want error")
	}
	if _, err := NewSpriteSheet(geom.D(64, 64), geom.D(0, 32)); err == nil {
		t.Error("NewSpriteSheet with zero sprite width succeeded, want error")
	}
}
