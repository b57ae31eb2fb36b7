package geometry

import (
	"math"
	"testing"
)

func TestDistanceToGoal(t *testing.T) {
	if d := DistanceToGoal(95, 34); math.Abs(d-10) > 1e-9 {
		t.Errorf("DistanceToGoal(95,34) = %v, want 10", d)
	}
	if d := DistanceToGoal(105, 34); d != 0 {
		t.Errorf("DistanceToGoal at goal centre = %v, want 0", d)
	}
}

func TestAngleToGoal(t *testing.T) {
	// Dead centre 10m out: 2*atan(3.66/10).
	want := 2 * math.Atan(3.66/10)
	if got := AngleToGoal(95, 34); math.Abs(got-want) > 1e-9 {
		t.Errorf("AngleToGoal(95,34) = %v, want %v", got, want)
	}

	// The angle shrinks as the shooter moves wide.
	if AngleToGoal(95, 10) >= AngleToGoal(95, 34) {
		t.Error("expected a wider position to see a narrower goal")
	}

	// On the goal line outside the posts the mouth is invisible.
	if got := AngleToGoal(105, 10); got > 1e-9 {
		t.Errorf("AngleToGoal on the byline = %v, want 0", got)
	}
}

func TestBoxes(t *testing.T) {
	cases := []struct {
		x, y        float64
		box, sixYrd bool
	}{
		{95, 34, true, false},
		{100, 34, true, true},
		{88.5, 13.84, true, false},
		{88.4, 34, false, false},
		{100, 20, true, false},
	}
	for _, c := range cases {
		if got := InPenaltyArea(c.x, c.y); got != c.box {
			t.Errorf("InPenaltyArea(%v,%v) = %v, want %v", c.x, c.y, got, c.box)
		}
		if got := InSixYardBox(c.x, c.y); got != c.sixYrd {
			t.Errorf("InSixYardBox(%v,%v) = %v, want %v", c.x, c.y, got, c.sixYrd)
		}
	}
}

func TestMirror(t *testing.T) {
	x, y := Mirror(10, 5)
	if x != 95 || y != 63 {
		t.Errorf("Mirror(10,5) = (%v,%v), want (95,63)", x, y)
	}
}

func TestZoneContains(t *testing.T) {
	if !ZoneZone14.Contains(80, 34) {
		t.Error("expected (80,34) in zone 14")
	}
	if ZoneZone14.Contains(60, 34) {
		t.Error("did not expect (60,34) in zone 14")
	}
	if !ZoneDefensiveThird.Contains(35, 0) || ZoneMiddleThird.Contains(35, 0) {
		t.Error("x=35 belongs to the defensive third only")
	}
	if _, err := ParseZone("nowhere"); err == nil {
		t.Error("expected error for unknown zone")
	}
}
