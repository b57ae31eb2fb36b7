package geometry

import "fmt"

// Zone is a named tactical region of the attacking half or a pitch third.
type Zone string

const (
	ZoneDefensiveThird Zone = "defensive_third"
	ZoneMiddleThird    Zone = "middle_third"
	ZoneAttackingThird Zone = "attacking_third"
	ZoneZone14         Zone = "zone14"
	ZoneLeftHalfSpace  Zone = "left_half_space"
	ZoneRightHalfSpace Zone = "right_half_space"
	ZonePenaltyBox     Zone = "penalty_box"
)

// Zones lists every named zone.
var Zones = []Zone{
	ZoneDefensiveThird, ZoneMiddleThird, ZoneAttackingThird,
	ZoneZone14, ZoneLeftHalfSpace, ZoneRightHalfSpace, ZonePenaltyBox,
}

// ParseZone validates a zone name.
func ParseZone(s string) (Zone, error) {
	for _, z := range Zones {
		if string(z) == s {
			return z, nil
		}
	}
	return "", fmt.Errorf("unknown zone %q", s)
}

// Contains reports whether the attacking-frame point (x,y) lies in z.
func (z Zone) Contains(x, y float64) bool {
	switch z {
	case ZoneDefensiveThird:
		return x <= DefensiveThirdMaxX
	case ZoneMiddleThird:
		return x > DefensiveThirdMaxX && x < FinalThirdMinX
	case ZoneAttackingThird:
		return x >= FinalThirdMinX
	case ZoneZone14:
		return x >= 70 && x <= 87.5 && y >= 20.4 && y <= 47.6
	case ZoneLeftHalfSpace:
		return x >= 70 && x <= 87.5 && y >= 10.2 && y <= 27.2
	case ZoneRightHalfSpace:
		return x >= 70 && x <= 87.5 && y >= 40.8 && y <= 57.8
	case ZonePenaltyBox:
		return InPenaltyArea(x, y)
	}
	return false
}
