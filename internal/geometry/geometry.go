// Package geometry holds the pitch coordinate kernel. All functions are pure and
// assume a 105x68 metre pitch with the attacked goal on the x=105 line.
package geometry

import "math"

const (
	PitchLength = 105.0
	PitchWidth  = 68.0

	GoalX        = PitchLength
	GoalCenterY  = PitchWidth / 2
	LeftPostY    = 30.34
	RightPostY   = 37.66
	PenaltySpotX = PitchLength - 11.0

	PenaltyAreaX    = 88.5
	PenaltyAreaMinY = 13.84
	PenaltyAreaMaxY = 54.16

	SixYardBoxX    = 99.5
	SixYardBoxMinY = 24.84
	SixYardBoxMaxY = 43.16

	DefensiveThirdMaxX = 35.0
	FinalThirdMinX     = 70.0
)

// Point is a pitch location in metres.
type Point struct{ X, Y float64 }

// Distance is the Euclidean distance between (x1,y1) and (x2,y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceToGoal is the distance from (x,y) to the goal centre (105,34).
func DistanceToGoal(x, y float64) float64 {
	return Distance(x, y, GoalX, GoalCenterY)
}

// AngleToGoal is the angle in radians subtended at (x,y) by the two goal posts.
func AngleToGoal(x, y float64) float64 {
	a1 := math.Atan2(LeftPostY-y, GoalX-x)
	a2 := math.Atan2(RightPostY-y, GoalX-x)
	angle := math.Abs(a2 - a1)
	if angle > math.Pi {
		angle = 2*math.Pi - angle
	}
	return angle
}

// Mirror reflects a point through the pitch centre, switching the direction of play.
func Mirror(x, y float64) (float64, float64) {
	return PitchLength - x, PitchWidth - y
}

// InBounds reports whether (x,y) lies on the pitch.
func InBounds(x, y float64) bool {
	return x >= 0 && x <= PitchLength && y >= 0 && y <= PitchWidth
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func InPenaltyArea(x, y float64) bool {
	return x >= PenaltyAreaX && y >= PenaltyAreaMinY && y <= PenaltyAreaMaxY
}

func InSixYardBox(x, y float64) bool {
	return x >= SixYardBoxX && y >= SixYardBoxMinY && y <= SixYardBoxMaxY
}

func InFinalThird(x float64) bool {
	return x >= FinalThirdMinX
}
