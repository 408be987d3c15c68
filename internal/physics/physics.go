// Package physics provides distance, heading and collision utilities.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Within reports whether two centers are strictly closer than threshold.
func Within(x1, y1, x2, y2, threshold float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < threshold*threshold
}

// Angle returns the heading in radians from (x1,y1) toward (x2,y2).
// ok is false when the points coincide and no heading is defined.
func Angle(x1, y1, x2, y2 float64) (angle float64, ok bool) {
	dx := x2 - x1
	dy := y2 - y1
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return math.Atan2(dy, dx), true
}

// Direction returns the unit vector from (x1,y1) toward (x2,y2) and the
// distance between the points. A zero distance yields a zero vector.
func Direction(x1, y1, x2, y2 float64) (ux, uy, dist float64) {
	dx := x2 - x1
	dy := y2 - y1
	dist = math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0, 0
	}
	return dx / dist, dy / dist, dist
}

// FromAngle returns the vector of the given length pointing along angle.
func FromAngle(angle, length float64) (x, y float64) {
	return math.Cos(angle) * length, math.Sin(angle) * length
}

// Magnitude returns the length of the vector (x,y).
func Magnitude(x, y float64) float64 {
	return math.Hypot(x, y)
}
