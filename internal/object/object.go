// Package object defines the simulation entities and the asteroid spawner.
package object

import (
	"math"

	"github.com/tomz197/asteroids-arcade/internal/draw"
)

// Field is the bounded play area. The origin is the top-left corner.
type Field struct {
	Width  float64
	Height float64
}

// Center returns the middle of the field.
func (f Field) Center() (float64, float64) {
	return f.Width / 2, f.Height / 2
}

// WrapPosition wraps x and y around the field boundaries (Asteroids-style).
func (f Field) WrapPosition(x, y *float64) {
	if f.Width > 0 {
		*x = math.Mod(*x, f.Width)
		if *x < 0 {
			*x += f.Width
		}
	}
	if f.Height > 0 {
		*y = math.Mod(*y, f.Height)
		if *y < 0 {
			*y += f.Height
		}
	}
}

// Contains reports whether (x,y) lies inside the field, edges included.
func (f Field) Contains(x, y float64) bool {
	return x >= 0 && x <= f.Width && y >= 0 && y <= f.Height
}

// Beyond reports whether (x,y) is more than margin outside the field on any axis.
func (f Field) Beyond(x, y, margin float64) bool {
	return x < -margin || x > f.Width+margin || y < -margin || y > f.Height+margin
}

// rotatePoints places n points around (cx,cy) at the given distances,
// evenly spaced in angle starting from rotation.
func rotatePoints(buf []draw.Point, cx, cy, rotation float64, dists []float64) []draw.Point {
	n := len(dists)
	buf = buf[:0]
	for i, dist := range dists {
		a := rotation + float64(i)*2*math.Pi/float64(n)
		buf = append(buf, draw.Point{
			X: cx + math.Cos(a)*dist,
			Y: cy + math.Sin(a)*dist,
		})
	}
	return buf
}
