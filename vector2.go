// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pline

import "math"

// Vector2 is a 2D point or vector.
type Vector2 struct {
	X, Y float64
}

// NewVector2 constructs a Vector2.
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the componentwise sum of v and o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product (z-component) of v and o.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Length2 returns the squared length of v.
func (v Vector2) Length2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the length of v.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.Length2())
}

// Perpendicular returns v rotated 90 degrees counter-clockwise.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{-v.Y, v.X}
}

// Normalized returns v scaled to unit length. Returns the zero vector if v
// is (near) zero length.
func (v Vector2) Normalized() Vector2 {
	l := v.Length()
	if l < PosEqualEps {
		return Vector2{}
	}
	return v.Scale(1 / l)
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vector2) DistanceTo(o Vector2) float64 {
	return v.Sub(o).Length()
}

// FuzzyEqual reports whether the Euclidean distance between v and o is
// less than eps, comparing the squared distance against eps^2 to avoid a
// sqrt.
func (v Vector2) FuzzyEqual(o Vector2, eps float64) bool {
	d := v.Sub(o)
	return d.Length2() < eps*eps
}

// Lerp returns the point that is t (in [0,1]) of the way from v to o.
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

// Rotate rotates v by angle radians counter-clockwise about the origin.
func (v Vector2) Rotate(angle float64) Vector2 {
	s, c := math.Sincos(angle)
	return Vector2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// isLeft reports whether p is strictly to the left of the directed line
// through a and b.
func isLeft(a, b, p Vector2) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(p.X-a.X)*(b.Y-a.Y) > 0
}

// isLeftOrEqual reports whether p is to the left of or on the directed
// line through a and b.
func isLeftOrEqual(a, b, p Vector2) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(p.X-a.X)*(b.Y-a.Y) >= 0
}
