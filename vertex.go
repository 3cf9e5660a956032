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

// Vertex is a single polyline vertex: a position plus the bulge of the
// segment that starts at this vertex. Bulge is tan(theta/4) where theta is
// the signed included angle of the arc (positive is counter-clockwise,
// zero means the segment is a line).
type Vertex struct {
	X, Y, Bulge float64
}

// NewVertex constructs a Vertex.
func NewVertex(x, y, bulge float64) Vertex {
	return Vertex{X: x, Y: y, Bulge: bulge}
}

// Pos returns the vertex position as a Vector2.
func (v Vertex) Pos() Vector2 {
	return Vector2{v.X, v.Y}
}

// WithPos returns a copy of v with the position replaced.
func (v Vertex) WithPos(p Vector2) Vertex {
	return Vertex{X: p.X, Y: p.Y, Bulge: v.Bulge}
}

// WithBulge returns a copy of v with the bulge replaced.
func (v Vertex) WithBulge(b float64) Vertex {
	return Vertex{X: v.X, Y: v.Y, Bulge: b}
}

// FuzzyEqual reports whether v and o have fuzzy-equal positions and
// fuzzy-equal bulges within eps.
func (v Vertex) FuzzyEqual(o Vertex, eps float64) bool {
	return v.Pos().FuzzyEqual(o.Pos(), eps) && fuzzyEqual(v.Bulge, o.Bulge, eps)
}

// BulgeIsZero reports whether v's bulge is close enough to zero that the
// segment starting at v should be treated as a line rather than an arc.
func (v Vertex) BulgeIsZero(eps float64) bool {
	return fuzzyZero(v.Bulge, eps)
}

// bulgeIsZero is the free-function form used by segment algebra that only
// has a bulge value, not a full Vertex.
func bulgeIsZero(bulge, eps float64) bool {
	return fuzzyZero(bulge, eps)
}

// includedAngle returns the signed included angle Θ = 4*atan(bulge) encoded
// by bulge.
func includedAngle(bulge float64) float64 {
	return 4 * math.Atan(bulge)
}

// bulgeFromAngle returns the bulge that encodes the signed included angle
// theta, i.e. the inverse of includedAngle.
func bulgeFromAngle(theta float64) float64 {
	return math.Tan(theta / 4)
}
