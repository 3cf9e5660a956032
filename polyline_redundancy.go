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

// RemoveRepeatPos returns a copy of p with consecutive vertices whose
// positions fall within eps of each other collapsed into one (keeping the
// later vertex's bulge, since it governs the segment leaving that
// position), and false if no vertex was dropped.
func RemoveRepeatPos(p PolylineRef, eps float64) (*Polyline, bool) {
	n := p.VertexCount()
	if n == 0 {
		return nil, false
	}

	out := WithCapacity(n, p.IsClosed())
	out.AddVertex(p.At(0))
	removed := false
	for i := 1; i < n; i++ {
		v := p.At(i)
		last, _ := out.Last()
		if v.Pos().FuzzyEqual(last.Pos(), eps) {
			out.SetVertex(out.VertexCount()-1, last.WithBulge(v.Bulge))
			removed = true
			continue
		}
		out.AddVertex(v)
	}

	if p.IsClosed() && out.VertexCount() > 1 {
		first, _ := out.Get(0)
		lastIdx := out.VertexCount() - 1
		last := out.At(lastIdx)
		if first.Pos().FuzzyEqual(last.Pos(), eps) {
			out.Remove(lastIdx)
			removed = true
		}
	}

	if !removed {
		return nil, false
	}
	return out, true
}

// RemoveRedundant returns a copy of p with redundant vertices dropped, and
// false if no vertex was redundant.
//
// A vertex v2 between v1 and v3 is redundant when any of:
//   - v2 and v3 occupy the same position (v2 contributes nothing).
//   - both (v1,v2) and (v2,v3) are lines, v1, v2, v3 are collinear, and
//     the two edges point the same way (a path that doubles back keeps v2).
//   - both (v1,v2) and (v2,v3) are arcs sharing sign of bulge, sharing
//     center and radius within eps, and whose combined sweep does not
//     exceed pi (so the merge stays a single minor-or-equal arc).
//
// Each pass removes at most one redundant vertex, and passes repeat until
// one finds nothing. On a closed polyline every pass also visits the
// wraparound triples that involve the first and last vertices.
func RemoveRedundant(p PolylineRef, eps float64) (*Polyline, bool) {
	n := p.VertexCount()
	if n < 3 {
		return nil, false
	}

	vs := make([]Vertex, n)
	for i := 0; i < n; i++ {
		vs[i] = p.At(i)
	}
	closed := p.IsClosed()

	removed := false
	for {
		next, ok := removeRedundantPass(vs, closed, eps)
		if !ok {
			break
		}
		vs = next
		removed = true
		if len(vs) < 3 {
			break
		}
	}

	if !removed {
		return nil, false
	}
	return NewPolylineFromVertices(vs, closed), true
}

func removeRedundantPass(vs []Vertex, closed bool, eps float64) ([]Vertex, bool) {
	n := len(vs)
	limit := n - 2
	if closed {
		limit = n
	}

	for i := 0; i < limit; i++ {
		i1 := i
		i2 := (i + 1) % n
		i3 := (i + 2) % n
		v1, v2, v3 := vs[i1], vs[i2], vs[i3]

		if redundantTriple(v1, v2, v3, eps) {
			out := make([]Vertex, 0, n-1)
			out = append(out, vs[:i2]...)
			out = append(out, vs[i2+1:]...)
			// If the merge replaced v1's bulge (arc-join case), write it back
			// into the vertex preceding the removed one.
			if newBulge, ok := mergedArcBulge(v1, v2, v3, eps); ok {
				pos := i1
				if i1 > i2 {
					pos = i1 - 1
				}
				out[pos] = v1.WithBulge(newBulge)
			}
			return out, true
		}
	}
	return nil, false
}

// redundantTriple reports whether v2 can be dropped from the triple
// (v1, v2, v3).
func redundantTriple(v1, v2, v3 Vertex, eps float64) bool {
	if v2.Pos().FuzzyEqual(v3.Pos(), eps) {
		return true
	}

	bothLines := v1.BulgeIsZero(eps) && v2.BulgeIsZero(eps)
	if bothLines {
		if !collinear(v1.Pos(), v2.Pos(), v3.Pos(), eps) {
			return false
		}
		// Collinear alone isn't enough: a backtrack/cusp (v2 between v1 and
		// v3 but the path doubling back on itself) is also collinear but
		// must not be dropped, so require the two edge vectors to point the
		// same way.
		edge1 := v2.Pos().Sub(v1.Pos())
		edge2 := v3.Pos().Sub(v2.Pos())
		return edge1.Dot(edge2) > 0
	}

	if _, ok := mergedArcBulge(v1, v2, v3, eps); ok {
		return true
	}
	return false
}

// mergedArcBulge reports whether (v1,v2) and (v2,v3) are arcs that can be
// merged into a single arc from v1 to v3, and if so the bulge that arc
// would need.
func mergedArcBulge(v1, v2, v3 Vertex, eps float64) (float64, bool) {
	if v1.BulgeIsZero(eps) || v2.BulgeIsZero(eps) {
		return 0, false
	}
	if sign(v1.Bulge) != sign(v2.Bulge) {
		return 0, false
	}

	r1, c1 := SegArcRadiusAndCenter(v1, v2)
	r2, c2 := SegArcRadiusAndCenter(v2, v3)
	if r1 < PosEqualEps || r2 < PosEqualEps {
		return 0, false
	}
	if !fuzzyEqual(r1, r2, eps) || !c1.FuzzyEqual(c2, eps) {
		return 0, false
	}

	theta1 := includedAngle(v1.Bulge)
	theta2 := includedAngle(v2.Bulge)
	combined := theta1 + theta2
	if math.Abs(combined) > math.Pi+1e-9 {
		return 0, false
	}
	return bulgeFromAngle(combined), true
}

// collinear reports whether a, b, c lie on a common line within eps,
// measured as the perpendicular distance from b to the line through a, c
// (or from b to a, if a and c coincide).
func collinear(a, b, c Vector2, eps float64) bool {
	ac := c.Sub(a)
	length := ac.Length()
	if length < PosEqualEps {
		return a.FuzzyEqual(b, eps)
	}
	cross := ac.Cross(b.Sub(a))
	dist := math.Abs(cross) / length
	return dist <= eps
}
