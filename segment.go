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

// SegLength returns the length of the segment starting at v1 and ending at
// v2 (a chord length for a line, an arc length for an arc).
func SegLength(v1, v2 Vertex) float64 {
	if v1.BulgeIsZero(PosEqualEps) {
		return v1.Pos().DistanceTo(v2.Pos())
	}
	r, _ := SegArcRadiusAndCenter(v1, v2)
	theta := includedAngle(v1.Bulge)
	return math.Abs(theta) * r
}

// SegArcRadiusAndCenter reconstructs the radius and center of the arc
// segment starting at v1 and ending at v2. v1.Bulge must be non-zero.
//
// The perpendicular offset from the chord midpoint to the center is
// computed via the identity (1 - bulge^2)/(4*bulge) rather than going
// through the full swept angle, which keeps the computation well
// conditioned near bulge values approaching a semicircle.
//
// Returns radius 0 and the (coincident) endpoint if v1 and v2 are
// positioned at the same point; callers that rely on a true center should
// treat that as degenerate.
func SegArcRadiusAndCenter(v1, v2 Vertex) (radius float64, center Vector2) {
	b := v1.Bulge
	p1, p2 := v1.Pos(), v2.Pos()

	d := p1.DistanceTo(p2)
	if d < PosEqualEps {
		return 0, p1
	}

	bAbs := math.Abs(b)
	r := d * (bAbs*bAbs + 1) / (4 * bAbs)

	// Perpendicular offset from the chord midpoint to the center, signed so
	// that it can flip sides for a major arc (|bulge| > 1).
	s := bAbs * d / 2
	m := r - s

	var offsX, offsY float64
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	if b > 0 {
		offsX, offsY = -dy, dx
	} else {
		offsX, offsY = dy, -dx
	}

	scale := m / d
	center = Vector2{
		X: p1.X + dx/2 + offsX*scale,
		Y: p1.Y + dy/2 + offsY*scale,
	}
	return r, center
}

// SegBoundingBox returns the tight bounding box of the segment (v1, v2).
func SegBoundingBox(v1, v2 Vertex) BoundingBox {
	box := boundingBoxFromPoints(v1.Pos(), v2.Pos())
	if v1.BulgeIsZero(PosEqualEps) {
		return box
	}

	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return box
	}

	startAngle := math.Atan2(v1.Y-c.Y, v1.X-c.X)
	theta := includedAngle(v1.Bulge)
	for k := 0; k < 4; k++ {
		cardinal := float64(k) * math.Pi / 2
		if angleWithinSweep(startAngle, theta, cardinal) {
			pt := Vector2{c.X + r*math.Cos(cardinal), c.Y + r*math.Sin(cardinal)}
			box = box.ExpandToInclude(pt)
		}
	}
	return box
}

// SegFastApproxBoundingBox returns a box guaranteed to enclose
// SegBoundingBox, computed without evaluating the arc at its cardinal
// angles. Suitable for bulk spatial index construction where tightness is
// not required.
func SegFastApproxBoundingBox(v1, v2 Vertex) BoundingBox {
	box := boundingBoxFromPoints(v1.Pos(), v2.Pos())
	if v1.BulgeIsZero(PosEqualEps) {
		return box
	}
	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return box
	}
	box = box.ExpandToInclude(Vector2{c.X - r, c.Y - r})
	box = box.ExpandToInclude(Vector2{c.X + r, c.Y + r})
	return box
}

// SegClosestPoint returns the point on segment (v1, v2) closest to p.
func SegClosestPoint(v1, v2 Vertex, p Vector2) Vector2 {
	if v1.BulgeIsZero(PosEqualEps) {
		return closestPointOnLine(v1.Pos(), v2.Pos(), p)
	}

	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return v1.Pos()
	}

	dir := p.Sub(c)
	if dir.Length2() < PosEqualEps*PosEqualEps {
		// p coincides with the center; every point on the circle is
		// equidistant, fall back to the nearer endpoint.
		if p.DistanceTo(v1.Pos()) <= p.DistanceTo(v2.Pos()) {
			return v1.Pos()
		}
		return v2.Pos()
	}

	proj := c.Add(dir.Normalized().Scale(r))
	startAngle := math.Atan2(v1.Y-c.Y, v1.X-c.X)
	theta := includedAngle(v1.Bulge)
	projAngle := math.Atan2(proj.Y-c.Y, proj.X-c.X)
	if angleWithinSweep(startAngle, theta, projAngle) {
		return proj
	}

	if p.DistanceTo(v1.Pos()) <= p.DistanceTo(v2.Pos()) {
		return v1.Pos()
	}
	return v2.Pos()
}

func closestPointOnLine(a, b, p Vector2) Vector2 {
	ab := b.Sub(a)
	lenSq := ab.Length2()
	if lenSq < PosEqualEps*PosEqualEps {
		return a
	}
	t := clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return a.Lerp(b, t)
}

// SegTangentDirection returns the unit tangent vector of segment (v1, v2)
// at the given point on the segment, oriented from v1 towards v2. Used by
// the boolean engine to tell whether two overlapping segments run in the
// same direction.
func SegTangentDirection(v1, v2 Vertex, point Vector2) Vector2 {
	if v1.BulgeIsZero(PosEqualEps) {
		return v2.Pos().Sub(v1.Pos()).Normalized()
	}
	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return v2.Pos().Sub(v1.Pos()).Normalized()
	}
	radial := point.Sub(c).Normalized()
	// Tangent is perpendicular to the radial direction, oriented according
	// to the arc's rotational sense.
	tangent := radial.Perpendicular()
	if v1.Bulge < 0 {
		tangent = tangent.Scale(-1)
	}
	return tangent
}

// SegSplitAtPoint splits the segment (v1, v2) at point p, returning the
// updated start vertex (at v1's position, with the bulge recomputed so
// that the sub-segment to p reproduces the same arc) and the split vertex
// (at p, with the bulge for the remaining arc to v2).
func SegSplitAtPoint(v1, v2 Vertex, p Vector2, eps float64) (updatedStart, splitVertex Vertex) {
	if v1.BulgeIsZero(eps) {
		return Vertex{X: v1.X, Y: v1.Y, Bulge: 0}, Vertex{X: p.X, Y: p.Y, Bulge: 0}
	}

	if v1.Pos().FuzzyEqual(p, eps) {
		return Vertex{X: v1.X, Y: v1.Y, Bulge: 0}, Vertex{X: p.X, Y: p.Y, Bulge: v1.Bulge}
	}

	if v2.Pos().FuzzyEqual(p, eps) {
		return v1, Vertex{X: p.X, Y: p.Y, Bulge: 0}
	}

	theta := includedAngle(v1.Bulge)
	_, c := SegArcRadiusAndCenter(v1, v2)
	startAngle := math.Atan2(v1.Y-c.Y, v1.X-c.X)
	pAngle := math.Atan2(p.Y-c.Y, p.X-c.X)

	theta1 := sweepDelta(startAngle, pAngle, theta >= 0)
	if theta < 0 {
		theta1 = -theta1
	}
	theta2 := theta - theta1

	updatedStart = Vertex{X: v1.X, Y: v1.Y, Bulge: bulgeFromAngle(theta1)}
	splitVertex = Vertex{X: p.X, Y: p.Y, Bulge: bulgeFromAngle(theta2)}
	return updatedStart, splitVertex
}

// angleWithinSweep reports whether testAngle lies within the arc sweep
// that starts at startAngle and turns through the signed angle theta
// (positive is counter-clockwise).
func angleWithinSweep(startAngle, theta, testAngle float64) bool {
	delta := sweepDelta(startAngle, testAngle, theta >= 0)
	return delta <= math.Abs(theta)+1e-10
}

// sweepDelta returns the non-negative angular distance traveled from
// "from" to "to" when sweeping in the direction given by ccw.
func sweepDelta(from, to float64, ccw bool) float64 {
	d := to - from
	if ccw {
		for d < 0 {
			d += 2 * math.Pi
		}
		for d >= 2*math.Pi {
			d -= 2 * math.Pi
		}
		return d
	}
	for d > 0 {
		d -= 2 * math.Pi
	}
	for d <= -2*math.Pi {
		d += 2 * math.Pi
	}
	return -d
}

// PointOnCircle returns the point at angle theta on the circle with the
// given center and radius.
func PointOnCircle(radius float64, center Vector2, theta float64) Vector2 {
	return Vector2{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
}
