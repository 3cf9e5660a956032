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

import (
	"math"
	"sort"

	"github.com/cavaliercore/pline/aabbindex"
	"github.com/cavaliercore/pline/batch"
)

// SegIntersect describes a single-point crossing between two segments.
type SegIntersect struct {
	Point Vector2
}

// SegOverlap describes two segments coinciding along a sub-range, given by
// its two endpoints.
type SegOverlap struct {
	Start, End Vector2
}

// SegIntersectResult is the outcome of intersecting one segment pair:
// either zero or more basic (point) intersections, or a single overlap.
type SegIntersectResult struct {
	Basic       []SegIntersect
	Overlapping *SegOverlap
}

// IntersectSegs computes the intersection of segments (a1,a2) and (b1,b2).
func IntersectSegs(a1, a2, b1, b2 Vertex, eps float64) SegIntersectResult {
	aLine := a1.BulgeIsZero(eps)
	bLine := b1.BulgeIsZero(eps)

	switch {
	case aLine && bLine:
		return intersectLineLine(a1, a2, b1, b2, eps)
	case aLine && !bLine:
		return intersectLineArc(a1, a2, b1, b2, eps)
	case !aLine && bLine:
		res := intersectLineArc(b1, b2, a1, a2, eps)
		return res
	default:
		return intersectArcArc(a1, a2, b1, b2, eps)
	}
}

func intersectLineLine(a1, a2, b1, b2 Vertex, eps float64) SegIntersectResult {
	p, r := a1.Pos(), a2.Pos().Sub(a1.Pos())
	q, s := b1.Pos(), b2.Pos().Sub(b1.Pos())

	rxs := r.Cross(s)
	qmp := q.Sub(p)

	if fuzzyZero(rxs, eps) {
		if !fuzzyZero(qmp.Cross(r), eps) {
			return SegIntersectResult{}
		}
		// Collinear: parametrize b1,b2 against a's line and clip to [0,1].
		rr := r.Dot(r)
		if rr < eps*eps {
			return SegIntersectResult{}
		}
		t0 := qmp.Dot(r) / rr
		t1 := t0 + s.Dot(r)/rr
		lo, hi := t0, t1
		if lo > hi {
			lo, hi = hi, lo
		}
		lo = maxF(lo, 0)
		hi = minF(hi, 1)
		if lo > hi+eps {
			return SegIntersectResult{}
		}
		start := p.Add(r.Scale(lo))
		end := p.Add(r.Scale(hi))
		if start.FuzzyEqual(end, eps) {
			return SegIntersectResult{Basic: []SegIntersect{{Point: start}}}
		}
		return SegIntersectResult{Overlapping: &SegOverlap{Start: start, End: end}}
	}

	t := qmp.Cross(s) / rxs
	u := qmp.Cross(r) / rxs
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return SegIntersectResult{}
	}
	return SegIntersectResult{Basic: []SegIntersect{{Point: p.Add(r.Scale(t))}}}
}

func intersectLineArc(l1, l2, a1, a2 Vertex, eps float64) SegIntersectResult {
	r, c := SegArcRadiusAndCenter(a1, a2)
	if r < PosEqualEps {
		return SegIntersectResult{}
	}

	p, d := l1.Pos(), l2.Pos().Sub(l1.Pos())
	dd := d.Dot(d)
	if dd < eps*eps {
		return SegIntersectResult{}
	}

	f := p.Sub(c)
	a := dd
	b := 2 * f.Dot(d)
	cc := f.Dot(f) - r*r
	disc := b*b - 4*a*cc
	if disc < 0 {
		return SegIntersectResult{}
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)

	startAngle := math.Atan2(a1.Y-c.Y, a1.X-c.X)
	theta := includedAngle(a1.Bulge)

	var out []SegIntersect
	for _, t := range uniqueFloats(t1, t2, eps) {
		if t < -eps || t > 1+eps {
			continue
		}
		pt := p.Add(d.Scale(t))
		angle := math.Atan2(pt.Y-c.Y, pt.X-c.X)
		if angleWithinSweep(startAngle, theta, angle) {
			out = append(out, SegIntersect{Point: pt})
		}
	}
	return SegIntersectResult{Basic: out}
}

func intersectArcArc(a1, a2, b1, b2 Vertex, eps float64) SegIntersectResult {
	r1, c1 := SegArcRadiusAndCenter(a1, a2)
	r2, c2 := SegArcRadiusAndCenter(b1, b2)
	if r1 < PosEqualEps || r2 < PosEqualEps {
		return SegIntersectResult{}
	}

	d := c1.DistanceTo(c2)
	if d < eps && fuzzyEqual(r1, r2, eps) {
		// Co-circular: overlap is determined by sweep intersection in
		// angle space.
		return intersectCoCircularArcs(a1, a2, b1, b2, c1, r1, eps)
	}

	if d > r1+r2+eps || d < math.Abs(r1-r2)-eps {
		return SegIntersectResult{}
	}

	// Standard two-circle intersection.
	aTerm := (r1*r1 - r2*r2 + d*d) / (2 * d)
	hSq := r1*r1 - aTerm*aTerm
	if hSq < 0 {
		hSq = 0
	}
	h := math.Sqrt(hSq)

	dir := c2.Sub(c1).Normalized()
	mid := c1.Add(dir.Scale(aTerm))
	perp := dir.Perpendicular()

	candidates := []Vector2{mid.Add(perp.Scale(h)), mid.Sub(perp.Scale(h))}

	startA := math.Atan2(a1.Y-c1.Y, a1.X-c1.X)
	thetaA := includedAngle(a1.Bulge)
	startB := math.Atan2(b1.Y-c2.Y, b1.X-c2.X)
	thetaB := includedAngle(b1.Bulge)

	var out []SegIntersect
	seen := make([]Vector2, 0, 2)
	for _, pt := range candidates {
		if dupVector(seen, pt, eps) {
			continue
		}
		angleA := math.Atan2(pt.Y-c1.Y, pt.X-c1.X)
		angleB := math.Atan2(pt.Y-c2.Y, pt.X-c2.X)
		if angleWithinSweep(startA, thetaA, angleA) && angleWithinSweep(startB, thetaB, angleB) {
			out = append(out, SegIntersect{Point: pt})
			seen = append(seen, pt)
		}
	}
	return SegIntersectResult{Basic: out}
}

func intersectCoCircularArcs(a1, a2, b1, b2 Vertex, c Vector2, r float64, eps float64) SegIntersectResult {
	startA := math.Atan2(a1.Y-c.Y, a1.X-c.X)
	thetaA := includedAngle(a1.Bulge)
	startB := math.Atan2(b1.Y-c.Y, b1.X-c.X)
	thetaB := includedAngle(b1.Bulge)

	ccw := thetaA >= 0
	loA, hiA := 0.0, math.Abs(thetaA)
	loB := sweepDelta(startA, startB, ccw)
	hiB := loB + math.Abs(thetaB)*signMatch(thetaA, thetaB)

	if hiB < loB {
		loB, hiB = hiB, loB
	}

	lo := maxF(loA, loB)
	hi := minF(hiA, hiB)
	if lo > hi+eps {
		return SegIntersectResult{}
	}
	startPt := PointOnCircle(r, c, startA+sweepSign(ccw)*lo)
	endPt := PointOnCircle(r, c, startA+sweepSign(ccw)*hi)
	if startPt.FuzzyEqual(endPt, eps) {
		return SegIntersectResult{Basic: []SegIntersect{{Point: startPt}}}
	}
	return SegIntersectResult{Overlapping: &SegOverlap{Start: startPt, End: endPt}}
}

func signMatch(a, b float64) float64 {
	if sign(a) == sign(b) || sign(b) == 0 {
		return 1
	}
	return -1
}

func sweepSign(ccw bool) float64 {
	if ccw {
		return 1
	}
	return -1
}

func dupVector(seen []Vector2, p Vector2, eps float64) bool {
	for _, s := range seen {
		if s.FuzzyEqual(p, eps) {
			return true
		}
	}
	return false
}

func uniqueFloats(a, b, eps float64) []float64 {
	if fuzzyEqual(a, b, eps) {
		return []float64{a}
	}
	return []float64{a, b}
}

// PlineIntersectResult collects every basic and overlapping intersection
// found between two polylines.
type PlineIntersectResult struct {
	Basic       []SegIntersect
	Overlapping []SegOverlap
}

// BuildSegmentIndex builds an AABB index over every segment of p, using
// the fast approximate bounding box (suitable for index construction). The
// endpoint-only box for every segment is computed in one SIMD pass over
// the whole polyline via batch.SegmentBoxes; arcs then get their (rarer)
// radius expansion applied on top, one segment at a time.
func BuildSegmentIndex(p PolylineRef) *aabbindex.Index {
	segCount := segmentCountOf(p)
	b := aabbindex.NewBuilder(segCount)
	if segCount == 0 {
		return b.Build()
	}

	v1s := make([]Vertex, segCount)
	v2s := make([]Vertex, segCount)
	x1s := make([]float64, segCount)
	y1s := make([]float64, segCount)
	x2s := make([]float64, segCount)
	y2s := make([]float64, segCount)
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(p, i)
		v1s[i], v2s[i] = v1, v2
		x1s[i], y1s[i] = v1.X, v1.Y
		x2s[i], y2s[i] = v2.X, v2.Y
	}

	minXs := make([]float64, segCount)
	minYs := make([]float64, segCount)
	maxXs := make([]float64, segCount)
	maxYs := make([]float64, segCount)
	batch.SegmentBoxes(x1s, y1s, x2s, y2s, minXs, minYs, maxXs, maxYs)

	for i := 0; i < segCount; i++ {
		box := BoundingBox{MinX: minXs[i], MinY: minYs[i], MaxX: maxXs[i], MaxY: maxYs[i]}
		if !v1s[i].BulgeIsZero(PosEqualEps) {
			if r, c := SegArcRadiusAndCenter(v1s[i], v2s[i]); r >= PosEqualEps {
				box = box.ExpandToInclude(Vector2{c.X - r, c.Y - r})
				box = box.ExpandToInclude(Vector2{c.X + r, c.Y + r})
			}
		}
		b.Add(box.MinX, box.MinY, box.MaxX, box.MaxY)
	}
	return b.Build()
}

// FindIntersects finds all intersections between pline1 and pline2, using
// (or building) an AABB index over pline1's segments. Adjacent-segment
// endpoint-tangency duplicates reported by pline2's two segments sharing a
// vertex against the same pline1 segment are deduplicated.
func FindIntersects(pline1, pline2 PolylineRef, index1 *aabbindex.Index, eps float64) PlineIntersectResult {
	if index1 == nil {
		index1 = BuildSegmentIndex(pline1)
	}

	var result PlineIntersectResult
	seg2Count := segmentCountOf(pline2)
	for j := 0; j < seg2Count; j++ {
		b1, b2 := segmentAt(pline2, j)
		box := SegFastApproxBoundingBox(b1, b2).Expanded(eps)
		for _, i := range index1.QueryBox(box.MinX, box.MinY, box.MaxX, box.MaxY) {
			a1, a2 := segmentAt(pline1, i)
			res := IntersectSegs(a1, a2, b1, b2, eps)
			if res.Overlapping != nil {
				result.Overlapping = append(result.Overlapping, *res.Overlapping)
			}
			result.Basic = append(result.Basic, res.Basic...)
		}
	}

	result.Basic = dedupEndpointTangencies(result.Basic, eps)
	return result
}

// dedupEndpointTangencies collapses duplicate intersection points reported
// from adjacent segments crossing at a shared vertex.
func dedupEndpointTangencies(points []SegIntersect, eps float64) []SegIntersect {
	if len(points) < 2 {
		return points
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Point.X != points[j].Point.X {
			return points[i].Point.X < points[j].Point.X
		}
		return points[i].Point.Y < points[j].Point.Y
	})
	out := points[:0:0]
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Point.FuzzyEqual(p.Point, eps) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SelfIntersectScope selects which self-intersections FindSelfIntersects
// reports.
type SelfIntersectScope int

const (
	// Local reports only adjacent-segment self-intersections (arcs only).
	Local SelfIntersectScope = iota
	// Global reports only non-adjacent-segment self-intersections.
	Global
	// All reports both.
	All
)

// FindSelfIntersects finds self-intersections of p within the requested
// scope.
func FindSelfIntersects(p PolylineRef, scope SelfIntersectScope, eps float64) PlineIntersectResult {
	var result PlineIntersectResult
	segCount := segmentCountOf(p)

	if scope == Local || scope == All {
		for i := 0; i < segCount; i++ {
			j := nextWrappingIndex(i, segCount)
			if !p.IsClosed() && j == 0 {
				continue
			}
			v1, v2 := segmentAt(p, i)
			if v1.BulgeIsZero(eps) {
				continue
			}
			w1, w2 := segmentAt(p, j)
			res := IntersectSegs(v1, v2, w1, w2, eps)
			for _, pt := range res.Basic {
				if !pt.Point.FuzzyEqual(v2.Pos(), eps) {
					result.Basic = append(result.Basic, pt)
				}
			}
		}
	}

	if scope == Global || scope == All {
		index := BuildSegmentIndex(p)
		for i := 0; i < segCount; i++ {
			v1, v2 := segmentAt(p, i)
			box := SegFastApproxBoundingBox(v1, v2).Expanded(eps)
			for _, k := range index.QueryBox(box.MinX, box.MinY, box.MaxX, box.MaxY) {
				if !nonAdjacent(i, k, segCount, p.IsClosed()) {
					continue
				}
				w1, w2 := segmentAt(p, k)
				res := IntersectSegs(v1, v2, w1, w2, eps)
				result.Basic = append(result.Basic, res.Basic...)
				if res.Overlapping != nil {
					result.Overlapping = append(result.Overlapping, *res.Overlapping)
				}
			}
		}
		result.Basic = dedupEndpointTangencies(result.Basic, eps)
	}

	return result
}

func nonAdjacent(i, k, segCount int, closed bool) bool {
	if i >= k {
		return false
	}
	if k == i+1 {
		return false
	}
	if closed && i == 0 && k == segCount-1 {
		return false
	}
	return true
}
