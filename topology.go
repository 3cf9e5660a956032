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

// PlineOrientation is the directional orientation of a closed polyline.
type PlineOrientation int

const (
	// Open polylines have no orientation.
	Open PlineOrientation = iota
	Clockwise
	CounterClockwise
)

// ClosestPointResult is the result of a closest-point query against a
// polyline.
type ClosestPointResult struct {
	// SegStartIndex is the start vertex index of the closest segment.
	SegStartIndex int
	// SegPoint is the closest point on that segment.
	SegPoint Vector2
	// Distance is the Euclidean distance from the query point to SegPoint.
	Distance float64
}

// Extents returns the union of all per-segment bounding boxes, and false
// if the polyline has fewer than 2 vertices.
func Extents(p PolylineRef) (BoundingBox, bool) {
	segCount := segmentCountOf(p)
	if segCount == 0 {
		return BoundingBox{}, false
	}

	var box BoundingBox
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(p, i)
		segBox := SegBoundingBox(v1, v2)
		if i == 0 {
			box = segBox
		} else {
			box = box.Union(segBox)
		}
	}
	return box, true
}

// PathLength returns the sum of segment lengths.
func PathLength(p PolylineRef) float64 {
	total := 0.0
	segCount := segmentCountOf(p)
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(p, i)
		total += SegLength(v1, v2)
	}
	return total
}

// Area returns the signed enclosed area of a closed polyline (zero for an
// open polyline). The shoelace sum over vertices is adjusted per arc
// segment by the circular-segment area, added when the arc bulges
// counter-clockwise and subtracted when clockwise. Positive indicates
// counter-clockwise orientation, negative clockwise.
func Area(p PolylineRef) float64 {
	if !p.IsClosed() {
		return 0
	}
	segCount := segmentCountOf(p)
	shoelace := 0.0
	arcContribution := 0.0
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(p, i)
		shoelace += v1.X*v2.Y - v2.X*v1.Y

		if !v1.BulgeIsZero(PosEqualEps) {
			r, _ := SegArcRadiusAndCenter(v1, v2)
			theta := includedAngle(v1.Bulge)
			absTheta := math.Abs(theta)
			// Circular segment area (between the chord and the arc):
			// 1/2 r^2 (theta - sin(theta)).
			segArea := 0.5 * r * r * (absTheta - math.Sin(absTheta))
			if theta >= 0 {
				arcContribution += segArea
			} else {
				arcContribution -= segArea
			}
		}
	}
	return shoelace/2 + arcContribution
}

// Orientation classifies a closed polyline by the sign of its area. Open
// polylines are always Open.
func Orientation(p PolylineRef) PlineOrientation {
	if !p.IsClosed() {
		return Open
	}
	a := Area(p)
	if a > 0 {
		return CounterClockwise
	}
	if a < 0 {
		return Clockwise
	}
	return Open
}

// ClosestPoint returns the point on the polyline closest to p, and false
// if the polyline is empty.
func ClosestPoint(pl PolylineRef, p Vector2) (ClosestPointResult, bool) {
	segCount := segmentCountOf(pl)
	if segCount == 0 {
		return ClosestPointResult{}, false
	}

	best := ClosestPointResult{Distance: math.Inf(1)}
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(pl, i)
		cp := SegClosestPoint(v1, v2, p)
		d := p.DistanceTo(cp)
		if d < best.Distance {
			best = ClosestPointResult{SegStartIndex: i, SegPoint: cp, Distance: d}
		}
	}
	return best, true
}

// WindingNumber returns the integer winding number of the polyline around
// p. Always 0 for an open polyline. Behavior is unspecified when p lies
// exactly on the polyline; combine with ClosestPoint to test that case.
func WindingNumber(pl PolylineRef, p Vector2) int {
	if !pl.IsClosed() {
		return 0
	}

	winding := 0
	segCount := segmentCountOf(pl)
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(pl, i)
		if v1.BulgeIsZero(PosEqualEps) {
			winding += lineWindingContribution(v1.Pos(), v2.Pos(), p)
		} else {
			winding += arcWindingContribution(v1, v2, p)
		}
	}
	return winding
}

func lineWindingContribution(a, b, p Vector2) int {
	if a.Y <= p.Y {
		if b.Y > p.Y && isLeft(a, b, p) {
			return 1
		}
	} else {
		if b.Y <= p.Y && !isLeftOrEqual(a, b, p) {
			return -1
		}
	}
	return 0
}

// arcWindingContribution computes the winding number contribution of an
// arc segment via horizontal-ray crossing against the reconstructed
// circle, restricted to the segment's sweep. The sweep test at the
// endpoints is half-open ([0, |theta|)) so a vertex lying exactly on the
// ray is attributed to exactly one of its two adjacent segments, mirroring
// the a.Y<=p.Y / b.Y>p.Y half-open convention used for line segments.
func arcWindingContribution(v1, v2 Vertex, p Vector2) int {
	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return 0
	}

	dy := p.Y - c.Y
	if math.Abs(dy) > r {
		return 0
	}
	half := math.Sqrt(math.Max(r*r-dy*dy, 0))

	startAngle := math.Atan2(v1.Y-c.Y, v1.X-c.X)
	theta := includedAngle(v1.Bulge)
	dirSign := sign(theta)

	winding := 0
	for _, x := range [2]float64{c.X + half, c.X - half} {
		angle := math.Atan2(dy, x-c.X)
		if !angleWithinSweepHalfOpen(startAngle, theta, angle) {
			continue
		}
		if x <= p.X {
			continue
		}
		dyDt := r * math.Cos(angle) * dirSign
		if dyDt > 0 {
			winding++
		} else if dyDt < 0 {
			winding--
		}
	}
	return winding
}

// angleWithinSweepHalfOpen is angleWithinSweep but excludes the exact end
// of the sweep (delta == |theta|), including only the start.
func angleWithinSweepHalfOpen(startAngle, theta, testAngle float64) bool {
	delta := sweepDelta(startAngle, testAngle, theta >= 0)
	return delta < math.Abs(theta)-1e-10
}

func segmentCountOf(p PolylineRef) int {
	return segmentCountFor(p.VertexCount(), p.IsClosed())
}

func segmentAt(p PolylineRef, i int) (Vertex, Vertex) {
	n := p.VertexCount()
	return p.At(i), p.At(nextWrappingIndex(i, n))
}
