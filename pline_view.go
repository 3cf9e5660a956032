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

	"github.com/cavaliercore/pline/plineerr"
)

// slicePosEps is the looser positional tolerance slice validation uses,
// wider than PosEqualEps because trimmed endpoints accumulate more error
// than exact source vertices.
const slicePosEps = 1e-3

// PlineViewData is the borrowed-range description backing a PlineView: it
// never copies the source's vertices, only records where within it the
// view begins and ends and how the two trimmed endpoints should read.
//
// Views must not outlive the source polyline they borrow, and the source
// must not be mutated while a view exists; both are undefined behavior the
// caller is responsible for avoiding (see DESIGN.md).
type PlineViewData struct {
	// StartIndex is the source segment index where the view begins.
	StartIndex int
	// EndIndexOffset is the number of forward-wrapping segments the view
	// traverses from StartIndex.
	EndIndexOffset int
	// UpdatedStart replaces the source's vertex at StartIndex.
	UpdatedStart Vertex
	// UpdatedEndBulge is the bulge used for the last traversed segment.
	UpdatedEndBulge float64
	// EndPoint is the view's final position, somewhere along the last
	// traversed source segment.
	EndPoint Vector2
	// InvertedDirection, if set, yields vertices in reverse with negated
	// bulges.
	InvertedDirection bool
}

// PlineView is a logical, non-owning sub-range of a source polyline. It
// always reports itself as open and always has EndIndexOffset+2 vertices.
type PlineView struct {
	source PolylineRef
	data   PlineViewData
}

// FromEntirePline returns a view covering source's entire vertex range. If
// source is open, the view has the same endpoints; if closed, the view
// opens it at vertex 0.
func FromEntirePline(source PolylineRef) (*PlineView, bool) {
	n := source.VertexCount()
	if n == 0 {
		return nil, false
	}

	first := source.At(0)
	if !source.IsClosed() {
		last := source.At(n - 1)
		return &PlineView{source: source, data: PlineViewData{
			StartIndex:      0,
			EndIndexOffset:  n - 1,
			UpdatedStart:    first,
			UpdatedEndBulge: 0,
			EndPoint:        last.Pos(),
		}}, true
	}

	return &PlineView{source: source, data: PlineViewData{
		StartIndex:      0,
		EndIndexOffset:  n,
		UpdatedStart:    first,
		UpdatedEndBulge: first.Bulge,
		EndPoint:        first.Pos(),
	}}, true
}

// CreateOnSingleSegment constructs a view whose start and end both lie on
// the source segment starting at startIndex. Returns false (degenerate) if
// updatedStart and endPoint coincide within eps.
func CreateOnSingleSegment(source PolylineRef, startIndex int, updatedStart Vertex, endPoint Vector2, eps float64) (*PlineView, bool) {
	if updatedStart.Pos().FuzzyEqual(endPoint, eps) {
		return nil, false
	}
	return &PlineView{source: source, data: PlineViewData{
		StartIndex:      startIndex,
		EndIndexOffset:  0,
		UpdatedStart:    updatedStart,
		UpdatedEndBulge: updatedStart.Bulge,
		EndPoint:        endPoint,
	}}, true
}

// Create constructs a view spanning multiple segments: it starts at
// updatedStart on the segment at startIndex, traverses traverseCount
// further segments, and ends at a split of the segment starting at
// intersectIndex, splitting that segment's vertex (endIntersect's
// governing vertex) at endIntersect.
func Create(source PolylineRef, startIndex int, endIntersect Vector2, intersectIndex int, updatedStart Vertex, traverseCount int, eps float64) (*PlineView, bool) {
	n := source.VertexCount()
	if traverseCount < 0 || traverseCount > n {
		return nil, false
	}

	finalVertex := source.At(intersectIndex)
	if endIntersect.FuzzyEqual(finalVertex.Pos(), eps) {
		return nil, false
	}

	finalNext := source.At(nextWrappingIndex(intersectIndex, n))
	updatedEndBulge, _ := SegSplitAtPoint(finalVertex, finalNext, endIntersect, eps)

	return &PlineView{source: source, data: PlineViewData{
		StartIndex:      startIndex,
		EndIndexOffset:  traverseCount,
		UpdatedStart:    updatedStart,
		UpdatedEndBulge: updatedEndBulge.Bulge,
		EndPoint:        endIntersect,
	}}, true
}

// FromSlicePoints is the high-level constructor: given a start point on
// segment iStart and an end point on segment iEnd (both indices are
// source segment-start indices), it builds the view spanning from pStart
// to pEnd, forward-wrapping through the source as needed. It handles
// pStart coinciding with the segment's own start vertex and pStart/pEnd
// landing on the same segment.
func FromSlicePoints(source PolylineRef, pStart Vector2, iStart int, pEnd Vector2, iEnd int, eps float64) (*PlineView, bool) {
	n := source.VertexCount()
	if n == 0 {
		return nil, false
	}

	startVertex := source.At(iStart)
	var updatedStart Vertex
	if startVertex.Pos().FuzzyEqual(pStart, eps) {
		updatedStart = startVertex
	} else {
		_, split := SegSplitAtPoint(startVertex, source.At(nextWrappingIndex(iStart, n)), pStart, eps)
		updatedStart = split
	}

	if iStart == iEnd && sweepOrderOnSegment(source, iStart, pStart, pEnd, eps) {
		return CreateOnSingleSegment(source, iStart, updatedStart, pEnd, eps)
	}

	traverseCount := fwdWrappingDist(iStart, iEnd, n)
	if traverseCount == 0 {
		traverseCount = n
	}
	return Create(source, iStart, pEnd, iEnd, updatedStart, traverseCount, eps)
}

// sweepOrderOnSegment reports whether pStart precedes pEnd along the
// directed segment at segIndex (by arc-length parameter), used to decide
// whether a same-segment slice request is actually a single-segment view
// rather than one that must wrap all the way around.
func sweepOrderOnSegment(source PolylineRef, segIndex int, pStart, pEnd Vector2, eps float64) bool {
	v1, v2 := source.At(segIndex), source.At(nextWrappingIndex(segIndex, source.VertexCount()))
	if v1.BulgeIsZero(eps) {
		chord := v2.Pos().Sub(v1.Pos())
		return pEnd.Sub(v1.Pos()).Dot(chord) >= pStart.Sub(v1.Pos()).Dot(chord)
	}
	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return true
	}
	startAngle := math.Atan2(v1.Y-c.Y, v1.X-c.X)
	theta := includedAngle(v1.Bulge)
	ccw := theta >= 0
	aStart := sweepDelta(startAngle, math.Atan2(pStart.Y-c.Y, pStart.X-c.X), ccw)
	aEnd := sweepDelta(startAngle, math.Atan2(pEnd.Y-c.Y, pEnd.X-c.X), ccw)
	return aEnd >= aStart
}

// Data returns the view's raw borrowed-range description.
func (v *PlineView) Data() PlineViewData {
	return v.data
}

// VertexCount returns EndIndexOffset+2, the number of logical vertices the
// view exposes.
func (v *PlineView) VertexCount() int {
	return v.data.EndIndexOffset + 2
}

// IsClosed is always false: views are always treated as open.
func (v *PlineView) IsClosed() bool {
	return false
}

// At returns the view's materialized vertex at logical index i. Panics if
// i is out of range.
func (v *PlineView) At(i int) Vertex {
	vert, ok := v.Get(i)
	if !ok {
		panic("pline: PlineView.At index out of range")
	}
	return vert
}

// Get returns the view's materialized vertex at logical index i, and
// false if i is out of range.
func (v *PlineView) Get(i int) (Vertex, bool) {
	n := v.VertexCount()
	if i < 0 || i >= n {
		return Vertex{}, false
	}
	if !v.data.InvertedDirection {
		return v.forwardVertex(i), true
	}

	// Reversed order takes the forward vertex's position, but the bulge of
	// the segment it now starts is the negated bulge that, in forward
	// order, belonged to the vertex preceding it (the arc that began at
	// forward vertex k now begins at forward vertex k-1, mirroring
	// Polyline.InvertDirection). The last reversed vertex is an open
	// endpoint, so its bulge is unused and left at zero.
	pos := v.forwardVertex(n - 1 - i).Pos()
	if i == n-1 {
		return Vertex{X: pos.X, Y: pos.Y, Bulge: 0}, true
	}
	bulge := -v.forwardVertex(n - 2 - i).Bulge
	return Vertex{X: pos.X, Y: pos.Y, Bulge: bulge}, true
}

// forwardVertex materializes logical index i ignoring InvertedDirection.
func (v *PlineView) forwardVertex(i int) Vertex {
	d := v.data
	sourceN := v.source.VertexCount()

	switch {
	case i == 0:
		return d.UpdatedStart
	case i < d.EndIndexOffset:
		return v.source.At(fwdWrappingIndex(d.StartIndex, i, sourceN))
	case i == d.EndIndexOffset:
		return v.source.At(fwdWrappingIndex(d.StartIndex, i, sourceN)).WithBulge(d.UpdatedEndBulge)
	default:
		return Vertex{X: d.EndPoint.X, Y: d.EndPoint.Y, Bulge: 0}
	}
}

// ToPolyline materializes the view as an owned, open Polyline, dropping
// any vertex whose position fuzzy-equals its predecessor's.
func (v *PlineView) ToPolyline(eps float64) *Polyline {
	n := v.VertexCount()
	out := WithCapacity(n, false)
	for i := 0; i < n; i++ {
		out.AddOrReplaceVertex(v.At(i), eps)
	}
	return out
}

// PathLength sums segment lengths along the materialized view.
func (v *PlineView) PathLength() float64 {
	return PathLength(v)
}

// FindPointAtPathLength walks the view's segments accumulating length; if
// target falls within [0, PathLength()] it returns the segment offset and
// exact point, otherwise it returns false and the view's total length.
// A negative target returns the view's first position.
func (v *PlineView) FindPointAtPathLength(target float64) (segOffset int, point Vector2, total float64, ok bool) {
	if target < 0 {
		return 0, v.At(0).Pos(), 0, true
	}

	segCount := v.VertexCount() - 1
	accum := 0.0
	for i := 0; i < segCount; i++ {
		v1, v2 := v.At(i), v.At(i+1)
		segLen := SegLength(v1, v2)
		if target <= accum+segLen {
			remaining := target - accum
			return i, pointAlongSegment(v1, v2, remaining), 0, true
		}
		accum += segLen
	}
	return 0, Vector2{}, accum, false
}

func pointAlongSegment(v1, v2 Vertex, dist float64) Vector2 {
	if v1.BulgeIsZero(PosEqualEps) {
		chord := v2.Pos().Sub(v1.Pos())
		length := chord.Length()
		if length < PosEqualEps {
			return v1.Pos()
		}
		t := clamp(dist/length, 0, 1)
		return v1.Pos().Lerp(v2.Pos(), t)
	}
	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return v1.Pos()
	}
	theta := includedAngle(v1.Bulge)
	totalLen := math.Abs(theta) * r
	if totalLen < PosEqualEps {
		return v1.Pos()
	}
	frac := clamp(dist/totalLen, 0, 1)
	startAngle := math.Atan2(v1.Y-c.Y, v1.X-c.X)
	angle := startAngle + theta*frac
	return PointOnCircle(r, c, angle)
}

// ValidateSlice checks a constructed PlineViewData against its source and
// returns the first validation failure found, or plineerr.IsValid.
func ValidateSlice(source PolylineRef, d PlineViewData) plineerr.ValidationKind {
	n := source.VertexCount()
	if d.EndIndexOffset > n {
		return plineerr.OffsetOutOfRange
	}

	segStart := source.At(d.StartIndex)
	segEnd := source.At(nextWrappingIndex(d.StartIndex, n))
	closest := SegClosestPoint(segStart, segEnd, d.UpdatedStart.Pos())
	if closest.DistanceTo(d.UpdatedStart.Pos()) > slicePosEps {
		return plineerr.UpdatedStartNotOnSegment
	}

	finalIdx := fwdWrappingIndex(d.StartIndex, d.EndIndexOffset, n)
	finalStart := source.At(finalIdx)
	finalEnd := source.At(nextWrappingIndex(finalIdx, n))
	closestEnd := SegClosestPoint(finalStart, finalEnd, d.EndPoint)
	if closestEnd.DistanceTo(d.EndPoint) > slicePosEps {
		return plineerr.EndPointNotOnSegment
	}

	if d.EndPoint.FuzzyEqual(finalStart.Pos(), slicePosEps) {
		return plineerr.EndPointOnFinalOffsetVertex
	}

	if d.EndIndexOffset == 0 && !fuzzyEqual(d.UpdatedEndBulge, d.UpdatedStart.Bulge, slicePosEps) {
		return plineerr.UpdatedBulgeDoesNotMatch
	}

	return plineerr.IsValid
}
