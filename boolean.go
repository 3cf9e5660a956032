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

	"github.com/cavaliercore/pline/plinelog"
)

// BooleanOp is a set-theoretic combination of two closed polylines'
// bounded regions.
type BooleanOp int

const (
	Or BooleanOp = iota
	And
	Not
	Xor
)

// Polarity classifies an output polyline from a boolean operation as
// adding area (Positive) or subtracting it, i.e. a hole (Negative).
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

// BooleanResult is one output polyline from a boolean operation, tagged
// with its polarity relative to the operation.
type BooleanResult struct {
	Pline    *Polyline
	Polarity Polarity
}

// BooleanPlineSlice is an open slice produced while executing a boolean
// operation: a view plus which input it was cut from and whether it lies
// on the two inputs' overlapping segment set.
type BooleanPlineSlice struct {
	View           *PlineView
	SourceIsPline1 bool
	Overlapping    bool
	// Codirectional is only meaningful when Overlapping is true: whether
	// the overlap runs the same direction in both inputs.
	Codirectional bool
}

// BooleanOptions configures Boolean.
type BooleanOptions struct {
	logger plinelog.Logger
}

// NewBooleanOptions returns the default options.
func NewBooleanOptions() BooleanOptions {
	return BooleanOptions{logger: plinelog.Noop}
}

// Logger sets where best-effort degradations (boolean output topology that
// could not be stitched back into a closed loop) are reported. The default
// is plinelog.Noop.
func (o *BooleanOptions) Logger(l plinelog.Logger) *BooleanOptions {
	o.logger = l
	return o
}

// Boolean computes op(pline1, pline2) for two closed polylines.
func Boolean(pline1, pline2 PolylineRef, op BooleanOp, eps float64, opts *BooleanOptions) []BooleanResult {
	if opts == nil {
		def := NewBooleanOptions()
		opts = &def
	}
	if !pline1.IsClosed() || !pline2.IsClosed() {
		return nil
	}

	index1 := BuildSegmentIndex(pline1)
	ints := FindIntersects(pline1, pline2, index1, eps)

	if len(ints.Basic) == 0 && len(ints.Overlapping) == 0 {
		return booleanEarlyOut(pline1, pline2, op)
	}

	slices := sliceBothPlines(pline1, pline2, ints, eps)
	classified := classifySlices(slices, pline1, pline2, eps)
	selected := selectSlices(classified, op)
	return stitchBooleanSlices(selected, pline1, pline2, op, eps, opts.logger)
}

// booleanEarlyOut handles the no-intersection case: either the polylines
// are disjoint, or one wholly contains the other.
func booleanEarlyOut(pline1, pline2 PolylineRef, op BooleanOp) []BooleanResult {
	p1, _ := pline1.Get(0)
	p2, _ := pline2.Get(0)
	oneInTwo := WindingNumber(pline2, p1.Pos()) != 0
	twoInOne := WindingNumber(pline1, p2.Pos()) != 0

	or1 := orientedCopy(pline1)
	or2 := orientedCopy(pline2)

	disjoint := !oneInTwo && !twoInOne

	switch op {
	case Or:
		if disjoint {
			return []BooleanResult{{Pline: or1, Polarity: Positive}, {Pline: or2, Polarity: Positive}}
		}
		if twoInOne {
			return []BooleanResult{{Pline: or1, Polarity: Positive}}
		}
		return []BooleanResult{{Pline: or2, Polarity: Positive}}
	case And:
		if disjoint {
			return nil
		}
		if twoInOne {
			return []BooleanResult{{Pline: or2, Polarity: Positive}}
		}
		return []BooleanResult{{Pline: or1, Polarity: Positive}}
	case Not:
		if disjoint {
			return []BooleanResult{{Pline: or1, Polarity: Positive}}
		}
		if twoInOne {
			// pline2 is a hole inside pline1.
			hole := orientedCopy(pline2)
			hole.InvertDirection()
			return []BooleanResult{{Pline: or1, Polarity: Positive}, {Pline: hole, Polarity: Negative}}
		}
		// pline1 is entirely inside pline2: subtracting everything leaves
		// nothing.
		return nil
	case Xor:
		if disjoint {
			return []BooleanResult{{Pline: or1, Polarity: Positive}, {Pline: or2, Polarity: Positive}}
		}
		if twoInOne {
			hole := orientedCopy(pline2)
			hole.InvertDirection()
			return []BooleanResult{{Pline: or1, Polarity: Positive}, {Pline: hole, Polarity: Negative}}
		}
		hole := orientedCopy(pline1)
		hole.InvertDirection()
		return []BooleanResult{{Pline: or2, Polarity: Positive}, {Pline: hole, Polarity: Negative}}
	}
	return nil
}

// orientedCopy returns a materialized, counter-clockwise copy of p (the
// convention for boundary contours of a positive-area region).
func orientedCopy(p PolylineRef) *Polyline {
	n := p.VertexCount()
	out := WithCapacity(n, true)
	for i := 0; i < n; i++ {
		out.AddVertex(p.At(i))
	}
	if Orientation(out) == Clockwise {
		out.InvertDirection()
	}
	return out
}

// crossingPoint is an intersection point located along one input
// polyline, used to sort crossings along that polyline before slicing.
type crossingPoint struct {
	segIndex int
	param    float64
	point    Vector2
}

func sliceBothPlines(pline1, pline2 PolylineRef, ints PlineIntersectResult, eps float64) []BooleanPlineSlice {
	c1 := collectCrossings(pline1, ints.Basic, ints.Overlapping, true, eps)
	c2 := collectCrossings(pline2, ints.Basic, ints.Overlapping, false, eps)

	slices1 := sliceAlong(pline1, c1, true, eps)
	slices2 := sliceAlong(pline2, c2, false, eps)

	overlapSlices := overlapSlicesFor(pline1, pline2, ints.Overlapping, eps)

	out := make([]BooleanPlineSlice, 0, len(slices1)+len(slices2)+len(overlapSlices))
	out = append(out, slices1...)
	out = append(out, slices2...)
	out = append(out, overlapSlices...)
	return out
}

func collectCrossings(pl PolylineRef, basic []SegIntersect, overlaps []SegOverlap, isPline1 bool, eps float64) []crossingPoint {
	segCount := segmentCountOf(pl)
	var pts []Vector2
	for _, b := range basic {
		pts = append(pts, b.Point)
	}
	for _, ov := range overlaps {
		pts = append(pts, ov.Start, ov.End)
	}

	var out []crossingPoint
	for _, p := range pts {
		best, bestDist := -1, math.Inf(1)
		for i := 0; i < segCount; i++ {
			v1, v2 := segmentAt(pl, i)
			cp := SegClosestPoint(v1, v2, p)
			d := cp.DistanceTo(p)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best < 0 || bestDist > eps*50 {
			continue
		}
		v1, v2 := segmentAt(pl, best)
		if p.FuzzyEqual(v1.Pos(), eps) || p.FuzzyEqual(v2.Pos(), eps) {
			continue
		}
		out = append(out, crossingPoint{segIndex: best, param: paramAlong(v1, v2, p), point: p})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].segIndex != out[j].segIndex {
			return out[i].segIndex < out[j].segIndex
		}
		return out[i].param < out[j].param
	})
	return out
}

func paramAlong(v1, v2 Vertex, p Vector2) float64 {
	if v1.BulgeIsZero(PosEqualEps) {
		chord := v2.Pos().Sub(v1.Pos())
		lenSq := chord.Length2()
		if lenSq < PosEqualEps*PosEqualEps {
			return 0
		}
		return p.Sub(v1.Pos()).Dot(chord) / lenSq
	}
	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return 0
	}
	startAngle := math.Atan2(v1.Y-c.Y, v1.X-c.X)
	theta := includedAngle(v1.Bulge)
	pAngle := math.Atan2(p.Y-c.Y, p.X-c.X)
	delta := sweepDelta(startAngle, pAngle, theta >= 0)
	if theta == 0 {
		return 0
	}
	return delta / math.Abs(theta)
}

// sliceAlong walks pl's segments in order, cutting an open slice at each
// crossing point, and returns every resulting open slice as a view.
func sliceAlong(pl PolylineRef, crossings []crossingPoint, isPline1 bool, eps float64) []BooleanPlineSlice {
	n := pl.VertexCount()
	if n == 0 || len(crossings) == 0 {
		first, ok := FromEntirePline(pl)
		if !ok {
			return nil
		}
		return []BooleanPlineSlice{{View: first, SourceIsPline1: isPline1}}
	}

	type cut struct {
		segIndex int
		point    Vector2
	}
	cuts := make([]cut, 0, len(crossings))
	for _, c := range crossings {
		cuts = append(cuts, cut{c.segIndex, c.point})
	}

	var out []BooleanPlineSlice
	startIdx := cuts[0].segIndex
	startPt := cuts[0].point

	for i := 1; i < len(cuts); i++ {
		endSeg := cuts[i].segIndex
		endPt := cuts[i].point

		v, ok := FromSlicePoints(pl, startPt, startIdx, endPt, endSeg, eps)
		if ok {
			out = append(out, BooleanPlineSlice{View: v, SourceIsPline1: isPline1})
		}
		startIdx = endSeg
		startPt = endPt
	}

	// Closing slice back to the first cut, wrapping through the rest of
	// the polyline.
	firstCutIdx := cuts[0].segIndex
	firstCutPt := cuts[0].point
	v, ok := FromSlicePoints(pl, startPt, startIdx, firstCutPt, firstCutIdx, eps)
	if ok {
		out = append(out, BooleanPlineSlice{View: v, SourceIsPline1: isPline1})
	}
	return out
}

// overlapSlicesFor builds the overlapping-flagged slices directly from the
// reported overlap ranges (these are shared between both inputs, so only
// one slice per overlap is emitted, tagged to pline1).
func overlapSlicesFor(pline1, pline2 PolylineRef, overlaps []SegOverlap, eps float64) []BooleanPlineSlice {
	var out []BooleanPlineSlice
	for _, ov := range overlaps {
		startIdx := nearestSegment(pline1, ov.Start)
		endIdx := nearestSegment(pline1, ov.End)
		v, ok := FromSlicePoints(pline1, ov.Start, startIdx, ov.End, endIdx, eps)
		if !ok {
			continue
		}
		codirectional := isOverlapCodirectional(pline1, pline2, ov, eps)
		out = append(out, BooleanPlineSlice{View: v, SourceIsPline1: true, Overlapping: true, Codirectional: codirectional})
	}
	return out
}

func nearestSegment(pl PolylineRef, p Vector2) int {
	segCount := segmentCountOf(pl)
	best, bestDist := 0, math.Inf(1)
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(pl, i)
		d := SegClosestPoint(v1, v2, p).DistanceTo(p)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func isOverlapCodirectional(pline1, pline2 PolylineRef, ov SegOverlap, eps float64) bool {
	i1 := nearestSegment(pline1, ov.Start)
	i2 := nearestSegment(pline2, ov.Start)
	v1a, v1b := segmentAt(pline1, i1)
	v2a, v2b := segmentAt(pline2, i2)
	t1 := SegTangentDirection(v1a, v1b, ov.Start)
	t2 := SegTangentDirection(v2a, v2b, ov.Start)
	return t1.Dot(t2) > 0
}

// classifySlices samples each non-overlapping slice's midpoint and tags
// it against the other polyline's winding number.
func classifySlices(slices []BooleanPlineSlice, pline1, pline2 PolylineRef, eps float64) []classifiedSlice {
	out := make([]classifiedSlice, 0, len(slices))
	for _, s := range slices {
		if s.Overlapping {
			out = append(out, classifiedSlice{slice: s})
			continue
		}
		mid := sampleMidpoint(s.View)
		var other PolylineRef
		if s.SourceIsPline1 {
			other = pline2
		} else {
			other = pline1
		}
		inside := WindingNumber(other, mid) != 0
		out = append(out, classifiedSlice{slice: s, inside: inside})
	}
	return out
}

type classifiedSlice struct {
	slice  BooleanPlineSlice
	inside bool
}

func sampleMidpoint(v *PlineView) Vector2 {
	segCount := v.VertexCount() - 1
	if segCount <= 0 {
		return v.At(0).Pos()
	}
	totalLen := 0.0
	lens := make([]float64, segCount)
	for i := 0; i < segCount; i++ {
		lens[i] = SegLength(v.At(i), v.At(i+1))
		totalLen += lens[i]
	}
	target := totalLen / 2
	accum := 0.0
	for i := 0; i < segCount; i++ {
		if target <= accum+lens[i] {
			return pointAlongSegment(v.At(i), v.At(i+1), target-accum)
		}
		accum += lens[i]
	}
	return v.At(segCount).Pos()
}

// selectSlices applies the keep-table for op, marking slices that should
// be reversed (for the "inverted" selections in Not/Xor).
func selectSlices(slices []classifiedSlice, op BooleanOp) []selectedSlice {
	var out []selectedSlice
	for _, cs := range slices {
		if cs.slice.Overlapping {
			keep := false
			switch op {
			case Or, And:
				keep = cs.slice.Codirectional
			case Not:
				keep = !cs.slice.Codirectional
			case Xor:
				keep = false
			}
			if keep {
				out = append(out, selectedSlice{slice: cs.slice.View, invert: false})
			}
			continue
		}

		isPline1 := cs.slice.SourceIsPline1
		switch op {
		case Or:
			if !cs.inside {
				out = append(out, selectedSlice{slice: cs.slice.View})
			}
		case And:
			if cs.inside {
				out = append(out, selectedSlice{slice: cs.slice.View})
			}
		case Not:
			if isPline1 && !cs.inside {
				out = append(out, selectedSlice{slice: cs.slice.View})
			} else if !isPline1 && cs.inside {
				out = append(out, selectedSlice{slice: cs.slice.View, invert: true})
			}
		case Xor:
			if !cs.inside {
				out = append(out, selectedSlice{slice: cs.slice.View})
			} else {
				out = append(out, selectedSlice{slice: cs.slice.View, invert: true})
			}
		}
	}
	return out
}

type selectedSlice struct {
	slice  *PlineView
	invert bool
}

// stitchBooleanSlices joins the selected slices end-to-end into closed
// output polylines, bounding iterations at slice count to avoid looping
// forever on degenerate topology.
func stitchBooleanSlices(selected []selectedSlice, pline1, pline2 PolylineRef, op BooleanOp, eps float64, logger plinelog.Logger) []BooleanResult {
	if logger == nil {
		logger = plinelog.Noop
	}
	materialized := make([]*Polyline, 0, len(selected))
	for _, s := range selected {
		p := s.slice.ToPolyline(eps)
		if s.invert {
			p.InvertDirection()
		}
		if p.VertexCount() >= 2 {
			materialized = append(materialized, p)
		}
	}

	stitched := stitchSlices(materialized, SliceJoinEps, logger)

	out := make([]BooleanResult, 0, len(stitched))
	for _, p := range stitched {
		if p.VertexCount() < 2 {
			continue
		}
		if !p.IsClosed() {
			logger.Warnf("stitchBooleanSlices: op %v produced an output polyline that could not be closed into a loop", op)
		}
		polarity := Positive
		if Orientation(p) == Clockwise {
			polarity = Negative
		}
		out = append(out, BooleanResult{Pline: p, Polarity: polarity})
	}
	return out
}
