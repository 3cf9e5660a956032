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

	"github.com/cavaliercore/pline/plinelog"
)

// OffsetOptions configures Offset.
type OffsetOptions struct {
	posEqualEps          float64
	offsetDistEps        float64
	sliceJoinEps         float64
	handleSelfIntersects bool
	logger               plinelog.Logger
}

// NewOffsetOptions returns the default options.
func NewOffsetOptions() OffsetOptions {
	return OffsetOptions{
		posEqualEps:   PosEqualEps,
		offsetDistEps: OffsetDistEps,
		sliceJoinEps:  SliceJoinEps,
		logger:        plinelog.Noop,
	}
}

func (o *OffsetOptions) PosEqualEps(eps float64) *OffsetOptions {
	o.posEqualEps = eps
	return o
}

func (o *OffsetOptions) OffsetDistEps(eps float64) *OffsetOptions {
	o.offsetDistEps = eps
	return o
}

func (o *OffsetOptions) SliceJoinEps(eps float64) *OffsetOptions {
	o.sliceJoinEps = eps
	return o
}

func (o *OffsetOptions) HandleSelfIntersects(v bool) *OffsetOptions {
	o.handleSelfIntersects = v
	return o
}

// Logger sets where best-effort degradations (offset slices that fail to
// stitch within their join tolerance) are reported. The default is
// plinelog.Noop.
func (o *OffsetOptions) Logger(l plinelog.Logger) *OffsetOptions {
	o.logger = l
	return o
}

// Offset computes the parallel offset of pline by signed distance delta:
// positive offsets to the left of each segment's tangent direction.
func Offset(pline PolylineRef, delta float64, opts *OffsetOptions) []*Polyline {
	if opts == nil {
		def := NewOffsetOptions()
		opts = &def
	}

	n := pline.VertexCount()
	if n < 2 {
		return nil
	}

	raw := buildRawOffsetPolyline(pline, delta, opts)
	if raw == nil || raw.VertexCount() < 2 {
		return nil
	}

	needsSlicing := opts.handleSelfIntersects || pline.IsClosed()
	var slices []*Polyline
	if needsSlicing {
		slices = sliceAtSelfIntersections(raw, opts.posEqualEps)
	} else {
		slices = []*Polyline{raw}
	}

	index := BuildSegmentIndex(pline)
	kept := make([]*Polyline, 0, len(slices))
	for _, s := range slices {
		if sliceFarEnoughFromOriginal(s, pline, index, math.Abs(delta), opts.offsetDistEps) {
			kept = append(kept, s)
		}
	}

	return stitchSlices(kept, opts.sliceJoinEps, opts.logger)
}

// buildRawOffsetPolyline offsets every segment independently, then joins
// consecutive raw offset segments into a single (possibly self-
// intersecting) polyline.
func buildRawOffsetPolyline(pline PolylineRef, delta float64, opts *OffsetOptions) *Polyline {
	segCount := segmentCountOf(pline)
	if segCount == 0 {
		return nil
	}

	type rawSeg struct {
		v1, v2 Vertex
	}
	raw := make([]rawSeg, 0, segCount)
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(pline, i)
		r1, r2, ok := offsetSegment(v1, v2, delta)
		if !ok {
			continue
		}
		raw = append(raw, rawSeg{r1, r2})
	}
	if len(raw) == 0 {
		return nil
	}

	out := NewPolyline(pline.IsClosed())
	out.AddVertex(raw[0].v1)

	limit := len(raw) - 1
	if pline.IsClosed() {
		limit = len(raw)
	}
	for i := 0; i < limit; i++ {
		j := (i + 1) % len(raw)
		joined := joinRawSegments(raw[i].v1, raw[i].v2, raw[j].v1, raw[j].v2, delta, opts.posEqualEps)
		last, _ := out.Last()
		out.SetVertex(out.VertexCount()-1, last.WithBulge(joined.outgoingBulge))
		out.AddOrReplaceVertex(joined.midpoint.WithBulge(raw[j].v1.Bulge), opts.posEqualEps)
	}

	if !pline.IsClosed() {
		last := raw[len(raw)-1]
		out.SetVertex(out.VertexCount()-1, out.At(out.VertexCount()-1).WithBulge(last.v1.Bulge))
		out.AddVertex(last.v2.WithBulge(0))
	} else {
		// The final join above closes the loop: its midpoint is where the
		// last raw segment meets the first, which AddOrReplaceVertex above
		// cannot merge into vertex 0 since it only compares against the
		// trailing vertex. If that point is vertex 0's position, the
		// trailing duplicate is simply dropped. Otherwise the join trimmed
		// the first raw segment, so vertex 0 is moved onto the join point by
		// splitting its outgoing segment there, and the trailing vertex is
		// dropped.
		first, _ := out.Get(0)
		trailing, _ := out.Last()
		switch {
		case out.VertexCount() > 1 && trailing.Pos().FuzzyEqual(first.Pos(), opts.posEqualEps):
			out.Remove(out.VertexCount() - 1)
		case out.VertexCount() > 2:
			_, start := SegSplitAtPoint(first, out.At(1), trailing.Pos(), opts.posEqualEps)
			out.SetVertex(0, start)
			out.Remove(out.VertexCount() - 1)
		}
	}

	return out
}

// offsetSegment returns the raw offset of segment (v1, v2) by delta. For
// an arc, if the new radius collapses to non-positive, ok is false and the
// segment is dropped (its neighbors join directly).
func offsetSegment(v1, v2 Vertex, delta float64) (Vertex, Vertex, bool) {
	if v1.BulgeIsZero(PosEqualEps) {
		tangent := v2.Pos().Sub(v1.Pos()).Normalized()
		normal := tangent.Perpendicular()
		offs := normal.Scale(delta)
		return v1.WithPos(v1.Pos().Add(offs)), v2.WithPos(v2.Pos().Add(offs)), true
	}

	r, c := SegArcRadiusAndCenter(v1, v2)
	if r < PosEqualEps {
		return v1, v2, false
	}
	bulgeSign := sign(v1.Bulge)
	newR := r - delta*bulgeSign
	if newR <= PosEqualEps {
		return v1, v2, false
	}

	scale := newR / r
	p1 := c.Add(v1.Pos().Sub(c).Scale(scale))
	p2 := c.Add(v2.Pos().Sub(c).Scale(scale))
	return v1.WithPos(p1), v2.WithPos(p2), true
}

type rawJoin struct {
	midpoint      Vertex
	outgoingBulge float64
}

// joinRawSegments joins the trailing endpoint of raw segment (a1,a2) with
// the leading endpoint of raw segment (b1,b2): near-coincident endpoints
// connect directly; a convex (outward) original vertex gets an arc fillet
// of radius |delta|; a concave vertex intersects (and trims) the two raw
// segments instead.
func joinRawSegments(a1, a2, b1, b2 Vertex, delta, eps float64) rawJoin {
	if a2.Pos().FuzzyEqual(b1.Pos(), eps) {
		return rawJoin{midpoint: b1, outgoingBulge: a1.Bulge}
	}

	res := IntersectSegs(a1, a2, b1, b2, eps)
	if len(res.Basic) > 0 {
		// Concave join: trim both raw segments to their intersection,
		// choosing the candidate closest to the shared raw endpoint.
		best := res.Basic[0].Point
		bestDist := math.Inf(1)
		for _, cand := range res.Basic {
			d := cand.Point.DistanceTo(a2.Pos()) + cand.Point.DistanceTo(b1.Pos())
			if d < bestDist {
				bestDist = d
				best = cand.Point
			}
		}
		updatedA, _ := SegSplitAtPoint(a1, a2, best, eps)
		return rawJoin{midpoint: Vertex{X: best.X, Y: best.Y}, outgoingBulge: updatedA.Bulge}
	}

	// Convex join: fillet of radius |delta| centered at the original
	// vertex (the raw endpoints already lie at that radius from it).
	fillet := filletBulge(a2.Pos(), b1.Pos(), delta)
	return rawJoin{midpoint: b1, outgoingBulge: fillet}
}

// filletBulge returns the bulge of the minor arc of radius |delta| joining
// p1 to p2 (both presumed equidistant from the original vertex by |delta|)
// in the direction consistent with a left offset.
func filletBulge(p1, p2 Vector2, delta float64) float64 {
	chord := p1.DistanceTo(p2)
	r := math.Abs(delta)
	if r < PosEqualEps || chord/2 > r {
		return 0
	}
	halfTheta := math.Asin(clamp(chord/(2*r), -1, 1))
	theta := 2 * halfTheta
	if delta > 0 {
		theta = -theta
	}
	return bulgeFromAngle(theta)
}

// sliceAtSelfIntersections splits raw at every self-intersection point
// into open slices.
func sliceAtSelfIntersections(raw *Polyline, eps float64) []*Polyline {
	selfInts := FindSelfIntersects(raw, All, eps)
	if len(selfInts.Basic) == 0 {
		view, ok := FromEntirePline(raw)
		if !ok {
			return nil
		}
		return []*Polyline{view.ToPolyline(eps)}
	}

	points := make([]Vector2, 0, len(selfInts.Basic))
	for _, b := range selfInts.Basic {
		points = append(points, b.Point)
	}

	segCount := segmentCountOf(raw)
	// Group split points by the segment they fall on.
	bySeg := make(map[int][]Vector2)
	for _, p := range points {
		best, bestDist := -1, math.Inf(1)
		for i := 0; i < segCount; i++ {
			v1, v2 := segmentAt(raw, i)
			cp := SegClosestPoint(v1, v2, p)
			d := cp.DistanceTo(p)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 {
			bySeg[best] = append(bySeg[best], p)
		}
	}

	var out []*Polyline
	cur := WithCapacity(segCount+len(points), false)
	v1 := raw.At(0)
	cur.AddVertex(v1)
	for i := 0; i < segCount; i++ {
		segV1, segV2 := segmentAt(raw, i)
		segV1 = cur.At(cur.VertexCount() - 1).WithBulge(segV1.Bulge)
		for _, p := range bySeg[i] {
			updatedStart, split := SegSplitAtPoint(segV1, segV2, p, eps)
			cur.SetVertex(cur.VertexCount()-1, updatedStart)
			cur.AddVertex(split)
			out = append(out, cur)
			cur = WithCapacity(segCount, false)
			cur.AddVertex(split.WithBulge(0))
			segV1 = split
		}
		cur.SetVertex(cur.VertexCount()-1, segV1)
		if i == segCount-1 {
			cur.AddVertex(segV2.WithBulge(0))
		} else {
			cur.AddVertex(segV2)
		}
	}
	out = append(out, cur)
	return out
}

// sliceFarEnoughFromOriginal reports whether every sampled midpoint of
// slice lies at least (offsetDist - eps) from the original polyline,
// using original's AABB index to find candidate segments near the sample.
func sliceFarEnoughFromOriginal(slice *Polyline, original PolylineRef, index interface {
	QueryPointRadius(x, y, r float64) []int
}, offsetDist, eps float64) bool {
	segCount := segmentCountOf(slice)
	threshold := offsetDist - eps
	for i := 0; i < segCount; i++ {
		v1, v2 := segmentAt(slice, i)
		mid := pointAlongSegment(v1, v2, SegLength(v1, v2)/2)

		best := math.Inf(1)
		for _, k := range index.QueryPointRadius(mid.X, mid.Y, offsetDist+eps) {
			w1, w2 := segmentAt(original, k)
			d := mid.DistanceTo(SegClosestPoint(w1, w2, mid))
			if d < best {
				best = d
			}
		}
		if best < threshold {
			return false
		}
	}
	return true
}

// stitchSlices joins slices end-to-end within joinEps, closing any loop
// whose final endpoint meets its own starting endpoint. logger receives a
// Warnf if the join gives up with slices left unstitched; pass
// plinelog.Noop to discard.
func stitchSlices(slices []*Polyline, joinEps float64, logger plinelog.Logger) []*Polyline {
	if logger == nil {
		logger = plinelog.Noop
	}
	remaining := make([]*Polyline, len(slices))
	copy(remaining, slices)

	var out []*Polyline
	iterations := 0
	maxIterations := len(slices) + 1
	for len(remaining) > 0 && iterations <= maxIterations {
		iterations++
		chain := remaining[0]
		remaining = remaining[1:]

		for progress := true; progress; {
			progress = false
			for idx, cand := range remaining {
				last, _ := chain.Last()
				candFirst, _ := cand.Get(0)
				if last.Pos().FuzzyEqual(candFirst.Pos(), joinEps) {
					appendSlice(chain, cand, joinEps)
					remaining = append(remaining[:idx], remaining[idx+1:]...)
					progress = true
					break
				}
				candLast, _ := cand.Last()
				if last.Pos().FuzzyEqual(candLast.Pos(), joinEps) {
					cand.InvertDirection()
					appendSlice(chain, cand, joinEps)
					remaining = append(remaining[:idx], remaining[idx+1:]...)
					progress = true
					break
				}
			}
		}

		first, _ := chain.Get(0)
		last, _ := chain.Last()
		if chain.VertexCount() > 1 && first.Pos().FuzzyEqual(last.Pos(), joinEps) {
			chain.Remove(chain.VertexCount() - 1)
			chain.SetIsClosed(true)
		}
		out = append(out, chain)
	}

	if len(remaining) > 0 {
		logger.Warnf("stitchSlices: gave up after %d iterations with %d of %d slices left unstitched", iterations, len(remaining), len(slices))
	}

	return out
}

func appendSlice(chain, next *Polyline, eps float64) {
	last, _ := chain.Last()
	nextFirst, _ := next.Get(0)
	chain.SetVertex(chain.VertexCount()-1, last.WithBulge(nextFirst.Bulge))
	for i := 1; i < next.VertexCount(); i++ {
		chain.AddOrReplaceVertex(next.At(i), eps)
	}
}
