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
	"testing"

	"github.com/cavaliercore/pline/plineerr"
)

func square() *Polyline {
	return NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}, true)
}

func TestFromEntirePlineClosed(t *testing.T) {
	s := square()
	v, ok := FromEntirePline(s)
	if !ok {
		t.Fatalf("FromEntirePline returned not-ok for non-empty closed polyline")
	}
	// A closed n-vertex source traverses all n segments back to the start,
	// so the raw view carries n+2 logical vertices: the n source vertices,
	// vertex 0 again (carrying the final segment's bulge), and a trailing
	// EndPoint marker at the start position that ToPolyline's dedup merges
	// into that repeat of vertex 0, leaving n+1 (see
	// TestPlineViewToPolylinePreservesPathLength).
	if got, want := v.VertexCount(), s.VertexCount()+2; got != want {
		t.Errorf("VertexCount() = %d, want %d", got, want)
	}
	first, last := v.At(0), v.At(v.VertexCount()-1)
	if !first.Pos().FuzzyEqual(last.Pos(), PosEqualEps) {
		t.Errorf("expected closed-source view to start and end at the same point, got %+v and %+v", first, last)
	}
}

func TestFromEntirePlineEmpty(t *testing.T) {
	if _, ok := FromEntirePline(NewPolyline(false)); ok {
		t.Errorf("FromEntirePline should report not-ok for an empty source")
	}
}

// Rotate start: the closed square (0,0)(1,0)(1,1)(0,1) rotated to begin at
// (0.5,0) should yield five vertices beginning at (0.5,0) and ending back
// at (0,0).
func TestFromSlicePointsRotateStart(t *testing.T) {
	s := square()
	pStart := Vector2{X: 0.5, Y: 0}
	pEnd := Vector2{X: 0, Y: 0}

	v, ok := FromSlicePoints(s, pStart, 0, pEnd, 3, PosEqualEps)
	if !ok {
		t.Fatalf("FromSlicePoints returned not-ok")
	}

	if got, want := v.VertexCount(), 5; got != want {
		t.Fatalf("VertexCount() = %d, want %d", got, want)
	}
	if got := v.At(0).Pos(); !got.FuzzyEqual(pStart, PosEqualEps) {
		t.Errorf("first vertex = %+v, want %+v", got, pStart)
	}
	if got := v.At(v.VertexCount() - 1).Pos(); !got.FuzzyEqual(pEnd, PosEqualEps) {
		t.Errorf("last vertex = %+v, want %+v", got, pEnd)
	}
}

func TestCreateOnSingleSegmentDegenerate(t *testing.T) {
	s := square()
	start := NewVertex(0.3, 0, 0)
	if _, ok := CreateOnSingleSegment(s, 0, start, start.Pos(), PosEqualEps); ok {
		t.Errorf("expected degenerate (coincident start/end) slice to be rejected")
	}
}

func TestPlineViewToPolylinePreservesPathLength(t *testing.T) {
	s := square()
	v, ok := FromEntirePline(s)
	if !ok {
		t.Fatalf("FromEntirePline failed")
	}
	out := v.ToPolyline(PosEqualEps)
	if got, want := out.VertexCount(), 5; got != want {
		t.Errorf("materialized VertexCount() = %d, want %d", got, want)
	}
	if got, want := v.PathLength(), PathLength(s); got < want-PosEqualEps {
		t.Errorf("view PathLength() = %v, want >= %v", got, want)
	}
}

func TestPlineViewFindPointAtPathLength(t *testing.T) {
	s := square()
	v, ok := FromEntirePline(s)
	if !ok {
		t.Fatalf("FromEntirePline failed")
	}

	_, point, _, ok := v.FindPointAtPathLength(0.5)
	if !ok {
		t.Fatalf("FindPointAtPathLength(0.5) reported not-ok")
	}
	want := Vector2{X: 0.5, Y: 0}
	if !point.FuzzyEqual(want, PosEqualEps) {
		t.Errorf("point = %+v, want %+v", point, want)
	}

	total := v.PathLength()
	if _, _, gotTotal, ok := v.FindPointAtPathLength(total + 10); ok {
		t.Errorf("expected FindPointAtPathLength beyond total length to report not-ok")
	} else if gotTotal < total-PosEqualEps {
		t.Errorf("reported total = %v, want >= %v", gotTotal, total)
	}
}

func TestValidateSliceRejectsOutOfRangeOffset(t *testing.T) {
	s := square()
	d := PlineViewData{
		StartIndex:     0,
		EndIndexOffset: 100,
		UpdatedStart:   s.At(0),
	}
	if got := ValidateSlice(s, d); got != plineerr.OffsetOutOfRange {
		t.Errorf("ValidateSlice() = %v, want OffsetOutOfRange", got)
	}
}

func TestValidateSliceAcceptsPartialSlice(t *testing.T) {
	s := square()
	v, ok := FromSlicePoints(s, Vector2{X: 0.5, Y: 0}, 0, Vector2{X: 0, Y: 0}, 3, PosEqualEps)
	if !ok {
		t.Fatalf("FromSlicePoints failed")
	}
	if got := ValidateSlice(s, v.Data()); got != plineerr.IsValid {
		t.Errorf("ValidateSlice() = %v, want IsValid", got)
	}
}
