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

	"github.com/google/go-cmp/cmp"
)

func TestSegmentCountOpenAndClosed(t *testing.T) {
	open := NewPolylineFromVertices([]Vertex{{X: 0}, {X: 1}, {X: 2}}, false)
	if got := open.SegmentCount(); got != 2 {
		t.Errorf("open.SegmentCount() = %d, want 2", got)
	}

	closed := NewPolylineFromVertices([]Vertex{{X: 0}, {X: 1}, {X: 2}}, true)
	if got := closed.SegmentCount(); got != 3 {
		t.Errorf("closed.SegmentCount() = %d, want 3", got)
	}

	empty := NewPolyline(false)
	if got := empty.SegmentCount(); got != 0 {
		t.Errorf("empty.SegmentCount() = %d, want 0", got)
	}
}

// Every segment returned by iterating SegmentCount must begin at a real
// vertex and end at a real vertex (wrapping for the closing segment).
func TestSegmentIterationInvariant(t *testing.T) {
	p := NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}, true)

	n := p.SegmentCount()
	if n != p.VertexCount() {
		t.Fatalf("closed SegmentCount() = %d, want VertexCount() = %d", n, p.VertexCount())
	}
	for i := 0; i < n; i++ {
		v1, v2 := p.Segment(i)
		wantV1 := p.At(i)
		wantV2 := p.At(p.NextWrappingIndex(i))
		if v1 != wantV1 || v2 != wantV2 {
			t.Errorf("Segment(%d) = (%+v, %+v), want (%+v, %+v)", i, v1, v2, wantV1, wantV2)
		}
	}
}

func TestWrappingIndexHelpers(t *testing.T) {
	n := 4
	if got := nextWrappingIndex(3, n); got != 0 {
		t.Errorf("nextWrappingIndex(3, 4) = %d, want 0", got)
	}
	if got := prevWrappingIndex(0, n); got != 3 {
		t.Errorf("prevWrappingIndex(0, 4) = %d, want 3", got)
	}
	if got := fwdWrappingIndex(2, 3, n); got != 1 {
		t.Errorf("fwdWrappingIndex(2, 3, 4) = %d, want 1", got)
	}
	if got := fwdWrappingDist(3, 1, n); got != 2 {
		t.Errorf("fwdWrappingDist(3, 1, 4) = %d, want 2", got)
	}
	if got := fwdWrappingDist(1, 3, n); got != 2 {
		t.Errorf("fwdWrappingDist(1, 3, 4) = %d, want 2", got)
	}
}

func TestAddOrReplaceVertexMergesCoincident(t *testing.T) {
	p := NewPolyline(false)
	p.AddVertex(NewVertex(0, 0, 0))
	p.AddOrReplaceVertex(NewVertex(0, 0, 0.5), PosEqualEps)

	if got := p.VertexCount(); got != 1 {
		t.Fatalf("VertexCount() = %d, want 1 after coincident merge", got)
	}
	if got := p.At(0).Bulge; got != 0.5 {
		t.Errorf("merged vertex bulge = %v, want 0.5", got)
	}

	p.AddOrReplaceVertex(NewVertex(5, 5, 0), PosEqualEps)
	if got := p.VertexCount(); got != 2 {
		t.Errorf("VertexCount() = %d, want 2 after distinct append", got)
	}
}

func TestInsertAndRemove(t *testing.T) {
	p := NewPolylineFromVertices([]Vertex{{X: 0}, {X: 2}}, false)
	p.Insert(1, NewVertex(1, 0, 0))
	if got := p.VertexCount(); got != 3 {
		t.Fatalf("VertexCount() = %d, want 3", got)
	}
	if got := p.At(1).X; got != 1 {
		t.Errorf("At(1).X = %v, want 1", got)
	}

	p.Remove(1)
	if got := p.VertexCount(); got != 2 {
		t.Fatalf("VertexCount() = %d, want 2", got)
	}
	if got := p.At(1).X; got != 2 {
		t.Errorf("At(1).X = %v, want 2", got)
	}
}

func TestScaleAndTranslate(t *testing.T) {
	p := NewPolylineFromVertices([]Vertex{{X: 1, Y: 2, Bulge: 0.5}}, false)
	p.Scale(2)
	want := Vertex{X: 2, Y: 4, Bulge: 0.5}
	if got := p.At(0); cmp.Diff(want, got) != "" {
		t.Errorf("after Scale(2): diff (-want +got):\n%s", cmp.Diff(want, got))
	}

	p.Translate(Vector2{X: 1, Y: -1})
	want = Vertex{X: 3, Y: 3, Bulge: 0.5}
	if got := p.At(0); cmp.Diff(want, got) != "" {
		t.Errorf("after Translate: diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}
