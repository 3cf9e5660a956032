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
	"testing"
)

func TestSegArcRadiusAndCenterSemicircle(t *testing.T) {
	v1 := NewVertex(0, 0, 1)
	v2 := NewVertex(2, 0, 0)

	r, c := SegArcRadiusAndCenter(v1, v2)
	if math.Abs(r-1) > 1e-9 {
		t.Errorf("radius = %v, want 1", r)
	}
	want := Vector2{X: 1, Y: 0}
	if !c.FuzzyEqual(want, 1e-9) {
		t.Errorf("center = %+v, want %+v", c, want)
	}
}

func TestSegLengthLineAndArc(t *testing.T) {
	line1, line2 := NewVertex(0, 0, 0), NewVertex(3, 4, 0)
	if got := SegLength(line1, line2); math.Abs(got-5) > 1e-9 {
		t.Errorf("line SegLength = %v, want 5", got)
	}

	arc1, arc2 := NewVertex(0, 0, 1), NewVertex(2, 0, 0)
	if got, want := SegLength(arc1, arc2), math.Pi; math.Abs(got-want) > 1e-9 {
		t.Errorf("semicircle SegLength = %v, want %v", got, want)
	}
}

func TestSegBoundingBoxSemicircle(t *testing.T) {
	v1, v2 := NewVertex(0, 0, 1), NewVertex(2, 0, 0)
	box := SegBoundingBox(v1, v2)
	want := BoundingBox{MinX: 0, MinY: -1, MaxX: 2, MaxY: 0}
	if math.Abs(box.MinX-want.MinX) > 1e-9 || math.Abs(box.MinY-want.MinY) > 1e-9 ||
		math.Abs(box.MaxX-want.MaxX) > 1e-9 || math.Abs(box.MaxY-want.MaxY) > 1e-9 {
		t.Errorf("SegBoundingBox = %+v, want %+v", box, want)
	}
}

func TestSegFastApproxBoundingBoxEnclosesTight(t *testing.T) {
	v1, v2 := NewVertex(0, 0, 0.6), NewVertex(2, 1, 0)
	tight := SegBoundingBox(v1, v2)
	approx := SegFastApproxBoundingBox(v1, v2)
	if approx.MinX > tight.MinX || approx.MinY > tight.MinY ||
		approx.MaxX < tight.MaxX || approx.MaxY < tight.MaxY {
		t.Errorf("approx box %+v does not enclose tight box %+v", approx, tight)
	}
}

func TestSegClosestPointLine(t *testing.T) {
	v1, v2 := NewVertex(0, 0, 0), NewVertex(10, 0, 0)
	got := SegClosestPoint(v1, v2, Vector2{X: 5, Y: 3})
	want := Vector2{X: 5, Y: 0}
	if !got.FuzzyEqual(want, 1e-9) {
		t.Errorf("SegClosestPoint = %+v, want %+v", got, want)
	}

	// Beyond the endpoint clamps to it.
	got = SegClosestPoint(v1, v2, Vector2{X: 20, Y: 5})
	if !got.FuzzyEqual(v2.Pos(), 1e-9) {
		t.Errorf("SegClosestPoint beyond end = %+v, want %+v", got, v2.Pos())
	}
}

func TestSegClosestPointArc(t *testing.T) {
	v1, v2 := NewVertex(0, 0, 1), NewVertex(2, 0, 0)
	got := SegClosestPoint(v1, v2, Vector2{X: 1, Y: -5})
	want := Vector2{X: 1, Y: -1}
	if !got.FuzzyEqual(want, 1e-6) {
		t.Errorf("SegClosestPoint(arc) = %+v, want %+v", got, want)
	}
}

func TestSegSplitAtPointLine(t *testing.T) {
	v1, v2 := NewVertex(0, 0, 0), NewVertex(10, 0, 0)
	p := Vector2{X: 4, Y: 0}
	updatedStart, split := SegSplitAtPoint(v1, v2, p, PosEqualEps)
	if updatedStart.Bulge != 0 || split.Bulge != 0 {
		t.Errorf("line split bulges = %v, %v, want 0, 0", updatedStart.Bulge, split.Bulge)
	}
	if !split.Pos().FuzzyEqual(p, 1e-9) {
		t.Errorf("split position = %+v, want %+v", split.Pos(), p)
	}
}

func TestSegSplitAtPointArcPreservesLength(t *testing.T) {
	v1, v2 := NewVertex(0, 0, 1), NewVertex(2, 0, 0)
	originalLen := SegLength(v1, v2)

	mid := PointOnCircle(1, Vector2{X: 1, Y: 0}, math.Pi+math.Pi/2)
	updatedStart, split := SegSplitAtPoint(v1, v2, mid, PosEqualEps)

	l1 := SegLength(updatedStart, split)
	l2 := SegLength(split, v2)
	if math.Abs(l1+l2-originalLen) > 1e-6 {
		t.Errorf("split lengths %v + %v = %v, want %v", l1, l2, l1+l2, originalLen)
	}
}

func TestAngleWithinSweep(t *testing.T) {
	if !angleWithinSweep(0, math.Pi, math.Pi/2) {
		t.Errorf("expected pi/2 within [0, pi] sweep")
	}
	if angleWithinSweep(0, math.Pi, math.Pi+0.5) {
		t.Errorf("expected pi+0.5 outside [0, pi] sweep")
	}
}
