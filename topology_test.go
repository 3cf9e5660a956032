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

func unitCircle() *Polyline {
	return NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0, Bulge: 1},
		{X: 2, Y: 0, Bulge: 1},
	}, true)
}

func TestCircleArea(t *testing.T) {
	c := unitCircle()
	if got, want := Area(c), math.Pi; math.Abs(got-want) > 1e-6 {
		t.Errorf("Area() = %v, want ~%v", got, want)
	}
	if got, want := PathLength(c), 2*math.Pi; math.Abs(got-want) > 1e-6 {
		t.Errorf("PathLength() = %v, want ~%v", got, want)
	}
}

func TestCircleWindingNumber(t *testing.T) {
	c := unitCircle()
	if got := WindingNumber(c, Vector2{X: 1, Y: 0}); got != 1 {
		t.Errorf("WindingNumber(center) = %d, want 1", got)
	}
	if got := WindingNumber(c, Vector2{X: 3, Y: 0}); got != 0 {
		t.Errorf("WindingNumber(outside) = %d, want 0", got)
	}
}

func TestCircleOrientation(t *testing.T) {
	c := unitCircle()
	if got := Orientation(c); got != CounterClockwise {
		t.Errorf("Orientation() = %v, want CounterClockwise", got)
	}
}

func TestDoubleLoopWindingNumber(t *testing.T) {
	p := NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0, Bulge: 1},
		{X: 2, Y: 0, Bulge: 1},
		{X: 0, Y: 0, Bulge: 1},
		{X: 4, Y: 0, Bulge: 1},
	}, true)

	if got := WindingNumber(p, Vector2{X: 1, Y: 0}); got != 2 {
		t.Errorf("WindingNumber(double loop) = %d, want 2", got)
	}

	p.InvertDirection()
	if got := WindingNumber(p, Vector2{X: 1, Y: 0}); got != -2 {
		t.Errorf("WindingNumber(inverted double loop) = %d, want -2", got)
	}
}

func TestInvertDirectionRoundTrip(t *testing.T) {
	p := NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0, Bulge: 0.3},
		{X: 1, Y: 0, Bulge: -0.2},
		{X: 1, Y: 1, Bulge: 0.5},
		{X: 0, Y: 1, Bulge: 0},
	}, true)
	original := append([]Vertex(nil), p.Vertices()...)

	p.InvertDirection()
	p.InvertDirection()

	for i, v := range p.Vertices() {
		if !v.FuzzyEqual(original[i], PosEqualEps) {
			t.Errorf("vertex %d = %+v, want %+v", i, v, original[i])
		}
	}
}

func TestAreaSignMatchesOrientation(t *testing.T) {
	square := NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}, true)
	if Area(square) <= 0 {
		t.Fatalf("expected CCW square to have positive area, got %v", Area(square))
	}
	if Orientation(square) != CounterClockwise {
		t.Errorf("Orientation() = %v, want CounterClockwise", Orientation(square))
	}

	square.InvertDirection()
	if Area(square) >= 0 {
		t.Errorf("expected reversed square to have negative area, got %v", Area(square))
	}
	if Orientation(square) != Clockwise {
		t.Errorf("Orientation() = %v, want Clockwise", Orientation(square))
	}
}

func TestClosestPointOnSquare(t *testing.T) {
	square := NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
	}, true)

	res, ok := ClosestPoint(square, Vector2{X: 1, Y: -5})
	if !ok {
		t.Fatalf("ClosestPoint returned not-ok for non-empty polyline")
	}
	want := Vector2{X: 1, Y: 0}
	if !res.SegPoint.FuzzyEqual(want, PosEqualEps) {
		t.Errorf("SegPoint = %+v, want %+v", res.SegPoint, want)
	}
	if math.Abs(res.Distance-5) > PosEqualEps {
		t.Errorf("Distance = %v, want 5", res.Distance)
	}
}

func TestExtentsEmptyPolyline(t *testing.T) {
	p := NewPolyline(false)
	if _, ok := Extents(p); ok {
		t.Errorf("Extents() of empty polyline should report not-ok")
	}
}
