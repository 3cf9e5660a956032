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

// capturingLogger records every Warnf call for assertions.
type capturingLogger struct {
	warnings []string
}

func (c *capturingLogger) Debugf(format string, args ...any) {}
func (c *capturingLogger) Warnf(format string, args ...any) {
	c.warnings = append(c.warnings, format)
}

// A closed polyline built from two bulge-1 semicircular segments between
// (0,0) and (1,0) forms a full circle of radius 0.5 centered at (0.5,0),
// the same construction as unitCircle() at half scale.
func halfCirclePair() *Polyline {
	return NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0, Bulge: 1},
		{X: 1, Y: 0, Bulge: 1},
	}, true)
}

func TestOffsetHalfCirclePairShrinksConcentrically(t *testing.T) {
	p := halfCirclePair()
	if got, want := Area(p), math.Pi*0.25; math.Abs(got-want) > 1e-6 {
		t.Fatalf("sanity check: Area(p) = %v, want ~%v (radius 0.5 circle)", got, want)
	}

	results := Offset(p, 0.2, nil)
	if len(results) != 1 {
		t.Fatalf("expected a single offset polyline, got %d", len(results))
	}

	out := results[0]
	if got := out.VertexCount(); got != 2 {
		t.Fatalf("VertexCount() = %d, want 2", got)
	}

	wantArea := math.Pi * 0.3 * 0.3
	if got := math.Abs(Area(out)); math.Abs(got-wantArea) > 1e-6 {
		t.Errorf("Area(offset) = %v, want ~%v (radius 0.3 circle)", got, wantArea)
	}

	for _, v := range out.Vertices() {
		if math.Abs(math.Abs(v.Bulge)-1) > 1e-6 {
			t.Errorf("offset vertex bulge = %v, want +-1", v.Bulge)
		}
	}
}

// Offset inversion: for a CCW closed polyline, a small inward offset
// reduces area, and the same outward offset increases it.
func TestOffsetInversionAreaMonotonicity(t *testing.T) {
	square := NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}, true)
	if Orientation(square) != CounterClockwise {
		t.Fatalf("sanity check: expected square to be CCW")
	}
	original := Area(square)

	inward := Offset(square, 0.5, nil)
	if len(inward) != 1 {
		t.Fatalf("expected single inward-offset result, got %d", len(inward))
	}
	if got := Area(inward[0]); got >= original {
		t.Errorf("inward offset area = %v, want < original %v", got, original)
	}

	outward := Offset(square, -0.5, nil)
	if len(outward) != 1 {
		t.Fatalf("expected single outward-offset result, got %d", len(outward))
	}
	if got := Area(outward[0]); got <= original {
		t.Errorf("outward offset area = %v, want > original %v", got, original)
	}
}

func TestOffsetTooLargeCollapsesAway(t *testing.T) {
	p := halfCirclePair()
	// Offsetting a radius-0.5 circle inward by more than its radius leaves
	// nothing.
	results := Offset(p, 1.0, nil)
	if len(results) != 0 {
		t.Errorf("expected an over-large inward offset to produce no output, got %d results", len(results))
	}
}

func TestOffsetEmptyAndDegenerate(t *testing.T) {
	if got := Offset(NewPolyline(false), 1, nil); got != nil {
		t.Errorf("expected nil offset result for an empty polyline, got %+v", got)
	}
	single := NewPolylineFromVertices([]Vertex{{X: 0, Y: 0}}, false)
	if got := Offset(single, 1, nil); got != nil {
		t.Errorf("expected nil offset result for a single-vertex polyline, got %+v", got)
	}
}

func TestOffsetLoggerStaysSilentOnCleanStitch(t *testing.T) {
	logger := &capturingLogger{}
	square := NewPolylineFromVertices([]Vertex{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}, true)
	opts := NewOffsetOptions()
	opts.Logger(logger)

	results := Offset(square, 0.5, &opts)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(logger.warnings) != 0 {
		t.Errorf("expected no warnings for a clean offset/stitch, got %v", logger.warnings)
	}
}
