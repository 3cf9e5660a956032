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

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

// Package batch provides SIMD-accelerated bulk reductions over the
// struct-of-arrays coordinate slices, such as the segment bounding boxes
// computed when building a spatial index over many segments at once. Built
// on
// github.com/ajroetker/go-highway.
package batch

import (
	"github.com/ajroetker/go-highway/hwy"
)

// MinMax returns the minimum and maximum of data, processed in SIMD lanes
// with a scalar tail. Used to reduce a segment's x (or y) coordinate
// samples into one axis of its bounding box.
func MinMax[T hwy.Floats](data []T) (minVal, maxVal T) {
	if len(data) == 0 {
		return 0, 0
	}

	initial := data[0]
	vMin := hwy.Set(initial)
	vMax := hwy.Set(initial)

	hwy.ProcessWithTail[T](len(data),
		func(offset int) {
			v := hwy.Load(data[offset:])
			vMin = hwy.Min(vMin, v)
			vMax = hwy.Max(vMax, v)
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			v := hwy.MaskLoad(mask, data[offset:])

			vMinSafe := hwy.IfThenElse(mask, v, vMin)
			vMaxSafe := hwy.IfThenElse(mask, v, vMax)

			vMin = hwy.Min(vMin, vMinSafe)
			vMax = hwy.Max(vMax, vMaxSafe)
		},
	)

	return hwy.ReduceMin(vMin), hwy.ReduceMax(vMax)
}

// DotProducts computes dst[i] = ax[i]*bx[i] + ay[i]*by[i] for a batch of
// 2D vector pairs (struct-of-arrays layout). The polyline core does not
// call it; it is a general-purpose reduction for callers.
func DotProducts[T hwy.Floats](ax, ay, bx, by []T, dst []T) {
	size := min(len(ax), len(ay), len(bx), len(by), len(dst))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vAx := hwy.Load(ax[offset:])
			vAy := hwy.Load(ay[offset:])
			vBx := hwy.Load(bx[offset:])
			vBy := hwy.Load(by[offset:])

			sum := hwy.Mul(vAx, vBx)
			sum = hwy.FMA(vAy, vBy, sum)

			hwy.Store(sum, dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vAx := hwy.MaskLoad(mask, ax[offset:])
			vAy := hwy.MaskLoad(mask, ay[offset:])
			vBx := hwy.MaskLoad(mask, bx[offset:])
			vBy := hwy.MaskLoad(mask, by[offset:])

			sum := hwy.Mul(vAx, vBx)
			sum = hwy.FMA(vAy, vBy, sum)

			hwy.MaskStore(mask, sum, dst[offset:])
		},
	)
}

// CrossProducts computes dst[i] = ax[i]*by[i] - ay[i]*bx[i] for a batch of
// 2D vector pairs, the sign of which is the is-left test. The polyline
// core does not call it; it is a general-purpose reduction for callers.
func CrossProducts[T hwy.Floats](ax, ay, bx, by []T, dst []T) {
	size := min(len(ax), len(ay), len(bx), len(by), len(dst))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vAx := hwy.Load(ax[offset:])
			vAy := hwy.Load(ay[offset:])
			vBx := hwy.Load(bx[offset:])
			vBy := hwy.Load(by[offset:])

			diff := hwy.Sub(hwy.Mul(vAx, vBy), hwy.Mul(vAy, vBx))

			hwy.Store(diff, dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vAx := hwy.MaskLoad(mask, ax[offset:])
			vAy := hwy.MaskLoad(mask, ay[offset:])
			vBx := hwy.MaskLoad(mask, bx[offset:])
			vBy := hwy.MaskLoad(mask, by[offset:])

			diff := hwy.Sub(hwy.Mul(vAx, vBy), hwy.Mul(vAy, vBx))

			hwy.MaskStore(mask, diff, dst[offset:])
		},
	)
}

// BoundingBoxes reduces parallel x/y coordinate slices (one entry per
// segment endpoint pair, already flattened so each segment contributes its
// two endpoint x's and two endpoint y's) into per-axis min/max in one
// pass, for bulk AABB-index construction over many segments at once.
func BoundingBoxes[T hwy.Floats](xs, ys []T) (minX, minY, maxX, maxY T) {
	minX, maxX = MinMax(xs)
	minY, maxY = MinMax(ys)
	return
}

// SegmentBoxes computes, for each segment i, the axis-aligned box spanned
// by its two endpoints (x1s[i], y1s[i]) and (x2s[i], y2s[i]), in one SIMD
// pass over all segments at once. Used to bulk-build the line-only portion
// of an AABB index's per-segment boxes before the caller applies the
// (much rarer) per-arc expansion on top.
func SegmentBoxes[T hwy.Floats](x1s, y1s, x2s, y2s []T, minXs, minYs, maxXs, maxYs []T) {
	size := min(len(x1s), len(y1s), len(x2s), len(y2s), len(minXs), len(minYs), len(maxXs), len(maxYs))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vX1 := hwy.Load(x1s[offset:])
			vX2 := hwy.Load(x2s[offset:])
			vY1 := hwy.Load(y1s[offset:])
			vY2 := hwy.Load(y2s[offset:])

			hwy.Store(hwy.Min(vX1, vX2), minXs[offset:])
			hwy.Store(hwy.Max(vX1, vX2), maxXs[offset:])
			hwy.Store(hwy.Min(vY1, vY2), minYs[offset:])
			hwy.Store(hwy.Max(vY1, vY2), maxYs[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vX1 := hwy.MaskLoad(mask, x1s[offset:])
			vX2 := hwy.MaskLoad(mask, x2s[offset:])
			vY1 := hwy.MaskLoad(mask, y1s[offset:])
			vY2 := hwy.MaskLoad(mask, y2s[offset:])

			hwy.MaskStore(mask, hwy.Min(vX1, vX2), minXs[offset:])
			hwy.MaskStore(mask, hwy.Max(vX1, vX2), maxXs[offset:])
			hwy.MaskStore(mask, hwy.Min(vY1, vY2), minYs[offset:])
			hwy.MaskStore(mask, hwy.Max(vY1, vY2), maxYs[offset:])
		},
	)
}
