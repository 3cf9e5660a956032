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

// Package plineerr defines the sentinel errors and debug-assertion
// validation kinds of the polyline core. The core never panics on bad
// geometry; its operations report an absent result through a false ok
// value, and none of them returns these sentinels.
package plineerr

import "errors"

var (
	// ErrEmptyPolyline names the case of an operation that needs at least
	// one vertex (e.g. closest-point, extents) given an empty polyline.
	ErrEmptyPolyline = errors.New("pline: empty polyline")

	// ErrDegenerateSlice names the case of a view/slice whose requested
	// start and end positions collapse to the same point.
	ErrDegenerateSlice = errors.New("pline: degenerate slice")

	// ErrZeroRadiusArc names the case of arc reconstruction on a segment
	// whose endpoints coincide, making radius and center undefined.
	ErrZeroRadiusArc = errors.New("pline: zero radius arc")
)

// ValidationKind enumerates the ways a constructed PlineView can fail
// debug validation. These are not surfaced to ordinary callers; they exist
// for assertions guarding view construction during development.
type ValidationKind int

const (
	// IsValid indicates the view passed every check.
	IsValid ValidationKind = iota
	// OffsetOutOfRange indicates end_index_offset exceeds the source's
	// vertex count.
	OffsetOutOfRange
	// UpdatedStartNotOnSegment indicates updated_start does not lie on the
	// source segment at start_index within the looser slice tolerance.
	UpdatedStartNotOnSegment
	// EndPointNotOnSegment indicates end_point does not lie on the source
	// segment at the view's final traversed index.
	EndPointNotOnSegment
	// EndPointOnFinalOffsetVertex indicates end_point coincides with the
	// start vertex of the final traversed segment, making the slice
	// degenerate.
	EndPointOnFinalOffsetVertex
	// UpdatedBulgeDoesNotMatch indicates a single-segment view's
	// updated_end_bulge disagrees with updated_start's bulge.
	UpdatedBulgeDoesNotMatch
)

// String returns a short human-readable name, useful in assertion
// messages.
func (k ValidationKind) String() string {
	switch k {
	case IsValid:
		return "IsValid"
	case OffsetOutOfRange:
		return "OffsetOutOfRange"
	case UpdatedStartNotOnSegment:
		return "UpdatedStartNotOnSegment"
	case EndPointNotOnSegment:
		return "EndPointNotOnSegment"
	case EndPointOnFinalOffsetVertex:
		return "EndPointOnFinalOffsetVertex"
	case UpdatedBulgeDoesNotMatch:
		return "UpdatedBulgeDoesNotMatch"
	default:
		return "ValidationKind(unknown)"
	}
}
