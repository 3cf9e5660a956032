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

// Package aabbindex adapts github.com/dhconnelly/rtreego into the static
// 2D AABB index the polyline core treats as an opaque spatial-index
// collaborator: a builder that accepts one box per item, a build step, and
// query-by-box / query-point-with-radius reads. The core never reaches
// into rtreego directly so the adapter is the only place that dependency
// is named.
package aabbindex

import (
	"github.com/dhconnelly/rtreego"
)

const dimensions = 2

// minBoxSide is the smallest box side rtreego accepts; degenerate (zero
// width or height) segment boxes are padded to this before insertion.
const minBoxSide = 1e-10

// Builder accumulates per-item boxes before a single Build call, mirroring
// the "builder(item_count)" construction step of the abstract spatial
// index interface.
type Builder struct {
	items []*entry
}

// NewBuilder returns a Builder with capacity hinted by itemCount.
func NewBuilder(itemCount int) *Builder {
	return &Builder{items: make([]*entry, 0, itemCount)}
}

// Add registers the axis-aligned box [minX,minY]-[maxX,maxY] for the next
// item index (items are numbered in Add call order, starting at 0).
func (b *Builder) Add(minX, minY, maxX, maxY float64) {
	idx := len(b.items)
	b.items = append(b.items, newEntry(idx, minX, minY, maxX, maxY))
}

// Build constructs the immutable index over every box added so far.
func (b *Builder) Build() *Index {
	tree := rtreego.NewTree(dimensions, 25, 50)
	for _, e := range b.items {
		tree.Insert(e)
	}
	return &Index{tree: tree}
}

// Index is an immutable static 2D AABB index. The zero value is not
// usable; construct via Builder.
type Index struct {
	tree *rtreego.Rtree
}

// QueryBox returns the item indexes whose stored box intersects
// [minX,minY]-[maxX,maxY].
func (idx *Index) QueryBox(minX, minY, maxX, maxY float64) []int {
	rect := mustRect(minX, minY, maxX, maxY)
	hits := idx.tree.SearchIntersect(rect)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*entry).index)
	}
	return out
}

// QueryPointRadius returns the item indexes whose stored box intersects
// the square bounding the disk of radius r centered at (x, y); callers
// needing an exact circular test must re-check distance themselves.
func (idx *Index) QueryPointRadius(x, y, r float64) []int {
	return idx.QueryBox(x-r, y-r, x+r, y+r)
}

type entry struct {
	index int
	rect  *rtreego.Rect
}

func newEntry(index int, minX, minY, maxX, maxY float64) *entry {
	return &entry{index: index, rect: mustRect(minX, minY, maxX, maxY)}
}

func (e *entry) Bounds() *rtreego.Rect {
	return e.rect
}

// mustRect builds an rtreego.Rect from corner coordinates, padding any
// degenerate (zero-length) side since rtreego rejects non-positive
// lengths.
func mustRect(minX, minY, maxX, maxY float64) *rtreego.Rect {
	width := maxX - minX
	if width < minBoxSide {
		width = minBoxSide
	}
	height := maxY - minY
	if height < minBoxSide {
		height = minBoxSide
	}
	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{width, height})
	if err != nil {
		// Only reachable if width/height are non-positive, which the
		// padding above already rules out.
		panic(err)
	}
	return rect
}
