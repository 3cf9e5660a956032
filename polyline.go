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

// PolylineRef is the read interface satisfied by anything shaped like a
// polyline: a concrete Polyline, or a PlineView over one. It collapses the
// overlapping owning/borrowing/contiguous-storage/iterable trait variants
// the reference implementation accumulated into a single indexed+iterable
// contract (see DESIGN.md).
type PolylineRef interface {
	// VertexCount returns the number of vertices.
	VertexCount() int
	// IsClosed reports whether the last vertex wraps to the first.
	IsClosed() bool
	// At returns the vertex at index i. It panics if i is out of range;
	// this is a programming error, not a data error.
	At(i int) Vertex
	// Get returns the vertex at index i, and false if i is out of range.
	Get(i int) (Vertex, bool)
}

// PolylineRefMut is the write interface for a mutable vertex buffer.
type PolylineRefMut interface {
	PolylineRef
	AddVertex(v Vertex)
	Insert(i int, v Vertex)
	Remove(i int)
	SetVertex(i int, v Vertex)
	SetIsClosed(closed bool)
	Clear()
	Reserve(n int)
	Extend(vs []Vertex)
}

// Polyline is an ordered sequence of vertices, each starting a segment
// that ends at the next vertex (or wraps to the first if closed). It owns
// its vertex buffer.
type Polyline struct {
	vertices []Vertex
	closed   bool
}

// NewPolyline constructs an empty polyline.
func NewPolyline(closed bool) *Polyline {
	return &Polyline{closed: closed}
}

// NewPolylineFromVertices constructs a polyline owning a copy of vs.
func NewPolylineFromVertices(vs []Vertex, closed bool) *Polyline {
	p := &Polyline{closed: closed}
	p.vertices = append(p.vertices, vs...)
	return p
}

// WithCapacity constructs an empty polyline whose backing slice has
// capacity for n vertices.
func WithCapacity(n int, closed bool) *Polyline {
	return &Polyline{vertices: make([]Vertex, 0, n), closed: closed}
}

// VertexCount returns the number of vertices in the polyline.
func (p *Polyline) VertexCount() int {
	return len(p.vertices)
}

// IsClosed reports whether the polyline is closed.
func (p *Polyline) IsClosed() bool {
	return p.closed
}

// SetIsClosed sets whether the polyline is closed.
func (p *Polyline) SetIsClosed(closed bool) {
	p.closed = closed
}

// SegmentCount returns the number of segments implied by VertexCount and
// IsClosed: 0 if fewer than 2 vertices, n-1 if open, n if closed.
func (p *Polyline) SegmentCount() int {
	return segmentCountFor(len(p.vertices), p.closed)
}

func segmentCountFor(n int, closed bool) int {
	if n < 2 {
		return 0
	}
	if closed {
		return n
	}
	return n - 1
}

// At returns the vertex at index i. It panics if i is out of range.
func (p *Polyline) At(i int) Vertex {
	return p.vertices[i]
}

// Get returns the vertex at index i, and false if i is out of range.
func (p *Polyline) Get(i int) (Vertex, bool) {
	if i < 0 || i >= len(p.vertices) {
		return Vertex{}, false
	}
	return p.vertices[i], true
}

// Last returns the final vertex, and false if the polyline is empty.
func (p *Polyline) Last() (Vertex, bool) {
	if len(p.vertices) == 0 {
		return Vertex{}, false
	}
	return p.vertices[len(p.vertices)-1], true
}

// SetVertex replaces the vertex at index i.
func (p *Polyline) SetVertex(i int, v Vertex) {
	p.vertices[i] = v
}

// AddVertex appends a vertex.
func (p *Polyline) AddVertex(v Vertex) {
	p.vertices = append(p.vertices, v)
}

// AddOrReplaceVertex appends v, unless the last existing vertex is within
// posEqualEps of v's position, in which case only the last vertex's bulge
// is updated to v's bulge.
func (p *Polyline) AddOrReplaceVertex(v Vertex, posEqualEps float64) {
	if n := len(p.vertices); n > 0 && p.vertices[n-1].Pos().FuzzyEqual(v.Pos(), posEqualEps) {
		p.vertices[n-1] = p.vertices[n-1].WithBulge(v.Bulge)
		return
	}
	p.vertices = append(p.vertices, v)
}

// Insert inserts v at index i, shifting subsequent vertices back.
func (p *Polyline) Insert(i int, v Vertex) {
	p.vertices = append(p.vertices, Vertex{})
	copy(p.vertices[i+1:], p.vertices[i:])
	p.vertices[i] = v
}

// Remove removes the vertex at index i.
func (p *Polyline) Remove(i int) {
	p.vertices = append(p.vertices[:i], p.vertices[i+1:]...)
}

// Clear removes all vertices, preserving the closed flag.
func (p *Polyline) Clear() {
	p.vertices = p.vertices[:0]
}

// Reserve ensures the backing slice has capacity for at least n vertices.
func (p *Polyline) Reserve(n int) {
	if cap(p.vertices) >= n {
		return
	}
	grown := make([]Vertex, len(p.vertices), n)
	copy(grown, p.vertices)
	p.vertices = grown
}

// Extend appends vs to the polyline.
func (p *Polyline) Extend(vs []Vertex) {
	p.vertices = append(p.vertices, vs...)
}

// Vertices returns the underlying vertex slice. Callers must not retain a
// reference across a mutation of p.
func (p *Polyline) Vertices() []Vertex {
	return p.vertices
}

// Scale uniformly scales every vertex position (and, for arcs, leaves the
// bulge unaffected since bulge is a ratio invariant under uniform scale)
// about the origin by factor s.
func (p *Polyline) Scale(s float64) {
	for i := range p.vertices {
		p.vertices[i].X *= s
		p.vertices[i].Y *= s
	}
}

// Translate shifts every vertex position by delta.
func (p *Polyline) Translate(delta Vector2) {
	for i := range p.vertices {
		p.vertices[i].X += delta.X
		p.vertices[i].Y += delta.Y
	}
}

// InvertDirection reverses vertex order and negates bulges, shifting
// bulges by one position first so that the arc which previously began at
// vertex i now begins at vertex i-1 (the arc direction is tied to the
// segment it starts, which flips ends when the polyline is reversed).
func (p *Polyline) InvertDirection() {
	n := len(p.vertices)
	if n < 2 {
		for i := range p.vertices {
			p.vertices[i].Bulge = -p.vertices[i].Bulge
		}
		return
	}

	shifted := make([]float64, n)
	for i := 0; i < n; i++ {
		shifted[i] = p.vertices[(i-1+n)%n].Bulge
	}
	for i := 0; i < n; i++ {
		p.vertices[i].Bulge = -shifted[i]
	}

	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
	}
}

// Segment returns the pair of vertices bounding segment index i (0-based,
// in [0, SegmentCount)), using wrapping for the closed-polyline final
// segment.
func (p *Polyline) Segment(i int) (v1, v2 Vertex) {
	n := len(p.vertices)
	return p.vertices[i], p.vertices[nextWrappingIndex(i, n)]
}

// NextWrappingIndex returns the next index after i, wrapping to 0 after
// n-1.
func (p *Polyline) NextWrappingIndex(i int) int {
	return nextWrappingIndex(i, len(p.vertices))
}

// PrevWrappingIndex returns the index before i, wrapping to n-1 before 0.
func (p *Polyline) PrevWrappingIndex(i int) int {
	return prevWrappingIndex(i, len(p.vertices))
}

// FwdWrappingIndex returns the index reached by stepping forward k
// positions from i, wrapping around n.
func (p *Polyline) FwdWrappingIndex(i, k int) int {
	return fwdWrappingIndex(i, k, len(p.vertices))
}

// FwdWrappingDist returns the forward wrapping distance from i to j (the
// number of forward steps to reach j from i, wrapping around n).
func (p *Polyline) FwdWrappingDist(i, j int) int {
	return fwdWrappingDist(i, j, len(p.vertices))
}

func nextWrappingIndex(i, n int) int {
	if i+1 >= n {
		return 0
	}
	return i + 1
}

func prevWrappingIndex(i, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}

func fwdWrappingIndex(i, k, n int) int {
	if n == 0 {
		return 0
	}
	return (i + k) % n
}

func fwdWrappingDist(i, j, n int) int {
	if j >= i {
		return j - i
	}
	return n - i + j
}
