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

// BoundingBox is an axis-aligned bounding box in the plane.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// boundingBoxFromPoints returns the tight box enclosing a and b.
func boundingBoxFromPoints(a, b Vector2) BoundingBox {
	return BoundingBox{
		MinX: minF(a.X, b.X),
		MinY: minF(a.Y, b.Y),
		MaxX: maxF(a.X, b.X),
		MaxY: maxF(a.Y, b.Y),
	}
}

// ExpandToInclude returns a box enclosing b and p.
func (b BoundingBox) ExpandToInclude(p Vector2) BoundingBox {
	return BoundingBox{
		MinX: minF(b.MinX, p.X),
		MinY: minF(b.MinY, p.Y),
		MaxX: maxF(b.MaxX, p.X),
		MaxY: maxF(b.MaxY, p.Y),
	}
}

// Union returns the box enclosing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: minF(b.MinX, o.MinX),
		MinY: minF(b.MinY, o.MinY),
		MaxX: maxF(b.MaxX, o.MaxX),
		MaxY: maxF(b.MaxY, o.MaxY),
	}
}

// Intersects reports whether b and o overlap (touching counts as
// intersecting).
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX && b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// ContainsPoint reports whether p lies within b (inclusive).
func (b BoundingBox) ContainsPoint(p Vector2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Expanded returns b padded by margin on every side.
func (b BoundingBox) Expanded(margin float64) BoundingBox {
	return BoundingBox{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}
