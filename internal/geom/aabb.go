package geom

// AABB is an axis-aligned bounding box described by its min and max corners.
type AABB struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// AABBFromCenter builds a square box of the given half extent around c.
func AABBFromCenter(c Vec2, half float64) AABB {
	return AABB{
		Min: Vec2{X: c.X - half, Y: c.Y - half},
		Max: Vec2{X: c.X + half, Y: c.Y + half},
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// ContainsStrict reports whether p lies strictly inside the box.
// Points exactly on a face are outside.
func (b AABB) ContainsStrict(p Vec2) bool {
	return p.X > b.Min.X && p.X < b.Max.X && p.Y > b.Min.Y && p.Y < b.Max.Y
}

// PushOut moves a point strictly inside the box out through its nearest
// face, leaving it margin beyond that face. Points already outside are
// returned unchanged.
func (b AABB) PushOut(p Vec2, margin float64) Vec2 {
	if !b.ContainsStrict(p) {
		return p
	}

	// Penetration depth through each of the four faces.
	left := p.X - b.Min.X
	right := b.Max.X - p.X
	top := p.Y - b.Min.Y
	bottom := b.Max.Y - p.Y

	min := left
	out := Vec2{X: b.Min.X - margin, Y: p.Y}
	if right < min {
		min = right
		out = Vec2{X: b.Max.X + margin, Y: p.Y}
	}
	if top < min {
		min = top
		out = Vec2{X: p.X, Y: b.Min.Y - margin}
	}
	if bottom < min {
		out = Vec2{X: p.X, Y: b.Max.Y + margin}
	}
	return out
}
