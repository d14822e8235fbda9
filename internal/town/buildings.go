package town

import (
	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
)

// BuildingAABB is one building footprint used for hard exclusion.
type BuildingAABB struct {
	PlotID int       `json:"plot_id"`
	Box    geom.AABB `json:"box"`
}

// BuildingIndex holds the AABB of every constructed or under-construction
// building. Rebuilt alongside the road graph when the layout changes.
type BuildingIndex struct {
	Boxes []BuildingAABB
}

// BuildIndex derives the building index from a layout. Plots without a
// physical footprint (empty, claimed) contribute nothing.
func BuildIndex(l Layout) *BuildingIndex {
	idx := &BuildingIndex{}
	for _, p := range l.Plots {
		if !p.HasFootprint() {
			continue
		}
		idx.Boxes = append(idx.Boxes, BuildingAABB{
			PlotID: p.ID,
			Box:    geom.AABBFromCenter(p.WorldPos(), BuildingHalfExtent),
		})
	}
	return idx
}

// Hit returns the first building whose box strictly contains p, or nil.
func (idx *BuildingIndex) Hit(p geom.Vec2) *BuildingAABB {
	for i := range idx.Boxes {
		if idx.Boxes[i].Box.ContainsStrict(p) {
			return &idx.Boxes[i]
		}
	}
	return nil
}
