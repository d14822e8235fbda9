// Package town provides the town layout data model: plots on an integer
// grid, procedural road segments, and the building collision index derived
// from them. Layouts are externally owned snapshots — the simulation treats
// them as read-only inputs and rebuilds its navigation structures only when
// the layout signature changes.
package town

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
)

// World scale constants. One grid cell is TileSize world units; buildings
// are fixed-size squares centered on their plot.
const (
	TileSize           = 10.0
	BuildingHalfExtent = 3.0
	// EntranceOffset places the entrance strictly outside the building
	// footprint so it is a reachable pathfinding target.
	EntranceOffset = BuildingHalfExtent + 1.5
)

// Zone classifies what a plot is used for.
type Zone uint8

const (
	ZoneResidential Zone = iota
	ZoneCommercial
	ZoneIndustrial
	ZonePark
)

// ZoneName returns a human-readable name for a zone.
func ZoneName(z Zone) string {
	switch z {
	case ZoneResidential:
		return "Residential"
	case ZoneCommercial:
		return "Commercial"
	case ZoneIndustrial:
		return "Industrial"
	case ZonePark:
		return "Park"
	default:
		return "Unknown"
	}
}

// Status is a plot's construction state.
type Status uint8

const (
	StatusEmpty Status = iota
	StatusClaimed
	StatusUnderConstruction
	StatusBuilt
)

// Plot is a single buildable lot in the town grid.
type Plot struct {
	ID       int    `json:"id"`
	X        int    `json:"x"` // Grid column
	Y        int    `json:"y"` // Grid row
	Zone     Zone   `json:"zone"`
	Status   Status `json:"status"`
	Building string `json:"building,omitempty"` // Optional building metadata
}

// WorldPos returns the plot's center in world coordinates.
func (p Plot) WorldPos() geom.Vec2 {
	return geom.Vec2{X: float64(p.X) * TileSize, Y: float64(p.Y) * TileSize}
}

// HasFootprint reports whether the plot contributes a building AABB.
// Claimed-but-unstarted and empty plots have no physical presence.
func (p Plot) HasFootprint() bool {
	return p.Status == StatusBuilt || p.Status == StatusUnderConstruction
}

// EntrancePoint returns the point agents path to instead of the plot's
// unreachable center: offset from the center toward the town interior
// (the origin), strictly outside the building footprint. Plots at the
// exact origin fall back to an eastward entrance for determinism.
func (p Plot) EntrancePoint() geom.Vec2 {
	c := p.WorldPos()
	dir := geom.Vec2{X: -c.X, Y: -c.Y}.Normalize()
	if dir == (geom.Vec2{}) {
		dir = geom.Vec2{X: 1, Y: 0}
	}
	return c.Add(dir.Scale(EntranceOffset))
}

// Orientation of a road segment's centerline.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// Tone classifies a road segment's role in the street hierarchy.
type Tone uint8

const (
	ToneRing Tone = iota
	ToneArterial
	ToneLocal
)

// RoadSegment is one procedural street: an axis-aligned line at a fixed
// centerline coordinate, spanning [From, To] along its axis.
type RoadSegment struct {
	Orientation Orientation `json:"orientation"`
	At          float64     `json:"at"`   // Y for horizontal, X for vertical
	From        float64     `json:"from"` // Extent start along the axis
	To          float64     `json:"to"`   // Extent end along the axis
	Tone        Tone        `json:"tone"`
}

// Layout is one full town snapshot: all plots plus all road segments.
type Layout struct {
	Plots    []Plot        `json:"plots"`
	Segments []RoadSegment `json:"segments"`
}

// Empty reports whether the layout carries nothing to simulate against.
// Per the error-handling design, an empty layout means no-op ticks.
func (l Layout) Empty() bool {
	return len(l.Plots) == 0 && len(l.Segments) == 0
}

// Signature returns a hash of every layout field that affects the road
// graph or building index. Two layouts with equal signatures must produce
// isomorphic graphs, so immaterial re-renders never invalidate cached
// routes. Field order is canonicalized before hashing.
func (l Layout) Signature() uint64 {
	plots := make([]Plot, len(l.Plots))
	copy(plots, l.Plots)
	sort.Slice(plots, func(i, j int) bool { return plots[i].ID < plots[j].ID })

	segs := make([]RoadSegment, len(l.Segments))
	copy(segs, l.Segments)
	sort.Slice(segs, func(i, j int) bool {
		a, b := segs[i], segs[j]
		if a.Orientation != b.Orientation {
			return a.Orientation < b.Orientation
		}
		if a.At != b.At {
			return a.At < b.At
		}
		return a.From < b.From
	})

	h := fnv.New64a()
	var buf [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeF64 := func(v float64) { writeU64(math.Float64bits(v)) }

	writeU64(uint64(len(plots)))
	for _, p := range plots {
		writeU64(uint64(p.ID))
		writeU64(uint64(int64(p.X)))
		writeU64(uint64(int64(p.Y)))
		writeU64(uint64(p.Zone)<<8 | uint64(p.Status))
	}
	writeU64(uint64(len(segs)))
	for _, s := range segs {
		writeU64(uint64(s.Orientation)<<8 | uint64(s.Tone))
		writeF64(s.At)
		writeF64(s.From)
		writeF64(s.To)
	}
	return h.Sum64()
}

// PlotByID returns the plot with the given id, or nil if absent.
func (l Layout) PlotByID(id int) *Plot {
	for i := range l.Plots {
		if l.Plots[i].ID == id {
			return &l.Plots[i]
		}
	}
	return nil
}
