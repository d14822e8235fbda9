package sim

import (
	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

// Camera is the narrow control surface the presentation layer may invoke.
// It is a UI concern layered on top of the simulation, never feeding back
// into agent state.
type Camera struct {
	focal  geom.Vec2
	follow string
}

// FocusTile pans the focal point to a grid tile and clears any follow.
func (c *Camera) FocusTile(x, y int) {
	c.follow = ""
	c.focal = geom.Vec2{X: float64(x) * town.TileSize, Y: float64(y) * town.TileSize}
}

// Pan moves the focal point by a world-space delta and clears any follow.
func (c *Camera) Pan(dx, dy float64) {
	c.follow = ""
	c.focal = c.focal.Add(geom.Vec2{X: dx, Y: dy})
}

// SetFollow keeps the focal point on an agent until cleared. An empty id
// clears the follow target.
func (c *Camera) SetFollow(agentID string) {
	c.follow = agentID
}

// FollowTarget returns the currently followed agent id, if any.
func (c *Camera) FollowTarget() string { return c.follow }

// FocalPoint returns the current focal point.
func (c *Camera) FocalPoint() geom.Vec2 { return c.focal }

// update tracks the follow target after each tick. A vanished target
// leaves the focal point where it was.
func (c *Camera) update(store *Store) {
	if c.follow == "" {
		return
	}
	if a := store.Get(c.follow); a != nil {
		c.focal = a.Pos
	}
}

// FocusAgent snaps the focal point to an agent's current position without
// following it.
func (s *Simulation) FocusAgent(id string) bool {
	a := s.store.Get(id)
	if a == nil {
		return false
	}
	s.camera.follow = ""
	s.camera.focal = a.Pos
	return true
}
