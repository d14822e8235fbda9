package sim

import (
	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
)

// integrate advances one walking agent along its route: pop waypoints
// inside the arrival epsilon, blend a collision-avoidance vector into the
// desired direction, smooth the heading toward the blend, and advance by
// speed × dt. Non-walking agents and empty routes hold position.
func (s *Simulation) integrate(a *AgentState, dt float64) {
	if a.State.Kind() != KindWalking || len(a.Route) == 0 {
		return
	}

	epsSq := s.params.ArrivalEps * s.params.ArrivalEps
	for len(a.Route) > 0 && a.Pos.DistSq(a.Route[0]) <= epsSq {
		a.Route = a.Route[1:]
	}
	if len(a.Route) == 0 {
		return
	}

	desired := a.Route[0].Sub(a.Pos).Normalize()
	blended := desired.Add(s.avoidance(a).Scale(s.params.AvoidWeight)).Normalize()
	if blended == (geom.Vec2{}) {
		blended = desired // Repulsion exactly canceled the goal direction.
	}

	heading := geom.Lerp(a.Heading, blended, clamp01(s.params.TurnRate*dt)).Normalize()
	if heading == (geom.Vec2{}) {
		heading = blended
	}
	a.Heading = heading
	a.Pos = a.Pos.Add(heading.Scale(a.Speed * dt))
}

// avoidance sums repulsion from every agent closer than the avoidance
// radius, scaled up as they get closer. Soft steering only — the hard
// guarantees come from the resolver passes.
func (s *Simulation) avoidance(a *AgentState) geom.Vec2 {
	radius := s.params.AvoidRadius
	radiusSq := radius * radius

	var sum geom.Vec2
	for i := 0; i < s.store.Len(); i++ {
		o := s.store.At(i)
		if o == a {
			continue
		}
		dSq := a.Pos.DistSq(o.Pos)
		if dSq >= radiusSq || dSq == 0 {
			continue // Exact overlap is the resolver's problem.
		}
		away := a.Pos.Sub(o.Pos)
		d := away.Len()
		sum = sum.Add(away.Scale((1 - d/radius) / d))
	}
	return sum
}
