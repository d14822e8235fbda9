// Package sim is the agent navigation and behavior simulation: every tick
// it decides where each agent is, where it is going, and what it is doing,
// and enforces that agents never overlap each other or building footprints.
//
// Single-writer, frame-driven: a host loop calls Step once per frame with a
// delta time. All updates scale by dt, so dropped frames cannot corrupt
// state. Collaborators read AgentView copies and steer only through the
// Camera control surface.
package sim

import (
	"fmt"
	"math"

	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/nav"
	"github.com/alttabdlt/ai-arena-sub001/internal/rng"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

// Transition records one behavior state change for logging and replay.
type Transition struct {
	Tick    uint64
	AgentID string
	From    Kind
	To      Kind
}

// Simulation owns the agent state map, the road graph, and the building
// index. It is the single writer for all of them.
type Simulation struct {
	params Params

	layout    town.Layout
	layoutSig uint64
	hasLayout bool

	graph     *nav.Graph
	buildings *town.BuildingIndex

	// Plot ids with a reachable entrance, in id order, for the
	// random-built-structure destination strategy.
	builtPlots []int

	store       *Store
	tick        uint64
	transitions []Transition

	camera Camera
}

// New creates an empty simulation. It performs no-op ticks until a valid
// layout arrives.
func New(params Params) *Simulation {
	return &Simulation{
		params: params,
		store:  NewStore(),
	}
}

// Tick returns the number of steps processed so far.
func (s *Simulation) Tick() uint64 { return s.tick }

// SetLayout installs a town layout, rebuilding the road graph and building
// index only when the layout signature actually changed. Routes computed
// against the old graph are discarded on change.
func (s *Simulation) SetLayout(l town.Layout) {
	if l.Empty() {
		s.hasLayout = false
		return
	}
	sig := l.Signature()
	if s.hasLayout && sig == s.layoutSig {
		return
	}

	s.layout = l
	s.layoutSig = sig
	s.hasLayout = true
	s.graph = nav.Build(l, s.params.Nav)
	s.buildings = town.BuildIndex(l)

	s.builtPlots = s.builtPlots[:0]
	for _, p := range l.Plots {
		if p.Status != town.StatusBuilt {
			continue
		}
		if _, ok := s.graph.EntranceNode(p.ID); ok {
			s.builtPlots = append(s.builtPlots, p.ID)
		}
	}

	for i := 0; i < s.store.Len(); i++ {
		s.store.At(i).Route = nil
	}
}

// Graph exposes the current road graph for inspection. Read-only.
func (s *Simulation) Graph() *nav.Graph { return s.graph }

// Layout returns the active layout. Read-only.
func (s *Simulation) Layout() town.Layout { return s.layout }

// Camera returns the narrow presentation-layer control surface.
func (s *Simulation) Camera() *Camera { return &s.camera }

// Views copies out the read-only handle for every live agent.
func (s *Simulation) Views() []AgentView {
	out := make([]AgentView, s.store.Len())
	for i := 0; i < s.store.Len(); i++ {
		out[i] = s.store.At(i).view()
	}
	return out
}

// View returns one agent's read-only handle.
func (s *Simulation) View(id string) (AgentView, bool) {
	if a := s.store.Get(id); a != nil {
		return a.view(), true
	}
	return AgentView{}, false
}

// DrainTransitions returns and clears the state changes recorded since the
// last call.
func (s *Simulation) DrainTransitions() []Transition {
	out := s.transitions
	s.transitions = nil
	return out
}

// Step advances the simulation by dt seconds. With no valid layout the
// tick is a no-op. A tick runs to completion: behavior decisions, movement
// integration, then the two-pass collision resolution — agent separation
// first, building exclusion second. Resolving buildings first could
// reintroduce agent overlap; this order cannot.
func (s *Simulation) Step(dt float64) {
	s.tick++
	if !s.hasLayout || dt <= 0 {
		return
	}

	for i := 0; i < s.store.Len(); i++ {
		s.updateBehavior(s.store.At(i), dt)
	}
	for i := 0; i < s.store.Len(); i++ {
		s.integrate(s.store.At(i), dt)
	}
	s.resolveSeparation()
	s.resolveBuildings()

	s.camera.update(s.store)
}

// setState performs a transition: record it, reset the state timer, and
// clear the route when leaving Walking — an agent is never mid-route and
// mid-action at once.
func (s *Simulation) setState(a *AgentState, next Behavior) {
	s.transitions = append(s.transitions, Transition{
		Tick:    s.tick,
		AgentID: a.ID,
		From:    a.State.Kind(),
		To:      next.Kind(),
	})
	a.State = next
	a.StateTimer = 0
	if next.Kind() != KindWalking {
		a.Route = nil
	}
}

// updateBehavior evaluates the transition rules in priority order; the
// first match wins.
func (s *Simulation) updateBehavior(a *AgentState, dt float64) {
	if a.State.Kind() == KindDead {
		return
	}
	a.StateTimer += dt

	// Death is signaled by collaborators, never decided here.
	if a.Health <= 0 {
		s.setState(a, Dead{})
		return
	}

	switch st := a.State.(type) {
	case Chatting:
		// Ends when the shared timer elapses or the partner vanished.
		partner := s.store.Get(st.Partner)
		if a.StateTimer > st.Deadline || partner == nil {
			s.endChat(a, partner)
		}
		return
	case Idle:
		if a.StateTimer > st.Deadline {
			s.chooseDestination(a)
		}
		return
	case Walking:
		// Walking rules below.
	default:
		// Timed action/flavor states revert to Walking on expiry.
		if d, ok := stateDeadline(a.State); ok && a.StateTimer > d {
			s.setState(a, Walking{})
		}
		return
	}

	if s.tryDistress(a) {
		return
	}
	if len(a.Route) == 0 && s.tryChat(a) {
		return
	}
	if s.tryAction(a) {
		return
	}
	if len(a.Route) == 0 {
		think := s.tickStream("idle", a.ID).Range(s.params.IdleMin, s.params.IdleMax)
		s.setState(a, Idle{Deadline: think})
	}
}

// tryDistress probabilistically enters a flavor state when the agent's
// bankroll is below threshold. Critical distress outranks low.
func (s *Simulation) tryDistress(a *AgentState) bool {
	p := profileFor(a.Archetype)
	if a.Bankroll < s.params.BankrollCritical {
		if s.tickStream("scheme", a.ID).Float64() < s.params.SchemeChance {
			dur := s.tickStream("schemedur", a.ID).Range(p.FlavorMin, p.FlavorMax)
			s.setState(a, Scheming{Deadline: dur})
			return true
		}
		return false
	}
	if a.Bankroll < s.params.BankrollLow {
		if s.tickStream("beg", a.ID).Float64() < s.params.BegChance {
			dur := s.tickStream("begdur", a.ID).Range(p.FlavorMin, p.FlavorMax)
			s.setState(a, Begging{Deadline: dur})
			return true
		}
	}
	return false
}

// tryChat pairs the agent with a nearby idle walker. Candidate order is a
// deterministic shuffle seeded by agent id and tick bucket, not insertion
// order, to avoid systemic pairing bias.
func (s *Simulation) tryChat(a *AgentState) bool {
	if s.tickStream("chatgate", a.ID).Float64() >= s.params.ChatChance {
		return false
	}

	radiusSq := s.params.ChatRadius * s.params.ChatRadius
	var candidates []*AgentState
	for i := 0; i < s.store.Len(); i++ {
		o := s.store.At(i)
		// Walking agents cannot carry a partner; the sum type holds the
		// pairing inside Chatting itself.
		if o == a || o.State.Kind() != KindWalking {
			continue
		}
		if o.Pos.DistSq(a.Pos) <= radiusSq {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	s.bucketStream("chatpick", a.ID).Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	partner := candidates[0]

	p := profileFor(a.Archetype)
	dur := s.tickStream("chatdur", a.ID).Range(p.ChatMin, p.ChatMax)

	s.setState(a, Chatting{Partner: partner.ID, Deadline: dur})
	s.setState(partner, Chatting{Partner: a.ID, Deadline: dur})
	a.RelPartner = partner.ID
	partner.RelPartner = a.ID
	return true
}

// endChat returns both participants to Walking and clears the pairing.
func (s *Simulation) endChat(a *AgentState, partner *AgentState) {
	s.setState(a, Walking{})
	if partner != nil {
		if pst, ok := partner.State.(Chatting); ok && pst.Partner == a.ID {
			s.setState(partner, Walking{})
		}
	}
}

// tryAction services a pending external action signal: route to the target
// plot's entrance, and once adjacent, enter the mapped action state.
// Invalid targets are dropped and the agent falls through to default
// destination selection.
func (s *Simulation) tryAction(a *AgentState) bool {
	if a.pendingAction == ActionNone {
		return false
	}

	plot := s.layout.PlotByID(a.pendingPlot)
	if plot == nil {
		a.pendingAction = ActionNone
		a.pendingPlot = -1
		return false
	}
	entrance := plot.EntrancePoint()

	if a.Pos.DistSq(entrance) > s.params.AdjacentDist*s.params.AdjacentDist {
		if len(a.Route) > 0 {
			return true // Already en route.
		}
		route := nav.FindPath(s.graph, a.Pos, entrance, s.params.Nav)
		if route == nil {
			// Unreachable target: drop the signal and wander instead.
			a.pendingAction = ActionNone
			a.pendingPlot = -1
			s.routeToRandomNode(a)
			return true
		}
		a.Route = route
		return true
	}

	p := profileFor(a.Archetype)
	dur := s.tickStream("actdur", a.ID).Range(p.ActMin, p.ActMax)
	next := stateForAction(a.pendingAction, dur)
	a.pendingAction = ActionNone
	a.pendingPlot = -1
	s.setState(a, next)
	return true
}

// chooseDestination runs after an Idle interval: external target plot
// first, then a weighted-random choice between seeking the tracked
// relationship partner, a random built structure, or a random road node.
func (s *Simulation) chooseDestination(a *AgentState) {
	s.setState(a, Walking{})

	if a.pendingAction != ActionNone {
		s.tryAction(a)
		return
	}

	wPartner := s.params.DestPartnerWeight
	wBuilding := s.params.DestBuildingWeight
	wNode := s.params.DestNodeWeight
	total := wPartner + wBuilding + wNode
	if total <= 0 {
		s.routeToRandomNode(a)
		return
	}

	r := s.tickStream("dest", a.ID).Float64() * total
	switch {
	case r < wPartner:
		if partner := s.store.Get(a.RelPartner); partner != nil {
			if s.routeTo(a, partner.Pos) {
				return
			}
		}
		fallthrough
	case r < wPartner+wBuilding:
		if len(s.builtPlots) > 0 {
			pick := s.tickStream("destplot", a.ID).Intn(len(s.builtPlots))
			if plot := s.layout.PlotByID(s.builtPlots[pick]); plot != nil {
				if s.routeTo(a, plot.EntrancePoint()) {
					return
				}
			}
		}
		fallthrough
	default:
		s.routeToRandomNode(a)
	}
}

// routeTo paths the agent toward a goal; false when no path exists.
func (s *Simulation) routeTo(a *AgentState, goal geom.Vec2) bool {
	route := nav.FindPath(s.graph, a.Pos, goal, s.params.Nav)
	if route == nil {
		return false
	}
	a.Route = route
	return true
}

// routeToRandomNode is the universal fallback: walk to a random road node.
// If even that fails the route stays empty and the machine idles again
// next tick rather than stalling.
func (s *Simulation) routeToRandomNode(a *AgentState) {
	if s.graph == nil || s.graph.NodeCount() == 0 {
		return
	}
	pick := s.tickStream("destnode", a.ID).Intn(s.graph.NodeCount())
	s.routeTo(a, s.graph.Nodes[pick].Pos)
}

// tickStream returns a stream keyed by purpose, agent, and the current
// tick: a fresh deterministic draw every tick.
func (s *Simulation) tickStream(purpose, id string) *rng.Stream {
	return rng.New(fmt.Sprintf("%s:%s:%d", purpose, id, s.tick))
}

// bucketStream groups ticks into buckets so the draw is stable across a
// short window.
func (s *Simulation) bucketStream(purpose, id string) *rng.Stream {
	bucket := uint64(0)
	if s.params.TickBucket > 0 {
		bucket = s.tick / s.params.TickBucket
	}
	return rng.New(fmt.Sprintf("%s:%s:%d", purpose, id, bucket))
}

// clamp01 bounds interpolation factors.
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
