package sim

import (
	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
	"github.com/alttabdlt/ai-arena-sub001/internal/rng"
)

// RosterAgent is one externally-polled agent record. Optional fields use
// zero values: empty action type, negative plot id, zero timestamp.
type RosterAgent struct {
	ID        string
	Archetype string
	Bankroll  float64
	Health    float64 // 0–100

	LastActionType string // "" when absent
	LastTargetPlot int    // -1 when absent
	LastActionAt   uint64 // Collaborator timestamp; 0 when absent
}

// Snapshot is one roster refresh from the polling collaborator.
type Snapshot struct {
	Agents []RosterAgent
}

// ApplySnapshot reconciles the live agent map with the latest roster:
// unseen ids spawn lazily, known ids refresh their signals, and ids absent
// from the roster are pruned along with any in-flight route data.
func (s *Simulation) ApplySnapshot(snap Snapshot) {
	seen := make(map[string]bool, len(snap.Agents))

	for _, r := range snap.Agents {
		seen[r.ID] = true
		a := s.store.Get(r.ID)
		if a == nil {
			a = s.spawn(r)
			s.store.Add(a)
		}

		a.Archetype = r.Archetype
		a.Bankroll = r.Bankroll
		a.Health = r.Health

		// A fresh action timestamp arms a new pending signal; stale or
		// absent signals leave the agent on default behavior. Arming
		// drops any wander route so the next walking tick routes to the
		// target, not to wherever the agent was headed before.
		if r.LastActionAt > a.lastActionAt && r.LastTargetPlot >= 0 {
			if kind := ParseAction(r.LastActionType); kind != ActionNone {
				a.pendingAction = kind
				a.pendingPlot = r.LastTargetPlot
				a.Route = nil
			}
			a.lastActionAt = r.LastActionAt
		}
	}

	// Lazy prune: stale ids drop out with their routes.
	for i := s.store.Len() - 1; i >= 0; i-- {
		a := s.store.At(i)
		if seen[a.ID] {
			continue
		}
		s.detachChat(a)
		s.store.Remove(a.ID)
	}
}

// spawn creates the state record the first tick an id appears. Speed and
// start position come from streams keyed on the agent id, so respawning
// the same roster reproduces the same agents.
func (s *Simulation) spawn(r RosterAgent) *AgentState {
	speed := rng.New("speed:" + r.ID).Range(s.params.SpeedMin, s.params.SpeedMax)

	pos := geom.Vec2{}
	if s.graph != nil && s.graph.NodeCount() > 0 {
		pick := rng.New("spawn:" + r.ID).Intn(s.graph.NodeCount())
		pos = s.graph.Nodes[pick].Pos
	}

	return &AgentState{
		ID:          r.ID,
		Archetype:   r.Archetype,
		Pos:         pos,
		Heading:     geom.Vec2{X: 1, Y: 0},
		Speed:       speed,
		State:       Walking{},
		Health:      r.Health,
		Bankroll:    r.Bankroll,
		pendingPlot: -1,
	}
}

// detachChat releases a chat partner when an agent leaves the simulation
// mid-conversation.
func (s *Simulation) detachChat(a *AgentState) {
	st, ok := a.State.(Chatting)
	if !ok {
		return
	}
	if partner := s.store.Get(st.Partner); partner != nil {
		if pst, ok := partner.State.(Chatting); ok && pst.Partner == a.ID {
			s.setState(partner, Walking{})
		}
	}
}
