package sim

import (
	"github.com/alttabdlt/ai-arena-sub001/internal/geom"
)

// AgentState is the simulation's record for one live agent. The simulation
// owns these exclusively; collaborators see AgentView copies only.
type AgentState struct {
	ID        string
	Archetype string

	Pos     geom.Vec2
	Heading geom.Vec2 // Unit vector
	Route   []geom.Vec2
	Speed   float64 // Units/sec, fixed at spawn

	State      Behavior
	StateTimer float64 // Seconds elapsed in the current state

	// Collaborator signals, refreshed from the roster.
	Health   float64 // 0–100; death arrives from outside, never from here
	Bankroll float64

	// RelPartner tracks the most recent chat partner — the relationship
	// the destination chooser can seek out.
	RelPartner string

	// Pending external action signal, consumed by the state machine.
	pendingAction ActionKind
	pendingPlot   int
	lastActionAt  uint64 // Roster timestamp of the newest consumed signal
}

// AgentView is the read-only per-agent handle sampled by renderers.
// Values are copied out per frame; no references into live state.
type AgentView struct {
	ID         string
	Archetype  string
	Pos        geom.Vec2
	Heading    geom.Vec2
	State      Kind
	StateTimer float64
	Speed      float64
	Health     float64
}

func (a *AgentState) view() AgentView {
	return AgentView{
		ID:         a.ID,
		Archetype:  a.Archetype,
		Pos:        a.Pos,
		Heading:    a.Heading,
		State:      a.State.Kind(),
		StateTimer: a.StateTimer,
		Speed:      a.Speed,
		Health:     a.Health,
	}
}

// Store is an arena-style agent container: a dense slice for cache-friendly
// per-tick iteration plus an id→index map for O(1) lookup. Removal swaps
// with the last element.
type Store struct {
	agents []*AgentState
	index  map[string]int
}

// NewStore creates an empty agent store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Len returns the number of live agents.
func (s *Store) Len() int { return len(s.agents) }

// At returns the agent at dense index i.
func (s *Store) At(i int) *AgentState { return s.agents[i] }

// Get returns the agent with the given id, or nil.
func (s *Store) Get(id string) *AgentState {
	if i, ok := s.index[id]; ok {
		return s.agents[i]
	}
	return nil
}

// Add inserts a new agent. Existing ids are replaced.
func (s *Store) Add(a *AgentState) {
	if i, ok := s.index[a.ID]; ok {
		s.agents[i] = a
		return
	}
	s.index[a.ID] = len(s.agents)
	s.agents = append(s.agents, a)
}

// Remove deletes an agent by id, swapping the last element into its slot.
func (s *Store) Remove(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.agents) - 1
	s.agents[i] = s.agents[last]
	s.index[s.agents[i].ID] = i
	s.agents = s.agents[:last]
	delete(s.index, id)
}
