// Package roster synthesizes the externally-polled agent roster the
// simulation consumes, standing in for the backend polling collaborator:
// archetype-tagged agents with bankrolls and occasional action signals.
package roster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alttabdlt/ai-arena-sub001/internal/rng"
	"github.com/alttabdlt/ai-arena-sub001/internal/sim"
	"github.com/alttabdlt/ai-arena-sub001/internal/town"
)

var archetypes = []string{"aggressive", "defensive", "balanced", "erratic"}

var actionTags = []string{"build", "shop", "mine", "play"}

// Synth generates deterministic roster refreshes for a fixed population.
type Synth struct {
	agents []sim.RosterAgent
	stream *rng.Stream
	layout town.Layout

	// SignalChance is the per-refresh probability that an agent receives
	// a fresh action signal.
	SignalChance float64
}

// NewSynth creates a synthesizer with count agents. Ids are UUIDs derived
// from the seed stream so the same seed reproduces the same roster.
func NewSynth(seed int64, count int, layout town.Layout) *Synth {
	stream := rng.New(fmt.Sprintf("roster:%d", seed))

	s := &Synth{
		stream:       stream,
		layout:       layout,
		SignalChance: 0.05,
	}

	for i := 0; i < count; i++ {
		var raw [16]byte
		for b := 0; b < 16; b += 8 {
			v := stream.Next()
			for k := 0; k < 8; k++ {
				raw[b+k] = byte(v >> (8 * k))
			}
		}
		id, err := uuid.FromBytes(raw[:])
		if err != nil {
			// 16 bytes always parse; keep the loop total anyway.
			id = uuid.Nil
		}

		s.agents = append(s.agents, sim.RosterAgent{
			ID:             id.String(),
			Archetype:      archetypes[stream.Intn(len(archetypes))],
			Bankroll:       stream.Range(10, 500),
			Health:         100,
			LastTargetPlot: -1,
		})
	}

	return s
}

// Refresh returns the next roster snapshot, drifting bankrolls and
// occasionally arming action signals against built plots. at is the
// collaborator timestamp stamped onto fresh signals.
func (s *Synth) Refresh(at uint64) sim.Snapshot {
	var targets []int
	for _, p := range s.layout.Plots {
		if p.Status == town.StatusBuilt {
			targets = append(targets, p.ID)
		}
	}

	for i := range s.agents {
		a := &s.agents[i]

		// Bankrolls drift so distress states come and go.
		a.Bankroll += s.stream.Range(-15, 15)
		if a.Bankroll < 0 {
			a.Bankroll = 0
		}

		if len(targets) > 0 && s.stream.Float64() < s.SignalChance {
			a.LastActionType = actionTags[s.stream.Intn(len(actionTags))]
			a.LastTargetPlot = targets[s.stream.Intn(len(targets))]
			a.LastActionAt = at
		}
	}

	out := make([]sim.RosterAgent, len(s.agents))
	copy(out, s.agents)
	return sim.Snapshot{Agents: out}
}

// Count returns the roster population.
func (s *Synth) Count() int { return len(s.agents) }
