package sim

import (
	"github.com/alttabdlt/ai-arena-sub001/internal/nav"
)

// Params holds every behavior and movement tunable. The steering blend and
// destination-selection weights are hand-tuned; treat them as weighted
// preferences, nothing deeper.
type Params struct {
	// Movement.
	SpeedMin    float64 // Per-agent fixed speed range, units/sec
	SpeedMax    float64
	ArrivalEps  float64 // Waypoint pop distance
	AvoidRadius float64 // Repulsion kicks in below this distance
	AvoidWeight float64 // Steering blend factor for the repulsion sum
	TurnRate    float64 // Heading interpolation rate, 1/sec

	// Hard collision resolution.
	MinSeparation float64 // Pairwise minimum distance
	ResolveMargin float64 // Resolved positions sit this far outside the conflict

	// Chatting.
	ChatRadius float64 // Pairing proximity
	ChatChance float64 // Per-tick initiation probability

	// External action signals.
	AdjacentDist float64 // "At the plot" threshold against the entrance point

	// Economic distress thresholds and per-tick entry probabilities.
	BankrollLow      float64
	BankrollCritical float64
	BegChance        float64
	SchemeChance     float64

	// Destination selection weights (normalized at use).
	DestPartnerWeight  float64
	DestBuildingWeight float64
	DestNodeWeight     float64

	// Idle "thinking" interval bounds, seconds.
	IdleMin float64
	IdleMax float64

	// TickBucket groups ticks for seeding the pairing shuffle so the
	// choice is stable within a bucket but varies over time.
	TickBucket uint64

	Nav nav.Params
}

// DefaultParams returns the standard simulation configuration.
func DefaultParams() Params {
	return Params{
		SpeedMin:    2.0,
		SpeedMax:    4.0,
		ArrivalEps:  0.5,
		AvoidRadius: 3.0,
		AvoidWeight: 1.5,
		TurnRate:    6.0,

		MinSeparation: 1.2,
		ResolveMargin: 0.05,

		ChatRadius: 6.0,
		ChatChance: 0.04,

		AdjacentDist: 2.5,

		BankrollLow:      100,
		BankrollCritical: 20,
		BegChance:        0.01,
		SchemeChance:     0.02,

		DestPartnerWeight:  0.25,
		DestBuildingWeight: 0.45,
		DestNodeWeight:     0.30,

		IdleMin: 1.0,
		IdleMax: 4.0,

		TickBucket: 32,

		Nav: nav.DefaultParams(),
	}
}

// archetypeProfile biases timers per personality tag. Archetypes shape
// durations, never the machine's structure.
type archetypeProfile struct {
	ChatMin, ChatMax     float64
	ActMin, ActMax       float64
	FlavorMin, FlavorMax float64 // Begging/scheming durations
}

var archetypeProfiles = map[string]archetypeProfile{
	"aggressive": {ChatMin: 3, ChatMax: 7, ActMin: 4, ActMax: 10, FlavorMin: 3, FlavorMax: 8},
	"defensive":  {ChatMin: 6, ChatMax: 14, ActMin: 8, ActMax: 18, FlavorMin: 5, FlavorMax: 12},
	"balanced":   {ChatMin: 4, ChatMax: 10, ActMin: 6, ActMax: 14, FlavorMin: 4, FlavorMax: 10},
	"erratic":    {ChatMin: 2, ChatMax: 16, ActMin: 3, ActMax: 20, FlavorMin: 2, FlavorMax: 15},
}

var defaultProfile = archetypeProfile{
	ChatMin: 4, ChatMax: 12, ActMin: 5, ActMax: 15, FlavorMin: 4, FlavorMax: 10,
}

// profileFor returns the timer profile for an archetype tag, falling back
// to the default for unknown or missing tags.
func profileFor(archetype string) archetypeProfile {
	if p, ok := archetypeProfiles[archetype]; ok {
		return p
	}
	return defaultProfile
}
