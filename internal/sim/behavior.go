// Behavior states — the per-agent, per-tick decision machine.
// States form a closed sum type with per-state payloads, so invalid
// combinations (a chat with no partner, a timer on a terminal state)
// cannot be represented.
package sim

// Kind enumerates the behavior states for rendering and persistence.
type Kind uint8

const (
	KindWalking Kind = iota
	KindIdle
	KindChatting
	KindShopping
	KindBuilding
	KindMining
	KindPlaying
	KindBegging
	KindScheming
	KindDead
)

var kindNames = [...]string{
	"walking", "idle", "chatting", "shopping", "building",
	"mining", "playing", "begging", "scheming", "dead",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Behavior is the sealed state interface. Only the types in this file
// implement it.
type Behavior interface {
	Kind() Kind
	sealed()
}

// Walking is the default state: following a route, or drifting with an
// empty one until the machine picks a destination.
type Walking struct{}

// Idle is the post-arrival "thinking" pause before a new destination.
type Idle struct {
	Deadline float64 // Seconds in state before choosing a destination
}

// Chatting pairs two agents for a shared duration.
type Chatting struct {
	Partner  string
	Deadline float64
}

// Shopping, Building, Mining and Playing are plot-anchored action states
// entered once the agent stands adjacent to its target plot's entrance.
type Shopping struct{ Deadline float64 }
type Building struct{ Deadline float64 }
type Mining struct{ Deadline float64 }
type Playing struct{ Deadline float64 }

// Begging and Scheming are economic-distress flavor states: timers and
// renderer-visible posture only, no mechanical effect.
type Begging struct{ Deadline float64 }
type Scheming struct{ Deadline float64 }

// Dead is terminal. Position holds; no further transitions.
type Dead struct{}

func (Walking) Kind() Kind  { return KindWalking }
func (Idle) Kind() Kind     { return KindIdle }
func (Chatting) Kind() Kind { return KindChatting }
func (Shopping) Kind() Kind { return KindShopping }
func (Building) Kind() Kind { return KindBuilding }
func (Mining) Kind() Kind   { return KindMining }
func (Playing) Kind() Kind  { return KindPlaying }
func (Begging) Kind() Kind  { return KindBegging }
func (Scheming) Kind() Kind { return KindScheming }
func (Dead) Kind() Kind     { return KindDead }

func (Walking) sealed()  {}
func (Idle) sealed()     {}
func (Chatting) sealed() {}
func (Shopping) sealed() {}
func (Building) sealed() {}
func (Mining) sealed()   {}
func (Playing) sealed()  {}
func (Begging) sealed()  {}
func (Scheming) sealed() {}
func (Dead) sealed()     {}

// stateDeadline returns the duration after which a timed state reverts to
// Walking. Walking and Dead carry no deadline.
func stateDeadline(b Behavior) (float64, bool) {
	switch st := b.(type) {
	case Idle:
		return st.Deadline, true
	case Chatting:
		return st.Deadline, true
	case Shopping:
		return st.Deadline, true
	case Building:
		return st.Deadline, true
	case Mining:
		return st.Deadline, true
	case Playing:
		return st.Deadline, true
	case Begging:
		return st.Deadline, true
	case Scheming:
		return st.Deadline, true
	default:
		return 0, false
	}
}

// ActionKind enumerates the external "last action" signals that map onto
// plot-anchored states.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionBuild
	ActionShop
	ActionMine
	ActionPlay
)

// ParseAction maps a roster action tag to its kind. Unrecognized tags map
// to ActionNone and the signal is ignored.
func ParseAction(tag string) ActionKind {
	switch tag {
	case "build", "construct":
		return ActionBuild
	case "shop", "buy", "trade":
		return ActionShop
	case "mine", "gather":
		return ActionMine
	case "play", "gamble":
		return ActionPlay
	default:
		return ActionNone
	}
}

// stateForAction is the fixed action→state lookup applied once an agent
// stands adjacent to its target plot.
func stateForAction(k ActionKind, deadline float64) Behavior {
	switch k {
	case ActionBuild:
		return Building{Deadline: deadline}
	case ActionShop:
		return Shopping{Deadline: deadline}
	case ActionMine:
		return Mining{Deadline: deadline}
	case ActionPlay:
		return Playing{Deadline: deadline}
	default:
		return Walking{}
	}
}
