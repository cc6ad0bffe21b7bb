package controller

// Action is the board transformation chosen in a tick.
type Action int

// The possible actions, one per tick.
const (
	// ActionStep advances the board by one generation.
	ActionStep Action = iota

	// ActionRandomize replaces the board because button A is held.
	ActionRandomize

	// ActionComplement flips every cell because button B was pressed.
	ActionComplement

	// ActionWait leaves a dead board untouched while the dead-board timer
	// runs.
	ActionWait

	// ActionRevive replaces a dead board once the dead-board timer expires.
	ActionRevive
)

// NumActions is the number of distinct actions.
const NumActions = int(ActionRevive) + 1

var actionNames = [...]string{
	ActionStep:       "step",
	ActionRandomize:  "randomize",
	ActionComplement: "complement",
	ActionWait:       "wait",
	ActionRevive:     "revive",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}

	return actionNames[a]
}

// Actions lists every action in declaration order.
func Actions() []Action {
	return []Action{
		ActionStep, ActionRandomize, ActionComplement, ActionWait, ActionRevive,
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, bool) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), true
		}
	}

	return 0, false
}
