package game

import "strings"

// State is the stored lifecycle state of a game. The remote source drives
// every transition; nothing here infers one locally.
type State string

const (
	StateScheduled State = "SCHEDULED"
	StateLive      State = "LIVE"
	StateFinal     State = "FINAL"
	StatePostponed State = "POSTPONED"
	StateCancelled State = "CANCELLED"
)

// Terminal reports whether score and state fields are protected from
// unforced overwrites.
func (s State) Terminal() bool {
	switch s {
	case StateFinal, StatePostponed, StateCancelled:
		return true
	default:
		return false
	}
}

func ParseState(value string) (State, bool) {
	switch State(strings.ToUpper(strings.TrimSpace(value))) {
	case StateScheduled:
		return StateScheduled, true
	case StateLive:
		return StateLive, true
	case StateFinal:
		return StateFinal, true
	case StatePostponed:
		return StatePostponed, true
	case StateCancelled:
		return StateCancelled, true
	default:
		return "", false
	}
}

// StateFromProvider maps the NHL web API gameState codes onto stored states.
// Codes the provider has not documented collapse to SCHEDULED rather than
// failing the whole game row.
func StateFromProvider(raw string) State {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch value {
	case "FUT", "PRE":
		return StateScheduled
	case "LIVE", "CRIT":
		return StateLive
	case "FINAL", "OFF":
		return StateFinal
	case "PPD":
		return StatePostponed
	case "CNCL":
		return StateCancelled
	}

	if state, ok := ParseState(value); ok {
		return state
	}

	return StateScheduled
}
