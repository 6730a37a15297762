package generator

// State is the generator's position in its attempt loop.
type State int

const (
	// StateAttempting means a grid is being built or validated.
	StateAttempting State = iota
	// StateDone means an attempt passed validation and its grid is the result.
	StateDone
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
