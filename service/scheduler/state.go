package scheduler

// State is a worker lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateBusy
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateBusy:
		return "Busy"
	case StateStopped:
		return "Stopped"
	}
	return "Unknown"
}
