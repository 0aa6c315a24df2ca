package pipeline

// State is the lifecycle state of a Pipeline
type State int32

const (
	StateIdle State = iota
	StateInitializing
	StateWatching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateWatching:
		return "watching"
	default:
		return "unknown"
	}
}
