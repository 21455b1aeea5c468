package room

type SessionState int

const (
	StateWaiting SessionState = iota
	StateRunning
	StateEnded
)

// String returns the lowercase state name.
func (s SessionState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}
