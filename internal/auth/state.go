package auth

// State is where a browser session sits in the login lifecycle.
type State int

const (
	// StateLoading covers the initial restore and any in-flight login.
	StateLoading State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
