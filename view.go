package postboard

import (
	"sync"

	"github.com/json-iterator/go"
)

// ErrorMessage is the only text shown when a fetch fails
const ErrorMessage = "Failed to fetch users and posts."

// Phase of a ViewState
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	}

	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*p = PhaseError
	case "ready":
		*p = PhaseReady
	default:
		*p = PhaseLoading
	}

	return nil
}

// ViewState is a snapshot of what the renderer draws. Message is set only in
// PhaseError; Users, Posts and Cards only in PhaseReady.
type ViewState struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message,omitempty"`
	Users   []User `json:"users,omitempty"`
	Posts   []Post `json:"posts,omitempty"`
	Cards   []Card `json:"cards,omitempty"`
}

func (s ViewState) MarshalBinary() ([]byte, error) {
	return jsoniter.Marshal(s)
}

func (s *ViewState) UnmarshalBinary(data []byte) error {
	return jsoniter.Unmarshal(data, s)
}

// view holds the state of one mount. It leaves PhaseLoading at most once and
// ignores every update after teardown.
type view struct {
	mu      sync.RWMutex
	state   ViewState
	settled bool
	alive   bool

	done chan struct{} // closed on settle
	gone chan struct{} // closed on teardown
}

func newView() *view {
	return &view{
		alive: true,
		done:  make(chan struct{}),
		gone:  make(chan struct{}),
	}
}

func (v *view) snapshot() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *view) fail(message string) bool {
	return v.settle(ViewState{Phase: PhaseError, Message: message})
}

func (v *view) ready(ds *Dataset) bool {
	return v.settle(ViewState{
		Phase: PhaseReady,
		Users: ds.Users,
		Posts: ds.Posts,
		Cards: ds.Cards(),
	})
}

func (v *view) settle(s ViewState) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.settled || !v.alive {
		return false
	}

	v.state = s
	v.settled = true
	close(v.done)

	return true
}

// teardown stops the view from accepting updates. Safe to call repeatedly.
func (v *view) teardown() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.alive {
		return
	}

	v.alive = false
	close(v.gone)
}
