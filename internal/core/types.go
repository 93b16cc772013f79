package core

import "time"

const (
	AppName    = "memchat"
	AppVersion = "0.1.0"
	UserAgent  = "memchat/0.1"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Mode is fixed when a session starts.
type Mode int

const (
	ModeStateless Mode = iota
	ModeMemory
)

func (m Mode) String() string {
	switch m {
	case ModeMemory:
		return "memory"
	default:
		return "stateless"
	}
}

// Turn is one entry of the local transcript. Context holds the retrieved
// memory used to produce an assistant turn.
type Turn struct {
	Role    Role
	Content string
	Context string
	Model   string
	At      time.Time
}

// Model is an entry of the model catalog.
type Model struct {
	ID   string
	Name string
}
