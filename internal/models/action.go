package models

// Action is the 4D triage category assigned to a conversation.
type Action int

const (
	ActionDo Action = iota
	ActionDelegate
	ActionDefer
	ActionDelete
)

// Actions lists every category in scoring/tie-break order.
var Actions = [4]Action{ActionDo, ActionDelegate, ActionDefer, ActionDelete}

func (a Action) String() string {
	switch a {
	case ActionDo:
		return "Do"
	case ActionDelegate:
		return "Delegate"
	case ActionDefer:
		return "Defer"
	case ActionDelete:
		return "Delete"
	}
	return "Unknown"
}

// Classification is the result of running a conversation through the
// 4D classifier: the chosen action, a human-readable reason naming the
// matched indicators, and a confidence in [0,1].
type Classification struct {
	Action     Action  `json:"action"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// Importance is the sender-assigned priority of an email or event.
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceNormal Importance = "normal"
	ImportanceHigh   Importance = "high"
)

// Rank orders importance levels so threads can report their maximum.
func (i Importance) Rank() int {
	switch i {
	case ImportanceLow:
		return 0
	case ImportanceHigh:
		return 2
	default:
		return 1
	}
}
