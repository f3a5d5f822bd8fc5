package scheduler

// Status enumerates the lifecycle states of a studio session.
type Status string

const (
	// StatusScheduled is the initial state of every session.
	StatusScheduled Status = "scheduled"
	// StatusInProgress marks a session whose recording has started.
	StatusInProgress Status = "in-progress"
	// StatusCompleted is a terminal state for finished sessions.
	StatusCompleted Status = "completed"
	// StatusCancelled is a terminal state; cancelled sessions free their slot.
	StatusCancelled Status = "cancelled"
)

// legal lifecycle edges: scheduled -> in-progress -> completed, with
// cancellation possible from either non-terminal state.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// ValidStatus reports whether the value is one of the four session states.
func ValidStatus(status Status) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves the given status.
func Terminal(status Status) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// CanTransition reports whether moving from one status to another is a legal
// lifecycle edge. Setting a session to its current status is not an edge.
func CanTransition(from, to Status) bool {
	if Terminal(from) {
		return false
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
