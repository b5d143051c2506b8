package terminator

// Outcome is the terminal disposition of one termination run.
type Outcome int

const (
	// AlreadyFree means the occupant set was empty; no signal was sent.
	AlreadyFree Outcome = iota
	// GracefullyStopped means every occupant exited within the grace window.
	GracefullyStopped
	// ForcefullyStopped means at least one occupant needed SIGKILL.
	ForcefullyStopped
	// StillOccupied means occupants survived both escalation tiers.
	StillOccupied
)

func (o Outcome) String() string {
	switch o {
	case AlreadyFree:
		return "already-free"
	case GracefullyStopped:
		return "gracefully-stopped"
	case ForcefullyStopped:
		return "forcefully-stopped"
	case StillOccupied:
		return "still-occupied"
	default:
		return "unknown"
	}
}

// Freed reports whether the port ended up unoccupied.
func (o Outcome) Freed() bool { return o != StillOccupied }
