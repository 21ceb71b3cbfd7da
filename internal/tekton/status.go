package tekton

// Phase is a coarse classification of a Succeeded condition.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseRunning   Phase = "running"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// GetStatus returns the condition of type Succeeded from conditions. When the
// list is empty or carries no such condition the zero Condition is returned.
func GetStatus(conditions []Condition) Condition {
	for _, c := range conditions {
		if c.Type == ConditionSucceeded {
			return c
		}
	}
	return Condition{}
}

// IsRunning reports whether a reason/status pair describes in-progress work.
func IsRunning(reason, status string) bool {
	return reason == ReasonRunning && status == StatusUnknown
}

// Classify maps a Succeeded condition onto a Phase.
func Classify(c Condition) Phase {
	switch {
	case IsRunning(c.Reason, c.Status):
		return PhaseRunning
	case c.Status == StatusTrue:
		return PhaseSucceeded
	case c.Status == StatusFalse:
		return PhaseFailed
	default:
		return PhasePending
	}
}
