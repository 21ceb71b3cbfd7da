package steps

// Counts tallies reconciled steps by state.
type Counts struct {
	Total     int `json:"total"`
	Waiting   int `json:"waiting"`
	Running   int `json:"running"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	// NotRun counts steps whose status was cleared or never reported.
	NotRun int `json:"notRun"`
}

// Finished is the number of steps that reached a terminal state.
func (c Counts) Finished() int {
	return c.Succeeded + c.Failed
}

// Fraction is Finished over Total, or 0 for an empty run.
func (c Counts) Fraction() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Finished()) / float64(c.Total)
}

// Summarize counts steps by state. A terminated step with a non-zero exit
// code is a failure.
func Summarize(steps []ReconciledStep) Counts {
	c := Counts{Total: len(steps)}
	for _, s := range steps {
		switch s.Status {
		case StatusWaiting:
			c.Waiting++
		case StatusRunning:
			c.Running++
		case StatusTerminated:
			if s.ExitCode != nil && *s.ExitCode != 0 {
				c.Failed++
			} else {
				c.Succeeded++
			}
		default:
			c.NotRun++
		}
	}
	return c
}
