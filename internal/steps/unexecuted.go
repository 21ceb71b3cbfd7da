package steps

// ClearUnexecuted returns a copy of steps in which every step after the first
// failed step (reason equal to the configured error reason) has its reason,
// status and terminated reason blanked. Those steps were reported by the
// controller but never actually executed. The failed step and the steps before
// it are unchanged.
//
// A nil input yields nil.
func (r *Reconciler) ClearUnexecuted(steps []ReconciledStep) []ReconciledStep {
	if steps == nil {
		return nil
	}

	out := make([]ReconciledStep, len(steps))
	failed := false
	for i, s := range steps {
		s.State = s.State.Clone()
		switch {
		case failed:
			s.Reason = ""
			s.Status = ""
			if s.State.Terminated != nil {
				s.State.Terminated.Reason = ""
			}
		case s.Reason == r.opts.ErrorReason:
			failed = true
		}
		out[i] = s
	}
	return out
}
