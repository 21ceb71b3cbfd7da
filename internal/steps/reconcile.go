package steps

import (
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// match pairs a runtime step with the declared step that claimed it.
type match struct {
	state    tekton.StepState
	declared *tekton.Step
}

// Reorder returns the runtime steps arranged in declared order. Each declared
// slot takes the first unclaimed runtime step with its runtime name, so
// same-named runtime steps keep their relative order. Slots without a
// runtime record are omitted, as are runtime steps no slot claims.
//
// If either input is nil the result is an empty slice.
func (r *Reconciler) Reorder(unordered []tekton.StepState, ordered []tekton.Step) []tekton.StepState {
	if unordered == nil || ordered == nil {
		return []tekton.StepState{}
	}

	matched, _ := r.pair(unordered, ordered)
	out := make([]tekton.StepState, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.state)
	}
	return out
}

// Reconcile orders runtime by declared and annotates each step with its status
// and reason. Runtime steps without a declared counterpart follow the declared
// ones in the order they were reported. A nil runtime list yields an empty
// slice.
func (r *Reconciler) Reconcile(declared []tekton.Step, runtime []tekton.StepState) []ReconciledStep {
	if runtime == nil {
		return []ReconciledStep{}
	}

	matched, rest := r.pair(runtime, declared)
	out := make([]ReconciledStep, 0, len(runtime))
	for _, m := range matched {
		out = append(out, annotate(m))
	}
	for _, s := range rest {
		out = append(out, annotate(match{state: s}))
	}
	return out
}

// ForTaskRun resolves the TaskRun's declared steps (see
// tekton.TaskRun.DeclaredSteps), reconciles its runtime steps against them and,
// when enabled, clears steps that never ran after a failure.
func (r *Reconciler) ForTaskRun(tr tekton.TaskRun, tasks []tekton.Task) []ReconciledStep {
	out := r.Reconcile(tr.DeclaredSteps(tasks), tr.Status.Steps)
	if r.opts.ClearUnexecuted {
		out = r.ClearUnexecuted(out)
	}
	return out
}

// pair walks the declared steps in order and claims a runtime step for each.
// It returns the claimed pairs in declared order and the unclaimed runtime
// steps in their original order.
func (r *Reconciler) pair(runtime []tekton.StepState, declared []tekton.Step) ([]match, []tekton.StepState) {
	claimed := make([]bool, len(runtime))
	matched := make([]match, 0, len(declared))

	for i := range declared {
		name := r.RuntimeName(i, declared[i])
		for j := range runtime {
			if claimed[j] || runtime[j].Name != name {
				continue
			}
			claimed[j] = true
			matched = append(matched, match{state: runtime[j], declared: &declared[i]})
			break
		}
	}

	var rest []tekton.StepState
	for j, ok := range claimed {
		if !ok {
			rest = append(rest, runtime[j])
		}
	}
	return matched, rest
}

func annotate(m match) ReconciledStep {
	state := m.state.Clone()
	step := ReconciledStep{
		ID:       state.Name,
		Name:     state.Name,
		StepName: state.Name,
		Declared: m.declared != nil,
		State:    state,
	}
	if m.declared != nil {
		step.Image = m.declared.Image
	}

	switch {
	case state.Terminated != nil:
		t := state.Terminated
		step.Status = StatusTerminated
		step.Reason = t.Reason
		code := t.ExitCode
		step.ExitCode = &code
		step.StartedAt = t.StartedAt
		step.FinishedAt = t.FinishedAt
	case state.Running != nil:
		step.Status = StatusRunning
		step.Reason = tekton.ReasonRunning
		step.StartedAt = state.Running.StartedAt
	case state.Waiting != nil:
		step.Status = StatusWaiting
		step.Reason = state.Waiting.Reason
	}
	return step
}
