// Package steps reconciles the runtime step states reported on a TaskRun with
// the step order declared by its Task.
//
// The controller reports step states in no guaranteed order and names steps
// that were declared without a name "unnamed-<n>", where n is the step's
// 1-based position in the declaration. Reconciler puts the runtime records
// back into declared order, annotates each with a status and reason, and can
// blank out stale status on steps that never ran because an earlier step
// failed.
//
// All functions are pure: inputs are never modified and results are freshly
// allocated.
package steps

import (
	"strconv"
	"time"

	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// Status is the container state a reconciled step was last observed in.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusRunning    Status = "running"
	StatusTerminated Status = "terminated"
)

// ReconciledStep is a runtime step annotated with its declared metadata.
type ReconciledStep struct {
	// ID identifies the step within its TaskRun. It equals the runtime name.
	ID string `json:"id"`
	// Name is the display name: the declared name, or the synthetic
	// "unnamed-<n>" name for steps declared without one.
	Name string `json:"name"`
	// StepName is the name the controller reported the step under.
	StepName string `json:"stepName"`
	Image    string `json:"image,omitempty"`
	Status   Status `json:"status"`
	Reason   string `json:"reason"`
	// Declared is false for runtime steps with no declared counterpart, such
	// as init steps injected by the controller.
	Declared   bool             `json:"declared"`
	ExitCode   *int32           `json:"exitCode,omitempty"`
	StartedAt  time.Time        `json:"startedAt,omitzero"`
	FinishedAt time.Time        `json:"finishedAt,omitzero"`
	State      tekton.StepState `json:"stepStatus"`
}

// Duration is how long the step ran. Running steps are measured up to now.
func (s ReconciledStep) Duration(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	end := s.FinishedAt
	if end.IsZero() {
		if s.Status != StatusRunning {
			return 0
		}
		end = now
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

// Options tunes how runtime steps are matched and how failures propagate.
type Options struct {
	// UnnamedPrefix and UnnamedIndexBase build the runtime name of a step
	// declared without a name: prefix + (position + base).
	UnnamedPrefix    string
	UnnamedIndexBase int
	// ErrorReason is the step reason that marks a failed step.
	ErrorReason string
	// ClearUnexecuted makes ForTaskRun blank out steps after a failure.
	ClearUnexecuted bool
}

// DefaultOptions returns the options matching Tekton controller behaviour.
func DefaultOptions() Options {
	return Options{
		UnnamedPrefix:    "unnamed-",
		UnnamedIndexBase: 1,
		ErrorReason:      "Error",
		ClearUnexecuted:  true,
	}
}

// Reconciler applies Options to the reconciliation operations.
type Reconciler struct {
	opts Options
}

// New returns a Reconciler using opts.
func New(opts Options) *Reconciler {
	return &Reconciler{opts: opts}
}

var defaultReconciler = New(DefaultOptions())

// RuntimeName returns the name the controller reports for the declared step
// at 0-based position i.
func (r *Reconciler) RuntimeName(i int, step tekton.Step) string {
	if step.Name != "" {
		return step.Name
	}
	return r.opts.UnnamedPrefix + strconv.Itoa(i+r.opts.UnnamedIndexBase)
}

// Reorder returns the runtime steps in declared order using default options.
func Reorder(unordered []tekton.StepState, ordered []tekton.Step) []tekton.StepState {
	return defaultReconciler.Reorder(unordered, ordered)
}

// Reconcile annotates runtime steps in declared order using default options.
func Reconcile(declared []tekton.Step, runtime []tekton.StepState) []ReconciledStep {
	return defaultReconciler.Reconcile(declared, runtime)
}

// ClearUnexecuted blanks the status of steps after the first failure using
// default options.
func ClearUnexecuted(steps []ReconciledStep) []ReconciledStep {
	return defaultReconciler.ClearUnexecuted(steps)
}

// ForTaskRun reconciles a TaskRun's steps using default options.
func ForTaskRun(tr tekton.TaskRun, tasks []tekton.Task) []ReconciledStep {
	return defaultReconciler.ForTaskRun(tr, tasks)
}
