// Package tekton models the subset of the Tekton Pipelines resource schema that
// steplens reads: Tasks, TaskRuns, their declared steps and the runtime step
// states reported in TaskRun status.
//
// Field names follow the Kubernetes JSON wire names so that the output of
// `kubectl get taskrun -o json` and `-o yaml` decodes without translation.
package tekton

import "time"

// Resource kinds recognised by Decode.
const (
	KindTask        = "Task"
	KindTaskRun     = "TaskRun"
	KindTaskList    = "TaskList"
	KindTaskRunList = "TaskRunList"
	KindList        = "List"
)

// ConditionSucceeded is the condition type Tekton uses to report run outcome.
const ConditionSucceeded = "Succeeded"

// Condition status values.
const (
	StatusTrue    = "True"
	StatusFalse   = "False"
	StatusUnknown = "Unknown"
)

// ReasonRunning is the condition and step reason reported while work is in progress.
const ReasonRunning = "Running"

// ObjectMeta is the metadata block shared by all resources.
type ObjectMeta struct {
	Name              string            `json:"name,omitempty"`
	Namespace         string            `json:"namespace,omitempty"`
	UID               string            `json:"uid,omitempty"`
	Labels            map[string]string `json:"labels,omitempty"`
	CreationTimestamp time.Time         `json:"creationTimestamp,omitzero"`
}

// Step is a container declared in a Task spec. Name may be empty, in which
// case the controller reports it at runtime under a synthetic name.
type Step struct {
	Name    string   `json:"name,omitempty"`
	Image   string   `json:"image,omitempty"`
	Script  string   `json:"script,omitempty"`
	Command []string `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// TaskSpec is the declared body of a Task.
type TaskSpec struct {
	Description string `json:"description,omitempty"`
	Steps       []Step `json:"steps,omitempty"`
}

// Task is a declared, reusable sequence of steps.
type Task struct {
	APIVersion string     `json:"apiVersion,omitempty"`
	Kind       string     `json:"kind,omitempty"`
	Metadata   ObjectMeta `json:"metadata"`
	Spec       TaskSpec   `json:"spec"`
}

// ContainerStateWaiting describes a step container that has not started.
type ContainerStateWaiting struct {
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ContainerStateRunning describes a step container that is executing.
type ContainerStateRunning struct {
	StartedAt time.Time `json:"startedAt,omitzero"`
}

// ContainerStateTerminated describes a step container that has exited.
type ContainerStateTerminated struct {
	ExitCode    int32     `json:"exitCode"`
	Reason      string    `json:"reason,omitempty"`
	Message     string    `json:"message,omitempty"`
	StartedAt   time.Time `json:"startedAt,omitzero"`
	FinishedAt  time.Time `json:"finishedAt,omitzero"`
	ContainerID string    `json:"containerID,omitempty"`
}

// StepState is the runtime record of one step container. At most one of
// Waiting, Running and Terminated is set.
type StepState struct {
	Name       string                    `json:"name,omitempty"`
	Container  string                    `json:"container,omitempty"`
	ImageID    string                    `json:"imageID,omitempty"`
	Waiting    *ContainerStateWaiting    `json:"waiting,omitempty"`
	Running    *ContainerStateRunning    `json:"running,omitempty"`
	Terminated *ContainerStateTerminated `json:"terminated,omitempty"`
}

// Clone returns a deep copy of s so callers can rewrite nested payloads
// without touching the original.
func (s StepState) Clone() StepState {
	out := s
	if s.Waiting != nil {
		w := *s.Waiting
		out.Waiting = &w
	}
	if s.Running != nil {
		r := *s.Running
		out.Running = &r
	}
	if s.Terminated != nil {
		t := *s.Terminated
		out.Terminated = &t
	}
	return out
}

// Condition is a Kubernetes-style status condition.
type Condition struct {
	Type               string    `json:"type,omitempty"`
	Status             string    `json:"status,omitempty"`
	Reason             string    `json:"reason,omitempty"`
	Message            string    `json:"message,omitempty"`
	LastTransitionTime time.Time `json:"lastTransitionTime,omitzero"`
}

// TaskRef names a Task resource.
type TaskRef struct {
	Name string `json:"name,omitempty"`
	Kind string `json:"kind,omitempty"`
}

// TaskRunSpec is the requested configuration of a TaskRun.
type TaskRunSpec struct {
	TaskRef  *TaskRef  `json:"taskRef,omitempty"`
	TaskSpec *TaskSpec `json:"taskSpec,omitempty"`
}

// TaskRunStatus is the observed state of a TaskRun.
type TaskRunStatus struct {
	Conditions     []Condition `json:"conditions,omitempty"`
	PodName        string      `json:"podName,omitempty"`
	StartTime      time.Time   `json:"startTime,omitzero"`
	CompletionTime time.Time   `json:"completionTime,omitzero"`
	Steps          []StepState `json:"steps,omitempty"`
	TaskSpec       *TaskSpec   `json:"taskSpec,omitempty"`
}

// TaskRun is a single execution of a Task.
type TaskRun struct {
	APIVersion string        `json:"apiVersion,omitempty"`
	Kind       string        `json:"kind,omitempty"`
	Metadata   ObjectMeta    `json:"metadata"`
	Spec       TaskRunSpec   `json:"spec"`
	Status     TaskRunStatus `json:"status"`
}

// Succeeded returns the TaskRun's Succeeded condition, or the zero Condition.
func (tr TaskRun) Succeeded() Condition {
	return GetStatus(tr.Status.Conditions)
}

// DeclaredSteps resolves the steps the TaskRun was asked to execute. The
// resolved spec recorded in status wins over an inline spec, which wins over a
// referenced Task looked up by name in tasks. Returns nil when none resolve.
func (tr TaskRun) DeclaredSteps(tasks []Task) []Step {
	if tr.Status.TaskSpec != nil {
		return tr.Status.TaskSpec.Steps
	}
	if tr.Spec.TaskSpec != nil {
		return tr.Spec.TaskSpec.Steps
	}
	if tr.Spec.TaskRef == nil || tr.Spec.TaskRef.Name == "" {
		return nil
	}
	for _, t := range tasks {
		if t.Metadata.Name == tr.Spec.TaskRef.Name {
			return t.Spec.Steps
		}
	}
	return nil
}

// Duration returns the wall-clock time between start and completion. A run
// that has not completed is measured up to now; an unstarted run is zero.
func (tr TaskRun) Duration(now time.Time) time.Duration {
	start := tr.Status.StartTime
	if start.IsZero() {
		return 0
	}
	end := tr.Status.CompletionTime
	if end.IsZero() {
		end = now
	}
	if end.Before(start) {
		return 0
	}
	return end.Sub(start)
}
