package steps

import "github.com/AbdelazizMoustafa10m/steplens/internal/tekton"

// FindStep returns the step with the given id.
func FindStep(id string, steps []ReconciledStep) (ReconciledStep, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return ReconciledStep{}, false
}

// SelectedTask returns the task named name.
func SelectedTask(name string, tasks []tekton.Task) (tekton.Task, bool) {
	for _, t := range tasks {
		if t.Metadata.Name == name {
			return t, true
		}
	}
	return tekton.Task{}, false
}
