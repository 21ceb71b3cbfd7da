package steps

import (
	"strconv"
	"testing"

	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// benchSteps builds a declared list of n steps (every third one unnamed) and
// the matching runtime list in reverse order with a failure in the middle.
func benchSteps(n int) ([]tekton.Step, []tekton.StepState) {
	r := New(DefaultOptions())
	decl := make([]tekton.Step, n)
	runtime := make([]tekton.StepState, n)
	for i := range n {
		if i%3 != 0 {
			decl[i].Name = "step-" + strconv.Itoa(i)
		}
		reason := "Completed"
		if i == n/2 {
			reason = "Error"
		}
		runtime[n-1-i] = tekton.StepState{
			Name:       r.RuntimeName(i, decl[i]),
			Terminated: &tekton.ContainerStateTerminated{Reason: reason},
		}
	}
	return decl, runtime
}

// BenchmarkReconcile measures reordering, annotation and clearing of a
// 50-step TaskRun.
func BenchmarkReconcile(b *testing.B) {
	decl, runtime := benchSteps(50)
	r := New(DefaultOptions())
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		out := r.ClearUnexecuted(r.Reconcile(decl, runtime))
		if len(out) != 50 {
			b.Fatalf("got %d steps, want 50", len(out))
		}
	}
}

// BenchmarkReorder measures Reorder alone on the same input.
func BenchmarkReorder(b *testing.B) {
	decl, runtime := benchSteps(50)
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		_ = Reorder(runtime, decl)
	}
}
