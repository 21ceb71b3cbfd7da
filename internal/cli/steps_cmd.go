package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/steplens/internal/render"
	"github.com/AbdelazizMoustafa10m/steplens/internal/steps"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// stepsFlags holds the flag values for the steps command.
type stepsFlags struct {
	inputFlags
	TaskName string // --task-name, reconcile against this Task instead
	NoClear  bool   // --no-clear, keep the reported status of steps after a failure
}

// taskRunSteps is the JSON output for one TaskRun.
type taskRunSteps struct {
	Name      string                 `json:"name"`
	Namespace string                 `json:"namespace,omitempty"`
	Phase     tekton.Phase           `json:"phase"`
	Steps     []steps.ReconciledStep `json:"steps"`
}

// newStepsCmd creates the "steplens steps" command.
func newStepsCmd() *cobra.Command {
	var flags stepsFlags

	cmd := &cobra.Command{
		Use:   "steps FILE|GLOB|- ...",
		Short: "List the steps of each TaskRun in declared order",
		Long: `Reconcile the runtime step states of every TaskRun in the input with the
steps its Task declares, and print them in declared order.

Steps the controller injected (such as git-source) are listed after the
declared steps and marked "(init)". Task definitions are read from the same
inputs or from --task files; a TaskRun's embedded taskSpec wins over both.`,
		Example: `  # Steps of a TaskRun exported with kubectl
  kubectl get taskrun build-run-x7k2p -o yaml | steplens steps -

  # Resolve taskRef against Task definitions in another directory
  steplens steps --task 'tasks/**/*.yaml' runs/*.yaml

  # Keep the status the controller reported for steps after a failure
  steplens steps --no-clear run.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(cmd, args, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.TaskName, "task-name", "", "Reconcile against the Task with this name instead of the TaskRun's taskRef")
	cmd.Flags().BoolVar(&flags.NoClear, "no-clear", false, "Do not clear the status of steps after the first failure (env: STEPLENS_CLEAR_UNEXECUTED=false)")

	return cmd
}

func init() {
	rootCmd.AddCommand(newStepsCmd())
}

func runSteps(cmd *cobra.Command, args []string, flags stepsFlags) error {
	overrides := flags.overrides(cmd)
	if flags.NoClear {
		clearSteps := false
		overrides.ClearUnexecuted = &clearSteps
	}

	s, err := openSession(cmd, args, &flags.inputFlags, overrides)
	if err != nil {
		return err
	}
	runs, err := s.taskRuns(flags.TaskRun)
	if err != nil {
		return err
	}

	out := make([]taskRunSteps, 0, len(runs))
	for _, tr := range runs {
		list, err := s.reconcile(tr, flags.TaskName)
		if err != nil {
			return err
		}
		out = append(out, taskRunSteps{
			Name:      tr.Metadata.Name,
			Namespace: tr.Metadata.Namespace,
			Phase:     tekton.Classify(tr.Succeeded()),
			Steps:     list,
		})
	}

	if s.cfg.Display.JSON {
		return render.JSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	for i, run := range out {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, taskRunTitle(run.Name, run.Namespace, run.Phase))
		fmt.Fprintln(w, render.StepsTable(run.Steps, s.render))
	}
	return nil
}

// taskRunTitle renders "name (namespace)  phase".
func taskRunTitle(name, namespace string, phase tekton.Phase) string {
	title := name
	if namespace != "" {
		title += " (" + namespace + ")"
	}
	return styleHeader.Render(title) + "  " + render.PhaseStyle(phase).Render(string(phase))
}

