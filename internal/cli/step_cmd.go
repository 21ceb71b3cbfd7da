package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/steplens/internal/render"
	"github.com/AbdelazizMoustafa10m/steplens/internal/steps"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// stepMatch is a step found in one of the loaded TaskRuns.
type stepMatch struct {
	TaskRun string               `json:"taskRun"`
	Step    steps.ReconciledStep `json:"step"`
}

// newStepCmd creates the "steplens step" command.
func newStepCmd() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "step ID FILE|GLOB|- ...",
		Short: "Show the details of one step",
		Long: `Show the reconciled state of the step with the given ID: its status,
exit code, image, start and finish times and the container's termination
message. The ID is the name the controller reports, so a step declared
without a name is addressed as "unnamed-<n>".`,
		Example: `  steplens step compile run.yaml
  steplens step unnamed-1 --taskrun build-run-x7k2p runs/*.yaml`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, args[0], args[1:], flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newStepCmd())
}

func runStep(cmd *cobra.Command, id string, args []string, flags inputFlags) error {
	s, err := openSession(cmd, args, &flags, flags.overrides(cmd))
	if err != nil {
		return err
	}
	runs, err := s.taskRuns(flags.TaskRun)
	if err != nil {
		return err
	}

	var matches []stepMatch
	for _, tr := range runs {
		list, err := s.reconcile(tr, "")
		if err != nil {
			return err
		}
		if step, ok := steps.FindStep(id, list); ok {
			matches = append(matches, stepMatch{TaskRun: tr.Metadata.Name, Step: step})
		}
	}

	switch len(matches) {
	case 0:
		return fmt.Errorf("step %q not found", id)
	case 1:
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.TaskRun)
		}
		return fmt.Errorf("step %q found in %d taskruns (%s); select one with --taskrun",
			id, len(matches), strings.Join(names, ", "))
	}

	m := matches[0]
	if s.cfg.Display.JSON {
		return render.JSON(cmd.OutOrStdout(), m)
	}

	tr, _ := s.bundle.TaskRun(m.TaskRun)
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, taskRunTitle(tr.Metadata.Name, tr.Metadata.Namespace, tekton.Classify(tr.Succeeded())))
	fmt.Fprint(w, render.StepDetail(m.Step, s.render))
	return nil
}
