package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/steplens/internal/render"
	"github.com/AbdelazizMoustafa10m/steplens/internal/steps"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// statusOutput is the JSON output for one TaskRun.
type statusOutput struct {
	Name           string       `json:"name"`
	Namespace      string       `json:"namespace,omitempty"`
	Phase          tekton.Phase `json:"phase"`
	Reason         string       `json:"reason,omitempty"`
	Message        string       `json:"message,omitempty"`
	PodName        string       `json:"podName,omitempty"`
	StartTime      time.Time    `json:"startTime,omitzero"`
	CompletionTime time.Time    `json:"completionTime,omitzero"`
	Duration       string       `json:"duration"`
	Steps          steps.Counts `json:"steps"`
}

// newStatusCmd creates the "steplens status" command.
func newStatusCmd() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "status FILE|GLOB|- ...",
		Short: "Summarize each TaskRun with a step progress bar",
		Long: `Print one summary per TaskRun: its phase, the reason and message of its
Succeeded condition, when it started and how long it ran, and a progress bar
of finished steps.

Use --json for structured output suitable for scripting.`,
		Example: `  # All TaskRuns in a directory tree
  steplens status 'runs/**/*.yaml'

  # Structured JSON output
  kubectl get taskruns -o json | steplens status --json -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

// runStatus is the command's RunE function. Loads config and inputs,
// reconciles each TaskRun and renders one summary per run.
func runStatus(cmd *cobra.Command, args []string, flags inputFlags) error {
	s, err := openSession(cmd, args, &flags, flags.overrides(cmd))
	if err != nil {
		return err
	}
	runs, err := s.taskRuns(flags.TaskRun)
	if err != nil {
		return err
	}

	if s.cfg.Display.JSON {
		out := make([]statusOutput, 0, len(runs))
		for _, tr := range runs {
			list, err := s.reconcile(tr, "")
			if err != nil {
				return err
			}
			out = append(out, buildStatusOutput(tr, list, s.render.Now))
		}
		return render.JSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	for _, tr := range runs {
		list, err := s.reconcile(tr, "")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, render.TaskRunSummary(tr, list, s.render))
	}
	return nil
}

func buildStatusOutput(tr tekton.TaskRun, list []steps.ReconciledStep, now time.Time) statusOutput {
	cond := tr.Succeeded()
	return statusOutput{
		Name:           tr.Metadata.Name,
		Namespace:      tr.Metadata.Namespace,
		Phase:          tekton.Classify(cond),
		Reason:         cond.Reason,
		Message:        cond.Message,
		PodName:        tr.Status.PodName,
		StartTime:      tr.Status.StartTime,
		CompletionTime: tr.Status.CompletionTime,
		Duration:       render.FormatDuration(tr.Duration(now)),
		Steps:          steps.Summarize(list),
	}
}
