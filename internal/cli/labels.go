package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/steplens/internal/render"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// labelsOutput is the JSON output for one TaskRun.
type labelsOutput struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
}

// newLabelsCmd creates the "steplens labels" command.
func newLabelsCmd() *cobra.Command {
	var flags inputFlags

	cmd := &cobra.Command{
		Use:   "labels FILE|GLOB|- ...",
		Short: "Print the labels of each TaskRun as \"key: value\" lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabels(cmd, args, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newLabelsCmd())
}

func runLabels(cmd *cobra.Command, args []string, flags inputFlags) error {
	s, err := openSession(cmd, args, &flags, flags.overrides(cmd))
	if err != nil {
		return err
	}
	runs, err := s.taskRuns(flags.TaskRun)
	if err != nil {
		return err
	}

	out := make([]labelsOutput, 0, len(runs))
	for _, tr := range runs {
		out = append(out, labelsOutput{
			Name:   tr.Metadata.Name,
			Labels: tekton.FormatLabels(tr.Metadata.Labels),
		})
	}

	if s.cfg.Display.JSON {
		return render.JSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	for i, o := range out {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styleHeader.Render(o.Name))
		if len(o.Labels) == 0 {
			fmt.Fprintln(w, "  (no labels)")
			continue
		}
		for _, l := range o.Labels {
			fmt.Fprintln(w, "  "+l)
		}
	}
	return nil
}
