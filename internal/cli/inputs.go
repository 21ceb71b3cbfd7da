package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/steplens/internal/config"
	"github.com/AbdelazizMoustafa10m/steplens/internal/logging"
	"github.com/AbdelazizMoustafa10m/steplens/internal/render"
	"github.com/AbdelazizMoustafa10m/steplens/internal/source"
	"github.com/AbdelazizMoustafa10m/steplens/internal/steps"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// errNoTaskRuns is returned when the inputs contain no TaskRun.
var errNoTaskRuns = errors.New("no taskruns found in input")

// inputFlags are the flags shared by commands that read TaskRun files.
type inputFlags struct {
	Tasks       []string // --task, extra files holding Task definitions
	TaskRun     string   // --taskrun, restrict output to one TaskRun
	JSON        bool     // --json
	Concurrency int      // --concurrency
	TimeFormat  string   // --time-format
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.Tasks, "task", nil, "File or glob with Task definitions (repeatable)")
	cmd.Flags().StringVar(&f.TaskRun, "taskrun", "", "Only show the TaskRun with this name")
	cmd.Flags().BoolVar(&f.JSON, "json", false, "Output structured JSON to stdout")
	cmd.Flags().IntVar(&f.Concurrency, "concurrency", source.DefaultConcurrency, "Number of files decoded in parallel (env: STEPLENS_CONCURRENCY)")
	cmd.Flags().StringVar(&f.TimeFormat, "time-format", render.TimeRelative, "Time format: relative or rfc3339 (env: STEPLENS_TIME_FORMAT)")
}

// overrides converts the flags the user set into config overrides.
func (f *inputFlags) overrides(cmd *cobra.Command) *config.CLIOverrides {
	o := &config.CLIOverrides{}
	if cmd.Flags().Changed("json") {
		o.JSON = &f.JSON
	}
	if cmd.Flags().Changed("concurrency") {
		o.Concurrency = &f.Concurrency
	}
	if cmd.Flags().Changed("time-format") {
		o.TimeFormat = &f.TimeFormat
	}
	return o
}

// session holds everything a command needs after its inputs are loaded.
type session struct {
	cfg        *config.Config
	bundle     *source.Bundle
	reconciler *steps.Reconciler
	render     render.Options
}

// openSession resolves configuration, then expands and loads args plus the
// --task files.
func openSession(cmd *cobra.Command, args []string, flags *inputFlags, overrides *config.CLIOverrides) (*session, error) {
	logger := logging.New("cli")

	resolved, meta, err := loadAndResolveConfig(overrides)
	if err != nil {
		return nil, err
	}
	vr := config.Validate(resolved.Config, meta)
	for _, w := range vr.Warnings() {
		logger.Warn("config", "field", w.Field, "issue", w.Message)
	}
	if vr.HasErrors() {
		msgs := make([]string, 0, len(vr.Errors()))
		for _, e := range vr.Errors() {
			msgs = append(msgs, e.Field+": "+e.Message)
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	cfg := resolved.Config

	patterns := append(append([]string{}, args...), flags.Tasks...)
	paths, err := source.Expand(patterns)
	if err != nil {
		return nil, err
	}

	loader := &source.Loader{Concurrency: cfg.Load.Concurrency, Stdin: cmd.InOrStdin()}
	bundle, err := loader.Load(cmd.Context(), paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("inputs loaded",
		"files", len(paths),
		"taskruns", len(bundle.TaskRuns),
		"tasks", len(bundle.Tasks),
	)

	return &session{
		cfg:    cfg,
		bundle: bundle,
		reconciler: steps.New(steps.Options{
			UnnamedPrefix:    cfg.Steps.UnnamedPrefix,
			UnnamedIndexBase: cfg.Steps.IndexBase(),
			ErrorReason:      cfg.Steps.ErrorReason,
			ClearUnexecuted:  cfg.Steps.ClearsUnexecuted(),
		}),
		render: render.Options{TimeFormat: cfg.Display.TimeFormat, Now: time.Now()},
	}, nil
}

// taskRuns returns the TaskRuns to report on: the one named name, or all of
// them when name is empty.
func (s *session) taskRuns(name string) ([]tekton.TaskRun, error) {
	if name != "" {
		tr, ok := s.bundle.TaskRun(name)
		if !ok {
			return nil, fmt.Errorf("taskrun %q not found in input", name)
		}
		return []tekton.TaskRun{tr}, nil
	}
	if len(s.bundle.TaskRuns) == 0 {
		return nil, errNoTaskRuns
	}
	return s.bundle.TaskRuns, nil
}

// reconcile returns the steps of tr against the Task it declares, or against
// the Task named taskName when set.
func (s *session) reconcile(tr tekton.TaskRun, taskName string) ([]steps.ReconciledStep, error) {
	if taskName == "" {
		return s.reconciler.ForTaskRun(tr, s.bundle.Tasks), nil
	}
	task, ok := steps.SelectedTask(taskName, s.bundle.Tasks)
	if !ok {
		return nil, fmt.Errorf("task %q not found in input", taskName)
	}
	list := s.reconciler.Reconcile(task.Spec.Steps, tr.Status.Steps)
	if s.cfg.Steps.ClearsUnexecuted() {
		list = s.reconciler.ClearUnexecuted(list)
	}
	return list, nil
}
