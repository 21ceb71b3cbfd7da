// Package render formats reconciled steps and TaskRun summaries for the
// terminal. Human-readable output uses lipgloss styles, which degrade to plain
// text when the color profile is Ascii (--no-color).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/AbdelazizMoustafa10m/steplens/internal/steps"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// Time formats accepted by Options.TimeFormat.
const (
	TimeRelative = "relative"
	TimeRFC3339  = "rfc3339"
)

var (
	green  = lipgloss.Color("10")
	yellow = lipgloss.Color("11")
	red    = lipgloss.Color("9")
	grey   = lipgloss.Color("8")
	purple = lipgloss.Color("99")
	faint  = lipgloss.Color("238")

	styleHeader = lipgloss.NewStyle().Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(grey)
)

// Options controls human-readable output.
type Options struct {
	// TimeFormat is TimeRelative or TimeRFC3339.
	TimeFormat string
	// Now anchors relative times and the duration of unfinished work.
	Now time.Time
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// FormatDuration renders d as space-separated hour, minute and second
// components, omitting leading zero components: "2h 1m 10s", "1m 1s", "1s".
// Sub-second and negative durations render as "0s".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if h > 0 || m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

// RelativeTime describes t relative to now ("3 minutes ago"). The zero time
// renders as "".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Timestamp formats t according to opts.
func Timestamp(t time.Time, opts Options) string {
	if t.IsZero() {
		return ""
	}
	if opts.TimeFormat == TimeRFC3339 {
		return t.UTC().Format(time.RFC3339)
	}
	return RelativeTime(t, opts.now())
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PhaseStyle returns the style used for a TaskRun phase.
func PhaseStyle(p tekton.Phase) lipgloss.Style {
	switch p {
	case tekton.PhaseSucceeded:
		return lipgloss.NewStyle().Foreground(green)
	case tekton.PhaseRunning:
		return lipgloss.NewStyle().Foreground(yellow)
	case tekton.PhaseFailed:
		return lipgloss.NewStyle().Foreground(red)
	default:
		return lipgloss.NewStyle().Foreground(grey)
	}
}

// StepLabel returns the display label of a step: its reason when set, else
// its status, else "not run".
func StepLabel(s steps.ReconciledStep) string {
	switch {
	case s.Reason != "":
		return s.Reason
	case s.Status != "":
		return string(s.Status)
	default:
		return "not run"
	}
}

func stepStyle(s steps.ReconciledStep) lipgloss.Style {
	switch s.Status {
	case steps.StatusTerminated:
		if s.ExitCode != nil && *s.ExitCode != 0 {
			return lipgloss.NewStyle().Foreground(red)
		}
		return lipgloss.NewStyle().Foreground(green)
	case steps.StatusRunning:
		return lipgloss.NewStyle().Foreground(yellow)
	default:
		return lipgloss.NewStyle().Foreground(grey)
	}
}

// StepsTable renders reconciled steps as a bordered table.
func StepsTable(list []steps.ReconciledStep, opts Options) string {
	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		name := s.Name
		if !s.Declared {
			name += " (init)"
		}
		exit := ""
		if s.ExitCode != nil {
			exit = fmt.Sprintf("%d", *s.ExitCode)
		}
		duration := ""
		if !s.StartedAt.IsZero() {
			duration = FormatDuration(s.Duration(opts.now()))
		}
		rows = append(rows, []string{
			name,
			stepStyle(s).Render(StepLabel(s)),
			exit,
			s.Image,
			duration,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("STEP", "STATUS", "EXIT", "IMAGE", "DURATION").
		Rows(rows...)

	return t.Render()
}

// TaskRunSummary renders a header for tr followed by a progress bar of
// finished steps.
//
//	build-run-x7k2p (ci)  failed
//	  Failed: "step-compile" exited with code 1
//	  started 3 minutes ago, ran 2m 30s
//	  ██████████████░░░░░░ 2/3 steps finished, 1 failed
func TaskRunSummary(tr tekton.TaskRun, list []steps.ReconciledStep, opts Options) string {
	const progressBarWidth = 30

	cond := tr.Succeeded()
	phase := tekton.Classify(cond)

	title := tr.Metadata.Name
	if tr.Metadata.Namespace != "" {
		title += " (" + tr.Metadata.Namespace + ")"
	}

	var sb strings.Builder
	sb.WriteString(styleHeader.Render(title))
	sb.WriteString("  ")
	sb.WriteString(PhaseStyle(phase).Render(string(phase)))
	sb.WriteString("\n")

	if cond.Reason != "" || cond.Message != "" {
		line := cond.Reason
		if cond.Message != "" {
			if line != "" {
				line += ": "
			}
			line += cond.Message
		}
		sb.WriteString("  " + line + "\n")
	}

	if !tr.Status.StartTime.IsZero() {
		when := Timestamp(tr.Status.StartTime, opts)
		sb.WriteString(styleMuted.Render(fmt.Sprintf("  started %s, ran %s",
			when, FormatDuration(tr.Duration(opts.now())))))
		sb.WriteString("\n")
	}

	counts := steps.Summarize(list)
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(progressBarWidth),
		progress.WithoutPercentage(),
	)
	sb.WriteString("  ")
	sb.WriteString(bar.ViewAs(counts.Fraction()))
	sb.WriteString(fmt.Sprintf(" %d/%d steps finished", counts.Finished(), counts.Total))
	if counts.Failed > 0 {
		sb.WriteString(", ")
		sb.WriteString(lipgloss.NewStyle().Foreground(red).Render(fmt.Sprintf("%d failed", counts.Failed)))
	}
	if counts.NotRun > 0 {
		sb.WriteString(fmt.Sprintf(", %d not run", counts.NotRun))
	}
	sb.WriteString("\n")

	return sb.String()
}

// StepDetail renders key/value lines describing one step.
func StepDetail(s steps.ReconciledStep, opts Options) string {
	type kv struct{ key, value string }
	pairs := []kv{
		{"step", s.Name},
		{"status", StepLabel(s)},
		{"image", s.Image},
	}
	if s.ExitCode != nil {
		pairs = append(pairs, kv{"exit code", fmt.Sprintf("%d", *s.ExitCode)})
	}
	pairs = append(pairs,
		kv{"started", Timestamp(s.StartedAt, opts)},
		kv{"finished", Timestamp(s.FinishedAt, opts)},
	)
	if !s.StartedAt.IsZero() {
		pairs = append(pairs, kv{"duration", FormatDuration(s.Duration(opts.now()))})
	}
	if s.State.Terminated != nil {
		pairs = append(pairs,
			kv{"message", s.State.Terminated.Message},
			kv{"container id", s.State.Terminated.ContainerID},
		)
	}
	if s.State.Waiting != nil {
		pairs = append(pairs, kv{"message", s.State.Waiting.Message})
	}
	if !s.Declared {
		pairs = append(pairs, kv{"declared", "no (injected by the controller)"})
	}

	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}

	var sb strings.Builder
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		label := fmt.Sprintf("%-*s", width+1, p.key+":")
		sb.WriteString(styleMuted.Render(label) + " " + p.value + "\n")
	}
	return sb.String()
}
