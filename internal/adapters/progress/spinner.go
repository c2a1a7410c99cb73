package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	spinner      *spinner.Spinner
	out          io.Writer
	stages       []stageInfo
	currentStage usecase.ExecutionStage
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != "" && event.Stage != r.currentStage {
		r.enterStage(event.Stage)
	}

	if event.Stage == usecase.StageCompleted {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.describe(event)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// Durations returns how long each finished stage took
func (r *SpinnerProgressReporter) Durations() map[usecase.ExecutionStage]time.Duration {
	out := make(map[usecase.ExecutionStage]time.Duration)
	for _, s := range r.stages {
		if !s.EndTime.IsZero() {
			out[s.Stage] += s.EndTime.Sub(s.StartTime)
		}
	}
	return out
}

func (r *SpinnerProgressReporter) enterStage(stage usecase.ExecutionStage) {
	now := time.Now()
	if n := len(r.stages); n > 0 && r.stages[n-1].EndTime.IsZero() {
		r.stages[n-1].EndTime = now
	}
	r.currentStage = stage
	r.stages = append(r.stages, stageInfo{Stage: stage, StartTime: now})
}

func (r *SpinnerProgressReporter) describe(event usecase.ProgressEvent) string {
	msg := event.Message
	if msg == "" {
		msg = string(event.Stage)
	}
	if event.Total > 0 {
		msg = fmt.Sprintf("%s %s", color.New(color.Faint).Sprintf("[%d/%d]", event.Current, event.Total), msg)
	}
	return msg
}

func (r *SpinnerProgressReporter) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	print()
	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
