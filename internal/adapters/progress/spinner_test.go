package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

func TestSpinnerProgressReporter_Stages(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)
	ctx := context.Background()

	// the spinner only animates on a terminal, the suffix is kept regardless
	r.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageResolving, Message: "Resolving deployment plan", Spinner: true})
	assert.Contains(t, r.spinner.Suffix, "Resolving deployment plan")

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeploying, Current: 1, Total: 3, Message: "Deploying vault", Spinner: true})
	assert.Contains(t, r.spinner.Suffix, "[1/3] Deploying vault")

	r.Info("Deployed vault at 0xAAA0000000000000000000000000000000000AAA")
	r.Error("composer failed")

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageCompleted})
	assert.False(t, r.spinner.Active())

	assert.Contains(t, buf.String(), "Deployed vault at 0xAAA0000000000000000000000000000000000AAA\n")
	assert.Contains(t, buf.String(), "composer failed\n")
	durations := r.Durations()
	assert.Contains(t, durations, usecase.StageResolving)
	assert.Contains(t, durations, usecase.StageDeploying)
}

func TestProvideProgressSink(t *testing.T) {
	assert.IsType(t, &NopSink{}, ProvideProgressSink(&config.RuntimeConfig{JSON: true}))
	assert.IsType(t, &SpinnerProgressReporter{}, ProvideProgressSink(&config.RuntimeConfig{}))
}
