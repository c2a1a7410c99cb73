package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// PlanRenderer renders chain resolutions
type PlanRenderer struct {
	out   io.Writer
	color bool
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer, color bool) *PlanRenderer {
	return &PlanRenderer{
		out:   out,
		color: color,
	}
}

// RenderPlan renders the resolution of each chain
func (r *PlanRenderer) RenderPlan(results []*usecase.ResolvePlanResult) error {
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.renderChain(result)
	}
	return nil
}

func (r *PlanRenderer) renderChain(result *usecase.ResolvePlanResult) {
	res := result.Resolution
	fmt.Fprintf(r.out, "%s %s %s\n",
		headerStyle.Sprint(result.Config.Name),
		faintStyle.Sprintf("(eid %d)", result.Chain),
		formatRole(res.Role))

	if !res.InTopology() {
		fmt.Fprintln(r.out, faintStyle.Sprint("  not part of the mesh, nothing to deploy"))
		return
	}

	steps := res.Steps()
	if len(steps) == 0 {
		fmt.Fprintln(r.out, faintStyle.Sprint("  no artifacts are hosted on this chain"))
	} else {
		t := newTable(r.out)
		t.AppendHeader(table.Row{"#", "ARTIFACT", "CONTRACT", "ACTION", "DETAILS"})
		for i, step := range steps {
			t.AppendRow(table.Row{i + 1, step.Artifact, step.Contract, formatAction(step), formatDetails(step)})
		}
		t.Render()
	}

	switch {
	case res.Empty():
		fmt.Fprintln(r.out, FormatSuccess("Up to date"))
	default:
		fmt.Fprintf(r.out, "%d to deploy, %d already resolved\n", len(res.Actions), len(res.Skipped))
	}

	renderWarnings(r.out, res.Warnings)
}

func formatAction(step domain.DeploymentAction) string {
	if step.Kind == domain.ActionDeploy {
		return deployStyle.Sprint("deploy")
	}
	if step.Resolved != nil && step.Resolved.Source == domain.SourceMesh {
		return faintStyle.Sprint("skip (mesh)")
	}
	return skipStyle.Sprint("skip")
}

func formatDetails(step domain.DeploymentAction) string {
	if step.Kind == domain.ActionSkip {
		if step.Resolved == nil || step.Resolved.Address == "" {
			return ""
		}
		return fmt.Sprintf("%s %s", addressStyle.Sprint(step.Resolved.Address), faintStyle.Sprintf("(%s)", step.Resolved.Source))
	}

	args := make([]string, 0, len(step.Args))
	for _, arg := range step.Args {
		if arg.Bound {
			args = append(args, arg.Value)
		} else {
			args = append(args, faintStyle.Sprintf("<%s>", arg.Template.String()))
		}
	}
	details := "(" + strings.Join(args, ", ") + ")"
	if step.Value != "" {
		details += faintStyle.Sprintf(" value=%s", step.Value)
	}
	return details
}
