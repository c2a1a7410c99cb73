package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// DeployRenderer renders deployment runs
type DeployRenderer struct {
	out   io.Writer
	color bool
	plan  *PlanRenderer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, color bool) *DeployRenderer {
	return &DeployRenderer{
		out:   out,
		color: color,
		plan:  NewPlanRenderer(out, color),
	}
}

// RenderDeploy renders the outcome of a deploy run
func (r *DeployRenderer) RenderDeploy(result *usecase.DeployChainResult) error {
	name := result.Config.Name
	switch {
	case result.SkippedByTag:
		fmt.Fprintf(r.out, "Skipping %s: its role (%s) is not selected by --tags\n", name, result.Resolution.Role)
		return nil

	case result.DryRun:
		fmt.Fprintln(r.out, faintStyle.Sprint("Dry run, nothing is sent"))
		return r.plan.RenderPlan([]*usecase.ResolvePlanResult{{
			Chain:      result.Chain,
			Config:     result.Config,
			Resolution: result.Resolution,
		}})

	case !result.Resolution.InTopology():
		fmt.Fprintf(r.out, "%s is not part of the mesh, nothing to deploy\n", name)
		return nil
	}

	if len(result.Deployed) == 0 {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s is up to date", name)))
		renderWarnings(r.out, result.Resolution.Warnings)
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"ARTIFACT", "CONTRACT", "ADDRESS", "TX"})
	for _, d := range result.Deployed {
		t.AppendRow(table.Row{d.Artifact, d.Contract, addressStyle.Sprint(d.Address), faintStyle.Sprint(d.TransactionHash)})
	}
	t.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %d contract(s) on %s", len(result.Deployed), name)))
	renderWarnings(r.out, result.Resolution.Warnings)
	return nil
}
