package render

import (
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// OverlayRenderer renders metadata overlays and connection documents
type OverlayRenderer struct {
	out   io.Writer
	color bool
}

// NewOverlayRenderer creates a new overlay renderer
func NewOverlayRenderer(out io.Writer, color bool) *OverlayRenderer {
	return &OverlayRenderer{
		out:   out,
		color: color,
	}
}

// RenderOverlay renders which custom workers were added to which chain key
func (r *OverlayRenderer) RenderOverlay(result *usecase.BuildOverlayResult) error {
	ids := lo.Keys(result.ChainKeys)
	slices.Sort(ids)

	if len(ids) > 0 {
		t := newTable(r.out)
		t.AppendHeader(table.Row{"EID", "CHAIN KEY", "EXECUTOR", "DVN"})
		for _, id := range ids {
			w := result.Workers[id]
			t.AppendRow(table.Row{id, result.ChainKeys[id], orDash(w.Executor), orDash(w.DVN)})
		}
		t.Render()
	}

	if result.OutPath != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Metadata overlay written to %s", result.OutPath)))
	}
	renderWarnings(r.out, result.Warnings)
	return nil
}

// RenderConnections renders the generated per-direction connections
func (r *OverlayRenderer) RenderConnections(result *usecase.GenerateConnectionsResult) error {
	doc := result.Document
	if len(doc.Connections) == 0 {
		fmt.Fprintln(r.out, "No pathways configured")
	} else {
		t := newTable(r.out)
		t.AppendHeader(table.Row{"FROM", "TO", "EXECUTOR", "DVNS", "CONFIRMATIONS"})
		for _, c := range doc.Connections {
			send := c.Config.SendConfig
			dvns := fmt.Sprintf("%d required", len(send.RequiredDVNs))
			if len(send.OptionalDVNs) > 0 {
				dvns += fmt.Sprintf(", %d/%d optional", send.OptionalDVNThreshold, len(send.OptionalDVNs))
			}
			t.AppendRow(table.Row{
				fmt.Sprintf("%s (%d)", c.From.ContractName, c.From.Chain),
				fmt.Sprintf("%s (%d)", c.To.ContractName, c.To.Chain),
				addressStyle.Sprint(c.Config.Executor),
				dvns,
				fmt.Sprintf("%d / %d", send.Confirmations, c.Config.ReceiveConfig.Confirmations),
			})
		}
		t.Render()
	}

	if result.OutPath != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Connections written to %s", result.OutPath)))
	}
	renderWarnings(r.out, result.Warnings)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return faintStyle.Sprint("-")
	}
	return addressStyle.Sprint(s)
}
