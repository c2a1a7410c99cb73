package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders the plan's networks with their roles
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in ovault.toml")
		return nil
	}

	fmt.Fprintf(r.out, "🌐 Networks of %s:\n\n", headerStyle.Sprint(result.PlanName))

	t := newTable(r.out)
	t.AppendHeader(table.Row{"EID", "NETWORK", "ROLE", "RPC", "DEPLOYED"})
	for _, n := range result.Networks {
		rpc := n.RPCEndpoint
		if rpc == "" {
			rpc = n.RPCURL
		}
		if n.RPCURL == "" {
			rpc = faintStyle.Sprint("not set")
		}

		deployed := fmt.Sprint(n.Deployed)
		if n.Error != nil {
			deployed = FormatError(n.Error.Error())
		}

		t.AppendRow(table.Row{n.Chain, n.Name, formatRole(n.Role), rpc, deployed})
	}
	t.Render()
	return nil
}
