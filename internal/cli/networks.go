package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/ovault-cli/internal/cli/render"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the networks of the deployment plan",
		Long: `List every network configured in ovault.toml with its role in the mesh,
its RPC endpoint and the number of contracts recorded in its deployments folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout(), true).RenderNetworksList(result)
		},
	}

	return cmd
}
