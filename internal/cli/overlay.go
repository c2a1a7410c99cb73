package cli

import (
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/ovault-cli/internal/cli/render"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

func addMetadataFlags(cmd *cobra.Command) {
	cmd.Flags().String("metadata-url", "", "Worker metadata endpoint (default the public LayerZero API)")
	cmd.Flags().String("metadata-file", "", "Read worker metadata from a local JSON or YAML snapshot instead")
}

// NewOverlayCmd creates the overlay command
func NewOverlayCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Build the worker metadata overlay",
		Long: `Fetch the worker metadata registry and add the custom executor and DVN of
every chain in mesh.yaml, so pathway configs can refer to them by name.
Worker addresses come from mesh.yaml when pinned there, otherwise from the
deployments folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.BuildOverlay.Run(cmd.Context(), usecase.BuildOverlayParams{OutPath: outPath})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result.Registry)
			}
			return render.NewOverlayRenderer(cmd.OutOrStdout(), true).RenderOverlay(result)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the extended registry to this file")
	addMetadataFlags(cmd)

	return cmd
}

// NewConnectionsCmd creates the connections command
func NewConnectionsCmd() *cobra.Command {
	var outPath, overlayOut string

	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Generate pathway connections for the mesh",
		Long: `Resolve every pathway of mesh.yaml into two directed connections, with the
executor and DVN names replaced by their addresses on the sending chain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.GenerateConnections.Run(cmd.Context(), usecase.GenerateConnectionsParams{
				OutPath:     outPath,
				OverlayPath: overlayOut,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result.Document)
			}
			return render.NewOverlayRenderer(cmd.OutOrStdout(), true).RenderConnections(result)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the connections to this file")
	cmd.Flags().StringVar(&overlayOut, "overlay-out", "", "Also write the metadata overlay to this file")
	addMetadataFlags(cmd)

	return cmd
}
