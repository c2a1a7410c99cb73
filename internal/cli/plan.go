package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/ovault-cli/internal/cli/render"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what would be deployed on each chain",
		Long: `Resolve the deployment plan against the deployments folder and show, per
chain, which artifacts are already resolved and which would be deployed, in
order. Without --network every hub and spoke chain is resolved.`,
		Example: `  ovault plan
  ovault plan --network hedera-testnet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var networks []string
			if app.Config.Network != "" {
				networks = []string{app.Config.Network}
			} else {
				if app.Config.Plan == nil {
					return fmt.Errorf("no deployment plan loaded")
				}
				for _, id := range app.Config.Plan.ChainIDs() {
					networks = append(networks, id.String())
				}
			}

			var results []*usecase.ResolvePlanResult
			for _, network := range networks {
				result, err := app.ResolvePlan.Run(cmd.Context(), usecase.ResolvePlanParams{Network: network})
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), results)
			}
			return render.NewPlanRenderer(cmd.OutOrStdout(), true).RenderPlan(results)
		},
	}

	return cmd
}
