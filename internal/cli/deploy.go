package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/trebuchet-org/ovault-cli/internal/app"
	"github.com/trebuchet-org/ovault-cli/internal/cli/render"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the plan's artifacts on one chain",
		Long: `Deploy every artifact the chain's role still needs, in dependency order.
Each deployment is recorded in the deployments folder as soon as it is mined,
so an interrupted run resumes where it stopped.

Without --network the chain is picked interactively.`,
		Example: `  ovault deploy --network hedera-testnet
  ovault deploy --network base-sepolia --tags spoke
  ovault deploy --network 40285 --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network := app.Config.Network
			if network == "" {
				network, err = selectNetwork(cmd, app)
				if err != nil {
					return err
				}
			}

			if !app.Config.DryRun {
				proceed, err := confirmDeploy(cmd, app, network, tags)
				if err != nil {
					return err
				}
				if !proceed {
					fmt.Fprintln(cmd.OutOrStdout(), "Deployment cancelled.")
					return nil
				}
			}

			result, err := app.DeployChain.Run(cmd.Context(), usecase.DeployChainParams{
				Network: network,
				Tags:    tags,
				DryRun:  app.Config.DryRun,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewDeployRenderer(cmd.OutOrStdout(), true).RenderDeploy(result)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Only deploy when the chain's role is listed (hub, spoke)")
	cmd.Flags().Bool("dry-run", false, "Resolve and print the deployment steps without sending anything")

	return cmd
}

// selectNetwork offers the hub and spoke networks of the plan
func selectNetwork(cmd *cobra.Command, app *app.App) (string, error) {
	list, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
	if err != nil {
		return "", err
	}

	var candidates []usecase.NetworkStatus
	for _, n := range list.Networks {
		if n.Role != "" {
			candidates = append(candidates, n)
		}
	}

	selected, err := app.Selector.SelectNetwork(cmd.Context(), candidates, "Select network to deploy")
	if err != nil {
		return "", err
	}
	return selected.Chain.String(), nil
}

// confirmDeploy asks before anything is sent. Nothing to deploy needs no confirmation.
func confirmDeploy(cmd *cobra.Command, app *app.App, network string, tags []string) (bool, error) {
	plan, err := app.ResolvePlan.Run(cmd.Context(), usecase.ResolvePlanParams{Network: network})
	if err != nil {
		return false, err
	}
	if len(plan.Resolution.Actions) == 0 {
		return true, nil
	}
	if len(tags) > 0 && !lo.Contains(tags, string(plan.Resolution.Role)) {
		return true, nil
	}

	return app.Selector.Confirm(cmd.Context(),
		fmt.Sprintf("Deploy %d contract(s) to %s", len(plan.Resolution.Actions), plan.Config.Name))
}
