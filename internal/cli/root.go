package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/ovault-cli/internal/app"
	"github.com/trebuchet-org/ovault-cli/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ovault",
		Short: "Hub and spoke vault mesh deployer",
		Long: `ovault deploys an omnichain vault: the vault, its share adapter and
composer on a hub chain, and share tokens on every spoke chain. It also builds
the worker metadata overlay and the pathway connections for custom executors
and DVNs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network name or eid (e.g. hedera-testnet, 40285)")
	rootCmd.PersistentFlags().String("plan", config.DefaultPlanFile, "Deployment plan file")
	rootCmd.PersistentFlags().String("mesh", config.DefaultMeshFile, "Mesh and pathway configuration file")
	rootCmd.PersistentFlags().String("deployments", "deployments", "Deployments directory, one folder per network")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this long (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "mesh",
		Title: "Mesh Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	planCmd := NewPlanCmd()
	planCmd.GroupID = "main"
	rootCmd.AddCommand(planCmd)

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	overlayCmd := NewOverlayCmd()
	overlayCmd.GroupID = "mesh"
	rootCmd.AddCommand(overlayCmd)

	connectionsCmd := NewConnectionsCmd()
	connectionsCmd.GroupID = "mesh"
	rootCmd.AddCommand(connectionsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
