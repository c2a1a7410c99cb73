//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/ovault-cli/internal/adapters"
	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/logging"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolvePlan,
		usecase.NewDeployChain,
		usecase.NewBuildOverlay,
		usecase.NewGenerateConnections,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
