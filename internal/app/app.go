package app

import (
	"log/slog"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	ResolvePlan         *usecase.ResolvePlan
	DeployChain         *usecase.DeployChain
	BuildOverlay        *usecase.BuildOverlay
	GenerateConnections *usecase.GenerateConnections
	ListNetworks        *usecase.ListNetworks

	// Interactive prompts
	Selector usecase.InteractiveSelector
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	resolvePlan *usecase.ResolvePlan,
	deployChain *usecase.DeployChain,
	buildOverlay *usecase.BuildOverlay,
	generateConnections *usecase.GenerateConnections,
	listNetworks *usecase.ListNetworks,
	selector usecase.InteractiveSelector,
) (*App, error) {
	return &App{
		Config:              cfg,
		Log:                 log,
		ResolvePlan:         resolvePlan,
		DeployChain:         deployChain,
		BuildOverlay:        buildOverlay,
		GenerateConnections: generateConnections,
		ListNetworks:        listNetworks,
		Selector:            selector,
	}, nil
}
