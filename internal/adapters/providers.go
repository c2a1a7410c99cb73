package adapters

import (
	"github.com/google/wire"

	"github.com/trebuchet-org/ovault-cli/internal/adapters/blockchain"
	"github.com/trebuchet-org/ovault-cli/internal/adapters/fs"
	"github.com/trebuchet-org/ovault-cli/internal/adapters/interactive"
	"github.com/trebuchet-org/ovault-cli/internal/adapters/metadata"
	"github.com/trebuchet-org/ovault-cli/internal/adapters/progress"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewAddressStoreAdapter,
	wire.Bind(new(usecase.AddressStore), new(*fs.AddressStoreAdapter)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),
)

// BlockchainSet provides RPC-backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployerFactory,
	wire.Bind(new(usecase.DeployerFactory), new(*blockchain.DeployerFactory)),
)

// MetadataSet provides the worker metadata source
var MetadataSet = wire.NewSet(
	metadata.ProvideFetcher,
)

// ProgressSet provides progress reporting
var ProgressSet = wire.NewSet(
	progress.ProvideProgressSink,
)

// InteractiveSet provides interactive prompts
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	BlockchainSet,
	MetadataSet,
	ProgressSet,
	InteractiveSet,
)
