package usecase

import (
	"context"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// AddressStore handles persistence of deployed addresses, one folder per network key
type AddressStore interface {
	// Lookup returns the recorded address, or an error wrapping domain.ErrNotFound
	Lookup(networkKey, contractName string) (string, error)
	Save(ctx context.Context, networkKey string, record *domain.DeploymentRecord) error
	List(ctx context.Context, networkKey string) ([]*domain.DeploymentRecord, error)
}

// DeployerFactory opens a deployer bound to one chain
type DeployerFactory interface {
	Connect(ctx context.Context, chain domain.ChainConfig) (ChainDeployer, error)
}

// ChainDeployer sends contract creations to one chain
type ChainDeployer interface {
	// Sender is the address deployments are sent from
	Sender() string
	Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error)
	TokenReader
	Close()
}

// TokenReader reads the underlying token of an OFT or vault
type TokenReader interface {
	ReadToken(ctx context.Context, address string) (string, error)
}

// DeployRequest is a contract creation with fully bound constructor arguments
type DeployRequest struct {
	Contract string
	Args     []string
	Value    string // wei, decimal
	GasLimit uint64 // 0 lets the node estimate
}

// DeployResult is the outcome of a mined contract creation
type DeployResult struct {
	Address         string
	TransactionHash string
	BlockNumber     uint64
}

// MetadataFetcher fetches the base worker metadata registry
type MetadataFetcher interface {
	Fetch(ctx context.Context) (domain.MetadataRegistry, error)
}

// FileWriter writes generated documents
type FileWriter interface {
	WriteJSON(ctx context.Context, path string, v any) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the execution process
type ExecutionStage string

const (
	StageResolving ExecutionStage = "Resolving"
	StageDeploying ExecutionStage = "Deploying"
	StageRecording ExecutionStage = "Recording"
	StageCompleted ExecutionStage = "Completed"
)

// InteractiveSelector asks the operator to pick a network or confirm an action
type InteractiveSelector interface {
	SelectNetwork(ctx context.Context, networks []NetworkStatus, prompt string) (*NetworkStatus, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}
