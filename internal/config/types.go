package config

import (
	"time"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DataDir        string
	DeploymentsDir string // address store root, one folder per network key
	ArtifactsDir   string // foundry build output

	// Context settings
	Network string // network name or eid given on the command line, may be empty

	// Execution settings
	Debug          bool
	JSON           bool // Output in JSON format
	NonInteractive bool
	Timeout        time.Duration

	// Command-specific settings (only populated for relevant commands)
	DryRun bool

	// Signing key of the deployer, never logged
	PrivateKey string

	// Worker metadata source: a local snapshot wins over the remote endpoint
	MetadataURL  string
	MetadataFile string

	// Resolved configurations
	Plan          *domain.DeploymentPlan
	Mesh          *domain.MeshConfig // nil when the project has no mesh file
	FoundryConfig *FoundryConfig     // nil when the project has no foundry.toml
}

// FoundryConfig is the subset of foundry.toml ovault reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig `toml:"profile"`
	RpcEndpoints map[string]string        `toml:"rpc_endpoints"`
}

// ProfileConfig represents a foundry profile
type ProfileConfig struct {
	SrcPath string `toml:"src,omitempty"`
	OutPath string `toml:"out,omitempty"`
}
