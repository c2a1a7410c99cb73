package domain

// ZeroAddress is substituted for optional prerequisites that are not deployed yet.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// AddressSource records where a resolved address came from
type AddressSource string

const (
	SourceOverride AddressSource = "override"
	SourceStore    AddressSource = "store"
	SourceDeployed AddressSource = "deployed"
	SourceSentinel AddressSource = "sentinel"
	// SourceMesh marks a spoke artifact skipped because its mesh is managed elsewhere
	SourceMesh AddressSource = "mesh"
)

// ResolvedAddress is an artifact address fixed for the rest of a run
type ResolvedAddress struct {
	Artifact string
	Contract string
	Chain    ChainID
	Address  string
	Source   AddressSource
}

// ActionKind is the kind of a deployment action
type ActionKind string

const (
	ActionSkip   ActionKind = "skip"
	ActionDeploy ActionKind = "deploy"
)

// Arg is a constructor argument after resolution. Bound args carry their final
// value. Unbound args are completed by the runner at execution time: deployer
// takes the signer address, ref takes the address produced by an earlier action,
// token reads the underlying token of Value (or of the earlier action's address
// when Value is empty).
type Arg struct {
	Template ArgTemplate
	Value    string
	Bound    bool
}

// DeploymentAction is one step of a chain's resolution
type DeploymentAction struct {
	Kind          ActionKind
	Artifact      string
	Contract      string
	Chain         ChainID
	Args          []Arg
	Prerequisites []string
	Value         string
	GasLimit      uint64
	// Resolved is set for skip actions
	Resolved *ResolvedAddress
}

// Resolution is the outcome of resolving a plan on one chain.
type Resolution struct {
	Chain ChainID
	Role  ChainRole
	// Actions holds only deploy actions, in dependency order
	Actions []DeploymentAction
	// Skipped holds artifacts resolved without deploying, in dependency order
	Skipped  []DeploymentAction
	Warnings []ResolutionWarning
	// Order is the topological order of the artifacts hosted by this role
	Order []string
}

// InTopology reports whether the chain takes part in the plan at all.
func (r *Resolution) InTopology() bool {
	return r.Role != ""
}

// Empty reports whether nothing needs to be deployed.
func (r *Resolution) Empty() bool {
	return len(r.Actions) == 0
}

// Steps returns skipped and deploy actions merged in dependency order.
func (r *Resolution) Steps() []DeploymentAction {
	byArtifact := make(map[string]DeploymentAction, len(r.Actions)+len(r.Skipped))
	for _, a := range r.Skipped {
		byArtifact[a.Artifact] = a
	}
	for _, a := range r.Actions {
		byArtifact[a.Artifact] = a
	}
	steps := make([]DeploymentAction, 0, len(byArtifact))
	for _, name := range r.Order {
		if a, ok := byArtifact[name]; ok {
			steps = append(steps, a)
		}
	}
	return steps
}
