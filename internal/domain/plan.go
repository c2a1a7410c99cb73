package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Well-known logical artifact names
const (
	ArtifactVault        = "vault"
	ArtifactShareAdapter = "shareAdapter"
	ArtifactComposer     = "composer"
	ArtifactAssetToken   = "assetToken"
	ArtifactShareToken   = "shareToken"
)

// exclusiveRoles pins well-known artifacts to the only role that may host them.
// Hosting the vault side on a spoke, or a full share token on the hub, would
// fragment the mesh.
var exclusiveRoles = map[string]ChainRole{
	ArtifactVault:        RoleHub,
	ArtifactShareAdapter: RoleHub,
	ArtifactComposer:     RoleHub,
	ArtifactShareToken:   RoleSpoke,
}

// RequiredRole returns the role a well-known artifact is pinned to.
func RequiredRole(artifact string) (ChainRole, bool) {
	role, ok := exclusiveRoles[artifact]
	return role, ok
}

// DeploymentPlan is the declarative description of one mesh topology.
type DeploymentPlan struct {
	Name      string
	Hub       ChainID
	Spokes    []ChainID
	Chains    ChainDirectory
	Artifacts map[string]ArtifactSpec
}

// ArtifactSpec describes one logical artifact of the mesh
type ArtifactSpec struct {
	Contract  string
	Role      ChainRole
	Args      []ArgTemplate
	Overrides map[ChainID]string
	After     []string
	// Manual artifacts are never deployed by the plan; they resolve only
	// through an override or the address store.
	Manual bool
	// MeshPeer names the hub artifact owning this artifact's mesh. When the peer
	// has a hub override the mesh already exists and this artifact is skipped.
	MeshPeer string
	Value    string
	GasLimit uint64
}

// RoleOf returns the role a chain holds in the plan.
func (p *DeploymentPlan) RoleOf(chain ChainID) (ChainRole, bool) {
	if chain == p.Hub {
		return RoleHub, true
	}
	if slices.Contains(p.Spokes, chain) {
		return RoleSpoke, true
	}
	return "", false
}

// ChainIDs returns hub first, then spokes in plan order.
func (p *DeploymentPlan) ChainIDs() []ChainID {
	return append([]ChainID{p.Hub}, p.Spokes...)
}

// ArtifactNames returns artifact names sorted lexicographically.
func (p *DeploymentPlan) ArtifactNames() []string {
	names := make([]string, 0, len(p.Artifacts))
	for name := range p.Artifacts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Prerequisites returns the artifacts that must be resolved before name,
// sorted and deduplicated.
func (s ArtifactSpec) Prerequisites() []string {
	var deps []string
	for _, arg := range s.Args {
		if arg.RefersToArtifact() {
			deps = append(deps, arg.Value)
		}
	}
	deps = append(deps, s.After...)
	slices.Sort(deps)
	return slices.Compact(deps)
}

// ArgKind tells how a constructor argument template is bound
type ArgKind string

const (
	ArgLiteral     ArgKind = "literal"
	ArgRef         ArgKind = "ref"
	ArgOptionalRef ArgKind = "ref?"
	ArgContract    ArgKind = "contract"
	ArgExternal    ArgKind = "external"
	ArgDeployer    ArgKind = "deployer"
	ArgEID         ArgKind = "eid"
	ArgToken       ArgKind = "token"
)

// ArgTemplate is one constructor argument before resolution
type ArgTemplate struct {
	Kind  ArgKind
	Value string
}

// ParseArgTemplate parses the textual template form used in plan files:
//
//	ref:vault        address of the vault artifact
//	ref?:strategy    address of strategy, zero address when not deployed yet
//	contract:Name    address of a non-plan contract from the address store
//	external:key     per-chain external address from the plan
//	token:assetToken underlying token of an artifact, read on-chain
//	deployer         signer address
//	eid              local endpoint id
//	lit:text         literal text, even when it looks like a template
//
// Anything else is a literal.
func ParseArgTemplate(raw string) (ArgTemplate, error) {
	switch raw {
	case string(ArgDeployer):
		return ArgTemplate{Kind: ArgDeployer}, nil
	case string(ArgEID):
		return ArgTemplate{Kind: ArgEID}, nil
	}

	prefix, value, found := strings.Cut(raw, ":")
	if !found {
		return ArgTemplate{Kind: ArgLiteral, Value: raw}, nil
	}

	kind := ArgKind(prefix)
	switch kind {
	case ArgRef, ArgOptionalRef, ArgContract, ArgExternal, ArgToken:
		if value == "" {
			return ArgTemplate{}, fmt.Errorf("argument %q has an empty %s reference", raw, prefix)
		}
		return ArgTemplate{Kind: kind, Value: value}, nil
	case "lit":
		return ArgTemplate{Kind: ArgLiteral, Value: value}, nil
	default:
		return ArgTemplate{Kind: ArgLiteral, Value: raw}, nil
	}
}

// RefersToArtifact reports whether the template depends on another artifact.
func (a ArgTemplate) RefersToArtifact() bool {
	return a.Kind == ArgRef || a.Kind == ArgOptionalRef || a.Kind == ArgToken
}

func (a ArgTemplate) String() string {
	switch a.Kind {
	case ArgLiteral:
		return a.Value
	case ArgDeployer, ArgEID:
		return string(a.Kind)
	default:
		return string(a.Kind) + ":" + a.Value
	}
}
