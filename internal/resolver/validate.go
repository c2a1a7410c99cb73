package resolver

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// Validate checks the shape of a plan. Every problem it reports is a
// *domain.ConfigurationError, raised before any deployment action is produced.
func Validate(plan *domain.DeploymentPlan) error {
	if plan == nil {
		return domain.NewConfigurationError(0, "", "no deployment plan")
	}
	if err := validateTopology(plan); err != nil {
		return err
	}
	for _, name := range plan.ArtifactNames() {
		if err := validateArtifact(plan, name, plan.Artifacts[name]); err != nil {
			return err
		}
	}
	if err := validateStoreKeys(plan); err != nil {
		return err
	}
	if _, err := newDependencyGraph(plan.Artifacts).topologicalSort(); err != nil {
		return err
	}
	return nil
}

// validateStoreKeys rejects two artifacts of one role sharing a contract name:
// the address store keys records by contract, so they would overwrite each other.
func validateStoreKeys(plan *domain.DeploymentPlan) error {
	owners := make(map[domain.ChainRole]map[string]string)
	for _, name := range plan.ArtifactNames() {
		spec := plan.Artifacts[name]
		byContract, ok := owners[spec.Role]
		if !ok {
			byContract = make(map[string]string)
			owners[spec.Role] = byContract
		}
		if first, dup := byContract[spec.Contract]; dup {
			return domain.NewConfigurationError(0, name, "contract %s is also used by %s on %s chains, the address store cannot tell them apart", spec.Contract, first, spec.Role)
		}
		byContract[spec.Contract] = name
	}
	return nil
}

func validateTopology(plan *domain.DeploymentPlan) error {
	if plan.Hub == 0 {
		return domain.NewConfigurationError(0, "", "hub chain is not set")
	}
	if len(plan.Spokes) == 0 {
		return domain.NewConfigurationError(0, "", "at least one spoke chain is required")
	}
	if lo.Contains(plan.Spokes, plan.Hub) {
		return domain.NewConfigurationError(plan.Hub, "", "hub chain is also listed as a spoke")
	}
	if dups := lo.FindDuplicates(plan.Spokes); len(dups) > 0 {
		return domain.NewConfigurationError(dups[0], "", "spoke chain listed more than once")
	}

	for _, id := range plan.ChainIDs() {
		if _, err := plan.Chains.NetworkKey(id); err != nil {
			return domain.NewConfigurationError(id, "", "chain has no network key for the address store")
		}
		for key, addr := range plan.Chains[id].Addresses {
			if !common.IsHexAddress(addr) {
				return domain.NewConfigurationError(id, "", "external address %s=%q is not a hex address", key, addr)
			}
		}
	}
	return nil
}

func validateArtifact(plan *domain.DeploymentPlan, name string, spec domain.ArtifactSpec) error {
	if spec.Contract == "" {
		return domain.NewConfigurationError(0, name, "no contract name")
	}
	if spec.Role != domain.RoleHub && spec.Role != domain.RoleSpoke {
		return domain.NewConfigurationError(0, name, "unknown role %q", spec.Role)
	}

	// A shareAdapter on spokes or a shareToken on the hub fragments the mesh.
	if required, ok := domain.RequiredRole(name); ok && spec.Role != required {
		return domain.NewConfigurationError(0, name, "must be hosted on the %s, plan assigns it to %s chains", describeRole(required), spec.Role)
	}

	for chain, addr := range spec.Overrides {
		role, inTopology := plan.RoleOf(chain)
		if !inTopology {
			return domain.NewConfigurationError(chain, name, "override for a chain outside the topology")
		}
		if role != spec.Role {
			return domain.NewConfigurationError(chain, name, "override lives on a %s chain but the artifact targets %s chains", role, spec.Role)
		}
		if !common.IsHexAddress(addr) {
			return domain.NewConfigurationError(chain, name, "override %q is not a hex address", addr)
		}
	}

	for _, dep := range spec.Prerequisites() {
		if dep == name {
			return domain.NewConfigurationError(0, name, "cannot depend on itself")
		}
		if _, ok := plan.Artifacts[dep]; !ok {
			return domain.NewConfigurationError(0, name, "depends on unknown artifact %q", dep)
		}
	}

	if spec.MeshPeer != "" {
		peer, ok := plan.Artifacts[spec.MeshPeer]
		if !ok {
			return domain.NewConfigurationError(0, name, "mesh peer %q is not in the plan", spec.MeshPeer)
		}
		if spec.Role != domain.RoleSpoke || peer.Role != domain.RoleHub {
			return domain.NewConfigurationError(0, name, "mesh peer must link a spoke artifact to a hub artifact")
		}
	}
	return nil
}

func describeRole(role domain.ChainRole) string {
	if role == domain.RoleHub {
		return "hub"
	}
	return "spokes"
}
