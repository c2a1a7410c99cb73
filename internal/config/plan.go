package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// DefaultPlanFile is the plan file looked up in the project root
const DefaultPlanFile = "ovault.toml"

// PlanFile represents the raw ovault.toml structure
type PlanFile struct {
	Name      string                  `toml:"name"`
	Hub       string                  `toml:"hub"`
	Spokes    []string                `toml:"spokes"`
	Networks  map[string]NetworkEntry `toml:"networks"`
	Artifacts map[string]ArtifactFile `toml:"artifacts"`
}

// NetworkEntry is one [networks.<name>] table
type NetworkEntry struct {
	EID         uint32            `toml:"eid"`
	RPCURL      string            `toml:"rpc_url,omitempty"`
	Deployments string            `toml:"deployments,omitempty"` // address store folder, defaults to the network name
	Addresses   map[string]string `toml:"addresses,omitempty"`
}

// ArtifactFile is one [artifacts.<name>] table
type ArtifactFile struct {
	Contract  string            `toml:"contract"`
	Role      string            `toml:"role"`
	Args      []string          `toml:"args,omitempty"`
	Overrides map[string]string `toml:"overrides,omitempty"` // network name or eid -> address
	After     []string          `toml:"after,omitempty"`
	Manual    bool              `toml:"manual,omitempty"`
	MeshPeer  string            `toml:"mesh_peer,omitempty"`
	Value     string            `toml:"value,omitempty"`
	GasLimit  uint64            `toml:"gas_limit,omitempty"`
}

// LoadPlan reads and converts a plan file. ${VAR} references in RPC URLs,
// external addresses and overrides are expanded from the environment.
func LoadPlan(path string, foundryEndpoints map[string]string) (*domain.DeploymentPlan, error) {
	var raw PlanFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	plan, err := raw.toPlan(foundryEndpoints)
	if err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", filepath.Base(path), err)
	}
	return plan, nil
}

func (f *PlanFile) toPlan(foundryEndpoints map[string]string) (*domain.DeploymentPlan, error) {
	plan := &domain.DeploymentPlan{
		Name:      f.Name,
		Chains:    make(domain.ChainDirectory, len(f.Networks)),
		Artifacts: make(map[string]domain.ArtifactSpec, len(f.Artifacts)),
	}

	for name, entry := range f.Networks {
		if entry.EID == 0 {
			return nil, fmt.Errorf("network %s: eid is required", name)
		}
		id := domain.ChainID(entry.EID)
		if existing, dup := plan.Chains[id]; dup {
			return nil, fmt.Errorf("networks %s and %s share eid %d", existing.Name, name, id)
		}

		key := entry.Deployments
		if key == "" {
			key = name
		}
		rpcURL, rpcRaw := resolveRPCURL(name, entry.RPCURL, foundryEndpoints)

		addresses := make(map[string]string, len(entry.Addresses))
		for k, v := range entry.Addresses {
			addresses[k] = os.ExpandEnv(v)
		}

		plan.Chains[id] = domain.ChainConfig{
			NetworkKey:  key,
			Name:        name,
			RPCURL:      rpcURL,
			RPCEndpoint: rpcRaw,
			Addresses:   addresses,
		}
	}

	hub, _, err := plan.Chains.Lookup(f.Hub)
	if err != nil {
		return nil, fmt.Errorf("hub: %w", err)
	}
	plan.Hub = hub

	for _, ref := range f.Spokes {
		id, _, err := plan.Chains.Lookup(ref)
		if err != nil {
			return nil, fmt.Errorf("spokes: %w", err)
		}
		plan.Spokes = append(plan.Spokes, id)
	}

	for name, a := range f.Artifacts {
		spec, err := a.toSpec(plan.Chains)
		if err != nil {
			return nil, fmt.Errorf("artifact %s: %w", name, err)
		}
		plan.Artifacts[name] = spec
	}

	return plan, nil
}

func (a ArtifactFile) toSpec(chains domain.ChainDirectory) (domain.ArtifactSpec, error) {
	role, err := domain.ParseChainRole(a.Role)
	if err != nil {
		return domain.ArtifactSpec{}, err
	}

	spec := domain.ArtifactSpec{
		Contract: a.Contract,
		Role:     role,
		After:    a.After,
		Manual:   a.Manual,
		MeshPeer: a.MeshPeer,
		Value:    a.Value,
		GasLimit: a.GasLimit,
	}

	for _, raw := range a.Args {
		tmpl, err := domain.ParseArgTemplate(raw)
		if err != nil {
			return domain.ArtifactSpec{}, err
		}
		spec.Args = append(spec.Args, tmpl)
	}

	if len(a.Overrides) > 0 {
		spec.Overrides = make(map[domain.ChainID]string, len(a.Overrides))
		for ref, addr := range a.Overrides {
			id, _, err := chains.Lookup(ref)
			if err != nil {
				return domain.ArtifactSpec{}, fmt.Errorf("override: %w", err)
			}
			addr = os.ExpandEnv(addr)
			if addr == "" {
				// unset env var: no override
				continue
			}
			if !common.IsHexAddress(addr) {
				return domain.ArtifactSpec{}, fmt.Errorf("override for %s: %w: %q", ref, domain.ErrInvalidAddress, addr)
			}
			spec.Overrides[id] = addr
		}
	}

	return spec, nil
}
