// Package connections turns two-way pathway declarations into per-direction
// connection configs, resolving worker names through a metadata registry.
package connections

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// Generate resolves every pathway of mesh against registry. chainKeys maps the
// configured chains to their registry keys (see overlay.DiscoverChainKeys).
//
// Each pathway yields two connections, From→To then To→From. All worker
// addresses of a connection are taken from its sending chain.
func Generate(mesh *domain.MeshConfig, registry domain.MetadataRegistry, chainKeys map[domain.ChainID]string) (*domain.ConnectionsDocument, error) {
	doc := &domain.ConnectionsDocument{
		Contracts:   slices.Clone(mesh.Contracts),
		Connections: make([]domain.Connection, 0, 2*len(mesh.Pathways)),
	}

	for i, p := range mesh.Pathways {
		if err := validatePathway(mesh, p); err != nil {
			return nil, fmt.Errorf("pathway %d: %w", i, err)
		}

		forward, err := connect(mesh, registry, chainKeys, p, p.From, p.To, 0)
		if err != nil {
			return nil, fmt.Errorf("pathway %d: %w", i, err)
		}
		backward, err := connect(mesh, registry, chainKeys, p, p.To, p.From, 1)
		if err != nil {
			return nil, fmt.Errorf("pathway %d: %w", i, err)
		}
		doc.Connections = append(doc.Connections, *forward, *backward)
	}

	return doc, nil
}

func validatePathway(mesh *domain.MeshConfig, p domain.Pathway) error {
	if p.From == p.To {
		return domain.NewConfigurationError(p.From, "", "pathway connects a chain to itself")
	}
	for _, id := range []domain.ChainID{p.From, p.To} {
		if _, ok := mesh.Contract(id); !ok {
			return domain.NewConfigurationError(id, "", "pathway endpoint has no configured contract")
		}
	}
	if len(p.Confirmations) != 2 {
		return domain.NewConfigurationError(p.From, "", "expected 2 confirmation values, got %d", len(p.Confirmations))
	}
	if len(p.EnforcedOptions) != 0 && len(p.EnforcedOptions) != 2 {
		return domain.NewConfigurationError(p.From, "", "expected 2 enforced option lists, got %d", len(p.EnforcedOptions))
	}
	if p.Executor == "" {
		return domain.NewConfigurationError(p.From, "", "pathway has no executor")
	}
	if len(p.RequiredDVNs) == 0 && len(p.OptionalDVNs) == 0 {
		return domain.NewConfigurationError(p.From, "", "pathway has no DVNs")
	}
	return nil
}

// connect builds the connection local→remote. side selects the pathway index
// applying to this direction.
func connect(mesh *domain.MeshConfig, registry domain.MetadataRegistry, chainKeys map[domain.ChainID]string, p domain.Pathway, local, remote domain.ChainID, side int) (*domain.Connection, error) {
	key, ok := chainKeys[local]
	if !ok {
		return nil, domain.NewConfigurationError(local, "", "chain is not listed in the metadata registry")
	}
	entry := registry[key]

	executor, err := addressByName(entry.Executors, p.Executor)
	if err != nil {
		return nil, domain.NewConfigurationError(local, "", "executor on %s: %v", key, err)
	}
	required, err := addressesByName(entry.DVNs, p.RequiredDVNs)
	if err != nil {
		return nil, domain.NewConfigurationError(local, "", "required DVN on %s: %v", key, err)
	}
	optional, err := addressesByName(entry.DVNs, p.OptionalDVNs)
	if err != nil {
		return nil, domain.NewConfigurationError(local, "", "optional DVN on %s: %v", key, err)
	}

	from, _ := mesh.Contract(local)
	to, _ := mesh.Contract(remote)

	var options []domain.EnforcedOption
	if len(p.EnforcedOptions) == 2 {
		options = slices.Clone(p.EnforcedOptions[side])
	}

	return &domain.Connection{
		From: from,
		To:   to,
		Config: domain.ConnectionConfig{
			Executor: executor,
			SendConfig: domain.UlnConfig{
				Confirmations:        p.Confirmations[side],
				RequiredDVNs:         required,
				OptionalDVNs:         optional,
				OptionalDVNThreshold: len(optional),
			},
			// messages arriving from remote were sent with the other side's confirmations
			ReceiveConfig: domain.UlnConfig{
				Confirmations:        p.Confirmations[1-side],
				RequiredDVNs:         required,
				OptionalDVNs:         optional,
				OptionalDVNThreshold: len(optional),
			},
			EnforcedOptions: options,
		},
	}, nil
}

// addressByName finds the worker with the given canonical name. Several
// workers sharing a name resolve to the lowest address.
func addressByName(workers map[string]domain.WorkerDescriptor, name string) (string, error) {
	matches := lo.Keys(lo.PickBy(workers, func(_ string, w domain.WorkerDescriptor) bool {
		return w.CanonicalName == name
	}))
	if len(matches) == 0 {
		return "", fmt.Errorf("no worker named %q: %w", name, domain.ErrNotFound)
	}
	slices.Sort(matches)
	return matches[0], nil
}

func addressesByName(workers map[string]domain.WorkerDescriptor, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		addr, err := addressByName(workers, name)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
