// Package resolver decides which artifacts of a hub/spoke mesh plan must be
// deployed on a given chain, and in which order.
//
// Resolution is a pure function of the plan and the address store contents. It
// performs no deployment itself: the returned actions are executed by the
// caller, whose results feed deferred arguments of later actions.
package resolver

import (
	"errors"
	"fmt"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// AddressStore is the read side of the address store
type AddressStore interface {
	// Lookup returns the recorded address of a contract on a network, or an
	// error wrapping domain.ErrNotFound when it was never deployed there.
	Lookup(networkKey, contractName string) (string, error)
}

// Resolve computes the deployment actions needed on chain.
//
// Chains outside the topology resolve to an empty result without error. Any
// configuration problem is returned as a *domain.ConfigurationError before an
// action is produced, so a wrong plan never leads to partial deployments.
func Resolve(plan *domain.DeploymentPlan, chain domain.ChainID, store AddressStore) (*domain.Resolution, error) {
	res := &domain.Resolution{Chain: chain}
	if plan == nil {
		return nil, domain.NewConfigurationError(chain, "", "no deployment plan")
	}

	role, ok := plan.RoleOf(chain)
	if !ok {
		return res, nil
	}
	res.Role = role

	if err := Validate(plan); err != nil {
		return nil, err
	}

	order, err := newDependencyGraph(plan.Artifacts).topologicalSort()
	if err != nil {
		return nil, err
	}

	networkKey, err := plan.Chains.NetworkKey(chain)
	if err != nil {
		return nil, domain.NewConfigurationError(chain, "", "%v", err)
	}

	r := &chainResolver{
		plan:       plan,
		chain:      chain,
		role:       role,
		networkKey: networkKey,
		store:      store,
		resolved:   make(map[string]domain.ResolvedAddress),
		scheduled:  make(map[string]bool),
		res:        res,
	}

	for _, name := range order {
		spec := plan.Artifacts[name]
		if spec.Role != role {
			continue
		}
		res.Order = append(res.Order, name)
		if err := r.resolveArtifact(name, spec); err != nil {
			return nil, err
		}
	}

	return res, nil
}

type chainResolver struct {
	plan       *domain.DeploymentPlan
	chain      domain.ChainID
	role       domain.ChainRole
	networkKey string
	store      AddressStore

	resolved  map[string]domain.ResolvedAddress
	scheduled map[string]bool
	res       *domain.Resolution
}

func (r *chainResolver) resolveArtifact(name string, spec domain.ArtifactSpec) error {
	if addr, ok := spec.Overrides[r.chain]; ok {
		r.skip(name, spec, addr, domain.SourceOverride)
		return nil
	}

	if spec.MeshPeer != "" {
		if _, ok := r.plan.Artifacts[spec.MeshPeer].Overrides[r.plan.Hub]; ok {
			r.res.Skipped = append(r.res.Skipped, domain.DeploymentAction{
				Kind:     domain.ActionSkip,
				Artifact: name,
				Contract: spec.Contract,
				Chain:    r.chain,
				Resolved: &domain.ResolvedAddress{
					Artifact: name,
					Contract: spec.Contract,
					Chain:    r.chain,
					Source:   domain.SourceMesh,
				},
			})
			r.warn(name, fmt.Sprintf("mesh peer %s already exists on the hub; this mesh is managed outside this plan", spec.MeshPeer))
			return nil
		}
	}

	addr, err := r.lookup(spec.Contract)
	if err != nil {
		return err
	}
	if addr != "" {
		r.skip(name, spec, addr, domain.SourceStore)
		return nil
	}

	if spec.Manual {
		// resolved only by overrides or a deployment made in another session
		return nil
	}

	for _, dep := range spec.After {
		if _, ok := r.resolved[dep]; !ok && !r.scheduled[dep] {
			return domain.NewConfigurationError(r.chain, name, "prerequisite %s is unresolved on this chain", dep)
		}
	}

	args, err := r.bindArgs(name, spec)
	if err != nil {
		return err
	}

	r.scheduled[name] = true
	r.res.Actions = append(r.res.Actions, domain.DeploymentAction{
		Kind:          domain.ActionDeploy,
		Artifact:      name,
		Contract:      spec.Contract,
		Chain:         r.chain,
		Args:          args,
		Prerequisites: spec.Prerequisites(),
		Value:         spec.Value,
		GasLimit:      spec.GasLimit,
	})
	return nil
}

func (r *chainResolver) skip(name string, spec domain.ArtifactSpec, addr string, source domain.AddressSource) {
	resolved := domain.ResolvedAddress{
		Artifact: name,
		Contract: spec.Contract,
		Chain:    r.chain,
		Address:  addr,
		Source:   source,
	}
	r.resolved[name] = resolved
	r.res.Skipped = append(r.res.Skipped, domain.DeploymentAction{
		Kind:     domain.ActionSkip,
		Artifact: name,
		Contract: spec.Contract,
		Chain:    r.chain,
		Resolved: &resolved,
	})
}

// lookup returns "" when the contract is not recorded for this network.
func (r *chainResolver) lookup(contract string) (string, error) {
	if r.store == nil {
		return "", nil
	}
	addr, err := r.store.Lookup(r.networkKey, contract)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up %s on %s: %w", contract, r.networkKey, err)
	}
	return addr, nil
}

func (r *chainResolver) bindArgs(name string, spec domain.ArtifactSpec) ([]domain.Arg, error) {
	args := make([]domain.Arg, 0, len(spec.Args))
	for _, tmpl := range spec.Args {
		arg, err := r.bindArg(name, tmpl)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (r *chainResolver) bindArg(name string, tmpl domain.ArgTemplate) (domain.Arg, error) {
	switch tmpl.Kind {
	case domain.ArgLiteral:
		return domain.Arg{Template: tmpl, Value: tmpl.Value, Bound: true}, nil

	case domain.ArgEID:
		return domain.Arg{Template: tmpl, Value: r.chain.String(), Bound: true}, nil

	case domain.ArgDeployer:
		return domain.Arg{Template: tmpl}, nil

	case domain.ArgContract:
		addr, err := r.lookup(tmpl.Value)
		if err != nil {
			return domain.Arg{}, err
		}
		if addr == "" {
			return domain.Arg{}, domain.NewConfigurationError(r.chain, name, "required contract %s is not deployed on %s", tmpl.Value, r.networkKey)
		}
		return domain.Arg{Template: tmpl, Value: addr, Bound: true}, nil

	case domain.ArgExternal:
		addr, ok := r.plan.Chains[r.chain].Addresses[tmpl.Value]
		if !ok || addr == "" {
			return domain.Arg{}, domain.NewConfigurationError(r.chain, name, "missing required address %q for %s", tmpl.Value, r.networkKey)
		}
		return domain.Arg{Template: tmpl, Value: addr, Bound: true}, nil

	case domain.ArgRef, domain.ArgOptionalRef, domain.ArgToken:
		if resolved, ok := r.resolved[tmpl.Value]; ok {
			if tmpl.Kind == domain.ArgToken {
				return domain.Arg{Template: tmpl, Value: resolved.Address}, nil
			}
			return domain.Arg{Template: tmpl, Value: resolved.Address, Bound: true}, nil
		}
		if r.scheduled[tmpl.Value] {
			return domain.Arg{Template: tmpl}, nil
		}
		if tmpl.Kind == domain.ArgOptionalRef {
			r.warn(name, fmt.Sprintf("%s is not deployed yet; using the zero address until a later run wires it", tmpl.Value))
			return domain.Arg{Template: tmpl, Value: domain.ZeroAddress, Bound: true}, nil
		}
		return domain.Arg{}, domain.NewConfigurationError(r.chain, name, "prerequisite %s is unresolved on this chain", tmpl.Value)

	default:
		return domain.Arg{}, domain.NewConfigurationError(r.chain, name, "unsupported argument %q", tmpl.String())
	}
}

func (r *chainResolver) warn(subject, message string) {
	r.res.Warnings = append(r.res.Warnings, domain.ResolutionWarning{
		Chain:   r.chain,
		Subject: subject,
		Message: message,
	})
}
