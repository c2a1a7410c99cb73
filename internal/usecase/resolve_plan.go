package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/resolver"
)

// ResolvePlanParams contains parameters for resolving a plan on one chain
type ResolvePlanParams struct {
	// Network is a network name or eid; defaults to the configured network
	Network string
}

// ResolvePlanResult contains the resolution of one chain
type ResolvePlanResult struct {
	Chain      domain.ChainID
	Config     domain.ChainConfig
	Resolution *domain.Resolution
}

// ResolvePlan computes the deployment actions of a chain without executing them
type ResolvePlan struct {
	cfg   *config.RuntimeConfig
	store AddressStore
	log   *slog.Logger
}

// NewResolvePlan creates a new ResolvePlan use case
func NewResolvePlan(cfg *config.RuntimeConfig, store AddressStore, log *slog.Logger) *ResolvePlan {
	return &ResolvePlan{
		cfg:   cfg,
		store: store,
		log:   log.With("component", "ResolvePlan"),
	}
}

// Run executes the use case
func (uc *ResolvePlan) Run(ctx context.Context, params ResolvePlanParams) (*ResolvePlanResult, error) {
	plan := uc.cfg.Plan
	if plan == nil {
		return nil, fmt.Errorf("no deployment plan loaded")
	}

	ref := params.Network
	if ref == "" {
		ref = uc.cfg.Network
	}
	if ref == "" {
		return nil, fmt.Errorf("no network specified, use --network")
	}

	chain, chainCfg, err := plan.Chains.Lookup(ref)
	if err != nil {
		return nil, err
	}

	uc.log.Debug("resolving plan", "network", chainCfg.Name, "eid", chain)
	res, err := resolver.Resolve(plan, chain, uc.store)
	if err != nil {
		return nil, err
	}

	for _, w := range res.Warnings {
		uc.log.Warn(w.Message, "eid", w.Chain, "artifact", w.Subject)
	}
	uc.log.Debug("plan resolved", "role", res.Role, "actions", len(res.Actions), "skipped", len(res.Skipped))

	return &ResolvePlanResult{
		Chain:      chain,
		Config:     chainCfg,
		Resolution: res,
	}, nil
}
