package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Currently no parameters, but we keep the struct for future extensibility
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	PlanName string
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Chain       domain.ChainID
	Name        string
	NetworkKey  string
	Role        domain.ChainRole // empty when the network is configured but not in the topology
	RPCURL      string
	RPCEndpoint string
	Deployed    int
	Error       error
}

// ListNetworks is a use case for listing the plan's networks
type ListNetworks struct {
	cfg   *config.RuntimeConfig
	store AddressStore
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, store AddressStore) *ListNetworks {
	return &ListNetworks{
		cfg:   cfg,
		store: store,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	plan := uc.cfg.Plan
	if plan == nil {
		return nil, fmt.Errorf("no deployment plan loaded")
	}

	// hub first, then spokes in plan order, then configured but unused networks
	ids := plan.ChainIDs()
	for _, id := range plan.Chains.IDs() {
		if _, ok := plan.RoleOf(id); !ok {
			ids = append(ids, id)
		}
	}

	networks := make([]NetworkStatus, 0, len(ids))
	for _, id := range ids {
		chain := plan.Chains[id]
		role, _ := plan.RoleOf(id)
		status := NetworkStatus{
			Chain:       id,
			Name:        chain.Name,
			NetworkKey:  chain.NetworkKey,
			Role:        role,
			RPCURL:      chain.RPCURL,
			RPCEndpoint: chain.RPCEndpoint,
		}

		records, err := uc.store.List(ctx, chain.NetworkKey)
		if err != nil {
			status.Error = err
		} else {
			status.Deployed = len(records)
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		PlanName: plan.Name,
		Networks: networks,
	}, nil
}
