package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ChainID is the endpoint id of a chain in the messaging layer (the "eid").
// It is the only chain identity used across the resolver, the store and the
// metadata overlay.
type ChainID uint32

// ParseChainID parses a decimal endpoint id.
func ParseChainID(s string) (ChainID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", s, err)
	}
	return ChainID(v), nil
}

func (c ChainID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// ChainRole is the position of a chain in the mesh topology
type ChainRole string

const (
	RoleHub   ChainRole = "hub"
	RoleSpoke ChainRole = "spoke"
)

// ParseChainRole parses a role name, case-insensitively.
func ParseChainRole(s string) (ChainRole, error) {
	switch ChainRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleHub:
		return RoleHub, nil
	case RoleSpoke:
		return RoleSpoke, nil
	default:
		return "", fmt.Errorf("unknown chain role %q (expected hub or spoke)", s)
	}
}

// ChainConfig describes one chain taking part in a plan
type ChainConfig struct {
	// NetworkKey is the folder name used by the address store, e.g. "hedera-testnet"
	NetworkKey string
	// Name is the network name used on the command line
	Name   string
	RPCURL string
	// RPCEndpoint is the configured value before env expansion, e.g. ${BASE_RPC_URL}
	RPCEndpoint string
	// Addresses holds pre-existing external addresses (routers, wrapped native
	// tokens) referenced by external: argument templates.
	Addresses map[string]string
}

// ChainDirectory maps chain identities to their configuration.
type ChainDirectory map[ChainID]ChainConfig

// NetworkKey returns the address-store key of a chain.
func (d ChainDirectory) NetworkKey(id ChainID) (string, error) {
	cfg, ok := d[id]
	if !ok || cfg.NetworkKey == "" {
		return "", fmt.Errorf("%w: no network key configured for eid %d", ErrUnknownNetwork, id)
	}
	return cfg.NetworkKey, nil
}

// Lookup finds a chain by eid, network name or network key.
func (d ChainDirectory) Lookup(ref string) (ChainID, ChainConfig, error) {
	if id, err := ParseChainID(ref); err == nil {
		if cfg, ok := d[id]; ok {
			return id, cfg, nil
		}
	}
	for _, id := range d.IDs() {
		cfg := d[id]
		if cfg.Name == ref || cfg.NetworkKey == ref {
			return id, cfg, nil
		}
	}
	return 0, ChainConfig{}, fmt.Errorf("%w: %s", ErrUnknownNetwork, ref)
}

// IDs returns the configured chain ids in ascending order.
func (d ChainDirectory) IDs() []ChainID {
	ids := make([]ChainID, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
