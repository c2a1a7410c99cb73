package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// WorkerDescriptor describes an executor or DVN known to the metadata registry
type WorkerDescriptor struct {
	Version       int    `json:"version"`
	CanonicalName string `json:"canonicalName"`
	ID            string `json:"id"`
}

// DeploymentEntry is one messaging-layer deployment listed for a chain. Only the
// endpoint id is interpreted; every other field is kept as-is.
type DeploymentEntry struct {
	EID   string
	Extra map[string]json.RawMessage

	rawEID json.RawMessage
}

// ChainID parses the entry's eid.
func (d DeploymentEntry) ChainID() (ChainID, bool) {
	id, err := ParseChainID(d.EID)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (d *DeploymentEntry) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["eid"]; ok {
		eid, err := decodeEID(raw)
		if err != nil {
			return err
		}
		d.EID = eid
		d.rawEID = raw
		delete(fields, "eid")
	}
	d.Extra = fields
	return nil
}

func (d DeploymentEntry) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(d.Extra)+1)
	for k, v := range d.Extra {
		fields[k] = v
	}
	if d.EID != "" {
		fields["eid"] = d.EID
		// keep the number/string form the registry used
		if prev, err := decodeEID(d.rawEID); err == nil && prev == d.EID {
			fields["eid"] = d.rawEID
		}
	}
	return json.Marshal(fields)
}

// registries publish eids both as strings and as numbers
func decodeEID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid eid %s: %w", string(raw), err)
	}
	return strconv.FormatUint(n, 10), nil
}

// ChainEntry is the registry entry of one chain key.
type ChainEntry struct {
	Deployments []DeploymentEntry
	Executors   map[string]WorkerDescriptor
	DVNs        map[string]WorkerDescriptor
	// Extra keeps every other registry field verbatim
	Extra map[string]json.RawMessage
}

func (e *ChainEntry) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["deployments"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &e.Deployments); err != nil {
			return fmt.Errorf("deployments: %w", err)
		}
		delete(fields, "deployments")
	}
	if raw, ok := fields["executors"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &e.Executors); err != nil {
			return fmt.Errorf("executors: %w", err)
		}
		delete(fields, "executors")
	}
	if raw, ok := fields["dvns"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &e.DVNs); err != nil {
			return fmt.Errorf("dvns: %w", err)
		}
		delete(fields, "dvns")
	}
	e.Extra = fields
	return nil
}

// isNull reports an explicit JSON null, which stays in Extra so it is written back as is
func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func (e ChainEntry) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(e.Extra)+3)
	for k, v := range e.Extra {
		fields[k] = v
	}
	if e.Deployments != nil {
		fields["deployments"] = e.Deployments
	}
	if e.Executors != nil {
		fields["executors"] = e.Executors
	}
	if e.DVNs != nil {
		fields["dvns"] = e.DVNs
	}
	return json.Marshal(fields)
}

// Clone returns a copy whose maps and slices can be modified without touching e.
func (e ChainEntry) Clone() ChainEntry {
	out := ChainEntry{
		Executors: maps.Clone(e.Executors),
		DVNs:      maps.Clone(e.DVNs),
		Extra:     maps.Clone(e.Extra),
	}
	if e.Deployments != nil {
		out.Deployments = make([]DeploymentEntry, len(e.Deployments))
		for i, d := range e.Deployments {
			out.Deployments[i] = DeploymentEntry{EID: d.EID, Extra: maps.Clone(d.Extra), rawEID: d.rawEID}
		}
	}
	return out
}

// MetadataRegistry maps chain keys (e.g. "hedera-testnet") to their entries.
type MetadataRegistry map[string]ChainEntry

// Clone returns a shallow copy of the registry; entries are shared until
// replaced, so callers must Clone an entry before changing it.
func (r MetadataRegistry) Clone() MetadataRegistry {
	return maps.Clone(r)
}

// ConfiguredEndpoint is a contract the operator wires into the mesh on a chain
type ConfiguredEndpoint struct {
	Chain        ChainID `yaml:"eid" json:"eid"`
	ContractName string  `yaml:"contractName" json:"contractName"`
}

// CustomWorkers holds operator-deployed worker addresses for one chain.
// Empty fields mean the default registry workers are used.
type CustomWorkers struct {
	Executor string `yaml:"executor,omitempty" json:"executor,omitempty"`
	DVN      string `yaml:"dvn,omitempty" json:"dvn,omitempty"`
}
