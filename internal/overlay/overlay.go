// Package overlay layers operator-deployed executors and DVNs on top of a base
// worker metadata registry.
package overlay

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// Options controls the descriptors written for custom workers
type Options struct {
	// Slug prefixes descriptor ids: "<slug>-executor-<chainKey>"
	Slug          string
	ExecutorName  string
	DVNName       string
	WorkerVersion int
}

// DefaultOptions returns the names used when the mesh config sets none.
func DefaultOptions() Options {
	return Options{
		Slug:          "my-custom",
		ExecutorName:  "MyCustomExecutor",
		DVNName:       "MyCustomDVN",
		WorkerVersion: 2,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Slug == "" {
		o.Slug = def.Slug
	}
	if o.ExecutorName == "" {
		o.ExecutorName = def.ExecutorName
	}
	if o.DVNName == "" {
		o.DVNName = def.DVNName
	}
	if o.WorkerVersion == 0 {
		o.WorkerVersion = def.WorkerVersion
	}
	return o
}

// Result is the extended registry plus everything worth telling the operator
type Result struct {
	Registry domain.MetadataRegistry
	// ChainKeys maps each configured chain to the registry key it was found under
	ChainKeys map[domain.ChainID]string
	Warnings  []domain.ResolutionWarning
}

// DiscoverChainKeys maps chain ids to registry chain keys by scanning each
// entry's deployments. Keys are visited in sorted order and the first key
// listing an id wins; a later key never replaces an earlier match, unlike a
// last-write scan over the registry's own ordering. The mapping is therefore
// stable for a given registry whatever order its entries were decoded in.
func DiscoverChainKeys(base domain.MetadataRegistry, ids []domain.ChainID) map[domain.ChainID]string {
	wanted := lo.SliceToMap(ids, func(id domain.ChainID) (domain.ChainID, bool) { return id, true })
	found := make(map[domain.ChainID]string)

	keys := lo.Keys(base)
	slices.Sort(keys)
	for _, key := range keys {
		for _, dep := range base[key].Deployments {
			id, ok := dep.ChainID()
			if !ok || !wanted[id] {
				continue
			}
			if _, seen := found[id]; !seen {
				found[id] = key
			}
		}
	}
	return found
}

// Build returns base extended with the custom workers of every configured
// endpoint. base is never modified: touched entries are cloned, untouched
// entries are shared with the result.
func Build(base domain.MetadataRegistry, endpoints []domain.ConfiguredEndpoint, workers map[domain.ChainID]domain.CustomWorkers, opts Options) *Result {
	opts = opts.withDefaults()

	ids := lo.Uniq(lo.Map(endpoints, func(e domain.ConfiguredEndpoint, _ int) domain.ChainID { return e.Chain }))
	slices.Sort(ids)

	chainKeys := DiscoverChainKeys(base, ids)
	res := &Result{
		Registry:  base.Clone(),
		ChainKeys: chainKeys,
	}
	if res.Registry == nil {
		res.Registry = make(domain.MetadataRegistry)
	}

	if len(chainKeys) == 0 {
		res.Warnings = append(res.Warnings, domain.ResolutionWarning{
			Message: "no chain keys found for configured endpoints",
		})
		return res
	}

	for _, id := range ids {
		key, ok := chainKeys[id]
		if !ok {
			res.Warnings = append(res.Warnings, domain.ResolutionWarning{
				Chain:   id,
				Message: fmt.Sprintf("no chain key found for eid %d, skipping custom executor/DVN configuration", id),
			})
			continue
		}

		custom, ok := workers[id]
		if !ok || (custom.Executor == "" && custom.DVN == "") {
			continue
		}

		entry := res.Registry[key].Clone()
		if custom.Executor != "" {
			if entry.Executors == nil {
				entry.Executors = make(map[string]domain.WorkerDescriptor)
			}
			entry.Executors[custom.Executor] = domain.WorkerDescriptor{
				Version:       opts.WorkerVersion,
				CanonicalName: opts.ExecutorName,
				ID:            fmt.Sprintf("%s-executor-%s", opts.Slug, key),
			}
		}
		if custom.DVN != "" {
			if entry.DVNs == nil {
				entry.DVNs = make(map[string]domain.WorkerDescriptor)
			}
			entry.DVNs[custom.DVN] = domain.WorkerDescriptor{
				Version:       opts.WorkerVersion,
				CanonicalName: opts.DVNName,
				ID:            fmt.Sprintf("%s-dvn-%s", opts.Slug, key),
			}
		}
		res.Registry[key] = entry
	}

	return res
}
