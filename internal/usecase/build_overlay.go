package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/overlay"
)

// BuildOverlayParams contains parameters for building the metadata overlay
type BuildOverlayParams struct {
	// OutPath is written when set
	OutPath string
}

// BuildOverlayResult contains the extended registry
type BuildOverlayResult struct {
	Registry  domain.MetadataRegistry
	ChainKeys map[domain.ChainID]string
	Workers   map[domain.ChainID]domain.CustomWorkers
	Warnings  []domain.ResolutionWarning
	OutPath   string
}

// BuildOverlay fetches the base worker metadata and layers the operator's
// executors and DVNs on top of it
type BuildOverlay struct {
	cfg     *config.RuntimeConfig
	store   AddressStore
	fetcher MetadataFetcher
	writer  FileWriter
	log     *slog.Logger
}

// NewBuildOverlay creates a new BuildOverlay use case
func NewBuildOverlay(
	cfg *config.RuntimeConfig,
	store AddressStore,
	fetcher MetadataFetcher,
	writer FileWriter,
	log *slog.Logger,
) *BuildOverlay {
	return &BuildOverlay{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher,
		writer:  writer,
		log:     log.With("component", "BuildOverlay"),
	}
}

// Run executes the use case
func (uc *BuildOverlay) Run(ctx context.Context, params BuildOverlayParams) (*BuildOverlayResult, error) {
	mesh := uc.cfg.Mesh
	if mesh == nil {
		return nil, fmt.Errorf("no mesh configuration (%s not found)", config.DefaultMeshFile)
	}

	base, err := uc.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker metadata: %w", err)
	}

	workers, warnings, err := uc.loadWorkers(mesh)
	if err != nil {
		return nil, err
	}

	built := overlay.Build(base, mesh.Contracts, workers, overlay.Options{
		Slug:         mesh.Workers.Slug,
		ExecutorName: mesh.Workers.ExecutorName,
		DVNName:      mesh.Workers.DVNName,
	})
	warnings = append(warnings, built.Warnings...)

	for _, w := range warnings {
		uc.log.Warn(w.Message, "eid", w.Chain)
	}
	for id, key := range built.ChainKeys {
		uc.log.Debug("discovered chain key", "eid", id, "chainKey", key)
	}

	result := &BuildOverlayResult{
		Registry:  built.Registry,
		ChainKeys: built.ChainKeys,
		Workers:   workers,
		Warnings:  warnings,
	}

	if params.OutPath != "" {
		if err := uc.writer.WriteJSON(ctx, params.OutPath, built.Registry); err != nil {
			return nil, fmt.Errorf("failed to write metadata overlay: %w", err)
		}
		result.OutPath = params.OutPath
	}

	return result, nil
}

// loadWorkers collects the custom worker addresses of every configured chain.
// Pinned addresses win; the rest come from the address store.
func (uc *BuildOverlay) loadWorkers(mesh *domain.MeshConfig) (map[domain.ChainID]domain.CustomWorkers, []domain.ResolutionWarning, error) {
	workers := make(map[domain.ChainID]domain.CustomWorkers)
	var warnings []domain.ResolutionWarning

	for _, id := range mesh.EndpointIDs() {
		w := mesh.Workers.Addresses[id]

		if w.Executor == "" || w.DVN == "" {
			networkKey, err := uc.networkKey(id)
			if err != nil {
				warnings = append(warnings, domain.ResolutionWarning{Chain: id, Message: err.Error()})
			} else {
				if w.Executor == "" {
					w.Executor, err = uc.lookupWorker(networkKey, mesh.Workers.ExecutorContract)
					if err != nil {
						return nil, nil, err
					}
				}
				if w.DVN == "" {
					w.DVN, err = uc.lookupWorker(networkKey, mesh.Workers.DVNContract)
					if err != nil {
						return nil, nil, err
					}
				}
			}
		}

		if w.Executor == "" && w.DVN == "" {
			warnings = append(warnings, domain.ResolutionWarning{
				Chain:   id,
				Message: "no custom executor or DVN deployed, default workers apply",
			})
			continue
		}
		workers[id] = w
	}

	return workers, warnings, nil
}

func (uc *BuildOverlay) networkKey(id domain.ChainID) (string, error) {
	if uc.cfg.Plan == nil {
		return "", fmt.Errorf("%w: no plan to map eid %d to a deployments folder", domain.ErrUnknownNetwork, id)
	}
	return uc.cfg.Plan.Chains.NetworkKey(id)
}

// lookupWorker returns "" when the worker was never deployed on the network
func (uc *BuildOverlay) lookupWorker(networkKey, contract string) (string, error) {
	addr, err := uc.store.Lookup(networkKey, contract)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s on %s: %w", contract, networkKey, err)
	}
	return addr, nil
}
