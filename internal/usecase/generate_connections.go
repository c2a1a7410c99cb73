package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/connections"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// GenerateConnectionsParams contains parameters for generating connections
type GenerateConnectionsParams struct {
	OutPath string
	// OverlayPath also writes the metadata overlay the connections were resolved against
	OverlayPath string
}

// GenerateConnectionsResult contains the generated document
type GenerateConnectionsResult struct {
	Document *domain.ConnectionsDocument
	Warnings []domain.ResolutionWarning
	OutPath  string
}

// GenerateConnections resolves the mesh pathways against the metadata overlay
type GenerateConnections struct {
	cfg     *config.RuntimeConfig
	overlay *BuildOverlay
	writer  FileWriter
}

// NewGenerateConnections creates a new GenerateConnections use case
func NewGenerateConnections(cfg *config.RuntimeConfig, overlay *BuildOverlay, writer FileWriter) *GenerateConnections {
	return &GenerateConnections{
		cfg:     cfg,
		overlay: overlay,
		writer:  writer,
	}
}

// Run executes the use case
func (uc *GenerateConnections) Run(ctx context.Context, params GenerateConnectionsParams) (*GenerateConnectionsResult, error) {
	built, err := uc.overlay.Run(ctx, BuildOverlayParams{OutPath: params.OverlayPath})
	if err != nil {
		return nil, err
	}

	doc, err := connections.Generate(uc.cfg.Mesh, built.Registry, built.ChainKeys)
	if err != nil {
		return nil, err
	}

	result := &GenerateConnectionsResult{
		Document: doc,
		Warnings: built.Warnings,
	}

	if params.OutPath != "" {
		if err := uc.writer.WriteJSON(ctx, params.OutPath, doc); err != nil {
			return nil, fmt.Errorf("failed to write connections: %w", err)
		}
		result.OutPath = params.OutPath
	}

	return result, nil
}
