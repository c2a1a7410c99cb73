package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// DefaultMeshFile is the mesh file looked up in the project root
const DefaultMeshFile = "mesh.yaml"

// Worker contract names used when the mesh file does not set them
const (
	DefaultExecutorContract = "SimpleExecutorMock"
	DefaultDVNContract      = "SimpleDVNMock"
)

// LoadMeshConfig reads a mesh file. Returns (nil, nil) when it does not exist.
func LoadMeshConfig(path string) (*domain.MeshConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var mesh domain.MeshConfig
	if err := yaml.Unmarshal(data, &mesh); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if mesh.Workers.ExecutorContract == "" {
		mesh.Workers.ExecutorContract = DefaultExecutorContract
	}
	if mesh.Workers.DVNContract == "" {
		mesh.Workers.DVNContract = DefaultDVNContract
	}

	if err := validateMesh(&mesh); err != nil {
		return nil, fmt.Errorf("invalid mesh %s: %w", filepath.Base(path), err)
	}
	return &mesh, nil
}

func validateMesh(mesh *domain.MeshConfig) error {
	if len(mesh.Contracts) == 0 {
		return fmt.Errorf("no contracts configured")
	}
	seen := make(map[domain.ChainID]bool)
	for i, c := range mesh.Contracts {
		if c.Chain == 0 {
			return fmt.Errorf("contract %d: eid is required", i)
		}
		if c.ContractName == "" {
			return fmt.Errorf("contract %d: contractName is required", i)
		}
		if seen[c.Chain] {
			return fmt.Errorf("contract %d: eid %d is configured twice", i, c.Chain)
		}
		seen[c.Chain] = true
	}
	return nil
}
