package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// AddressStoreAdapter keeps one JSON file per deployed contract under
// <deployments>/<network key>/<Contract>.json, the layout hardhat-deploy
// writes, so folders produced by either tool can be read by the other.
type AddressStoreAdapter struct {
	root string
	log  *slog.Logger
	mu   sync.Mutex
}

// NewAddressStoreAdapter creates a new AddressStoreAdapter
func NewAddressStoreAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *AddressStoreAdapter {
	return &AddressStoreAdapter{
		root: cfg.DeploymentsDir,
		log:  log.With("component", "AddressStore"),
	}
}

// Lookup returns the recorded address of contractName on a network
func (s *AddressStoreAdapter) Lookup(networkKey, contractName string) (string, error) {
	path := s.path(networkKey, contractName)
	rec, err := readRecord(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s on %s: %w", contractName, networkKey, domain.ErrNotFound)
		}
		return "", err
	}
	if rec.Address == "" {
		return "", fmt.Errorf("deployment file %s has no address", path)
	}
	if !common.IsHexAddress(rec.Address) {
		return "", fmt.Errorf("deployment file %s: %w: %q", path, domain.ErrInvalidAddress, rec.Address)
	}
	return rec.Address, nil
}

// Save writes the record, replacing any earlier deployment of the same contract.
// Fields written by other tools are kept.
func (s *AddressStoreAdapter) Save(_ context.Context, networkKey string, record *domain.DeploymentRecord) error {
	if record == nil || record.Contract == "" {
		return fmt.Errorf("deployment record has no contract name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.root, networkKey)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	path := s.path(networkKey, record.Contract)
	doc := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			s.log.Warn("replacing unreadable deployment file", "file", path, "error", err)
			doc = make(map[string]json.RawMessage)
		}
	}

	fields, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}
	var recFields map[string]json.RawMessage
	if err := json.Unmarshal(fields, &recFields); err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}
	for k, v := range recFields {
		doc[k] = v
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment record: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+record.Contract+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to write deployment file: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write deployment file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write deployment file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write deployment file: %w", err)
	}

	return nil
}

// List returns the records of a network sorted by contract name. A network
// without a deployments folder has no records.
func (s *AddressStoreAdapter) List(_ context.Context, networkKey string) ([]*domain.DeploymentRecord, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, networkKey))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read deployments directory: %w", err)
	}

	var records []*domain.DeploymentRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, ".") {
			continue
		}
		rec, err := readRecord(filepath.Join(s.root, networkKey, name))
		if err != nil {
			return nil, err
		}
		if rec.Address == "" {
			continue
		}
		rec.Contract = strings.TrimSuffix(name, ".json")
		records = append(records, rec)
	}

	slices.SortFunc(records, func(a, b *domain.DeploymentRecord) int {
		return strings.Compare(a.Contract, b.Contract)
	})
	return records, nil
}

func (s *AddressStoreAdapter) path(networkKey, contractName string) string {
	return filepath.Join(s.root, networkKey, contractName+".json")
}

// storedRecord is the subset of a deployment file this store reads. Files
// written by hardhat-deploy carry arbitrary JSON constructor args.
type storedRecord struct {
	Address         string    `json:"address"`
	TransactionHash string    `json:"transactionHash"`
	BlockNumber     uint64    `json:"blockNumber"`
	Args            []any     `json:"args"`
	DeployedAt      time.Time `json:"deployedAt"`
}

func readRecord(path string) (*domain.DeploymentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read deployment file: %w", err)
	}

	var stored storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse deployment file %s: %w", path, err)
	}

	rec := &domain.DeploymentRecord{
		Address:         stored.Address,
		TransactionHash: stored.TransactionHash,
		BlockNumber:     stored.BlockNumber,
		DeployedAt:      stored.DeployedAt,
	}
	for _, arg := range stored.Args {
		rec.Args = append(rec.Args, fmt.Sprint(arg))
	}
	return rec, nil
}

// Ensure AddressStoreAdapter implements AddressStore
var _ usecase.AddressStore = (*AddressStoreAdapter)(nil)
