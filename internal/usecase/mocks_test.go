package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory AddressStore
type memStore struct {
	mu      sync.Mutex
	records map[string]map[string]*domain.DeploymentRecord
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]map[string]*domain.DeploymentRecord)}
}

func (s *memStore) put(networkKey, contract, address string) {
	_ = s.Save(context.Background(), networkKey, &domain.DeploymentRecord{Contract: contract, Address: address})
}

func (s *memStore) Lookup(networkKey, contractName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[networkKey][contractName]; ok {
		return rec.Address, nil
	}
	return "", fmt.Errorf("%s/%s: %w", networkKey, contractName, domain.ErrNotFound)
}

func (s *memStore) Save(_ context.Context, networkKey string, record *domain.DeploymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[networkKey] == nil {
		s.records[networkKey] = make(map[string]*domain.DeploymentRecord)
	}
	s.records[networkKey][record.Contract] = record
	return nil
}

func (s *memStore) List(_ context.Context, networkKey string) ([]*domain.DeploymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.DeploymentRecord
	for _, rec := range s.records[networkKey] {
		out = append(out, rec)
	}
	return out, nil
}

// MockDeployerFactory is a mock implementation of DeployerFactory
type MockDeployerFactory struct {
	mock.Mock
}

func (m *MockDeployerFactory) Connect(ctx context.Context, chain domain.ChainConfig) (ChainDeployer, error) {
	args := m.Called(ctx, chain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ChainDeployer), args.Error(1)
}

// MockChainDeployer is a mock implementation of ChainDeployer
type MockChainDeployer struct {
	mock.Mock
}

func (m *MockChainDeployer) Sender() string {
	return m.Called().String(0)
}

func (m *MockChainDeployer) Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeployResult), args.Error(1)
}

func (m *MockChainDeployer) ReadToken(ctx context.Context, address string) (string, error) {
	args := m.Called(ctx, address)
	return args.String(0), args.Error(1)
}

func (m *MockChainDeployer) Close() {
	m.Called()
}

// MockMetadataFetcher is a mock implementation of MetadataFetcher
type MockMetadataFetcher struct {
	mock.Mock
}

func (m *MockMetadataFetcher) Fetch(ctx context.Context) (domain.MetadataRegistry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.MetadataRegistry), args.Error(1)
}

// MockFileWriter is a mock implementation of FileWriter
type MockFileWriter struct {
	mock.Mock
}

func (m *MockFileWriter) WriteJSON(ctx context.Context, path string, v any) error {
	args := m.Called(ctx, path, v)
	return args.Error(0)
}

// recordingProgress keeps every event for assertions
type recordingProgress struct {
	events []ProgressEvent
	infos  []string
	errors []string
}

func (p *recordingProgress) OnProgress(_ context.Context, event ProgressEvent) {
	p.events = append(p.events, event)
}
func (p *recordingProgress) Info(message string)  { p.infos = append(p.infos, message) }
func (p *recordingProgress) Error(message string) { p.errors = append(p.errors, message) }
