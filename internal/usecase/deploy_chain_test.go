package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

type deployFixture struct {
	store     *memStore
	factory   *MockDeployerFactory
	deployer  *MockChainDeployer
	progress  *recordingProgress
	useCase   *DeployChain
	hubConfig domain.ChainConfig
}

func newDeployFixture(t *testing.T) *deployFixture {
	t.Helper()
	cfg := testConfig(t)
	store := newMemStore()
	store.put("hedera-testnet", "EndpointV2", endpointAddr)
	store.put("base-sepolia", "EndpointV2", endpointAddr)

	f := &deployFixture{
		store:     store,
		factory:   new(MockDeployerFactory),
		deployer:  new(MockChainDeployer),
		progress:  &recordingProgress{},
		hubConfig: cfg.Plan.Chains[hubEID],
	}
	log := discardLogger()
	f.useCase = NewDeployChain(NewResolvePlan(cfg, store, log), store, f.factory, f.progress, log)
	return f
}

func (f *deployFixture) expectHubDeployments() {
	f.factory.On("Connect", mock.Anything, f.hubConfig).Return(f.deployer, nil).Once()
	f.deployer.On("Sender").Return(deployerAddr)
	f.deployer.On("Close").Return().Once()
	f.deployer.On("ReadToken", mock.Anything, connectorAddr).Return(tokenAddr, nil).Once()

	f.deployer.On("Deploy", mock.Anything, DeployRequest{
		Contract: "MyERC4626",
		Args:     []string{tokenAddr, "MyShareOFT", "SHARE", deployerAddr},
	}).Return(&DeployResult{Address: vaultAddr, TransactionHash: "0x01", BlockNumber: 10}, nil).Once()
}

func TestDeployChain_DeploysHubInDependencyOrder(t *testing.T) {
	f := newDeployFixture(t)
	f.expectHubDeployments()
	f.deployer.On("Deploy", mock.Anything, DeployRequest{
		Contract: "MyShareOFTAdapter",
		Args:     []string{vaultAddr, endpointAddr, deployerAddr},
	}).Return(&DeployResult{Address: adapterAddr, TransactionHash: "0x02", BlockNumber: 11}, nil).Once()
	f.deployer.On("Deploy", mock.Anything, DeployRequest{
		Contract: "MyOVaultComposer",
		Args:     []string{vaultAddr, connectorAddr, adapterAddr},
		GasLimit: 6_000_000,
	}).Return(&DeployResult{Address: composerAddr, TransactionHash: "0x03", BlockNumber: 12}, nil).Once()

	result, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "hedera-testnet"})
	require.NoError(t, err)

	assert.Equal(t, hubEID, result.Chain)
	assert.Equal(t, domain.RoleHub, result.Resolution.Role)
	require.Len(t, result.Deployed, 3)
	assert.Equal(t, []string{domain.ArtifactVault, domain.ArtifactShareAdapter, domain.ArtifactComposer},
		[]string{result.Deployed[0].Artifact, result.Deployed[1].Artifact, result.Deployed[2].Artifact})

	for contract, want := range map[string]string{
		"MyERC4626":         vaultAddr,
		"MyShareOFTAdapter": adapterAddr,
		"MyOVaultComposer":  composerAddr,
	} {
		got, err := f.store.Lookup("hedera-testnet", contract)
		require.NoError(t, err, contract)
		assert.Equal(t, want, got)
	}

	records, err := f.store.List(context.Background(), "hedera-testnet")
	require.NoError(t, err)
	for _, rec := range records {
		if rec.Contract == "MyOVaultComposer" {
			assert.Equal(t, "0x03", rec.TransactionHash)
			assert.Equal(t, uint64(12), rec.BlockNumber)
			assert.False(t, rec.DeployedAt.IsZero())
		}
	}

	assert.Equal(t, StageCompleted, f.progress.events[len(f.progress.events)-1].Stage)
	assert.Len(t, f.progress.infos, 3)
	f.factory.AssertExpectations(t)
	f.deployer.AssertExpectations(t)
}

func TestDeployChain_RerunIsNoOp(t *testing.T) {
	f := newDeployFixture(t)
	f.store.put("hedera-testnet", "MyERC4626", vaultAddr)
	f.store.put("hedera-testnet", "MyShareOFTAdapter", adapterAddr)
	f.store.put("hedera-testnet", "MyOVaultComposer", composerAddr)

	result, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "40285"})
	require.NoError(t, err)

	assert.Empty(t, result.Deployed)
	assert.True(t, result.Resolution.Empty())
	f.factory.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
}

func TestDeployChain_FailureKeepsEarlierDeployments(t *testing.T) {
	f := newDeployFixture(t)
	f.expectHubDeployments()
	f.deployer.On("Deploy", mock.Anything, mock.MatchedBy(func(req DeployRequest) bool {
		return req.Contract == "MyShareOFTAdapter"
	})).Return(nil, errors.New("execution reverted")).Once()

	result, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "hedera-testnet"})
	require.Error(t, err)

	var deployErr *domain.DeployerError
	require.ErrorAs(t, err, &deployErr)
	assert.Equal(t, domain.ArtifactShareAdapter, deployErr.Artifact)
	assert.Equal(t, hubEID, deployErr.Chain)
	assert.Contains(t, err.Error(), "execution reverted")

	require.NotNil(t, result)
	require.Len(t, result.Deployed, 1)
	addr, err := f.store.Lookup("hedera-testnet", "MyERC4626")
	require.NoError(t, err)
	assert.Equal(t, vaultAddr, addr)

	_, err = f.store.Lookup("hedera-testnet", "MyOVaultComposer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, f.progress.errors, 1)

	f.deployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.MatchedBy(func(req DeployRequest) bool {
		return req.Contract == "MyOVaultComposer"
	}))
	f.deployer.AssertCalled(t, "Close")
}

func TestDeployChain_TokenReadFailure(t *testing.T) {
	f := newDeployFixture(t)
	f.factory.On("Connect", mock.Anything, f.hubConfig).Return(f.deployer, nil).Once()
	f.deployer.On("Close").Return().Once()
	f.deployer.On("ReadToken", mock.Anything, connectorAddr).Return("", errors.New("no token()")).Once()

	_, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "hedera-testnet"})

	var deployErr *domain.DeployerError
	require.ErrorAs(t, err, &deployErr)
	assert.Equal(t, domain.ArtifactVault, deployErr.Artifact)
	assert.Contains(t, err.Error(), "failed to read token of assetToken")
	f.deployer.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
}

func TestDeployChain_Spoke(t *testing.T) {
	f := newDeployFixture(t)
	spokeConfig := testPlan(t).Chains[spokeEID]
	f.factory.On("Connect", mock.Anything, spokeConfig).Return(f.deployer, nil).Once()
	f.deployer.On("Sender").Return(deployerAddr)
	f.deployer.On("Close").Return().Once()
	f.deployer.On("Deploy", mock.Anything, DeployRequest{
		Contract: "MyShareOFT",
		Args:     []string{"MyShareOFT", "SHARE", endpointAddr, deployerAddr},
	}).Return(&DeployResult{Address: adapterAddr, TransactionHash: "0x04"}, nil).Once()

	result, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "base-sepolia"})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleSpoke, result.Resolution.Role)
	require.Len(t, result.Deployed, 1)
	assert.Equal(t, domain.ArtifactShareToken, result.Deployed[0].Artifact)
	f.deployer.AssertExpectations(t)
}

func TestDeployChain_SkipsWithoutConnecting(t *testing.T) {
	tests := []struct {
		name        string
		params      DeployChainParams
		wantTagSkip bool
		wantActions int
	}{
		{
			name:        "dry run",
			params:      DeployChainParams{Network: "hedera-testnet", DryRun: true},
			wantActions: 3,
		},
		{
			name:        "role not in tags",
			params:      DeployChainParams{Network: "hedera-testnet", Tags: []string{"spoke"}},
			wantTagSkip: true,
			wantActions: 3,
		},
		{
			name:        "outside topology",
			params:      DeployChainParams{Network: "sepolia"},
			wantActions: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeployFixture(t)

			result, err := f.useCase.Run(context.Background(), tt.params)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTagSkip, result.SkippedByTag)
			assert.Equal(t, tt.params.DryRun, result.DryRun)
			assert.Len(t, result.Resolution.Actions, tt.wantActions)
			assert.Empty(t, result.Deployed)
			f.factory.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
		})
	}
}

func TestDeployChain_TagsMatchingRoleDeploy(t *testing.T) {
	f := newDeployFixture(t)
	f.store.put("hedera-testnet", "MyERC4626", vaultAddr)
	f.store.put("hedera-testnet", "MyShareOFTAdapter", adapterAddr)
	f.factory.On("Connect", mock.Anything, f.hubConfig).Return(f.deployer, nil).Once()
	f.deployer.On("Close").Return().Once()
	f.deployer.On("Deploy", mock.Anything, DeployRequest{
		Contract: "MyOVaultComposer",
		Args:     []string{vaultAddr, connectorAddr, adapterAddr},
		GasLimit: 6_000_000,
	}).Return(&DeployResult{Address: composerAddr}, nil).Once()

	result, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "hedera-testnet", Tags: []string{"hub"}})
	require.NoError(t, err)

	assert.False(t, result.SkippedByTag)
	require.Len(t, result.Deployed, 1)
	assert.Equal(t, composerAddr, result.Deployed[0].Address)
	f.deployer.AssertExpectations(t)
}

func TestDeployChain_Errors(t *testing.T) {
	t.Run("connect failure", func(t *testing.T) {
		f := newDeployFixture(t)
		f.factory.On("Connect", mock.Anything, f.hubConfig).Return(nil, errors.New("dial tcp: refused")).Once()

		_, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "hedera-testnet"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to hedera-testnet")
	})

	t.Run("unknown network", func(t *testing.T) {
		f := newDeployFixture(t)

		_, err := f.useCase.Run(context.Background(), DeployChainParams{Network: "mainnet"})
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
		f.factory.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
	})

	t.Run("missing endpoint is a configuration error", func(t *testing.T) {
		cfg := testConfig(t)
		store := newMemStore()
		factory := new(MockDeployerFactory)
		log := discardLogger()
		uc := NewDeployChain(NewResolvePlan(cfg, store, log), store, factory, NopProgress{}, log)

		_, err := uc.Run(context.Background(), DeployChainParams{Network: "hedera-testnet"})
		assert.True(t, domain.IsConfigurationError(err))
		factory.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
	})
}
