package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

const (
	hubEID   domain.ChainID = 40285
	spokeEID domain.ChainID = 40245
	idleEID  domain.ChainID = 40161

	deployerAddr  = "0xD000000000000000000000000000000000000D00"
	endpointAddr  = "0x6EDCE65403992e310A62460808c4b910D972f10f"
	connectorAddr = "0xC000000000000000000000000000000000000C00"
	tokenAddr     = "0x0000000000000000000000000000000000471d5E"
	vaultAddr     = "0xAAA0000000000000000000000000000000000AAA"
	adapterAddr   = "0xBBB0000000000000000000000000000000000BBB"
	composerAddr  = "0xCCC0000000000000000000000000000000000CCC"
)

func templates(t *testing.T, raw ...string) []domain.ArgTemplate {
	t.Helper()
	out := make([]domain.ArgTemplate, 0, len(raw))
	for _, r := range raw {
		tmpl, err := domain.ParseArgTemplate(r)
		require.NoError(t, err)
		out = append(out, tmpl)
	}
	return out
}

// testPlan mirrors an HTS-backed vault: the asset connector lives on the hub
// already, the vault reads its token, and the spoke only carries the share OFT.
func testPlan(t *testing.T) *domain.DeploymentPlan {
	t.Helper()
	return &domain.DeploymentPlan{
		Name:   "ovault",
		Hub:    hubEID,
		Spokes: []domain.ChainID{spokeEID},
		Chains: domain.ChainDirectory{
			hubEID:   {NetworkKey: "hedera-testnet", Name: "hedera-testnet", RPCURL: "https://testnet.hashio.io/api", RPCEndpoint: "${HEDERA_TESTNET_RPC_URL}"},
			spokeEID: {NetworkKey: "base-sepolia", Name: "base-sepolia", RPCURL: "https://sepolia.base.org"},
			idleEID:  {NetworkKey: "sepolia", Name: "sepolia"},
		},
		Artifacts: map[string]domain.ArtifactSpec{
			domain.ArtifactAssetToken: {
				Contract:  "MyHTSConnector",
				Role:      domain.RoleHub,
				Manual:    true,
				Overrides: map[domain.ChainID]string{hubEID: connectorAddr},
			},
			domain.ArtifactVault: {
				Contract: "MyERC4626",
				Role:     domain.RoleHub,
				Args:     templates(t, "token:assetToken", "MyShareOFT", "SHARE", "deployer"),
			},
			domain.ArtifactShareAdapter: {
				Contract: "MyShareOFTAdapter",
				Role:     domain.RoleHub,
				Args:     templates(t, "ref:vault", "contract:EndpointV2", "deployer"),
			},
			domain.ArtifactComposer: {
				Contract: "MyOVaultComposer",
				Role:     domain.RoleHub,
				Args:     templates(t, "ref:vault", "ref:assetToken", "ref:shareAdapter"),
				GasLimit: 6_000_000,
			},
			domain.ArtifactShareToken: {
				Contract: "MyShareOFT",
				Role:     domain.RoleSpoke,
				Args:     templates(t, "MyShareOFT", "SHARE", "contract:EndpointV2", "deployer"),
			},
		},
	}
}

func testMesh() *domain.MeshConfig {
	return &domain.MeshConfig{
		Workers: domain.WorkerSettings{
			Slug:             "my-custom",
			ExecutorName:     "MyCustomExecutor",
			DVNName:          "MyCustomDVN",
			ExecutorContract: config.DefaultExecutorContract,
			DVNContract:      config.DefaultDVNContract,
		},
		Contracts: []domain.ConfiguredEndpoint{
			{Chain: hubEID, ContractName: "MyShareOFTAdapter"},
			{Chain: spokeEID, ContractName: "MyShareOFT"},
		},
	}
}

func testConfig(t *testing.T) *config.RuntimeConfig {
	t.Helper()
	return &config.RuntimeConfig{
		Plan: testPlan(t),
		Mesh: testMesh(),
	}
}

// baseRegistry is a trimmed copy of the public worker metadata for both chains
func baseRegistry() domain.MetadataRegistry {
	return domain.MetadataRegistry{
		"hedera-testnet": domain.ChainEntry{
			Deployments: []domain.DeploymentEntry{{EID: "40285"}},
			Executors:   map[string]domain.WorkerDescriptor{},
			DVNs: map[string]domain.WorkerDescriptor{
				"0x00000000000000000000000000000000000d5e01": {Version: 2, CanonicalName: "LayerZero Labs", ID: "layerzero-labs"},
			},
		},
		"base-sepolia": domain.ChainEntry{
			Deployments: []domain.DeploymentEntry{{EID: "40245"}},
			Executors:   map[string]domain.WorkerDescriptor{},
			DVNs:        map[string]domain.WorkerDescriptor{},
		},
	}
}
