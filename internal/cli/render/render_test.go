package render

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const vaultAddr = "0xAAA0000000000000000000000000000000000AAA"

func hubResolution() *usecase.ResolvePlanResult {
	return &usecase.ResolvePlanResult{
		Chain:  40285,
		Config: domain.ChainConfig{Name: "hedera-testnet", NetworkKey: "hedera-testnet"},
		Resolution: &domain.Resolution{
			Chain: 40285,
			Role:  domain.RoleHub,
			Order: []string{"vault", "shareAdapter"},
			Skipped: []domain.DeploymentAction{{
				Kind:     domain.ActionSkip,
				Artifact: "vault",
				Contract: "MyERC4626",
				Resolved: &domain.ResolvedAddress{Address: vaultAddr, Source: domain.SourceStore},
			}},
			Actions: []domain.DeploymentAction{{
				Kind:     domain.ActionDeploy,
				Artifact: "shareAdapter",
				Contract: "MyShareOFTAdapter",
				Args: []domain.Arg{
					{Template: domain.ArgTemplate{Kind: domain.ArgRef, Value: "vault"}, Value: vaultAddr, Bound: true},
					{Template: domain.ArgTemplate{Kind: domain.ArgDeployer}},
				},
			}},
			Warnings: []domain.ResolutionWarning{{Chain: 40285, Message: "composer gas limit is low"}},
		},
	}
}

func TestRenderPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlanRenderer(&buf, false).RenderPlan([]*usecase.ResolvePlanResult{hubResolution()}))

	out := buf.String()
	assert.Contains(t, out, "hedera-testnet (eid 40285) Hub")
	assert.Contains(t, out, "MyERC4626")
	assert.Contains(t, out, vaultAddr+" (store)")
	assert.Contains(t, out, "("+vaultAddr+", <deployer>)")
	assert.Contains(t, out, "1 to deploy, 1 already resolved")
	assert.Contains(t, out, "composer gas limit is low")
}

func TestRenderPlan_OutsideTopology(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlanRenderer(&buf, false).RenderPlan([]*usecase.ResolvePlanResult{{
		Chain:      40161,
		Config:     domain.ChainConfig{Name: "sepolia"},
		Resolution: &domain.Resolution{Chain: 40161},
	}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "not part of the mesh, nothing to deploy")
}

func TestRenderDeploy(t *testing.T) {
	plan := hubResolution()

	tests := []struct {
		name   string
		result *usecase.DeployChainResult
		want   []string
	}{
		{
			name: "deployed",
			result: &usecase.DeployChainResult{
				Chain: plan.Chain, Config: plan.Config, Resolution: plan.Resolution,
				Deployed: []usecase.DeployedArtifact{{Artifact: "shareAdapter", Contract: "MyShareOFTAdapter", Address: vaultAddr, TransactionHash: "0xabc"}},
			},
			want: []string{"shareAdapter", "0xabc", "Deployed 1 contract(s) on hedera-testnet"},
		},
		{
			name: "up to date",
			result: &usecase.DeployChainResult{
				Chain: plan.Chain, Config: plan.Config, Resolution: &domain.Resolution{Role: domain.RoleHub},
			},
			want: []string{"hedera-testnet is up to date"},
		},
		{
			name: "skipped by tag",
			result: &usecase.DeployChainResult{
				Chain: plan.Chain, Config: plan.Config, Resolution: plan.Resolution, SkippedByTag: true,
			},
			want: []string{"Skipping hedera-testnet: its role (hub) is not selected by --tags"},
		},
		{
			name: "dry run",
			result: &usecase.DeployChainResult{
				Chain: plan.Chain, Config: plan.Config, Resolution: plan.Resolution, DryRun: true,
			},
			want: []string{"Dry run, nothing is sent", "1 to deploy, 1 already resolved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewDeployRenderer(&buf, false).RenderDeploy(tt.result))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRenderNetworksList(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf, false).RenderNetworksList(&usecase.ListNetworksResult{
		PlanName: "ovault",
		Networks: []usecase.NetworkStatus{
			{Chain: 40285, Name: "hedera-testnet", Role: domain.RoleHub, RPCURL: "https://testnet.hashio.io/api", RPCEndpoint: "${HEDERA_TESTNET_RPC_URL}", Deployed: 3},
			{Chain: 40245, Name: "base-sepolia", Role: domain.RoleSpoke},
			{Chain: 40161, Name: "sepolia", RPCURL: "https://rpc.sepolia.org", Error: errors.New("read deployments: permission denied")},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Networks of ovault")
	assert.Contains(t, out, "${HEDERA_TESTNET_RPC_URL}")
	assert.Contains(t, out, "Spoke")
	assert.Contains(t, out, "not set")
	assert.Contains(t, out, "❌ Permission denied")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ Connection refused", FormatError("dial tcp: connection refused"))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, map[string]string{"eid": "40285"}))
	assert.Equal(t, "{\n  \"eid\": \"40285\"\n}\n", buf.String())
}

func TestRenderOverlay(t *testing.T) {
	var buf bytes.Buffer
	err := NewOverlayRenderer(&buf, false).RenderOverlay(&usecase.BuildOverlayResult{
		ChainKeys: map[domain.ChainID]string{40285: "hedera-testnet", 40245: "base-sepolia"},
		Workers: map[domain.ChainID]domain.CustomWorkers{
			40285: {Executor: vaultAddr},
		},
		OutPath: "layerzero.metadata.json",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("base-sepolia")), bytes.Index(buf.Bytes(), []byte("hedera-testnet")), "rows are ordered by eid")
	assert.Contains(t, out, vaultAddr)
	assert.Contains(t, out, "Metadata overlay written to layerzero.metadata.json")
}
