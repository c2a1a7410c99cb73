package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgTemplate(t *testing.T) {
	tests := []struct {
		raw     string
		want    ArgTemplate
		wantErr bool
	}{
		{raw: "deployer", want: ArgTemplate{Kind: ArgDeployer}},
		{raw: "eid", want: ArgTemplate{Kind: ArgEID}},
		{raw: "ref:vault", want: ArgTemplate{Kind: ArgRef, Value: "vault"}},
		{raw: "ref?:strategy", want: ArgTemplate{Kind: ArgOptionalRef, Value: "strategy"}},
		{raw: "contract:EndpointV2", want: ArgTemplate{Kind: ArgContract, Value: "EndpointV2"}},
		{raw: "external:router", want: ArgTemplate{Kind: ArgExternal, Value: "router"}},
		{raw: "token:assetToken", want: ArgTemplate{Kind: ArgToken, Value: "assetToken"}},
		{raw: "lit:ref:vault", want: ArgTemplate{Kind: ArgLiteral, Value: "ref:vault"}},
		{raw: "MyShareOFT", want: ArgTemplate{Kind: ArgLiteral, Value: "MyShareOFT"}},
		{raw: "https://example.org", want: ArgTemplate{Kind: ArgLiteral, Value: "https://example.org"}},
		{raw: "ref:", wantErr: true},
		{raw: "contract:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseArgTemplate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgTemplateStringRoundTrip(t *testing.T) {
	for _, raw := range []string{"deployer", "eid", "ref:vault", "ref?:strategy", "token:assetToken", "MyShareOFT"} {
		tmpl, err := ParseArgTemplate(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, tmpl.String())
	}
}

func TestArtifactSpecPrerequisites(t *testing.T) {
	spec := ArtifactSpec{
		Args: []ArgTemplate{
			{Kind: ArgRef, Value: "vault"},
			{Kind: ArgToken, Value: "assetToken"},
			{Kind: ArgContract, Value: "EndpointV2"},
			{Kind: ArgOptionalRef, Value: "vault"},
			{Kind: ArgDeployer},
		},
		After: []string{"strategy"},
	}
	assert.Equal(t, []string{"assetToken", "strategy", "vault"}, spec.Prerequisites())
	assert.Empty(t, ArtifactSpec{}.Prerequisites())
}

func TestDeploymentPlanRoles(t *testing.T) {
	plan := &DeploymentPlan{Hub: 40285, Spokes: []ChainID{40245, 40161}}

	role, ok := plan.RoleOf(40285)
	assert.True(t, ok)
	assert.Equal(t, RoleHub, role)

	role, ok = plan.RoleOf(40161)
	assert.True(t, ok)
	assert.Equal(t, RoleSpoke, role)

	_, ok = plan.RoleOf(1)
	assert.False(t, ok)

	assert.Equal(t, []ChainID{40285, 40245, 40161}, plan.ChainIDs())
}

func TestRequiredRole(t *testing.T) {
	role, ok := RequiredRole(ArtifactShareAdapter)
	assert.True(t, ok)
	assert.Equal(t, RoleHub, role)

	role, ok = RequiredRole(ArtifactShareToken)
	assert.True(t, ok)
	assert.Equal(t, RoleSpoke, role)

	_, ok = RequiredRole(ArtifactAssetToken)
	assert.False(t, ok)
}

func TestChainDirectory(t *testing.T) {
	dir := ChainDirectory{
		40285: {NetworkKey: "hedera-testnet", Name: "hedera"},
		40245: {NetworkKey: "base-sepolia", Name: "base"},
	}

	id, _, err := dir.Lookup("hedera")
	require.NoError(t, err)
	assert.Equal(t, ChainID(40285), id)

	id, _, err = dir.Lookup("base-sepolia")
	require.NoError(t, err)
	assert.Equal(t, ChainID(40245), id)

	id, _, err = dir.Lookup("40245")
	require.NoError(t, err)
	assert.Equal(t, ChainID(40245), id)

	_, _, err = dir.Lookup("arbitrum")
	assert.True(t, errors.Is(err, ErrUnknownNetwork))

	_, err = dir.NetworkKey(1)
	assert.True(t, errors.Is(err, ErrUnknownNetwork))

	assert.Equal(t, []ChainID{40245, 40285}, dir.IDs())
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError(40285, "vault", "override %q is not a hex address", "nope")
	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "vault")
	assert.Contains(t, err.Error(), "nope")
	assert.False(t, IsConfigurationError(errors.New("plain")))
}

func TestResolutionSteps(t *testing.T) {
	res := &Resolution{
		Role:    RoleHub,
		Order:   []string{"assetToken", "vault", "shareAdapter"},
		Skipped: []DeploymentAction{{Kind: ActionSkip, Artifact: "vault"}},
		Actions: []DeploymentAction{{Kind: ActionDeploy, Artifact: "shareAdapter"}},
	}
	steps := res.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, "vault", steps[0].Artifact)
	assert.Equal(t, "shareAdapter", steps[1].Artifact)
	assert.True(t, res.InTopology())
	assert.False(t, res.Empty())
}
