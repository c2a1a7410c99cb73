package interactive

import (
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

var testNetworks = []usecase.NetworkStatus{
	{Chain: 40285, Name: "hedera-testnet", NetworkKey: "hedera-testnet", Role: domain.RoleHub},
	{Chain: 40245, Name: "base-sepolia", NetworkKey: "base-sepolia", Role: domain.RoleSpoke},
	{Chain: 40161, Name: "sepolia", NetworkKey: "sepolia"},
}

func TestSelectNetwork_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	_, err := s.SelectNetwork(context.Background(), testNetworks, "Select network")
	assert.EqualError(t, err, "no network specified, use --network")

	only, err := s.SelectNetwork(context.Background(), testNetworks[1:2], "Select network")
	require.NoError(t, err)
	assert.Equal(t, "base-sepolia", only.Name)

	_, err = s.SelectNetwork(context.Background(), nil, "Select network")
	assert.EqualError(t, err, "no networks to select from")
}

func TestConfirm_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	ok, err := s.Confirm(context.Background(), "Deploy?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFormatNetworkOptions(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	assert.Equal(t, []string{
		"hedera-testnet (40285, hub)",
		"base-sepolia (40245, spoke)",
		"sepolia (40161, unused)",
	}, formatNetworkOptions(testNetworks))
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc(networkSearchKeys(testNetworks))

	tests := []struct {
		input string
		want  []bool
	}{
		{input: "", want: []bool{true, true, true}},
		{input: "hub", want: []bool{true, false, false}},
		{input: "40245", want: []bool{false, true, false}},
		{input: "Sepolia", want: []bool{false, true, true}},
		{input: "hdrtst", want: []bool{true, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			for i, want := range tt.want {
				assert.Equal(t, want, search(tt.input, i), "network %d", i)
			}
		})
	}
}
