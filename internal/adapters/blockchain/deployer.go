// Package blockchain sends contract creations and reads on-chain state through
// a JSON-RPC endpoint.
package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// tokenABI is the accessor OFT adapters and ERC4626 vaults expose for their underlying token
const tokenABI = `[{"inputs":[],"name":"token","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

// DeployerFactory connects deployers signing with the configured private key
type DeployerFactory struct {
	privateKey string
	artifacts  *ArtifactLoader
	timeout    time.Duration
	log        *slog.Logger
}

// NewDeployerFactory creates a new deployer factory
func NewDeployerFactory(cfg *config.RuntimeConfig, log *slog.Logger) *DeployerFactory {
	return &DeployerFactory{
		privateKey: cfg.PrivateKey,
		artifacts:  NewArtifactLoader(cfg.ArtifactsDir),
		timeout:    cfg.Timeout,
		log:        log.With("component", "Deployer"),
	}
}

// Connect dials the chain's RPC endpoint
func (f *DeployerFactory) Connect(ctx context.Context, chain domain.ChainConfig) (usecase.ChainDeployer, error) {
	if f.privateKey == "" {
		return nil, fmt.Errorf("no private key configured, set PRIVATE_KEY or OVAULT_PRIVATE_KEY")
	}
	if chain.RPCURL == "" {
		envVar, ok := config.DetectEnvVar(chain.RPCEndpoint)
		if !ok {
			envVar = config.GenerateEnvVarName(chain.Name)
		}
		return nil, fmt.Errorf("no RPC URL for %s, set %s", chain.Name, envVar)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(f.privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	f.log.Debug("dialing RPC", "network", chain.Name)
	client, err := ethclient.DialContext(ctx, chain.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	pub, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		client.Close()
		return nil, fmt.Errorf("failed to cast public key to ECDSA")
	}
	sender := crypto.PubkeyToAddress(*pub)

	f.log.Debug("connected", "network", chain.Name, "chainId", chainID, "sender", sender.Hex())
	return &ChainDeployer{
		client:     client,
		privateKey: privateKey,
		chainID:    chainID,
		sender:     sender,
		artifacts:  f.artifacts,
		timeout:    f.timeout,
		log:        f.log.With("network", chain.Name),
	}, nil
}

// ChainDeployer deploys contracts on one chain
type ChainDeployer struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int
	sender     common.Address
	artifacts  *ArtifactLoader
	timeout    time.Duration
	log        *slog.Logger
}

// Sender returns the deployer address
func (d *ChainDeployer) Sender() string {
	return d.sender.Hex()
}

// Deploy sends the creation transaction and waits for it to be mined
func (d *ChainDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployResult, error) {
	contract, err := d.artifacts.Load(req.Contract)
	if err != nil {
		return nil, err
	}

	args, err := packArgs(contract.ABI.Constructor.Inputs, req.Args)
	if err != nil {
		return nil, err
	}

	value, err := parseWei(req.Value)
	if err != nil {
		return nil, err
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	auth, err := bind.NewKeyedTransactorWithChainID(d.privateKey, d.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx
	auth.GasLimit = req.GasLimit
	auth.Value = value

	address, tx, _, err := bind.DeployContract(auth, contract.ABI, contract.Bytecode, d.client, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy contract: %w", err)
	}

	d.log.
		With("address", address.Hex()).
		With("tx_hash", tx.Hash().Hex()).
		Info("contract deployment transaction sent")

	receipt, err := bind.WaitMined(ctx, d.client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("contract deployment failed with status %d (tx %s)", receipt.Status, tx.Hash().Hex())
	}

	result := &usecase.DeployResult{
		Address:         address.Hex(),
		TransactionHash: tx.Hash().Hex(),
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return result, nil
}

// ReadToken calls token() on address
func (d *ChainDeployer) ReadToken(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAddress, address)
	}

	parsed, err := abi.JSON(strings.NewReader(tokenABI))
	if err != nil {
		return "", err
	}
	data, err := parsed.Pack("token")
	if err != nil {
		return "", err
	}

	to := common.HexToAddress(address)
	out, err := d.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return "", fmt.Errorf("token() call failed: %w", err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%s has no token() accessor", address)
	}

	values, err := parsed.Unpack("token", out)
	if err != nil {
		return "", fmt.Errorf("failed to decode token(): %w", err)
	}
	token, ok := values[0].(common.Address)
	if !ok {
		return "", fmt.Errorf("unexpected token() result %T", values[0])
	}
	return token.Hex(), nil
}

// Close releases the RPC connection
func (d *ChainDeployer) Close() {
	d.client.Close()
}

// Ensure the adapters implement the interfaces
var (
	_ usecase.DeployerFactory = (*DeployerFactory)(nil)
	_ usecase.ChainDeployer   = (*ChainDeployer)(nil)
)
