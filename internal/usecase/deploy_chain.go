package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// DeployChainParams contains parameters for deploying a chain
type DeployChainParams struct {
	Network string
	// Tags limits the run to chains whose role is listed ("hub", "spoke")
	Tags   []string
	DryRun bool
}

// DeployChainResult contains the result of a deployment run
type DeployChainResult struct {
	Chain        domain.ChainID
	Config       domain.ChainConfig
	Resolution   *domain.Resolution
	Deployed     []DeployedArtifact
	SkippedByTag bool
	DryRun       bool
}

// DeployedArtifact is an artifact deployed by this run
type DeployedArtifact struct {
	Artifact        string
	Contract        string
	Address         string
	TransactionHash string
	Args            []string
}

// DeployChain resolves the plan on one chain and executes its deploy actions
// in order. The first failure stops the run; everything deployed before it is
// already recorded, so a rerun resumes at the failed artifact.
type DeployChain struct {
	resolve   *ResolvePlan
	store     AddressStore
	deployers DeployerFactory
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployChain creates a new DeployChain use case
func NewDeployChain(
	resolve *ResolvePlan,
	store AddressStore,
	deployers DeployerFactory,
	progress ProgressSink,
	log *slog.Logger,
) *DeployChain {
	return &DeployChain{
		resolve:   resolve,
		store:     store,
		deployers: deployers,
		progress:  progress,
		log:       log.With("component", "DeployChain"),
	}
}

// Run executes the use case
func (uc *DeployChain) Run(ctx context.Context, params DeployChainParams) (*DeployChainResult, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Resolving deployment plan", Spinner: true})

	resolved, err := uc.resolve.Run(ctx, ResolvePlanParams{Network: params.Network})
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return nil, err
	}

	res := resolved.Resolution
	result := &DeployChainResult{
		Chain:      resolved.Chain,
		Config:     resolved.Config,
		Resolution: res,
		DryRun:     params.DryRun,
	}

	if len(params.Tags) > 0 && !lo.Contains(params.Tags, string(res.Role)) {
		uc.log.Info("chain role not selected by tags, skipping", "role", res.Role, "tags", params.Tags)
		result.SkippedByTag = true
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return result, nil
	}

	if params.DryRun || res.Empty() {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return result, nil
	}

	deployer, err := uc.deployers.Connect(ctx, resolved.Config)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return nil, fmt.Errorf("failed to connect to %s: %w", resolved.Config.Name, err)
	}
	defer deployer.Close()

	addresses := make(map[string]string)
	for _, s := range res.Skipped {
		if s.Resolved != nil && s.Resolved.Address != "" {
			addresses[s.Artifact] = s.Resolved.Address
		}
	}

	for i, action := range res.Actions {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageDeploying,
			Current: i + 1,
			Total:   len(res.Actions),
			Message: fmt.Sprintf("Deploying %s (%s)", action.Artifact, action.Contract),
			Spinner: true,
		})

		deployed, err := uc.execute(ctx, deployer, resolved.Config.NetworkKey, action, addresses)
		if err != nil {
			uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
			uc.progress.Error(fmt.Sprintf("%s failed: %v", action.Artifact, err))
			return result, err
		}

		addresses[action.Artifact] = deployed.Address
		result.Deployed = append(result.Deployed, *deployed)
		uc.progress.Info(fmt.Sprintf("Deployed %s at %s", action.Artifact, deployed.Address))
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}

func (uc *DeployChain) execute(ctx context.Context, deployer ChainDeployer, networkKey string, action domain.DeploymentAction, addresses map[string]string) (*DeployedArtifact, error) {
	fail := func(err error) error {
		return &domain.DeployerError{Chain: action.Chain, Artifact: action.Artifact, Contract: action.Contract, Err: err}
	}

	args, err := bindArgs(ctx, deployer, action.Args, addresses)
	if err != nil {
		return nil, fail(err)
	}

	uc.log.Debug("deploying", "artifact", action.Artifact, "contract", action.Contract, "args", args)
	out, err := deployer.Deploy(ctx, DeployRequest{
		Contract: action.Contract,
		Args:     args,
		Value:    action.Value,
		GasLimit: action.GasLimit,
	})
	if err != nil {
		return nil, fail(err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageRecording, Message: fmt.Sprintf("Recording %s", action.Contract)})
	record := &domain.DeploymentRecord{
		Contract:        action.Contract,
		Address:         out.Address,
		TransactionHash: out.TransactionHash,
		BlockNumber:     out.BlockNumber,
		Args:            args,
		DeployedAt:      time.Now().UTC(),
	}
	if err := uc.store.Save(ctx, networkKey, record); err != nil {
		return nil, fmt.Errorf("deployed %s at %s but failed to record it: %w", action.Artifact, out.Address, err)
	}

	uc.log.Info("deployed", "artifact", action.Artifact, "contract", action.Contract, "address", out.Address, "tx", out.TransactionHash)
	return &DeployedArtifact{
		Artifact:        action.Artifact,
		Contract:        action.Contract,
		Address:         out.Address,
		TransactionHash: out.TransactionHash,
		Args:            args,
	}, nil
}

// bindArgs completes the arguments the resolver left unbound
func bindArgs(ctx context.Context, deployer ChainDeployer, args []domain.Arg, addresses map[string]string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg.Bound {
			out = append(out, arg.Value)
			continue
		}

		switch arg.Template.Kind {
		case domain.ArgDeployer:
			out = append(out, deployer.Sender())

		case domain.ArgRef, domain.ArgOptionalRef:
			addr, ok := addresses[arg.Template.Value]
			if !ok {
				return nil, fmt.Errorf("prerequisite %s has no address", arg.Template.Value)
			}
			out = append(out, addr)

		case domain.ArgToken:
			addr := arg.Value
			if addr == "" {
				addr = addresses[arg.Template.Value]
			}
			if addr == "" {
				return nil, fmt.Errorf("prerequisite %s has no address", arg.Template.Value)
			}
			token, err := deployer.ReadToken(ctx, addr)
			if err != nil {
				return nil, fmt.Errorf("failed to read token of %s: %w", arg.Template.Value, err)
			}
			out = append(out, token)

		default:
			return nil, fmt.Errorf("argument %s was left unbound", arg.Template.String())
		}
	}
	return out, nil
}
