package blockchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// CompiledContract is a deployable foundry artifact
type CompiledContract struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// ArtifactLoader reads compiled contracts from the foundry output directory.
// Loaded artifacts are cached for the life of the loader.
type ArtifactLoader struct {
	outDir string

	mu    sync.Mutex
	cache map[string]*CompiledContract
}

// NewArtifactLoader creates a loader over outDir
func NewArtifactLoader(outDir string) *ArtifactLoader {
	return &ArtifactLoader{
		outDir: outDir,
		cache:  make(map[string]*CompiledContract),
	}
}

// foundryArtifact is the subset of a forge build artifact the loader reads.
// Bytecode is {"object": "0x..."} for forge and a bare string for hardhat.
type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode json.RawMessage `json:"bytecode"`
}

// Load returns the artifact of contract. The conventional <Name>.sol/<Name>.json
// location is tried first, then any <File>.sol/<Name>.json.
func (l *ArtifactLoader) Load(contract string) (*CompiledContract, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.cache[contract]; ok {
		return c, nil
	}

	path, err := l.find(contract)
	if err != nil {
		return nil, err
	}

	c, err := parseArtifact(contract, path)
	if err != nil {
		return nil, err
	}
	l.cache[contract] = c
	return c, nil
}

func (l *ArtifactLoader) find(contract string) (string, error) {
	direct := filepath.Join(l.outDir, contract+".sol", contract+".json")
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}

	var found string
	err := filepath.WalkDir(l.outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != contract+".json" {
			return nil
		}
		if strings.HasSuffix(filepath.Dir(path), ".sol") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to search artifacts in %s: %w", l.outDir, err)
	}
	if found == "" {
		return "", fmt.Errorf("no artifact for %s in %s, run forge build", contract, l.outDir)
	}
	return found, nil
}

func parseArtifact(contract, path string) (*CompiledContract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var artifact foundryArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(string(artifact.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", contract, err)
	}

	bytecodeHex, err := bytecodeObject(artifact.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	bytecodeHex = strings.TrimPrefix(bytecodeHex, "0x")
	if bytecodeHex == "" {
		return nil, fmt.Errorf("%s has no creation bytecode (abstract contract or interface?)", contract)
	}
	if strings.Contains(bytecodeHex, "__$") {
		return nil, fmt.Errorf("%s needs linked libraries, which are not supported", contract)
	}

	return &CompiledContract{
		Name:     contract,
		ABI:      parsedABI,
		Bytecode: common.Hex2Bytes(bytecodeHex),
	}, nil
}

func bytecodeObject(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("unrecognized bytecode format: %w", err)
	}
	return obj.Object, nil
}
