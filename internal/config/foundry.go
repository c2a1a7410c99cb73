package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env then .env.local from the project root. Variables
// already set in the process environment are kept.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				slog.Warn("failed to load env file", "file", envFile, "error", err)
			}
		}
	}
}

// loadFoundryConfig loads foundry.toml. Returns (nil, nil) when the project has none.
func loadFoundryConfig(projectRoot string) (*FoundryConfig, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return nil, nil
	}

	var cfg FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}
	return &cfg, nil
}

// artifactsDir returns the build output directory of the default profile
func artifactsDir(projectRoot string, foundry *FoundryConfig) string {
	out := "out"
	if foundry != nil {
		if profile, ok := foundry.Profile["default"]; ok && profile.OutPath != "" {
			out = profile.OutPath
		}
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(projectRoot, out)
}

// rpcEndpoints returns foundry's raw rpc_endpoints, nil-safe
func (f *FoundryConfig) rpcEndpoints() map[string]string {
	if f == nil {
		return nil
	}
	return f.RpcEndpoints
}
