package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultMetadataURL serves the worker metadata registry of the messaging layer
const DefaultMetadataURL = "https://metadata.layerzero-api.com/v1/metadata"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		// Try to find project root
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env feeds ${VAR} expansion in the plan and the signing key
	loadEnvFiles(projectRoot)

	cfg := &RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".ovault"),
		DeploymentsDir: resolvePath(projectRoot, v.GetString("deployments")),
		Network:        v.GetString("network"),
		Debug:          v.GetBool("debug"),
		JSON:           v.GetBool("json"),
		NonInteractive: v.GetBool("non_interactive") || v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry_run"),
		PrivateKey:     v.GetString("private_key"),
		MetadataURL:    v.GetString("metadata_url"),
	}
	if cfg.PrivateKey == "" {
		cfg.PrivateKey = os.Getenv("PRIVATE_KEY")
	}
	if file := v.GetString("metadata_file"); file != "" {
		cfg.MetadataFile = resolvePath(projectRoot, file)
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig
	cfg.ArtifactsDir = artifactsDir(projectRoot, foundryConfig)

	plan, err := LoadPlan(resolvePath(projectRoot, v.GetString("plan")), foundryConfig.rpcEndpoints())
	if err != nil {
		return nil, err
	}
	cfg.Plan = plan

	mesh, err := LoadMeshConfig(resolvePath(projectRoot, v.GetString("mesh")))
	if err != nil {
		return nil, err
	}
	cfg.Mesh = mesh

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find ovault.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		planFile := filepath.Join(dir, DefaultPlanFile)
		if _, err := os.Stat(planFile); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding ovault.toml
			return "", fmt.Errorf("not in an ovault project (%s not found)", DefaultPlanFile)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".ovault"))

	// Set up environment variables
	v.SetEnvPrefix("OVAULT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("plan", DefaultPlanFile)
	v.SetDefault("mesh", DefaultMeshFile)
	v.SetDefault("deployments", "deployments")
	v.SetDefault("metadata_url", DefaultMetadataURL)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
