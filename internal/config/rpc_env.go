package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in config values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar returns the variable name when rawValue is exactly one ${VAR} reference
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName returns the env var a network's RPC URL is read from when
// nothing else is configured, e.g. hedera-testnet -> HEDERA_TESTNET_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// resolveRPCURL picks the RPC URL of a network: the plan value first, then
// foundry's rpc_endpoints, then the conventional env var. It returns the
// expanded URL and the raw value it came from.
func resolveRPCURL(networkName, planValue string, foundryEndpoints map[string]string) (url string, raw string) {
	raw = planValue
	if raw == "" {
		raw = foundryEndpoints[networkName]
	}
	if raw == "" {
		raw = "${" + GenerateEnvVarName(networkName) + "}"
	}
	return os.ExpandEnv(raw), raw
}
