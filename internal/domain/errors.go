package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an address is not a valid hex address
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnknownNetwork is returned when a chain is not part of the configuration
	ErrUnknownNetwork = errors.New("unknown network")
)

// ConfigurationError reports a malformed deployment plan. It is fatal and is
// always raised before any deployment action executes.
type ConfigurationError struct {
	Chain    ChainID
	Artifact string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Artifact != "" && e.Chain != 0:
		return fmt.Sprintf("configuration error: %s on eid %d: %s", e.Artifact, e.Chain, e.Reason)
	case e.Artifact != "":
		return fmt.Sprintf("configuration error: %s: %s", e.Artifact, e.Reason)
	case e.Chain != 0:
		return fmt.Sprintf("configuration error: eid %d: %s", e.Chain, e.Reason)
	default:
		return "configuration error: " + e.Reason
	}
}

// NewConfigurationError builds a ConfigurationError with a formatted reason.
func NewConfigurationError(chain ChainID, artifact string, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Chain:    chain,
		Artifact: artifact,
		Reason:   fmt.Sprintf(format, args...),
	}
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// ResolutionWarning is a non-fatal condition found while resolving or
// building metadata. Warnings are collected and logged, never returned as errors.
type ResolutionWarning struct {
	Chain   ChainID
	Subject string
	Message string
}

func (w ResolutionWarning) String() string {
	if w.Chain == 0 {
		return w.Message
	}
	if w.Subject != "" {
		return fmt.Sprintf("eid %d: %s: %s", w.Chain, w.Subject, w.Message)
	}
	return fmt.Sprintf("eid %d: %s", w.Chain, w.Message)
}

// DeployerError wraps a failure surfaced by the contract deployer.
type DeployerError struct {
	Chain    ChainID
	Artifact string
	Contract string
	Err      error
}

func (e *DeployerError) Error() string {
	return fmt.Sprintf("deploy %s (%s) on eid %d: %v", e.Artifact, e.Contract, e.Chain, e.Err)
}

func (e *DeployerError) Unwrap() error {
	return e.Err
}
