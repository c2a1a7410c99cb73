package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork lets the operator pick one of the plan's networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []usecase.NetworkStatus, prompt string) (*usecase.NetworkStatus, error) {
	if len(networks) == 0 {
		return nil, fmt.Errorf("no networks to select from")
	}
	if len(networks) == 1 {
		return &networks[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("no network specified, use --network")
	}

	options := formatNetworkOptions(networks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(networkSearchKeys(networks)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &networks[index], nil
}

// Confirm asks a yes/no question. Without a terminal every action is confirmed.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return true, nil
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("input cancelled: %w", err)
	}
	return true, nil
}

// formatNetworkOptions renders "name (eid, role)" lines
func formatNetworkOptions(networks []usecase.NetworkStatus) []string {
	options := make([]string, len(networks))
	for i, n := range networks {
		name := color.New(color.FgWhite, color.Bold).Sprint(n.Name)
		role := string(n.Role)
		if role == "" {
			role = "unused"
		}
		options[i] = fmt.Sprintf("%s (%s, %s)", name, n.Chain, color.New(color.FgBlue).Sprint(role))
	}
	return options
}

// networkSearchKeys are the uncolored strings the search matches against
func networkSearchKeys(networks []usecase.NetworkStatus) []string {
	keys := make([]string, len(networks))
	for i, n := range networks {
		keys[i] = fmt.Sprintf("%s %s %s %s", n.Name, n.NetworkKey, n.Chain, n.Role)
	}
	return keys
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
