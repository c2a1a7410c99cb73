// Package metadata loads the worker metadata registry, either from the public
// metadata endpoint or from a local snapshot.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/ovault-cli/internal/config"
	"github.com/trebuchet-org/ovault-cli/internal/domain"
	"github.com/trebuchet-org/ovault-cli/internal/usecase"
)

// HTTPFetcher downloads the registry from the metadata endpoint
type HTTPFetcher struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewHTTPFetcher creates a fetcher for url
func NewHTTPFetcher(url string, timeout time.Duration, log *slog.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With("component", "HTTPFetcher"),
	}
}

// Fetch retrieves and decodes the registry
func (f *HTTPFetcher) Fetch(ctx context.Context) (domain.MetadataRegistry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	f.log.Debug("fetching worker metadata", "url", f.url)
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata API error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var registry domain.MetadataRegistry
	if err := json.Unmarshal(body, &registry); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	f.log.Debug("worker metadata fetched", "chains", len(registry))
	return registry, nil
}

// FileFetcher reads a registry snapshot saved as JSON or YAML
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a fetcher for a local snapshot
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Fetch reads and decodes the snapshot
func (f *FileFetcher) Fetch(_ context.Context) (domain.MetadataRegistry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".yaml", ".yml":
		// decoded generically, then through the JSON codec that keeps unknown fields
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse metadata file %s: %w", f.path, err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert metadata file %s: %w", f.path, err)
		}
	}

	var registry domain.MetadataRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", f.path, err)
	}
	return registry, nil
}

// ProvideFetcher picks the local snapshot when one is configured
func ProvideFetcher(cfg *config.RuntimeConfig, log *slog.Logger) usecase.MetadataFetcher {
	if cfg.MetadataFile != "" {
		return NewFileFetcher(cfg.MetadataFile)
	}
	return NewHTTPFetcher(cfg.MetadataURL, cfg.Timeout, log)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var (
	_ usecase.MetadataFetcher = (*HTTPFetcher)(nil)
	_ usecase.MetadataFetcher = (*FileFetcher)(nil)
)
