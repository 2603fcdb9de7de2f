package layerdal

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

// SourcesConfig is the source-resolution table for dataset documents. It
// is read once at startup and never mutated afterwards.
type SourcesConfig struct {
	// UseLocalData enables the local-path override table.
	UseLocalData bool `json:"useLocalData"`
	// LocalPaths maps a source key to a file on disk.
	LocalPaths map[string]string `json:"localPaths"`
	// ReleaseURLs maps a source key to a published dataset release URL.
	ReleaseURLs map[string]string `json:"releaseURLs"`
	// DefaultBase is a base URL combined with the per-key filename when
	// neither of the tables above resolves.
	DefaultBase string `json:"defaultBase"`
	// Filenames is the fixed per-key filename used with DefaultBase.
	Filenames map[string]string `json:"filenames"`
}

// Resolve maps a source key to a URL (or local path). Precedence: local
// override (only with UseLocalData) → release URL table → default base +
// filename → absent. Pure: no I/O, no mutation.
func (c *SourcesConfig) Resolve(sourceKey string) (string, bool) {
	if c.UseLocalData {
		localPath, ok := c.LocalPaths[sourceKey]
		if ok && localPath != "" {
			return localPath, true
		}
	}

	releaseURL, ok := c.ReleaseURLs[sourceKey]
	if ok && releaseURL != "" {
		return releaseURL, true
	}

	if c.DefaultBase != "" {
		filename, ok := c.Filenames[sourceKey]
		if ok && filename != "" {
			return strings.TrimSuffix(c.DefaultBase, "/") + "/" + filename, true
		}
	}

	return "", false
}

// LoadSourcesConfig reads a SourcesConfig from a JSON file, filling in the
// built-in per-key filenames for keys the file doesn't mention.
func LoadSourcesConfig(filePath string) (*SourcesConfig, errorsx.Error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errorsx.Wrap(err, "config file", filePath)
	}
	defer file.Close()

	config := new(SourcesConfig)
	err = json.NewDecoder(file).Decode(config)
	if err != nil {
		return nil, errorsx.Wrap(err, "config file", filePath)
	}

	defaults := DefaultSourcesConfig()
	if config.Filenames == nil {
		config.Filenames = defaults.Filenames
	}
	if config.DefaultBase == "" {
		config.DefaultBase = defaults.DefaultBase
	}

	return config, nil
}

// DefaultSourcesConfig resolves every built-in source key against the
// published dataset releases.
func DefaultSourcesConfig() *SourcesConfig {
	return &SourcesConfig{
		DefaultBase: "https://datos.mapaescolar.org/releases/latest",
		Filenames: map[string]string{
			"veredas":  "veredas.topo.json",
			"sedes":    "sedes.geojson",
			"internet": "sedes.geojson",
			"energia":  "sedes.geojson",
		},
	}
}
