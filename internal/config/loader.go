package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the balance file name looked up in the config directories.
const FileName = "tankeroidz.yaml"

// SourceEmbedded is reported by Load when no file was found on disk.
const SourceEmbedded = "embedded"

// Load resolves and validates the balance configuration.
// Search order: customPath -> ~/.tankeroidz/configs/tankeroidz.yaml ->
// ./configs/tankeroidz.yaml -> embedded default.
//
// Files on disk are decoded on top of Default(), so they only need the keys
// they change. Unknown keys are rejected. The returned string names the
// source that was used.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseOver(Default(), data, customPath)
		return cfg, customPath, err
	}

	candidates := []string{userConfigPath(FileName), filepath.Join("configs", FileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, "", fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg, err := parseOver(Default(), data, path)
		return cfg, path, err
	}

	cfg, err := parseOver(Config{}, defaultYAML, SourceEmbedded)
	return cfg, SourceEmbedded, err
}

// Parse decodes a complete balance document without defaults and validates it.
func Parse(data []byte) (Config, error) {
	return parseOver(Config{}, data, "document")
}

func parseOver(base Config, data []byte, source string) (Config, error) {
	cfg := base
	cfg.Difficulties = maps.Clone(base.Difficulties)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &Error{Field: source, Reason: "malformed YAML", Err: err}
	}

	// yaml decodes each map value onto a zero profile; layer them over the
	// base profiles instead so a file can change a single key.
	profiles, err := mergeProfiles(base.Difficulties, data)
	if err != nil {
		return Config{}, &Error{Field: source, Reason: "malformed YAML", Err: err}
	}
	if cfg.Difficulties == nil && len(profiles) > 0 {
		cfg.Difficulties = make(map[string]DifficultyProfile, len(profiles))
	}
	for name, p := range profiles {
		cfg.Difficulties[name] = p
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// profileNodes picks the raw difficulty entries out of a balance document.
// Unknown keys are already rejected by the strict decode in parseOver.
type profileNodes struct {
	Difficulties map[string]yaml.Node `yaml:"difficulties"`
}

// mergeProfiles decodes every difficulty entry in data on top of the
// matching base profile. Profiles missing from base start from zero and are
// left for Validate to reject if incomplete.
func mergeProfiles(base map[string]DifficultyProfile, data []byte) (map[string]DifficultyProfile, error) {
	var doc profileNodes
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]DifficultyProfile, len(doc.Difficulties))
	for name, node := range doc.Difficulties {
		p := base[name]
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("difficulties.%s: %w", name, err)
		}
		out[name] = p
	}
	return out, nil
}

// Marshal encodes cfg back to YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// userConfigPath returns the path to a config file in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tankeroidz", "configs", filename)
}

// ConfigDir returns the user config directory path.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tankeroidz", "configs")
}
