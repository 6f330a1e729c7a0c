package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/types"
)

// ProviderSettings configures one text-generation backend.
type ProviderSettings struct {
	APIKey  string `koanf:"api_key" toml:"api_key"`
	Model   string `koanf:"model" toml:"model"`
	BaseURL string `koanf:"base_url" toml:"base_url,omitempty"`
	Enabled bool   `koanf:"enabled" toml:"enabled"`
}

// Settings is the process configuration. It is loaded once at startup and
// passed explicitly into constructors; no component reads it through shared
// mutable state.
type Settings struct {
	Provider          string                      `koanf:"provider" toml:"provider"`
	Providers         map[string]ProviderSettings `koanf:"providers" toml:"providers"`
	LogLevel          string                      `koanf:"log_level" toml:"log_level"`
	MaxFiles          int                         `koanf:"max_files" toml:"max_files"`
	AllowedOperations []string                    `koanf:"allowed_operations" toml:"allowed_operations"`
	ExcludedPaths     []string                    `koanf:"excluded_paths" toml:"excluded_paths"`
}

// DefaultPath returns the default config file location under the XDG config
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "ordna", "config.toml")
}

// Load builds Settings by layering, in order: embedded defaults, the config
// file (explicit path, or config.toml / config.yaml in the default
// location), and ORDNA_* environment variables. Later layers win.
func Load(path string) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	for _, candidate := range configFileCandidates(path) {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := k.Load(file.Provider(candidate), parserFor(candidate)); err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", candidate)
		}
		break
	}

	// ORDNA_MAX_FILES=500 → max_files, ORDNA_PROVIDERS__OPENAI__API_KEY → providers.openai.api_key
	envProvider := env.Provider("ORDNA_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "ORDNA_")), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return settings, nil
}

// Default returns the embedded default settings.
func Default() Settings {
	k := koanf.New(".")
	// The embedded defaults are compiled in and always parse
	_ = k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser())
	var settings Settings
	_ = k.Unmarshal("", &settings)
	return settings
}

func configFileCandidates(path string) []string {
	if path != "" {
		return []string{path}
	}
	dir := filepath.Join(xdg.ConfigHome, "ordna")
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
	}
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// ActiveProvider returns the provider to use: the configured one when it is
// enabled and usable, otherwise the first usable one in name order. Ollama
// does not require an API key; everything else does.
func (s Settings) ActiveProvider() (string, ProviderSettings, error) {
	if ps, ok := s.Providers[s.Provider]; ok && usable(s.Provider, ps) {
		return s.Provider, ps, nil
	}

	names := make([]string, 0, len(s.Providers))
	for name := range s.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ps := s.Providers[name]; usable(name, ps) {
			return name, ps, nil
		}
	}

	return "", ProviderSettings{}, errors.New(errors.ErrConfigLoad,
		"no enabled provider with an API key configured")
}

func usable(name string, ps ProviderSettings) bool {
	if !ps.Enabled {
		return false
	}
	return ps.APIKey != "" || name == "ollama"
}

// AllowedActionTypes parses the allowed_operations list into the closed
// action type set. Unknown names are a configuration error.
func (s Settings) AllowedActionTypes() ([]types.ActionType, error) {
	allowed := make([]types.ActionType, 0, len(s.AllowedOperations))
	for _, name := range s.AllowedOperations {
		t, err := types.ParseActionType(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid allowed operation %q", name)
		}
		allowed = append(allowed, t)
	}
	return allowed, nil
}
