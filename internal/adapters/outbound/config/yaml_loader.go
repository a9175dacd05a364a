package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rqpush/rqpush/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file read from the project root.
const FileName = ".rqpush.yaml"

// SecretEnv supplies the shared secret when the project file has none.
const SecretEnv = "RQPUSH_SHARED_SECRET"

//go:embed defaults.yaml
var embeddedDefaults []byte

type defaultsFile struct {
	Templates domain.TemplateConfig `yaml:"templates"`
	Values    map[string]any        `yaml:"values"`
}

// YAMLLoader implements domain.ConfigLoader and domain.DefaultsLoader.
type YAMLLoader struct {
	defaults func() (domain.Defaults, error)
}

// New creates a YAMLLoader backed by the embedded defaults.
func New() *YAMLLoader {
	return NewWithDefaults(embeddedDefaults)
}

// NewWithDefaults creates a YAMLLoader that parses data instead of the
// embedded defaults. The data is parsed once, on first use.
func NewWithDefaults(data []byte) *YAMLLoader {
	return &YAMLLoader{
		defaults: sync.OnceValues(func() (domain.Defaults, error) {
			return parseDefaults(data)
		}),
	}
}

// LoadDefaults returns the default templates and mapping. If the defaults
// cannot be parsed it returns domain.BuiltinDefaults with a
// *domain.ConfigLoadError.
func (l *YAMLLoader) LoadDefaults() (domain.Defaults, error) {
	d, err := l.defaults()
	return d.Clone(), err
}

func parseDefaults(data []byte) (domain.Defaults, error) {
	var f defaultsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.BuiltinDefaults(), &domain.ConfigLoadError{Source: "defaults.yaml", Err: err}
	}
	d := domain.Defaults{
		TitleTemplate: f.Templates.Title,
		TextTemplate:  f.Templates.Text,
		HTMLTemplate:  f.Templates.HTML,
		Values:        domain.SubstitutionsFromAny(f.Values),
	}
	return d, nil
}

// Load reads .rqpush.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.ProjectConfig{}, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
		}
		if err := cfg.Validate(); err != nil {
			return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
		}
	}

	if cfg.SharedSecret == "" {
		cfg.SharedSecret = os.Getenv(SecretEnv)
	}
	return cfg, nil
}
