package domain

import "context"

// Renderer renders a template against bindings.
type Renderer interface {
	Render(kind TemplateKind, template string, bindings map[string]any) (string, error)
}

// Transport delivers an envelope to an intake endpoint.
type Transport interface {
	Deliver(ctx context.Context, endpoint string, msg Message) (*Response, error)
}

// DefaultsLoader provides the fixed default templates and mapping.
// On a parse failure it still returns usable defaults alongside a
// *ConfigLoadError.
type DefaultsLoader interface {
	LoadDefaults() (Defaults, error)
}

// ConfigLoader loads project-level configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// SendHistory records send attempts.
type SendHistory interface {
	Save(record SendRecord) error
	Load() ([]SendRecord, error)
}

// GitInfo exposes repository metadata for substitution variables.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	Branch(projectPath string) (string, error)
}
