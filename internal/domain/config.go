package domain

import (
	"fmt"
	"net/url"
)

// DefaultTimeoutSeconds bounds a single delivery when no timeout is configured.
const DefaultTimeoutSeconds = 10

// ProjectConfig holds project-level configuration loaded from .rqpush.yaml.
type ProjectConfig struct {
	Endpoint       string         `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	SharedSecret   string         `yaml:"shared_secret,omitempty" json:"-"`
	Priority       *uint8         `yaml:"priority,omitempty" json:"priority,omitempty"`
	TTL            *uint32        `yaml:"ttl,omitempty" json:"ttl,omitempty"`
	TimeoutSeconds int            `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
	History        *bool          `yaml:"history,omitempty" json:"history,omitempty"`
	Templates      TemplateConfig `yaml:"templates,omitempty" json:"templates,omitempty"`
	Values         map[string]any `yaml:"values,omitempty" json:"values,omitempty"`
}

// TemplateConfig overrides the default templates.
type TemplateConfig struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Text  string `yaml:"text,omitempty" json:"text,omitempty"`
	HTML  string `yaml:"html,omitempty" json:"html,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// Timeout returns the configured delivery timeout in seconds.
func (c ProjectConfig) Timeout() int {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds
	}
	return c.TimeoutSeconds
}

// HistoryEnabled defaults to true.
func (c ProjectConfig) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// Validate checks user-supplied values.
func (c ProjectConfig) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return fmt.Errorf("endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint %q: scheme must be http or https", c.Endpoint)
		}
		if u.Host == "" {
			return fmt.Errorf("endpoint %q: missing host", c.Endpoint)
		}
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	return nil
}
