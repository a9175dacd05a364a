package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyEndpoint is returned when a send is attempted without a destination.
var ErrEmptyEndpoint = errors.New("endpoint is required")

// ConfigLoadError reports that the default template/mapping configuration
// could not be parsed. Callers fall back to BuiltinDefaults.
type ConfigLoadError struct {
	Source string
	Err    error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// TemplateRenderError reports a malformed template or an engine failure.
type TemplateRenderError struct {
	Template string
	Err      error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("rendering template %q: %v", e.Template, e.Err)
}

func (e *TemplateRenderError) Unwrap() error { return e.Err }

// ErrInvalidPriority is returned when a priority does not fit in a uint8.
var ErrInvalidPriority = errors.New("priority must be between 0 and 255")
