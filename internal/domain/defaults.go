package domain

// DefaultLang is used when the default mapping carries no usable "lang".
const DefaultLang = "en"

// Built-in templates, used when the embedded defaults cannot be loaded or
// leave a template empty.
const (
	BuiltinTitleTemplate = "{{notification}}"
	BuiltinTextTemplate  = "{{notification}}"
	BuiltinHTMLTemplate  = "<p>{{{notification}}}</p>"
)

// Defaults is the fixed configuration a Notification is constructed from.
type Defaults struct {
	TitleTemplate string        `json:"title_template"`
	TextTemplate  string        `json:"text_template"`
	HTMLTemplate  string        `json:"html_template"`
	Values        Substitutions `json:"values"`
}

// BuiltinDefaults returns the built-in templates with an empty mapping.
func BuiltinDefaults() Defaults {
	return Defaults{
		TitleTemplate: BuiltinTitleTemplate,
		TextTemplate:  BuiltinTextTemplate,
		HTMLTemplate:  BuiltinHTMLTemplate,
		Values:        Substitutions{},
	}
}

// Clone returns a copy of d with its own mapping.
func (d Defaults) Clone() Defaults {
	d.Values = d.Values.Clone()
	return d
}

// Merge overlays project-level template and value overrides.
// Non-empty templates win; values are merged key by key.
func (d Defaults) Merge(cfg ProjectConfig) Defaults {
	out := d.Clone()
	if cfg.Templates.Title != "" {
		out.TitleTemplate = cfg.Templates.Title
	}
	if cfg.Templates.Text != "" {
		out.TextTemplate = cfg.Templates.Text
	}
	if cfg.Templates.HTML != "" {
		out.HTMLTemplate = cfg.Templates.HTML
	}
	for k, v := range cfg.Values {
		out.Values[k] = FromAny(v)
	}
	return out
}
