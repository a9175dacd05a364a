package domain

// TemplateKind selects escaping rules: text renders raw, HTML escapes
// double-stash placeholders.
type TemplateKind int

const (
	TemplateText TemplateKind = iota
	TemplateHTML
)

// Field names an output field of the resolver.
type Field string

const (
	FieldTitle     Field = "title"
	FieldShortText Field = "short_text"
	FieldShortHTML Field = "short_html"
	FieldLongText  Field = "long_text"
	FieldLongHTML  Field = "long_html"
)

// RenderFailure records a field whose template failed and resolved to "".
type RenderFailure struct {
	Field Field
	Err   error
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Outbound OutboundNotification
	Failures []RenderFailure
}

// Resolve completes every output field of n using the fixed default chain
// and renders each one through r. Templates taken from the defaults are
// stored on n, so later calls reuse them.
func Resolve(n *Notification, r Renderer, priority uint8, ttl uint32) Resolution {
	n.SyncReserved()
	res := &resolver{n: n, r: r}
	d := n.defaults

	out := OutboundNotification{
		App:      n.app,
		Lang:     n.lang,
		Priority: priority,
		TTL:      ttl,
	}

	// 1. title
	titleTmpl := assign(&n.titleTemplate, d.TitleTemplate, BuiltinTitleTemplate)
	out.Title = res.render(FieldTitle, TemplateText, titleTmpl, n.title)
	n.values.Set(KeyTitle, String(out.Title))

	// 2-4. url, category, tagline
	out.URL = deref(n.url, "")
	out.Category = deref(n.category, "")
	out.Tagline = deref(n.tagline, n.app)
	n.values.Set(KeyTagline, String(out.Tagline))

	// 5. short text
	textTmpl := assign(&n.shortTextTemplate, d.TextTemplate, BuiltinTextTemplate)
	out.ShortText = res.render(FieldShortText, TemplateText, textTmpl, n.shortText)

	// 6. short html, sourced from the unrendered short text
	shortHTML := deref(n.shortHTML, n.shortText)
	htmlTmpl := assign(&n.shortHTMLTemplate, d.HTMLTemplate, BuiltinHTMLTemplate)
	out.ShortHTML = res.render(FieldShortHTML, TemplateHTML, htmlTmpl, shortHTML)

	// 7. long text
	longText := deref(n.longText, n.shortText)
	longTextTmpl := assign(&n.longTextTemplate, d.TextTemplate, BuiltinTextTemplate)
	out.LongText = res.render(FieldLongText, TemplateText, longTextTmpl, longText)

	// 8. long html, sourced from the unrendered long text
	longHTML := deref(n.longHTML, longText)
	longHTMLTmpl := assign(&n.longHTMLTemplate, d.HTMLTemplate, BuiltinHTMLTemplate)
	out.LongHTML = res.render(FieldLongHTML, TemplateHTML, longHTMLTmpl, longHTML)

	return Resolution{Outbound: out, Failures: res.failures}
}

type resolver struct {
	n        *Notification
	r        Renderer
	failures []RenderFailure
}

func (rs *resolver) render(field Field, kind TemplateKind, tmpl, source string) string {
	rs.n.values.Set(KeyNotification, String(source))
	out, err := rs.r.Render(kind, tmpl, rs.n.values.Native())
	if err != nil {
		rs.failures = append(rs.failures, RenderFailure{Field: field, Err: err})
		return ""
	}
	return out
}

// assign returns the template in slot, first storing def (or builtin when
// def is empty) if the slot is unset.
func assign(slot **string, def, builtin string) string {
	if *slot == nil {
		if def == "" {
			def = builtin
		}
		*slot = &def
	}
	return **slot
}
