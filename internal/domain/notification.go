package domain

// Reserved substitution keys kept in sync with Notification fields.
const (
	KeyApp          = "app"
	KeyURL          = "url"
	KeyCategory     = "category"
	KeyTagline      = "tagline"
	KeyTitle        = "title"
	KeyNotification = "notification"
	KeyLang         = "lang"
)

// Notification is a caller-owned draft. app, title and short text are
// required; every other field stays unset until a setter or Resolve fills it.
//
// Setters mutate the receiver and return it so calls can be chained.
type Notification struct {
	app       string
	url       *string
	tagline   *string
	category  *string
	lang      string
	title     string
	shortText string
	shortHTML *string
	longText  *string
	longHTML  *string

	titleTemplate     *string
	shortTextTemplate *string
	shortHTMLTemplate *string
	longTextTemplate  *string
	longHTMLTemplate  *string

	values   Substitutions
	defaults Defaults
}

// NewNotification creates a Notification seeded from defaults. The default
// mapping is deep-copied; a string "lang" entry becomes the initial language.
func NewNotification(app, title, shortText string, defaults Defaults) *Notification {
	d := defaults.Clone()
	n := &Notification{
		app:       app,
		lang:      DefaultLang,
		title:     title,
		shortText: shortText,
		values:    d.Values.Clone(),
		defaults:  d,
	}
	if v, ok := n.values[KeyLang]; ok {
		if s, ok := v.Str(); ok {
			n.lang = s
		}
	}
	return n
}

func (n *Notification) SetApp(app string) *Notification {
	n.app = app
	n.values.Set(KeyApp, String(app))
	return n
}

func (n *Notification) SetURL(url string) *Notification {
	n.url = &url
	n.values.Set(KeyURL, String(url))
	return n
}

func (n *Notification) SetTagline(tagline string) *Notification {
	n.tagline = &tagline
	n.values.Set(KeyTagline, String(tagline))
	return n
}

func (n *Notification) SetCategory(category string) *Notification {
	n.category = &category
	n.values.Set(KeyCategory, String(category))
	return n
}

func (n *Notification) SetLang(lang string) *Notification {
	n.lang = lang
	n.values.Set(KeyLang, String(lang))
	return n
}

func (n *Notification) SetTitle(title string) *Notification {
	n.title = title
	n.values.Set(KeyTitle, String(title))
	return n
}

func (n *Notification) SetShortText(text string) *Notification {
	n.shortText = text
	return n
}

func (n *Notification) SetShortHTML(html string) *Notification {
	n.shortHTML = &html
	return n
}

func (n *Notification) SetLongText(text string) *Notification {
	n.longText = &text
	return n
}

func (n *Notification) SetLongHTML(html string) *Notification {
	n.longHTML = &html
	return n
}

func (n *Notification) SetTitleTemplate(tmpl string) *Notification {
	n.titleTemplate = &tmpl
	return n
}

func (n *Notification) SetShortTextTemplate(tmpl string) *Notification {
	n.shortTextTemplate = &tmpl
	return n
}

func (n *Notification) SetShortHTMLTemplate(tmpl string) *Notification {
	n.shortHTMLTemplate = &tmpl
	return n
}

func (n *Notification) SetLongTextTemplate(tmpl string) *Notification {
	n.longTextTemplate = &tmpl
	return n
}

func (n *Notification) SetLongHTMLTemplate(tmpl string) *Notification {
	n.longHTMLTemplate = &tmpl
	return n
}

// SetValue stores a substitution variable.
func (n *Notification) SetValue(key string, v Value) *Notification {
	n.values.Set(key, v)
	return n
}

// AddValue stores an arbitrary Go value as a substitution variable.
func (n *Notification) AddValue(key string, v any) *Notification {
	return n.SetValue(key, FromAny(v))
}

// SyncReserved rewrites the reserved keys from the current fields, overriding
// anything written to the map directly. An unset tagline is removed so the
// fallback written by an earlier Resolve is not visible to the title.
func (n *Notification) SyncReserved() {
	n.values.Set(KeyApp, String(n.app))
	n.values.Set(KeyURL, String(deref(n.url, "")))
	n.values.Set(KeyCategory, String(deref(n.category, "")))
	n.values.Set(KeyTitle, String(n.title))
	n.values.Set(KeyLang, String(n.lang))
	if n.tagline != nil {
		n.values.Set(KeyTagline, String(*n.tagline))
	} else {
		delete(n.values, KeyTagline)
	}
}

func (n *Notification) App() string       { return n.app }
func (n *Notification) Lang() string      { return n.lang }
func (n *Notification) Title() string     { return n.title }
func (n *Notification) ShortText() string { return n.shortText }

func (n *Notification) URL() (string, bool)       { return opt(n.url) }
func (n *Notification) Tagline() (string, bool)   { return opt(n.tagline) }
func (n *Notification) Category() (string, bool)  { return opt(n.category) }
func (n *Notification) ShortHTML() (string, bool) { return opt(n.shortHTML) }
func (n *Notification) LongText() (string, bool)  { return opt(n.longText) }
func (n *Notification) LongHTML() (string, bool)  { return opt(n.longHTML) }

func (n *Notification) TitleTemplate() (string, bool)     { return opt(n.titleTemplate) }
func (n *Notification) ShortTextTemplate() (string, bool) { return opt(n.shortTextTemplate) }
func (n *Notification) ShortHTMLTemplate() (string, bool) { return opt(n.shortHTMLTemplate) }
func (n *Notification) LongTextTemplate() (string, bool)  { return opt(n.longTextTemplate) }
func (n *Notification) LongHTMLTemplate() (string, bool)  { return opt(n.longHTMLTemplate) }

// Values returns the live substitution map. Reserved keys written here are
// overwritten by SyncReserved before rendering.
func (n *Notification) Values() Substitutions { return n.values }

// Defaults returns the configuration the notification was built from.
func (n *Notification) Defaults() Defaults { return n.defaults }

func opt(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func deref(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
