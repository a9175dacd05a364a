package domain_test

import (
	"testing"

	"github.com/rqpush/rqpush/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testDefaults() domain.Defaults {
	d := domain.BuiltinDefaults()
	d.Values = domain.Substitutions{"lang": domain.String("en")}
	return d
}

func TestNewNotification_RequiredFieldsAndDefaults(t *testing.T) {
	n := domain.NewNotification("example", "An example", "This is an example.", testDefaults())

	assert.Equal(t, "example", n.App())
	assert.Equal(t, "An example", n.Title())
	assert.Equal(t, "This is an example.", n.ShortText())
	assert.Equal(t, "en", n.Lang())

	for name, get := range map[string]func() (string, bool){
		"url":                 n.URL,
		"tagline":             n.Tagline,
		"category":            n.Category,
		"short_html":          n.ShortHTML,
		"long_text":           n.LongText,
		"long_html":           n.LongHTML,
		"title_template":      n.TitleTemplate,
		"short_text_template": n.ShortTextTemplate,
		"short_html_template": n.ShortHTMLTemplate,
		"long_text_template":  n.LongTextTemplate,
		"long_html_template":  n.LongHTMLTemplate,
	} {
		_, set := get()
		assert.False(t, set, "%s should start unset", name)
	}

	assert.Equal(t, domain.Substitutions{"lang": domain.String("en")}, n.Values())
}

func TestNewNotification_EmptyDefaultsStillEnglish(t *testing.T) {
	n := domain.NewNotification("a", "t", "s", domain.Defaults{})
	assert.Equal(t, domain.DefaultLang, n.Lang())
	assert.Empty(t, n.Values())
}

func TestNewNotification_NonStringLangIgnored(t *testing.T) {
	d := domain.BuiltinDefaults()
	d.Values["lang"] = domain.Number(3)
	n := domain.NewNotification("a", "t", "s", d)
	assert.Equal(t, domain.DefaultLang, n.Lang())
}

func TestNewNotification_LangFromDefaults(t *testing.T) {
	d := domain.BuiltinDefaults()
	d.Values["lang"] = domain.String("fr")
	n := domain.NewNotification("a", "t", "s", d)
	assert.Equal(t, "fr", n.Lang())
}

func TestNewNotification_DoesNotShareDefaultMapping(t *testing.T) {
	d := testDefaults()
	first := domain.NewNotification("a", "t", "s", d)
	second := domain.NewNotification("b", "t", "s", d)

	first.AddValue("only_first", "x")

	_, inSecond := second.Values()["only_first"]
	_, inDefaults := d.Values["only_first"]
	assert.False(t, inSecond)
	assert.False(t, inDefaults)
}

func TestSetCategory_OnlyTouchesCategory(t *testing.T) {
	n := domain.NewNotification("example", "An example", "This is an example.", testDefaults())
	n.SetCategory("example")

	category, ok := n.Category()
	assert.True(t, ok)
	assert.Equal(t, "example", category)
	assert.Equal(t, domain.String("example"), n.Values()["category"])

	assert.Equal(t, "example", n.App())
	assert.Equal(t, "An example", n.Title())
	assert.Equal(t, "This is an example.", n.ShortText())
	_, taglineSet := n.Tagline()
	assert.False(t, taglineSet)
	assert.Len(t, n.Values(), 2)
}

func TestSetters_Chain(t *testing.T) {
	n := domain.NewNotification("app", "t", "s", testDefaults()).
		SetURL("http://example.com/").
		SetTagline("tag").
		SetLang("de").
		SetTitle("new title").
		SetApp("renamed")

	values := n.Values()
	assert.Equal(t, domain.String("http://example.com/"), values["url"])
	assert.Equal(t, domain.String("tag"), values["tagline"])
	assert.Equal(t, domain.String("de"), values["lang"])
	assert.Equal(t, domain.String("new title"), values["title"])
	assert.Equal(t, domain.String("renamed"), values["app"])
	assert.Equal(t, "de", n.Lang())
}

func TestSetShortText_DoesNotWriteSubstitutions(t *testing.T) {
	n := domain.NewNotification("app", "t", "s", testDefaults())
	n.SetShortText("other").SetShortHTML("<b>x</b>").SetLongText("long").SetLongHTML("<i>y</i>")

	assert.Equal(t, "other", n.ShortText())
	assert.Len(t, n.Values(), 1)
}

func TestSyncReserved_OverridesDirectWrites(t *testing.T) {
	n := domain.NewNotification("app", "title", "s", testDefaults())
	n.Values()["app"] = domain.String("spoofed")
	n.Values()["lang"] = domain.Bool(true)
	n.Values()["tagline"] = domain.String("spoofed")

	n.SyncReserved()

	values := n.Values()
	assert.Equal(t, domain.String("app"), values["app"])
	assert.Equal(t, domain.String("en"), values["lang"])
	assert.Equal(t, domain.String(""), values["url"])
	assert.Equal(t, domain.String(""), values["category"])
	assert.Equal(t, domain.String("title"), values["title"])
	_, hasTagline := values["tagline"]
	assert.False(t, hasTagline, "unset tagline is removed until Resolve falls back to the app")
}
