package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rqpush/rqpush/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCmd_JSON(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "preview", "--path", dir, "--json",
		"--app", "example",
		"--title", "An example",
		"--text", "This is an example.",
		"--var", `tags=["a","b"]`,
		"--long-text-template", "{{notification}}{{#tags}} #{{.}}{{/tags}}",
		"--url", "http://example.com/",
	)
	require.NoError(t, err)

	var p domain.Prepared
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "example", p.Outbound.Tagline)
	assert.Equal(t, "en", p.Outbound.Lang)
	assert.Equal(t, "http://example.com/", p.Outbound.URL)
	assert.Equal(t, "This is an example. #a #b", p.Outbound.LongText)
	assert.Equal(t, "<p>This is an example.</p>", p.Outbound.ShortHTML)
	assert.True(t, p.Message.Verify(""))

	assert.NoFileExists(t, filepath.Join(dir, ".rqpush", "history", "sends.json"), "preview never records")
}

func TestPreviewCmd_IntegerVarsStayExact(t *testing.T) {
	out, err := run(t, "preview", "--path", t.TempDir(), "--json",
		"--app", "a", "--title", "t", "--text", "s",
		"--var", "id=9007199254740993",
		"--var", "pair=1 2",
		"--text-template", "{{id}}/{{pair}}",
	)
	require.NoError(t, err)

	var p domain.Prepared
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "9007199254740993/1 2", p.Outbound.ShortText)
}

func TestPreviewCmd_Rendered(t *testing.T) {
	out, err := run(t, "preview", "--path", t.TempDir(), "--app", "example", "--title", "An example", "--text", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "An example")
	assert.Contains(t, out, "Short HTML")
	assert.Contains(t, out, "<p>hi</p>")
}

func TestPreviewCmd_InvalidProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rqpush.yaml"), []byte("{{{"), 0644))

	_, err := run(t, "preview", "--path", dir, "--app", "a", "--title", "t", "--text", "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .rqpush.yaml")
}
