package rqpush_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rqpush/rqpush"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_DeliversSaltedEnvelope(t *testing.T) {
	var got rqpush.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	n := rqpush.Init("Example", "An example", "This is an example notification.").
		SetCategory("example").
		SetURL("http://example.com/")

	resp, err := rqpush.Send(context.Background(), n, srv.URL, 55, 3600, "foo")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, got.Verify("foo"))

	var out rqpush.OutboundNotification
	require.NoError(t, json.Unmarshal([]byte(got.Contents), &out))
	assert.Equal(t, "example", out.Category)
	assert.Equal(t, uint32(3600), out.TTL)
}

func TestSend_EmptyEndpoint(t *testing.T) {
	_, err := rqpush.Send(context.Background(), rqpush.Init("a", "t", "s"), "", 0, 0, "")
	assert.ErrorIs(t, err, rqpush.ErrEmptyEndpoint)
}

func TestClient_WithHistoryAndTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := rqpush.New(rqpush.WithHistory(dir), rqpush.WithTimeout(time.Second))

	_, err := c.Send(context.Background(), c.Init("a", "t", "s"), srv.URL, 1, 2, "")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".rqpush", "history", "sends.json"))

	records, err := c.History()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, srv.URL, records[0].Endpoint)
	assert.Equal(t, 200, records[0].StatusCode)

	none, err := rqpush.New().History()
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestClient_WithProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rqpush.yaml"), []byte(`
templates:
  title: "[{{app}}] {{notification}}"
values:
  lang: fr
`), 0644))

	opt, err := rqpush.WithProjectConfig(dir)
	require.NoError(t, err)
	c := rqpush.New(opt)

	p, err := c.Prepare(c.Init("app", "Bonjour", "s"), 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "[app] Bonjour", p.Outbound.Title)
	assert.Equal(t, "fr", p.Outbound.Lang)
}

func TestClient_WithHTTPClient(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := rqpush.New(rqpush.WithHTTPClient(srv.Client()))
	resp, err := c.Send(context.Background(), c.Init("a", "t", "s"), srv.URL, 0, 0, "")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Contains(t, agent, "rqpush/")
}
