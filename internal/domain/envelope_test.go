package domain_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/rqpush/rqpush/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_KnownVectors(t *testing.T) {
	assert.Equal(t, "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae", domain.Digest("foo", ""))
	assert.Equal(t, "c3ab8ff13720e8ad9047dd39466b3c8974e592c2fa383d4a3960714caef0c4f2", domain.Digest("foo", "bar"))
	assert.Equal(t, domain.Digest("foobar", ""), domain.Digest("foo", "bar"))
}

func sampleOutbound() domain.OutboundNotification {
	return domain.OutboundNotification{
		App:       "example",
		Tagline:   "example",
		Lang:      "en",
		Title:     "An example",
		ShortText: "This is an example.",
		ShortHTML: "<p>This is an example.</p>",
		LongText:  "This is an example.",
		LongHTML:  "<p>This is an example.</p>",
		TTL:       60,
		Priority:  100,
	}
}

func TestOutboundNotification_ContentsKeyOrder(t *testing.T) {
	contents, err := sampleOutbound().Contents()
	require.NoError(t, err)

	keys := []string{"app", "url", "tagline", "category", "lang", "title",
		"short_text", "short_html", "long_text", "long_html", "ttl", "priority"}
	last := -1
	for _, k := range keys {
		idx := strings.Index(contents, `"`+k+`":`)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", k)
		assert.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}
	assert.False(t, strings.HasSuffix(contents, "\n"))
}

func TestOutboundNotification_ContentsDoesNotEscapeHTML(t *testing.T) {
	contents, err := sampleOutbound().Contents()
	require.NoError(t, err)
	assert.Contains(t, contents, `"short_html":"<p>This is an example.</p>"`)
	assert.NotContains(t, contents, `\u003c`)
}

func TestBuildEnvelope_DigestCoversContents(t *testing.T) {
	msg, err := domain.BuildEnvelope(sampleOutbound(), "")
	require.NoError(t, err)
	require.NotNil(t, msg.SHA256)
	assert.Equal(t, domain.Digest(msg.Contents, ""), *msg.SHA256)
	assert.True(t, msg.Verify(""))
	assert.False(t, msg.Verify("secret"))
}

func TestBuildEnvelope_SaltedDigest(t *testing.T) {
	msg, err := domain.BuildEnvelope(sampleOutbound(), "foo")
	require.NoError(t, err)
	assert.Equal(t, domain.Digest(msg.Contents+"foo", ""), *msg.SHA256)
	assert.True(t, msg.Verify("foo"))
	assert.False(t, msg.Verify(""))
}

func TestBuildEnvelope_CarriesPriorityAndTTL(t *testing.T) {
	priorities := []uint8{0, 1, 55, 127, 128, 254, math.MaxUint8}
	ttls := []uint32{0, 1, 60, 86400, math.MaxUint32 - 1, math.MaxUint32}

	for _, p := range priorities {
		for _, ttl := range ttls {
			out := sampleOutbound()
			out.Priority = p
			out.TTL = ttl

			msg, err := domain.BuildEnvelope(out, "")
			require.NoError(t, err)
			require.NotNil(t, msg.Priority)
			require.NotNil(t, msg.TTL)
			assert.Equal(t, p, *msg.Priority)
			assert.Equal(t, ttl, *msg.TTL)

			var decoded domain.OutboundNotification
			require.NoError(t, json.Unmarshal([]byte(msg.Contents), &decoded))
			assert.Equal(t, p, decoded.Priority)
			assert.Equal(t, ttl, decoded.TTL)
		}
	}
}

func TestMessage_WireFormat(t *testing.T) {
	msg, err := domain.BuildEnvelope(sampleOutbound(), "")
	require.NoError(t, err)

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Len(t, wire, 4)
	assert.Equal(t, *msg.SHA256, wire["sha256"])
	assert.Equal(t, msg.Contents, wire["contents"])
	assert.EqualValues(t, 100, wire["priority"])
	assert.EqualValues(t, 60, wire["ttl"])
}

func TestMessage_NullFields(t *testing.T) {
	data, err := json.Marshal(domain.Message{Contents: "{}"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sha256":null,"contents":"{}","priority":null,"ttl":null}`, string(data))
	assert.False(t, domain.Message{Contents: "{}"}.Verify(""))
}
