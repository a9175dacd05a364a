package domain

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// OutboundNotification is the fully resolved, flattened notification.
// Field order defines the serialized key order.
type OutboundNotification struct {
	App       string `json:"app"`
	URL       string `json:"url"`
	Tagline   string `json:"tagline"`
	Category  string `json:"category"`
	Lang      string `json:"lang"`
	Title     string `json:"title"`
	ShortText string `json:"short_text"`
	ShortHTML string `json:"short_html"`
	LongText  string `json:"long_text"`
	LongHTML  string `json:"long_html"`
	TTL       uint32 `json:"ttl"`
	Priority  uint8  `json:"priority"`
}

// Contents serializes o as compact JSON without HTML escaping.
func (o OutboundNotification) Contents() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return "", fmt.Errorf("encoding notification: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Message is the transport envelope posted to the intake endpoint.
type Message struct {
	SHA256   *string `json:"sha256"`
	Contents string  `json:"contents"`
	Priority *uint8  `json:"priority"`
	TTL      *uint32 `json:"ttl"`
}

// Prepared pairs a resolved notification with its envelope.
type Prepared struct {
	Outbound OutboundNotification `json:"outbound"`
	Message  Message              `json:"message"`
}

// Digest returns hex(SHA-256(contents ++ secret)). The secret is appended
// only when non-empty.
//
// This is plain concatenation, not an HMAC: it is open to length extension
// and only deters spam at a receiver sharing the secret. Do not treat it as
// authentication.
func Digest(contents, secret string) string {
	h := sha256.New()
	h.Write([]byte(contents))
	if secret != "" {
		h.Write([]byte(secret))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BuildEnvelope serializes out, digests it and wraps it in a Message.
func BuildEnvelope(out OutboundNotification, secret string) (Message, error) {
	contents, err := out.Contents()
	if err != nil {
		return Message{}, err
	}
	sum := Digest(contents, secret)
	priority, ttl := out.Priority, out.TTL
	return Message{
		SHA256:   &sum,
		Contents: contents,
		Priority: &priority,
		TTL:      &ttl,
	}, nil
}

// Verify recomputes the digest the way a receiver holding secret would.
// A message without a digest never verifies.
func (m Message) Verify(secret string) bool {
	if m.SHA256 == nil {
		return false
	}
	want := Digest(m.Contents, secret)
	return subtle.ConstantTimeCompare([]byte(want), []byte(*m.SHA256)) == 1
}
