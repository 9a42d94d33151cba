package sso

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
)

// Envelope is the decoded token: the structured claims, the exact serialized
// payload string the signature was computed over, and the signature itself.
type Envelope struct {
	Claims    Claims
	Canonical string
	Signature string
}

// Normalize repairs transport damage on the raw token value before decoding.
// Upstream systems occasionally double-encode the redirect URL, leaving a
// stray "token=" fragment inside the value, and URL decoding turns base64 '+'
// characters into spaces.
func Normalize(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	if idx := strings.Index(decoded, "token="); idx >= 0 {
		decoded = decoded[:idx]
	}
	return strings.ReplaceAll(decoded, " ", "+")
}

// Decode base64-decodes a normalized token. Standard encoding is tried
// first; on failure the URL-safe alphabet is translated to standard and the
// value re-padded to a multiple of four before a second attempt.
func Decode(normalized string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(normalized); err == nil {
		return data, nil
	}
	translated := strings.NewReplacer("-", "+", "_", "/").Replace(normalized)
	translated = strings.TrimRight(translated, "=")
	if rem := len(translated) % 4; rem != 0 {
		translated += strings.Repeat("=", 4-rem)
	}
	data, err := base64.StdEncoding.DecodeString(translated)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return data, nil
}

type envelopeJSON struct {
	Payload   json.RawMessage `json:"payload"`
	Signature string          `json:"signature"`
}

// ParseEnvelope splits the decoded token into claims, the canonical payload
// string, and the signature.
//
// The payload may arrive either as a structured object or as a JSON-encoded
// string. The canonical form must reproduce, byte for byte, exactly what the
// issuer signed, so for the object case the raw JSON segment is kept as-is.
func ParseEnvelope(data []byte) (Envelope, error) {
	var raw envelopeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Envelope{}, ErrInvalidTokenStructure
	}
	if len(raw.Payload) == 0 || raw.Signature == "" {
		return Envelope{}, ErrInvalidTokenStructure
	}

	payload := bytes.TrimSpace(raw.Payload)
	var canonical string
	switch {
	case len(payload) > 0 && payload[0] == '"':
		if err := json.Unmarshal(payload, &canonical); err != nil {
			return Envelope{}, ErrInvalidPayload
		}
	case len(payload) > 0 && payload[0] == '{':
		canonical = string(payload)
	default:
		return Envelope{}, ErrInvalidPayload
	}
	if strings.TrimSpace(canonical) == "" {
		return Envelope{}, ErrInvalidPayload
	}

	var claims Claims
	if err := json.Unmarshal([]byte(canonical), &claims); err != nil {
		return Envelope{}, ErrInvalidPayload
	}

	return Envelope{Claims: claims, Canonical: canonical, Signature: raw.Signature}, nil
}
