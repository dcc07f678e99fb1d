package services

import (
	"bytes"
	"encoding/json"
	"io"
)

// Patch is a sparse update payload. A key that is absent leaves the stored
// field untouched; a key present with a JSON null clears it. This is the one
// place where "omitted" and "explicitly null" must stay distinguishable, so
// the body is kept as raw JSON per field instead of a typed struct.
type Patch map[string]json.RawMessage

// DecodePatch reads a JSON object body into a Patch.
func DecodePatch(body io.Reader) (Patch, error) {
	var p Patch
	if err := json.NewDecoder(body).Decode(&p); err != nil {
		return nil, err
	}
	if p == nil {
		p = Patch{}
	}
	return p, nil
}

func (p Patch) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// IsNull reports whether the key is present with an explicit JSON null.
func (p Patch) IsNull(key string) bool {
	raw, ok := p[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// String decodes a present key as a string. Returns (nil, nil) for an
// explicit null.
func (p Patch) String(key string) (*string, error) {
	if p.IsNull(key) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(p[key], &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Int decodes a present key as an integer. Returns (nil, nil) for an
// explicit null.
func (p Patch) Int(key string) (*int, error) {
	if p.IsNull(key) {
		return nil, nil
	}
	var n int
	if err := json.Unmarshal(p[key], &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Bool decodes a present key as a boolean. Returns (nil, nil) for an
// explicit null.
func (p Patch) Bool(key string) (*bool, error) {
	if p.IsNull(key) {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(p[key], &b); err != nil {
		return nil, err
	}
	return &b, nil
}
