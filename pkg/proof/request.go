package proof

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// requestFields are the wire names every request must carry.
var requestFields = []string{"idx1", "idx2", "idx3", "sig1", "sig2", "sig3", "cblk", "blk"}

// Request is the prover input. Field order fixes the JSON key order.
type Request struct {
	Idx1 uint32 `json:"idx1"`
	Idx2 uint32 `json:"idx2"`
	Idx3 uint32 `json:"idx3"`
	Sig1 string `json:"sig1"` // base64 signature
	Sig2 string `json:"sig2"`
	Sig3 string `json:"sig3"`
	Cblk string `json:"cblk"` // hex-encoded compact block record
	Blk  string `json:"blk"`  // hex-encoded block header
}

// Validate checks that every string field is valid UTF-8 without NUL bytes,
// so the encoded text can cross the boundary as a C string.
func (r Request) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"sig1", r.Sig1}, {"sig2", r.Sig2}, {"sig3", r.Sig3},
		{"cblk", r.Cblk}, {"blk", r.Blk},
	}
	for _, f := range fields {
		if strings.IndexByte(f.value, 0) >= 0 {
			return fmt.Errorf("field %s contains a NUL byte", f.name)
		}
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("field %s is not valid UTF-8", f.name)
		}
	}
	return nil
}

// Encode validates r and returns its JSON text.
func (r Request) Encode() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// DecodeRequest parses a single JSON object into a Request. Unknown fields,
// missing or null fields and trailing data are rejected.
func DecodeRequest(data []byte) (Request, error) {
	var r Request
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Request{}, errors.New("invalid request: unexpected data after the JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	for _, name := range requestFields {
		v, ok := raw[name]
		if !ok {
			return Request{}, fmt.Errorf("invalid request: missing field %s", name)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return Request{}, fmt.Errorf("invalid request: field %s is null", name)
		}
	}
	return r, nil
}
