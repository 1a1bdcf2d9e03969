// Package lunr reads and writes the search store consumed by lunr.js.
//
// A store is either a bare JSON array of records or the JavaScript
// assignment emitted by Jekyll-based site builds:
//
//	var store = [{"title": "...", "excerpt": "...", ...}]
package lunr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/fwojciec/lunrstore"
)

// Format identifies the textual wrapper of a store.
type Format string

// Format constants.
const (
	FormatJSON Format = "json"
	FormatJS   Format = "js"
)

// DefaultVar is the variable name Jekyll themes assign the store to.
const DefaultVar = "store"

// ParseFormat converts a user supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatJS:
		return Format(s), nil
	}
	return "", lunrstore.Errorf(lunrstore.EINVALID, "unknown store format %q (want json or js)", s)
}

// recordFields lists the keys every record object must carry.
var recordFields = []string{"title", "excerpt", "categories", "tags", "url"}

var (
	bom        = []byte("\ufeff")
	assignment = regexp.MustCompile(`^(?:var|let|const)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*`)
)

// unwrap strips an optional BOM and JavaScript assignment from data and
// returns the JSON array payload.
func unwrap(data []byte) ([]byte, Format, string, error) {
	data = bytes.TrimPrefix(data, bom)
	data = bytes.TrimSpace(data)

	if bytes.HasPrefix(data, []byte("[")) {
		return data, FormatJSON, "", nil
	}

	m := assignment.FindSubmatch(data)
	if m == nil {
		return nil, "", "", lunrstore.Errorf(lunrstore.EMALFORMED, "store is neither a JSON array nor a variable assignment")
	}
	payload := bytes.TrimSpace(data[len(m[0]):])
	payload = bytes.TrimSpace(bytes.TrimSuffix(payload, []byte(";")))
	return payload, FormatJS, string(m[1]), nil
}

// Decode reads a complete store from r. Either every record is returned in
// store order or the call fails with EMALFORMED. An empty array yields zero
// records and no error.
func Decode(r io.Reader) ([]*lunrstore.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is like Decode but operates on an in-memory store.
func DecodeBytes(data []byte) ([]*lunrstore.Record, error) {
	records, _, err := DecodeStore(data)
	return records, err
}

// DecodeStore is like DecodeBytes but also returns the options that encode
// the records back in the store's own wrapper and variable name.
// Invalid UTF-8 is rejected rather than replaced.
func DecodeStore(data []byte) ([]*lunrstore.Record, EncodeOptions, error) {
	if !utf8.Valid(data) {
		return nil, EncodeOptions{}, lunrstore.Errorf(lunrstore.EMALFORMED, "store is not valid UTF-8")
	}

	payload, format, name, err := unwrap(data)
	if err != nil {
		return nil, EncodeOptions{}, err
	}
	opts := EncodeOptions{Format: format, Var: name}

	dec := json.NewDecoder(bytes.NewReader(payload))
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, EncodeOptions{}, lunrstore.Errorf(lunrstore.EMALFORMED, "store is not an array of objects: %v", err)
	}
	if raw == nil {
		return nil, EncodeOptions{}, lunrstore.Errorf(lunrstore.EMALFORMED, "store is null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, EncodeOptions{}, lunrstore.Errorf(lunrstore.EMALFORMED, "unexpected data after store array")
	}

	records := make([]*lunrstore.Record, 0, len(raw))
	for i, msg := range raw {
		rec, err := decodeRecord(msg)
		if err != nil {
			return nil, EncodeOptions{}, lunrstore.Errorf(lunrstore.EMALFORMED, "record %d: %s", i, lunrstore.ErrorMessage(err))
		}
		records = append(records, rec)
	}
	return records, opts, nil
}

// decodeRecord strictly decodes a single record object. Every field must be
// present exactly once with the expected JSON type; null, repeated and
// unknown keys are rejected.
func decodeRecord(msg json.RawMessage) (*lunrstore.Record, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil || obj == nil {
		return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "not an object")
	}
	if name, ok := duplicateKey(msg); ok {
		return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "duplicate field %q", name)
	}

	for _, name := range recordFields {
		v, ok := obj[name]
		if !ok {
			return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "missing field %q", name)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "field %q is null", name)
		}
	}
	if len(obj) != len(recordFields) {
		for name := range obj {
			if !isRecordField(name) {
				return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "unknown field %q", name)
			}
		}
	}

	rec := &lunrstore.Record{}
	texts := []struct {
		name string
		dst  *string
	}{
		{"title", &rec.Title},
		{"excerpt", &rec.Excerpt},
		{"url", &rec.URL},
	}
	for _, f := range texts {
		if err := json.Unmarshal(obj[f.name], f.dst); err != nil {
			return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "field %q: %s", f.name, typeError(err))
		}
	}

	var err error
	if rec.Categories, err = decodeTerms("categories", obj["categories"]); err != nil {
		return nil, err
	}
	if rec.Tags, err = decodeTerms("tags", obj["tags"]); err != nil {
		return nil, err
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeTerms decodes a categories or tags array. The result is never nil.
func decodeTerms(name string, msg json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "field %q: expected array of strings", name)
	}
	terms := make([]string, len(items))
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "field %q: element %d is null", name, i)
		}
		if err := json.Unmarshal(item, &terms[i]); err != nil {
			return nil, lunrstore.Errorf(lunrstore.EMALFORMED, "field %q: element %d: %s", name, i, typeError(err))
		}
	}
	return terms, nil
}

// duplicateKey reports the first key that occurs twice in the JSON object
// msg. json.Unmarshal keeps the last value silently.
func duplicateKey(msg json.RawMessage) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	if _, err := dec.Token(); err != nil {
		return "", false
	}
	seen := make(map[string]bool, len(recordFields))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		key, _ := tok.(string)
		if seen[key] {
			return key, true
		}
		seen[key] = true
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return "", false
		}
	}
	return "", false
}

func isRecordField(name string) bool {
	for _, f := range recordFields {
		if f == name {
			return true
		}
	}
	return false
}

// typeError shortens json type errors to the part useful in a message.
func typeError(err error) string {
	if te, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Sprintf("expected %s, got %s", te.Type, te.Value)
	}
	return err.Error()
}
