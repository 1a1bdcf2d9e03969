package lunr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/fwojciec/lunrstore"
)

// EncodeOptions configures Encode.
type EncodeOptions struct {
	// Format selects the wrapper. Defaults to FormatJS.
	Format Format

	// Var is the variable name used by FormatJS. Defaults to DefaultVar.
	Var string
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Encode writes records to w as a store in the requested format.
// Empty categories and tags are written as [] so the output always decodes.
// Records that fail validation are rejected with EMALFORMED before anything
// is written.
func Encode(w io.Writer, records []*lunrstore.Record, opts EncodeOptions) error {
	format := opts.Format
	if format == "" {
		format = FormatJS
	}
	name := opts.Var
	if name == "" {
		name = DefaultVar
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}
	if format == FormatJS && !identifier.MatchString(name) {
		return lunrstore.Errorf(lunrstore.EINVALID, "invalid variable name %q", name)
	}

	out := make([]*lunrstore.Record, len(records))
	for i, r := range records {
		if r == nil {
			return lunrstore.Errorf(lunrstore.EMALFORMED, "record %d: nil record", i)
		}
		if err := r.Validate(); err != nil {
			return lunrstore.Errorf(lunrstore.EMALFORMED, "record %d: %s", i, lunrstore.ErrorMessage(err))
		}
		c := *r
		if c.Categories == nil {
			c.Categories = []string{}
		}
		if c.Tags == nil {
			c.Tags = []string{}
		}
		out[i] = &c
	}

	var buf bytes.Buffer
	if format == FormatJS {
		fmt.Fprintf(&buf, "var %s = ", name)
	}

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	if format == FormatJS {
		buf.Truncate(buf.Len() - 1) // drop the encoder's newline
		buf.WriteString(";\n")
	}

	_, err := w.Write(buf.Bytes())
	return err
}
