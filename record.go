package lunrstore

import (
	"context"
	"slices"
)

// Record represents one indexed page of a site build.
type Record struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	URL        string   `json:"url"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EMALFORMED, "record url required")
	}
	return nil
}

// Equal reports whether both records hold the same field values.
// A nil slice and an empty slice are considered equal.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Title == other.Title &&
		r.Excerpt == other.Excerpt &&
		r.URL == other.URL &&
		slices.Equal(r.Categories, other.Categories) &&
		slices.Equal(r.Tags, other.Tags)
}

// Loader loads a complete collection of records.
// Implementations either return every record in build order or fail with
// EMALFORMED (data does not match the record schema) or ENOTFOUND.
type Loader interface {
	Load(ctx context.Context) ([]*Record, error)
}

// CollectionWriter replaces a stored collection with the given records.
// The write is atomic: readers observe either the old or the new collection.
type CollectionWriter interface {
	WriteCollection(ctx context.Context, records []*Record) error
}
