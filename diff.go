package lunrstore

// Diff describes how one build's collection differs from another's.
// Records are matched by URL.
type Diff struct {
	Added   []*Record
	Removed []*Record
	Changed []RecordChange
}

// RecordChange pairs the old and new versions of a record with the same URL.
type RecordChange struct {
	Old *Record
	New *Record
}

// Empty reports whether the two collections hold the same records.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}
