// Package xxhash compares collections from successive site builds using
// xxHash64 record fingerprints.
package xxhash

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lunrstore"
)

// Fingerprint returns a hex-encoded xxHash64 over all fields of r.
// Records that are Equal have the same fingerprint. Every string is written
// after its length and every term list after its count, so no field content
// can imitate a boundary.
func Fingerprint(r *lunrstore.Record) string {
	d := xxhash.New()
	buf := make([]byte, 0, binary.MaxVarintLen64)
	writeString := func(s string) {
		_, _ = d.Write(binary.AppendUvarint(buf, uint64(len(s))))
		_, _ = d.WriteString(s)
	}
	writeTerms := func(terms []string) {
		_, _ = d.Write(binary.AppendUvarint(buf, uint64(len(terms))))
		for _, t := range terms {
			writeString(t)
		}
	}

	writeString(r.Title)
	writeString(r.Excerpt)
	writeTerms(r.Categories)
	writeTerms(r.Tags)
	writeString(r.URL)

	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, d.Sum64()))
}

// Compare reports how next differs from prev. Records are matched by URL;
// when a URL repeats within one collection only its first record counts.
// Added and Changed follow next's order, Removed follows prev's order.
func Compare(prev, next []*lunrstore.Record) *lunrstore.Diff {
	type entry struct {
		record      *lunrstore.Record
		fingerprint string
	}

	old := make(map[string]entry, len(prev))
	for _, r := range prev {
		if _, ok := old[r.URL]; !ok {
			old[r.URL] = entry{record: r, fingerprint: Fingerprint(r)}
		}
	}

	diff := &lunrstore.Diff{}
	seen := make(map[string]bool, len(next))
	for _, r := range next {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true

		e, ok := old[r.URL]
		if !ok {
			diff.Added = append(diff.Added, r)
			continue
		}
		if e.fingerprint != Fingerprint(r) {
			diff.Changed = append(diff.Changed, lunrstore.RecordChange{Old: e.record, New: r})
		}
	}

	for _, r := range prev {
		if !seen[r.URL] {
			diff.Removed = append(diff.Removed, r)
			seen[r.URL] = true
		}
	}

	return diff
}
