// Package bloom detects repeated record URLs using Bloom filters.
package bloom

import (
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/lunrstore"
)

// DefaultFalsePositiveRate is the filter error rate used by NewDuplicateFinder.
const DefaultFalsePositiveRate = 0.001

// Ensure DuplicateFinder implements lunrstore.DuplicateDetector.
var _ lunrstore.DuplicateDetector = (*DuplicateFinder)(nil)

// DuplicateFinder reports records that reuse an earlier record's URL.
//
// Every URL is screened with a Bloom filter sized for the collection, so no
// set of URLs is held in memory. Filter hits are confirmed by scanning the
// earlier records, so a false positive never surfaces as an issue.
type DuplicateFinder struct {
	fpRate float64
}

// NewDuplicateFinder creates a DuplicateFinder with the given filter false
// positive rate. Rates outside (0, 1) fall back to DefaultFalsePositiveRate.
func NewDuplicateFinder(fpRate float64) *DuplicateFinder {
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &DuplicateFinder{fpRate: fpRate}
}

// FindDuplicates returns one issue for every record whose URL already
// appeared earlier in the collection, in record order. The message names
// the index of the first occurrence.
func (d *DuplicateFinder) FindDuplicates(records []*lunrstore.Record) []lunrstore.Issue {
	if len(records) == 0 {
		return nil
	}

	filter := bloom.NewWithEstimates(uint(len(records)), d.fpRate)

	var issues []lunrstore.Issue
	for i, r := range records {
		if !filter.TestAndAddString(r.URL) {
			continue
		}
		if j := indexOf(records[:i], r.URL); j >= 0 {
			issues = append(issues, lunrstore.Issue{
				Index:   i,
				URL:     r.URL,
				Kind:    lunrstore.IssueDuplicateURL,
				Message: fmt.Sprintf("duplicate of record #%d", j),
			})
		}
	}
	return issues
}

// indexOf returns the index of the first record with the given URL, or -1.
func indexOf(records []*lunrstore.Record, url string) int {
	for i, r := range records {
		if r.URL == url {
			return i
		}
	}
	return -1
}
