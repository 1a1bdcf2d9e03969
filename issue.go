package lunrstore

import (
	"fmt"
	"net/url"
	"strings"
)

// IssueKind classifies a problem found while checking a collection.
type IssueKind string

// IssueKind constants.
const (
	IssueInvalidURL    IssueKind = "invalid_url"
	IssueEmptyTitle    IssueKind = "empty_title"
	IssueBlankTerm     IssueKind = "blank_term"
	IssueDuplicateURL  IssueKind = "duplicate_url"
	IssueUnreachable   IssueKind = "unreachable"
	IssueTitleMismatch IssueKind = "title_mismatch"
)

// Issue describes a problem with a single record.
// Index is the record's position in the collection.
type Issue struct {
	Index   int       `json:"index"`
	URL     string    `json:"url"`
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

// String formats the issue as a single human-readable line.
func (i Issue) String() string {
	return fmt.Sprintf("#%d %s: %s (%s)", i.Index, i.Kind, i.Message, i.URL)
}

// DuplicateDetector reports records whose URL repeats an earlier record's URL.
type DuplicateDetector interface {
	FindDuplicates(records []*Record) []Issue
}

// Lint checks each record for problems that do not prevent loading but that
// degrade search results: non-absolute URLs, empty titles and blank
// category or tag entries. Issues are returned in record order.
func Lint(records []*Record) []Issue {
	var issues []Issue
	for i, r := range records {
		if msg := checkURL(r.URL); msg != "" {
			issues = append(issues, Issue{Index: i, URL: r.URL, Kind: IssueInvalidURL, Message: msg})
		}
		if strings.TrimSpace(r.Title) == "" {
			issues = append(issues, Issue{Index: i, URL: r.URL, Kind: IssueEmptyTitle, Message: "title is empty"})
		}
		for _, c := range r.Categories {
			if strings.TrimSpace(c) == "" {
				issues = append(issues, Issue{Index: i, URL: r.URL, Kind: IssueBlankTerm, Message: "blank category"})
			}
		}
		for _, t := range r.Tags {
			if strings.TrimSpace(t) == "" {
				issues = append(issues, Issue{Index: i, URL: r.URL, Kind: IssueBlankTerm, Message: "blank tag"})
			}
		}
	}
	return issues
}

// checkURL returns a description of what is wrong with rawURL, or "" if it
// is an absolute http(s) URL.
func checkURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Sprintf("unparseable url: %v", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "url is not absolute"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("unsupported url scheme %q", u.Scheme)
	}
	return ""
}
