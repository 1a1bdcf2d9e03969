package main

import (
	"fmt"

	"github.com/fwojciec/lunrstore"
)

// Run executes the verify command. Returns an error when any page is
// unreachable or mistitled so the process exits non-zero.
func (c *VerifyCmd) Run(deps *Dependencies) error {
	records, err := deps.Open(c.Source).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	var progress lunrstore.VerifyProgressFunc
	if deps.Progress {
		progress = func(p lunrstore.VerifyProgress) {
			status := "ok"
			if p.Issue != nil {
				status = string(p.Issue.Kind)
			}
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s\n", p.Completed, p.Total, status, p.URL)
		}
	}

	issues, err := deps.Verifier.Verify(deps.Ctx, records, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	for _, issue := range issues {
		fmt.Fprintln(deps.Stdout, issue)
	}

	if len(issues) > 0 {
		return lunrstore.Errorf(lunrstore.EINVALID, "%d of %d pages failed verification", len(issues), len(records))
	}

	fmt.Fprintf(deps.Stdout, "%d pages verified\n", len(records))
	return nil
}
