package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/fwojciec/lunrstore"
)

// Run executes the check command. Returns an error when any issue is found
// so the process exits non-zero. With --watch the store is re-checked on
// every change until the context is canceled.
func (c *CheckCmd) Run(deps *Dependencies) error {
	if !c.Watch {
		return c.check(deps)
	}

	if isRemote(c.Source) {
		fmt.Fprintln(deps.Stderr, "error: --watch needs a local store file")
		return lunrstore.Errorf(lunrstore.EINVALID, "--watch needs a local store file")
	}

	_ = c.check(deps)
	fmt.Fprintf(deps.Stderr, "Watching %s for changes\n", c.Source)
	return deps.Watch(deps.Ctx, c.Source, func() {
		fmt.Fprintln(deps.Stdout)
		_ = c.check(deps)
	})
}

func (c *CheckCmd) check(deps *Dependencies) error {
	records, err := deps.Open(c.Source).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	issues := lunrstore.Lint(records)
	issues = append(issues, deps.Duplicates.FindDuplicates(records)...)
	slices.SortStableFunc(issues, func(a, b lunrstore.Issue) int {
		return cmp.Compare(a.Index, b.Index)
	})

	for _, issue := range issues {
		fmt.Fprintln(deps.Stdout, issue)
	}

	if len(issues) > 0 {
		fmt.Fprintf(deps.Stderr, "%d records, %d issues\n", len(records), len(issues))
		return lunrstore.Errorf(lunrstore.EINVALID, "%d issues found", len(issues))
	}

	fmt.Fprintf(deps.Stdout, "%d records, no issues\n", len(records))
	return nil
}
