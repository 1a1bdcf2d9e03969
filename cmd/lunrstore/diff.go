package main

import (
	"fmt"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/xxhash"
)

// Run executes the diff command.
func (c *DiffCmd) Run(deps *Dependencies) error {
	prev, err := deps.Open(c.Old).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}
	next, err := deps.Open(c.New).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	diff := xxhash.Compare(prev, next)
	if diff.Empty() {
		fmt.Fprintln(deps.Stdout, "No changes.")
		return nil
	}

	for _, r := range diff.Added {
		fmt.Fprintf(deps.Stdout, "+ %s  %s\n", r.URL, r.Title)
	}
	for _, r := range diff.Removed {
		fmt.Fprintf(deps.Stdout, "- %s  %s\n", r.URL, r.Title)
	}
	for _, ch := range diff.Changed {
		fmt.Fprintf(deps.Stdout, "~ %s  %s\n", ch.New.URL, ch.New.Title)
	}

	fmt.Fprintf(deps.Stdout, "%d added, %d removed, %d changed\n", len(diff.Added), len(diff.Removed), len(diff.Changed))
	return nil
}
