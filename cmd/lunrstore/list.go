package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/lunrstore"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	records, err := deps.Open(c.Source).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found.")
		return nil
	}

	for i, r := range records {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s", i, r.Title, r.URL)
		if len(r.Categories) > 0 {
			fmt.Fprintf(deps.Stdout, "  [%s]", strings.Join(r.Categories, ", "))
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
