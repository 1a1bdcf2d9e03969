package main

import (
	"fmt"

	"github.com/fwojciec/lunrstore"
)

// Run executes the coverage command.
func (c *CoverageCmd) Run(deps *Dependencies) error {
	filter, err := lunrstore.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	records, err := deps.Open(c.Source).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	pages, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}
	if len(pages) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no sitemap found for %s\n", c.Site)
		return lunrstore.Errorf(lunrstore.ENOTFOUND, "no sitemap found for %s", c.Site)
	}

	missing := lunrstore.Coverage(records, pages, filter)
	for _, u := range missing {
		fmt.Fprintln(deps.Stdout, u)
	}

	fmt.Fprintf(deps.Stdout, "%d of %d sitemap pages missing from store\n", len(missing), len(pages))
	return nil
}
