package main

import (
	"fmt"

	"github.com/fwojciec/lunrstore"
	"github.com/fwojciec/lunrstore/lunr"
)

// Run executes the fmt command.
func (c *FmtCmd) Run(deps *Dependencies) error {
	format, err := lunr.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	loader := deps.Open(c.Source)
	records, err := loader.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	opts := lunr.EncodeOptions{Format: format, Var: c.Var}
	if opts.Var == "" {
		opts.Var = sourceVar(loader)
	}

	w := deps.Create(c.Output, opts)
	if err := w.WriteCollection(deps.Ctx, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lunrstore.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d records to %s\n", len(records), c.Output)
	return nil
}

// storeOptioner is implemented by loaders that remember the wrapper of the
// store they read.
type storeOptioner interface {
	StoreOptions() lunr.EncodeOptions
}

// sourceVar returns the variable name the loaded store was assigned to, or
// "" if the loader cannot tell. Decorators are unwrapped.
func sourceVar(l lunrstore.Loader) string {
	for l != nil {
		if s, ok := l.(storeOptioner); ok {
			return s.StoreOptions().Var
		}
		u, ok := l.(interface{ Unwrap() lunrstore.Loader })
		if !ok {
			return ""
		}
		l = u.Unwrap()
	}
	return ""
}
