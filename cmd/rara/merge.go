package main

import (
	"fmt"

	"github.com/fwojciec/rara"
)

// Run executes the merge command. Inputs are combined in the order given, so
// records of later inputs get keys after those of earlier ones.
func (c *MergeCmd) Run(deps *Dependencies) error {
	merged := rara.NewCollection()
	for _, input := range c.Inputs {
		store, path := deps.collections(input)
		loaded, err := store.Load(deps.Ctx, path)
		if err != nil {
			return err
		}
		if err := merged.Combine(loaded); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d records\n", path, loaded.Len())
	}

	store, out := deps.collections(c.Output)
	if err := store.Save(deps.Ctx, merged, out); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Merged %d collections into %s (%d records)\n", len(c.Inputs), out, merged.Len())
	return nil
}
