package main

import (
	"fmt"

	"github.com/fwojciec/rara"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	session := rara.NewSession()
	store, in := deps.collections(c.Input)
	if err := session.Load(deps.Ctx, store, in); err != nil {
		return err
	}
	collection := session.Collection

	fmt.Fprintf(deps.Stdout, "Source:  %s\n", in)
	fmt.Fprintf(deps.Stdout, "Size:    %d\n", collection.Size())
	fmt.Fprintf(deps.Stdout, "Records: %d\n", collection.Len())

	keys := collection.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(deps.Stdout, "Keys:    none")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Keys:    %d..%d\n", keys[0], keys[len(keys)-1])

	entities := make(map[string]int)
	var order []string
	for _, r := range collection.Records() {
		if _, ok := entities[r.Entity]; !ok {
			order = append(order, r.Entity)
		}
		entities[r.Entity]++
	}
	for _, entity := range order {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", entity, entities[entity])
	}
	return nil
}
