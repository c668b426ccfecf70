package main

import (
	"fmt"

	"github.com/fwojciec/rara"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	sep, err := parseSeparator(c.Sep)
	if err != nil {
		return err
	}

	exporter, err := deps.Exporter(c.Format, sep)
	if err != nil {
		return err
	}

	session := rara.NewSession()
	store, in := deps.collections(c.Input)
	if err := session.Load(deps.Ctx, store, in); err != nil {
		return err
	}

	out := rara.NormalizeFilename(c.Output, "."+c.Format, deps.Now)
	if err := exportFile(exporter, session.Collection, out); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records to %s\n", session.Collection.Len(), out)
	return nil
}
