package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/rara"
)

// Run executes the snapshots command.
func (c *SnapshotsCmd) Run(deps *Dependencies) error {
	if deps.Snapshots == nil {
		return rara.Errorf(rara.EINVALID, "snapshots requires --db")
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx)
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'rara --db <file> crawl' to store one.")
		return nil
	}

	for _, s := range snaps {
		fmt.Fprintf(deps.Stdout, "%s  %d  %s\n", s.Name, s.Size, s.SavedAt.Format(time.RFC3339))
	}
	return nil
}
