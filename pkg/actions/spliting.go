package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/town"
)

// Spliting handles KindSpliting (spec.md §4.8): records that the
// current version underwent a split, with no structural change to the
// registry — the split's actual effect shows up as a separate
// DELETION_PARTITION/creation record elsewhere in the history.
func Spliting(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)
	c.Upsert(current.Derive(town.WithModification(int(r.Mod))))
}
