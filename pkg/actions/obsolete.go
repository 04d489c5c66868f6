package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// Obsolete handles KindObsolete (spec.md §4.15): the identity is
// retired outright, with no successor recorded.
func Obsolete(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)
	oldTown := current.Derive(
		town.WithEndDatetime(temporal.SubDelta(r.Eff)),
		town.WithModification(int(r.Mod)),
	)
	c.Upsert(oldTown)
}
