package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// Deletion handles KindDeletionPartition, KindDeletionFusion and
// KindCreationDelegated (spec.md §4.9): close the current version the
// instant before the effective date and link it to the current
// version of its partner identity.
func Deletion(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)
	successor := c.GetCurrent(r.Comech, r.Eff)

	oldTown := current.Derive(
		town.WithNccenr(r.Nccoff),
		town.WithEndDatetime(temporal.SubDelta(r.Eff)),
		town.WithModification(int(r.Mod)),
	)
	oldTown = oldTown.WithSuccessor(successor.ID)
	c.Upsert(oldTown)
}
