package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// FusionAssociationAssociated handles KindFusionAssociationAssociated
// (spec.md §4.10). When the current version begins at the very instant
// the fusion closes it, the version would otherwise have zero length;
// it is instead given a 1-microsecond "temporary existence" (upstream:
// `Lamarche-en-Woëvre`). If the successor is itself the product of a
// CHANGE_NAME_REINSTATEMENT and doesn't yet list this depcom among its
// own successors, the current version of this depcom just after the
// successor's end is appended — resolving fusion/split groups recorded
// out of temporal order.
func FusionAssociationAssociated(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	endDatetime := temporal.SubDelta(r.Eff)
	if current.StartDatetime.Equal(r.Eff) {
		endDatetime = temporal.AddDelta(r.Eff)
	}

	oldTown := current.Derive(
		town.WithNccenr(r.Nccoff),
		town.WithEndDatetime(endDatetime),
		town.WithModification(int(r.Mod)),
	)
	successor := c.GetCurrent(r.Comech, r.Eff)
	oldTown = oldTown.WithSuccessor(successor.ID)

	if successor.Modification == int(history.KindChangeNameReinstatement) {
		if !successor.HasSuccessorForDepcom(oldTown.Depcom) {
			newTown := c.GetCurrent(oldTown.Depcom, temporal.AddDelta(successor.EndDatetime))
			successor = successor.WithSuccessor(newTown.ID)
			c.Upsert(successor)
		}
	}
	c.Upsert(oldTown)
}
