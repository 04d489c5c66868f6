package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// CreationNotDelegated handles KindCreationNotDelegated (spec.md
// §4.11). When the record's subject and partner identity are the same
// depcom and the name is actually changing, this record describes the
// pole itself coming into being; otherwise it describes an ordinary
// member joining the pole named by Comech.
func CreationNotDelegated(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	if r.Depcom == r.Comech && current.Nccenr != r.Nccoff {
		newTown := current.Derive(
			town.WithID(town.ID(current.Depcom, r.Effdate)),
			town.WithStartDatetime(r.Eff),
			town.WithModification(int(history.KindCreationNotDelegatedPole)),
		)
		c.Upsert(newTown)
		c.UpdateSuccessorsFrom(newTown, current)

		oldTown := current.Derive(
			town.WithNccenr(r.Nccoff),
			town.WithEndDatetime(temporal.SubDelta(r.Eff)),
			town.WithModification(int(r.Mod)),
		)
		oldTown = oldTown.WithSuccessor(newTown.ID)
		c.Upsert(oldTown)
		return
	}

	successor := c.GetCurrent(r.Comech, r.Eff)
	oldTown := current.Derive(
		town.WithEndDatetime(temporal.SubDelta(r.Eff)),
		town.WithModification(int(r.Mod)),
	)
	oldTown = oldTown.WithSuccessor(successor.ID)
	c.Upsert(oldTown)
}
