package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// CreationNotDelegatedPole handles KindCreationNotDelegatedPole
// (spec.md §4.12), a grouped modification like
// CreationDelegatedPole: member records close the current version and
// only the record marked Last actually mints the pole.
func CreationNotDelegatedPole(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	endDatetime := temporal.FarFuture
	if current.StartDatetime.Before(r.Eff) {
		endDatetime = temporal.SubDelta(r.Eff)
	}
	oldTown := current.Derive(
		town.WithEndDatetime(endDatetime),
		town.WithModification(int(r.Mod)),
		town.WithNoSuccessors(),
	)
	c.Upsert(oldTown)

	if !r.Last {
		return
	}

	newTown := current.Derive(
		town.WithID(town.ID(current.Depcom, r.Effdate)),
		town.WithStartDatetime(r.Eff),
		town.WithEndDatetime(temporal.FarFuture),
		town.WithNccenr(r.Nccoff),
		town.WithModification(int(history.KindCreationNotDelegatedPole)),
	)
	oldTown = oldTown.WithSuccessor(newTown.ID)
	c.Upsert(oldTown)
	c.Upsert(newTown)

	c.UpdateSuccessorsFrom(newTown, current)
}
