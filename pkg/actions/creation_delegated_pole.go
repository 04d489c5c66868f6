package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// CreationDelegatedPole handles KindCreationDelegatedPole (spec.md
// §4.5). Pole creations arrive grouped, one record per member,
// terminated by the record with Last set. Later records in the group
// may reuse a pole version already created by a previous record of the
// same group (guards against repeated upsertion and against deleting
// the seed too early — e.g. upstream's `Pont-d'Ouilly`).
func CreationDelegatedPole(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	var newTown town.Version
	alreadyCreated := current.Modification == int(history.KindCreationDelegatedPole)
	sameName := r.Nccoff == current.Nccenr
	if alreadyCreated && sameName {
		newTown = current
	} else {
		newTown = current.Derive(
			town.WithID(town.ID(current.Depcom, r.Effdate)),
			town.WithStartDatetime(r.Eff),
			town.WithEndDatetime(temporal.FarFuture),
			town.WithNccenr(coalesce(r.Nccoff, current.Nccenr)),
			town.WithModification(int(r.Mod)),
			town.WithNoSuccessors(),
		)
	}

	if !c.Has(newTown.ID) {
		c.Upsert(newTown)
	}
	if r.Last {
		c.UpdateSuccessorsFrom(newTown, current)
	}

	for _, ancestor := range c.ValidAtDepcom(temporal.SubDelta(current.StartDatetime), r.Depcom) {
		c.UpdateSuccessorsTo(ancestor, newTown)
	}

	if !r.Last {
		return
	}

	hasDifferentIDs := newTown.ID != current.ID
	hasSameName := newTown.Nccenr == current.Nccenr
	if hasDifferentIDs && hasSameName {
		c.Delete(current)
	}
}
