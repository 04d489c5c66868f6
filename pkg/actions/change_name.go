package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// ChangeName handles KindChangeName and KindChangeNameFusion
// (spec.md §4.3): split the current version at the effective date,
// closing the old name and opening the new one, reusing a
// already-known post-split future end/successors when the current
// version's own end already lies past the effective date.
func ChangeName(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	endDatetime := temporal.FarFuture
	var successors []string
	if !current.EndDatetime.Equal(temporal.FarFuture) && current.EndDatetime.After(r.Eff) {
		endDatetime = current.EndDatetime
		for _, v := range c.ValidAtDepcom(temporal.AddDelta(endDatetime), r.Depcom) {
			successors = append(successors, v.ID)
		}
	}

	newTown := current.Derive(
		town.WithID(town.ID(current.Depcom, r.Effdate)),
		town.WithStartDatetime(r.Eff),
		town.WithEndDatetime(endDatetime),
		town.WithNccenr(coalesce(r.Nccoff, current.Nccenr)),
		town.WithSuccessors(successors...),
	)
	c.Upsert(newTown)

	oldTown := current.Derive(
		town.WithNccenr(r.Nccanc),
		town.WithEndDatetime(temporal.SubDelta(r.Eff)),
		town.WithModification(int(r.Mod)),
	)
	oldTown = oldTown.WithSuccessor(newTown.ID)
	c.Upsert(oldTown)

	c.UpdateSuccessorsTo(oldTown, newTown)
}
