package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// ChangeCounty handles KindChangeCounty (spec.md §4.13): depcom itself
// is unchanged, but its county digits move, so the identity is reborn
// under a fresh id at record.eff. The county it moves out of
// (record.depanc) is closed the same instant; when the ancient depcom
// had no version yet starting at the current version's start date, the
// seed version of record.depcom minted at temporal.StartDatetime was
// keyed to the wrong county and is rewritten to carry record.depanc.
func ChangeCounty(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	endDatetime := current.EndDatetime
	if afterEff := temporal.AddDelta(r.Eff); afterEff.After(endDatetime) {
		endDatetime = afterEff
	}
	newTown := current.Derive(
		town.WithID(town.ID(current.Depcom, r.Effdate)),
		town.WithStartDatetime(r.Eff),
		town.WithEndDatetime(endDatetime),
	)
	c.Upsert(newTown)
	c.Delete(current)
	c.UpdateSuccessorsTo(current, newTown)

	ancientTown := c.GetCurrent(r.Depanc, r.Eff)

	var oldTown town.Version
	if ancientTown.ValidAt(r.Eff) {
		id := town.ID(ancientTown.Depcom, current.StartDate())
		isNewEntry := !c.Has(id)
		oldTown = ancientTown.Derive(
			town.WithID(id),
			town.WithStartDatetime(current.StartDatetime),
			town.WithEndDatetime(temporal.SubDelta(r.Eff)),
			town.WithModification(int(r.Mod)),
		)
		c.UpdateSuccessorsFrom(oldTown, current)
		c.Delete(ancientTown)
		c.UpdateSuccessorsTo(ancientTown, oldTown)

		if isNewEntry {
			initialTown := c.GetCurrent(r.Depcom, temporal.StartDatetime)
			initialUpdated := initialTown.Derive(
				town.WithID(town.ID(r.Depanc, temporal.StartDate)),
				town.WithDep(r.Depanc[:2]),
				town.WithCom(r.Depanc[2:]),
				town.WithDepcom(r.Depanc),
			)
			c.Upsert(initialUpdated)
			c.Delete(initialTown)
		}
	} else {
		// Multiple county changes for the same identity (e.g.
		// Châteaufort): the ancient version is no longer current at
		// record.eff, so it is reconstructed from the seed instead of
		// split off the live one.
		oldTown = ancientTown.Derive(
			town.WithID(town.ID(ancientTown.Depcom, temporal.StartDate)),
			town.WithStartDatetime(temporal.StartDatetime),
			town.WithEndDatetime(temporal.SubDelta(r.Eff)),
			town.WithModification(int(r.Mod)),
		)
	}

	oldTown = oldTown.WithSuccessor(newTown.ID)
	c.Upsert(oldTown)
}
