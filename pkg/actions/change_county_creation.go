package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// ChangeCountyCreation handles KindChangeCountyCreation (spec.md
// §4.14): a county change coupled with a fusion, so the reborn
// identity only gets a 1-microsecond window to keep the graph
// connected before it is immediately absorbed.
func ChangeCountyCreation(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)
	oldTown := c.GetCurrent(r.Depanc, r.Eff)

	newTown := current.Derive(
		town.WithID(town.ID(r.Depcom, r.Effdate)),
		town.WithDepcom(r.Depcom),
		town.WithDep(r.Depcom[:2]),
		town.WithCom(r.Depcom[2:]),
		town.WithStartDatetime(r.Eff),
		town.WithEndDatetime(temporal.AddDelta(r.Eff)),
	)
	c.Upsert(newTown)
	c.Delete(current)

	oldTownNew := oldTown.Derive(
		town.WithEndDatetime(temporal.SubDelta(r.Eff)),
		town.WithSuccessors(newTown.ID),
		town.WithModification(int(r.Mod)),
	)
	c.Upsert(oldTownNew)

	c.UpdateSuccessorsFrom(newTown, oldTownNew)
}
