package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// Creation handles KindChangeNameCreation and KindCreation (spec.md
// §4.4): a fresh open-ended version starting at the effective date. If
// the new identifier differs from the current one (the common case,
// since the start date moves), every edge pointing at the current
// version is rewritten to the new one and the current version is
// retired.
func Creation(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	newTown := current.Derive(
		town.WithID(town.ID(current.Depcom, r.Effdate)),
		town.WithStartDatetime(r.Eff),
		town.WithEndDatetime(temporal.FarFuture),
		town.WithNccenr(coalesce(r.Nccoff, current.Nccenr)),
		town.WithModification(int(r.Mod)),
		town.WithNoSuccessors(),
	)
	c.Upsert(newTown)

	if newTown.ID != current.ID {
		c.UpdateSuccessorsFrom(newTown, current)
		c.Delete(current)
		c.UpdateSuccessorsTo(current, newTown)
	}
}
