package actions

import (
	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// Reinstatement handles KindReinstatement (spec.md §4.6). If the
// computed id already exists — a same-day CHANGE_NAME collided with
// this reinstatement — the handler does nothing, deferring resolution
// to whichever handler runs later for that colliding record (upstream:
// `Nonsard-Lamarche`, `Pretz-en-Argonne`, `Les Avanchers-Valmorel`).
func Reinstatement(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	id := town.ID(current.Depcom, r.Effdate)
	if c.Has(id) {
		return
	}

	newTown := current.Derive(
		town.WithID(id),
		town.WithStartDatetime(r.Eff),
		town.WithEndDatetime(temporal.FarFuture),
		town.WithNccenr(r.Nccoff),
		town.WithNoSuccessors(),
		town.WithModification(0),
	)
	c.Upsert(newTown)

	endDatetime := current.EndDatetime
	if temporal.SubDelta(r.Eff).Before(endDatetime) {
		endDatetime = temporal.SubDelta(r.Eff)
	}
	oldTown := current.Derive(
		town.WithNccenr(r.Nccoff),
		town.WithEndDatetime(endDatetime),
		town.WithModification(int(r.Mod)),
	)
	if newTown.ValidAt(temporal.AddDelta(oldTown.EndDatetime)) {
		oldTown = oldTown.WithSuccessor(newTown.ID)
	}
	c.Upsert(oldTown)

	c.ReplaceSuccessor(oldTown, newTown, temporal.SubDelta(newTown.StartDatetime))
}
