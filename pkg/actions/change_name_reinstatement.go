package actions

import (
	"sort"

	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

// ancestorsOf returns, for a given version, every other-identity
// version whose own successor list once pointed at it: the members of
// a past multi-party fusion that closed into v's identity. Used by
// ChangeNameReinstatement to rediscover the wider fusion graph
// (spec.md §4.7). c.All() iterates in map order, so the result is
// sorted by depcom to keep the caller's derived successor list
// reproducible across runs.
func ancestorsOf(c *registry.Collection, v town.Version) []town.Version {
	seen := map[string]bool{}
	var out []town.Version
	for _, candidate := range c.All() {
		if candidate.Depcom == v.Depcom {
			continue
		}
		if !candidate.HasSuccessor(v.ID) {
			continue
		}
		if seen[candidate.Depcom] {
			continue
		}
		seen[candidate.Depcom] = true
		out = append(out, candidate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Depcom < out[j].Depcom })
	return out
}

// ChangeNameReinstatement handles KindChangeNameReinstatement (spec.md
// §4.7): the same split as Reinstatement, plus a repair pass over the
// wider fusion graph so a reinstatement concurrent with a fusion still
// links every party.
func ChangeNameReinstatement(c *registry.Collection, r history.Record) {
	current := c.GetCurrent(r.Depcom, r.Eff)

	newTown := current.Derive(
		town.WithID(town.ID(current.Depcom, r.Effdate)),
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
		town.WithNccenr(coalesce(r.Nccanc, r.Nccoff)),
		town.WithEndDatetime(endDatetime),
		town.WithModification(int(r.Mod)),
	)
	oldTown = oldTown.WithSuccessor(newTown.ID)

	for _, ancestor := range ancestorsOf(c, oldTown) {
		for _, guessed := range c.ValidAtDepcom(temporal.AddDelta(oldTown.EndDatetime), ancestor.Depcom) {
			if guessed.ID != oldTown.ID && guessed.ID != newTown.ID {
				oldTown = oldTown.WithSuccessor(guessed.ID)
			}
		}
	}
	c.Upsert(oldTown)
}
