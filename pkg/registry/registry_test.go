package registry

import (
	"testing"
	"time"

	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

func TestUpsertAndGet(t *testing.T) {
	c := New()
	v := town.New("10", "263", "Neuville-sur-Vannes", 1)
	c.Upsert(v)

	got, ok := c.Get(v.ID)
	if !ok {
		t.Fatalf("expected version to be present")
	}
	if got.Nccenr != "Neuville-sur-Vannes" {
		t.Errorf("unexpected name %s", got.Nccenr)
	}
	if c.Len() != 1 {
		t.Errorf("expected length 1, got %d", c.Len())
	}
}

func TestUpsertReplacesByID(t *testing.T) {
	c := New()
	v := town.New("10", "263", "Neuville-sur-Vannes", 1)
	c.Upsert(v)

	renamed := v.Derive(town.WithNccenr("Neuville-sur-Vanne"))
	c.Upsert(renamed)

	if c.Len() != 1 {
		t.Fatalf("expected a single version after replace, got %d", c.Len())
	}
	got, _ := c.Get(v.ID)
	if got.Nccenr != "Neuville-sur-Vanne" {
		t.Errorf("expected replaced name, got %s", got.Nccenr)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	c := New()
	v := town.New("10", "263", "Neuville", 1)
	c.Delete(v) // not present yet: no-op
	c.Upsert(v)
	c.Delete(v)
	c.Delete(v) // already gone: no-op
	if c.Len() != 0 {
		t.Errorf("expected empty collection, got %d", c.Len())
	}
}

func TestFilterOrdersByStartDatetime(t *testing.T) {
	c := New()
	seed := town.New("51", "108", "Châlons-sur-Marne", 1)
	c.Upsert(seed)

	eff2 := time.Date(1997, time.May, 1, 0, 0, 0, 0, time.UTC)
	eff1 := time.Date(1995, time.November, 17, 0, 0, 0, 0, time.UTC)

	v2 := seed.Derive(town.WithID(town.ID(seed.Depcom, eff2)), town.WithStartDatetime(eff2))
	v1 := seed.Derive(town.WithID(town.ID(seed.Depcom, eff1)), town.WithStartDatetime(eff1))

	// Insert out of temporal order to verify the index re-sorts.
	c.Upsert(v2)
	c.Upsert(v1)

	ordered := c.Filter("51108")
	if len(ordered) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(ordered))
	}
	if !(ordered[0].StartDatetime.Before(ordered[1].StartDatetime) &&
		ordered[1].StartDatetime.Before(ordered[2].StartDatetime)) {
		t.Errorf("expected ascending start order, got %+v", ordered)
	}
}

func TestGetCurrentValidAtInstant(t *testing.T) {
	c := New()
	v := town.New("10", "263", "Neuville", 1)
	c.Upsert(v)

	got := c.GetCurrent("10263", temporal.StartDatetime)
	if got.ID != v.ID {
		t.Errorf("expected seed version, got %s", got.ID)
	}
}

// A grouped handler may upsert a replacement before retiring the
// version it supersedes, leaving both transiently valid at the same
// instant; GetCurrent must favor the later-starting one so a second
// call in the same group observes its own prior work (spec.md §4.5's
// `is_already_created` guard depends on this).
func TestGetCurrentPrefersLatestStartWhenMultipleAreValid(t *testing.T) {
	c := New()
	seed := town.New("68", "240", "", 1)
	c.Upsert(seed)

	eff := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	pole := seed.Derive(
		town.WithID(town.ID(seed.Depcom, eff)),
		town.WithStartDatetime(eff),
	)
	c.Upsert(pole)

	got := c.GetCurrent("68240", eff)
	if got.ID != pole.ID {
		t.Errorf("expected the later-starting pole version, got %s", got.ID)
	}
}

func TestGetCurrentAtAbuttingBoundaryPicksReopened(t *testing.T) {
	c := New()
	seed := town.New("10", "263", "Neuville-sur-Vannes", 1)
	eff := time.Date(2008, time.October, 6, 0, 0, 0, 0, time.UTC)
	closed := seed.Derive(town.WithEndDatetime(temporal.SubDelta(eff)))
	reopened := seed.Derive(
		town.WithID(town.ID(seed.Depcom, eff)),
		town.WithStartDatetime(eff),
	)
	c.Upsert(closed)
	c.Upsert(reopened)

	// An instant strictly between the two versions' validity does not
	// occur here since intervals abut, so probe right after eff where
	// only reopened is valid, confirming ordinary resolution still works.
	got := c.GetCurrent("10263", eff)
	if got.ID != reopened.ID {
		t.Errorf("expected reopened version, got %s", got.ID)
	}
}

func TestGetCurrentOnUnknownDepcomPanics(t *testing.T) {
	c := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected GetCurrent to panic on an unknown depcom")
		}
	}()
	c.GetCurrent("99999", temporal.StartDatetime)
}

func TestUpdateSuccessorsFromRewritesAllHolders(t *testing.T) {
	c := New()
	old := town.New("10", "263", "Old", 1).Derive(town.WithID("old"))
	pointsAtOld := town.New("20", "001", "Pointer", 1).
		Derive(town.WithID("pointer"), town.WithSuccessors("old"))
	replacement := old.Derive(town.WithID("new"))

	c.Upsert(old)
	c.Upsert(pointsAtOld)

	c.UpdateSuccessorsFrom(replacement, old)

	got, _ := c.Get("pointer")
	if !got.HasSuccessor("new") || got.HasSuccessor("old") {
		t.Errorf("expected successor rewritten to new, got %v", got.Successors)
	}
}

func TestUpdateSuccessorsToRewritesReferencesToV(t *testing.T) {
	c := New()
	v := town.New("10", "263", "Current", 1).Derive(town.WithID("current"))
	pointsAtV := town.New("20", "001", "Pointer", 1).
		Derive(town.WithID("pointer"), town.WithSuccessors("current"))
	c.Upsert(v)
	c.Upsert(pointsAtV)

	replacement := v.Derive(town.WithID("replacement"))
	c.UpdateSuccessorsTo(v, replacement)

	got, _ := c.Get("pointer")
	if !got.HasSuccessor("replacement") {
		t.Errorf("expected successor rewritten to replacement, got %v", got.Successors)
	}
}

func TestReplaceSuccessorOnlyTouchesValidReferents(t *testing.T) {
	c := New()
	stale := town.New("10", "263", "Stale", 1).Derive(
		town.WithID("stale"),
		town.WithEndDatetime(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
	)
	fresh := town.New("10", "263", "Fresh", 1).Derive(
		town.WithID("fresh"),
		town.WithStartDatetime(time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)),
	)
	holder := town.New("20", "001", "Holder", 1).Derive(
		town.WithID("holder"), town.WithSuccessors("stale"),
	)
	c.Upsert(stale)
	c.Upsert(fresh)
	c.Upsert(holder)

	at := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) // stale's closed end
	c.ReplaceSuccessor(holder, fresh, at)

	got, _ := c.Get("holder")
	if !got.HasSuccessor("fresh") || got.HasSuccessor("stale") {
		t.Errorf("expected stale reference replaced by fresh, got %v", got.Successors)
	}
}

func TestSortByIDIsDeterministic(t *testing.T) {
	c := New()
	c.Upsert(town.New("20", "001", "B", 1))
	c.Upsert(town.New("10", "263", "A", 1))

	sorted := c.SortByID()
	if len(sorted) != 2 || sorted[0].ID > sorted[1].ID {
		t.Errorf("expected ascending id order, got %+v", sorted)
	}
}
