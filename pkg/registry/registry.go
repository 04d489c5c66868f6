// Package registry holds the indexed, mutable store of town versions
// that the dispatch engine mutates as it walks the modification log.
// The Collection is the sole owner of every town.Version; handlers
// never hold a version past the call that derived it, they always
// round-trip it through Upsert.
package registry

import (
	"fmt"
	"sort"
	"time"

	"github.com/etalab/geohisto/pkg/town"
)

// Collection is the town-version store (spec.md §4.1). It is not
// safe for concurrent use: the engine is strictly single-threaded
// (spec.md §5), so no lock is carried, unlike the teacher's
// mvcc.VersionedStore.
type Collection struct {
	byID     map[string]town.Version
	byDepcom map[string][]string // ids, kept sorted by StartDatetime
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{
		byID:     make(map[string]town.Version),
		byDepcom: make(map[string][]string),
	}
}

// Len returns the number of versions currently stored.
func (c *Collection) Len() int { return len(c.byID) }

// Has reports whether id is present in the collection.
func (c *Collection) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Get retrieves a version by id.
func (c *Collection) Get(id string) (town.Version, bool) {
	v, ok := c.byID[id]
	return v, ok
}

// Upsert inserts v, or replaces the existing version sharing v.ID.
func (c *Collection) Upsert(v town.Version) {
	if _, exists := c.byID[v.ID]; exists {
		c.removeFromDepcomIndex(v.Depcom, v.ID)
	}
	c.byID[v.ID] = v
	c.insertIntoDepcomIndex(v)
}

// Delete removes the version with v.ID. It is a no-op if absent.
func (c *Collection) Delete(v town.Version) {
	c.DeleteByID(v.ID)
}

// DeleteByID removes the version by id. It is a no-op if absent.
func (c *Collection) DeleteByID(id string) {
	existing, ok := c.byID[id]
	if !ok {
		return
	}
	delete(c.byID, id)
	c.removeFromDepcomIndex(existing.Depcom, id)
}

func (c *Collection) insertIntoDepcomIndex(v town.Version) {
	ids := c.byDepcom[v.Depcom]
	pos := sort.Search(len(ids), func(i int) bool {
		other := c.byID[ids[i]]
		return other.StartDatetime.After(v.StartDatetime)
	})
	ids = append(ids, "")
	copy(ids[pos+1:], ids[pos:])
	ids[pos] = v.ID
	c.byDepcom[v.Depcom] = ids
}

func (c *Collection) removeFromDepcomIndex(depcom, id string) {
	ids := c.byDepcom[depcom]
	for i, existing := range ids {
		if existing == id {
			c.byDepcom[depcom] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// All returns every stored version in no particular order. Callers
// needing deterministic order should use SortByID.
func (c *Collection) All() []town.Version {
	out := make([]town.Version, 0, len(c.byID))
	for _, v := range c.byID {
		out = append(out, v)
	}
	return out
}

// Filter returns every version of depcom, ordered by StartDatetime.
func (c *Collection) Filter(depcom string) []town.Version {
	ids := c.byDepcom[depcom]
	out := make([]town.Version, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id])
	}
	return out
}

// ValidAt returns every version, across all identities, valid at t.
func (c *Collection) ValidAt(t time.Time) []town.Version {
	out := make([]town.Version, 0)
	for _, v := range c.byID {
		if v.ValidAt(t) {
			out = append(out, v)
		}
	}
	return out
}

// ValidAtDepcom returns the versions of depcom valid at t (normally at
// most one, except the designated 1-microsecond temporary-existence
// cases, spec.md §4.9/§4.10).
func (c *Collection) ValidAtDepcom(t time.Time, depcom string) []town.Version {
	out := make([]town.Version, 0)
	for _, v := range c.Filter(depcom) {
		if v.ValidAt(t) {
			out = append(out, v)
		}
	}
	return out
}

// GetCurrent returns the version of depcom valid at t; when more than
// one is transiently valid at t (a grouped handler may have minted a
// replacement before retiring the version it supersedes, spec.md
// §4.5/§4.12), the one with the latest start wins. If none is valid at
// t, it returns the most recently ended version preceding t; failing
// that, the earliest subsequent version. Looking up an unknown depcom
// is a programmer error and panics, per spec.md §4.1 — the dispatcher
// recovers and turns it into a fatal, record-annotated error.
func (c *Collection) GetCurrent(depcom string, t time.Time) town.Version {
	ids := c.byDepcom[depcom]
	if len(ids) == 0 {
		panic(fmt.Errorf("get_current: unknown depcom %q", depcom))
	}

	var validMatch *town.Version // ids are sorted by StartDatetime ascending, so the last match wins
	var preceding *town.Version
	var subsequent *town.Version
	for _, id := range ids {
		v := c.byID[id]
		if v.ValidAt(t) {
			vv := v
			validMatch = &vv
			continue
		}
		if v.EndDatetime.Before(t) {
			vv := v
			preceding = &vv
		}
		if subsequent == nil && v.StartDatetime.After(t) {
			vv := v
			subsequent = &vv
		}
	}
	if validMatch != nil {
		return *validMatch
	}
	if preceding != nil {
		return *preceding
	}
	if subsequent != nil {
		return *subsequent
	}
	// Unreachable for a depcom with at least one version, kept as a
	// defensive fatal rather than a zero-value Version escaping silently.
	panic(fmt.Errorf("get_current: no version of %q resolves at %v", depcom, t))
}

// UpdateSuccessorsFrom rewrites every stored version's successor list,
// replacing any reference to from.ID with v.ID.
func (c *Collection) UpdateSuccessorsFrom(v town.Version, from town.Version) {
	c.rewriteSuccessors(from.ID, v.ID)
}

// UpdateSuccessorsTo rewrites every stored version's successor list,
// replacing any reference to v.ID with to.ID.
func (c *Collection) UpdateSuccessorsTo(v town.Version, to town.Version) {
	c.rewriteSuccessors(v.ID, to.ID)
}

func (c *Collection) rewriteSuccessors(oldID, newID string) {
	if oldID == newID {
		return
	}
	for id, holder := range c.byID {
		if !holder.HasSuccessor(oldID) {
			continue
		}
		rewritten := make([]string, 0, len(holder.Successors))
		seen := make(map[string]bool, len(holder.Successors))
		for _, s := range holder.Successors {
			next := s
			if next == oldID {
				next = newID
			}
			if seen[next] {
				continue
			}
			seen[next] = true
			rewritten = append(rewritten, next)
		}
		holder.Successors = rewritten
		c.byID[id] = holder
	}
}

// ReplaceSuccessor substitutes, within holder's own successor list, any
// entry whose referent is valid at validAt with newV.ID. The rewritten
// holder is upserted back into the collection.
func (c *Collection) ReplaceSuccessor(holder town.Version, newV town.Version, validAt time.Time) {
	current, ok := c.byID[holder.ID]
	if !ok {
		current = holder
	}
	rewritten := make([]string, 0, len(current.Successors))
	changed := false
	for _, s := range current.Successors {
		referent, ok := c.byID[s]
		if ok && referent.ValidAt(validAt) && s != newV.ID {
			rewritten = append(rewritten, newV.ID)
			changed = true
			continue
		}
		rewritten = append(rewritten, s)
	}
	if !changed {
		return
	}
	current.Successors = dedupe(rewritten)
	c.Upsert(current)
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// SortByID returns every stored version, ordered ascending by id — the
// final deterministic-output pass (spec.md §4.16).
func (c *Collection) SortByID() []town.Version {
	out := make([]town.Version, 0, len(c.byID))
	for _, v := range c.byID {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
