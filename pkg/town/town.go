// Package town defines the immutable-by-convention value object
// representing one validity slice of one administrative identity.
package town

import (
	"fmt"
	"strings"
	"time"

	"github.com/etalab/geohisto/pkg/temporal"
)

// Version is one validity slice of one town identity (depcom). Fields
// are exported for the registry and actions packages to read directly,
// but a Version is never mutated in place once published: handlers
// obtain a changed copy via Derive and Upsert it.
type Version struct {
	Dep    string // county code, 2 chars
	Com    string // municipal code, 3 chars
	Depcom string // Dep+Com, the administrative identity

	Nccenr string // official name at this version

	StartDatetime time.Time
	EndDatetime   time.Time

	Modification int // the modification kind that produced/closed this version; 0 = none

	Successors []string // ordered ids this version flows into; duplicates collapsed

	Actual int // verbatim flag from source data

	ID string // fr:commune:<depcom>@<start date iso>
}

// ID computes the identity of a version starting on start for the
// given depcom. It is a pure function of (depcom, start date) per the
// identity-formation invariant.
func ID(depcom string, start time.Time) string {
	return fmt.Sprintf("fr:commune:%s@%s", depcom, temporal.ISO(start))
}

// New builds the single seed version for depcom: open from
// temporal.StartDatetime to temporal.FarFuture, with no successors and
// no modification recorded.
func New(dep, com, nccenr string, actual int) Version {
	depcom := dep + com
	return Version{
		Dep:           dep,
		Com:           com,
		Depcom:        depcom,
		Nccenr:        nccenr,
		StartDatetime: temporal.StartDatetime,
		EndDatetime:   temporal.FarFuture,
		Actual:        actual,
		ID:            ID(depcom, temporal.StartDatetime),
	}
}

// StartDate returns the date component of StartDatetime.
func (v Version) StartDate() time.Time { return temporal.ToDate(v.StartDatetime) }

// EndDate returns the date component of EndDatetime.
func (v Version) EndDate() time.Time { return temporal.ToDate(v.EndDatetime) }

// ValidAt reports whether t falls within this version's closed
// interval [StartDatetime, EndDatetime].
func (v Version) ValidAt(t time.Time) bool {
	return !t.Before(v.StartDatetime) && !t.After(v.EndDatetime)
}

// SuccessorsJoined serializes Successors the way the legacy output
// format expects: ids joined by ';', empty string when there are none.
func (v Version) SuccessorsJoined() string {
	return strings.Join(v.Successors, ";")
}

// DepcomOf extracts the depcom embedded in an id of the form
// "fr:commune:<depcom>@<date>". Returns "" if id is not of that shape.
func DepcomOf(id string) string {
	const prefix = "fr:commune:"
	if !strings.HasPrefix(id, prefix) {
		return ""
	}
	rest := id[len(prefix):]
	at := strings.IndexByte(rest, '@')
	if at < 0 {
		return ""
	}
	return rest[:at]
}

// HasSuccessorForDepcom reports whether any of v's successors was
// minted for the given depcom.
func (v Version) HasSuccessorForDepcom(depcom string) bool {
	for _, s := range v.Successors {
		if DepcomOf(s) == depcom {
			return true
		}
	}
	return false
}

// HasSuccessor reports whether id is already present among v's
// successors.
func (v Version) HasSuccessor(id string) bool {
	for _, s := range v.Successors {
		if s == id {
			return true
		}
	}
	return false
}

// Option overrides one field of a Version when passed to Derive. The
// zero value of Option is never meaningful on its own; build one via
// the With* constructors below.
type Option func(*Version)

// WithID overrides the id.
func WithID(id string) Option { return func(v *Version) { v.ID = id } }

// WithDep overrides the county code.
func WithDep(dep string) Option { return func(v *Version) { v.Dep = dep } }

// WithCom overrides the municipal code.
func WithCom(com string) Option { return func(v *Version) { v.Com = com } }

// WithDepcom overrides the administrative identity.
func WithDepcom(depcom string) Option { return func(v *Version) { v.Depcom = depcom } }

// WithNccenr overrides the name unconditionally. Handlers that need
// the "new name, or keep the current one when blank" fallback (the
// spec's repeated "record.nccoff or current_town.nccenr") resolve that
// fallback themselves before calling Derive — see coalesce in package
// actions.
func WithNccenr(name string) Option {
	return func(v *Version) { v.Nccenr = name }
}

// WithStartDatetime overrides the start of the validity interval.
func WithStartDatetime(t time.Time) Option { return func(v *Version) { v.StartDatetime = t } }

// WithEndDatetime overrides the end of the validity interval.
func WithEndDatetime(t time.Time) Option { return func(v *Version) { v.EndDatetime = t } }

// WithModification overrides the modification tag.
func WithModification(mod int) Option { return func(v *Version) { v.Modification = mod } }

// WithSuccessors replaces the successor list wholesale.
func WithSuccessors(ids ...string) Option {
	list := append([]string(nil), ids...)
	return func(v *Version) { v.Successors = list }
}

// WithNoSuccessors clears the successor list.
func WithNoSuccessors() Option { return WithSuccessors() }

// WithActual overrides the verbatim source flag.
func WithActual(actual int) Option { return func(v *Version) { v.Actual = actual } }

// Derive returns a fresh Version equal to v with every supplied option
// applied in order. v itself is never mutated. Fields not touched by
// any option keep v's values, matching the Python `generate(**kwargs)`
// partial-override semantics.
func (v Version) Derive(opts ...Option) Version {
	next := v
	next.Successors = append([]string(nil), v.Successors...)
	for _, opt := range opts {
		opt(&next)
	}
	return next
}

// WithSuccessor returns a copy of v with id appended to its successors,
// unless it is already present.
func (v Version) WithSuccessor(id string) Version {
	if v.HasSuccessor(id) {
		return v
	}
	next := v
	next.Successors = append(append([]string(nil), v.Successors...), id)
	return next
}
