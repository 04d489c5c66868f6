// Package dispatch looks up the handler for a modification record's
// kind and invokes it, the way the teacher's executor looks up the
// statement handler for a parsed SQL statement's type (pkg/sql/executor
// in the retrieval pack's mjm918/tur).
package dispatch

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/town"
)

// Handler applies one modification record to the collection. Handlers
// signal a programmer error (a malformed record, a lookup against an
// unknown depcom) by panicking; Run recovers it and turns it into a
// fatal error carrying the offending record (spec.md §4.2, §7).
type Handler func(c *registry.Collection, r history.Record)

// Dispatcher maintains the static mapping from modification kind to
// Handler. Unknown or unregistered kinds are silently skipped.
type Dispatcher struct {
	handlers map[history.Kind]Handler
	logger   zerolog.Logger
}

// New returns an empty Dispatcher logging through logger.
func New(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[history.Kind]Handler),
		logger:   logger,
	}
}

// Register wires kind to handler. A later call for the same kind
// replaces the earlier one.
func (d *Dispatcher) Register(kind history.Kind, handler Handler) {
	d.handlers[kind] = handler
}

// Run walks history in order, applying each record's handler in turn,
// and returns the collection in final deterministic order (spec.md
// §4.16's post-pass). Any handler panic aborts the run: the error
// returned names the offending record, and the collection is left in
// an undefined state per spec.md §7 ("no partial rollback").
func (d *Dispatcher) Run(c *registry.Collection, records []history.Record) ([]town.Version, error) {
	for _, r := range records {
		if err := d.dispatchOne(c, r); err != nil {
			return nil, err
		}
	}
	return c.SortByID(), nil
}

func (d *Dispatcher) dispatchOne(c *registry.Collection, r history.Record) (err error) {
	handler, ok := d.handlers[r.Mod]
	if !ok {
		d.logger.Debug().
			Str("mod", r.Mod.String()).
			Str("depcom", r.Depcom).
			Msg("no handler registered, skipping")
		return nil
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf(
				"applying %s to depcom=%s effdate=%s comech=%s: %v",
				r.Mod, r.Depcom, r.Effdate.Format("2006-01-02"), r.Comech, recovered,
			)
		}
	}()

	d.logger.Debug().
		Str("mod", r.Mod.String()).
		Str("depcom", r.Depcom).
		Str("effdate", r.Effdate.Format("2006-01-02")).
		Msg("dispatching modification")

	handler(c, r)
	return nil
}
