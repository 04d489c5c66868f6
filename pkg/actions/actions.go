// Package actions holds one handler per modification kind (spec.md
// §4.3–§4.15). Each handler is a localized mutation of a
// registry.Collection; handlers never see one another, the way the
// teacher's pkg/sql/executor splits one file per statement family
// under a shared Executor receiver.
package actions

import (
	"github.com/etalab/geohisto/pkg/dispatch"
	"github.com/etalab/geohisto/pkg/history"
)

// coalesce returns preferred if it is non-empty, else fallback. It
// resolves the spec's repeated "record.nccoff or current_town.nccenr"
// idiom (spec.md §4.3 step 2 and throughout).
func coalesce(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}

// RegisterAll wires every recognized modification kind to its handler
// on d. Kinds named in package history but never registered here
// (KindFusionAbsorption, KindCreationPreexistingAssociated) are
// intentionally left unhandled, matching the upstream log's own
// no-op treatment of them (spec.md §6.4).
func RegisterAll(d *dispatch.Dispatcher) {
	d.Register(history.KindChangeName, ChangeName)
	d.Register(history.KindChangeNameFusion, ChangeName)

	d.Register(history.KindChangeNameCreation, Creation)
	d.Register(history.KindCreation, Creation)

	d.Register(history.KindCreationDelegatedPole, CreationDelegatedPole)

	d.Register(history.KindReinstatement, Reinstatement)
	d.Register(history.KindChangeNameReinstatement, ChangeNameReinstatement)

	d.Register(history.KindSpliting, Spliting)

	d.Register(history.KindDeletionPartition, Deletion)
	d.Register(history.KindDeletionFusion, Deletion)
	d.Register(history.KindCreationDelegated, Deletion)

	d.Register(history.KindFusionAssociationAssociated, FusionAssociationAssociated)

	d.Register(history.KindCreationNotDelegated, CreationNotDelegated)
	d.Register(history.KindCreationNotDelegatedPole, CreationNotDelegatedPole)

	d.Register(history.KindChangeCounty, ChangeCounty)
	d.Register(history.KindChangeCountyCreation, ChangeCountyCreation)

	d.Register(history.KindObsolete, Obsolete)
}
