// Package loader reads the two tab-delimited upstream formats — the
// seed roster and the modification log — into the core's in-memory
// types. It is the concrete implementation of the "external
// collaborator" interface spec.md §6.1/§6.2 leaves to callers: the
// core never imports this package, cmd/geohisto does.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/etalab/geohisto/pkg/history"
	"github.com/etalab/geohisto/pkg/registry"
	"github.com/etalab/geohisto/pkg/temporal"
	"github.com/etalab/geohisto/pkg/town"
)

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// LoadTowns reads the seed roster (one row per depcom: dep, com,
// nccenr, actual) and seeds one open-ended town.Version per row at
// temporal.StartDate, the shape of the upstream `france2017.csv`
// roster referenced by original_source/tests/test_towns_load.py.
func LoadTowns(r io.Reader) (*registry.Collection, error) {
	cr := newReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loader: reading town roster: %w", err)
	}

	c := registry.New()
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("loader: town roster row %d: want at least 3 fields, got %d", i, len(row))
		}
		dep := strings.TrimSpace(row[0])
		com := strings.TrimSpace(row[1])
		nccenr := row[2]

		actual := 1
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			actual, err = strconv.Atoi(strings.TrimSpace(row[3]))
			if err != nil {
				return nil, fmt.Errorf("loader: town roster row %d: actual: %w", i, err)
			}
		}

		c.Upsert(town.New(dep, com, nccenr, actual))
	}
	return c, nil
}

// modFieldNames maps the upstream log's column tags to Kind, mirroring
// the dispatch table geohisto/actions.py builds from record.mod.
var modFieldNames = map[string]history.Kind{
	"CHANGE_NAME":                      history.KindChangeName,
	"CHANGE_NAME_FUSION":               history.KindChangeNameFusion,
	"CHANGE_NAME_CREATION":             history.KindChangeNameCreation,
	"CREATION":                         history.KindCreation,
	"CREATION_DELEGATED_POLE":          history.KindCreationDelegatedPole,
	"REINSTATEMENT":                    history.KindReinstatement,
	"CHANGE_NAME_REINSTATEMENT":        history.KindChangeNameReinstatement,
	"SPLITING":                         history.KindSpliting,
	"DELETION_PARTITION":               history.KindDeletionPartition,
	"DELETION_FUSION":                  history.KindDeletionFusion,
	"CREATION_DELEGATED":               history.KindCreationDelegated,
	"FUSION_ASSOCIATION_ASSOCIATED":    history.KindFusionAssociationAssociated,
	"CREATION_NOT_DELEGATED":           history.KindCreationNotDelegated,
	"CREATION_NOT_DELEGATED_POLE":      history.KindCreationNotDelegatedPole,
	"CHANGE_COUNTY":                    history.KindChangeCounty,
	"CHANGE_COUNTY_CREATION":           history.KindChangeCountyCreation,
	"OBSOLETE":                         history.KindObsolete,
	"FUSION_ABSORPTION":                history.KindFusionAbsorption,
	"CREATION_PREEXISTING_ASSOCIATED":  history.KindCreationPreexistingAssociated,
}

// historyColumns is the upstream `historiq2017.csv` column order:
// mod, depcom, effdate, nccoff, nccanc, comech, depanc, last.
const historyColumns = 8

// LoadHistory reads the modification log in file order — order is
// preserved verbatim, per spec.md §5's "the sole ordering imposed on
// input is the order the history is presented". Unrecognized mod tags
// are kept as history.KindNone, which the dispatcher silently skips
// (spec.md §6.4).
func LoadHistory(r io.Reader) ([]history.Record, error) {
	cr := newReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loader: reading history log: %w", err)
	}

	records := make([]history.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < historyColumns {
			return nil, fmt.Errorf("loader: history row %d: want %d fields, got %d", i, historyColumns, len(row))
		}

		effdate, err := time.Parse(temporal.DateLayout, strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("loader: history row %d: effdate: %w", i, err)
		}

		last, err := strconv.ParseBool(strings.TrimSpace(row[7]))
		if err != nil {
			return nil, fmt.Errorf("loader: history row %d: last: %w", i, err)
		}

		records = append(records, history.Record{
			Mod:     modFieldNames[strings.TrimSpace(row[0])],
			Depcom:  strings.TrimSpace(row[1]),
			Effdate: effdate,
			Eff:     temporal.AtMidnight(effdate),
			Nccoff:  row[3],
			Nccanc:  row[4],
			Comech:  strings.TrimSpace(row[5]),
			Depanc:  strings.TrimSpace(row[6]),
			Last:    last,
		})
	}
	return records, nil
}
