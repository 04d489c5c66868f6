package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/etalab/geohisto/pkg/temporal"
)

var atCmd = &cobra.Command{
	Use:   "at <depcom> <date>",
	Short: "Print the version of depcom valid at date",
	Long: `Replay the full history, then print every version of depcom whose
validity interval contains date (normally one, except the documented
1-microsecond temporary-existence overlaps).`,
	Args: cobra.ExactArgs(2),
	RunE: runAt,
}

func runAt(cmd *cobra.Command, args []string) error {
	depcom := args[0]
	t, err := time.Parse(temporal.DateLayout, args[1])
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", args[1], err)
	}

	logger := newLogger()
	collection, _, err := buildCollection(logger)
	if err != nil {
		return err
	}

	matches := collection.ValidAtDepcom(t, depcom)
	if len(matches) == 0 {
		fmt.Printf("no version of %s is valid at %s\n", depcom, args[1])
		return nil
	}
	for _, v := range matches {
		fmt.Printf("%s\t%s\t%s → %s\t successors=%s\n",
			v.ID, v.Nccenr, v.StartDate().Format(temporal.DateLayout), v.EndDate().Format(temporal.DateLayout), v.SuccessorsJoined())
	}
	return nil
}
