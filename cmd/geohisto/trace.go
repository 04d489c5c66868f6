package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/etalab/geohisto/pkg/temporal"
)

var traceCmd = &cobra.Command{
	Use:   "trace <depcom>",
	Short: "Print the full validity chain of one identity",
	Long: `Replay the full history, then print every version ever recorded
under depcom, in chronological order, with its successors.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func runTrace(cmd *cobra.Command, args []string) error {
	depcom := args[0]

	logger := newLogger()
	collection, _, err := buildCollection(logger)
	if err != nil {
		return err
	}

	versions := collection.Filter(depcom)
	if len(versions) == 0 {
		fmt.Printf("no versions recorded for %s\n", depcom)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tSUCCESSORS")
	for _, v := range versions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Nccenr,
			v.StartDate().Format(temporal.DateLayout),
			v.EndDate().Format(temporal.DateLayout),
			v.SuccessorsJoined())
	}
	return w.Flush()
}
