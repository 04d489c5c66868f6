package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/etalab/geohisto/pkg/temporal"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Replay the modification log and summarize the resulting history",
	Long: `Load the seed roster, apply every record of the modification log in
order, and print a summary of the resulting version count.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	_, versions, err := buildCollection(logger)
	if err != nil {
		return err
	}

	byKind := make(map[int]int)
	distinct := make(map[string]struct{})
	open := 0
	for _, v := range versions {
		byKind[v.Modification]++
		distinct[v.Depcom] = struct{}{}
		if v.EndDatetime.Equal(temporal.FarFuture) {
			open++
		}
	}

	fmt.Printf("%d versions across %d identities (%d currently open)\n", len(versions), len(distinct), open)
	fmt.Printf("%d distinct modification kinds applied\n", len(byKind))
	return nil
}
