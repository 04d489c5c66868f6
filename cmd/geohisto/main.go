// geohisto rebuilds the bitemporal history of French communes from a
// seed roster and a modification log, and answers point-in-time and
// lineage queries against the result.
package main

import "os"

func main() {
	os.Exit(Execute())
}
