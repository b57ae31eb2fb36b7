// Package main is the entry point for the postmatch CLI, which analyses
// football match event feeds and stores the results for cross-match queries.
package main

import "github.com/DataKnight1/PostMatchReport/cmd"

func main() {
	cmd.Execute()
}
