// Package main is the entry point for the shotcharts CLI tool, which bins
// basketball shot data into a court grid and compares it against league
// averages.
package main

import "github.com/pable/go-shotcharts/cmd"

func main() {
	cmd.Execute()
}
