// Package main is the entry point for the nflmetrics CLI tool, which ingests
// nflverse play-by-play data and computes team and player EPA metrics.
package main

import "github.com/pable/go-nfl-metrics/cmd"

func main() {
	cmd.Execute()
}
