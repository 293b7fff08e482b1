// Package main provides the entry point for the modetab CLI tool.
package main

import "modetab/cmd/modetab/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
