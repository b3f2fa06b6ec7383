// Package main provides the entry point for the refmap CLI tool.
package main

import "github.com/Hamza203508/refmap/cmd/refmap/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
