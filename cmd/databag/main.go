// Package main provides the entry point for the databag CLI tool.
package main

import (
	"github.com/agentstation/databag/cmd/databag/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
