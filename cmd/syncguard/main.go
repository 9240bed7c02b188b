// Package main provides the entry point for the syncguard CLI tool.
package main

import (
	"github.com/readtrack/syncguard/cmd/syncguard/cmd"
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
