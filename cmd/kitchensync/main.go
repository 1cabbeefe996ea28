package main

import (
	"os"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newSyncCmd()
	root.Version = version + " (" + commit + ")"

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
