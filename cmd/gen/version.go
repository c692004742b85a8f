package main

import (
	"fmt"
	"io"
)

var (
	release   = "dev" // ldflags: -X main.release=…
	buildDate = ""    // ldflags: -X main.buildDate=…
	gitHash   = ""    // ldflags: -X main.gitHash=…
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "gen %s (%s) %s\n", release, gitHash, buildDate)
}
