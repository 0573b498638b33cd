package main

import (
	"github.com/ksyq12/ood-portal-generator/internal/cli"
)

// version is set by goreleaser via ldflags
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
