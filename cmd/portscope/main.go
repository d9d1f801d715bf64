//go:build linux

package main

import (
	"github.com/homelab-infra/portscope/internal/app"
)

var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// go build -ldflags "-X main.version=v1.1.1 -X main.commit=$(git rev-parse --short HEAD) -X 'main.buildDate=$(date +%Y-%m-%d)'" -o portscope ./cmd/portscope

func main() {
	app.SetVersionBuildCommitString(version, commit, buildDate)
	app.Execute()
}
