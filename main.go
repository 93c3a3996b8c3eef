// Package main is the entry point for the anicat application.
package main

import (
	"github.com/anicat-cli/anicat/cmd"
	"github.com/anicat-cli/anicat/config"
	"github.com/anicat-cli/anicat/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
