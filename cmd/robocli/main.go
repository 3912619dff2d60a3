// robocli is the shell for L1 controllers, e.g.
//
//	robocli -robot-reg tcp://romi.local:7788 astar.sensors
//	robocli -robot-reg mqtt://broker:1883/robo/ connect romi/abc
package main

import (
	"github.com/robotalks/astar.go/pkg/cli/sh"
	env "github.com/robotalks/astar.go/pkg/l1/env/connector"

	_ "github.com/robotalks/astar.go/pkg/cli/cmds/all"
)

func main() {
	env.SetupFlags()
	sh.Main()
}
