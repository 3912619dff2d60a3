// astard serves the A-Star of a Romi as an L1 controller over MQTT
// and/or TCP.
package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1"
	env "github.com/robotalks/astar.go/pkg/l1/env/controller"
	"github.com/robotalks/astar.go/pkg/romi"
)

func init() {
	env.SetControllerType(romi.ControllerType, l1.ControllerMeta{Description: "Romi 32U4 A-Star"})
	env.SetupFlags()
	romi.SetupFlags()
}

func main() {
	flag.Parse()

	conf := romi.MustNewConfig()
	e := env.NewConfig().MustNewEnv()
	ctl, err := conf.NewController(e.Registrar)
	if err != nil {
		glog.Exit(err)
	}
	glog.Infof("serving %s", e.Config.Info.Ref)
	loop := framework.NewLoop().Add(e, ctl)
	loop.Interval = conf.Interval
	loop.RunOrFail()
}
