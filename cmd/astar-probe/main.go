// astar-probe checks the A-Star on the I2C bus from the bench.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/astar.go/pkg/l0/astar"
	"github.com/robotalks/astar.go/pkg/romi"
)

const spinTime = 500 * time.Millisecond

var (
	write   bool
	motors  int
	notes   string
	rawSize int
)

func init() {
	romi.SetupFlags()
	flag.BoolVar(&write, "write", write, "Block-write 8 zero bytes at register 0 first.")
	flag.IntVar(&motors, "motors", motors, "Spin both motors at the speed briefly, 0 to skip.")
	flag.StringVar(&notes, "notes", notes, "Play notes.")
	flag.IntVar(&rawSize, "raw", 8, "Raw read size from register 0, 8 or 32.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := romi.MustNewConfig()
	if err := checkRawSize(rawSize); err != nil {
		glog.Exit(err)
	}
	bus, err := conf.OpenBus()
	if err != nil {
		glog.Exit(err)
	}
	engine := astar.NewEngine(bus)
	engine.Addr = conf.Address
	a := astar.NewWithEngine(engine)
	defer a.Close()

	if err := probe(a, conf); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	fmt.Printf("errors: %d\n", a.CumulativeErrors())
	if a.CumulativeErrors() > 0 {
		glog.Flush()
		os.Exit(1)
	}
}

func checkRawSize(size int) error {
	if size != 8 && size != 32 {
		return fmt.Errorf("-raw must be 8 or 32, got %d", size)
	}
	return nil
}

func clampSpeed(speed, limit int) int16 {
	switch {
	case speed > limit:
		return int16(limit)
	case speed < -limit:
		return int16(-limit)
	}
	return int16(speed)
}

func probe(a *astar.AStar, conf *romi.Config) error {
	if write {
		if err := a.ProbeWrite8(); err != nil {
			return err
		}
	}
	var raw []byte
	var err error
	switch rawSize {
	case 8:
		raw, err = a.ProbeRead8()
	case 32:
		raw, err = a.ProbeRead32()
	default:
		err = checkRawSize(rawSize)
	}
	if err != nil {
		return err
	}
	fmt.Printf("raw: % x\n", raw)

	s, err := a.Snapshot()
	fmt.Printf("buttons: %v\nbattery: %dmV\nanalog: %v\nencoders: %v\n",
		s.Buttons, s.BatteryMillivolts, s.Analog, s.Encoders)
	if err != nil {
		return err
	}

	if notes != "" {
		if err := a.PlayNotes(notes); err != nil {
			return err
		}
	}
	if motors != 0 {
		speed := clampSpeed(motors, conf.MaxSpeed)
		if err := a.Motors(speed, speed); err != nil {
			return err
		}
		time.Sleep(spinTime)
		if err := a.Motors(0, 0); err != nil {
			return err
		}
	}
	return nil
}
