// Package astar provides shell commands for romi controllers.
package astar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/astar.go/pkg/cli/sh"
	"github.com/robotalks/astar.go/pkg/romi/msgs"
)

var (
	// LedsCmd exposes LedsSet command.
	LedsCmd = ishell.Cmd{
		Name:    "astar.leds",
		Aliases: []string{"leds"},
		Help:    "RED YELLOW GREEN (0 off, 1 on)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			vals, err := parseInts(c.Args, []string{"RED", "YELLOW", "GREEN"}, 0, 0xff)
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msgs.LedsSet{Red: uint32(vals[0]), Yellow: uint32(vals[1]), Green: uint32(vals[2])})
		}),
	}

	// MotorsCmd exposes MotorsSet command.
	MotorsCmd = ishell.Cmd{
		Name:    "astar.motors",
		Aliases: []string{"motors", "m"},
		Help:    "LEFT RIGHT (speed -300..300)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			vals, err := parseInts(c.Args, []string{"LEFT", "RIGHT"}, -0x8000, 0x7fff)
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msgs.MotorsSet{Left: int32(vals[0]), Right: int32(vals[1])})
		}),
	}

	// StopCmd stops the motors.
	StopCmd = ishell.Cmd{
		Name:    "astar.stop",
		Aliases: []string{"stop", "s"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.MotorsSet{})
		}),
	}

	// NotesCmd exposes NotesPlay command.
	NotesCmd = ishell.Cmd{
		Name:    "astar.notes",
		Aliases: []string{"play"},
		Help:    "NOTES (e.g. l16ceg>c, at most 14 characters)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("NOTES required"))
				return
			}
			sh.DoCommand(c, &msgs.NotesPlay{Notes: strings.Join(c.Args, "")})
		}),
	}

	// SensorsCmd exposes SensorsQuery command.
	SensorsCmd = ishell.Cmd{
		Name:    "astar.sensors",
		Aliases: []string{"sensors"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.SensorsQuery{})
		}),
	}

	// StatsCmd exposes BusStatsQuery command.
	StatsCmd = ishell.Cmd{
		Name:    "astar.stats",
		Aliases: []string{"stats"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.BusStatsQuery{})
		}),
	}

	// ProbeCmd exposes ProbeRead command.
	ProbeCmd = ishell.Cmd{
		Name:    "astar.probe",
		Aliases: []string{"probe"},
		Help:    "[8|32]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			size := uint32(8)
			if len(c.Args) > 0 {
				val, err := strconv.ParseUint(c.Args[0], 10, 32)
				if err != nil {
					c.Err(fmt.Errorf("invalid SIZE: %w", err))
					return
				}
				size = uint32(val)
			}
			sh.DoCommand(c, &msgs.ProbeRead{Size: size})
		}),
	}
)

func parseInts(args []string, names []string, lo, hi int64) ([]int64, error) {
	if len(args) < len(names) {
		return nil, fmt.Errorf("%s required", strings.Join(names, " "))
	}
	vals := make([]int64, len(names))
	for n, name := range names {
		val, err := strconv.ParseInt(args[n], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		if val < lo || val > hi {
			return nil, fmt.Errorf("%s out of range [%d, %d]", name, lo, hi)
		}
		vals[n] = val
	}
	return vals, nil
}

func init() {
	sh.AddCmds(
		&LedsCmd,
		&MotorsCmd,
		&StopCmd,
		&NotesCmd,
		&SensorsCmd,
		&StatsCmd,
		&ProbeCmd,
	)
}
