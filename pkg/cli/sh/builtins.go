package sh

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1"
)

// MustBeConnected wraps a command requiring a Session.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(errNotConnected)
			return
		}
		fn(c)
	}
}

// Do sends a command in the current Session and waits for the reply.
func Do(c *ishell.Context, msg fx.Message) (fx.Message, error) {
	session := ShellFrom(c).Session
	if session == nil {
		return nil, errNotConnected
	}
	return session.Do(msg)
}

// DoCommand sends a command and prints the reply or the error.
func DoCommand(c *ishell.Context, msg fx.Message) error {
	reply, err := Do(c, msg)
	if err != nil {
		c.Err(err)
		return err
	}
	PrintMsg(c, reply)
	return nil
}

// PrintMsg prints a message in the output format of the Shell.
func PrintMsg(c *ishell.Context, msg fx.Message) {
	c.Println(FormatMsg(msg, ShellFrom(c).OutputJSON))
}

var errNoController = errors.New("no controller discovered")

var (
	// DiscoverCmd lists controllers.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "[TYPE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var filter func(l1.ControllerInfo) bool
			if len(c.Args) > 0 {
				filter = func(info l1.ControllerInfo) bool { return info.Ref.Type == c.Args[0] }
			}
			infoList, err := s.DiscoverControllers(filter)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if infoList == nil {
					infoList = []l1.ControllerInfo{}
				}
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No controllers found")
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a controller, discovering it if not fully
	// specified.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[TYPE/ID | TYPE ID | TYPE]",
		Func: func(c *ishell.Context) {
			ref, err := selectRef(ShellFrom(c), c.Args)
			if err == nil {
				err = ShellFrom(c).Connect(ref)
			}
			if err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd closes the current Session.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// WatchCmd toggles printing events of the controller.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[on|off]",
		Func: MustBeConnected(func(c *ishell.Context) {
			session := ShellFrom(c).Session
			en := !session.Watching()
			if len(c.Args) > 0 {
				switch c.Args[0] {
				case "on":
					en = true
				case "off":
					en = false
				default:
					c.Err(fmt.Errorf("expect on or off"))
					return
				}
			}
			session.Watch(en)
		}),
	}
)

func selectRef(s *Shell, args []string) (l1.ControllerRef, error) {
	switch {
	case len(args) >= 2:
		return l1.ControllerRef{Type: args[0], ID: args[1]}, nil
	case len(args) == 1 && strings.Contains(args[0], "/"):
		return l1.ParseControllerRef(args[0])
	case len(args) == 0 && s.Config.Direct():
		return s.Config.Ref, nil
	}
	var filter func(l1.ControllerInfo) bool
	if len(args) == 1 {
		filter = func(info l1.ControllerInfo) bool { return info.Ref.Type == args[0] }
	}
	info, err := s.SelectController(filter)
	if err != nil {
		return l1.ControllerRef{}, err
	}
	if info == nil {
		return l1.ControllerRef{}, errNoController
	}
	return info.Ref, nil
}
