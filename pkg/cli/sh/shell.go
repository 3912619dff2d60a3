// Package sh is the interactive shell of robocli.
//
// The builtin commands find and connect controllers. Controller specific
// commands are registered by packages under cli/cmds using AddCmds and
// run against the current Session.
package sh

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1"
	env "github.com/robotalks/astar.go/pkg/l1/env/connector"
)

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	evalOnly   bool
	outputJSON bool

	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
		&WatchCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds registers commands. It must be called from init.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// Shell wraps an ishell.Shell with the current Session.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell   *ishell.Shell
	Config  *env.Config
	Session *Session
}

// New creates a Shell with all registered commands.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Shell:       ishell.New(),
		Config:      conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets the Shell in a command.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// DiscoverControllers lists controllers accepted by filter, nil accepts all.
func (s *Shell) DiscoverControllers(filter func(l1.ControllerInfo) bool) ([]l1.ControllerInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, err
	}
	infoList, err := connector.Discover(context.Background())
	if err != nil || filter == nil {
		return infoList, err
	}
	selected := infoList[:0]
	for _, info := range infoList {
		if filter(info) {
			selected = append(selected, info)
		}
	}
	return selected, nil
}

// SelectController discovers controllers and asks for a choice if more
// than one are found. It returns nil if none is found.
func (s *Shell) SelectController(filter func(l1.ControllerInfo) bool) (*l1.ControllerInfo, error) {
	infoList, err := s.DiscoverControllers(filter)
	if err != nil || len(infoList) == 0 {
		return nil, err
	}
	if len(infoList) == 1 {
		return &infoList[0], nil
	}
	if !s.Interactive {
		return nil, fmt.Errorf("%d controllers discovered, specify one", len(infoList))
	}
	items := make([]string, len(infoList))
	for n, info := range infoList {
		items[n] = FormatInfo(info)
	}
	index := s.Shell.MultiChoice(items, "Which one to connect?")
	if index < 0 {
		return nil, nil
	}
	return &infoList[index], nil
}

// Connect replaces the current Session with one connected to ref.
func (s *Shell) Connect(ref l1.ControllerRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	session, err := OpenSession(connector, ref, s.printEvent)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Session = session
	name := ref.String()
	if !ref.IsValid() {
		name = s.Config.RegistryURL
	}
	s.Shell.SetPrompt(name + " > ")
	return nil
}

// Disconnect closes the current Session if any.
func (s *Shell) Disconnect() {
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

func (s *Shell) printEvent(msg fx.Message) {
	s.Shell.Println(FormatMsg(msg, s.OutputJSON))
}

// Run connects the configured controller if AutoConnect and either
// runs args as a single command or starts the interactive shell.
func (s *Shell) Run(args ...string) {
	ref := s.Config.Ref
	if s.AutoConnect && (ref.IsValid() || s.Config.Direct()) {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", ref)
		}
		if err := s.Connect(ref); err != nil {
			log.Fatalln(err)
		}
		defer s.Disconnect()
	}

	switch {
	case len(args) > 0:
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
	case s.Interactive:
		s.Shell.Run()
	default:
		log.Fatalln("command expected")
	}
}

// Main parses flags and runs the shell. Flags must be set up before.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
