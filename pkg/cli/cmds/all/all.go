// Package all registers all shell commands.
package all

import (
	_ "github.com/robotalks/astar.go/pkg/cli/cmds/astar"
)
