// Package env provides the common environment of L1 controllers and
// L2 tools.
package env

import (
	"github.com/denisbrodbeck/machineid"
)

// MachineID retrieves the unique ID identifying the machine.
// The ID is hashed with the application name so the raw machine ID
// is never published.
func MachineID(app string) string {
	id, err := machineid.ProtectedID(app)
	if err != nil {
		return ""
	}
	return id[:16]
}
