package astar

// Register describes one endpoint of the firmware register file.
type Register struct {
	Name    string
	Address byte
	Layout  Layout
	// Sentinel is returned by reads when the transaction fails.
	// It is nil for write-only registers.
	Sentinel []interface{}
}

// Size returns the encoded size of the register.
func (r *Register) Size() int {
	return r.Layout.Size()
}

// Readable indicates the register is read by the controller.
func (r *Register) Readable() bool {
	return r.Sentinel != nil
}

func (r *Register) sentinel() []interface{} {
	values := make([]interface{}, len(r.Sentinel))
	copy(values, r.Sentinel)
	return values
}

// NotesTag is the leading byte of a notes payload which tells the
// firmware to start playing.
const NotesTag uint8 = 1

// NotesLen is the maximum length of a notes string.
const NotesLen = 15

// Register catalog. Offsets and layouts must match the firmware.
var (
	RegLeds = &Register{
		Name:    "leds",
		Address: 0,
		Layout:  Layout{U8, U8, U8},
	}
	RegButtons = &Register{
		Name:     "buttons",
		Address:  3,
		Layout:   Layout{Bool, Bool, Bool},
		Sentinel: []interface{}{false, false, false},
	}
	RegMotors = &Register{
		Name:    "motors",
		Address: 6,
		Layout:  Layout{I16, I16},
	}
	RegBattery = &Register{
		Name:     "battery",
		Address:  10,
		Layout:   Layout{U16},
		Sentinel: []interface{}{uint16(0)},
	}
	RegAnalog = &Register{
		Name:    "analog",
		Address: 12,
		Layout:  Repeat(U16, 6),
		Sentinel: []interface{}{
			uint16(0), uint16(0), uint16(0),
			uint16(0), uint16(0), uint16(0),
		},
	}
	RegNotes = &Register{
		Name:    "notes",
		Address: 24,
		Layout:  Layout{U8, Bytes(NotesLen)},
	}
	RegEncoders = &Register{
		Name:     "encoders",
		Address:  39,
		Layout:   Layout{I16, I16},
		Sentinel: []interface{}{int16(0), int16(0)},
	}
)

// Registers lists all registers in address order.
var Registers = []*Register{
	RegLeds,
	RegButtons,
	RegMotors,
	RegBattery,
	RegAnalog,
	RegNotes,
	RegEncoders,
}

// RegisterByName finds a register in the catalog.
func RegisterByName(name string) *Register {
	for _, r := range Registers {
		if r.Name == name {
			return r
		}
	}
	return nil
}
