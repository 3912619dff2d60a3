// Package msgs provides L1 protocol support and the generic message schemas.
package msgs

// L1 protocol is communicated between L1 controller and L2 tools,
// and uses hardware-agnostic primitives.
//
// Every packet is a protobuf encoded Typed envelope:
//
//     type_id:  uint32, field 1
//     sequence: uint32, field 2, non-zero for commands and their replies
//     message:  bytes,  field 3, protobuf encoded payload
//
// type_id is composed of
//
//     bit 31:     kind, 0 for command, 1 for event
//     bit 30-16:  group
//     bit 15:     reply flag
//     bit 14-0:   id within the group
//
// Producer: L1 controller (events, replies), L2 (commands)
// Consumer: L2 (events, replies), L1 controller (commands)
