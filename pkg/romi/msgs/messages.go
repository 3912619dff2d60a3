// Package msgs defines the L1 messages of the romi controller.
package msgs

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1/msgs"
)

// LedsSet sets the red, yellow and green LEDs, nonzero is on.
type LedsSet struct {
	Red    uint32 `protobuf:"varint,1,opt,name=red,proto3" json:"red,omitempty"`
	Yellow uint32 `protobuf:"varint,2,opt,name=yellow,proto3" json:"yellow,omitempty"`
	Green  uint32 `protobuf:"varint,3,opt,name=green,proto3" json:"green,omitempty"`
}

// NewMessage implements Message.
func (m *LedsSet) NewMessage() fx.Message { return &LedsSet{} }

// TypeID implements SerializableMessage.
func (m *LedsSet) TypeID() uint32 { return LedsSetTypeID }

// Serializable implements SerializableMessage.
func (m *LedsSet) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *LedsSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *LedsSet) Reset() { *m = LedsSet{} }

// String implements proto.Message.
func (m *LedsSet) String() string { return proto.CompactTextString(m) }

// MotorsSet sets the left and right motor speeds.
type MotorsSet struct {
	Left  int32 `protobuf:"varint,1,opt,name=left,proto3" json:"left,omitempty"`
	Right int32 `protobuf:"varint,2,opt,name=right,proto3" json:"right,omitempty"`
}

// NewMessage implements Message.
func (m *MotorsSet) NewMessage() fx.Message { return &MotorsSet{} }

// TypeID implements SerializableMessage.
func (m *MotorsSet) TypeID() uint32 { return MotorsSetTypeID }

// Serializable implements SerializableMessage.
func (m *MotorsSet) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *MotorsSet) ProtoMessage() {}

// Reset implements proto.Message.
func (m *MotorsSet) Reset() { *m = MotorsSet{} }

// String implements proto.Message.
func (m *MotorsSet) String() string { return proto.CompactTextString(m) }

// NotesPlay plays notes on the buzzer.
type NotesPlay struct {
	Notes string `protobuf:"bytes,1,opt,name=notes,proto3" json:"notes,omitempty"`
}

// NewMessage implements Message.
func (m *NotesPlay) NewMessage() fx.Message { return &NotesPlay{} }

// TypeID implements SerializableMessage.
func (m *NotesPlay) TypeID() uint32 { return NotesPlayTypeID }

// Serializable implements SerializableMessage.
func (m *NotesPlay) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *NotesPlay) ProtoMessage() {}

// Reset implements proto.Message.
func (m *NotesPlay) Reset() { *m = NotesPlay{} }

// String implements proto.Message.
func (m *NotesPlay) String() string { return proto.CompactTextString(m) }

// SensorsQuery reads all sensors.
type SensorsQuery struct {
}

// NewMessage implements Message.
func (m *SensorsQuery) NewMessage() fx.Message { return &SensorsQuery{} }

// TypeID implements SerializableMessage.
func (m *SensorsQuery) TypeID() uint32 { return SensorsQueryTypeID }

// Serializable implements SerializableMessage.
func (m *SensorsQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *SensorsQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SensorsQuery) Reset() { *m = SensorsQuery{} }

// String implements proto.Message.
func (m *SensorsQuery) String() string { return proto.CompactTextString(m) }

// Sensors is the sensor readings, also sent as an event when changed.
// Failed indicates some of the readings are sentinels.
type Sensors struct {
	Buttons           []bool   `protobuf:"varint,1,rep,packed,name=buttons,proto3" json:"buttons,omitempty"`
	BatteryMillivolts uint32   `protobuf:"varint,2,opt,name=battery_millivolts,json=batteryMillivolts,proto3" json:"battery_millivolts,omitempty"`
	Analog            []uint32 `protobuf:"varint,3,rep,packed,name=analog,proto3" json:"analog,omitempty"`
	Encoders          []int32  `protobuf:"varint,4,rep,packed,name=encoders,proto3" json:"encoders,omitempty"`
	Failed            bool     `protobuf:"varint,5,opt,name=failed,proto3" json:"failed,omitempty"`
}

// NewMessage implements Message.
func (m *Sensors) NewMessage() fx.Message { return &Sensors{} }

// TypeID implements SerializableMessage.
func (m *Sensors) TypeID() uint32 { return SensorsEventTypeID }

// Serializable implements SerializableMessage.
func (m *Sensors) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *Sensors) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Sensors) Reset() { *m = Sensors{} }

// String implements proto.Message.
func (m *Sensors) String() string { return proto.CompactTextString(m) }

// SensorsReply is the reply of SensorsQuery.
type SensorsReply struct {
	Sensors *Sensors `protobuf:"bytes,1,opt,name=sensors,proto3" json:"sensors,omitempty"`
}

// NewMessage implements Message.
func (m *SensorsReply) NewMessage() fx.Message { return &SensorsReply{} }

// TypeID implements SerializableMessage.
func (m *SensorsReply) TypeID() uint32 { return SensorsReplyTypeID }

// Serializable implements SerializableMessage.
func (m *SensorsReply) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *SensorsReply) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SensorsReply) Reset() { *m = SensorsReply{} }

// String implements proto.Message.
func (m *SensorsReply) String() string { return proto.CompactTextString(m) }

// BusStatsQuery queries the bus error statistics.
type BusStatsQuery struct {
}

// NewMessage implements Message.
func (m *BusStatsQuery) NewMessage() fx.Message { return &BusStatsQuery{} }

// TypeID implements SerializableMessage.
func (m *BusStatsQuery) TypeID() uint32 { return BusStatsQueryTypeID }

// Serializable implements SerializableMessage.
func (m *BusStatsQuery) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *BusStatsQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *BusStatsQuery) Reset() { *m = BusStatsQuery{} }

// String implements proto.Message.
func (m *BusStatsQuery) String() string { return proto.CompactTextString(m) }

// BusStats is the reply of BusStatsQuery.
type BusStats struct {
	CumulativeErrors    uint64 `protobuf:"varint,1,opt,name=cumulative_errors,json=cumulativeErrors,proto3" json:"cumulative_errors,omitempty"`
	LastOperationFailed bool   `protobuf:"varint,2,opt,name=last_operation_failed,json=lastOperationFailed,proto3" json:"last_operation_failed,omitempty"`
}

// NewMessage implements Message.
func (m *BusStats) NewMessage() fx.Message { return &BusStats{} }

// TypeID implements SerializableMessage.
func (m *BusStats) TypeID() uint32 { return BusStatsTypeID }

// Serializable implements SerializableMessage.
func (m *BusStats) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *BusStats) ProtoMessage() {}

// Reset implements proto.Message.
func (m *BusStats) Reset() { *m = BusStats{} }

// String implements proto.Message.
func (m *BusStats) String() string { return proto.CompactTextString(m) }

// ProbeRead reads raw bytes from register 0, Size is 8 or 32.
type ProbeRead struct {
	Size uint32 `protobuf:"varint,1,opt,name=size,proto3" json:"size,omitempty"`
}

// NewMessage implements Message.
func (m *ProbeRead) NewMessage() fx.Message { return &ProbeRead{} }

// TypeID implements SerializableMessage.
func (m *ProbeRead) TypeID() uint32 { return ProbeReadTypeID }

// Serializable implements SerializableMessage.
func (m *ProbeRead) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ProbeRead) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ProbeRead) Reset() { *m = ProbeRead{} }

// String implements proto.Message.
func (m *ProbeRead) String() string { return proto.CompactTextString(m) }

// ProbeData is the reply of ProbeRead.
type ProbeData struct {
	Data []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
}

// NewMessage implements Message.
func (m *ProbeData) NewMessage() fx.Message { return &ProbeData{} }

// TypeID implements SerializableMessage.
func (m *ProbeData) TypeID() uint32 { return ProbeDataTypeID }

// Serializable implements SerializableMessage.
func (m *ProbeData) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *ProbeData) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ProbeData) Reset() { *m = ProbeData{} }

// String implements proto.Message.
func (m *ProbeData) String() string { return proto.CompactTextString(m) }

// GroupRomi is the message group of romi controllers.
const GroupRomi = msgs.GroupRomi

// TypeIDs
const (
	LedsSetTypeID       uint32 = GroupRomi | 0x0001
	MotorsSetTypeID     uint32 = GroupRomi | 0x0002
	NotesPlayTypeID     uint32 = GroupRomi | 0x0003
	SensorsQueryTypeID  uint32 = GroupRomi | 0x0010
	SensorsReplyTypeID  uint32 = GroupRomi | msgs.TypeIDMaskReply | 0x0010
	SensorsEventTypeID  uint32 = GroupRomi | msgs.TypeIDKindEvent | 0x0010
	BusStatsQueryTypeID uint32 = GroupRomi | 0x0011
	BusStatsTypeID      uint32 = GroupRomi | msgs.TypeIDMaskReply | 0x0011
	ProbeReadTypeID     uint32 = GroupRomi | 0x0020
	ProbeDataTypeID     uint32 = GroupRomi | msgs.TypeIDMaskReply | 0x0020
)

func init() {
	msgs.MessageTypes[LedsSetTypeID] = (*LedsSet)(nil)
	msgs.MessageTypes[MotorsSetTypeID] = (*MotorsSet)(nil)
	msgs.MessageTypes[NotesPlayTypeID] = (*NotesPlay)(nil)
	msgs.MessageTypes[SensorsQueryTypeID] = (*SensorsQuery)(nil)
	msgs.MessageTypes[SensorsEventTypeID] = (*Sensors)(nil)
	msgs.MessageTypes[SensorsReplyTypeID] = (*SensorsReply)(nil)
	msgs.MessageTypes[BusStatsQueryTypeID] = (*BusStatsQuery)(nil)
	msgs.MessageTypes[BusStatsTypeID] = (*BusStats)(nil)
	msgs.MessageTypes[ProbeReadTypeID] = (*ProbeRead)(nil)
	msgs.MessageTypes[ProbeDataTypeID] = (*ProbeData)(nil)
}
