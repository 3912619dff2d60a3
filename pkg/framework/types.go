package framework

import (
	"context"
	"time"
)

// Runnable is a long running component started along with a Loop or a Runner.
// Run must return once the context is done.
type Runnable interface {
	Run(context.Context) error
}

// Named is implemented by a Runnable to be identified in logs and errors.
type Named interface {
	Name() string
}

// Message is anything posted to the loop, typically a command
// received from a remote peer.
type Message interface {
	// NewMessage creates a zero value of the same type, used for decoding.
	NewMessage() Message
}

// Controller is invoked once per iteration at the priority level it's
// registered with.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc adapts a func to Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

// ControlContext is the view of a single iteration given to controllers.
type ControlContext interface {
	LoopControl

	// Context is done when the loop stops.
	Context() context.Context
	// Time is when the iteration started. All controllers of the
	// iteration see the same value.
	Time() time.Time
	// Iteration is the sequence number, starting from 1.
	Iteration() uint64
	// PriorityLevel is the level of the controller being invoked.
	PriorityLevel() int
	// Messages are the messages posted before the iteration started
	// and not yet taken by controllers of higher priority.
	Messages() MessageStore
}

// LoopControl lets components outside the iteration feed the loop.
type LoopControl interface {
	// PostMessage queues a message for the next iteration.
	PostMessage(Message)
	// TriggerNext starts the next iteration without waiting for the
	// interval. Multiple triggers before it runs are merged.
	TriggerNext()
}

// PriorityLevels is the number of priority levels, 0 runs first.
const PriorityLevels int = 16

// Priority levels.
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvSense reads inputs, e.g. polling sensor registers.
	PrLvSense = PrLvHigh
	// PrLvControl consumes messages and decides outputs.
	PrLvControl = PrLvNormal
	// PrLvActuate writes outputs.
	PrLvActuate = PrLvLow
	// PrLvPostProc publishes the results of the iteration.
	PrLvPostProc = PrLvIdle - 1
)

// MessageStore holds the pending messages of an iteration.
type MessageStore interface {
	// ProcessMessages passes each message to the processor in order.
	// Messages not taken stay for controllers of lower priority.
	ProcessMessages(MessageProcessor)
	// AddMessages appends messages visible to subsequent processing
	// within the same iteration.
	AddMessages(msgs ...Message)
}

// MessageProcessor handles one message at a time.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc adapts a func to MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext is passed to MessageProcessor per message.
type MessageProcessingContext interface {
	// CurrentMessage is the message being processed.
	CurrentMessage() Message
	// MessageTaken removes the message from the store.
	MessageTaken()
	// StopProcessing skips the rest of the messages, which are kept.
	StopProcessing()
}
