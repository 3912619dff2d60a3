package framework

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testMsg struct {
	val int
}

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func testMsgs(vals ...int) []Message {
	msgs := make([]Message, len(vals))
	for n, val := range vals {
		msgs[n] = &testMsg{val: val}
	}
	return msgs
}

func msgVals(msgs []Message) []int {
	vals := make([]int, len(msgs))
	for n, msg := range msgs {
		vals[n] = msg.(*testMsg).val
	}
	return vals
}

func TestProcessMessages(t *testing.T) {
	testCases := []struct {
		name    string
		proc    func(MessageProcessingContext)
		visited []int
		remains []int
	}{
		{
			"take all",
			func(mc MessageProcessingContext) { mc.MessageTaken() },
			[]int{1, 2, 3, 4},
			[]int{},
		},
		{
			"take even",
			func(mc MessageProcessingContext) {
				if mc.CurrentMessage().(*testMsg).val%2 == 0 {
					mc.MessageTaken()
				}
			},
			[]int{1, 2, 3, 4},
			[]int{1, 3},
		},
		{
			"stop at second",
			func(mc MessageProcessingContext) {
				mc.MessageTaken()
				if mc.CurrentMessage().(*testMsg).val == 2 {
					mc.StopProcessing()
				}
			},
			[]int{1, 2},
			[]int{3, 4},
		},
		{
			"take none",
			func(MessageProcessingContext) {},
			[]int{1, 2, 3, 4},
			[]int{1, 2, 3, 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iter := &loopIteration{messages: testMsgs(1, 2, 3, 4)}
			var visited []int
			iter.ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
				visited = append(visited, mc.CurrentMessage().(*testMsg).val)
				tc.proc(mc)
			}))
			require.Equal(t, tc.visited, visited)
			require.Equal(t, tc.remains, msgVals(iter.messages))
		})
	}
}

func TestProcessMessagesAddDuringProcessing(t *testing.T) {
	iter := &loopIteration{messages: testMsgs(1, 2)}
	iter.ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
		if mc.CurrentMessage().(*testMsg).val == 1 {
			mc.MessageTaken()
			iter.AddMessages(&testMsg{val: 10})
		}
	}))
	require.Equal(t, []int{2, 10}, msgVals(iter.messages))
}

func TestLoopRunsByPriority(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Hour

	type record struct {
		level     int
		iteration uint64
		msgs      []int
	}
	recordCh := make(chan record, 16)
	recorder := func(level int) Controller {
		return ControlFunc(func(cc ControlContext) error {
			require.Equal(t, level, cc.PriorityLevel())
			r := record{level: level, iteration: cc.Iteration()}
			cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
				r.msgs = append(r.msgs, mc.CurrentMessage().(*testMsg).val)
				mc.MessageTaken()
			}))
			recordCh <- r
			return nil
		})
	}
	loop.AddController(PrLvControl, recorder(PrLvControl))
	loop.AddController(PrLvSense, recorder(PrLvSense))

	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	go func() { doneCh <- loop.Run(ctx) }()

	require.Eventually(t, func() bool {
		loop.PostMessage(&testMsg{val: 7})
		loop.TriggerNext()
		return len(recordCh) >= 2
	}, time.Second, 10*time.Millisecond)

	first, second := <-recordCh, <-recordCh
	require.Equal(t, PrLvSense, first.level)
	require.Equal(t, PrLvControl, second.level)
	require.Equal(t, first.iteration, second.iteration)
	require.NotEmpty(t, first.msgs, "sense level sees messages first")
	require.Empty(t, second.msgs)

	cancel()
	select {
	case err := <-doneCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop not stopped")
	}
}

type testRunnable struct {
	started chan LoopControl
}

func (r *testRunnable) Run(ctx context.Context) error {
	r.started <- LoopCtlFrom(ctx)
	<-ctx.Done()
	return ctx.Err()
}

func (r *testRunnable) Control(ControlContext) error { return nil }

func TestLoopStartsRunnableControllers(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Hour
	r := &testRunnable{started: make(chan LoopControl, 1)}
	loop.AddController(PrLvIdle, r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	select {
	case ctl := <-r.started:
		require.NotNil(t, ctl)
	case <-time.After(time.Second):
		t.Fatal("runnable not started")
	}
}

func TestLoopStopHooksAfterLastIteration(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Hour

	entered, release := make(chan struct{}), make(chan struct{})
	var events []string
	loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		if cc.Iteration() == 1 {
			close(entered)
			<-release
		}
		events = append(events, "iteration")
		return nil
	}))
	loop.OnStop(func() { events = append(events, "first hook") })
	loop.OnStop(func() { events = append(events, "second hook") })

	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	loop.TriggerNext()
	go func() { doneCh <- loop.Run(ctx) }()

	<-entered
	cancel()
	close(release)
	select {
	case err := <-doneCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop not stopped")
	}
	require.NotEmpty(t, events)
	require.Equal(t, []string{"second hook", "first hook"}, events[len(events)-2:])
	for _, ev := range events[:len(events)-2] {
		require.Equal(t, "iteration", ev)
	}
}
