package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// scriptedEvents replays queued events, then reports a finalized screen.
type scriptedEvents struct {
	queue []tcell.Event
}

func (s *scriptedEvents) PollEvent() tcell.Event {
	if len(s.queue) == 0 {
		return nil
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev
}

func TestPollEventsStopsWhenScreenCloses(t *testing.T) {
	src := &scriptedEvents{queue: []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
	}}
	events := make(chan tcell.Event, 4)

	done := make(chan struct{})
	go func() {
		pollEvents(src, events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pollEvents did not return after the screen closed")
	}

	var got int
	for range events {
		got++
	}
	if got != 2 {
		t.Errorf("expected 2 forwarded events, got %d", got)
	}
}
