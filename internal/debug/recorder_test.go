package debug

import (
	"fmt"
	"testing"
	"time"
)

func TestLastEmpty(t *testing.T) {
	r := NewRecorder(4)
	if _, ok := r.Last(); ok {
		t.Fatalf("expected no capture in a fresh recorder")
	}
}

func TestLastReturnsNewest(t *testing.T) {
	r := NewRecorder(4)
	r.Record(Capture{Path: "/a", Time: time.Now()})
	r.Record(Capture{Path: "/b", Time: time.Now()})

	last, ok := r.Last()
	if !ok || last.Path != "/b" {
		t.Fatalf("expected /b, got %+v ok=%v", last, ok)
	}
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRecorder(3)
	for i := 0; i < 5; i++ {
		r.Record(Capture{Path: fmt.Sprintf("/p%d", i)})
	}

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 captures, got %d", len(list))
	}
	for i, want := range []string{"/p2", "/p3", "/p4"} {
		if list[i].Path != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].Path, want)
		}
	}
}

func TestSubscribeReceivesCaptures(t *testing.T) {
	r := NewRecorder(4)
	ch, cancel := r.Subscribe()
	defer cancel()

	r.Record(Capture{Path: "/live/player/authen"})

	select {
	case c := <-ch:
		if c.Path != "/live/player/authen" {
			t.Fatalf("got %s", c.Path)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for capture")
	}
}

func TestSlowSubscriberDoesNotBlockRecord(t *testing.T) {
	r := NewRecorder(4)
	_, cancel := r.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// more records than the subscriber buffer holds
		for i := 0; i < 100; i++ {
			r.Record(Capture{Path: "/x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a slow subscriber")
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	r := NewRecorder(4)
	ch, cancel := r.Subscribe()
	cancel()

	r.Record(Capture{Path: "/x"})

	select {
	case c, ok := <-ch:
		if ok {
			t.Fatalf("received %s after cancel", c.Path)
		}
	default:
	}
}
