package importer

import "testing"

func collectEvents(t *testing.T, sub *Subscriber, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				t.Fatalf("channel closed after %d events, want %d", i, n)
			}
			events = append(events, ev)
		default:
			t.Fatalf("no buffered event at position %d, want %d total", i, n)
		}
	}
	return events
}

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker()
	sub1 := b.Subscribe("t1")
	sub2 := b.Subscribe("t1")
	other := b.Subscribe("t2")

	b.Publish("t1", newEntryUpdate(0, StatusSuccess, ""))
	b.Publish("t1", newEntryUpdate(1, StatusFailed, "boom"))
	b.Publish("t1", newTaskComplete([]Status{StatusSuccess, StatusFailed}))

	for name, sub := range map[string]*Subscriber{"sub1": sub1, "sub2": sub2} {
		events := collectEvents(t, sub, 3)
		if events[0].EventType() != EventEntryUpdate {
			t.Errorf("%s event 0 = %s, want %s", name, events[0].EventType(), EventEntryUpdate)
		}
		upd, ok := events[1].(EntryUpdate)
		if !ok {
			t.Fatalf("%s event 1 type = %T, want EntryUpdate", name, events[1])
		}
		if upd.EntryIndex != 1 || upd.Status != StatusFailed || upd.ErrorMessage != "boom" {
			t.Errorf("%s event 1 = %+v", name, upd)
		}
		done, ok := events[2].(TaskComplete)
		if !ok {
			t.Fatalf("%s event 2 type = %T, want TaskComplete", name, events[2])
		}
		if len(done.FinalStatus) != 2 || done.FinalStatus[1] != StatusFailed {
			t.Errorf("%s final status = %v", name, done.FinalStatus)
		}
	}

	select {
	case ev := <-other.Events():
		t.Errorf("subscriber of another task received %v", ev)
	default:
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe("t1")
	if got := b.SubscriberCount("t1"); got != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", got)
	}

	b.Unsubscribe("t1", sub)
	if got := b.SubscriberCount("t1"); got != 0 {
		t.Errorf("SubscriberCount() after unsubscribe = %d, want 0", got)
	}

	// Channel is closed so an SSE loop terminates.
	if _, ok := <-sub.Events(); ok {
		t.Error("channel still open after unsubscribe")
	}

	// Publishing after the last subscriber left must not panic.
	b.Publish("t1", newTaskComplete([]Status{StatusSuccess}))
	// Double unsubscribe is a no-op.
	b.Unsubscribe("t1", sub)
}

func TestBroker_UnsubscribeMidStream(t *testing.T) {
	b := NewBroker()
	stay := b.Subscribe("t1")
	leave := b.Subscribe("t1")

	b.Publish("t1", newEntryUpdate(0, StatusSuccess, ""))
	b.Unsubscribe("t1", leave)
	b.Publish("t1", newEntryUpdate(1, StatusSuccess, ""))
	b.Publish("t1", newTaskComplete([]Status{StatusSuccess, StatusSuccess}))

	events := collectEvents(t, stay, 3)
	if events[2].EventType() != EventTaskComplete {
		t.Errorf("last event = %s, want %s", events[2].EventType(), EventTaskComplete)
	}
}

func TestBroker_PublishUnknownTask(t *testing.T) {
	b := NewBroker()
	// Must be a silent no-op.
	b.Publish("missing", newTaskComplete([]Status{StatusSuccess}))
}

func TestBroker_SlowSubscriberDropsEvents(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe("t1")

	for i := 0; i < subscriberBuffer+10; i++ {
		b.Publish("t1", newEntryUpdate(i, StatusSuccess, ""))
	}

	// Buffer holds exactly subscriberBuffer events; the overflow is dropped
	// instead of blocking the publisher.
	events := collectEvents(t, sub, subscriberBuffer)
	last := events[len(events)-1].(EntryUpdate)
	if last.EntryIndex != subscriberBuffer-1 {
		t.Errorf("last buffered index = %d, want %d", last.EntryIndex, subscriberBuffer-1)
	}
	select {
	case ev := <-sub.Events():
		t.Errorf("unexpected extra event %v", ev)
	default:
	}
}
