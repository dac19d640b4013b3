package events

import (
	"testing"
)

type recordedCall struct {
	audience   string
	roomNumber string
	event      string
}

type recordingBroadcaster struct {
	calls []recordedCall
}

func (r *recordingBroadcaster) BroadcastToRoom(roomNumber, event string, data interface{}) {
	r.calls = append(r.calls, recordedCall{audience: "room", roomNumber: roomNumber, event: event})
}

func (r *recordingBroadcaster) BroadcastToDashboard(event string, data interface{}) {
	r.calls = append(r.calls, recordedCall{audience: "dashboard", event: event})
}

func (r *recordingBroadcaster) BroadcastToAll(event string, data interface{}) {
	r.calls = append(r.calls, recordedCall{audience: "all", event: event})
}

func audiences(calls []recordedCall) map[string]bool {
	out := make(map[string]bool)
	for _, c := range calls {
		out[c.audience] = true
	}
	return out
}

func TestDispatchRoomAndDashboard(t *testing.T) {
	rec := &recordingBroadcaster{}
	d := NewDispatcher(rec)

	d.Dispatch(Event{Name: AttendanceUpdated, RoomNumber: "202", Payload: map[string]string{"status": "present"}})

	got := audiences(rec.calls)
	if !got["room"] || !got["dashboard"] || got["all"] {
		t.Fatalf("attendance update should reach room and dashboard only, got %v", rec.calls)
	}
	for _, c := range rec.calls {
		if c.audience == "room" && c.roomNumber != "202" {
			t.Fatalf("wrong room: %q", c.roomNumber)
		}
		if c.event != AttendanceUpdated {
			t.Fatalf("wrong event name: %q", c.event)
		}
	}
}

func TestDispatchEmergencyBroadcastReachesEveryone(t *testing.T) {
	rec := &recordingBroadcaster{}
	d := NewDispatcher(rec)

	d.Dispatch(Event{Name: EmergencyBroadcast, RoomNumber: "205"})

	got := audiences(rec.calls)
	if !got["all"] || got["room"] || got["dashboard"] {
		t.Fatalf("emergency broadcast should reach all connections only, got %v", rec.calls)
	}
}

func TestDispatchEmergencyAlertIsDashboardOnly(t *testing.T) {
	rec := &recordingBroadcaster{}
	d := NewDispatcher(rec)

	d.Dispatch(Event{Name: EmergencyAlert, RoomNumber: "205"})

	got := audiences(rec.calls)
	if !got["dashboard"] || got["room"] || got["all"] {
		t.Fatalf("emergency alert should be dashboard-only, got %v", rec.calls)
	}
}

func TestDispatchSkipsRoomWithoutRoomNumber(t *testing.T) {
	rec := &recordingBroadcaster{}
	d := NewDispatcher(rec)

	d.Dispatch(Event{Name: ClassroomStatusUpdated})

	got := audiences(rec.calls)
	if got["room"] {
		t.Fatal("event without a room number must not emit to a room group")
	}
	if !got["dashboard"] {
		t.Fatal("dashboard should still receive the event")
	}
}

func TestDispatchUnknownEventStaysOffRooms(t *testing.T) {
	rec := &recordingBroadcaster{}
	d := NewDispatcher(rec)

	d.Dispatch(Event{Name: "made-up-event", RoomNumber: "004"})

	got := audiences(rec.calls)
	if got["room"] || got["all"] {
		t.Fatalf("unknown event must default to dashboard only, got %v", rec.calls)
	}
}
