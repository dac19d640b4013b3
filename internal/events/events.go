package events

import "time"

// Event names carried over the realtime channel (server to client).
const (
	ClassroomStatusUpdated = "classroom-status-updated"
	AttendanceUpdated      = "attendance-updated"
	AttendanceBulkUpdated  = "attendance-bulk-updated"
	GateEntryUpdated       = "gate-entry-updated"
	IssueReported          = "issue-reported"
	NewIssue               = "new-issue"
	VolunteerRoomUpdated   = "volunteer-room-updated"
	EmergencyAlert         = "emergency-alert"
	EmergencyBroadcast     = "emergency-broadcast"
)

// Scope selects which subscriber groups receive an event.
type Scope int

const (
	ScopeRoom Scope = 1 << iota
	ScopeDashboard
	ScopeAll
)

// routes is the single fan-out rule: which audiences each event reaches.
// Dashboards always see room-scoped deltas too, since they need cross-room
// visibility. The emergency alert is a separate dashboard-only channel so
// dashboard listeners already handling the status delta do not double-handle
// it; the emergency broadcast is the site-wide siren.
var routes = map[string]Scope{
	ClassroomStatusUpdated: ScopeRoom | ScopeDashboard,
	AttendanceUpdated:      ScopeRoom | ScopeDashboard,
	AttendanceBulkUpdated:  ScopeRoom | ScopeDashboard,
	GateEntryUpdated:       ScopeRoom | ScopeDashboard,
	IssueReported:          ScopeRoom,
	NewIssue:               ScopeDashboard,
	VolunteerRoomUpdated:   ScopeDashboard,
	EmergencyAlert:         ScopeDashboard,
	EmergencyBroadcast:     ScopeAll,
}

// Event is one domain change produced by a mutation after its persist commits.
type Event struct {
	Name       string      `json:"name"`
	RoomNumber string      `json:"room_number,omitempty"`
	Payload    interface{} `json:"payload"`
	Timestamp  time.Time   `json:"timestamp"`
}

// RouteFor returns the audiences for an event name. Unknown events reach the
// dashboard only, so a missing table entry never leaks room-wide.
func RouteFor(name string) Scope {
	if s, ok := routes[name]; ok {
		return s
	}
	return ScopeDashboard
}
