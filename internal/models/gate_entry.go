package models

import "time"

// GateEntry is the check-in sub-record shared by teams and members.
type GateEntry struct {
	IsEntered        bool       `gorm:"not null;default:false" json:"is_entered"`
	EnteredAt        *time.Time `json:"entered_at"`
	VerificationType string     `gorm:"size:20;not null;default:'None'" json:"verification_type"`
	MarkedByID       string     `gorm:"size:36" json:"marked_by_id,omitempty"`
	MarkedByName     string     `gorm:"size:100" json:"marked_by_name,omitempty"`
}

const (
	VerificationBonafide = "Bonafide"
	VerificationIDCard   = "IDCard"
	VerificationNone     = "None"
)

func ValidVerificationType(vt string) bool {
	return vt == VerificationBonafide || vt == VerificationIDCard || vt == VerificationNone
}

// Apply returns the gate entry after a toggle. EnteredAt is stamped exactly
// once per entry: repeated entered-writes keep the original timestamp, leaving
// clears it.
func (g GateEntry) Apply(isEntered bool, verificationType string, now time.Time) GateEntry {
	next := g
	next.IsEntered = isEntered
	if verificationType != "" {
		next.VerificationType = verificationType
	} else if next.VerificationType == "" {
		next.VerificationType = VerificationNone
	}
	if isEntered {
		if !g.IsEntered || g.EnteredAt == nil {
			next.EnteredAt = &now
		}
	} else {
		next.EnteredAt = nil
	}
	return next
}

// AllEntered is the AND rule deriving team-level entry from member-level state.
func AllEntered(members []Member) bool {
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		if !m.GateEntry.IsEntered {
			return false
		}
	}
	return true
}
