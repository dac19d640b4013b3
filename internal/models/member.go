package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID            string                `gorm:"primaryKey;size:36" json:"id"`
	Name          string                `gorm:"size:100;not null" json:"name"`
	TeamID        string                `gorm:"size:36;not null;index" json:"team_id"`
	CurrentStatus string                `gorm:"size:20;not null;default:'present'" json:"current_status"`
	GateEntry     GateEntry             `gorm:"embedded;embeddedPrefix:gate_" json:"gate_entry"`
	StatusHistory []MemberStatusHistory `gorm:"foreignKey:MemberID" json:"status_history,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

const (
	MemberStatusPresent  = "present"
	MemberStatusAbsent   = "absent"
	MemberStatusLunch    = "lunch"
	MemberStatusSleeping = "sleeping"
	MemberStatusLeft     = "left"
	MemberStatusBlocked  = "blocked"
)

var memberStatuses = map[string]bool{
	MemberStatusPresent:  true,
	MemberStatusAbsent:   true,
	MemberStatusLunch:    true,
	MemberStatusSleeping: true,
	MemberStatusLeft:     true,
	MemberStatusBlocked:  true,
}

func ValidMemberStatus(status string) bool {
	return memberStatuses[status]
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MemberStatusHistory is an append-only log entry of one status change.
type MemberStatusHistory struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	MemberID    string    `gorm:"size:36;not null;index" json:"member_id"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	UpdatedByID string    `gorm:"size:36" json:"updated_by_id,omitempty"`
	RoomNumber  string    `gorm:"size:10" json:"room_number"`
	TeamName    string    `gorm:"size:100" json:"team_name"`
}

func (h *MemberStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
