package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance is an immutable audit snapshot of one status change, with names
// denormalized for display.
type Attendance struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	MemberID      string    `gorm:"size:36;not null;index" json:"member_id"`
	TeamID        string    `gorm:"size:36;not null" json:"team_id"`
	ClassroomID   string    `gorm:"size:36;not null" json:"classroom_id"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UpdatedByID   string    `gorm:"size:36;not null" json:"updated_by_id"`
	RoomNumber    string    `gorm:"size:10;not null" json:"room_number"`
	TeamName      string    `gorm:"size:100;not null" json:"team_name"`
	MemberName    string    `gorm:"size:100;not null" json:"member_name"`
	VolunteerName string    `gorm:"size:100;not null" json:"volunteer_name"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
