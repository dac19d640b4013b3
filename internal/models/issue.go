package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Issue struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Category      string     `gorm:"size:20;not null" json:"category"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	RoomNumber    string     `gorm:"size:10;not null" json:"room_number"`
	ReportedByID  string     `gorm:"size:36;not null" json:"reported_by_id"`
	VolunteerName string     `gorm:"size:100;not null" json:"volunteer_name"`
	Status        string     `gorm:"size:20;not null;default:'open'" json:"status"`
	Timestamp     time.Time  `json:"timestamp"`
	ResolvedAt    *time.Time `json:"resolved_at"`
	ResolvedByID  string     `gorm:"size:36" json:"resolved_by_id,omitempty"`
}

const (
	IssueStatusOpen       = "open"
	IssueStatusInProgress = "in-progress"
	IssueStatusResolved   = "resolved"
)

var issueCategories = map[string]bool{
	"medical":    true,
	"technical":  true,
	"power":      true,
	"food":       true,
	"security":   true,
	"discipline": true,
	"equipment":  true,
}

func ValidIssueCategory(category string) bool {
	return issueCategories[category]
}

func ValidIssueStatus(status string) bool {
	return status == IssueStatusOpen || status == IssueStatusInProgress || status == IssueStatusResolved
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
