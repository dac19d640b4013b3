package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyLog struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Type               string    `gorm:"size:20;not null" json:"type"`
	RoomNumber         string    `gorm:"size:10;not null" json:"room_number"`
	TeamName           string    `gorm:"size:100" json:"team_name,omitempty"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	ReportedByID       string    `gorm:"size:36;not null" json:"reported_by_id"`
	VolunteerName      string    `gorm:"size:100;not null" json:"volunteer_name"`
	NotifiedOrganizers []string  `gorm:"serializer:json" json:"notified_organizers"`
	Timestamp          time.Time `json:"timestamp"`
	Acknowledged       bool      `gorm:"not null;default:false" json:"acknowledged"`
	AcknowledgedByID   string    `gorm:"size:36" json:"acknowledged_by_id,omitempty"`
}

var emergencyTypes = map[string]bool{
	"team-leaving": true,
	"team-missing": true,
	"emergency":    true,
	"medical":      true,
}

func ValidEmergencyType(t string) bool {
	return emergencyTypes[t]
}

func (e *EmergencyLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
