package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Classroom struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	RoomNumber        string    `gorm:"size:10;not null;uniqueIndex" json:"room_number"`
	CurrentStatus     string    `gorm:"size:20;not null;default:'active'" json:"current_status"`
	BandColor         BandColor `gorm:"embedded;embeddedPrefix:band_" json:"band_color"`
	StatusUpdatedAt   time.Time `json:"status_updated_at"`
	StatusUpdatedByID string    `gorm:"size:36" json:"status_updated_by_id,omitempty"`
	Teams             []Team    `gorm:"foreignKey:ClassroomID" json:"teams,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type BandColor struct {
	Name string `gorm:"size:20" json:"name"`
	Hex  string `gorm:"size:10" json:"hex"`
	Bg   string `gorm:"size:10" json:"bg"`
}

const (
	ClassroomStatusActive    = "active"
	ClassroomStatusLunch     = "lunch"
	ClassroomStatusNight     = "night"
	ClassroomStatusEmergency = "emergency"
	ClassroomStatusJury      = "jury"
	ClassroomStatusEmpty     = "empty"
)

// RoomNumbers is the fixed set of rooms, known at deploy time.
var RoomNumbers = []string{"004", "005", "202", "203", "205", "207", "208"}

var classroomStatuses = map[string]bool{
	ClassroomStatusActive:    true,
	ClassroomStatusLunch:     true,
	ClassroomStatusNight:     true,
	ClassroomStatusEmergency: true,
	ClassroomStatusJury:      true,
	ClassroomStatusEmpty:     true,
}

func ValidClassroomStatus(status string) bool {
	return classroomStatuses[status]
}

func ValidRoomNumber(roomNumber string) bool {
	for _, r := range RoomNumbers {
		if r == roomNumber {
			return true
		}
	}
	return false
}

func (c *Classroom) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ClassroomStatusLog struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	ClassroomID   string    `gorm:"size:36;not null;index" json:"classroom_id"`
	RoomNumber    string    `gorm:"size:10;not null" json:"room_number"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UpdatedByID   string    `gorm:"size:36;not null" json:"updated_by_id"`
	VolunteerName string    `gorm:"size:100;not null" json:"volunteer_name"`
}

func (l *ClassroomStatusLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
