package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TeamName    string    `gorm:"size:100;not null" json:"team_name"`
	ClassroomID string    `gorm:"size:36;not null;index" json:"classroom_id"`
	Members     []Member  `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	GateEntry   GateEntry `gorm:"embedded;embeddedPrefix:gate_" json:"gate_entry"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
