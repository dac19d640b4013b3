package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Username           string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password           string    `gorm:"size:100;not null" json:"-"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	Role               string    `gorm:"size:20;not null" json:"role"`
	AssignedClassrooms []string  `gorm:"serializer:json" json:"assigned_classrooms"`
	CurrentRoom        *string   `gorm:"size:10" json:"current_room"`
	CreatedAt          time.Time `json:"created_at"`
}

const (
	RoleVolunteer   = "volunteer"
	RoleCoordinator = "coordinator"
	RoleOrganizer   = "organizer"
)

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsCoordinator reports whether the user has dashboard-level access.
func (u *User) IsCoordinator() bool {
	return u.Role == RoleCoordinator || u.Role == RoleOrganizer
}
