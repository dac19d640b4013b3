package services

import (
	"errors"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/models"

	"gorm.io/gorm"
)

type ClassroomService struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
}

func NewClassroomService(db *gorm.DB, dispatcher *events.Dispatcher) *ClassroomService {
	return &ClassroomService{db: db, dispatcher: dispatcher}
}

// ClassroomView carries the aggregate counts derived at read time. They are
// never stored; every fetch recomputes them from the live team graph.
type ClassroomView struct {
	models.Classroom
	PresentCount int `json:"present_count"`
	TotalCount   int `json:"total_count"`
	EnteredCount int `json:"entered_count"`
	PendingCount int `json:"pending_count"`
}

func buildView(classroom models.Classroom) ClassroomView {
	view := ClassroomView{Classroom: classroom}
	for _, team := range classroom.Teams {
		for _, member := range team.Members {
			view.TotalCount++
			if member.CurrentStatus == models.MemberStatusPresent {
				view.PresentCount++
			}
			if member.GateEntry.IsEntered {
				view.EnteredCount++
			} else {
				view.PendingCount++
			}
		}
	}
	return view
}

func (s *ClassroomService) ListClassrooms() ([]ClassroomView, error) {
	var classrooms []models.Classroom
	err := s.db.
		Preload("Teams", func(db *gorm.DB) *gorm.DB { return db.Order("team_name ASC") }).
		Preload("Teams.Members", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("room_number ASC").
		Find(&classrooms).Error
	if err != nil {
		return nil, storage(err)
	}

	views := make([]ClassroomView, 0, len(classrooms))
	for _, classroom := range classrooms {
		views = append(views, buildView(classroom))
	}
	return views, nil
}

// ClassroomDetail is the single-room view: aggregates plus the volunteers
// currently operating in the room.
type ClassroomDetail struct {
	ClassroomView
	ActiveVolunteers []models.User `json:"active_volunteers"`
}

func (s *ClassroomService) GetClassroom(roomNumber string) (*ClassroomDetail, error) {
	var classroom models.Classroom
	err := s.db.
		Preload("Teams", func(db *gorm.DB) *gorm.DB { return db.Order("team_name ASC") }).
		Preload("Teams.Members", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("room_number = ?", roomNumber).
		First(&classroom).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("classroom not found")
		}
		return nil, storage(err)
	}

	var volunteers []models.User
	if err := s.db.Select("id", "username", "name", "role", "current_room").
		Where("current_room = ? AND role = ?", roomNumber, models.RoleVolunteer).
		Find(&volunteers).Error; err != nil {
		return nil, storage(err)
	}

	return &ClassroomDetail{
		ClassroomView:    buildView(classroom),
		ActiveVolunteers: volunteers,
	}, nil
}

// UpdateStatus applies a classroom status change, appends the history record
// and broadcasts. An emergency status additionally raises the dashboard-only
// alert.
func (s *ClassroomService) UpdateStatus(roomNumber, status string, actor *models.User) (*models.Classroom, error) {
	if !models.ValidClassroomStatus(status) {
		return nil, validation("invalid classroom status")
	}

	var classroom models.Classroom
	if err := s.db.Where("room_number = ?", roomNumber).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("classroom not found")
		}
		return nil, storage(err)
	}

	now := time.Now()
	classroom.CurrentStatus = status
	classroom.StatusUpdatedAt = now
	classroom.StatusUpdatedByID = actor.ID
	if err := s.db.Save(&classroom).Error; err != nil {
		return nil, storage(err)
	}

	statusLog := models.ClassroomStatusLog{
		ClassroomID:   classroom.ID,
		RoomNumber:    roomNumber,
		Status:        status,
		Timestamp:     now,
		UpdatedByID:   actor.ID,
		VolunteerName: actor.Name,
	}
	if err := s.db.Create(&statusLog).Error; err != nil {
		return nil, storage(err)
	}

	s.dispatcher.Dispatch(events.Event{
		Name:       events.ClassroomStatusUpdated,
		RoomNumber: roomNumber,
		Payload: map[string]interface{}{
			"room_number": roomNumber,
			"status":      status,
			"updated_by":  actor.Name,
			"timestamp":   now,
		},
	})

	if status == models.ClassroomStatusEmergency {
		s.dispatcher.Dispatch(events.Event{
			Name:       events.EmergencyAlert,
			RoomNumber: roomNumber,
			Payload: map[string]interface{}{
				"room_number": roomNumber,
				"type":        "emergency",
				"reported_by": actor.Name,
				"timestamp":   now,
			},
		})
	}

	return &classroom, nil
}
