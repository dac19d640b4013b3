package services

import (
	"errors"
	"log"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/email"
	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/metrics"
	"github.com/jugal-ahir/ByteHackage/internal/models"

	"gorm.io/gorm"
)

type EmergencyService struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
	mailer     email.Mailer
	contacts   []string
}

func NewEmergencyService(db *gorm.DB, dispatcher *events.Dispatcher, mailer email.Mailer, contacts []string) *EmergencyService {
	return &EmergencyService{db: db, dispatcher: dispatcher, mailer: mailer, contacts: contacts}
}

// CreateResult reports the log plus the email outcome. A failed email never
// rolls back the write or suppresses the broadcasts.
type CreateResult struct {
	Log        *models.EmergencyLog
	EmailSent  bool
	EmailError string
}

func (s *EmergencyService) Create(emergencyType, roomNumber, teamName, description string, actor *models.User) (*CreateResult, error) {
	if !models.ValidEmergencyType(emergencyType) {
		return nil, validation("invalid emergency type")
	}
	if description == "" {
		return nil, validation("description required")
	}
	if !models.ValidRoomNumber(roomNumber) {
		return nil, validation("unknown room number")
	}

	now := time.Now()
	emergencyLog := models.EmergencyLog{
		Type:               emergencyType,
		RoomNumber:         roomNumber,
		TeamName:           teamName,
		Description:        description,
		ReportedByID:       actor.ID,
		VolunteerName:      actor.Name,
		NotifiedOrganizers: s.contacts,
		Timestamp:          now,
	}
	if err := s.db.Create(&emergencyLog).Error; err != nil {
		return nil, storage(err)
	}

	s.dispatcher.Dispatch(events.Event{
		Name:       events.EmergencyAlert,
		RoomNumber: roomNumber,
		Payload: map[string]interface{}{
			"log_id":      emergencyLog.ID,
			"type":        emergencyType,
			"room_number": roomNumber,
			"team_name":   teamName,
			"description": description,
			"reported_by": actor.Name,
			"timestamp":   now,
		},
	})
	s.dispatcher.Dispatch(events.Event{
		Name:       events.EmergencyBroadcast,
		RoomNumber: roomNumber,
		Payload: map[string]interface{}{
			"type":        emergencyType,
			"room_number": roomNumber,
			"team_name":   teamName,
			"reported_by": actor.Name,
			"timestamp":   now,
		},
	})

	result := &CreateResult{Log: &emergencyLog}
	err := s.mailer.SendEmergency(email.EmergencyNotice{
		Type:          emergencyType,
		RoomNumber:    roomNumber,
		TeamName:      teamName,
		Description:   description,
		VolunteerName: actor.Name,
		Contacts:      s.contacts,
	})
	if err != nil {
		log.Printf("emergency email failed: %v", err)
		metrics.EmailsSent.WithLabelValues("error").Inc()
		result.EmailError = err.Error()
	} else {
		metrics.EmailsSent.WithLabelValues("sent").Inc()
		result.EmailSent = true
	}

	return result, nil
}

func (s *EmergencyService) List() ([]models.EmergencyLog, error) {
	var logs []models.EmergencyLog
	if err := s.db.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, storage(err)
	}
	return logs, nil
}

func (s *EmergencyService) Acknowledge(logID string, actor *models.User) (*models.EmergencyLog, error) {
	var emergencyLog models.EmergencyLog
	if err := s.db.First(&emergencyLog, "id = ?", logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("emergency log not found")
		}
		return nil, storage(err)
	}

	emergencyLog.Acknowledged = true
	emergencyLog.AcknowledgedByID = actor.ID
	if err := s.db.Save(&emergencyLog).Error; err != nil {
		return nil, storage(err)
	}
	return &emergencyLog, nil
}

func (s *EmergencyService) Delete(logID string) error {
	var emergencyLog models.EmergencyLog
	if err := s.db.First(&emergencyLog, "id = ?", logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("emergency log not found")
		}
		return storage(err)
	}
	if err := s.db.Delete(&emergencyLog).Error; err != nil {
		return storage(err)
	}
	return nil
}
