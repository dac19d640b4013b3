package services

import (
	"errors"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/models"

	"gorm.io/gorm"
)

type IssueService struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
}

func NewIssueService(db *gorm.DB, dispatcher *events.Dispatcher) *IssueService {
	return &IssueService{db: db, dispatcher: dispatcher}
}

func (s *IssueService) Create(category, description, roomNumber string, actor *models.User) (*models.Issue, error) {
	if !models.ValidIssueCategory(category) {
		return nil, validation("invalid issue category")
	}
	if description == "" {
		return nil, validation("description required")
	}
	if !models.ValidRoomNumber(roomNumber) {
		return nil, validation("unknown room number")
	}

	issue := models.Issue{
		Category:      category,
		Description:   description,
		RoomNumber:    roomNumber,
		ReportedByID:  actor.ID,
		VolunteerName: actor.Name,
		Status:        models.IssueStatusOpen,
		Timestamp:     time.Now(),
	}
	if err := s.db.Create(&issue).Error; err != nil {
		return nil, storage(err)
	}

	s.dispatcher.Dispatch(events.Event{
		Name:    events.NewIssue,
		Payload: map[string]interface{}{"issue": issue},
	})
	s.dispatcher.Dispatch(events.Event{
		Name:       events.IssueReported,
		RoomNumber: roomNumber,
		Payload: map[string]interface{}{
			"category":    category,
			"room_number": roomNumber,
			"timestamp":   issue.Timestamp,
		},
	})

	return &issue, nil
}

func (s *IssueService) List() ([]models.Issue, error) {
	var issues []models.Issue
	if err := s.db.Order("timestamp DESC").Find(&issues).Error; err != nil {
		return nil, storage(err)
	}
	return issues, nil
}

// UpdateStatus advances an issue; resolving stamps the resolver.
func (s *IssueService) UpdateStatus(issueID, status string, actor *models.User) (*models.Issue, error) {
	if !models.ValidIssueStatus(status) {
		return nil, validation("invalid issue status")
	}

	var issue models.Issue
	if err := s.db.First(&issue, "id = ?", issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("issue not found")
		}
		return nil, storage(err)
	}

	issue.Status = status
	if status == models.IssueStatusResolved {
		now := time.Now()
		issue.ResolvedAt = &now
		issue.ResolvedByID = actor.ID
	}
	if err := s.db.Save(&issue).Error; err != nil {
		return nil, storage(err)
	}

	return &issue, nil
}

func (s *IssueService) Delete(issueID string) error {
	var issue models.Issue
	if err := s.db.First(&issue, "id = ?", issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("issue not found")
		}
		return storage(err)
	}
	if err := s.db.Delete(&issue).Error; err != nil {
		return storage(err)
	}
	return nil
}
