package services

import (
	"errors"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/models"

	"gorm.io/gorm"
)

type AttendanceService struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
}

func NewAttendanceService(db *gorm.DB, dispatcher *events.Dispatcher) *AttendanceService {
	return &AttendanceService{db: db, dispatcher: dispatcher}
}

// UpdateMemberStatus applies one attendance change: member status, history
// entry, attendance record, broadcast. Blocked members are frozen against
// attendance edits; only gate-entry operations may move them.
func (s *AttendanceService) UpdateMemberStatus(memberID, status, roomNumber, teamName string, actor *models.User) (*models.Member, error) {
	if !models.ValidMemberStatus(status) {
		return nil, validation("invalid member status")
	}

	var member models.Member
	if err := s.db.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("member not found")
		}
		return nil, storage(err)
	}

	if member.CurrentStatus == models.MemberStatusBlocked {
		return nil, forbidden("cannot update status of a blocked member")
	}

	var team models.Team
	if err := s.db.First(&team, "id = ?", member.TeamID).Error; err != nil {
		return nil, storage(err)
	}
	var classroom models.Classroom
	if err := s.db.First(&classroom, "id = ?", team.ClassroomID).Error; err != nil {
		return nil, storage(err)
	}

	if roomNumber == "" {
		roomNumber = classroom.RoomNumber
	}
	if teamName == "" {
		teamName = team.TeamName
	}

	now := time.Now()
	if err := s.applyStatus(&member, status, roomNumber, teamName, now, actor); err != nil {
		return nil, err
	}
	if err := s.recordAttendance(&member, &team, &classroom, status, roomNumber, teamName, now, actor); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(events.Event{
		Name:       events.AttendanceUpdated,
		RoomNumber: roomNumber,
		Payload: map[string]interface{}{
			"room_number": roomNumber,
			"member_id":   member.ID,
			"member_name": member.Name,
			"team_name":   teamName,
			"status":      status,
			"timestamp":   now,
		},
	})

	return &member, nil
}

// BulkTeamUpdate carries the per-team slice of a quick-attendance submission.
type BulkTeamUpdate struct {
	TeamID  string             `json:"team_id" binding:"required"`
	Members []BulkMemberUpdate `json:"members" binding:"required"`
}

type BulkMemberUpdate struct {
	MemberID string `json:"member_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// BulkResult reports the outcome per member, so callers can tell a fully
// applied batch from a partial one.
type BulkResult struct {
	MemberID string `json:"member_id"`
	Status   string `json:"status,omitempty"`
	Applied  bool   `json:"applied"`
	Reason   string `json:"reason,omitempty"`
}

// BulkUpdate applies a quick-attendance batch best-effort: teams and members
// deleted since the client fetched are skipped, blocked members are skipped,
// everything else is applied. There is no cross-member transaction; this is
// deliberate policy, not an oversight.
func (s *AttendanceService) BulkUpdate(roomNumber string, updates []BulkTeamUpdate, actor *models.User) ([]BulkResult, error) {
	if len(updates) == 0 {
		return nil, validation("no updates provided")
	}

	now := time.Now()
	var results []BulkResult
	var applied []BulkResult

	for _, update := range updates {
		var team models.Team
		if err := s.db.Preload("Members").First(&team, "id = ?", update.TeamID).Error; err != nil {
			for _, mu := range update.Members {
				results = append(results, BulkResult{MemberID: mu.MemberID, Reason: "team not found"})
			}
			continue
		}

		var classroom models.Classroom
		if err := s.db.First(&classroom, "id = ?", team.ClassroomID).Error; err != nil {
			return nil, storage(err)
		}
		room := roomNumber
		if room == "" {
			room = classroom.RoomNumber
		}

		for _, mu := range update.Members {
			if !models.ValidMemberStatus(mu.Status) {
				results = append(results, BulkResult{MemberID: mu.MemberID, Reason: "invalid status"})
				continue
			}

			var member models.Member
			if err := s.db.First(&member, "id = ?", mu.MemberID).Error; err != nil {
				results = append(results, BulkResult{MemberID: mu.MemberID, Reason: "member not found"})
				continue
			}
			if member.CurrentStatus == models.MemberStatusBlocked {
				results = append(results, BulkResult{MemberID: mu.MemberID, Reason: "member is blocked"})
				continue
			}

			if err := s.applyStatus(&member, mu.Status, room, team.TeamName, now, actor); err != nil {
				return results, err
			}
			if err := s.recordAttendance(&member, &team, &classroom, mu.Status, room, team.TeamName, now, actor); err != nil {
				return results, err
			}

			result := BulkResult{MemberID: member.ID, Status: mu.Status, Applied: true}
			results = append(results, result)
			applied = append(applied, result)
		}
	}

	if len(applied) > 0 {
		s.dispatcher.Dispatch(events.Event{
			Name:       events.AttendanceBulkUpdated,
			RoomNumber: roomNumber,
			Payload: map[string]interface{}{
				"room_number": roomNumber,
				"updates":     applied,
				"timestamp":   now,
			},
		})
	}

	return results, nil
}

func (s *AttendanceService) applyStatus(member *models.Member, status, roomNumber, teamName string, now time.Time, actor *models.User) error {
	member.CurrentStatus = status
	if err := s.db.Save(member).Error; err != nil {
		return storage(err)
	}

	history := models.MemberStatusHistory{
		MemberID:    member.ID,
		Status:      status,
		Timestamp:   now,
		UpdatedByID: actor.ID,
		RoomNumber:  roomNumber,
		TeamName:    teamName,
	}
	if err := s.db.Create(&history).Error; err != nil {
		return storage(err)
	}
	return nil
}

func (s *AttendanceService) recordAttendance(member *models.Member, team *models.Team, classroom *models.Classroom, status, roomNumber, teamName string, now time.Time, actor *models.User) error {
	attendance := models.Attendance{
		MemberID:      member.ID,
		TeamID:        team.ID,
		ClassroomID:   classroom.ID,
		Status:        status,
		Timestamp:     now,
		UpdatedByID:   actor.ID,
		RoomNumber:    roomNumber,
		TeamName:      teamName,
		MemberName:    member.Name,
		VolunteerName: actor.Name,
	}
	if err := s.db.Create(&attendance).Error; err != nil {
		return storage(err)
	}
	return nil
}
