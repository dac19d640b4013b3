package services

import (
	"errors"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/models"

	"gorm.io/gorm"
)

type GateEntryService struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
}

func NewGateEntryService(db *gorm.DB, dispatcher *events.Dispatcher) *GateEntryService {
	return &GateEntryService{db: db, dispatcher: dispatcher}
}

// SetTeamEntry toggles the whole team and cascades unconditionally to every
// member. Each record keeps its own EnteredAt across repeated entered-writes.
func (s *GateEntryService) SetTeamEntry(roomNumber, teamID string, isEntered bool, verificationType string, actor *models.User) (*models.Team, error) {
	if verificationType != "" && !models.ValidVerificationType(verificationType) {
		return nil, validation("invalid verification type")
	}

	team, err := s.loadTeam(teamID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	team.GateEntry = team.GateEntry.Apply(isEntered, verificationType, now)
	team.GateEntry.MarkedByID = actor.ID
	team.GateEntry.MarkedByName = actor.Name

	for i := range team.Members {
		member := &team.Members[i]
		member.GateEntry = member.GateEntry.Apply(isEntered, verificationType, now)
		if err := s.db.Save(member).Error; err != nil {
			return nil, storage(err)
		}
	}

	if err := s.db.Save(team).Error; err != nil {
		return nil, storage(err)
	}

	s.dispatcher.Dispatch(events.Event{
		Name:       events.GateEntryUpdated,
		RoomNumber: roomNumber,
		Payload:    gateEntrySnapshot(roomNumber, team, nil),
	})

	return team, nil
}

// SetMemberEntry toggles one member, then re-derives team entry as the AND
// over all members. A team-level change caused by the recompute is persisted
// and carried in the same broadcast.
func (s *GateEntryService) SetMemberEntry(roomNumber, teamID, memberID string, isEntered bool, verificationType string, actor *models.User) (*models.Member, *models.Team, error) {
	if verificationType != "" && !models.ValidVerificationType(verificationType) {
		return nil, nil, validation("invalid verification type")
	}

	var member models.Member
	if err := s.db.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFound("member not found")
		}
		return nil, nil, storage(err)
	}
	if member.TeamID != teamID {
		return nil, nil, notFound("member not found in team")
	}

	now := time.Now()
	member.GateEntry = member.GateEntry.Apply(isEntered, verificationType, now)
	if err := s.db.Save(&member).Error; err != nil {
		return nil, nil, storage(err)
	}

	team, err := s.loadTeam(teamID)
	if err != nil {
		return nil, nil, err
	}

	allEntered := models.AllEntered(team.Members)
	if allEntered != team.GateEntry.IsEntered {
		team.GateEntry = team.GateEntry.Apply(allEntered, "", now)
		team.GateEntry.MarkedByID = actor.ID
		team.GateEntry.MarkedByName = actor.Name
		if err := s.db.Save(team).Error; err != nil {
			return nil, nil, storage(err)
		}
	}

	s.dispatcher.Dispatch(events.Event{
		Name:       events.GateEntryUpdated,
		RoomNumber: roomNumber,
		Payload:    gateEntrySnapshot(roomNumber, team, &member),
	})

	return &member, team, nil
}

// FinalizeTeamEntry commits the check-in: the team is marked entered and every
// member's attendance is materialized from their gate state, present if they
// passed the gate, absent otherwise. Members already in the right status are
// left untouched, so repeating the call changes nothing.
func (s *GateEntryService) FinalizeTeamEntry(roomNumber, teamID, verificationType string, actor *models.User) (*models.Team, error) {
	if verificationType != "" && !models.ValidVerificationType(verificationType) {
		return nil, validation("invalid verification type")
	}

	team, err := s.loadTeam(teamID)
	if err != nil {
		return nil, err
	}
	var classroom models.Classroom
	if err := s.db.First(&classroom, "id = ?", team.ClassroomID).Error; err != nil {
		return nil, storage(err)
	}
	if roomNumber == "" {
		roomNumber = classroom.RoomNumber
	}

	now := time.Now()
	team.GateEntry = team.GateEntry.Apply(true, verificationType, now)
	team.GateEntry.MarkedByID = actor.ID
	team.GateEntry.MarkedByName = actor.Name
	if err := s.db.Save(team).Error; err != nil {
		return nil, storage(err)
	}

	for i := range team.Members {
		member := &team.Members[i]
		status := models.MemberStatusAbsent
		if member.GateEntry.IsEntered {
			status = models.MemberStatusPresent
		}
		if member.CurrentStatus == status {
			continue
		}

		member.CurrentStatus = status
		if err := s.db.Save(member).Error; err != nil {
			return nil, storage(err)
		}

		history := models.MemberStatusHistory{
			MemberID:    member.ID,
			Status:      status,
			Timestamp:   now,
			UpdatedByID: actor.ID,
			RoomNumber:  roomNumber,
			TeamName:    team.TeamName,
		}
		if err := s.db.Create(&history).Error; err != nil {
			return nil, storage(err)
		}

		attendance := models.Attendance{
			MemberID:      member.ID,
			TeamID:        team.ID,
			ClassroomID:   classroom.ID,
			Status:        status,
			Timestamp:     now,
			UpdatedByID:   actor.ID,
			RoomNumber:    roomNumber,
			TeamName:      team.TeamName,
			MemberName:    member.Name,
			VolunteerName: actor.Name,
		}
		if err := s.db.Create(&attendance).Error; err != nil {
			return nil, storage(err)
		}
	}

	s.dispatcher.Dispatch(events.Event{
		Name:       events.GateEntryUpdated,
		RoomNumber: roomNumber,
		Payload:    gateEntrySnapshot(roomNumber, team, nil),
	})

	return team, nil
}

func (s *GateEntryService) loadTeam(teamID string) (*models.Team, error) {
	var team models.Team
	err := s.db.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&team, "id = ?", teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("team not found")
		}
		return nil, storage(err)
	}
	return &team, nil
}

type memberGateState struct {
	MemberID  string           `json:"member_id"`
	GateEntry models.GateEntry `json:"gate_entry"`
}

func gateEntrySnapshot(roomNumber string, team *models.Team, changed *models.Member) map[string]interface{} {
	members := make([]memberGateState, 0, len(team.Members))
	for _, m := range team.Members {
		if changed != nil && m.ID == changed.ID {
			m.GateEntry = changed.GateEntry
		}
		members = append(members, memberGateState{MemberID: m.ID, GateEntry: m.GateEntry})
	}

	snapshot := map[string]interface{}{
		"room_number": roomNumber,
		"team_id":     team.ID,
		"gate_entry":  team.GateEntry,
		"members":     members,
	}
	if changed != nil {
		snapshot["member_id"] = changed.ID
		snapshot["member_gate_entry"] = changed.GateEntry
	}
	return snapshot
}
