package services

import (
	"errors"
	"strings"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/models"

	"gorm.io/gorm"
)

// TeamService covers the team read view and the organizer-only roster CRUD.
type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// TeamView adds per-team attendance counts, derived on every read.
type TeamView struct {
	models.Team
	PresentCount int `json:"present_count"`
	TotalCount   int `json:"total_count"`
}

func (s *TeamService) ListByClassroom(roomNumber string) ([]TeamView, error) {
	var classroom models.Classroom
	if err := s.db.Where("room_number = ?", roomNumber).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("classroom not found")
		}
		return nil, storage(err)
	}

	var teams []models.Team
	err := s.db.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("classroom_id = ?", classroom.ID).
		Order("team_name ASC").
		Find(&teams).Error
	if err != nil {
		return nil, storage(err)
	}

	views := make([]TeamView, 0, len(teams))
	for _, team := range teams {
		view := TeamView{Team: team, TotalCount: len(team.Members)}
		for _, member := range team.Members {
			if member.CurrentStatus == models.MemberStatusPresent {
				view.PresentCount++
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// CreateTeam creates a team with its initial roster; every member starts
// present with a seeded history entry.
func (s *TeamService) CreateTeam(roomNumber, teamName string, memberNames []string, actor *models.User) (*models.Team, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" || len(memberNames) == 0 {
		return nil, validation("team name and at least one member required")
	}

	var classroom models.Classroom
	if err := s.db.Where("room_number = ?", roomNumber).First(&classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("classroom not found")
		}
		return nil, storage(err)
	}

	team := models.Team{
		TeamName:    teamName,
		ClassroomID: classroom.ID,
	}
	if err := s.db.Create(&team).Error; err != nil {
		return nil, storage(err)
	}

	now := time.Now()
	for _, name := range memberNames {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		member := models.Member{
			Name:          name,
			TeamID:        team.ID,
			CurrentStatus: models.MemberStatusPresent,
		}
		if err := s.db.Create(&member).Error; err != nil {
			return nil, storage(err)
		}

		history := models.MemberStatusHistory{
			MemberID:    member.ID,
			Status:      models.MemberStatusPresent,
			Timestamp:   now,
			UpdatedByID: actor.ID,
			RoomNumber:  roomNumber,
			TeamName:    teamName,
		}
		if err := s.db.Create(&history).Error; err != nil {
			return nil, storage(err)
		}
	}

	var created models.Team
	if err := s.db.Preload("Members").First(&created, "id = ?", team.ID).Error; err != nil {
		return nil, storage(err)
	}
	return &created, nil
}

// DeleteTeam removes a team and cascades to its members and their history;
// no orphaned members may remain.
func (s *TeamService) DeleteTeam(teamID string) error {
	var team models.Team
	if err := s.db.Preload("Members").First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("team not found")
		}
		return storage(err)
	}

	for _, member := range team.Members {
		if err := s.db.Where("member_id = ?", member.ID).Delete(&models.MemberStatusHistory{}).Error; err != nil {
			return storage(err)
		}
	}
	if err := s.db.Where("team_id = ?", team.ID).Delete(&models.Member{}).Error; err != nil {
		return storage(err)
	}
	if err := s.db.Delete(&team).Error; err != nil {
		return storage(err)
	}
	return nil
}

func (s *TeamService) AddMember(teamID, name string, actor *models.User) (*models.Member, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, validation("member name required")
	}

	var team models.Team
	if err := s.db.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("team not found")
		}
		return nil, storage(err)
	}
	var classroom models.Classroom
	if err := s.db.First(&classroom, "id = ?", team.ClassroomID).Error; err != nil {
		return nil, storage(err)
	}

	member := models.Member{
		Name:          name,
		TeamID:        team.ID,
		CurrentStatus: models.MemberStatusPresent,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, storage(err)
	}

	history := models.MemberStatusHistory{
		MemberID:    member.ID,
		Status:      models.MemberStatusPresent,
		Timestamp:   time.Now(),
		UpdatedByID: actor.ID,
		RoomNumber:  classroom.RoomNumber,
		TeamName:    team.TeamName,
	}
	if err := s.db.Create(&history).Error; err != nil {
		return nil, storage(err)
	}

	return &member, nil
}

func (s *TeamService) DeleteMember(memberID string) error {
	var member models.Member
	if err := s.db.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("member not found")
		}
		return storage(err)
	}

	if err := s.db.Where("member_id = ?", member.ID).Delete(&models.MemberStatusHistory{}).Error; err != nil {
		return storage(err)
	}
	if err := s.db.Delete(&member).Error; err != nil {
		return storage(err)
	}
	return nil
}
