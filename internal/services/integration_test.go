//go:build integration

package services_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/database"
	"github.com/jugal-ahir/ByteHackage/internal/email"
	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/models"
	"github.com/jugal-ahir/ByteHackage/internal/services"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres password=postgres dbname=bytehackage_test sslmode=disable"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	database.AutoMigrate(testDB)
	database.SeedClassrooms(testDB)

	os.Exit(m.Run())
}

func resetDB(t *testing.T) {
	t.Helper()
	for _, model := range []interface{}{
		&models.Attendance{},
		&models.MemberStatusHistory{},
		&models.Member{},
		&models.Team{},
		&models.ClassroomStatusLog{},
		&models.Issue{},
		&models.EmergencyLog{},
		&models.User{},
	} {
		if err := testDB.Where("1 = 1").Delete(model).Error; err != nil {
			t.Fatalf("reset failed: %v", err)
		}
	}
}

type recordingBroadcaster struct {
	events []string
}

func (r *recordingBroadcaster) BroadcastToRoom(roomNumber, event string, data interface{}) {
	r.events = append(r.events, "room:"+event)
}
func (r *recordingBroadcaster) BroadcastToDashboard(event string, data interface{}) {
	r.events = append(r.events, "dashboard:"+event)
}
func (r *recordingBroadcaster) BroadcastToAll(event string, data interface{}) {
	r.events = append(r.events, "all:"+event)
}

type failingMailer struct{}

func (failingMailer) SendEmergency(email.EmergencyNotice) error {
	return errors.New("smtp unreachable")
}

type fixture struct {
	rec        *recordingBroadcaster
	actor      *models.User
	attendance *services.AttendanceService
	gateEntry  *services.GateEntryService
	classroom  *services.ClassroomService
	team       *services.TeamService
	emergency  *services.EmergencyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	resetDB(t)

	rec := &recordingBroadcaster{}
	dispatcher := events.NewDispatcher(rec)

	actor := &models.User{
		Username: "org1",
		Password: "x",
		Name:     "Organizer One",
		Role:     models.RoleOrganizer,
	}
	if err := testDB.Create(actor).Error; err != nil {
		t.Fatalf("create actor: %v", err)
	}

	return &fixture{
		rec:        rec,
		actor:      actor,
		attendance: services.NewAttendanceService(testDB, dispatcher),
		gateEntry:  services.NewGateEntryService(testDB, dispatcher),
		classroom:  services.NewClassroomService(testDB, dispatcher),
		team:       services.NewTeamService(testDB),
		emergency:  services.NewEmergencyService(testDB, dispatcher, failingMailer{}, []string{"ops@example.com"}),
	}
}

func (f *fixture) createTeam(t *testing.T, roomNumber, name string, memberNames []string) *models.Team {
	t.Helper()
	team, err := f.team.CreateTeam(roomNumber, name, memberNames, f.actor)
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	return team
}

func TestBlockedMemberIsFrozen(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "202", "Alpha", []string{"A", "B", "C"})

	memberB, memberC := team.Members[1], team.Members[2]
	if _, err := f.attendance.UpdateMemberStatus(memberB.ID, models.MemberStatusAbsent, "202", "", f.actor); err != nil {
		t.Fatalf("mark absent: %v", err)
	}
	// Block C directly: blocking happens during gate entry in production.
	if err := testDB.Model(&models.Member{}).Where("id = ?", memberC.ID).
		Update("current_status", models.MemberStatusBlocked).Error; err != nil {
		t.Fatalf("block member: %v", err)
	}

	views, err := f.classroom.ListClassrooms()
	if err != nil {
		t.Fatalf("list classrooms: %v", err)
	}
	found := false
	for _, view := range views {
		if view.RoomNumber != "202" {
			continue
		}
		found = true
		if view.PresentCount != 1 || view.TotalCount != 3 {
			t.Fatalf("room 202: expected present=1 total=3, got present=%d total=%d", view.PresentCount, view.TotalCount)
		}
	}
	if !found {
		t.Fatal("room 202 missing from classroom list")
	}

	_, err = f.attendance.UpdateMemberStatus(memberC.ID, models.MemberStatusPresent, "202", "", f.actor)
	if !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("expected Forbidden for blocked member, got %v", err)
	}

	var reloaded models.Member
	if err := testDB.First(&reloaded, "id = ?", memberC.ID).Error; err != nil {
		t.Fatalf("reload member: %v", err)
	}
	if reloaded.CurrentStatus != models.MemberStatusBlocked {
		t.Fatalf("blocked member status changed to %q", reloaded.CurrentStatus)
	}
}

func TestTeamGateEntryIdempotentEnteredAt(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "205", "Beta", []string{"P", "Q"})

	first, err := f.gateEntry.SetTeamEntry("205", team.ID, true, models.VerificationBonafide, f.actor)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	t0 := first.GateEntry.EnteredAt
	if t0 == nil {
		t.Fatal("expected EnteredAt stamped on first entry")
	}

	time.Sleep(10 * time.Millisecond)
	second, err := f.gateEntry.SetTeamEntry("205", team.ID, true, models.VerificationBonafide, f.actor)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if !second.GateEntry.EnteredAt.Equal(*t0) {
		t.Fatalf("repeated entry changed team EnteredAt: %v -> %v", t0, second.GateEntry.EnteredAt)
	}
	for _, m := range second.Members {
		if m.GateEntry.EnteredAt == nil || !m.GateEntry.EnteredAt.Equal(*t0) {
			t.Fatalf("repeated entry changed member EnteredAt for %s", m.Name)
		}
		if !m.GateEntry.IsEntered {
			t.Fatalf("member %s should be entered after team cascade", m.Name)
		}
	}
}

func TestMemberToggleDerivesTeamEntry(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "207", "Gamma", []string{"X", "Y"})

	_, afterFirst, err := f.gateEntry.SetMemberEntry("207", team.ID, team.Members[0].ID, true, models.VerificationIDCard, f.actor)
	if err != nil {
		t.Fatalf("first member toggle: %v", err)
	}
	if afterFirst.GateEntry.IsEntered {
		t.Fatal("team must not be entered while one member is pending")
	}

	_, afterSecond, err := f.gateEntry.SetMemberEntry("207", team.ID, team.Members[1].ID, true, models.VerificationIDCard, f.actor)
	if err != nil {
		t.Fatalf("second member toggle: %v", err)
	}
	if !afterSecond.GateEntry.IsEntered {
		t.Fatal("team must be entered once every member is entered")
	}

	_, afterExit, err := f.gateEntry.SetMemberEntry("207", team.ID, team.Members[0].ID, false, "", f.actor)
	if err != nil {
		t.Fatalf("member exit toggle: %v", err)
	}
	if afterExit.GateEntry.IsEntered {
		t.Fatal("team must drop out of entered when a member leaves")
	}
}

func TestFinalizeTeamEntryMaterializesAttendance(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "208", "Delta", []string{"M1", "M2"})

	// Everyone starts present on roster creation; reset to a clean pre-event state.
	for _, m := range team.Members {
		if err := testDB.Model(&models.Member{}).Where("id = ?", m.ID).
			Update("current_status", models.MemberStatusAbsent).Error; err != nil {
			t.Fatalf("reset status: %v", err)
		}
	}

	if _, _, err := f.gateEntry.SetMemberEntry("208", team.ID, team.Members[0].ID, true, models.VerificationBonafide, f.actor); err != nil {
		t.Fatalf("member toggle: %v", err)
	}

	finalized, err := f.gateEntry.FinalizeTeamEntry("208", team.ID, models.VerificationBonafide, f.actor)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !finalized.GateEntry.IsEntered {
		t.Fatal("finalize must mark the team entered")
	}

	statuses := map[string]string{}
	for _, m := range finalized.Members {
		statuses[m.Name] = m.CurrentStatus
	}
	if statuses["M1"] != models.MemberStatusPresent {
		t.Fatalf("checked-in member should be present, got %q", statuses["M1"])
	}
	if statuses["M2"] != models.MemberStatusAbsent {
		t.Fatalf("never-checked-in member should be absent, got %q", statuses["M2"])
	}

	var historyCount int64
	testDB.Model(&models.MemberStatusHistory{}).Count(&historyCount)

	// Finalizing again changes nothing.
	if _, err := f.gateEntry.FinalizeTeamEntry("208", team.ID, models.VerificationBonafide, f.actor); err != nil {
		t.Fatalf("repeat finalize: %v", err)
	}
	var after int64
	testDB.Model(&models.MemberStatusHistory{}).Count(&after)
	if after != historyCount {
		t.Fatalf("repeat finalize appended history: %d -> %d", historyCount, after)
	}
}

func TestBulkUpdateIsBestEffort(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "004", "Epsilon", []string{"A", "B", "C", "D", "E"})

	ghost := team.Members[4]
	if err := f.team.DeleteMember(ghost.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}

	var updates []services.BulkMemberUpdate
	for _, m := range team.Members {
		updates = append(updates, services.BulkMemberUpdate{MemberID: m.ID, Status: models.MemberStatusLunch})
	}

	results, err := f.attendance.BulkUpdate("004", []services.BulkTeamUpdate{{TeamID: team.ID, Members: updates}}, f.actor)
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}

	applied, skipped := 0, 0
	for _, r := range results {
		if r.Applied {
			applied++
		} else {
			skipped++
			if r.MemberID == ghost.ID && r.Reason != "member not found" {
				t.Fatalf("missing member should be skipped with a reason, got %q", r.Reason)
			}
		}
	}
	if applied != 4 || skipped != 1 {
		t.Fatalf("expected 4 applied and 1 skipped, got %d/%d", applied, skipped)
	}
}

func TestEmergencyEmailFailureIsNonFatal(t *testing.T) {
	f := newFixture(t)

	result, err := f.emergency.Create("medical", "202", "Alpha", "member collapsed", f.actor)
	if err != nil {
		t.Fatalf("create emergency: %v", err)
	}
	if result.EmailSent || result.EmailError == "" {
		t.Fatalf("expected a reported email failure, got sent=%v err=%q", result.EmailSent, result.EmailError)
	}

	var count int64
	testDB.Model(&models.EmergencyLog{}).Count(&count)
	if count != 1 {
		t.Fatalf("emergency log must persist despite email failure, count=%d", count)
	}

	var sawAlert, sawSiren bool
	for _, e := range f.rec.events {
		if e == "dashboard:emergency-alert" {
			sawAlert = true
		}
		if e == "all:emergency-broadcast" {
			sawSiren = true
		}
	}
	if !sawAlert || !sawSiren {
		t.Fatalf("expected alert and siren broadcasts, got %v", f.rec.events)
	}
}

func TestAggregatesAreDerivedLive(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "203", "Zeta", []string{"A", "B"})

	before, err := f.classroom.GetClassroom("203")
	if err != nil {
		t.Fatalf("get classroom: %v", err)
	}
	if before.PresentCount != 2 || before.TotalCount != 2 {
		t.Fatalf("expected 2/2 present, got %d/%d", before.PresentCount, before.TotalCount)
	}

	if _, err := f.attendance.UpdateMemberStatus(team.Members[0].ID, models.MemberStatusLeft, "203", "", f.actor); err != nil {
		t.Fatalf("update status: %v", err)
	}

	after, err := f.classroom.GetClassroom("203")
	if err != nil {
		t.Fatalf("get classroom: %v", err)
	}
	if after.PresentCount != 1 || after.TotalCount != 2 {
		t.Fatalf("aggregate not recomputed: got %d/%d", after.PresentCount, after.TotalCount)
	}
}
