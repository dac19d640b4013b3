package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/jugal-ahir/ByteHackage/internal/config"
	"github.com/jugal-ahir/ByteHackage/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.ClassroomStatusLog{},
		&models.Team{},
		&models.Member{},
		&models.MemberStatusHistory{},
		&models.Attendance{},
		&models.Issue{},
		&models.EmergencyLog{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}

// Room numbers and band colors are fixed at deploy time.
var roomColors = map[string]models.BandColor{
	"004": {Name: "Green", Hex: "#22c55e", Bg: "#dcfce7"},
	"005": {Name: "Orange", Hex: "#f97316", Bg: "#ffedd5"},
	"202": {Name: "Silver", Hex: "#9ca3af", Bg: "#f3f4f6"},
	"203": {Name: "Golden", Hex: "#eab308", Bg: "#fef9c3"},
	"205": {Name: "Yellow", Hex: "#facc15", Bg: "#fef08a"},
	"207": {Name: "Blue", Hex: "#3b82f6", Bg: "#dbeafe"},
	"208": {Name: "Red", Hex: "#ef4444", Bg: "#fee2e2"},
}

// SeedClassrooms creates any missing classroom from the fixed room set and
// backfills its band color.
func SeedClassrooms(db *gorm.DB) {
	for _, roomNumber := range models.RoomNumbers {
		var classroom models.Classroom
		err := db.Where("room_number = ?", roomNumber).First(&classroom).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			classroom = models.Classroom{
				RoomNumber:    roomNumber,
				CurrentStatus: models.ClassroomStatusActive,
				BandColor:     roomColors[roomNumber],
			}
			if err := db.Create(&classroom).Error; err != nil {
				log.Fatalf("failed to seed classroom %s: %v", roomNumber, err)
			}
			continue
		}
		if err != nil {
			log.Fatalf("failed to read classroom %s: %v", roomNumber, err)
		}
		if classroom.BandColor.Name == "" {
			classroom.BandColor = roomColors[roomNumber]
			db.Save(&classroom)
		}
	}
	log.Println("classrooms seeded")
}
