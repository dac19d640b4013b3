package services

import (
	"errors"
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/events"
	"github.com/jugal-ahir/ByteHackage/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db         *gorm.DB
	jwtSecret  []byte
	dispatcher *events.Dispatcher
}

func NewAuthService(db *gorm.DB, jwtSecret string, dispatcher *events.Dispatcher) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), dispatcher: dispatcher}
}

func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	if username == "" || password == "" {
		return "", nil, validation("please provide username and password")
	}

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", nil, forbidden("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, forbidden("invalid credentials")
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user not found")
		}
		return nil, storage(err)
	}
	return &user, nil
}

// SelectRoom sets the volunteer's current room (nil clears the selection) and
// tells the dashboard where everyone is.
func (s *AuthService) SelectRoom(user *models.User, roomNumber *string) error {
	if roomNumber != nil && !models.ValidRoomNumber(*roomNumber) {
		return validation("unknown room number")
	}

	user.CurrentRoom = roomNumber
	if err := s.db.Model(user).Update("current_room", roomNumber).Error; err != nil {
		return storage(err)
	}

	s.dispatcher.Dispatch(events.Event{
		Name: events.VolunteerRoomUpdated,
		Payload: map[string]interface{}{
			"volunteer_id":   user.ID,
			"volunteer_name": user.Name,
			"room_number":    user.CurrentRoom,
		},
	})
	return nil
}

func (s *AuthService) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user_id in token")
	}

	return userID, nil
}
