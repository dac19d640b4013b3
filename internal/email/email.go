package email

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends the emergency notification. Delivery is best-effort; callers
// never roll back on a send failure.
type Mailer interface {
	SendEmergency(notice EmergencyNotice) error
}

type EmergencyNotice struct {
	Type          string
	RoomNumber    string
	TeamName      string
	Description   string
	VolunteerName string
	Contacts      []string
}

type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
}

func NewSMTPMailer(host, port, user, password string) *SMTPMailer {
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 {
		p = 587
	}
	return &SMTPMailer{host: host, port: p, user: user, password: password}
}

func (m *SMTPMailer) SendEmergency(notice EmergencyNotice) error {
	if m.user == "" || m.password == "" {
		return errors.New("email not configured")
	}
	if len(notice.Contacts) == 0 {
		return errors.New("no contacts to notify")
	}

	subject := fmt.Sprintf("EMERGENCY ALERT: %s - Room %s",
		strings.ToUpper(strings.ReplaceAll(notice.Type, "-", " ")), notice.RoomNumber)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", notice.Contacts...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", emergencyBody(notice))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	return dialer.DialAndSend(msg)
}

func emergencyBody(notice EmergencyNotice) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px;">`)
	b.WriteString(`<h1 style="color: #dc2626;">EMERGENCY ALERT</h1>`)
	fmt.Fprintf(&b, `<p><strong>Type:</strong> %s</p>`, strings.ToUpper(strings.ReplaceAll(notice.Type, "-", " ")))
	fmt.Fprintf(&b, `<p><strong>Room Number:</strong> %s</p>`, notice.RoomNumber)
	if notice.TeamName != "" {
		fmt.Fprintf(&b, `<p><strong>Team Name:</strong> %s</p>`, notice.TeamName)
	}
	fmt.Fprintf(&b, `<p><strong>Reported By:</strong> %s</p>`, notice.VolunteerName)
	fmt.Fprintf(&b, `<p><strong>Time:</strong> %s</p>`, time.Now().Format(time.RFC1123))
	fmt.Fprintf(&b, `<h3>Description</h3><p style="white-space: pre-wrap;">%s</p>`, notice.Description)
	b.WriteString(`<p style="color: #92400e;"><strong>Immediate action required. Please respond as soon as possible.</strong></p>`)
	b.WriteString(`</div>`)
	return b.String()
}
