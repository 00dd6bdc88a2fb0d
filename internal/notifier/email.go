package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Email sends alerts to the site supervisor mailbox over SMTP.
type Email struct {
	Server   string
	Port     int
	Username string
	Password string
	To       string
	logger   *logrus.Logger
}

func NewEmail(server string, port int, username, password, to string, logger *logrus.Logger) (*Email, error) {
	if !strings.Contains(to, "@") {
		return nil, fmt.Errorf("invalid alert recipient address: %s", to)
	}
	return &Email{
		Server:   server,
		Port:     port,
		Username: username,
		Password: password,
		To:       to,
		logger:   logger,
	}, nil
}

func (e *Email) Send(_ context.Context, text string) bool {
	// First line of the alert doubles as the subject.
	subject := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		subject = text[:i]
	}
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s\r\n", e.To, subject, text))
	auth := smtp.PlainAuth("", e.Username, e.Password, e.Server)
	addr := fmt.Sprintf("%s:%d", e.Server, e.Port)
	if err := smtp.SendMail(addr, auth, e.Username, []string{e.To}, msg); err != nil {
		e.logger.Errorf("alert email to %s failed: %v", e.To, err)
		return false
	}
	return true
}
