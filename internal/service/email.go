package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pantrymarket/backend/internal/models"
)

// EmailService sends outbound mail over SMTP. With no SMTP host configured
// it logs the message instead, which keeps development setups working.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	log          *logrus.Logger
}

func NewEmailService(host, port, username, password, fromEmail, fromName string, log *logrus.Logger) *EmailService {
	return &EmailService{
		smtpHost:     host,
		smtpPort:     port,
		smtpUsername: username,
		smtpPassword: password,
		fromEmail:    fromEmail,
		fromName:     fromName,
		log:          log,
	}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.smtpHost == "" || s.smtpPort == "" {
		s.log.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, logging email instead")
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) SendWelcome(user *models.User) error {
	subject := "Welcome to PantryMarket!"
	body := fmt.Sprintf("<p>Hello %s,</p><p>Your PantryMarket account is ready. Start sharing recipes and filling your cart.</p>", user.Username)
	return s.SendEmail(user.Email, subject, body)
}

func (s *EmailService) SendPasswordReset(user *models.User) error {
	subject := "Password Reset Instructions"
	body := "<p>Please follow the instructions in this email to reset your password.</p>"
	return s.SendEmail(user.Email, subject, body)
}

// SendShoppingList mails a recipe's ingredients as an HTML list.
func (s *EmailService) SendShoppingList(user *models.User, recipe *models.Recipe) error {
	subject := fmt.Sprintf("Shop list for %s", recipe.Title)

	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, ingredient := range recipe.Ingredients {
		b.WriteString(fmt.Sprintf("<li>%s</li>\n", ingredient))
	}
	b.WriteString("</ul>")

	return s.SendEmail(user.Email, subject, b.String())
}
