package mailer

import (
	"fmt"
	"path/filepath"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendArtifact(toEmail, artifact, attachmentPath string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendArtifact mails an exported file as an attachment.
func (s *emailService) SendArtifact(toEmail, artifact, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your %s export", artifact))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your export is ready</h2>
			<p>The requested %s export is attached as <b>%s</b>.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, artifact, filepath.Base(attachmentPath))

	m.SetBody("text/html", body)
	m.Attach(attachmentPath)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send export to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Export sent to %s\n", toEmail)
	return nil
}
