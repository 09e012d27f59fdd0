package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCredentials(toEmail, name, username, password string) error
	SendTemporaryPassword(toEmail, name, password string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	appName     string
}

func NewEmailService(host string, port int, username, password, senderEmail, appName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		appName:     appName,
	}
}

// SendCredentials mails the login details for an account an admin just
// created, either one-off or via bulk import.
func (s *emailService) SendCredentials(toEmail, name, username, password string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your %s account", s.appName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>An account has been created for you on %s. You can sign in with:</p>
			<p><b>Username:</b> %s<br/><b>Password:</b> %s</p>
			<p>Please change your password after your first login.</p>
		</div>
	`, name, s.appName, username, password)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send credentials to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Credentials sent to %s\n", toEmail)
	return nil
}

// SendTemporaryPassword mails the temporary password issued by an admin
// password reset.
func (s *emailService) SendTemporaryPassword(toEmail, name, password string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your password has been reset")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Password Reset</h2>
			<p>Hi %s, an administrator has reset your password. Your temporary password is:</p>
			<h1 style="color: #007BFF; letter-spacing: 3px;">%s</h1>
			<p>Please sign in and change it as soon as possible.</p>
			<p>If you didn't expect this, contact your event administrator.</p>
		</div>
	`, name, password)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send temporary password to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Temporary password sent to %s\n", toEmail)
	return nil
}
