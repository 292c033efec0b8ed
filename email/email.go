package email

import (
	"fmt"
	"net/smtp"
	"time"

	"portfolio/common"
	"portfolio/models"
)

// Mailer is what the contact flow needs. Tests substitute a stub.
type Mailer interface {
	SendContactConfirmation(submission models.ContactSubmission) error
	SendContactNotification(submission models.ContactSubmission) error
}

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
	owner    string
}

func NewEmailService(cfg *common.Config) *EmailService {
	return &EmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		owner:    cfg.OwnerEmail,
	}
}

// SendContactConfirmation thanks the sender and echoes their message back.
func (e *EmailService) SendContactConfirmation(submission models.ContactSubmission) error {
	subject := "Thank you for contacting me!"
	body := fmt.Sprintf(`Hi %s,

Thank you for reaching out. I have received your message and will get
back to you as soon as possible.

Your message:

%s

Best regards,
Sayan Ghosh
Microsoft 365 Administrator
`, submission.Name, submission.Message)

	return e.send(submission.Email, subject, body)
}

// SendContactNotification alerts the site owner about a new submission.
func (e *EmailService) SendContactNotification(submission models.ContactSubmission) error {
	if e.owner == "" {
		return fmt.Errorf("OWNER_EMAIL not configured")
	}

	subject := fmt.Sprintf("New Contact Form Submission from %s", submission.Name)
	phone := submission.Phone
	if phone == "" {
		phone = "-"
	}
	body := fmt.Sprintf(`New contact form submission.

Name: %s
Email: %s
Phone: %s
Submitted: %s

Message:

%s
`, submission.Name, submission.Email, phone,
		submission.CreatedAt.Format(time.RFC1123), submission.Message)

	return e.send(e.owner, subject, body)
}

func (e *EmailService) send(to, subject, body string) error {
	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, to, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}
