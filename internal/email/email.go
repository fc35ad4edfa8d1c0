package email

import (
	"fmt"

	"github.com/resumatch/backend/internal/logger"
	"gopkg.in/gomail.v2"
)

// Sender delivers account emails over SMTP. Callers treat delivery as
// fire-and-forget: returned errors are logged, never surfaced to clients.
type Sender struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string // public base URL used to build verification/reset links
}

// New creates an SMTP sender.
func New(host string, port int, username, password, from, baseURL string) *Sender {
	return &Sender{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		baseURL: baseURL,
	}
}

// SendVerificationEmail mails a single-use email verification link.
func (s *Sender) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.baseURL, token)

	text := fmt.Sprintf("Please verify your email by clicking the following link: %s", link)
	html := fmt.Sprintf(`<p>Please verify your email by clicking the following link: <a href="%s">%s</a></p>`, link, link)

	return s.send(to, "Email Verification", text, html)
}

// SendPasswordResetEmail mails a single-use password reset link valid for
// one hour.
func (s *Sender) SendPasswordResetEmail(to, token string) error {
	link := fmt.Sprintf("%s/api/auth/reset-password?token=%s", s.baseURL, token)

	text := fmt.Sprintf("You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n"+
		"Please click on the following link, or paste this into your browser to complete the process within one hour of receiving it:\n\n%s\n\n"+
		"If you did not request this, please ignore this email and your password will remain unchanged.\n", link)
	html := fmt.Sprintf(`<p>You are receiving this because you (or someone else) have requested the reset of the password for your account.</p>`+
		`<p>Please click on the following link, or paste this into your browser to complete the process within one hour of receiving it:</p>`+
		`<p><a href="%s">%s</a></p>`+
		`<p>If you did not request this, please ignore this email and your password will remain unchanged.</p>`, link, link)

	return s.send(to, "Password Reset", text, html)
}

func (s *Sender) send(to, subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}

	logger.Log.Infow("email sent", "to", to, "subject", subject)
	return nil
}
