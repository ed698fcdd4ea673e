package mail

import "log"

// Mailer delivers password-reset codes. The HTTP layer never sees the code,
// only whether delivery was accepted.
type Mailer interface {
	SendResetCode(toEmail, name, code string, expireMinutes int) error
}

// LogMailer writes reset codes to the server log. It stands in for a real
// SMTP transport, which is outside this service's scope.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendResetCode(toEmail, name, code string, expireMinutes int) error {
	log.Printf("password reset code for %s <%s>: %s (valid %d minutes)", name, toEmail, code, expireMinutes)
	return nil
}
