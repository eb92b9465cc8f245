package mail

import (
	"fmt"

	"food-order-api/config"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"
)

// Email delivery is best-effort: every send runs in its own goroutine
// and a failure is logged with a correlation id instead of failing the
// request that triggered it. An unset SMTP_HOST disables sending, which
// keeps development and tests offline.

func send(subject, to, htmlBody string) {
	cfg := config.Cfg
	correlationID := uuid.NewString()
	if cfg.SMTPHost == "" {
		config.Log.Infow("email delivery disabled, skipping send",
			"correlation_id", correlationID, "to", to, "subject", subject)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		config.Log.Errorw("email send failed",
			"correlation_id", correlationID, "to", to, "subject", subject, "error", err)
		return
	}
	config.Log.Debugw("email sent", "correlation_id", correlationID, "to", to, "subject", subject)
}

// SendVerificationEmail delivers the 6-digit signup verification code.
func SendVerificationEmail(to, code string) {
	body := fmt.Sprintf(`<p>Welcome! Verify your email to start ordering.</p>
<p>Your verification code is:</p>
<h2 style="letter-spacing:4px">%s</h2>
<p>The code expires in 24 hours.</p>`, code)
	go send("Verify your email", to, body)
}

// SendWelcomeEmail greets a freshly verified user.
func SendWelcomeEmail(to, fullname string) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your email is verified. Browse restaurants and place your first order!</p>`, fullname)
	go send("Welcome aboard", to, body)
}

// SendPasswordResetEmail delivers the reset link.
func SendPasswordResetEmail(to, resetLink string) {
	body := fmt.Sprintf(`<p>We received a request to reset your password.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link expires in 1 hour. If you didn't ask for this, ignore this email.</p>`, resetLink)
	go send("Reset your password", to, body)
}

// SendResetSuccessEmail confirms a completed password reset.
func SendResetSuccessEmail(to string) {
	body := `<p>Your password was changed successfully.</p>
<p>If this wasn't you, reset your password immediately.</p>`
	go send("Your password was changed", to, body)
}
