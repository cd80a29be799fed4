package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/you/admingate/domain"
)

// MailServiceImpl implements domain.NotificationService over SMTP. This
// is the default dispatcher: the one-time code goes to the admin's inbox.
type MailServiceImpl struct {
	client *mail.Client
	from   string
}

// NewMailService creates a new SMTP notification service
func NewMailService(host string, port int, username, password, from string) (domain.NotificationService, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &MailServiceImpl{client: client, from: from}, nil
}

// SendCode implements domain.NotificationService. The ctx deadline bounds
// the whole SMTP conversation.
func (m *MailServiceImpl) SendCode(ctx context.Context, to, code string, ttl time.Duration) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("Your Login Verification Code")
	msg.SetBodyString(mail.TypeTextPlain, codeBody(code, ttl))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send code email: %w", err)
	}
	return nil
}

func codeBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Hello Admin,\n\n"+
			"Use the verification code below to complete your login:\n\n"+
			"    %s\n\n"+
			"This code expires in %d minutes and can only be used once.\n"+
			"If you did not request this code, someone may be trying to access your account.\n",
		code, int(ttl.Minutes()))
}
