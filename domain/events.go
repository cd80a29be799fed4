package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Login flow events
	LoginStepOneEvent        AuditEventType = "LOGIN_PASSWORD_VERIFIED"
	LoginStepOneFailureEvent AuditEventType = "LOGIN_PASSWORD_FAILED"
	LoginCompletedEvent      AuditEventType = "LOGIN_COMPLETED"
	CodeVerifyFailureEvent   AuditEventType = "CODE_VERIFICATION_FAILED"
	CodeResentEvent          AuditEventType = "CODE_RESENT"

	// Credential maintenance events
	EmailResetEvent  AuditEventType = "ADMIN_EMAIL_RESET"
	SecretResetEvent AuditEventType = "ADMIN_PASSWORD_RESET"

	// Guarding events
	RateLimitedEvent AuditEventType = "REQUEST_RATE_LIMITED"
)

// AuditEvent represents a business event that occurred in the auth flow
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	AdminID   string         `json:"admin_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Origin    string         `json:"origin,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// AuditLogger records audit events. Logging must never fail a business
// operation; implementations swallow their own errors.
type AuditLogger interface {
	Log(event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, adminID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		AdminID:   adminID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithOrigin sets the client origin field
func (e *AuditEvent) WithOrigin(origin string) *AuditEvent {
	e.Origin = origin
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}
