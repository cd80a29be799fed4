package audit

import (
	"encoding/json"
	"log"

	"github.com/you/admingate/domain"
)

// LogAuditLogger implements domain.AuditLogger by writing events as JSON
// lines to the process log.
type LogAuditLogger struct {
	logger *log.Logger
}

// NewLogAuditLogger creates a new log-backed audit logger
func NewLogAuditLogger(logger *log.Logger) domain.AuditLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &LogAuditLogger{logger: logger}
}

// Log implements domain.AuditLogger
func (l *LogAuditLogger) Log(event *domain.AuditEvent) {
	if event == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		l.logger.Printf("audit: %s admin=%s success=%t", event.EventType, event.AdminID, event.Success)
		return
	}
	l.logger.Printf("audit: %s", data)
}
