// audit/logger.go
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/service"
	"github.com/imdes/console/session"
	"github.com/imdes/console/util"
)

// EventRecord carries a partial audit entry to the background submitter.
const EventRecord = "audit.record"

// Logger enriches partial audit entries and submits them to the audit
// backend off the caller's critical path. Audit completeness is advisory:
// every failure in enrichment or submission is logged and swallowed, never
// retried and never surfaced to the user.
type Logger struct {
	logs      *service.AuditLogService
	session   *session.Store
	geo       *GeoIPClient
	bus       *util.EventBus
	userAgent string
}

func NewLogger(logs *service.AuditLogService, sessionStore *session.Store, geo *GeoIPClient, bus *util.EventBus, userAgent string) *Logger {
	l := &Logger{
		logs:      logs,
		session:   sessionStore,
		geo:       geo,
		bus:       bus,
		userAgent: userAgent,
	}
	bus.Subscribe(EventRecord, l.handleRecord)
	return l
}

// Record queues a partial entry for enrichment and submission. It returns
// immediately; the caller's flow never waits on the audit trail. Session
// identity is captured here, synchronously, so a logout right after the
// call cannot blank the entry.
func (l *Logger) Record(entry model.AuditLogEntry) {
	entry = l.identify(entry)
	// The triggering request may complete before enrichment does, so the
	// background work must not inherit its context.
	l.bus.Publish(context.Background(), EventRecord, entry)
}

func (l *Logger) identify(entry model.AuditLogEntry) model.AuditLogEntry {
	if user := l.session.User(); user != nil {
		entry.UserID = user.ID
		entry.UserEmail = user.Email
		entry.MinistryID = user.MinistryID
	}
	entry.SessionID = l.session.SessionID()
	entry.UserAgent = l.userAgent
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return entry
}

func (l *Logger) handleRecord(ctx context.Context, event util.Event) error {
	entry, ok := event.Payload.(model.AuditLogEntry)
	if !ok {
		logger.Error("Unexpected audit event payload", zap.Any("payload", event.Payload))
		return nil
	}

	enriched := l.enrich(ctx, entry)
	if _, err := l.logs.Create(ctx, enriched); err != nil {
		logger.Error("Failed to submit audit log",
			zap.String("action", string(enriched.Action)),
			zap.String("resource", enriched.Resource),
			zap.Error(err))
	}
	return nil
}

// enrich fills the entry with network metadata and defaults. Lookup
// failures leave default values in place; enrichment never blocks
// submission.
func (l *Logger) enrich(ctx context.Context, entry model.AuditLogEntry) model.AuditLogEntry {
	if entry.Status == "" {
		entry.Status = model.AuditSuccess
	}
	if entry.RiskLevel == "" {
		entry.RiskLevel = model.RiskLow
	}

	location := l.geo.Lookup(ctx)
	entry.IPAddress = location.IP
	entry.Country = location.Country
	entry.City = location.City

	return entry
}
