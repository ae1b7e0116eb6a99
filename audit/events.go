// audit/events.go
package audit

import (
	"fmt"

	"github.com/imdes/console/model"
)

// Convenience emitters for the actions the console records. Resource names,
// detail strings and risk defaults match what the audit backend expects.

func (l *Logger) LoginAttempt(email string, status model.AuditStatus) {
	risk := model.RiskLow
	if status == model.AuditFailed {
		risk = model.RiskMedium
	}
	l.Record(model.AuditLogEntry{
		Action:    model.ActionLogin,
		Resource:  "Authentication System",
		Details:   fmt.Sprintf("User %s attempted to log in", email),
		Status:    status,
		RiskLevel: risk,
	})
}

func (l *Logger) Signup(email string, status model.AuditStatus) {
	l.Record(model.AuditLogEntry{
		Action:    model.ActionSignup,
		Resource:  "User Registration",
		Details:   fmt.Sprintf("New user %s registered", email),
		Status:    status,
		RiskLevel: model.RiskLow,
	})
}

func (l *Logger) Logout(email string) {
	l.Record(model.AuditLogEntry{
		Action:    model.ActionLogout,
		Resource:  "Authentication System",
		Details:   fmt.Sprintf("User %s logged out", email),
		Status:    model.AuditSuccess,
		RiskLevel: model.RiskLow,
	})
}

func (l *Logger) DataRequestCreated(requestID, targetMinistry string) {
	l.Record(model.AuditLogEntry{
		Action:     model.ActionDataRequest,
		Resource:   "Data Request System",
		ResourceID: requestID,
		Details:    fmt.Sprintf("Created data request for %s", targetMinistry),
		RiskLevel:  model.RiskMedium,
	})
}

// Decision records an approval or rejection of a data request.
func (l *Logger) Decision(requestID string, action model.AuditAction) {
	verb := "Approved"
	risk := model.RiskLow
	if action == model.ActionRejection {
		verb = "Rejected"
		risk = model.RiskMedium
	}
	l.Record(model.AuditLogEntry{
		Action:     action,
		Resource:   "Data Request System",
		ResourceID: requestID,
		Details:    fmt.Sprintf("%s data request", verb),
		RiskLevel:  risk,
	})
}

func (l *Logger) DataAccess(resourceName, resourceID string) {
	l.Record(model.AuditLogEntry{
		Action:     model.ActionDataAccess,
		Resource:   resourceName,
		ResourceID: resourceID,
		Details:    fmt.Sprintf("Accessed %s", resourceName),
		RiskLevel:  model.RiskHigh,
	})
}

func (l *Logger) Download(fileName, resourceID string) {
	l.Record(model.AuditLogEntry{
		Action:     model.ActionDownload,
		Resource:   "File Download",
		ResourceID: resourceID,
		Details:    fmt.Sprintf("Downloaded file: %s", fileName),
		RiskLevel:  model.RiskMedium,
	})
}
