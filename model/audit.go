package model

import (
	"strings"
	"time"
)

type AuditAction string

const (
	ActionLogin       AuditAction = "login"
	ActionLogout      AuditAction = "logout"
	ActionSignup      AuditAction = "signup"
	ActionDataRequest AuditAction = "data_request"
	ActionDataAccess  AuditAction = "data_access"
	ActionApproval    AuditAction = "approval"
	ActionRejection   AuditAction = "rejection"
	ActionDownload    AuditAction = "download"
	ActionCreate      AuditAction = "create"
	ActionUpdate      AuditAction = "update"
	ActionDelete      AuditAction = "delete"
)

type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailed  AuditStatus = "failed"
	AuditPending AuditStatus = "pending"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AuditLogEntry is an append-only record of a security-relevant action,
// enriched with network and session metadata before submission.
type AuditLogEntry struct {
	ID         string      `json:"id,omitempty"`
	UserID     int         `json:"user_id,omitempty"`
	UserEmail  string      `json:"user_email,omitempty"`
	MinistryID int         `json:"ministry_id,omitempty"`
	Action     AuditAction `json:"action"`
	Resource   string      `json:"resource"`
	ResourceID string      `json:"resource_id,omitempty"`
	Status     AuditStatus `json:"status"`
	IPAddress  string      `json:"ip_address,omitempty"`
	UserAgent  string      `json:"user_agent,omitempty"`
	SessionID  string      `json:"session_id,omitempty"`
	Details    string      `json:"details"`
	RiskLevel  RiskLevel   `json:"risk_level"`
	Country    string      `json:"country,omitempty"`
	City       string      `json:"city,omitempty"`
	Timestamp  time.Time   `json:"timestamp,omitempty"`
}

// AuditFilter holds the client-side audit trail filters.
type AuditFilter struct {
	Action   AuditAction
	Risk     RiskLevel
	Ministry int
	Search   string
}

func (f AuditFilter) Matches(e AuditLogEntry) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.Risk != "" && e.RiskLevel != f.Risk {
		return false
	}
	if f.Ministry != 0 && e.MinistryID != f.Ministry {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.UserEmail), needle) &&
			!strings.Contains(strings.ToLower(e.Resource), needle) &&
			!strings.Contains(strings.ToLower(e.Details), needle) {
			return false
		}
	}
	return true
}

// FilterAuditLogs returns the entries matching every set predicate.
func FilterAuditLogs(entries []AuditLogEntry, f AuditFilter) []AuditLogEntry {
	out := make([]AuditLogEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
