package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imdes/console/export"
	"github.com/imdes/console/model"
)

func TestFilename(t *testing.T) {
	day := time.Date(2026, time.August, 30, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "audit-logs-2026-08-30.csv", export.Filename("audit-logs", day))
	assert.Equal(t, "data-requests-2026-08-30.csv", export.Filename("data-requests", day))
}

func TestDocumentQuoting(t *testing.T) {
	doc := string(export.Document(
		[]string{"ID", "Details"},
		[][]string{
			{"req-1", "plain"},
			{"req-2", `said "no"`},
			{"req-3", "commas, stay, inside"},
		},
	))

	lines := strings.Split(doc, "\n")
	// Header plus one line per row, no trailing newline.
	require.Len(t, lines, 4)
	assert.False(t, strings.HasSuffix(doc, "\n"))

	assert.Equal(t, `"ID","Details"`, lines[0])
	assert.Equal(t, `"req-1","plain"`, lines[1])
	assert.Equal(t, `"req-2","said ""no"""`, lines[2])
	assert.Equal(t, `"req-3","commas, stay, inside"`, lines[3])
}

func TestDocumentEmptyRows(t *testing.T) {
	doc := string(export.Document([]string{"A", "B"}, nil))
	assert.Equal(t, `"A","B"`, doc)
}

func TestAuditLogsExport(t *testing.T) {
	entries := []model.AuditLogEntry{
		{
			ID:         "log-1",
			Timestamp:  time.Date(2026, time.August, 30, 9, 15, 0, 0, time.UTC),
			UserEmail:  "aliya@gov.kz",
			MinistryID: 1,
			Action:     model.ActionLogin,
			Resource:   "Authentication System",
			Status:     model.AuditSuccess,
			IPAddress:  "10.0.0.5",
			RiskLevel:  model.RiskLow,
			Details:    "User aliya@gov.kz attempted to log in",
		},
	}
	resolver := func(id int) string {
		if id == 1 {
			return "Ministry of Finance"
		}
		return ""
	}

	lines := strings.Split(string(export.AuditLogs(entries, resolver)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"ID","Timestamp","User","Ministry","Action","Resource","Status","IP Address","Risk Level","Details"`, lines[0])
	assert.Equal(t, `"log-1","2026-08-30 09:15:00","aliya@gov.kz","Ministry of Finance","login","Authentication System","success","10.0.0.5","low","User aliya@gov.kz attempted to log in"`, lines[1])
}

func TestDataRequestsExport(t *testing.T) {
	requests := []model.DataRequest{
		{
			ID:                   "req-1",
			RequestingMinistryID: 1,
			TargetMinistryID:     99, // unknown, falls back to the id
			Purpose:              "Tax compliance audit",
			Urgency:              model.UrgencyHigh,
			Status:               model.StatusPending,
			RetentionPeriodDays:  30,
			CreatedAt:            time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC),
		},
	}
	resolver := func(id int) string {
		if id == 1 {
			return "Ministry of Finance"
		}
		return ""
	}

	lines := strings.Split(string(export.DataRequests(requests, resolver)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"req-1","Ministry of Finance","99","Tax compliance audit","high","pending","30","2026-08-01 08:00:00"`, lines[1])
}

func TestDataRequestsExportNilResolver(t *testing.T) {
	requests := []model.DataRequest{{ID: "req-1", RequestingMinistryID: 4, TargetMinistryID: 5}}
	lines := strings.Split(string(export.DataRequests(requests, nil)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"4","5"`)
}
