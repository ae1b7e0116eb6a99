// export/csv.go

// Package export produces the comma-delimited downloads the console
// offers. Every field is double-quoted, embedded quotes are doubled, and
// the output is header + one line per record. The standard library csv
// writer quotes only when it must, which breaks the download contract of
// always-quoted fields, so the quoting is done here.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/imdes/console/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// NameResolver maps a ministry id to its display name. Unknown ids
// resolve to the numeric id.
type NameResolver func(int) string

// Filename returns `<kind>-<ISO date>.csv` for the given day.
func Filename(kind string, t time.Time) string {
	return kind + "-" + t.Format("2006-01-02") + ".csv"
}

// Document renders a header plus rows with every field quoted. N input
// rows yield exactly N+1 lines.
func Document(header []string, rows [][]string) []byte {
	var b strings.Builder
	writeRow(&b, header)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
}

var auditHeader = []string{
	"ID", "Timestamp", "User", "Ministry", "Action", "Resource",
	"Status", "IP Address", "Risk Level", "Details",
}

// AuditLogs renders the audit trail download.
func AuditLogs(entries []model.AuditLogEntry, ministryName NameResolver) []byte {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Timestamp.Format(timestampLayout),
			e.UserEmail,
			resolve(ministryName, e.MinistryID),
			string(e.Action),
			e.Resource,
			string(e.Status),
			e.IPAddress,
			string(e.RiskLevel),
			e.Details,
		})
	}
	return Document(auditHeader, rows)
}

var requestHeader = []string{
	"ID", "Requesting Ministry", "Target Ministry", "Purpose",
	"Urgency", "Status", "Retention Days", "Created At",
}

// DataRequests renders the request list download.
func DataRequests(requests []model.DataRequest, ministryName NameResolver) []byte {
	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{
			r.ID,
			resolve(ministryName, r.RequestingMinistryID),
			resolve(ministryName, r.TargetMinistryID),
			r.Purpose,
			string(r.Urgency),
			string(r.Status),
			strconv.Itoa(r.RetentionPeriodDays),
			r.CreatedAt.Format(timestampLayout),
		})
	}
	return Document(requestHeader, rows)
}

func resolve(ministryName NameResolver, id int) string {
	if ministryName != nil {
		if name := ministryName(id); name != "" {
			return name
		}
	}
	return strconv.Itoa(id)
}
