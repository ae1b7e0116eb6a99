package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imdes/console/model"
)

func sampleAuditLogs() []model.AuditLogEntry {
	return []model.AuditLogEntry{
		{ID: "log-1", Action: model.ActionLogin, RiskLevel: model.RiskLow, MinistryID: 1, UserEmail: "aliya@gov.kz", Resource: "Authentication System", Details: "User aliya@gov.kz attempted to log in"},
		{ID: "log-2", Action: model.ActionDataRequest, RiskLevel: model.RiskMedium, MinistryID: 2, UserEmail: "daniyar@gov.kz", Resource: "Data Request System", Details: "Created data request for Ministry of Health"},
		{ID: "log-3", Action: model.ActionApproval, RiskLevel: model.RiskLow, MinistryID: 1, UserEmail: "nurlan@gov.kz", Resource: "Data Request System", Details: "Approved data request"},
		{ID: "log-4", Action: model.ActionDownload, RiskLevel: model.RiskMedium, MinistryID: 3, UserEmail: "aliya@gov.kz", Resource: "File Download", Details: "Downloaded file: audit-logs-2026-08-30.csv"},
	}
}

func TestFilterAuditLogs(t *testing.T) {
	entries := sampleAuditLogs()

	t.Run("ByAction", func(t *testing.T) {
		out := model.FilterAuditLogs(entries, model.AuditFilter{Action: model.ActionLogin})
		assert.Len(t, out, 1)
		assert.Equal(t, "log-1", out[0].ID)
	})

	t.Run("ByRisk", func(t *testing.T) {
		assert.Len(t, model.FilterAuditLogs(entries, model.AuditFilter{Risk: model.RiskMedium}), 2)
	})

	t.Run("ByMinistry", func(t *testing.T) {
		assert.Len(t, model.FilterAuditLogs(entries, model.AuditFilter{Ministry: 1}), 2)
	})

	t.Run("SearchOverEmailResourceDetails", func(t *testing.T) {
		assert.Len(t, model.FilterAuditLogs(entries, model.AuditFilter{Search: "aliya"}), 2)
		assert.Len(t, model.FilterAuditLogs(entries, model.AuditFilter{Search: "data request system"}), 2)
		assert.Len(t, model.FilterAuditLogs(entries, model.AuditFilter{Search: "csv"}), 1)
	})

	t.Run("CombinedPredicates", func(t *testing.T) {
		out := model.FilterAuditLogs(entries, model.AuditFilter{Risk: model.RiskMedium, Ministry: 3})
		assert.Len(t, out, 1)
		assert.Equal(t, "log-4", out[0].ID)
	})

	t.Run("EmptyFilterMatchesAll", func(t *testing.T) {
		assert.Len(t, model.FilterAuditLogs(entries, model.AuditFilter{}), len(entries))
	})
}
