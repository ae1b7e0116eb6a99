package model

import (
	"strings"
	"time"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// DataRequest is a structured ask from one ministry for a category of data
// held by another. Owned by the backend; the console holds re-fetchable
// copies only.
type DataRequest struct {
	ID                      string        `json:"id"`
	RequestingMinistryID    int           `json:"requesting_ministry_id"`
	TargetMinistryID        int           `json:"target_ministry_id"`
	RequestedBy             int           `json:"requested_by"`
	DataTypeID              int           `json:"data_type_id"`
	SpecificRecordIDs       string        `json:"specific_record_ids,omitempty"`
	Purpose                 string        `json:"purpose"`
	Justification           string        `json:"justification"`
	LegalBasis              string        `json:"legal_basis,omitempty"`
	Urgency                 Urgency       `json:"urgency"`
	RetentionPeriodDays     int           `json:"retention_period_days"`
	DataSharingAcknowledged bool          `json:"data_sharing_acknowledged"`
	SupervisorApproved      bool          `json:"supervisor_approved"`
	RequestorName           string        `json:"requestor_name"`
	RequestorPosition       string        `json:"requestor_position"`
	Status                  RequestStatus `json:"status"`
	CreatedAt               time.Time     `json:"created_at"`
}

// DataRequestInput is the creation payload collected by the request form.
type DataRequestInput struct {
	TargetMinistryID        int     `json:"target_ministry_id" validate:"required"`
	DataTypeID              int     `json:"data_type_id" validate:"required"`
	SpecificRecordIDs       string  `json:"specific_record_ids,omitempty"`
	Purpose                 string  `json:"purpose" validate:"required"`
	Justification           string  `json:"justification" validate:"required"`
	LegalBasis              string  `json:"legal_basis,omitempty"`
	Urgency                 Urgency `json:"urgency" validate:"required,oneof=low medium high"`
	RetentionPeriodDays     int     `json:"retention_period_days" validate:"required,gt=0"`
	DataSharingAcknowledged bool    `json:"data_sharing_acknowledged"`
	SupervisorApproved      bool    `json:"supervisor_approved"`
	RequestorName           string  `json:"requestor_name" validate:"required"`
	RequestorPosition       string  `json:"requestor_position" validate:"required"`
}

// StatusPatch is the only mutation a reviewer applies to an existing request.
type StatusPatch struct {
	Status RequestStatus `json:"status"`
}

// CanTransitionTo reports whether the status change is allowed. A request
// starts pending and moves to approved or rejected exactly once; it never
// returns to pending.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// RequestFilter holds the client-side list filters. Zero values match all.
type RequestFilter struct {
	Status   RequestStatus
	Urgency  Urgency
	Ministry int
	Search   string
}

// Matches applies the filter predicates to a single request. Status and
// urgency compare case-sensitively; search is a substring match over the
// free-text fields.
func (f RequestFilter) Matches(r DataRequest) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Urgency != "" && r.Urgency != f.Urgency {
		return false
	}
	if f.Ministry != 0 && r.RequestingMinistryID != f.Ministry && r.TargetMinistryID != f.Ministry {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Purpose), needle) &&
			!strings.Contains(strings.ToLower(r.Justification), needle) &&
			!strings.Contains(strings.ToLower(r.RequestorName), needle) &&
			!strings.Contains(strings.ToLower(r.ID), needle) {
			return false
		}
	}
	return true
}

// FilterRequests returns the requests matching every set predicate.
func FilterRequests(requests []DataRequest, f RequestFilter) []DataRequest {
	out := make([]DataRequest, 0, len(requests))
	for _, r := range requests {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
