package entities

import (
	"encoding/json"
	"time"
)

// Patient request lifecycle states. pending -> accepted -> completed is the
// normal path; pending -> rejected is reached only when every matched doctor
// has declined. No transition skips states and none is reversible.
const (
	RequestStatusPending   = "pending"
	RequestStatusAccepted  = "accepted"
	RequestStatusRejected  = "rejected"
	RequestStatusCompleted = "completed"
)

// PatientRequest is a routing request created once per connect-with-doctor
// call. MatchedDoctors is frozen at creation time; AssignedDoctorID is set
// exactly once on accept.
type PatientRequest struct {
	ID               string          `json:"request_id" db:"id"`
	PatientID        string          `json:"patient_id" db:"patient_id"`
	PatientName      string          `json:"patient_name" db:"patient_name"`
	PatientAge       *int            `json:"patient_age,omitempty" db:"patient_age"`
	Symptoms         string          `json:"symptoms" db:"symptoms"`
	UrgencyLevel     string          `json:"urgency_level" db:"urgency_level"`
	PrimarySpecialty string          `json:"primary_specialty" db:"primary_specialty"`
	Status           string          `json:"status" db:"status"`
	MatchedDoctors   []string        `json:"matched_doctors" db:"-"`
	DeclinedDoctors  []string        `json:"declined_doctors,omitempty" db:"-"`
	AssignedDoctorID *string         `json:"assigned_doctor_id,omitempty" db:"assigned_doctor_id"`
	BillBreakdown    json.RawMessage `json:"bill_breakdown,omitempty" db:"bill_breakdown"`
	RequestedAt      time.Time       `json:"requested_at" db:"requested_at"`
}

// IsMatched reports whether doctorID is in the frozen matched set.
func (r *PatientRequest) IsMatched(doctorID string) bool {
	for _, id := range r.MatchedDoctors {
		if id == doctorID {
			return true
		}
	}
	return false
}

// HasDeclined reports whether doctorID already declined this request.
func (r *PatientRequest) HasDeclined(doctorID string) bool {
	for _, id := range r.DeclinedDoctors {
		if id == doctorID {
			return true
		}
	}
	return false
}

// DoctorNotification records one fan-out notification to a matched doctor.
// Delivery is handled downstream; this core only creates the records.
type DoctorNotification struct {
	ID               string    `json:"notification_id" db:"id"`
	DoctorID         string    `json:"doctor_id" db:"doctor_id"`
	PatientRequestID string    `json:"patient_request_id" db:"patient_request_id"`
	PatientName      string    `json:"patient_name" db:"patient_name"`
	Symptoms         string    `json:"symptoms" db:"symptoms"`
	UrgencyLevel     string    `json:"urgency_level" db:"urgency_level"`
	Read             bool      `json:"read" db:"read"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
