package entities

import "time"

// Routing event types published on the event bus
const (
	EventRequestCreated      = "patient-request-created"
	EventDoctorNotified      = "doctor-notified"
	EventDoctorStatusChanged = "doctor-status-changed"
	EventRequestAccepted     = "patient-request-accepted"
	EventRequestCompleted    = "patient-request-completed"
)

// RoutingEvent is the envelope published for routing lifecycle changes.
// Downstream consumers (notifiers, dashboards) subscribe via the event bus.
type RoutingEvent struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	RequestID    string            `json:"request_id,omitempty"`
	DoctorID     string            `json:"doctor_id,omitempty"`
	PatientID    string            `json:"patient_id,omitempty"`
	UrgencyLevel string            `json:"urgency_level,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}
