package entities

import "time"

// Doctor represents a registered doctor profile
type Doctor struct {
	ID              string       `json:"doctor_id" db:"id"`
	FullName        string       `json:"full_name" db:"full_name"`
	Email           string       `json:"email" db:"email"`
	Specialization  string       `json:"specialization" db:"specialization"`
	ExperienceYears int          `json:"experience_years" db:"experience_years"`
	LicenseNumber   string       `json:"license_number" db:"license_number"`
	Phone           string       `json:"phone" db:"phone"`
	FacilityID      string       `json:"facility_id" db:"facility_id"`
	FacilityName    string       `json:"facility_name,omitempty" db:"facility_name"`
	FacilityType    string       `json:"facility_type,omitempty" db:"facility_type"`
	Availability    Availability `json:"availability" db:"-"`
	PatientsTreated int          `json:"patients_treated" db:"patients_treated"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}

// Availability holds a doctor's online status and weekly time slots
type Availability struct {
	IsOnline  bool       `json:"is_online"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// TimeSlot represents a recurring weekly consultation window
type TimeSlot struct {
	Day                 string `json:"day"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	MaxPatients         int    `json:"max_patients"`
}

// DoctorStats summarizes a doctor's request workload
type DoctorStats struct {
	TotalRequests   int  `json:"total_requests"`
	PendingRequests int  `json:"pending_requests"`
	PatientsTreated int  `json:"patients_treated"`
	OnlineStatus    bool `json:"online_status"`
}
