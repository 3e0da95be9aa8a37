package entities

import "time"

// User roles recognized by the upstream identity gateway
const (
	RolePatient       = "patient"
	RoleDoctor        = "doctor"
	RoleClinicAdmin   = "clinic_admin"
	RoleHospitalAdmin = "hospital_admin"
)

// User is the account record backing every role. Authentication and token
// issuance live in the upstream gateway; this service only reads profiles.
type User struct {
	ID        string    `json:"user_id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
