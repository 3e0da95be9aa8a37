package entities

import "time"

// Facility type discriminators used across matching results and the directory index.
const (
	FacilityTypeClinic   = "clinic"
	FacilityTypeHospital = "hospital"
)

// Location represents geographical coordinates with an optional street address
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Address   string  `json:"address,omitempty"`
}

// ClinicDoctor is the single practitioner embedded in a clinic record
type ClinicDoctor struct {
	Name              string `json:"name"`
	Specialization    string `json:"specialization"`
	Experience        int    `json:"experience"`
	AvailabilityHours string `json:"availability_hours"`
}

// Clinic represents a single-doctor clinic
type Clinic struct {
	ID                 string       `json:"clinic_id" db:"id"`
	Name               string       `json:"clinic_name" db:"name"`
	Location           Location     `json:"location" db:"-"`
	Doctor             ClinicDoctor `json:"doctor" db:"-"`
	HasNurses          bool         `json:"has_nurses" db:"has_nurses"`
	HasMedicineShop    bool         `json:"has_medicine_shop" db:"has_medicine_shop"`
	Fees               *float64     `json:"fees,omitempty" db:"fees"`
	AcceptsEmergencies bool         `json:"accepts_emergencies" db:"accepts_emergencies"`
	ContactPhone       string       `json:"contact_phone" db:"contact_phone"`
	LicenseNumber      string       `json:"license_number,omitempty" db:"license_number"`
	OwnerID            string       `json:"owner_id,omitempty" db:"owner_id"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
}

// HospitalDoctor is a practitioner embedded in a hospital record
type HospitalDoctor struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Experience     int    `json:"experience"`
	ShiftTimings   string `json:"shift_timings"`
}

// Hospital represents a multi-doctor hospital
type Hospital struct {
	ID                string           `json:"hospital_id" db:"id"`
	Name              string           `json:"hospital_name" db:"name"`
	HospitalType      string           `json:"hospital_type" db:"hospital_type"`
	Location          Location         `json:"location" db:"-"`
	Doctors           []HospitalDoctor `json:"doctors" db:"-"`
	TotalRooms        int              `json:"total_rooms" db:"total_rooms"`
	ICUBeds           int              `json:"icu_beds" db:"icu_beds"`
	HasEmergencyDept  bool             `json:"has_emergency_dept" db:"has_emergency_dept"`
	OperationTheatres int              `json:"operation_theatres" db:"operation_theatres"`
	NursesCount       int              `json:"nurses_count" db:"nurses_count"`
	Services          []string         `json:"services" db:"-"`
	ContactPhone      string           `json:"contact_phone" db:"contact_phone"`
	LicenseNumber     string           `json:"license_number,omitempty" db:"license_number"`
	OwnerID           string           `json:"owner_id,omitempty" db:"owner_id"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}

// FacilityMatch is a single facility recommendation returned to the caller
type FacilityMatch struct {
	FacilityID           string    `json:"facility_id"`
	FacilityName         string    `json:"facility_name"`
	FacilityType         string    `json:"facility_type"`
	DistanceKm           *float64  `json:"distance_km,omitempty"`
	DoctorName           string    `json:"doctor_name,omitempty"`
	DoctorSpecialization string    `json:"doctor_specialization,omitempty"`
	Availability         string    `json:"availability"`
	EmergencyCapable     bool      `json:"emergency_capable"`
	Contact              string    `json:"contact,omitempty"`
	Location             *Location `json:"location,omitempty"`
}

// FacilitySummary is a lightweight directory search result
type FacilitySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
