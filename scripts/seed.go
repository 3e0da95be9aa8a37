package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ayumitra/telemed-backend/internal/adapters/database"
	"github.com/ayumitra/telemed-backend/internal/adapters/search"
	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/postgres"
	"github.com/ayumitra/telemed-backend/internal/infrastructure/clients/typesense"
	"github.com/ayumitra/telemed-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchRepo *search.TypesenseAdapter
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err == nil {
		if err := tsClient.InitSchema(context.Background()); err != nil {
			log.Printf("Failed to init Typesense schema: %v", err)
		} else {
			searchRepo = search.NewTypesenseAdapter(tsClient)
		}
	}

	doctorRepo := database.NewDoctorAdapter(pgClient)
	clinicRepo := database.NewClinicAdapter(pgClient)
	hospitalRepo := database.NewHospitalAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				notifications,
				symptom_analyses,
				patient_requests,
				doctors,
				clinics,
				hospitals,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed users: one of each role so every flow can be exercised
	users := []entities.User{
		{ID: uuid.New().String(), Email: "asha.patient@example.com", FullName: "Asha Verma", Role: entities.RolePatient},
		{ID: uuid.New().String(), Email: "rahul.patient@example.com", FullName: "Rahul Nair", Role: entities.RolePatient},
		{ID: uuid.New().String(), Email: "dr.mehta@example.com", FullName: "Dr. Priya Mehta", Role: entities.RoleDoctor},
		{ID: uuid.New().String(), Email: "dr.kapoor@example.com", FullName: "Dr. Arjun Kapoor", Role: entities.RoleDoctor},
		{ID: uuid.New().String(), Email: "clinic.admin@example.com", FullName: "Sunita Rao", Role: entities.RoleClinicAdmin},
		{ID: uuid.New().String(), Email: "hospital.admin@example.com", FullName: "Vikram Joshi", Role: entities.RoleHospitalAdmin},
	}

	for _, u := range users {
		_, err := pgClient.DB().ExecContext(ctx,
			`INSERT INTO users (id, email, full_name, role, created_at) VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (email) DO NOTHING`,
			u.ID, u.Email, u.FullName, u.Role, time.Now().UTC(),
		)
		if err != nil {
			log.Printf("Failed to create user %s: %v", u.Email, err)
		}
	}

	// 2. Seed clinics
	clinicFee := 500.0
	clinics := []entities.Clinic{
		{
			ID:       uuid.New().String(),
			Name:     "Sunrise Family Clinic",
			Location: entities.Location{Latitude: 19.0760, Longitude: 72.8777, Address: "12 Hill Road, Bandra West, Mumbai"},
			Doctor: entities.ClinicDoctor{
				Name:              "Dr. Kavita Iyer",
				Specialization:    "General Physician",
				Experience:        12,
				AvailabilityHours: "9am-1pm, 5pm-8pm",
			},
			HasNurses:          true,
			HasMedicineShop:    true,
			Fees:               &clinicFee,
			AcceptsEmergencies: false,
			ContactPhone:       "+91-22-2640-1122",
			OwnerID:            users[4].ID,
			CreatedAt:          time.Now().UTC(),
		},
		{
			ID:       uuid.New().String(),
			Name:     "HeartCare Clinic Andheri",
			Location: entities.Location{Latitude: 19.1197, Longitude: 72.8464, Address: "4 SV Road, Andheri West, Mumbai"},
			Doctor: entities.ClinicDoctor{
				Name:              "Dr. Sameer Kulkarni",
				Specialization:    "Cardiologist",
				Experience:        18,
				AvailabilityHours: "10am-2pm",
			},
			HasNurses:          true,
			HasMedicineShop:    false,
			AcceptsEmergencies: false,
			ContactPhone:       "+91-22-2673-8890",
			OwnerID:            users[4].ID,
			CreatedAt:          time.Now().UTC(),
		},
		{
			ID:       uuid.New().String(),
			Name:     "SkinFirst Dermatology",
			Location: entities.Location{Latitude: 19.0596, Longitude: 72.8295, Address: "22 Linking Road, Khar, Mumbai"},
			Doctor: entities.ClinicDoctor{
				Name:              "Dr. Neha Shah",
				Specialization:    "Dermatologist",
				Experience:        9,
				AvailabilityHours: "11am-7pm",
			},
			HasNurses:          false,
			HasMedicineShop:    true,
			AcceptsEmergencies: false,
			ContactPhone:       "+91-22-2605-4411",
			OwnerID:            users[4].ID,
			CreatedAt:          time.Now().UTC(),
		},
	}

	for i := range clinics {
		c := &clinics[i]
		if err := clinicRepo.Create(ctx, c); err != nil {
			log.Printf("Failed to create clinic %s: %v", c.Name, err)
			continue
		}
		indexFacility(ctx, searchRepo, c.ID, c.Name, entities.FacilityTypeClinic, &c.Location)
	}

	// 3. Seed hospitals
	hospitals := []entities.Hospital{
		{
			ID:           uuid.New().String(),
			Name:         "Lakeview Metro Hospital",
			HospitalType: "multi-specialty",
			Location:     entities.Location{Latitude: 19.0509, Longitude: 72.8294, Address: "A-791 Bandra Reclamation, Mumbai"},
			Doctors: []entities.HospitalDoctor{
				{Name: "Dr. Rohan Desai", Specialization: "Cardiologist", Experience: 22, ShiftTimings: "8am-4pm"},
				{Name: "Dr. Meera Pillai", Specialization: "Neurologist", Experience: 15, ShiftTimings: "10am-6pm"},
				{Name: "Dr. Anand Gupta", Specialization: "Orthopedic Surgeon", Experience: 19, ShiftTimings: "9am-5pm"},
			},
			TotalRooms:        220,
			ICUBeds:           40,
			HasEmergencyDept:  true,
			OperationTheatres: 8,
			NursesCount:       310,
			Services:          []string{"cardiology", "neurology", "orthopedics", "emergency medicine", "radiology"},
			ContactPhone:      "+91-22-2675-1000",
			OwnerID:           users[5].ID,
			CreatedAt:         time.Now().UTC(),
		},
		{
			ID:           uuid.New().String(),
			Name:         "Coastal General Hospital",
			HospitalType: "general",
			Location:     entities.Location{Latitude: 19.1136, Longitude: 72.8697, Address: "Western Express Highway, Jogeshwari, Mumbai"},
			Doctors: []entities.HospitalDoctor{
				{Name: "Dr. Farah Khan", Specialization: "Pulmonologist", Experience: 11, ShiftTimings: "9am-5pm"},
				{Name: "Dr. Suresh Menon", Specialization: "General Physician", Experience: 25, ShiftTimings: "24h on-call"},
			},
			TotalRooms:        120,
			ICUBeds:           12,
			HasEmergencyDept:  true,
			OperationTheatres: 3,
			NursesCount:       140,
			Services:          []string{"pulmonology", "general medicine", "emergency medicine"},
			ContactPhone:      "+91-22-2820-3344",
			OwnerID:           users[5].ID,
			CreatedAt:         time.Now().UTC(),
		},
		{
			ID:           uuid.New().String(),
			Name:         "VisionPlus Eye Institute",
			HospitalType: "specialty",
			Location:     entities.Location{Latitude: 19.0178, Longitude: 72.8478, Address: "30 Dadar TT Circle, Mumbai"},
			Doctors: []entities.HospitalDoctor{
				{Name: "Dr. Leena Bhatt", Specialization: "Ophthalmologist", Experience: 16, ShiftTimings: "10am-6pm"},
			},
			TotalRooms:        40,
			ICUBeds:           0,
			HasEmergencyDept:  false,
			OperationTheatres: 2,
			NursesCount:       25,
			Services:          []string{"ophthalmology"},
			ContactPhone:      "+91-22-2414-7788",
			OwnerID:           users[5].ID,
			CreatedAt:         time.Now().UTC(),
		},
	}

	for i := range hospitals {
		h := &hospitals[i]
		if err := hospitalRepo.Create(ctx, h); err != nil {
			log.Printf("Failed to create hospital %s: %v", h.Name, err)
			continue
		}
		indexFacility(ctx, searchRepo, h.ID, h.Name, entities.FacilityTypeHospital, &h.Location)
	}

	// 4. Seed doctor profiles attached to the seeded facilities
	doctors := []entities.Doctor{
		{
			ID:              users[2].ID,
			FullName:        users[2].FullName,
			Email:           users[2].Email,
			Specialization:  "Cardiologist",
			ExperienceYears: 14,
			LicenseNumber:   "MH-CARD-4471",
			Phone:           "+91-98200-11223",
			FacilityID:      hospitals[0].ID,
			FacilityName:    hospitals[0].Name,
			FacilityType:    entities.FacilityTypeHospital,
			Availability: entities.Availability{
				IsOnline: true,
				TimeSlots: []entities.TimeSlot{
					{Day: "monday", StartTime: "09:00", EndTime: "13:00", SlotDurationMinutes: 20, MaxPatients: 12},
					{Day: "wednesday", StartTime: "14:00", EndTime: "18:00", SlotDurationMinutes: 20, MaxPatients: 12},
				},
			},
			CreatedAt: time.Now().UTC(),
		},
		{
			ID:              users[3].ID,
			FullName:        users[3].FullName,
			Email:           users[3].Email,
			Specialization:  "General Physician",
			ExperienceYears: 8,
			LicenseNumber:   "MH-GEN-9082",
			Phone:           "+91-98200-44556",
			FacilityID:      clinics[0].ID,
			FacilityName:    clinics[0].Name,
			FacilityType:    entities.FacilityTypeClinic,
			Availability: entities.Availability{
				IsOnline: true,
				TimeSlots: []entities.TimeSlot{
					{Day: "tuesday", StartTime: "10:00", EndTime: "14:00", SlotDurationMinutes: 15, MaxPatients: 16},
				},
			},
			CreatedAt: time.Now().UTC(),
		},
	}

	for i := range doctors {
		d := &doctors[i]
		if err := doctorRepo.Create(ctx, d); err != nil {
			log.Printf("Failed to create doctor %s: %v", d.FullName, err)
		}
	}

	log.Printf("Seed complete: %d users, %d clinics, %d hospitals, %d doctors",
		len(users), len(clinics), len(hospitals), len(doctors))
}

func indexFacility(ctx context.Context, repo *search.TypesenseAdapter, id, name, facilityType string, loc *entities.Location) {
	if repo == nil {
		return
	}
	summary := &entities.FacilitySummary{ID: id, Name: name, Type: facilityType}
	if err := repo.Index(ctx, summary, loc); err != nil {
		log.Printf("Failed to index facility %s: %v", name, err)
	}
}
