package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
)

// MaxMatchedFacilities caps how many facilities a recommendation carries
const MaxMatchedFacilities = 5

const emergencyAvailability = "Emergency services available 24/7"
const hospitalAvailability = "Multiple specialists available"

// FacilityMatchingService selects the facilities recommended alongside a
// symptom analysis. Critical urgency routes to emergency-capable hospitals
// only; everything else is keyword-matched across clinics then hospitals.
type FacilityMatchingService struct {
	clinicRepo   repositories.ClinicRepository
	hospitalRepo repositories.HospitalRepository
	resolver     SpecialtyResolver
}

// NewFacilityMatchingService creates a new facility matching service
func NewFacilityMatchingService(
	clinicRepo repositories.ClinicRepository,
	hospitalRepo repositories.HospitalRepository,
	resolver SpecialtyResolver,
) *FacilityMatchingService {
	return &FacilityMatchingService{
		clinicRepo:   clinicRepo,
		hospitalRepo: hospitalRepo,
		resolver:     resolver,
	}
}

// MatchFacilities returns up to MaxMatchedFacilities recommendations.
// When the patient's location is known, each match carries its distance and
// results are ordered nearest first within each group; matching itself never
// filters on distance.
func (s *FacilityMatchingService) MatchFacilities(ctx context.Context, rawSpecialty, urgency string, location *entities.Location) ([]entities.FacilityMatch, error) {
	if urgency == entities.UrgencyCritical {
		return s.matchEmergency(ctx, location)
	}
	return s.matchBySpecialty(ctx, rawSpecialty, location)
}

// matchEmergency ignores specialty entirely: in a critical case any
// emergency department is an acceptable match.
func (s *FacilityMatchingService) matchEmergency(ctx context.Context, location *entities.Location) ([]entities.FacilityMatch, error) {
	hospitals, err := s.hospitalRepo.ListEmergencyCapable(ctx, MaxMatchedFacilities)
	if err != nil {
		return nil, err
	}

	matches := make([]entities.FacilityMatch, 0, len(hospitals))
	for _, h := range hospitals {
		loc := h.Location
		matches = append(matches, entities.FacilityMatch{
			FacilityID:       h.ID,
			FacilityName:     h.Name,
			FacilityType:     entities.FacilityTypeHospital,
			DistanceKm:       distanceFrom(location, &loc),
			Availability:     emergencyAvailability,
			EmergencyCapable: true,
			Contact:          h.ContactPhone,
			Location:         &loc,
		})
	}

	sortByDistance(matches)
	return capFacilities(matches), nil
}

func (s *FacilityMatchingService) matchBySpecialty(ctx context.Context, rawSpecialty string, location *entities.Location) ([]entities.FacilityMatch, error) {
	specialties := s.resolver.ResolveSymptoms(rawSpecialty)

	log.Debug().
		Str("specialty", rawSpecialty).
		Strs("resolved", specialties).
		Msg("facility matching")

	clinicMatches, err := s.matchClinics(ctx, specialties, location)
	if err != nil {
		return nil, err
	}

	hospitalMatches, err := s.matchHospitals(ctx, specialties, location)
	if err != nil {
		return nil, err
	}

	// Clinics stay ahead of hospitals; distance only orders within a group
	sortByDistance(clinicMatches)
	sortByDistance(hospitalMatches)

	return capFacilities(append(clinicMatches, hospitalMatches...)), nil
}

func (s *FacilityMatchingService) matchClinics(ctx context.Context, specialties []string, location *entities.Location) ([]entities.FacilityMatch, error) {
	clinics, err := s.clinicRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	var matches []entities.FacilityMatch
	for _, c := range clinics {
		if !bidirectionalMatch(c.Doctor.Specialization, specialties) {
			continue
		}
		loc := c.Location
		matches = append(matches, entities.FacilityMatch{
			FacilityID:           c.ID,
			FacilityName:         c.Name,
			FacilityType:         entities.FacilityTypeClinic,
			DistanceKm:           distanceFrom(location, &loc),
			DoctorName:           c.Doctor.Name,
			DoctorSpecialization: c.Doctor.Specialization,
			Availability:         c.Doctor.AvailabilityHours,
			EmergencyCapable:     c.AcceptsEmergencies,
			Contact:              c.ContactPhone,
			Location:             &loc,
		})
	}

	return matches, nil
}

// matchHospitals includes a hospital when any of its services or any
// embedded doctor's specialization matches a resolved specialty. One
// aggregate match per hospital, not one per doctor.
func (s *FacilityMatchingService) matchHospitals(ctx context.Context, specialties []string, location *entities.Location) ([]entities.FacilityMatch, error) {
	hospitals, err := s.hospitalRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	var matches []entities.FacilityMatch
	for _, h := range hospitals {
		if !hospitalMatches(h, specialties) {
			continue
		}
		loc := h.Location
		matches = append(matches, entities.FacilityMatch{
			FacilityID:       h.ID,
			FacilityName:     h.Name,
			FacilityType:     entities.FacilityTypeHospital,
			DistanceKm:       distanceFrom(location, &loc),
			Availability:     hospitalAvailability,
			EmergencyCapable: h.HasEmergencyDept,
			Contact:          h.ContactPhone,
			Location:         &loc,
		})
	}

	return matches, nil
}

func hospitalMatches(h *entities.Hospital, specialties []string) bool {
	for _, service := range h.Services {
		if bidirectionalMatch(service, specialties) {
			return true
		}
	}
	for _, doctor := range h.Doctors {
		if bidirectionalMatch(doctor.Specialization, specialties) {
			return true
		}
	}
	return false
}

func bidirectionalMatch(value string, specialties []string) bool {
	v := strings.ToLower(value)
	for _, spec := range specialties {
		if strings.Contains(v, spec) || strings.Contains(spec, v) {
			return true
		}
	}
	return false
}

// distanceFrom returns the haversine distance in km, or nil when either
// side has no usable coordinates
func distanceFrom(from, to *entities.Location) *float64 {
	if from == nil || to == nil {
		return nil
	}
	if from.Latitude == 0 && from.Longitude == 0 {
		return nil
	}
	if to.Latitude == 0 && to.Longitude == 0 {
		return nil
	}

	d := haversineKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	return &d
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// sortByDistance orders matches nearest first. Matches without a distance
// keep their relative order after those with one.
func sortByDistance(matches []entities.FacilityMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := matches[i].DistanceKm, matches[j].DistanceKm
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}

func capFacilities(matches []entities.FacilityMatch) []entities.FacilityMatch {
	if len(matches) > MaxMatchedFacilities {
		return matches[:MaxMatchedFacilities]
	}
	return matches
}
